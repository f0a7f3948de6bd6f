package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shaiso/aibot/internal/botapi"
	"github.com/shaiso/aibot/internal/scheduler"
)

// BotAPI — endpoint'ы сервера бота, которые использует CLI.
type BotAPI interface {
	BaseURL() string
	Info(ctx context.Context) (*botapi.ServerInfo, error)
	Health(ctx context.Context) (*botapi.Health, error)
	BotStatus(ctx context.Context) (*botapi.BotStatus, error)
	Publish(ctx context.Context) (*botapi.ActionResponse, error)
	Run(ctx context.Context) (*botapi.ActionResponse, error)
	ContentStats(ctx context.Context) (*botapi.ContentStats, error)
	ContentQueue(ctx context.Context) (*botapi.ContentQueue, error)
	Collect(ctx context.Context) (*botapi.ActionResponse, error)
	SchedulerStatus(ctx context.Context) (*botapi.SchedulerStatus, error)
	StartScheduler(ctx context.Context) (*botapi.SchedulerStart, error)
}

// MonitorMetrics — метрики, которые обновляет мониторинг.
type MonitorMetrics interface {
	SetQueuePending(n int)
	MonitorTick(err error)
}

// Waits — паузы после асинхронных операций на сервере.
//
// Сервер отвечает на POST сразу и выполняет работу в фоне, сигнала
// о завершении нет. Пауза даёт ему время перед повторным запросом статистики.
type Waits struct {
	Collect time.Duration
	Publish time.Duration
	Run     time.Duration
}

// DefaultWaits — паузы по умолчанию: 30/20/60 секунд.
var DefaultWaits = Waits{
	Collect: 30 * time.Second,
	Publish: 20 * time.Second,
	Run:     60 * time.Second,
}

// ActionsConfig — конфигурация Actions.
type ActionsConfig struct {
	Client          BotAPI
	Output          *Output
	Logger          *slog.Logger
	Metrics         MonitorMetrics // может быть nil
	Waits           Waits
	QueueLimit      int           // default: 10
	LowQueue        int           // default: 5
	MonitorInterval time.Duration // default: 5m
	Location        *time.Location
	Now             func() time.Time
}

// Actions — действия CLI. Каждое делает один или несколько запросов
// к серверу и печатает результат.
//
// Ошибки запросов не возвращаются: действие печатает сообщение
// и завершается, чтобы следующая команда сценария могла выполниться.
type Actions struct {
	client          BotAPI
	out             *Output
	logger          *slog.Logger
	metrics         MonitorMetrics
	waits           Waits
	queueLimit      int
	lowQueue        int
	monitorInterval time.Duration
	location        *time.Location
	now             func() time.Time
}

// NewActions создаёт Actions.
func NewActions(cfg ActionsConfig) *Actions {
	a := &Actions{
		client:          cfg.Client,
		out:             cfg.Output,
		logger:          cfg.Logger,
		metrics:         cfg.Metrics,
		waits:           cfg.Waits,
		queueLimit:      cfg.QueueLimit,
		lowQueue:        cfg.LowQueue,
		monitorInterval: cfg.MonitorInterval,
		location:        cfg.Location,
		now:             cfg.Now,
	}

	if a.out == nil {
		a.out = NewOutput(nil, nil)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.queueLimit <= 0 {
		a.queueLimit = 10
	}
	if a.lowQueue <= 0 {
		a.lowQueue = 5
	}
	if a.monitorInterval <= 0 {
		a.monitorInterval = 5 * time.Minute
	}
	if a.location == nil {
		a.location = time.Local
	}
	if a.now == nil {
		a.now = time.Now
	}

	return a
}

// Info выводит описание сервера.
func (a *Actions) Info(ctx context.Context) {
	a.out.Section("SERVER INFO")

	info, err := a.client.Info(ctx)
	if err != nil {
		a.fail("info", "Ошибка", err)
		return
	}

	a.out.Printf("🤖 %s %s\n", info.Name, info.Version)
	if len(info.Endpoints) > 0 {
		a.out.Println("Endpoints:")
		for _, e := range info.Endpoints {
			a.out.Println("   - " + e)
		}
	}
}

// Health проверяет доступность сервера. Возвращает true, если сервер ответил 2xx.
func (a *Actions) Health(ctx context.Context) bool {
	a.out.Section("HEALTH CHECK")

	h, err := a.client.Health(ctx)
	if err != nil {
		a.fail("health", "Сервер недоступен", err)
		return false
	}

	a.out.Success("Сервер работает: " + compactJSON(h.Raw))
	return true
}

// Status выводит статус бота и предупреждает о ненастроенных сервисах.
func (a *Actions) Status(ctx context.Context) {
	a.out.Section("BOT STATUS")

	s, err := a.client.BotStatus(ctx)
	if err != nil {
		a.fail("status", "Ошибка", err)
		return
	}

	a.out.Println("Статус бота:", compactJSON(s.Raw))

	svc := s.Services()
	if !svc.TelegramConfigured {
		a.out.Warn("Telegram не настроен")
	}
	if !svc.OpenAIConfigured {
		a.out.Warn("OpenAI не настроен")
	}
	if !svc.AnthropicConfigured {
		a.out.Warn("Anthropic не настроен")
	}
	if svc.AllConfigured() {
		a.out.Success("Все сервисы настроены правильно")
	}
}

// Stats выводит статистику контент-плана. Возвращает nil при ошибке.
func (a *Actions) Stats(ctx context.Context) *botapi.ContentStats {
	stats, _ := a.fetchStats(ctx)
	return stats
}

func (a *Actions) fetchStats(ctx context.Context) (*botapi.ContentStats, error) {
	a.out.Section("CONTENT STATS")

	stats, err := a.client.ContentStats(ctx)
	if err != nil {
		a.fail("stats", "Ошибка", err)
		return nil, err
	}

	a.out.Println("📊 Статистика:")
	a.out.Printf("   - В очереди: %d постов\n", stats.Pending)
	a.out.Printf("   - Опубликовано сегодня: %d\n", stats.Published)
	a.out.Printf("   - Всего опубликовано: %d\n", stats.TotalPublished)
	if stats.TotalInQueue != nil {
		a.out.Printf("   - Всего в плане: %d\n", *stats.TotalInQueue)
	}
	if stats.LastPublished != "" {
		a.out.Printf("   - Последняя публикация: %s\n", formatTimestamp(stats.LastPublished))
	}
	if stats.LastUpdated != "" {
		a.out.Printf("   - План обновлён: %s\n", formatTimestamp(stats.LastUpdated))
	}

	return stats, nil
}

// Queue выводит первые посты очереди. Возвращает nil при ошибке.
func (a *Actions) Queue(ctx context.Context) *botapi.ContentQueue {
	a.out.Section("CONTENT QUEUE")

	q, err := a.client.ContentQueue(ctx)
	if err != nil {
		a.fail("queue", "Ошибка", err)
		return nil
	}

	a.out.Printf("📦 Всего в очереди: %d постов\n\n", q.Total)

	if len(q.Queue) == 0 {
		a.out.Println("📭 Очередь пуста")
		return q
	}

	posts := q.Queue
	if len(posts) > a.queueLimit {
		posts = posts[:a.queueLimit]
	}

	a.out.Printf("Первые %d постов:\n", a.queueLimit)
	for i, p := range posts {
		a.out.Printf("%d. ID: %s, Статей: %d, Создан: %s\n",
			i+1, p.ID, p.ArticlesCount, formatTimestamp(p.CreatedAt))
	}

	return q
}

// Collect запускает сбор новостей, ждёт и выводит обновлённую статистику.
func (a *Actions) Collect(ctx context.Context) {
	a.out.Section("COLLECT NEWS")

	a.out.Println("🔄 Запускаю сбор новостей...")
	resp, err := a.client.Collect(ctx)
	if err != nil {
		a.fail("collect", "Ошибка", err)
		return
	}
	a.out.Success(resp.Text())

	if !a.wait(ctx, a.waits.Collect, fmt.Sprintf("Ждём %s...", formatSeconds(a.waits.Collect))) {
		return
	}
	a.Stats(ctx)
}

// Publish публикует следующий пост, если очередь не пуста.
func (a *Actions) Publish(ctx context.Context) {
	a.out.Section("PUBLISH POST")

	q, err := a.client.ContentQueue(ctx)
	if err != nil {
		a.fail("publish", "Ошибка", err)
		return
	}
	// Отсутствующий total считается нулём.
	if q.Total == 0 {
		a.out.Println("📭 Очередь пуста. Сначала соберите новости.")
		return
	}

	a.out.Println("📤 Публикую следующий пост...")
	resp, err := a.client.Publish(ctx)
	if err != nil {
		a.fail("publish", "Ошибка", err)
		return
	}
	a.out.Success(resp.Text())

	if !a.wait(ctx, a.waits.Publish, fmt.Sprintf("Ждём %s...", formatSeconds(a.waits.Publish))) {
		return
	}
	a.Stats(ctx)
}

// Run запускает полный цикл бота (сбор + публикация).
func (a *Actions) Run(ctx context.Context) {
	a.out.Section("RUN BOT")

	a.out.Println("🚀 Запускаю бота (сбор новостей + публикация)...")
	resp, err := a.client.Run(ctx)
	if err != nil {
		a.fail("run", "Ошибка", err)
		return
	}
	a.out.Success(resp.Text())

	if !a.wait(ctx, a.waits.Run, "Ждём завершения (может занять 1-2 минуты)...") {
		return
	}
	a.Stats(ctx)
}

// Scheduler запускает планировщик, если он ещё не работает.
func (a *Actions) Scheduler(ctx context.Context) {
	a.out.Section("SCHEDULER MANAGEMENT")

	a.out.Println("🔍 Проверяю статус планировщика...")
	status, err := a.client.SchedulerStatus(ctx)
	if err != nil {
		a.fail("scheduler", "Ошибка", err)
		return
	}
	a.out.Println("Статус:", compactJSON(status.Raw))

	if status.Running {
		a.out.Success("Планировщик уже запущен")
		return
	}

	a.out.Println("\n⏰ Запускаю планировщик...")
	start, err := a.client.StartScheduler(ctx)
	if err != nil {
		a.fail("scheduler", "Ошибка", err)
		return
	}
	a.out.Success(start.Message)

	schedules := start.Schedules
	if schedules == nil {
		schedules = []string{}
	}
	a.out.Println("📅 Расписания:", compactJSON(schedules))

	for _, e := range scheduler.Describe(schedules, a.now(), a.location) {
		if !e.Valid() {
			a.logger.Debug("schedule is not a cron expression", "spec", e.Spec, "error", e.Err)
			continue
		}
		a.out.Printf("   - %s → следующий запуск: %s\n", e.Spec, e.Next.Format(timeLayout))
	}
}

// fail печатает ошибку действия и пишет её в лог.
func (a *Actions) fail(action, prefix string, err error) {
	a.out.Error(prefix, err)
	a.logger.Warn("action failed", "action", action, "error", err)
}

// wait печатает msg и ждёт d. Возвращает false, если ctx отменён.
func (a *Actions) wait(ctx context.Context, d time.Duration, msg string) bool {
	a.out.Println("⏳ " + msg)
	if err := sleep(ctx, d); err != nil {
		a.out.Println("⏹ Ожидание прервано")
		return false
	}
	return true
}

// sleep ждёт d или отмены ctx.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// formatSeconds выводит длительность как "30 секунд".
func formatSeconds(d time.Duration) string {
	if d%time.Second != 0 {
		return d.String()
	}
	return strconv.Itoa(int(d/time.Second)) + " секунд"
}
