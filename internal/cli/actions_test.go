package cli

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"
)

// --- Stats ---

func TestStats_Format(t *testing.T) {
	bot := newFakeBot(t).on(statsKey,
		`{"pending":3,"published":1,"totalPublished":42,"lastPublished":"2024-01-01T00:00:00Z"}`)
	a, out := newTestActions(t, bot.URL)

	stats := a.Stats(context.Background())
	if stats == nil {
		t.Fatal("expected stats")
	}

	assertContains(t, out.String(),
		"=== CONTENT STATS ===",
		"В очереди: 3",
		"Опубликовано сегодня: 1",
		"Всего опубликовано: 42",
		"Последняя публикация: 2024-01-01 00:00:00",
	)
}

func TestStats_OptionalFields(t *testing.T) {
	bot := newFakeBot(t).on(statsKey, `{}`)
	a, out := newTestActions(t, bot.URL)

	stats := a.Stats(context.Background())
	if stats == nil || stats.Pending != 0 {
		t.Fatalf("missing fields should default to zero, got %+v", stats)
	}

	assertContains(t, out.String(), "В очереди: 0 постов", "Всего опубликовано: 0")
	assertNotContains(t, out.String(), "Последняя публикация", "Всего в плане", "План обновлён")
}

func TestStats_ExtendedFields(t *testing.T) {
	bot := newFakeBot(t).on(statsKey,
		`{"pending":2,"totalInQueue":9,"lastUpdated":"2024-03-05T12:30:45.123+03:00"}`)
	a, out := newTestActions(t, bot.URL)

	a.Stats(context.Background())

	assertContains(t, out.String(), "Всего в плане: 9", "План обновлён: 2024-03-05 12:30:45")
}

func TestStats_Error(t *testing.T) {
	bot := newFakeBot(t).onStatus(statsKey, http.StatusInternalServerError, `{"error":"Planner не готов"}`)
	a, out := newTestActions(t, bot.URL)

	if stats := a.Stats(context.Background()); stats != nil {
		t.Errorf("expected nil stats on error, got %+v", stats)
	}
	assertContains(t, out.String(), "❌ Ошибка:", "HTTP 500", "Planner не готов")
}

// --- Queue ---

func queueBody(total, n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"id":%d,"articlesCount":%d,"createdAt":"2024-01-01T0%d:00:00Z"}`, 1000+i, i+1, i%10)
	}
	return fmt.Sprintf(`{"total":%d,"queue":[%s]}`, total, strings.Join(items, ","))
}

var queueEntry = regexp.MustCompile(`(?m)^\d+\. ID: `)

func TestQueue_TruncatesToTen(t *testing.T) {
	bot := newFakeBot(t).on(queueKey, queueBody(12, 15))
	a, out := newTestActions(t, bot.URL)

	q := a.Queue(context.Background())
	if q == nil || len(q.Queue) != 15 {
		t.Fatalf("queue should be returned untruncated, got %+v", q)
	}

	entries := queueEntry.FindAllString(out.String(), -1)
	if len(entries) != 10 {
		t.Errorf("expected 10 entries, got %d:\n%s", len(entries), out.String())
	}
	assertContains(t, out.String(),
		"📦 Всего в очереди: 12 постов",
		"1. ID: 1000, Статей: 1, Создан: 2024-01-01 00:00:00",
		"10. ID: 1009, Статей: 10",
	)
	assertNotContains(t, out.String(), "11. ID:")
}

func TestQueue_Empty(t *testing.T) {
	bot := newFakeBot(t).on(queueKey, `{"total":0,"queue":[]}`)
	a, out := newTestActions(t, bot.URL)

	a.Queue(context.Background())

	assertContains(t, out.String(), "📦 Всего в очереди: 0 постов", "📭 Очередь пуста")
	assertNotContains(t, out.String(), "ID:")
}

func TestQueue_CustomLimit(t *testing.T) {
	bot := newFakeBot(t).on(queueKey, queueBody(5, 5))
	a, out := newTestActions(t, bot.URL)
	a.queueLimit = 3

	a.Queue(context.Background())

	if n := len(queueEntry.FindAllString(out.String(), -1)); n != 3 {
		t.Errorf("expected 3 entries, got %d", n)
	}
}

// --- Status ---

func TestStatus_AllConfigured(t *testing.T) {
	bot := newFakeBot(t).on(botStatusKey,
		`{"config":{"telegramConfigured":true,"openaiConfigured":true,"anthropicConfigured":true}}`)
	a, out := newTestActions(t, bot.URL)

	a.Status(context.Background())

	assertContains(t, out.String(), "Статус бота:", "✅ Все сервисы настроены правильно")
	assertNotContains(t, out.String(), "⚠️")
}

func TestStatus_Warnings(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		warnings []string
	}{
		{
			name:     "telegram missing",
			body:     `{"config":{"telegramConfigured":false,"openaiConfigured":true,"anthropicConfigured":true}}`,
			warnings: []string{"Telegram не настроен"},
		},
		{
			name:     "ai missing",
			body:     `{"config":{"telegramConfigured":true}}`,
			warnings: []string{"OpenAI не настроен", "Anthropic не настроен"},
		},
		{
			name:     "no config block",
			body:     `{}`,
			warnings: []string{"Telegram не настроен", "OpenAI не настроен", "Anthropic не настроен"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := newFakeBot(t).on(botStatusKey, tt.body)
			a, out := newTestActions(t, bot.URL)

			a.Status(context.Background())

			if n := strings.Count(out.String(), "⚠️"); n != len(tt.warnings) {
				t.Errorf("expected %d warnings, got %d:\n%s", len(tt.warnings), n, out.String())
			}
			assertContains(t, out.String(), tt.warnings...)
			assertNotContains(t, out.String(), "Все сервисы настроены")
		})
	}
}

// --- Health ---

func TestHealth(t *testing.T) {
	bot := newFakeBot(t).on(healthKey, `{"status":"ok","uptime":12}`)
	a, out := newTestActions(t, bot.URL)

	if !a.Health(context.Background()) {
		t.Fatal("expected healthy")
	}
	assertContains(t, out.String(), "=== HEALTH CHECK ===", `✅ Сервер работает: {"status":"ok","uptime":12}`)
}

func TestHealth_NonObjectBody(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`"ok"`, `✅ Сервер работает: "ok"`},
		{`true`, `✅ Сервер работает: true`},
		{`{"status":"ok","uptime":"12s"}`, `✅ Сервер работает: {"status":"ok","uptime":"12s"}`},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			bot := newFakeBot(t).on(healthKey, tt.body)
			a, out := newTestActions(t, bot.URL)

			if !a.Health(context.Background()) {
				t.Fatalf("expected healthy for 2xx body %s, got:\n%s", tt.body, out.String())
			}
			assertContains(t, out.String(), tt.want)
			assertNotContains(t, out.String(), "❌")
		})
	}
}

func TestHealth_ServerError(t *testing.T) {
	bot := newFakeBot(t).onStatus(healthKey, http.StatusServiceUnavailable, `{}`)
	a, out := newTestActions(t, bot.URL)

	if a.Health(context.Background()) {
		t.Fatal("expected unhealthy on 503")
	}
	assertContains(t, out.String(), "❌ Сервер недоступен:", "HTTP 503")
}

// --- Collect / Publish / Run ---

func TestCollect(t *testing.T) {
	bot := newFakeBot(t).
		on(collectKey, `{"status":"collecting"}`).
		on(statsKey, `{"pending":4}`)
	a, out := newTestActions(t, bot.URL)

	a.Collect(context.Background())

	if bot.count(collectKey) != 1 || bot.count(statsKey) != 1 {
		t.Errorf("expected collect then stats, got %v", bot.calls())
	}
	assertContains(t, out.String(), "🔄 Запускаю сбор новостей...", "✅ collecting", "⏳ Ждём 0 секунд...", "В очереди: 4")
}

func TestCollect_ErrorSkipsStats(t *testing.T) {
	bot := newFakeBot(t).onStatus(collectKey, http.StatusInternalServerError, `{"error":"Scheduler не готов"}`)
	a, out := newTestActions(t, bot.URL)

	a.Collect(context.Background())

	if bot.count(statsKey) != 0 {
		t.Error("stats should not be fetched after failed collect")
	}
	assertContains(t, out.String(), "❌ Ошибка:", "Scheduler не готов")
}

func TestCollect_WaitCancelled(t *testing.T) {
	bot := newFakeBot(t).on(collectKey, `{"message":"ok"}`).on(statsKey, `{}`)
	a, out := newTestActions(t, bot.URL)
	a.waits.Collect = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		a.Collect(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("collect should stop when context is cancelled")
	}

	if bot.count(statsKey) != 0 {
		t.Error("stats should not be fetched after interrupted wait")
	}
	assertContains(t, out.String(), "⏹ Ожидание прервано")
}

func TestPublish_EmptyQueue(t *testing.T) {
	bot := newFakeBot(t).
		on(queueKey, `{"total":0,"queue":[]}`).
		on(publishKey, `{"message":"should not be called"}`)
	a, out := newTestActions(t, bot.URL)

	a.Publish(context.Background())

	if n := bot.count(publishKey); n != 0 {
		t.Errorf("publish must not be called on empty queue, got %d calls", n)
	}
	assertContains(t, out.String(), "📭 Очередь пуста. Сначала соберите новости.")
}

func TestPublish_MissingTotalTreatedAsEmpty(t *testing.T) {
	bot := newFakeBot(t).
		on(queueKey, `{"queue":[{"id":1,"articlesCount":1,"createdAt":"2024-01-01T00:00:00Z"}]}`).
		on(publishKey, `{"message":"should not be called"}`)
	a, out := newTestActions(t, bot.URL)

	a.Publish(context.Background())

	if n := bot.count(publishKey); n != 0 {
		t.Errorf("publish must not be called without total, got %d calls", n)
	}
	assertContains(t, out.String(), "📭 Очередь пуста. Сначала соберите новости.")
}

func TestPublish(t *testing.T) {
	bot := newFakeBot(t).
		on(queueKey, queueBody(2, 2)).
		on(publishKey, `{"message":"Пост опубликован"}`).
		on(statsKey, `{"pending":1,"published":1}`)
	a, out := newTestActions(t, bot.URL)

	a.Publish(context.Background())

	want := []string{queueKey, publishKey, statsKey}
	got := bot.calls()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected calls %v, got %v", want, got)
	}
	assertContains(t, out.String(), "📤 Публикую следующий пост...", "✅ Пост опубликован", "Опубликовано сегодня: 1")
}

func TestPublish_QueueError(t *testing.T) {
	bot := newFakeBot(t)
	a, out := newTestActions(t, bot.URL)

	a.Publish(context.Background())

	if bot.count(publishKey) != 0 {
		t.Error("publish must not be called when queue is unavailable")
	}
	assertContains(t, out.String(), "❌ Ошибка:", "HTTP 404")
}

func TestRun(t *testing.T) {
	bot := newFakeBot(t).
		on(runKey, `{"status":"started","message":"Бот запущен"}`).
		on(statsKey, `{"pending":6}`)
	a, out := newTestActions(t, bot.URL)

	a.Run(context.Background())

	if bot.count(runKey) != 1 || bot.count(statsKey) != 1 {
		t.Errorf("expected run then stats, got %v", bot.calls())
	}
	assertContains(t, out.String(), "🚀 Запускаю бота", "✅ Бот запущен", "Ждём завершения", "В очереди: 6")
}

// --- Scheduler ---

func TestScheduler_Start(t *testing.T) {
	bot := newFakeBot(t).
		on(schedKey, `{"running":false}`).
		on(schedStart, `{"message":"Планировщик запущен","schedules":["0 * * * *","ежедневно"]}`)
	a, out := newTestActions(t, bot.URL)

	a.Scheduler(context.Background())

	if bot.count(schedStart) != 1 {
		t.Errorf("expected scheduler start, got %v", bot.calls())
	}
	assertContains(t, out.String(),
		`Статус: {"running":false}`,
		"⏰ Запускаю планировщик...",
		"✅ Планировщик запущен",
		`📅 Расписания: ["0 * * * *","ежедневно"]`,
		"0 * * * * → следующий запуск: 2024-01-01 11:00:00",
	)
	assertNotContains(t, out.String(), "ежедневно → ")
}

func TestScheduler_AlreadyRunning(t *testing.T) {
	bot := newFakeBot(t).on(schedKey, `{"running":true}`)
	a, out := newTestActions(t, bot.URL)

	a.Scheduler(context.Background())

	if bot.count(schedStart) != 0 {
		t.Error("scheduler start must not be called when already running")
	}
	assertContains(t, out.String(), "✅ Планировщик уже запущен")
}

func TestScheduler_NoSchedules(t *testing.T) {
	bot := newFakeBot(t).
		on(schedKey, `{"running":false}`).
		on(schedStart, `{"message":"ok"}`)
	a, out := newTestActions(t, bot.URL)

	a.Scheduler(context.Background())

	assertContains(t, out.String(), "📅 Расписания: []")
}

// --- Info ---

func TestInfo(t *testing.T) {
	bot := newFakeBot(t).on(infoKey, `{"name":"AI Business Bot","version":"1.0.0","endpoints":["/health"]}`)
	a, out := newTestActions(t, bot.URL)

	a.Info(context.Background())

	assertContains(t, out.String(), "🤖 AI Business Bot 1.0.0", "   - /health")
}

// --- Network failure ---

func TestActions_ConnectionRefused(t *testing.T) {
	url := closedServerURL(t)

	for _, c := range Commands {
		if c.Name == "monitor" {
			continue
		}
		t.Run(c.Name, func(t *testing.T) {
			a, out := newTestActions(t, url)

			c.Run(context.Background(), a)

			assertContains(t, out.String(), "❌")
		})
	}
}

// --- Helpers ---

func TestSleep(t *testing.T) {
	if err := sleep(context.Background(), 0); err != nil {
		t.Errorf("zero sleep should not fail: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleep(ctx, time.Hour); err == nil {
		t.Error("sleep should return error on cancelled context")
	}

	start := time.Now()
	if err := sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("sleep returned too early")
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := map[time.Duration]string{
		30 * time.Second:        "30 секунд",
		0:                       "0 секунд",
		1500 * time.Millisecond: "1.5s",
	}
	for in, want := range tests {
		if got := formatSeconds(in); got != want {
			t.Errorf("formatSeconds(%s) = %q, want %q", in, got, want)
		}
	}
}
