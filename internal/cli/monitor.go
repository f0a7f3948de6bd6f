package cli

import (
	"context"
	"fmt"
)

// Monitor периодически проверяет очередь до отмены ctx.
//
// На каждой итерации запрашивается статистика. Пустая очередь запускает
// сбор новостей (он блокирует итерацию на время паузы collect), очередь
// меньше порога даёт предупреждение. Ошибка итерации не останавливает цикл.
// После каждой итерации цикл спит monitorInterval.
func (a *Actions) Monitor(ctx context.Context) {
	a.out.Section("BOT MONITORING")
	a.out.Printf("🔄 Мониторинг каждые %s\n\n", formatInterval(a.monitorInterval))

	logger := a.logger.With("interval", a.monitorInterval.String())
	logger.Info("monitor started")

	for {
		err := a.monitorTick(ctx)
		if a.metrics != nil {
			a.metrics.MonitorTick(err)
		}
		if err != nil {
			logger.Error("monitor iteration failed", "error", err)
		}

		if err := sleep(ctx, a.monitorInterval); err != nil {
			logger.Info("monitor stopped", "reason", err)
			return
		}
	}
}

// monitorTick выполняет одну итерацию мониторинга.
func (a *Actions) monitorTick(ctx context.Context) error {
	stats, err := a.fetchStats(ctx)
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}

	if a.metrics != nil {
		a.metrics.SetQueuePending(stats.Pending)
	}

	if stats.Pending == 0 {
		a.out.Println("\n⚠️ ВНИМАНИЕ: Очередь пуста! Запускаю сбор новостей...")
		a.out.Println()
		a.Collect(ctx)
	}

	if stats.Pending < a.lowQueue {
		a.out.Printf("\n⚠️ ПРЕДУПРЕЖДЕНИЕ: Мало постов в очереди (< %d)\n\n", a.lowQueue)
	}

	return nil
}
