package cli

import "context"

// Workflow выполняет демонстрационный сценарий целиком:
// health → status → stats → collect или queue → publish → scheduler.
//
// Недоступный сервер прерывает сценарий сразу. Остальные шаги выполняются
// независимо от результата предыдущих.
func (a *Actions) Workflow(ctx context.Context) {
	a.out.Banner("AI Business Bot - Full Workflow")

	if !a.Health(ctx) {
		a.out.Println()
		a.out.Fail("Сервер недоступен. Завершение.")
		return
	}

	a.Status(ctx)

	stats := a.Stats(ctx)
	if stats != nil && stats.Pending == 0 {
		a.out.Println("\n📭 Очередь пуста, собираю новости...")
		a.Collect(ctx)
	} else {
		a.out.Println("\n✅ В очереди уже есть посты")
		a.Queue(ctx)
	}
	if ctx.Err() != nil {
		return
	}

	a.out.Println("\n📤 Публикую тестовый пост...")
	a.Publish(ctx)
	if ctx.Err() != nil {
		return
	}

	a.out.Println("\n⏰ Настраиваю автоматическую публикацию...")
	a.Scheduler(ctx)

	a.out.Banner("Workflow Completed!")

	a.out.Println("💡 Бот теперь работает автоматически по расписанию!")
	a.out.Println("📊 Мониторинг доступен по адресу:", a.client.BaseURL())
}
