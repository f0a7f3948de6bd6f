package cli

import "context"

// Command — запись таблицы команд.
type Command struct {
	Name        string
	Description string
	Run         func(ctx context.Context, a *Actions)
}

// Commands — таблица команд CLI в порядке вывода справки.
var Commands = []Command{
	{"health", "Health check", func(ctx context.Context, a *Actions) { a.Health(ctx) }},
	{"status", "Статус бота", func(ctx context.Context, a *Actions) { a.Status(ctx) }},
	{"stats", "Статистика", func(ctx context.Context, a *Actions) { a.Stats(ctx) }},
	{"queue", "Очередь постов", func(ctx context.Context, a *Actions) { a.Queue(ctx) }},
	{"collect", "Собрать новости", func(ctx context.Context, a *Actions) { a.Collect(ctx) }},
	{"publish", "Опубликовать пост", func(ctx context.Context, a *Actions) { a.Publish(ctx) }},
	{"run", "Запустить бота", func(ctx context.Context, a *Actions) { a.Run(ctx) }},
	{"scheduler", "Управление планировщиком", func(ctx context.Context, a *Actions) { a.Scheduler(ctx) }},
	{"monitor", "Мониторинг (бесконечный)", func(ctx context.Context, a *Actions) { a.Monitor(ctx) }},
	{"workflow", "Полный рабочий процесс", func(ctx context.Context, a *Actions) { a.Workflow(ctx) }},
	{"info", "Информация о сервере", func(ctx context.Context, a *Actions) { a.Info(ctx) }},
}

// Lookup ищет команду по имени.
func Lookup(name string) (Command, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// Dispatcher выбирает действие по имени команды.
type Dispatcher struct {
	program string
	out     *Output
	actions func(command string) *Actions
}

// NewDispatcher создаёт Dispatcher. actions вызывается только для
// известной команды, так что справка и неизвестные команды не создают клиента.
func NewDispatcher(program string, out *Output, actions func(command string) *Actions) *Dispatcher {
	return &Dispatcher{
		program: program,
		out:     out,
		actions: actions,
	}
}

// Dispatch выполняет команду args[0]. Без аргументов выводит справку,
// на неизвестную команду — сообщение об ошибке. В обоих случаях
// запросов к серверу нет.
func (d *Dispatcher) Dispatch(ctx context.Context, args []string) {
	if len(args) == 0 {
		d.Usage()
		return
	}

	cmd, ok := Lookup(args[0])
	if !ok {
		d.out.Println()
		d.out.Fail("Неизвестная команда: " + args[0])
		d.out.Println()
		d.out.Printf("Используйте: %s для списка команд\n\n", d.program)
		return
	}

	cmd.Run(ctx, d.actions(cmd.Name))
}

// Usage выводит список команд.
func (d *Dispatcher) Usage() {
	d.out.Println("\n📚 Доступные команды:")
	d.out.Println()

	rows := make([][]string, len(Commands))
	for i, c := range Commands {
		rows[i] = []string{"  " + d.program + " " + c.Name, "- " + c.Description}
	}
	d.out.Table(rows)

	d.out.Println()
	d.out.Println("💡 Перед использованием запустите сервер бота: npm run server")
	d.out.Println()
}
