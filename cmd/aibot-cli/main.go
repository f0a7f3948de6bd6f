// AI Business Bot CLI — клиент командной строки для REST API сервера бота.
//
// Использование:
//
//	aibot-cli [--api-url URL] [--timeout 30s] <command>
//
// Команды:
//
//	health     Health check
//	status     Статус бота
//	stats      Статистика контент-плана
//	queue      Очередь постов
//	collect    Собрать новости
//	publish    Опубликовать пост
//	run        Запустить бота
//	scheduler  Управление планировщиком
//	monitor    Мониторинг (бесконечный)
//	workflow   Полный рабочий процесс
//	info       Информация о сервере
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shaiso/aibot/internal/cli"
	"github.com/shaiso/aibot/internal/config"
	"github.com/shaiso/aibot/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	// graceful shutdown: прерывает паузы и мониторинг
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := telemetry.SetupLogger()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	rootCmd := cli.NewRootCmd(cli.App{
		Config:   cfg,
		Version:  version,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   logger,
		Registry: reg,
	})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
