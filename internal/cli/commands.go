package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/shaiso/aibot/internal/botapi"
	"github.com/shaiso/aibot/internal/config"
	"github.com/shaiso/aibot/internal/telemetry"
)

// Program — имя бинарника в справке.
const Program = "aibot-cli"

// App — зависимости, общие для всех команд.
type App struct {
	Config  config.Config
	Version string
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger

	// Registry — реестр метрик; nil выключает метрики.
	Registry *prometheus.Registry
}

// NewRootCmd создаёт корневую команду.
//
// Каждая запись таблицы Commands становится подкомандой. Корневая команда
// принимает произвольные аргументы, чтобы неизвестное имя обрабатывалось
// диспетчером (сообщение, код 0), а не ошибкой cobra.
func NewRootCmd(app App) *cobra.Command {
	cfg := app.Config
	logger := app.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var metrics *telemetry.Metrics
	if app.Registry != nil {
		metrics = telemetry.NewMetrics(app.Registry)
	}

	out := NewOutput(app.Stdout, app.Stderr)

	actionsFn := func(command string) *Actions {
		cmdLogger := telemetry.WithCommand(logger, command)
		opts := []botapi.Option{
			botapi.WithTimeout(cfg.HTTPTimeout),
			botapi.WithLogger(cmdLogger),
		}
		var monitorMetrics MonitorMetrics
		if metrics != nil {
			opts = append(opts, botapi.WithObserver(metrics))
			monitorMetrics = metrics
		}

		return NewActions(ActionsConfig{
			Client:  botapi.NewClient(cfg.APIURL, opts...),
			Output:  out,
			Logger:  cmdLogger,
			Metrics: monitorMetrics,
			Waits: Waits{
				Collect: cfg.CollectWait,
				Publish: cfg.PublishWait,
				Run:     cfg.RunWait,
			},
			QueueLimit:      cfg.QueueLimit,
			LowQueue:        cfg.LowQueue,
			MonitorInterval: cfg.MonitorInterval,
		})
	}

	dispatcher := NewDispatcher(Program, out, actionsFn)

	rootCmd := &cobra.Command{
		Use:           Program + " [command]",
		Short:         "CLI для API сервера AI Business Bot",
		Version:       app.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		Run: func(cmd *cobra.Command, args []string) {
			dispatcher.Dispatch(cmd.Context(), args)
		},
	}
	rootCmd.SetOut(out.w)
	rootCmd.SetErr(out.errW)

	rootCmd.PersistentFlags().StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "Bot server URL (env API_URL)")
	rootCmd.PersistentFlags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP request timeout")

	for _, c := range Commands {
		name := c.Name
		sub := &cobra.Command{
			Use:   name,
			Short: c.Description,
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				dispatcher.Dispatch(cmd.Context(), []string{name})
			},
		}
		if name == "monitor" {
			sub = newMonitorCmd(sub, &cfg, app.Registry, out, logger)
		}
		rootCmd.AddCommand(sub)
	}

	return rootCmd
}

// newMonitorCmd добавляет к подкоманде monitor флаги интервала и метрик.
func newMonitorCmd(cmd *cobra.Command, cfg *config.Config, reg *prometheus.Registry, out *Output, logger *slog.Logger) *cobra.Command {
	cmd.Flags().DurationVar(&cfg.MonitorInterval, "interval", cfg.MonitorInterval, "Polling interval")
	cmd.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve /healthz and /metrics on this address")

	run := cmd.Run
	cmd.Run = func(c *cobra.Command, args []string) {
		if cfg.MetricsAddr != "" && reg != nil {
			addr, err := telemetry.Serve(c.Context(), cfg.MetricsAddr, reg, logger)
			if err != nil {
				out.Error("Метрики недоступны", fmt.Errorf("listen %s: %w", cfg.MetricsAddr, err))
			} else {
				out.Printf("📈 Метрики: http://%s/metrics\n", addr)
			}
		}
		run(c, args)
	}
	return cmd
}

