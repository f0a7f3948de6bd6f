// Package telemetry обеспечивает наблюдаемость CLI.
//
// Включает:
//   - logging.go — structured logging через slog (в stderr)
//   - metrics.go — Prometheus метрики запросов к API и мониторинга
//   - server.go — /healthz и /metrics для долгоживущей команды monitor
package telemetry
