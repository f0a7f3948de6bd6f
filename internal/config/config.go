// Package config загружает конфигурацию CLI из переменных окружения.
//
// Флаги командной строки имеют приоритет и применяются поверх
// значений, полученных здесь.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Ошибки валидации конфигурации.
var (
	// ErrInvalidAPIURL — базовый URL не является абсолютным http(s) адресом.
	ErrInvalidAPIURL = errors.New("invalid api url")

	// ErrNegativeDuration — отрицательная задержка или таймаут.
	ErrNegativeDuration = errors.New("duration must not be negative")

	// ErrInvalidInterval — интервал мониторинга не положительный.
	ErrInvalidInterval = errors.New("monitor interval must be positive")

	// ErrInvalidLimit — порог очереди или лимит вывода не положительный.
	ErrInvalidLimit = errors.New("limit must be positive")
)

// Config — конфигурация CLI.
type Config struct {
	// APIURL — базовый URL сервера бота.
	APIURL string `envconfig:"API_URL" default:"http://localhost:3000"`

	// HTTPTimeout — таймаут одного HTTP-запроса.
	HTTPTimeout time.Duration `envconfig:"AIBOT_HTTP_TIMEOUT" default:"30s"`

	// CollectWait — пауза после запуска сбора новостей.
	CollectWait time.Duration `envconfig:"AIBOT_COLLECT_WAIT" default:"30s"`
	// PublishWait — пауза после публикации.
	PublishWait time.Duration `envconfig:"AIBOT_PUBLISH_WAIT" default:"20s"`
	// RunWait — пауза после полного цикла бота.
	RunWait time.Duration `envconfig:"AIBOT_RUN_WAIT" default:"60s"`

	MonitorInterval time.Duration `envconfig:"AIBOT_MONITOR_INTERVAL" default:"5m"`
	LowQueue        int           `envconfig:"AIBOT_LOW_QUEUE" default:"5"`
	// MetricsAddr — адрес для /healthz и /metrics, пусто = выключено.
	MetricsAddr string `envconfig:"AIBOT_METRICS_ADDR"`

	// QueueLimit — сколько постов очереди выводить.
	QueueLimit int `envconfig:"AIBOT_QUEUE_LIMIT" default:"10"`
}

// Load загружает конфиг из окружения.
//
// Значения не валидируются: флаги ещё могут их переопределить,
// поэтому Validate вызывается после разбора флагов.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Validate проверяет согласованность значений.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIURL, c.APIURL)
	}

	durations := map[string]time.Duration{
		"http timeout": c.HTTPTimeout,
		"collect wait": c.CollectWait,
		"publish wait": c.PublishWait,
		"run wait":     c.RunWait,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("%w: %s=%s", ErrNegativeDuration, name, d)
		}
	}

	if c.MonitorInterval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, c.MonitorInterval)
	}
	if c.LowQueue <= 0 {
		return fmt.Errorf("%w: low queue=%d", ErrInvalidLimit, c.LowQueue)
	}
	if c.QueueLimit <= 0 {
		return fmt.Errorf("%w: queue limit=%d", ErrInvalidLimit, c.QueueLimit)
	}
	return nil
}
