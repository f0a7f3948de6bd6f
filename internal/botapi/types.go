package botapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// --- Response types (контракт сервера AI Business Bot) ---

// Health — ответ GET /health.
//
// Формат тела зависит от версии сервера, признак здоровья — сам 2xx.
// Status и Uptime заполняются, только если тело — объект с такими полями.
type Health struct {
	Status string
	Uptime float64

	// Raw — тело ответа как есть: объект, строка, bool и т.п.
	// Тело, которое не является JSON, хранится строкой.
	Raw any
}

// parseHealth разбирает тело /health. Ошибок не бывает: неизвестный
// формат просто оставляет Status и Uptime пустыми.
func parseHealth(body []byte) Health {
	var h Health
	if err := json.Unmarshal(body, &h.Raw); err != nil {
		h.Raw = strings.TrimSpace(string(body))
		return h
	}
	if obj, ok := h.Raw.(map[string]any); ok {
		h.Status, _ = obj["status"].(string)
		h.Uptime, _ = obj["uptime"].(float64)
	}
	return h
}

// ServiceConfig — флаги настроенности внешних сервисов бота.
type ServiceConfig struct {
	TelegramConfigured  bool `json:"telegramConfigured"`
	OpenAIConfigured    bool `json:"openaiConfigured"`
	AnthropicConfigured bool `json:"anthropicConfigured"`
}

// AllConfigured возвращает true, если настроены все три сервиса.
func (c ServiceConfig) AllConfigured() bool {
	return c.TelegramConfigured && c.OpenAIConfigured && c.AnthropicConfigured
}

// BotStatus — ответ GET /api/bot/status.
//
// Старые версии сервера отдают плоские флаги running/telegram/ai
// без блока config; Services сводит оба формата к одному.
type BotStatus struct {
	Config   *ServiceConfig `json:"config,omitempty"`
	Running  bool           `json:"running"`
	Telegram bool           `json:"telegram"`
	AI       bool           `json:"ai"`

	Raw map[string]any `json:"-"`
}

// Services возвращает флаги настроенности сервисов.
func (s *BotStatus) Services() ServiceConfig {
	if s.Config != nil {
		return *s.Config
	}
	return ServiceConfig{
		TelegramConfigured:  s.Telegram,
		OpenAIConfigured:    s.AI,
		AnthropicConfigured: s.AI,
	}
}

// ContentStats — ответ GET /api/content/stats.
type ContentStats struct {
	Pending        int    `json:"pending"`
	Published      int    `json:"published"`
	TotalPublished int    `json:"totalPublished"`
	TotalInQueue   *int   `json:"totalInQueue,omitempty"`
	LastPublished  string `json:"lastPublished,omitempty"`
	LastUpdated    string `json:"lastUpdated,omitempty"`
}

// PostID — идентификатор поста. Сервер отдаёт его числом,
// но строковые ID тоже принимаются.
type PostID string

// UnmarshalJSON принимает как число, так и строку.
func (id *PostID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PostID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("post id: %w", err)
	}
	*id = PostID(n.String())
	return nil
}

// QueuedPost — краткое описание поста в очереди.
type QueuedPost struct {
	ID            PostID `json:"id"`
	ArticlesCount int    `json:"articlesCount"`
	CreatedAt     string `json:"createdAt"`
}

// ContentQueue — ответ GET /api/content/queue.
type ContentQueue struct {
	Total int          `json:"total"`
	Queue []QueuedPost `json:"queue"`
}

// ActionResponse — ответ POST-триггеров (collect, publish, run).
type ActionResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text возвращает сообщение сервера, а при его отсутствии — статус.
func (r *ActionResponse) Text() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Status
}

// SchedulerStatus — ответ GET /api/scheduler/status.
type SchedulerStatus struct {
	Running bool `json:"running"`

	Raw map[string]any `json:"-"`
}

// SchedulerStart — ответ POST /api/scheduler/start.
type SchedulerStart struct {
	Message   string   `json:"message"`
	Schedules []string `json:"schedules"`
}

// ServerInfo — ответ GET /.
type ServerInfo struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// --- Error body ---

// errorResponse — тело ошибки сервера: {"error": "..."}.
type errorResponse struct {
	Error string `json:"error"`
}

