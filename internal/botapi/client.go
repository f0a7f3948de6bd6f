package botapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Пути API сервера бота.
const (
	PathInfo            = "/"
	PathHealth          = "/health"
	PathBotStatus       = "/api/bot/status"
	PathBotPublish      = "/api/bot/publish"
	PathBotRun          = "/api/bot/run"
	PathContentStats    = "/api/content/stats"
	PathContentQueue    = "/api/content/queue"
	PathContentCollect  = "/api/content/collect"
	PathSchedulerStatus = "/api/scheduler/status"
	PathSchedulerStart  = "/api/scheduler/start"
)

// HeaderRequestID — заголовок с ID запроса для корреляции с логами сервера.
const HeaderRequestID = "X-Request-ID"

// maxBodySize — ограничение на размер читаемого тела ответа.
const maxBodySize = 4 << 20

// Observer получает результат каждого HTTP-запроса.
// status равен 0, если сервер не ответил.
type Observer interface {
	ObserveRequest(method, path string, status int, duration time.Duration)
}

// Option настраивает Client.
type Option func(*Client)

// WithTimeout задаёт таймаут одного запроса.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient подменяет HTTP-клиент целиком.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithObserver подключает наблюдателя запросов (метрики).
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithLogger задаёт логгер. По умолчанию используется slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client — HTTP-клиент для API сервера AI Business Bot.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
	logger     *slog.Logger
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает базовый URL сервера.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// --- Server ---

// Info возвращает описание сервера и список его endpoint'ов.
func (c *Client) Info(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	err := c.get(ctx, PathInfo, &info)
	return &info, err
}

// Health проверяет, что сервер жив. Любой 2xx ответ считается успехом
// независимо от формы тела.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	body, err := c.do(ctx, http.MethodGet, PathHealth)
	if err != nil {
		return nil, err
	}
	h := parseHealth(body)
	return &h, nil
}

// --- Bot ---

// BotStatus возвращает статус бота и настроенность сервисов.
func (c *Client) BotStatus(ctx context.Context) (*BotStatus, error) {
	var s BotStatus
	raw, err := c.getRaw(ctx, PathBotStatus, &s)
	s.Raw = raw
	return &s, err
}

// Publish публикует следующий пост из очереди.
func (c *Client) Publish(ctx context.Context) (*ActionResponse, error) {
	var r ActionResponse
	err := c.post(ctx, PathBotPublish, &r)
	return &r, err
}

// Run запускает полный цикл бота: сбор новостей и публикацию.
func (c *Client) Run(ctx context.Context) (*ActionResponse, error) {
	var r ActionResponse
	err := c.post(ctx, PathBotRun, &r)
	return &r, err
}

// --- Content ---

// ContentStats возвращает статистику контент-плана.
func (c *Client) ContentStats(ctx context.Context) (*ContentStats, error) {
	var s ContentStats
	err := c.get(ctx, PathContentStats, &s)
	return &s, err
}

// ContentQueue возвращает очередь постов.
func (c *Client) ContentQueue(ctx context.Context) (*ContentQueue, error) {
	var q ContentQueue
	err := c.get(ctx, PathContentQueue, &q)
	return &q, err
}

// Collect запускает сбор новостей. Сервер отвечает сразу,
// сам сбор идёт в фоне.
func (c *Client) Collect(ctx context.Context) (*ActionResponse, error) {
	var r ActionResponse
	err := c.post(ctx, PathContentCollect, &r)
	return &r, err
}

// --- Scheduler ---

// SchedulerStatus возвращает состояние планировщика.
func (c *Client) SchedulerStatus(ctx context.Context) (*SchedulerStatus, error) {
	var s SchedulerStatus
	raw, err := c.getRaw(ctx, PathSchedulerStatus, &s)
	s.Raw = raw
	return &s, err
}

// StartScheduler запускает планировщик.
func (c *Client) StartScheduler(ctx context.Context) (*SchedulerStart, error) {
	var s SchedulerStart
	err := c.post(ctx, PathSchedulerStart, &s)
	return &s, err
}

// --- HTTP helpers ---

func (c *Client) get(ctx context.Context, path string, result any) error {
	_, err := c.getRaw(ctx, path, result)
	return err
}

// getRaw декодирует ответ в result и дополнительно возвращает его как map.
func (c *Client) getRaw(ctx context.Context, path string, result any) (map[string]any, error) {
	body, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if err := decode(http.MethodGet, path, body, result); err != nil {
		return nil, err
	}

	var raw map[string]any
	// Тело может быть не объектом; тогда Raw остаётся пустым.
	_ = json.Unmarshal(body, &raw)
	return raw, nil
}

func (c *Client) post(ctx context.Context, path string, result any) error {
	body, err := c.do(ctx, http.MethodPost, path)
	if err != nil {
		return err
	}
	return decode(http.MethodPost, path, body, result)
}

// do выполняет запрос и возвращает тело успешного ответа.
func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	requestID := uuid.NewString()
	reqErr := func(status int, message string, err error) *RequestError {
		return &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: status,
			Message:    message,
			RequestID:  requestID,
			Err:        err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, reqErr(0, "", fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, path, 0, time.Since(start))
		c.logger.Debug("api request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return nil, reqErr(0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	duration := time.Since(start)
	c.observe(method, path, resp.StatusCode, duration)

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var er errorResponse
		_ = json.Unmarshal(body, &er)
		return nil, reqErr(resp.StatusCode, er.Error, nil)
	}
	if err != nil {
		return nil, reqErr(resp.StatusCode, "", fmt.Errorf("read body: %w", err))
	}

	return body, nil
}

func (c *Client) observe(method, path string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, path, status, d)
	}
}

func decode(method, path string, body []byte, result any) error {
	if result == nil || len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &RequestError{
			Method: method,
			Path:   path,
			Err:    fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}
