package cli

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shaiso/aibot/internal/botapi"
)

// fakeBot — mock сервер бота. Ответы задаются по ключу "METHOD /path".
type fakeBot struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]fakeResponse
	hits      map[string]int
	order     []string
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeBot(t *testing.T) *fakeBot {
	t.Helper()

	f := &fakeBot{
		responses: make(map[string]fakeResponse),
		hits:      make(map[string]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		f.mu.Lock()
		f.hits[key]++
		f.order = append(f.order, key)
		resp, ok := f.responses[key]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Not found"}`))
			return
		}
		w.WriteHeader(resp.status)
		w.Write([]byte(resp.body))
	}))
	t.Cleanup(f.Close)
	return f
}

// on задаёт ответ 200 с телом body.
func (f *fakeBot) on(key, body string) *fakeBot {
	return f.onStatus(key, http.StatusOK, body)
}

func (f *fakeBot) onStatus(key string, status int, body string) *fakeBot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[key] = fakeResponse{status: status, body: body}
	return f
}

func (f *fakeBot) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeBot) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.order)
}

func (f *fakeBot) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.order...)
}

// syncBuffer — bytes.Buffer, безопасный для записи из нескольких горутин.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fixedNow — время для детерминированного вывода расписаний.
var fixedNow = time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestActions создаёт Actions с нулевыми паузами. stdout и stderr
// пишутся в один буфер.
func newTestActions(t *testing.T, baseURL string) (*Actions, *syncBuffer) {
	t.Helper()

	buf := &syncBuffer{}
	a := NewActions(ActionsConfig{
		Client:   botapi.NewClient(baseURL, botapi.WithTimeout(2*time.Second), botapi.WithLogger(discardLogger())),
		Output:   NewOutput(buf, buf),
		Logger:   discardLogger(),
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	})
	return a, buf
}

// closedServerURL возвращает адрес, на котором никто не слушает.
func closedServerURL(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	return url
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output should contain %q, got:\n%s", w, out)
		}
	}
}

func assertNotContains(t *testing.T, out string, unwanted ...string) {
	t.Helper()
	for _, w := range unwanted {
		if strings.Contains(out, w) {
			t.Errorf("output should not contain %q, got:\n%s", w, out)
		}
	}
}

const (
	statsKey     = "GET " + botapi.PathContentStats
	queueKey     = "GET " + botapi.PathContentQueue
	collectKey   = "POST " + botapi.PathContentCollect
	publishKey   = "POST " + botapi.PathBotPublish
	runKey       = "POST " + botapi.PathBotRun
	healthKey    = "GET " + botapi.PathHealth
	botStatusKey = "GET " + botapi.PathBotStatus
	schedKey     = "GET " + botapi.PathSchedulerStatus
	schedStart   = "POST " + botapi.PathSchedulerStart
	infoKey      = "GET " + botapi.PathInfo
)
