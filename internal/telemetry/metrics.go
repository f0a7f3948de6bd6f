package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — Prometheus метрики CLI.
//
// Реализует botapi.Observer, поэтому подключается к клиенту напрямую.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	queuePending    prometheus.Gauge
	monitorTicks    *prometheus.CounterVec
}

// NewMetrics создаёт метрики и регистрирует их в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aibot_api_requests_total",
			Help: "Количество запросов к API бота",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aibot_api_request_duration_seconds",
			Help:    "Длительность запросов к API бота",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		queuePending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aibot_queue_pending",
			Help: "Постов в очереди на последней проверке мониторинга",
		}),
		monitorTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aibot_monitor_ticks_total",
			Help: "Итерации мониторинга по результату",
		}, []string{"result"}),
	}

	reg.MustRegister(m.requestsTotal, m.requestDuration, m.queuePending, m.monitorTicks)
	return m
}

// ObserveRequest учитывает один HTTP-запрос. status=0 — сервер не ответил.
func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(method, path, label).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// SetQueuePending запоминает размер очереди.
func (m *Metrics) SetQueuePending(n int) {
	m.queuePending.Set(float64(n))
}

// MonitorTick учитывает итерацию мониторинга.
func (m *Metrics) MonitorTick(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.monitorTicks.WithLabelValues(result).Inc()
}
