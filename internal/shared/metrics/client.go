package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ClientMetrics conta as chamadas feitas à API remota, por rota normalizada.
type ClientMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewClientMetrics registra os coletores em reg (use prometheus.DefaultRegisterer nos mains).
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	f := promauto.With(reg)
	return &ClientMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "betclient_api_requests_total",
			Help: "Requests issued to the wallet/betting API.",
		}, []string{"method", "route", "code"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "betclient_api_request_duration_seconds",
			Help:    "Latency of requests issued to the wallet/betting API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Observe registra uma chamada; code 0 significa falha de transporte.
func (m *ClientMetrics) Observe(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := strconv.Itoa(code)
	if code == 0 {
		label = "transport_error"
	}
	m.requests.WithLabelValues(method, route, label).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
