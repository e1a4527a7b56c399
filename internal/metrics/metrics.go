package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics содержит все метрики сервиса
type Metrics struct {
	MessagesConsumed prometheus.Counter
	InvalidMessages  prometheus.Counter
	StoreLookups     *prometheus.CounterVec
	HTTPServerReqs   *prometheus.CounterVec

	registry *prometheus.Registry
	factory  promauto.Factory
}

// NewMetrics создает и регистрирует метрики в собственном реестре
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		MessagesConsumed: factory.NewCounter(prometheus.CounterOpts{
			Name: "service_messages_consumed_total",
			Help: "The total number of messages consumed from Kafka.",
		}),
		InvalidMessages: factory.NewCounter(prometheus.CounterOpts{
			Name: "service_invalid_messages_total",
			Help: "The total number of undecodable or invalid messages skipped.",
		}),
		StoreLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "service_store_lookups_total",
			Help: "The total number of order lookups by result.",
		}, []string{"result"}),
		HTTPServerReqs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "service_http_requests_total",
			Help: "The total number of HTTP requests.",
		}, []string{"code", "method"}),
		registry: reg,
		factory:  factory,
	}
}

// TrackStoreSize регистрирует gauge с текущим числом заказов в хранилище
func (m *Metrics) TrackStoreSize(size func() int) {
	m.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "service_store_orders",
		Help: "The number of orders currently held in the store.",
	}, func() float64 {
		return float64(size())
	})
}

// Handler возвращает http.Handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
