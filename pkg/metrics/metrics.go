package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	// Бизнес-метрики
	OrdersCreated       *prometheus.CounterVec
	SlotConflicts       *prometheus.CounterVec
	OrdersSettled       *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests.",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request latency.",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query latency.",
				ConstLabels: constLabels,
				Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		DBOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_open_connections",
				Help:        "Number of established connections.",
				ConstLabels: constLabels,
			},
			[]string{},
		),
		DBInUse: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_in_use_connections",
				Help:        "Number of connections currently in use.",
				ConstLabels: constLabels,
			},
			[]string{},
		),
		DBIdle: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_idle_connections",
				Help:        "Number of idle connections.",
				ConstLabels: constLabels,
			},
			[]string{},
		),
		DBWaitCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_wait_count",
				Help:        "Total number of connections waited for.",
				ConstLabels: constLabels,
			},
			[]string{},
		),
		OrdersCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "orders_created_total",
				Help:        "Orders created, by kind (service or product).",
				ConstLabels: constLabels,
			},
			[]string{"kind"},
		),
		SlotConflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "slot_conflicts_total",
				Help:        "Order submissions rejected because the slot was taken.",
				ConstLabels: constLabels,
			},
			[]string{"source"},
		),
		OrdersSettled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "orders_settled_total",
				Help:        "Order completions, by outcome (settled or replayed).",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
		NotificationsFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "notifications_failed_total",
				Help:        "Notifications that could not be enqueued.",
				ConstLabels: constLabels,
			},
			[]string{"event"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.OrdersCreated,
		m.SlotConflicts,
		m.OrdersSettled,
		m.NotificationsFailed,
	)

	return m
}

// IncOrderCreated nil-safe инкремент счетчика созданных заказов
func (m *Metrics) IncOrderCreated(kind string) {
	if m == nil {
		return
	}
	m.OrdersCreated.WithLabelValues(kind).Inc()
}

// IncSlotConflict nil-safe инкремент счетчика конфликтов слотов
func (m *Metrics) IncSlotConflict(source string) {
	if m == nil {
		return
	}
	m.SlotConflicts.WithLabelValues(source).Inc()
}

// IncOrderSettled nil-safe инкремент счетчика завершений
func (m *Metrics) IncOrderSettled(outcome string) {
	if m == nil {
		return
	}
	m.OrdersSettled.WithLabelValues(outcome).Inc()
}

// IncNotificationFailed nil-safe инкремент счетчика неотправленных уведомлений
func (m *Metrics) IncNotificationFailed(event string) {
	if m == nil {
		return
	}
	m.NotificationsFailed.WithLabelValues(event).Inc()
}
