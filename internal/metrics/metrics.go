package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EngineCalls счетчик вызовов операций расчетного ядра
	EngineCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_calls_total",
			Help: "Общее количество вызовов операций расчета",
		},
		[]string{"operation", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"operation", "error_type"},
	)

	// HTTPRequests счетчик HTTP-запросов
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP-запросы к API",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPDuration длительность обработки HTTP-запросов
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Длительность обработки HTTP-запросов",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// ScheduleMonths длина построенных графиков
	ScheduleMonths = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedule_months",
			Help:    "Количество месяцев в построенных графиках",
			Buckets: []float64{12, 36, 60, 120, 180, 240, 360, 480, 600},
		},
	)
)
