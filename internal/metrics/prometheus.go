// Package metrics records forecast, cache, HTTP and alert metrics with Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the collectors for one registry.
type Recorder struct {
	registry *prometheus.Registry

	forecasts    *prometheus.CounterVec
	forecastDur  prometheus.Histogram
	forecastWeek prometheus.Histogram
	cacheLookups *prometheus.CounterVec
	itemWrites   *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	alertsSent   prometheus.Counter
	lowestBal    prometheus.Gauge
}

// New creates a recorder on a fresh registry, so several recorders can
// coexist in tests.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Recorder{
		registry: reg,
		forecasts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_forecasts_total",
				Help: "Forecast computations by outcome",
			},
			[]string{"outcome"},
		),
		forecastDur: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashflow_forecast_duration_seconds",
			Help:    "Time spent producing a forecast, snapshot included",
			Buckets: prometheus.DefBuckets,
		}),
		forecastWeek: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashflow_forecast_weeks",
			Help:    "Requested forecast horizon in weeks",
			Buckets: []float64{1, 4, 8, 13, 26, 52, 104, 260, 520},
		}),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_report_cache_lookups_total",
				Help: "Report cache lookups by result",
			},
			[]string{"result"},
		),
		itemWrites: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_item_writes_total",
				Help: "Schedule item writes by kind and action",
			},
			[]string{"kind", "action"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		httpLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cashflow_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		alertsSent: f.NewCounter(prometheus.CounterOpts{
			Name: "cashflow_low_balance_alerts_total",
			Help: "Low balance notifications sent",
		}),
		lowestBal: f.NewGauge(prometheus.GaugeOpts{
			Name: "cashflow_last_lowest_balance",
			Help: "Lowest balance of the most recent scheduled forecast",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordForecast records a finished forecast computation.
func (r *Recorder) RecordForecast(outcome string, numWeeks int, seconds float64) {
	r.forecasts.WithLabelValues(outcome).Inc()
	r.forecastWeek.Observe(float64(numWeeks))
	r.forecastDur.Observe(seconds)
}

// RecordCacheLookup records a report cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

func (r *Recorder) RecordItemWrite(kind, action string) {
	r.itemWrites.WithLabelValues(kind, action).Inc()
}

// RecordHTTP records one served request.
func (r *Recorder) RecordHTTP(route, status string, seconds float64) {
	r.httpRequests.WithLabelValues(route, status).Inc()
	r.httpLatency.WithLabelValues(route).Observe(seconds)
}

// RecordAlertCheck stores the lowest balance seen and counts sent alerts.
func (r *Recorder) RecordAlertCheck(lowest float64, sent bool) {
	r.lowestBal.Set(lowest)
	if sent {
		r.alertsSent.Inc()
	}
}
