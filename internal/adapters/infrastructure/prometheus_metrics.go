package infrastructure

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"weatherpush.app/internal/ports"
)

type prometheusCollectors struct {
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	weatherAPICalls *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
}

var (
	collectors     *prometheusCollectors
	collectorsOnce sync.Once
)

// getCollectors registers the metric families once per process. promauto
// panics on duplicate registration, so all adapter instances share them.
func getCollectors() *prometheusCollectors {
	collectorsOnce.Do(func() {
		collectors = &prometheusCollectors{
			cacheHits: promauto.NewCounter(prometheus.CounterOpts{
				Name: "weatherpush_cache_hits_total",
				Help: "The total number of snapshot cache hits",
			}),
			cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
				Name: "weatherpush_cache_misses_total",
				Help: "The total number of snapshot cache misses",
			}),
			weatherAPICalls: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherpush_weather_api_calls_total",
					Help: "The total number of weather backend calls",
				},
				[]string{"backend", "success"},
			),
			deliveries: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherpush_deliveries_total",
					Help: "The total number of push deliveries by outcome",
				},
				[]string{"result"},
			),
		}
	})
	return collectors
}

// PrometheusMetricsAdapter implements the MetricsCollector port
type PrometheusMetricsAdapter struct {
	collectors *prometheusCollectors
}

func NewPrometheusMetricsAdapter() *PrometheusMetricsAdapter {
	return &PrometheusMetricsAdapter{collectors: getCollectors()}
}

func (p *PrometheusMetricsAdapter) RecordCacheHit(ctx context.Context) {
	p.collectors.cacheHits.Inc()
}

func (p *PrometheusMetricsAdapter) RecordCacheMiss(ctx context.Context) {
	p.collectors.cacheMisses.Inc()
}

func (p *PrometheusMetricsAdapter) RecordWeatherAPICall(ctx context.Context, backend string, success bool) {
	outcome := "false"
	if success {
		outcome = "true"
	}
	p.collectors.weatherAPICalls.WithLabelValues(backend, outcome).Inc()
}

func (p *PrometheusMetricsAdapter) RecordDelivery(ctx context.Context, result ports.DeliveryResult) {
	p.collectors.deliveries.WithLabelValues(result.String()).Inc()
}
