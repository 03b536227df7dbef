package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CacheHitsTotal      prometheus.Counter
	CacheMissesTotal    prometheus.Counter
	FetchesTotal        prometheus.Counter
	FetchErrorsTotal    *prometheus.CounterVec
	StaleFallbacksTotal prometheus.Counter
	AlertChecksTotal    prometheus.Counter
	AlertsTriggeredTotal prometheus.Counter
}

// New registers all collectors on the given registerer. Tests pass a
// fresh prometheus.NewRegistry() to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "wiserate_cache_hits_total",
			Help: "Rate lookups served from the fresh cache",
		}),
		CacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "wiserate_cache_misses_total",
			Help: "Rate lookups that required a provider fetch",
		}),
		FetchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "wiserate_fetches_total",
			Help: "Provider fetches attempted",
		}),
		FetchErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wiserate_fetch_errors_total",
			Help: "Provider fetches that failed, by error kind",
		}, []string{"kind"}),
		StaleFallbacksTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "wiserate_stale_fallbacks_total",
			Help: "Lookups answered from a stale cache entry after a fetch failure",
		}),
		AlertChecksTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "wiserate_alert_checks_total",
			Help: "Alert evaluations performed",
		}),
		AlertsTriggeredTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "wiserate_alerts_triggered_total",
			Help: "Alert evaluations that crossed their threshold",
		}),
	}
}
