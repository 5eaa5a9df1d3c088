package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the service's Prometheus metrics behind a private
// registry. It satisfies the small metric interfaces declared by the
// services, directions and publisher packages, so a nil Collector simply
// means "metrics disabled" everywhere.
type Collector struct {
	reg *prometheus.Registry

	LegsRouted *prometheus.CounterVec // status label: ok|no_route|request_failed
	Builds     *prometheus.CounterVec // outcome label: succeeded|partial|failed

	StopsSkipped  prometheus.Counter
	SnapFallbacks prometheus.Counter

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	EventsPublished  prometheus.Counter
	EventPublishErrs prometheus.Counter
	NATSConnected    prometheus.Gauge

	BuildDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		LegsRouted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourroute_legs_routed_total",
			Help: "Total routed legs by outcome status.",
		}, []string{"status"}),
		Builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourroute_builds_total",
			Help: "Total itinerary builds by outcome.",
		}, []string{"outcome"}),
		StopsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourroute_stops_skipped_total",
			Help: "Total stops dropped because they could not be snapped.",
		}),
		SnapFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourroute_snap_fallbacks_total",
			Help: "Total stops that fell back to their raw coordinate.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourroute_route_cache_hits_total",
			Help: "Total route cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourroute_route_cache_misses_total",
			Help: "Total route cache misses.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourroute_events_published_total",
			Help: "Total itinerary events published.",
		}),
		EventPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourroute_event_publish_errors_total",
			Help: "Total itinerary event publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tourroute_nats_connected",
			Help: "1 if the NATS connection is established, 0 otherwise.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tourroute_build_duration_seconds",
			Help:    "Duration of itinerary builds.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	reg.MustRegister(
		c.LegsRouted, c.Builds,
		c.StopsSkipped, c.SnapFallbacks,
		c.CacheHits, c.CacheMisses,
		c.EventsPublished, c.EventPublishErrs, c.NATSConnected,
		c.BuildDuration,
	)

	return c
}

// services.BuildMetrics implementation.

func (c *Collector) StopSkipped()  { c.StopsSkipped.Inc() }
func (c *Collector) SnapFallback() { c.SnapFallbacks.Inc() }

func (c *Collector) LegRouted(status string) { c.LegsRouted.WithLabelValues(status).Inc() }

func (c *Collector) BuildObserved(outcome string, d time.Duration) {
	c.Builds.WithLabelValues(outcome).Inc()
	c.BuildDuration.Observe(d.Seconds())
}

// directions.CacheMetrics implementation.

func (c *Collector) RouteCacheHit()  { c.CacheHits.Inc() }
func (c *Collector) RouteCacheMiss() { c.CacheMisses.Inc() }

// publisher.PublisherMetrics implementation.

func (c *Collector) EventPublishedInc()  { c.EventsPublished.Inc() }
func (c *Collector) EventPublishErrInc() { c.EventPublishErrs.Inc() }

func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
		return
	}
	c.NATSConnected.Set(0)
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
