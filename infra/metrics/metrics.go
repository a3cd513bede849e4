package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector tracks data-quality and mutation counters on a private registry.
type Collector struct {
	registry           *prometheus.Registry
	timestampFallbacks prometheus.Counter
	likeToggles        *prometheus.CounterVec
	newPostSignals     prometheus.Counter
}

// NewCollector registers the tradefeed counters.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		timestampFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradefeed_timestamp_fallbacks_total",
			Help: "Post timestamps that could not be parsed and were treated as now.",
		}),
		likeToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradefeed_like_toggles_total",
			Help: "Like toggles by outcome.",
		}, []string{"outcome"}),
		newPostSignals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradefeed_new_posts_signals_total",
			Help: "New posts announced by the signal source.",
		}),
	}
	c.registry.MustRegister(c.timestampFallbacks, c.likeToggles, c.newPostSignals)
	return c
}

// TimestampFallback counts one unparsable timestamp.
func (c *Collector) TimestampFallback() {
	c.timestampFallbacks.Inc()
}

// LikeToggle counts one toggle outcome (likes.Outcome*).
func (c *Collector) LikeToggle(outcome string) {
	c.likeToggles.WithLabelValues(outcome).Inc()
}

// NewPosts counts announced new posts.
func (c *Collector) NewPosts(n int) {
	if n > 0 {
		c.newPostSignals.Add(float64(n))
	}
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
