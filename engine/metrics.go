package engine

import "github.com/prometheus/client_golang/prometheus"

// cacheMetrics instruments the state cache with hit/miss counters and an
// occupancy gauge. A nil *cacheMetrics is valid and every method becomes a
// no-op, so metrics remain entirely optional.
type cacheMetrics struct {
	hits   prometheus.Counter
	misses prometheus.Counter
	size   prometheus.Gauge
}

// newCacheMetrics builds the cache metric collectors and registers them
// with reg. A nil reg skips registration; the returned *cacheMetrics is
// still usable and simply updates unregistered collectors.
func newCacheMetrics(reg prometheus.Registerer, instance string) *cacheMetrics {
	labels := prometheus.Labels{"instance": instance}
	m := &cacheMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "goephemeris_engine_cache_hits_total",
			Help:        "Number of state-cache lookups that hit.",
			ConstLabels: labels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "goephemeris_engine_cache_misses_total",
			Help:        "Number of state-cache lookups that missed.",
			ConstLabels: labels,
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "goephemeris_engine_cache_size",
			Help:        "Current number of entries held in the state cache.",
			ConstLabels: labels,
		}),
	}
	if reg != nil {
		_ = reg.Register(m.hits)
		_ = reg.Register(m.misses)
		_ = reg.Register(m.size)
	}
	return m
}

func (m *cacheMetrics) incHit() {
	if m == nil {
		return
	}
	m.hits.Inc()
}

func (m *cacheMetrics) incMiss() {
	if m == nil {
		return
	}
	m.misses.Inc()
}

func (m *cacheMetrics) setSize(n int) {
	if m == nil {
		return
	}
	m.size.Set(float64(n))
}
