package collective

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	exchanges    prometheus.Counter
	elements     prometheus.Counter
	waitDuration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		exchanges: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "obstable_collective_exchanges_total",
			Help: "Total number of completed collective exchanges, per member.",
		}),
		elements: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "obstable_collective_elements_total",
			Help: "Total number of local elements contributed to exchanges, per member.",
		}),
		waitDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "obstable_collective_wait_seconds",
			Help:    "Time spent parked at the exchange barrier.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
