package content

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dryfruto",
			Subsystem: "content",
			Name:      "resource_loads_total",
			Help:      "Content resource reads by outcome (ok, degraded).",
		},
		[]string{"resource", "result"},
	)

	loadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "dryfruto",
			Subsystem: "content",
			Name:      "load_duration_seconds",
			Help:      "Duration of a full six-resource content load.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	snapshotItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dryfruto",
			Subsystem: "content",
			Name:      "snapshot_items",
			Help:      "Number of items per resource in the committed snapshot.",
		},
		[]string{"resource"},
	)

	lastCommit = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dryfruto",
			Subsystem: "content",
			Name:      "last_commit_timestamp_seconds",
			Help:      "Unix time of the last committed snapshot.",
		},
	)
)

func recordSnapshot(s *Snapshot) {
	snapshotItems.WithLabelValues(ResourceCategories).Set(float64(len(s.Categories)))
	snapshotItems.WithLabelValues(ResourceProducts).Set(float64(len(s.Products)))
	snapshotItems.WithLabelValues(ResourceHeroSlides).Set(float64(len(s.HeroSlides)))
	snapshotItems.WithLabelValues(ResourceTestimonials).Set(float64(len(s.Testimonials)))
	snapshotItems.WithLabelValues(ResourceGiftBoxes).Set(float64(len(s.GiftBoxes)))
	lastCommit.Set(float64(s.LoadedAt.Unix()))
}
