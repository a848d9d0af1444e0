package inquiry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var submissions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "dryfruto",
		Subsystem: "bulk_order",
		Name:      "submissions_total",
		Help:      "Bulk order submissions by outcome (ok, invalid, duplicate, failed).",
	},
	[]string{"result"},
)
