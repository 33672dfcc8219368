package blocks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	processedAttestationsCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_processed_attestations_total",
		Help: "Count the number of attestations recorded as pending attestations.",
	})
	rejectedAttestationsCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "beacon_rejected_attestations_total",
		Help: "Count the number of rejected attestations by rejection kind.",
	}, []string{"kind"})
)
