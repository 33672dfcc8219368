package epoch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	committedCrosslinksCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_committed_crosslinks_total",
		Help: "Count the number of shard crosslinks that reached quorum and were committed.",
	})
	staleAttestationsCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "beacon_stale_crosslink_attestations_total",
		Help: "Count the number of pending attestations whose crosslink no longer extends the committed crosslink.",
	})
)
