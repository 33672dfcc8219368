package blocks

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/require"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/util"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestAttestationCounters(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st, keys := util.DeterministicGenesisState(t, cfg, 64)
	st.Slot = cfg.SlotsPerEpoch + 1

	processed := counterValue(t, processedAttestationsCount)
	timing := counterValue(t, rejectedAttestationsCount.WithLabelValues("timing"))

	data := util.NewAttestationData(t, cfg, st, 2, 0, util.DataRoot(0xaa))
	st, err := ProcessAttestation(context.Background(), cfg, st, util.NewAttestation(t, cfg, st, data, keys, nil))
	require.NoError(t, err)
	assert.Equal(t, processed+1, counterValue(t, processedAttestationsCount))

	// An attestation for the state's own slot is not yet includable.
	early := util.NewAttestationData(t, cfg, st, st.Slot, 0, util.DataRoot(0xbb))
	_, err = ProcessAttestation(context.Background(), cfg, st, util.NewAttestation(t, cfg, st, early, keys, nil))
	require.ErrorContains(t, ErrTiming.Error(), err)
	assert.Equal(t, timing+1, counterValue(t, rejectedAttestationsCount.WithLabelValues("timing")))
	assert.Equal(t, processed+1, counterValue(t, processedAttestationsCount))
}
