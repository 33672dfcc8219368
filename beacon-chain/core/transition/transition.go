// Package transition implements the crosslink part of the epoch transition
// as a caller would drive it: crosslink resolution followed by the crosslink
// rewards and penalties of the previous epoch.
package transition

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/epoch"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ProcessEpochCrosslinks runs the crosslink epoch transition on a copy of the
// pre state and returns the post state along with the deltas applied to it.
// The pre state is not modified.
//
// Spec pseudocode definition:
//
//	process_crosslinks(state)
//	rewards, penalties = get_crosslink_deltas(state)
//	for index in range(len(state.validators)):
//	    increase_balance(state, ValidatorIndex(index), rewards[index])
//	    decrease_balance(state, ValidatorIndex(index), penalties[index])
func ProcessEpochCrosslinks(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	pre *state.BeaconState,
) (*state.BeaconState, []uint64, []uint64, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ProcessEpochCrosslinks")
	defer span.End()

	if pre == nil {
		return nil, nil, nil, state.ErrNilState
	}
	post, err := epoch.ProcessCrosslinks(ctx, cfg, pre.Copy())
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "could not process crosslinks")
	}
	rewards, penalties, err := epoch.CrosslinkDeltas(ctx, cfg, post)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "could not get crosslink deltas")
	}
	if err := epoch.ApplyDeltas(post, rewards, penalties); err != nil {
		return nil, nil, nil, errors.Wrap(err, "could not apply crosslink deltas")
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		var totalRewards, totalPenalties uint64
		for i := range rewards {
			totalRewards += rewards[i]
			totalPenalties += penalties[i]
		}
		log.WithFields(logrus.Fields{
			"slot":           post.Slot,
			"epoch":          helpers.CurrentEpoch(cfg, post),
			"totalRewards":   totalRewards,
			"totalPenalties": totalPenalties,
		}).Debug("Processed epoch crosslinks")
	}
	return post, rewards, penalties, nil
}
