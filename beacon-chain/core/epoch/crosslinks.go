// Package epoch contains epoch processing libraries. These libraries
// resolve the winning crosslink of every shard at an epoch boundary and
// turn the outcome into validator rewards and penalties.
package epoch

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-crosslinks/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
	"golang.org/x/sync/errgroup"
)

type committeeKey struct {
	slot  primitives.Slot
	index primitives.CommitteeIndex
}

// epochCommittees holds the committee assignments of one epoch.
type epochCommittees struct {
	bySlot  map[committeeKey][]primitives.ValidatorIndex
	byShard map[primitives.Shard][]*helpers.CrosslinkCommittee
}

func newEpochCommittees(cfg *params.BeaconChainConfig, st *state.BeaconState, epoch primitives.Epoch) (*epochCommittees, error) {
	committees, err := helpers.CrosslinkCommittees(cfg, st, epoch)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get crosslink committees of epoch %d", epoch)
	}
	e := &epochCommittees{
		bySlot:  make(map[committeeKey][]primitives.ValidatorIndex, len(committees)),
		byShard: make(map[primitives.Shard][]*helpers.CrosslinkCommittee),
	}
	for _, c := range committees {
		e.bySlot[committeeKey{slot: c.Slot, index: c.CommitteeIndex}] = c.Committee
		e.byShard[c.Shard] = append(e.byShard[c.Shard], c)
	}
	return e, nil
}

// shardMembers returns every validator of the committees crosslinking the shard, once.
func (e *epochCommittees) shardMembers(shard primitives.Shard) []primitives.ValidatorIndex {
	seen := make(map[primitives.ValidatorIndex]bool)
	var members []primitives.ValidatorIndex
	for _, c := range e.byShard[shard] {
		for _, idx := range c.Committee {
			if !seen[idx] {
				seen[idx] = true
				members = append(members, idx)
			}
		}
	}
	return members
}

// MatchAttestations returns the pending attestations recorded for the given
// epoch, which must be the previous or the current epoch.
//
// Spec pseudocode definition:
//
//	def get_matching_source_attestations(state: BeaconState, epoch: Epoch) -> Sequence[PendingAttestation]:
//	  assert epoch in (get_previous_epoch(state), get_current_epoch(state))
//	  return state.current_epoch_attestations if epoch == get_current_epoch(state) else state.previous_epoch_attestations
func MatchAttestations(cfg *params.BeaconChainConfig, st *state.BeaconState, epoch primitives.Epoch) ([]*ethpb.PendingAttestation, error) {
	currentEpoch := helpers.CurrentEpoch(cfg, st)
	previousEpoch := helpers.PrevEpoch(cfg, st)

	// Input epoch for matching the source attestations has to be within range
	// of current epoch & previous epoch.
	if epoch != currentEpoch && epoch != previousEpoch {
		return nil, fmt.Errorf("input epoch: %d != current epoch: %d or previous epoch: %d",
			epoch, currentEpoch, previousEpoch)
	}
	if epoch == currentEpoch {
		return st.CurrentEpochAttestations, nil
	}
	return st.PreviousEpochAttestations, nil
}

// WinningCrosslink returns the winning crosslink of the shard for the epoch
// along with its sorted attesting validator indices and their combined
// effective balance. Eligibility is evaluated against the shard's currently
// committed crosslink. When no attestation is eligible the committed crosslink
// is returned with no attesters. The state is not modified.
//
// Spec pseudocode definition:
//
//	def get_winning_crosslink_and_attesting_indices(state: BeaconState,
//	                                                epoch: Epoch,
//	                                                shard: Shard) -> Tuple[Crosslink, Set[ValidatorIndex]]:
//	  attestations = [a for a in get_matching_source_attestations(state, epoch) if a.data.crosslink.shard == shard]
//	  crosslinks = filter(lambda c: is_valid_crosslink_chain(state.current_crosslinks[shard], c),
//	                      [a.data.crosslink for a in attestations])
//	  # Winning crosslink has the crosslink data root with the most balance voting for it (ties broken lexicographically)
//	  winning_crosslink = max(crosslinks, key=lambda c: (
//	      get_attesting_balance(state, [a for a in attestations if a.data.crosslink == c]), c.data_root
//	  ), default=state.current_crosslinks[shard])
//	  winning_attestations = [a for a in attestations if a.data.crosslink == winning_crosslink]
//	  return winning_crosslink, get_unslashed_attesting_indices(state, winning_attestations)
func WinningCrosslink(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	st *state.BeaconState,
	epoch primitives.Epoch,
	shard primitives.Shard,
) (ethpb.Crosslink, []primitives.ValidatorIndex, uint64, error) {
	_, span := trace.StartSpan(ctx, "core.WinningCrosslink")
	defer span.End()

	if st == nil {
		return ethpb.Crosslink{}, nil, 0, state.ErrNilState
	}
	atts, err := MatchAttestations(cfg, st, epoch)
	if err != nil {
		return ethpb.Crosslink{}, nil, 0, errors.Wrap(err, "could not get matching attestations")
	}
	committees, err := newEpochCommittees(cfg, st, epoch)
	if err != nil {
		return ethpb.Crosslink{}, nil, 0, err
	}
	res, err := winningCrosslink(cfg, st, committees, atts, epoch, shard)
	if err != nil {
		return ethpb.Crosslink{}, nil, 0, err
	}
	return res.Winner, res.AttestingIndices, res.AttestingBalance, nil
}

type crosslinkCandidate struct {
	crosslink ethpb.Crosslink
	attesters map[primitives.ValidatorIndex]bool
}

func winningCrosslink(
	cfg *params.BeaconChainConfig,
	st *state.BeaconState,
	committees *epochCommittees,
	atts []*ethpb.PendingAttestation,
	epoch primitives.Epoch,
	shard primitives.Shard,
) (*state.CrosslinkResolution, error) {
	parent, err := st.CurrentCrosslinkAtShard(shard)
	if err != nil {
		return nil, err
	}

	candidates := make(map[ethpb.Crosslink]*crosslinkCandidate)
	var order []ethpb.Crosslink
	for _, att := range atts {
		c := att.Data.Crosslink
		if c.Shard != shard {
			continue
		}
		if err := helpers.VerifyCrosslinkChain(cfg, parent, c, att.Data.Target.Epoch); err != nil {
			if errors.Is(err, helpers.ErrInvalidCrosslinkChain) {
				staleAttestationsCount.Inc()
				continue
			}
			return nil, err
		}
		committee, ok := committees.bySlot[committeeKey{slot: att.Data.Slot, index: att.Data.CommitteeIndex}]
		if !ok {
			return nil, errors.Errorf("no committee at slot %d with index %d in epoch %d", att.Data.Slot, att.Data.CommitteeIndex, epoch)
		}
		indices, err := helpers.AttestingIndices(att.AggregationBits, committee)
		if err != nil {
			return nil, errors.Wrap(err, "could not get attesting indices")
		}
		cand, ok := candidates[c]
		if !ok {
			cand = &crosslinkCandidate{crosslink: c, attesters: make(map[primitives.ValidatorIndex]bool)}
			candidates[c] = cand
			order = append(order, c)
		}
		for _, idx := range indices {
			cand.attesters[idx] = true
		}
	}

	res := &state.CrosslinkResolution{
		Epoch:            epoch,
		Shard:            shard,
		Winner:           parent,
		AttestingIndices: []primitives.ValidatorIndex{},
	}
	var winner *crosslinkCandidate
	for _, c := range order {
		cand := candidates[c]
		balance, err := attestingBalance(st, cand.attesters)
		if err != nil {
			return nil, err
		}
		if winner == nil || balance > res.AttestingBalance ||
			(balance == res.AttestingBalance && bytes.Compare(c.DataRoot[:], res.Winner.DataRoot[:]) > 0) {
			winner = cand
			res.Winner = c
			res.AttestingBalance = balance
		}
	}
	if winner != nil {
		for idx := range winner.attesters {
			res.AttestingIndices = append(res.AttestingIndices, idx)
		}
		sort.Sort(sortableIndices(res.AttestingIndices))
	}
	return res, nil
}

// attestingBalance sums the effective balances of the attesters. Unlike
// helpers.TotalBalance it returns zero for an empty set.
func attestingBalance(st *state.BeaconState, attesters map[primitives.ValidatorIndex]bool) (uint64, error) {
	total := uint64(0)
	for idx := range attesters {
		v, err := st.ValidatorAtIndex(idx)
		if err != nil {
			return 0, err
		}
		total += v.EffectiveBalance
	}
	return total, nil
}

// ResolveCrosslinks selects the winning crosslink of every shard for the epoch
// and commits each winner that reaches quorum into the current crosslinks.
// It returns one resolution per shard, indexed by shard.
//
// A winner reaches quorum when three times its attesting balance is at least
// twice the total active balance of the epoch, or twice the shard committee
// balance when the CommitteeQuorum feature is enabled.
//
// Shards are independent within one call and are evaluated concurrently when
// the ConcurrentShardResolution feature is enabled. All shards are committed
// before the call returns.
func ResolveCrosslinks(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	st *state.BeaconState,
	epoch primitives.Epoch,
) ([]*state.CrosslinkResolution, error) {
	ctx, span := trace.StartSpan(ctx, "core.ResolveCrosslinks")
	defer span.End()

	if st == nil {
		return nil, state.ErrNilState
	}
	if uint64(len(st.CurrentCrosslinks)) != cfg.ShardCount {
		return nil, errors.Errorf("state has %d current crosslinks, expected SHARD_COUNT %d", len(st.CurrentCrosslinks), cfg.ShardCount)
	}
	atts, err := MatchAttestations(cfg, st, epoch)
	if err != nil {
		return nil, errors.Wrap(err, "could not get matching attestations")
	}
	committees, err := newEpochCommittees(cfg, st, epoch)
	if err != nil {
		return nil, err
	}
	attsByShard := make(map[primitives.Shard][]*ethpb.PendingAttestation)
	for _, att := range atts {
		shard := att.Data.Crosslink.Shard
		attsByShard[shard] = append(attsByShard[shard], att)
	}
	totalActiveBalance := helpers.TotalActiveBalance(cfg, st, epoch)

	resolutions := make([]*state.CrosslinkResolution, cfg.ShardCount)
	resolve := func(shard primitives.Shard) error {
		res, err := winningCrosslink(cfg, st, committees, attsByShard[shard], epoch, shard)
		if err != nil {
			return errors.Wrapf(err, "could not get winning crosslink of shard %d", shard)
		}
		quorumBalance := totalActiveBalance
		if cfg.Features.CommitteeQuorum {
			quorumBalance = helpers.TotalBalance(cfg, st, committees.shardMembers(shard))
		}
		if 3*res.AttestingBalance >= 2*quorumBalance {
			if err := st.UpdateCurrentCrosslinkAtShard(shard, res.Winner); err != nil {
				return err
			}
			res.Committed = true
			committedCrosslinksCount.Inc()
			log.WithFields(logrus.Fields{
				"shard":      shard,
				"epoch":      epoch,
				"startEpoch": res.Winner.StartEpoch,
				"endEpoch":   res.Winner.EndEpoch,
				"dataRoot":   fmt.Sprintf("%#x", bytesutil.Trunc(res.Winner.DataRoot[:])),
			}).Debug("Committed crosslink")
		}
		resolutions[shard] = res
		return nil
	}

	if cfg.Features.ConcurrentShardResolution {
		g, _ := errgroup.WithContext(ctx)
		for s := uint64(0); s < cfg.ShardCount; s++ {
			shard := primitives.Shard(s)
			g.Go(func() error {
				return resolve(shard)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for s := uint64(0); s < cfg.ShardCount; s++ {
			if err := resolve(primitives.Shard(s)); err != nil {
				return nil, err
			}
		}
	}

	committed := 0
	for _, res := range resolutions {
		if res.Committed {
			committed++
		}
	}
	log.WithFields(logrus.Fields{
		"epoch":        epoch,
		"attestations": len(atts),
		"committed":    committed,
	}).Debug("Resolved crosslinks")
	return resolutions, nil
}

// ProcessCrosslinks processes crosslink and finds the crosslink
// with enough state to make it canonical in state.
//
// Spec pseudocode definition:
//
//	def process_crosslinks(state: BeaconState) -> None:
//	  state.previous_crosslinks = [c for c in state.current_crosslinks]
//	  for epoch in (get_previous_epoch(state), get_current_epoch(state)):
//	      for offset in range(SHARD_COUNT):
//	          shard = Shard(offset)
//	          winning_crosslink, attesting_indices = get_winning_crosslink_and_attesting_indices(state, epoch, shard)
//	          if 3 * get_total_balance(state, attesting_indices) >= 2 * get_total_active_balance(state):
//	              state.current_crosslinks[shard] = winning_crosslink
//
// The previous epoch is resolved before the current epoch. A current epoch
// attestation built on the same committed crosslink as a previous epoch winner
// is stale once that winner is committed. The resolutions of the previous
// epoch are recorded in the state for reward accounting.
func ProcessCrosslinks(ctx context.Context, cfg *params.BeaconChainConfig, st *state.BeaconState) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessCrosslinks")
	defer span.End()

	if st == nil {
		return nil, state.ErrNilState
	}
	st.SnapshotCrosslinks()

	prevEpoch := helpers.PrevEpoch(cfg, st)
	prevResolutions, err := ResolveCrosslinks(ctx, cfg, st, prevEpoch)
	if err != nil {
		return nil, errors.Wrapf(err, "could not resolve crosslinks of previous epoch %d", prevEpoch)
	}
	currentEpoch := helpers.CurrentEpoch(cfg, st)
	if _, err := ResolveCrosslinks(ctx, cfg, st, currentEpoch); err != nil {
		return nil, errors.Wrapf(err, "could not resolve crosslinks of current epoch %d", currentEpoch)
	}
	st.CrosslinkResolutions = prevResolutions
	return st, nil
}
