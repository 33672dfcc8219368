package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	mathutil "github.com/prysmaticlabs/prysm-crosslinks/math"
)

// TotalBalance returns the total amount at stake in Gwei
// of input validators.
//
// Spec pseudocode definition:
//
//	def get_total_balance(state: BeaconState, indices: Set[ValidatorIndex]) -> Gwei:
//	  """
//	  Return the combined effective balance of the ``indices``.
//	  ``EFFECTIVE_BALANCE_INCREMENT`` Gwei minimum to avoid divisions by zero.
//	  Math safe up to ~10B ETH, afterwhich this overflows uint64.
//	  """
//	  return Gwei(max(EFFECTIVE_BALANCE_INCREMENT, sum([state.validators[index].effective_balance for index in indices])))
func TotalBalance(cfg *params.BeaconChainConfig, st *state.BeaconState, indices []primitives.ValidatorIndex) uint64 {
	total := uint64(0)
	for _, idx := range indices {
		if uint64(idx) >= uint64(len(st.Validators)) {
			continue
		}
		total += st.Validators[idx].EffectiveBalance
	}
	if total < cfg.EffectiveBalanceIncrement {
		return cfg.EffectiveBalanceIncrement
	}
	return total
}

// TotalActiveBalance returns the total amount at stake in Gwei
// of active validators at the given epoch.
//
// Spec pseudocode definition:
//
//	def get_total_active_balance(state: BeaconState) -> Gwei:
//	  """
//	  Return the combined effective balance of the active validators.
//	  """
//	  return get_total_balance(state, set(get_active_validator_indices(state, get_current_epoch(state))))
func TotalActiveBalance(cfg *params.BeaconChainConfig, st *state.BeaconState, epoch primitives.Epoch) uint64 {
	total := uint64(0)
	for _, v := range st.Validators {
		if IsActiveValidator(v, epoch) {
			total += v.EffectiveBalance
		}
	}
	if total < cfg.EffectiveBalanceIncrement {
		return cfg.EffectiveBalanceIncrement
	}
	return total
}

// BaseReward takes state and validator index and calculate
// individual validator's base reward quotient.
//
// Spec pseudocode definition:
//
//	def get_base_reward(state: BeaconState, index: ValidatorIndex) -> Gwei:
//	  total_balance = get_total_active_balance(state)
//	  effective_balance = state.validators[index].effective_balance
//	  return Gwei(effective_balance * BASE_REWARD_FACTOR // integer_squareroot(total_balance) // BASE_REWARDS_PER_EPOCH)
func BaseReward(cfg *params.BeaconChainConfig, st *state.BeaconState, index primitives.ValidatorIndex, totalBalance uint64) (uint64, error) {
	v, err := st.ValidatorAtIndex(index)
	if err != nil {
		return 0, err
	}
	sqrt := mathutil.IntegerSquareRoot(totalBalance)
	if sqrt == 0 {
		return 0, errors.New("total balance is zero")
	}
	return v.EffectiveBalance * cfg.BaseRewardFactor / sqrt / cfg.BaseRewardsPerEpoch, nil
}

// IncreaseBalance increases validator with the given 'index' balance by 'delta' in Gwei.
//
// Spec pseudocode definition:
//
//	def increase_balance(state: BeaconState, index: ValidatorIndex, delta: Gwei) -> None:
//	  """
//	  Increase the validator balance at index ``index`` by ``delta``.
//	  """
//	  state.balances[index] += delta
func IncreaseBalance(st *state.BeaconState, idx primitives.ValidatorIndex, delta uint64) error {
	if uint64(idx) >= uint64(len(st.Balances)) {
		return errors.Errorf("balance index %d out of range of %d balances", idx, len(st.Balances))
	}
	st.Balances[idx] += delta
	return nil
}

// DecreaseBalance decreases validator with the given 'index' balance by 'delta' in Gwei.
//
// Spec pseudocode definition:
//
//	def decrease_balance(state: BeaconState, index: ValidatorIndex, delta: Gwei) -> None:
//	  """
//	  Decrease the validator balance at index ``index`` by ``delta``, with underflow protection.
//	  """
//	  state.balances[index] = 0 if delta > state.balances[index] else state.balances[index] - delta
func DecreaseBalance(st *state.BeaconState, idx primitives.ValidatorIndex, delta uint64) error {
	if uint64(idx) >= uint64(len(st.Balances)) {
		return errors.Errorf("balance index %d out of range of %d balances", idx, len(st.Balances))
	}
	if delta > st.Balances[idx] {
		st.Balances[idx] = 0
		return nil
	}
	st.Balances[idx] -= delta
	return nil
}
