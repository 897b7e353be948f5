package stake

import (
	"math"
	"testing"

	"stakeengine/config"
	"stakeengine/epoch"
	"stakeengine/stakehistory"

	"github.com/stretchr/testify/require"
)

func defaultStake(amount uint64, activation, deactivation epoch.Epoch) *Stake {
	return &Stake{
		Amount:            amount,
		ActivationEpoch:   activation,
		DeactivationEpoch: deactivation,
		Config:            config.Default(),
	}
}

func TestBootstrapStakeAlwaysFullyEffective(t *testing.T) {
	s := defaultStake(1000, epoch.Max, epoch.Max)
	require.True(t, s.IsBootstrap())
	for _, e := range []epoch.Epoch{0, 1, 100, epoch.Max - 1} {
		eff, act, deact := s.ActivatingAndDeactivating(e, nil)
		require.Equal(t, uint64(1000), eff)
		require.Zero(t, act)
		require.Zero(t, deact)
	}
}

func TestWarmupStepFunctionWithNoHistory(t *testing.T) {
	s := defaultStake(1000, 0, 5)
	h := stakehistory.New(0)

	eff, act, deact := s.ActivatingAndDeactivating(0, h)
	require.Equal(t, uint64(0), eff)
	require.Equal(t, uint64(1000), act)
	require.Equal(t, uint64(0), deact)

	for e := epoch.Epoch(1); e <= 4; e++ {
		eff, act, deact = s.ActivatingAndDeactivating(e, h)
		require.Equalf(t, uint64(1000), eff, "epoch %d", e)
		require.Zero(t, act)
		require.Zero(t, deact)
	}

	eff, act, deact = s.ActivatingAndDeactivating(5, h)
	require.Equal(t, uint64(1000), eff)
	require.Zero(t, act)
	require.Equal(t, uint64(1000), deact)

	eff, act, deact = s.ActivatingAndDeactivating(6, h)
	require.Zero(t, eff)
	require.Zero(t, act)
	require.Zero(t, deact)
}

func TestWarmupWithRate(t *testing.T) {
	s := defaultStake(1000, 0, 5)
	h := stakehistory.New(0)
	h.Add(0, stakehistory.Entry{Effective: 1000, Activating: 1000})

	eff, act, deact := s.ActivatingAndDeactivating(2, h)

	weight := float64(1000) / float64(1000)
	wantIncrement := uint64(math.Trunc(weight * 1000 * s.Config.WarmupRate))
	if wantIncrement < 1 {
		wantIncrement = 1
	}
	require.Equal(t, wantIncrement, eff)
	require.Equal(t, uint64(1000)-wantIncrement, act)
	require.Zero(t, deact)
}

func TestBelowActivationEpochIsZero(t *testing.T) {
	s := defaultStake(500, 10, epoch.Max)
	eff, act, deact := s.ActivatingAndDeactivating(3, nil)
	require.Zero(t, eff)
	require.Zero(t, act)
	require.Zero(t, deact)
}

func TestAtActivationEpochIsFullyActivating(t *testing.T) {
	s := defaultStake(500, 10, epoch.Max)
	eff, act, deact := s.ActivatingAndDeactivating(10, nil)
	require.Zero(t, eff)
	require.Equal(t, uint64(500), act)
	require.Zero(t, deact)
}

// property-style check: effective+activating<=stake before deactivation; the
// triple never exceeds 2x stake.
func TestInvariantsHoldAcrossEpochs(t *testing.T) {
	s := defaultStake(10_000, 0, 20)
	h := stakehistory.New(0)
	h.Add(0, stakehistory.Entry{Effective: 50_000, Activating: 10_000})
	for e := epoch.Epoch(1); e < 30; e++ {
		eff, act, deact := s.ActivatingAndDeactivating(e, h)
		if e < 20 {
			require.LessOrEqualf(t, eff+act, s.Amount, "epoch %d", e)
		}
		require.LessOrEqualf(t, eff+act+deact, 2*s.Amount, "epoch %d", e)
		require.LessOrEqual(t, eff, s.Amount)
		h.Add(e, stakehistory.Entry{Effective: eff, Activating: act, Deactivating: deact})
	}
}

func TestMonotonicWarmupConvergesToFullStake(t *testing.T) {
	const total = uint64(1_000_000)
	s := defaultStake(total, 0, epoch.Max)
	h := stakehistory.New(0)
	h.Add(0, stakehistory.Entry{Effective: total, Activating: total})

	prev := uint64(0)
	converged := false
	for e := epoch.Epoch(1); e < 5000; e++ {
		eff, act, _ := s.ActivatingAndDeactivating(e, h)
		require.GreaterOrEqualf(t, eff, prev, "epoch %d: effective must not shrink during warmup", e)
		prev = eff
		h.Add(e, stakehistory.Entry{Effective: eff, Activating: act})
		if eff == total {
			converged = true
			break
		}
	}
	require.True(t, converged, "warmup should converge to full stake amount")
}
