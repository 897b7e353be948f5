package account

import (
	"testing"

	stderrors "errors"

	"stakeengine/config"
	"stakeengine/epoch"
	"stakeengine/errors"
	"stakeengine/events"
	"stakeengine/rewards"
	"stakeengine/stake"
	"stakeengine/stakehistory"

	"github.com/stretchr/testify/require"
)

type recordingEmitter struct {
	events []events.Event
}

func (r *recordingEmitter) Emit(e events.Event) { r.events = append(r.events, e) }

type stubVoteState struct {
	credits      uint64
	epochCredits []rewards.EpochCredit
}

func (s *stubVoteState) Credits() uint64                    { return s.credits }
func (s *stubVoteState) EpochCredits() []rewards.EpochCredit { return s.epochCredits }
func (s *stubVoteState) CommissionSplit(total float64) (float64, float64, bool) {
	return 0, total, false
}

func newVoter(pubkey [32]byte, credits uint64) *KeyedVoterAccount {
	return &KeyedVoterAccount{
		VoterPubkey: pubkey,
		VoteState:   &stubVoteState{credits: credits},
	}
}

func TestDelegateRequiresSignature(t *testing.T) {
	acct := &KeyedAccount{Lamports: 42, State: stake.Uninitialized()}
	voter := newVoter([32]byte{1}, 0)

	err := Delegate(acct, voter, 0, Clock{Epoch: 1}, config.Default(), nil, "")
	require.ErrorIs(t, err, errors.ErrMissingRequiredSignature)
	require.True(t, acct.State.IsUninitialized())
}

func TestDelegateThenRedelegateFails(t *testing.T) {
	acct := &KeyedAccount{Lamports: 42, State: stake.Uninitialized(), Signer: true}
	voter := newVoter([32]byte{9}, 3)
	emit := &recordingEmitter{}

	err := Delegate(acct, voter, 42, Clock{Epoch: 1}, config.Default(), emit, "req-1")
	require.NoError(t, err)
	require.True(t, acct.State.IsStake())
	require.Equal(t, uint64(42), acct.State.Stake.Amount)
	require.Equal(t, uint64(1), acct.State.Stake.ActivationEpoch)
	require.Equal(t, voter.VoterPubkey, acct.State.Stake.VoterPubkey)
	require.Equal(t, voter.Credits(), acct.State.Stake.CreditsObserved)
	require.Len(t, emit.events, 1)
	require.Equal(t, events.TypeStakeDelegated, emit.events[0].EventType())

	err = Delegate(acct, voter, 1, Clock{Epoch: 2}, config.Default(), nil, "")
	require.ErrorIs(t, err, errors.ErrInvalidAccountData)
}

func TestWithdrawBeforeDeactivate(t *testing.T) {
	acct := &KeyedAccount{
		Lamports: 100,
		Signer:   true,
		State: stake.NewStake(stake.Stake{
			Amount:            42,
			ActivationEpoch:   0,
			DeactivationEpoch: epoch.Max,
			Config:            config.Default(),
		}),
	}
	to := &KeyedAccount{}
	history := stakehistory.New(0)

	err := Withdraw(acct, 58, to, Clock{Epoch: 0}, history, nil, "")
	require.NoError(t, err)
	require.Equal(t, uint64(42), acct.Lamports)
	require.Equal(t, uint64(58), to.Lamports)

	err = Withdraw(acct, 1, to, Clock{Epoch: 0}, history, nil, "")
	require.ErrorIs(t, err, errors.ErrInsufficientFunds)
}

func TestRedeemRequiresVoterPubkeyMatch(t *testing.T) {
	acct := &KeyedAccount{
		State: stake.NewStake(stake.Stake{
			Amount:            1,
			ActivationEpoch:   epoch.Max,
			DeactivationEpoch: epoch.Max,
			VoterPubkey:       [32]byte{1, 2, 3},
			Config:            config.Default(),
		}),
	}
	pool := &KeyedAccount{State: stake.RewardsPool(), Lamports: 1000}
	wrongVoter := newVoter([32]byte{9, 9, 9}, 5)

	err := RedeemVoteCredits(acct, wrongVoter, pool, 1.0, stakehistory.New(0), nil, "")
	require.ErrorIs(t, err, errors.ErrInvalidArgument)
}

func TestRedeemWithEmptyPool(t *testing.T) {
	voterKey := [32]byte{4, 5, 6}
	acct := &KeyedAccount{
		State: stake.NewStake(stake.Stake{
			Amount:            1,
			ActivationEpoch:   epoch.Max,
			DeactivationEpoch: epoch.Max,
			VoterPubkey:       voterKey,
			CreditsObserved:   0,
			Config:            config.Default(),
		}),
	}
	pool := &KeyedAccount{State: stake.RewardsPool(), Lamports: 1}
	voter := newVoter(voterKey, 3)
	voter.VoteState = &stubVoteState{
		credits:      3,
		epochCredits: []rewards.EpochCredit{{Epoch: 0, Credits: 3, PrevCredits: 0}},
	}

	err := RedeemVoteCredits(acct, voter, pool, 1.0, stakehistory.New(0), nil, "")
	require.ErrorIs(t, err, errors.ErrUnbalancedInstruction)
	require.Equal(t, uint64(1), pool.Lamports)
}

func TestRedeemNothingToCollect(t *testing.T) {
	voterKey := [32]byte{7}
	acct := &KeyedAccount{
		State: stake.NewStake(stake.Stake{
			Amount:            1,
			ActivationEpoch:   epoch.Max,
			DeactivationEpoch: epoch.Max,
			VoterPubkey:       voterKey,
			CreditsObserved:   5,
			Config:            config.Default(),
		}),
	}
	pool := &KeyedAccount{State: stake.RewardsPool(), Lamports: 1000}
	voter := newVoter(voterKey, 5)
	emit := &recordingEmitter{}

	err := RedeemVoteCredits(acct, voter, pool, 1.0, stakehistory.New(0), emit, "req-2")
	var custom *errors.CustomError
	require.True(t, stderrors.As(err, &custom))
	require.ErrorIs(t, err, errors.ErrNothingToCollect)
	require.Len(t, emit.events, 1)
	require.Equal(t, events.TypeStakeNothingToCollect, emit.events[0].EventType())
}
