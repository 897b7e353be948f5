// Package events defines the structured state-change notifications emitted
// by stake-account operations: a small Event interface plus one struct per
// transition, each
// carrying enough context for a downstream indexer or RPC subscriber to
// render it without re-deriving state.
package events

import (
	"encoding/hex"
	"strconv"
)

const (
	// TypeStakeDelegated is emitted when delegate() transitions an account
	// from Uninitialized to Stake.
	TypeStakeDelegated = "stake.delegated"
	// TypeStakeDeactivated is emitted when deactivate() begins cooldown.
	TypeStakeDeactivated = "stake.deactivated"
	// TypeStakeWithdrawn is emitted when withdraw() moves lamports out.
	TypeStakeWithdrawn = "stake.withdrawn"
	// TypeStakeRewardsClaimed is emitted on a successful redemption.
	TypeStakeRewardsClaimed = "stake.rewardsClaimed"
	// TypeStakeNothingToCollect is emitted when redemption finds no new
	// credits to pay out (the CustomError(1) soft-failure path).
	TypeStakeNothingToCollect = "stake.nothingToCollect"
)

// Event is a structured state change emitted by a stake-account operation.
type Event interface {
	EventType() string
}

// Emitter broadcasts events to downstream subscribers (RPC streams,
// indexers, metrics).
type Emitter interface {
	Emit(Event)
}

// NoopEmitter discards every event. It satisfies Emitter for callers that
// don't care to observe operations.
type NoopEmitter struct{}

// Emit implements Emitter.
func (NoopEmitter) Emit(Event) {}

// StakeDelegated captures a new delegation.
type StakeDelegated struct {
	RequestID        string
	StakeAccount     [20]byte
	VoterPubkey      [32]byte
	Amount           uint64
	ActivationEpoch  uint64
	CreditsObserved  uint64
}

// EventType satisfies Event.
func (StakeDelegated) EventType() string { return TypeStakeDelegated }

// Attributes renders the event as a flat string map, the form the HTTP/
// websocket surfaces broadcast to subscribers.
func (e StakeDelegated) Attributes() map[string]string {
	return map[string]string{
		"requestId":       e.RequestID,
		"account":         hexAddr(e.StakeAccount),
		"voter":           hexPubkey(e.VoterPubkey),
		"amount":          formatAmount(e.Amount),
		"activationEpoch": formatAmount(e.ActivationEpoch),
		"creditsObserved": formatAmount(e.CreditsObserved),
	}
}

// StakeDeactivated captures the start of cooldown.
type StakeDeactivated struct {
	RequestID         string
	StakeAccount      [20]byte
	DeactivationEpoch uint64
}

// EventType satisfies Event.
func (StakeDeactivated) EventType() string { return TypeStakeDeactivated }

// Attributes renders the event as a flat string map.
func (e StakeDeactivated) Attributes() map[string]string {
	return map[string]string{
		"requestId":         e.RequestID,
		"account":           hexAddr(e.StakeAccount),
		"deactivationEpoch": formatAmount(e.DeactivationEpoch),
	}
}

// StakeWithdrawn captures a lamport withdrawal.
type StakeWithdrawn struct {
	RequestID    string
	StakeAccount [20]byte
	To           [20]byte
	Lamports     uint64
	Locked       uint64
}

// EventType satisfies Event.
func (StakeWithdrawn) EventType() string { return TypeStakeWithdrawn }

// Attributes renders the event as a flat string map.
func (e StakeWithdrawn) Attributes() map[string]string {
	return map[string]string{
		"requestId": e.RequestID,
		"account":   hexAddr(e.StakeAccount),
		"to":        hexAddr(e.To),
		"lamports":  formatAmount(e.Lamports),
		"locked":    formatAmount(e.Locked),
	}
}

// StakeRewardsClaimed captures a redemption split between voter and staker.
type StakeRewardsClaimed struct {
	RequestID       string
	StakeAccount    [20]byte
	VoterAccount    [20]byte
	VoterReward     uint64
	StakerReward    uint64
	CreditsObserved uint64
}

// EventType satisfies Event.
func (StakeRewardsClaimed) EventType() string { return TypeStakeRewardsClaimed }

// Attributes renders the event as a flat string map.
func (e StakeRewardsClaimed) Attributes() map[string]string {
	return map[string]string{
		"requestId":       e.RequestID,
		"account":         hexAddr(e.StakeAccount),
		"voterAccount":    hexAddr(e.VoterAccount),
		"voterReward":     formatAmount(e.VoterReward),
		"stakerReward":    formatAmount(e.StakerReward),
		"creditsObserved": formatAmount(e.CreditsObserved),
	}
}

// StakeNothingToCollect captures a redemption attempt that found no new
// credits.
type StakeNothingToCollect struct {
	RequestID    string
	StakeAccount [20]byte
}

// EventType satisfies Event.
func (StakeNothingToCollect) EventType() string { return TypeStakeNothingToCollect }

// Attributes renders the event as a flat string map.
func (e StakeNothingToCollect) Attributes() map[string]string {
	return map[string]string{
		"requestId": e.RequestID,
		"account":   hexAddr(e.StakeAccount),
	}
}

func formatAmount(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func hexAddr(b [20]byte) string {
	return "0x" + hex.EncodeToString(b[:])
}

func hexPubkey(b [32]byte) string {
	return "0x" + hex.EncodeToString(b[:])
}
