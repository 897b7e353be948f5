package stake

import (
	"encoding/binary"
	"fmt"
	"math"

	"stakeengine/config"
	"stakeengine/epoch"
)

// Kind is the StakeState variant discriminant (a 4-byte
// little-endian tag precedes the variant body).
type Kind uint32

const (
	// KindUninitialized marks an account that exists but holds no
	// delegation.
	KindUninitialized Kind = iota
	// KindStake marks an account holding an active delegation record.
	KindStake
	// KindRewardsPool marks an account as the source of reward lamports. It
	// is never itself a stake.
	KindRewardsPool
)

// stakeBodySize is the encoded size of a Stake body: 32-byte voter pubkey +
// 4 uint64 fields (8 bytes each) + the Config body (two float64 + a padded
// uint8, 24 bytes total).
const (
	configBodySize = 8 + 8 + 8 // warmup_rate, cooldown_rate, slash_penalty (padded to 8)
	stakeBodySize  = 32 + 8 + 8 + 8 + 8 + configBodySize
	discriminantSize = 4
)

// State is the persisted form of a stake account's data blob: a tagged
// union of {Uninitialized, Stake, RewardsPool}.
type State struct {
	Kind  Kind
	Stake Stake // meaningful only when Kind == KindStake
}

// Uninitialized constructs the empty variant.
func Uninitialized() State { return State{Kind: KindUninitialized} }

// RewardsPool constructs the rewards-pool variant.
func RewardsPool() State { return State{Kind: KindRewardsPool} }

// NewStake constructs the Stake(Stake) variant.
func NewStake(s Stake) State { return State{Kind: KindStake, Stake: s} }

// IsUninitialized reports whether the state holds no delegation.
func (st State) IsUninitialized() bool { return st.Kind == KindUninitialized }

// IsStake reports whether the state holds an active delegation.
func (st State) IsStake() bool { return st.Kind == KindStake }

// IsRewardsPool reports whether the state is the rewards-pool sentinel.
func (st State) IsRewardsPool() bool { return st.Kind == KindRewardsPool }

// Size returns the encoded length of this state's variant.
func (st State) Size() int {
	switch st.Kind {
	case KindStake:
		return discriminantSize + stakeBodySize
	default:
		return discriminantSize
	}
}

// Encode serializes the state to its fixed-size, little-endian wire form
// little-endian throughout.
func (st State) Encode() []byte {
	buf := make([]byte, st.Size())
	binary.LittleEndian.PutUint32(buf[0:4], uint32(st.Kind))
	if st.Kind != KindStake {
		return buf
	}

	body := buf[discriminantSize:]
	copy(body[0:32], st.Stake.VoterPubkey[:])
	binary.LittleEndian.PutUint64(body[32:40], st.Stake.CreditsObserved)
	binary.LittleEndian.PutUint64(body[40:48], st.Stake.Amount)
	binary.LittleEndian.PutUint64(body[48:56], st.Stake.ActivationEpoch)
	binary.LittleEndian.PutUint64(body[56:64], st.Stake.DeactivationEpoch)
	binary.LittleEndian.PutUint64(body[64:72], math.Float64bits(st.Stake.Config.WarmupRate))
	binary.LittleEndian.PutUint64(body[72:80], math.Float64bits(st.Stake.Config.CooldownRate))
	body[80] = st.Stake.Config.SlashPenalty
	// body[81:88] left zero as padding.
	return buf
}

// Decode parses a wire-form state blob produced by Encode.
func Decode(data []byte) (State, error) {
	if len(data) < discriminantSize {
		return State{}, fmt.Errorf("stake: state blob too short: %d bytes", len(data))
	}
	kind := Kind(binary.LittleEndian.Uint32(data[0:4]))

	switch kind {
	case KindUninitialized, KindRewardsPool:
		return State{Kind: kind}, nil
	case KindStake:
		if len(data) < discriminantSize+stakeBodySize {
			return State{}, fmt.Errorf("stake: stake body too short: %d bytes", len(data))
		}
		body := data[discriminantSize : discriminantSize+stakeBodySize]
		var s Stake
		copy(s.VoterPubkey[:], body[0:32])
		s.CreditsObserved = binary.LittleEndian.Uint64(body[32:40])
		s.Amount = binary.LittleEndian.Uint64(body[40:48])
		s.ActivationEpoch = epoch.Epoch(binary.LittleEndian.Uint64(body[48:56]))
		s.DeactivationEpoch = epoch.Epoch(binary.LittleEndian.Uint64(body[56:64]))
		s.Config = config.Config{
			WarmupRate:   math.Float64frombits(binary.LittleEndian.Uint64(body[64:72])),
			CooldownRate: math.Float64frombits(binary.LittleEndian.Uint64(body[72:80])),
			SlashPenalty: body[80],
		}
		return State{Kind: KindStake, Stake: s}, nil
	default:
		return State{}, fmt.Errorf("stake: unknown state discriminant %d", kind)
	}
}
