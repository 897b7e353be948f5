package stake

import (
	"testing"

	"stakeengine/config"
	"stakeengine/epoch"

	"github.com/stretchr/testify/require"
)

func TestRoundTripSerializationUninitialized(t *testing.T) {
	st := Uninitialized()
	decoded, err := Decode(st.Encode())
	require.NoError(t, err)
	require.Equal(t, st, decoded)
}

func TestRoundTripSerializationRewardsPool(t *testing.T) {
	st := RewardsPool()
	decoded, err := Decode(st.Encode())
	require.NoError(t, err)
	require.Equal(t, st, decoded)
}

func TestRoundTripSerializationStake(t *testing.T) {
	var voter [32]byte
	copy(voter[:], []byte("01234567890123456789012345678901"))
	st := NewStake(Stake{
		VoterPubkey:       voter,
		CreditsObserved:   42,
		Amount:            1_000_000,
		ActivationEpoch:   7,
		DeactivationEpoch: epoch.Max,
		Config:            config.Default(),
	})

	decoded, err := Decode(st.Encode())
	require.NoError(t, err)
	require.Equal(t, st, decoded)
}

func TestDecodeRejectsTruncatedBlob(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	require.Error(t, err)

	st := NewStake(Stake{Amount: 1})
	blob := st.Encode()
	_, err = Decode(blob[:len(blob)-1])
	require.Error(t, err)
}
