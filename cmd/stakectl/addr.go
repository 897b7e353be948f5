package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"stakeengine/crypto"
)

// parseStakeAddress accepts either a stake1... bech32 address (the form
// generate-key prints) or a raw 0x-prefixed hex account key, the way the
// teacher's CLI accepts bech32 addresses on its -to/-payee/-payer flags via
// crypto.DecodeAddress. It returns the 20-byte account key either way.
func parseStakeAddress(s string) ([20]byte, error) {
	var key [20]byte
	if addr, err := crypto.DecodeAddress(s); err == nil {
		if addr.Prefix() != crypto.StakePrefix {
			return key, fmt.Errorf("address %q is not a stake address", s)
		}
		if len(addr.Bytes()) != 20 {
			return key, fmt.Errorf("stake address must decode to 20 bytes, got %d", len(addr.Bytes()))
		}
		copy(key[:], addr.Bytes())
		return key, nil
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil || len(raw) != 20 {
		return key, fmt.Errorf("%q is not a valid stake1 address or 20-byte hex key", s)
	}
	copy(key[:], raw)
	return key, nil
}

// parseVoteAddress accepts either a vote1... bech32 address or a raw
// 0x-prefixed hex voter pubkey, returning the 32-byte pubkey either way.
func parseVoteAddress(s string) ([32]byte, error) {
	var key [32]byte
	if addr, err := crypto.DecodeAddress(s); err == nil {
		if addr.Prefix() != crypto.VotePrefix {
			return key, fmt.Errorf("address %q is not a voter address", s)
		}
		if len(addr.Bytes()) != 32 {
			return key, fmt.Errorf("voter address must decode to 32 bytes, got %d", len(addr.Bytes()))
		}
		copy(key[:], addr.Bytes())
		return key, nil
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil || len(raw) != 32 {
		return key, fmt.Errorf("%q is not a valid vote1 address or 32-byte hex pubkey", s)
	}
	copy(key[:], raw)
	return key, nil
}

func formatStakeAddress(key [20]byte) string {
	return crypto.MustNewAddress(crypto.StakePrefix, key[:]).String()
}

func formatVoteAddress(key [32]byte) string {
	return crypto.VoteAddress(key).String()
}
