package rpc

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// parseAccountKey decodes a 20-byte account key from a hex string, with or
// without the "0x" prefix this codebase's events package renders.
func parseAccountKey(s string) ([20]byte, error) {
	var key [20]byte
	raw, err := decodeHex(s)
	if err != nil {
		return key, err
	}
	if len(raw) != 20 {
		return key, fmt.Errorf("account key must be 20 bytes, got %d", len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

// parseVoterPubkey decodes a 32-byte voter pubkey from a hex string.
func parseVoterPubkey(s string) ([32]byte, error) {
	var key [32]byte
	raw, err := decodeHex(s)
	if err != nil {
		return key, err
	}
	if len(raw) != 32 {
		return key, fmt.Errorf("voter pubkey must be 32 bytes, got %d", len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return raw, nil
}

func formatAccountKey(key [20]byte) string {
	return "0x" + hex.EncodeToString(key[:])
}

func formatVoterPubkey(key [32]byte) string {
	return "0x" + hex.EncodeToString(key[:])
}
