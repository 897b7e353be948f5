// Package config defines the immutable warmup/cooldown rate configuration
// snapshotted into every delegated stake.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config describes how quickly stake warms up and cools down. It is adopted
// once per stake at delegation time: later changes to the live configuration
// never retroactively affect an in-flight warmup or cooldown (a
// "Config snapshot").
type Config struct {
	// WarmupRate is the fraction, in (0, 1], of the current total effective
	// stake that may move from activating to effective in a single epoch.
	WarmupRate float64 `toml:"warmup_rate"`

	// CooldownRate is the symmetric counterpart for deactivation.
	CooldownRate float64 `toml:"cooldown_rate"`

	// SlashPenalty is reserved for future slashing logic; unused by this
	// engine's arithmetic.
	SlashPenalty uint8 `toml:"slash_penalty"`
}

// DefaultWarmupRate and DefaultCooldownRate match the reference
// implementation's default of 0.25% of the pool per epoch.
const (
	DefaultWarmupRate   = 0.0025
	DefaultCooldownRate = 0.0025
)

// Default returns the conservative default configuration.
func Default() Config {
	return Config{
		WarmupRate:   DefaultWarmupRate,
		CooldownRate: DefaultCooldownRate,
		SlashPenalty: 0,
	}
}

// Validate ensures the configuration is self-consistent. Both rates must lie
// in (0, 1]. (With a zero rate, package stake's max(1) clamp would still move
// one lamport per epoch.)
func (c Config) Validate() error {
	if c.WarmupRate <= 0 || c.WarmupRate > 1 {
		return fmt.Errorf("config: warmup_rate must be in (0, 1], got %v", c.WarmupRate)
	}
	if c.CooldownRate <= 0 || c.CooldownRate > 1 {
		return fmt.Errorf("config: cooldown_rate must be in (0, 1], got %v", c.CooldownRate)
	}
	return nil
}

// Equal reports field-wise equality.
func (c Config) Equal(other Config) bool {
	return c.WarmupRate == other.WarmupRate &&
		c.CooldownRate == other.CooldownRate &&
		c.SlashPenalty == other.SlashPenalty
}

// file mirrors the on-disk TOML layout consumed by Load.
type file struct {
	Stake Config `toml:"stake"`
}

// Load reads a Config from a TOML file at path. Missing optional fields fall
// back to Default().
func Load(path string) (Config, error) {
	cfg := Default()
	var parsed file
	parsed.Stake = cfg
	if _, err := toml.DecodeFile(path, &parsed); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := parsed.Stake.Validate(); err != nil {
		return Config{}, err
	}
	return parsed.Stake, nil
}
