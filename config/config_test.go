package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsOutOfRangeRates(t *testing.T) {
	cases := []Config{
		{WarmupRate: 0, CooldownRate: DefaultCooldownRate},
		{WarmupRate: DefaultWarmupRate, CooldownRate: 0},
		{WarmupRate: 1.5, CooldownRate: DefaultCooldownRate},
		{WarmupRate: DefaultWarmupRate, CooldownRate: -0.1},
	}
	for _, c := range cases {
		require.Error(t, c.Validate())
	}
}

func TestLoadAppliesDefaultsForMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stake.toml")
	require.NoError(t, os.WriteFile(path, []byte("[stake]\nwarmup_rate = 0.01\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.01, cfg.WarmupRate)
	require.Equal(t, DefaultCooldownRate, cfg.CooldownRate)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stake.toml")
	require.NoError(t, os.WriteFile(path, []byte("[stake]\nwarmup_rate = 0\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
