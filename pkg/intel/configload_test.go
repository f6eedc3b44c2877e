package intel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("INTEL_ATTACK_WEIGHT", "0.7")
	t.Setenv("INTEL_ROSTER_PATH", "/tmp/roster.csv")
	defer UpdateConfig(DefaultIntelConfig())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.InDelta(t, 0.7, cfg.AttackWeight, 1e-9)
	assert.InDelta(t, 0.3, cfg.PossessionWeight, 1e-9)
	assert.Equal(t, "/tmp/roster.csv", cfg.RosterPath)

	// LoadConfig installs the result as the active config
	assert.Same(t, cfg, Config)
}

func TestLoadConfigYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("attack_weight: 0.55\n"), 0644))
	t.Setenv("INTEL_CONFIG", path)
	defer UpdateConfig(DefaultIntelConfig())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.InDelta(t, 0.55, cfg.AttackWeight, 1e-9)
	assert.InDelta(t, 0.45, cfg.PossessionWeight, 1e-9)
	// Untouched keys keep their defaults
	assert.Equal(t, DefaultIntelConfig().SnapshotPath, cfg.SnapshotPath)
}

func TestLoadConfigRejectsBadWeight(t *testing.T) {
	t.Setenv("INTEL_ATTACK_WEIGHT", "1.5")
	defer UpdateConfig(DefaultIntelConfig())

	_, err := LoadConfig()
	assert.Error(t, err)
}
