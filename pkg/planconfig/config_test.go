package planconfig_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx7/graphmatch/pkg/planconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := planconfig.DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 64, cfg.BatchSize)
}

func TestLoadFromEnvOverridesDefaults(t *testing.T) {
	t.Setenv("GRAPHMATCH_BATCH_SIZE", "128")
	t.Setenv("GRAPHMATCH_PLAN_CACHE_TTL", "1m")

	cfg := planconfig.LoadFromEnv()
	assert.Equal(t, 128, cfg.BatchSize)
	assert.Equal(t, time.Minute, cfg.PlanCacheTTL)
}

func TestLoadFromEnvFallsBackToDefaultsWhenUnset(t *testing.T) {
	cfg := planconfig.LoadFromEnv()
	assert.Equal(t, planconfig.DefaultConfig().BatchSize, cfg.BatchSize)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graphmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch_size: 32\nplan_cache_size: 10\n"), 0644))

	cfg, err := planconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.BatchSize)
	assert.Equal(t, 10, cfg.PlanCacheSize)
}

func TestValidateRejectsNonPositiveBatchSize(t *testing.T) {
	cfg := planconfig.DefaultConfig()
	cfg.BatchSize = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNegativePlanCacheSize(t *testing.T) {
	cfg := planconfig.DefaultConfig()
	cfg.PlanCacheSize = -1
	assert.Error(t, cfg.Validate())
}
