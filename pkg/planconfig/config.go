// Package planconfig holds the handful of knobs this core exposes for
// tuning rather than correctness: the join executor's batch size and
// the plan cache's capacity/TTL. Spec §9 is explicit that these are
// implementation tuning knobs, never part of the observable output
// contract, so unlike NEO4J_*-compatible Config in larger Cypher
// engines there's no auth, server, or compliance surface here — those
// concerns belong to the external CLI/server harness, not the core.
package planconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the core's tunable parameters.
//
// Example Usage:
//
//	cfg := planconfig.DefaultConfig()
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
type Config struct {
	// BatchSize bounds how many extended prefixes the join executor
	// accumulates before recursing into the next stage (spec §4.5).
	BatchSize int `yaml:"batch_size"`
	// PlanCacheSize is the maximum number of compiled plans kept in
	// pkg/plancache's LRU.
	PlanCacheSize int `yaml:"plan_cache_size"`
	// PlanCacheTTL is how long a cached plan remains valid before a
	// lookup treats it as a miss.
	PlanCacheTTL time.Duration `yaml:"plan_cache_ttl"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:     64,
		PlanCacheSize: 1000,
		PlanCacheTTL:  5 * time.Minute,
	}
}

// LoadFromEnv loads configuration from environment variables, falling
// back to DefaultConfig's values for anything unset.
//
// Environment Variables:
//   - GRAPHMATCH_BATCH_SIZE
//   - GRAPHMATCH_PLAN_CACHE_SIZE
//   - GRAPHMATCH_PLAN_CACHE_TTL
func LoadFromEnv() *Config {
	cfg := DefaultConfig()
	cfg.BatchSize = getEnvInt("GRAPHMATCH_BATCH_SIZE", cfg.BatchSize)
	cfg.PlanCacheSize = getEnvInt("GRAPHMATCH_PLAN_CACHE_SIZE", cfg.PlanCacheSize)
	cfg.PlanCacheTTL = getEnvDuration("GRAPHMATCH_PLAN_CACHE_TTL", cfg.PlanCacheTTL)
	return cfg
}

// Load reads configuration from a YAML file, starting from
// DefaultConfig's values for anything the file omits.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("planconfig: batch size must be positive, got %d", c.BatchSize)
	}
	if c.PlanCacheSize < 0 {
		return fmt.Errorf("planconfig: plan cache size must be non-negative, got %d", c.PlanCacheSize)
	}
	if c.PlanCacheTTL < 0 {
		return fmt.Errorf("planconfig: plan cache TTL must be non-negative, got %s", c.PlanCacheTTL)
	}
	return nil
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}
