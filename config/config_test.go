package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("EVENT_BACKEND", "")
	t.Setenv("DEFAULT_POPULAR_COUNT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, EventBackendSQL, cfg.EventBackend)
	assert.Equal(t, 10, cfg.DefaultPopularCount)
	assert.Equal(t, 10, cfg.DefaultReviewCount)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EVENT_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, EventBackendRedis, cfg.EventBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.False(t, cfg.MetricsEnabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		expectErr bool
	}{
		{"Valid sql backend", Config{EventBackend: "sql", DefaultPopularCount: 10, DefaultReviewCount: 10}, false},
		{"Valid redis backend", Config{EventBackend: "redis", DefaultPopularCount: 1, DefaultReviewCount: 1}, false},
		{"Unknown backend", Config{EventBackend: "kafka", DefaultPopularCount: 10, DefaultReviewCount: 10}, true},
		{"Zero popular count", Config{EventBackend: "sql", DefaultPopularCount: 0, DefaultReviewCount: 10}, true},
		{"Negative review count", Config{EventBackend: "sql", DefaultPopularCount: 10, DefaultReviewCount: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.expectErr {
				t.Errorf("Validate() error = %v, expectErr %v", err, tt.expectErr)
			}
		})
	}
}
