package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsTimeDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"go duration", "90s", 90 * time.Second},
		{"bare seconds", "15", 15 * time.Second},
		{"garbage falls back", "soon", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsTimeDuration("TEST_DURATION", time.Minute))
		})
	}
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", " a, b ,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsSlice("TEST_SLICE", nil))
	assert.Equal(t, []string{"x"}, getEnvAsSlice("TEST_SLICE_MISSING", []string{"x"}))
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("BROKER_URL", "")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Cache.Enabled)
	assert.Empty(t, cfg.Broker.URL)
	assert.Equal(t, "orders.placed", cfg.Broker.Queue)
}
