package voxtrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.InDelta(t, 1e-5, cfg.Epsilon(), 1e-10)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		err    error
	}{
		{"epsilon too small", func(c *Config) { c.EpsilonExponent = 0 }, ErrInvalidEpsilon},
		{"epsilon too large", func(c *Config) { c.EpsilonExponent = 12 }, ErrInvalidEpsilon},
		{"zero world size", func(c *Config) { c.WorldSize = 0 }, ErrInvalidWorldSize},
		{"negative rebuild cycle", func(c *Config) { c.RebuildCycle = -1 }, ErrInvalidRebuildCycle},
		{"no workers", func(c *Config) { c.Workers = 0 }, ErrInvalidRender},
		{"no stretch", func(c *Config) { c.Stretch = 0 }, ErrInvalidRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.err)
		})
	}
}
