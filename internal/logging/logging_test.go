package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Stohl/tsp-skolan-sub000/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		env   string
		level string
		debug bool
	}{
		{"development", "debug", true},
		{"production", "info", false},
		{"production", "warn", false},
	}
	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.level, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Env = tt.env
			cfg.Log.Level = tt.level

			log, err := New(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, log.Core().Enabled(zap.DebugLevel))
		})
	}
}

func TestNew_BadLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Level = "loud"
	_, err := New(cfg)
	assert.Error(t, err)
}
