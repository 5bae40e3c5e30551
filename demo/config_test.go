package demo_test

import (
	"flag"
	"io"
	"testing"

	"github.com/plus3/curvedemo/demo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (demo.Config, error) {
	t.Helper()
	cfg := demo.DefaultConfig()
	fs := flag.NewFlagSet("curvedemo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, demo.DefaultConfig(), cfg)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.True(t, cfg.DebugUI)
}

func TestConfigFlags(t *testing.T) {
	cfg, err := parse(t, "-headless", "-ticks=30", "-t=9", "-width=320", "-height=240", "-debug-ui=false")
	require.NoError(t, err)
	assert.True(t, cfg.Headless)
	assert.Equal(t, uint64(30), cfg.Ticks)
	assert.Equal(t, 9, cfg.Step)
	assert.Equal(t, 320, cfg.Width)
	assert.False(t, cfg.DebugUI)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero width", []string{"-width=0"}},
		{"negative height", []string{"-height=-1"}},
		{"zero tps", []string{"-tps=0"}},
		{"step too large", []string{"-t=10"}},
		{"negative step", []string{"-t=-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
