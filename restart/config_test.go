package restart_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JasperNL/treestim/restart"
)

func TestConfig_DefaultsValid(t *testing.T) {
	cfg := restart.DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, restart.PolicyNever, cfg.Policy)
	assert.EqualValues(t, 1000, cfg.MinNodes)
	assert.Equal(t, 1, cfg.RestartLimit)
	assert.Equal(t, 50, cfg.HitCounterLim)
	assert.Equal(t, 100, cfg.WindowSize)
	assert.Equal(t, 2.0, cfg.EstimFactor)
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*restart.Config)
		want   error
	}{
		{"bad policy", func(c *restart.Config) { c.Policy = "sometimes" }, restart.ErrBadPolicy},
		{"bad estimation", func(c *restart.Config) { c.Estimation = "oracle" }, restart.ErrBadEstimation},
		{"bad measure", func(c *restart.Config) { c.ProgressMeasure = "vibes" }, restart.ErrBadMeasure},
		{"bad forecast", func(c *restart.Config) { c.Forecast = "tea-leaves" }, restart.ErrBadForecast},
		{"restart limit below -1", func(c *restart.Config) { c.RestartLimit = -2 }, restart.ErrBadRestartLimit},
		{"min nodes below -1", func(c *restart.Config) { c.MinNodes = -2 }, restart.ErrBadMinNodes},
		{"factor below one", func(c *restart.Config) { c.EstimFactor = 0.5 }, restart.ErrBadFactor},
		{"window too small", func(c *restart.Config) { c.WindowSize = 1 }, restart.ErrBadWindowSize},
		{"window too large", func(c *restart.Config) { c.WindowSize = 501 }, restart.ErrBadWindowSize},
		{"zero hit counter", func(c *restart.Config) { c.HitCounterLim = 0 }, restart.ErrBadHitCounter},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := restart.DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}

	t.Run("unlimited restarts allowed", func(t *testing.T) {
		cfg := restart.DefaultConfig()
		cfg.RestartLimit = -1
		assert.NoError(t, cfg.Validate())
	})

	t.Run("disabled min nodes allowed", func(t *testing.T) {
		cfg := restart.DefaultConfig()
		cfg.MinNodes = -1
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"policy: always\nmin_nodes: 5\nhit_counter_lim: 2\n"), 0o644))

	cfg, err := restart.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, restart.PolicyAlways, cfg.Policy)
	assert.EqualValues(t, 5, cfg.MinNodes)
	assert.Equal(t, 2, cfg.HitCounterLim)

	// untouched fields keep their defaults
	assert.Equal(t, restart.ForecastLinear, cfg.Forecast)
	assert.Equal(t, 2.0, cfg.EstimFactor)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy: flip-a-coin\n"), 0o644))

	_, err := restart.LoadConfig(path)
	assert.ErrorIs(t, err, restart.ErrBadPolicy)

	_, err = restart.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
