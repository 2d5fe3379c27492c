package restart

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JasperNL/treestim/progress"
)

// Policy selects the overall restart strategy.
type Policy string

const (
	// PolicyNever disables restarts entirely.
	PolicyNever Policy = "never"
	// PolicyAlways restarts as soon as the gating conditions allow it.
	PolicyAlways Policy = "always"
	// PolicyEstimation restarts when the tree size estimate exceeds the
	// current node count by the configured factor.
	PolicyEstimation Policy = "estimation"
	// PolicyProgress restarts based on the forecasted remaining nodes.
	PolicyProgress Policy = "progress"
)

// EstimationMethod selects the tree size estimate used by PolicyEstimation.
type EstimationMethod string

const (
	// EstimationTimeSeries uses the blended time-series estimate.
	EstimationTimeSeries EstimationMethod = "timeseries"
	// EstimationRegForest derives the estimate from the regression
	// forest's completion prediction; requires a loaded forest.
	EstimationRegForest EstimationMethod = "regforest"
)

// ProgressMeasure selects how leaf events advance the search progress.
type ProgressMeasure string

const (
	// MeasureUniform adds 2^-depth per leaf.
	MeasureUniform ProgressMeasure = "uniform"
	// MeasureRatio adds the engine's ratio-based node probability.
	MeasureRatio ProgressMeasure = "ratio"
	// MeasureGap tracks the closed primal-dual gap.
	MeasureGap ProgressMeasure = "gap"
	// MeasureFixed adds the engine's fixed node probability.
	MeasureFixed ProgressMeasure = "fixed"
)

// ForecastMethod selects the remaining-nodes forecast for PolicyProgress.
type ForecastMethod string

const (
	// ForecastBacktrack uses the weighted backtrack estimator.
	ForecastBacktrack ForecastMethod = "backtrack"
	// ForecastLinear extrapolates the smoothed progress trend.
	ForecastLinear ForecastMethod = "linear"
	// ForecastWindow extrapolates over a rolling sample window.
	ForecastWindow ForecastMethod = "window"
)

// Validation sentinels.
var (
	ErrBadPolicy       = errors.New("restart: unknown restart policy")
	ErrBadEstimation   = errors.New("restart: unknown estimation method")
	ErrBadMeasure      = errors.New("restart: unknown progress measure")
	ErrBadForecast     = errors.New("restart: unknown forecast method")
	ErrBadRestartLimit = errors.New("restart: restart limit must be -1 (unlimited) or non-negative")
	ErrBadMinNodes     = errors.New("restart: minimum node count must be -1 (disabled) or non-negative")
	ErrBadFactor       = errors.New("restart: estimation factor must be at least 1")
	ErrBadWindowSize   = errors.New("restart: window size out of range")
	ErrBadHitCounter   = errors.New("restart: hit counter limit must be positive")
)

// Config carries every tunable knob of the Monitor. The zero value is not
// valid; start from DefaultConfig.
type Config struct {
	Policy          Policy           `yaml:"policy"`
	Estimation      EstimationMethod `yaml:"estimation"`
	ProgressMeasure ProgressMeasure  `yaml:"progress_measure"`
	Forecast        ForecastMethod   `yaml:"forecast"`

	// RestartLimit caps the number of restarts; -1 means unlimited.
	RestartLimit int `yaml:"restart_limit"`
	// MinNodes is the minimum node count before any restart may trigger;
	// -1 disables the gate.
	MinNodes int64 `yaml:"min_nodes"`
	// CountOnlyLeaves makes MinNodes count visited leaves instead of all
	// created nodes.
	CountOnlyLeaves bool `yaml:"count_only_leaves"`

	// EstimFactor is the overshoot factor: a restart fires only while the
	// estimate exceeds the current node count times this factor.
	EstimFactor float64 `yaml:"estimation_factor"`

	// WindowSize is the sample window of ForecastWindow.
	WindowSize int `yaml:"window_size"`
	// UseAcceleration enables the quadratic fit within the window.
	UseAcceleration bool `yaml:"use_acceleration"`

	// HitCounterLim is the number of consecutive policy hits required
	// before a restart is actually performed.
	HitCounterLim int `yaml:"hit_counter_lim"`

	// PrintReports enables the periodic estimation reports.
	PrintReports bool `yaml:"print_reports"`

	// ForestFile optionally names an RFCSV regression forest to load.
	ForestFile string `yaml:"forest_file"`
}

// DefaultConfig returns the baseline configuration: restarts disabled, the
// uniform progress measure, the linear forecast, and conservative gating.
func DefaultConfig() Config {
	return Config{
		Policy:          PolicyNever,
		Estimation:      EstimationTimeSeries,
		ProgressMeasure: MeasureUniform,
		Forecast:        ForecastLinear,
		RestartLimit:    1,
		MinNodes:        1000,
		CountOnlyLeaves: false,
		EstimFactor:     2.0,
		WindowSize:      100,
		UseAcceleration: false,
		HitCounterLim:   50,
		PrintReports:    false,
	}
}

// Validate checks every field and returns the first violation found.
func (c Config) Validate() error {
	switch c.Policy {
	case PolicyNever, PolicyAlways, PolicyEstimation, PolicyProgress:
	default:
		return fmt.Errorf("%w: %q", ErrBadPolicy, c.Policy)
	}

	switch c.Estimation {
	case EstimationTimeSeries, EstimationRegForest:
	default:
		return fmt.Errorf("%w: %q", ErrBadEstimation, c.Estimation)
	}

	switch c.ProgressMeasure {
	case MeasureUniform, MeasureRatio, MeasureGap, MeasureFixed:
	default:
		return fmt.Errorf("%w: %q", ErrBadMeasure, c.ProgressMeasure)
	}

	switch c.Forecast {
	case ForecastBacktrack, ForecastLinear, ForecastWindow:
	default:
		return fmt.Errorf("%w: %q", ErrBadForecast, c.Forecast)
	}

	if c.RestartLimit < -1 {
		return fmt.Errorf("%w: %d", ErrBadRestartLimit, c.RestartLimit)
	}
	if c.MinNodes < -1 {
		return fmt.Errorf("%w: %d", ErrBadMinNodes, c.MinNodes)
	}
	if c.EstimFactor < 1.0 {
		return fmt.Errorf("%w: %g", ErrBadFactor, c.EstimFactor)
	}
	if c.WindowSize < 2 || c.WindowSize > progress.MaxWindow {
		return fmt.Errorf("%w: %d not in [2,%d]", ErrBadWindowSize, c.WindowSize, progress.MaxWindow)
	}
	if c.HitCounterLim < 1 {
		return fmt.Errorf("%w: %d", ErrBadHitCounter, c.HitCounterLim)
	}

	return nil
}

// LoadConfig reads a YAML configuration file on top of the defaults and
// validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("restart: read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("restart: parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
