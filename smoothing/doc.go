// Package smoothing provides the online smoothers shared by the estimation
// packages: double exponential smoothing (level + trend) for time-series
// forecasting, and plain single exponential smoothing for damping an
// already-derived estimate stream.
//
// Double exponential smoothing maintains two state variables per stream:
//
//	level_t = α·x_t + (1−α)·(level_{t−1} + trend_{t−1})
//	trend_t = β·(level_t − level_{t−1}) + (1−β)·trend_{t−1}
//
// The state is undefined (Invalid) until the first observation; the first
// sample fixes the level and derives the initial trend from the configured
// initial value, so the smoother is deterministic from the first two samples.
//
// Both smoothers are O(1) per observation and allocation-free after
// construction; they are value types and safe to embed.
package smoothing
