// Package progress tracks the search progress of one solve as a sampled
// (progress, resources) stream and forecasts the remaining resources needed
// to reach a target progress level.
//
// Samples are appended to a circular window holding the most recent
// observations. Two forecasting modes are available: a trend extrapolation
// driven by double exponential smoothing over the full stream, and a rolling
// window fit that can optionally account for acceleration by fitting a
// quadratic displacement curve through the window's start, mid, and end
// points.
package progress
