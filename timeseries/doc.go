// Package timeseries implements the named per-leaf time series the restart
// policy forecasts tree sizes from.
//
// Five concrete kinds exist, all derived from the shared tree counters:
//
//	Gap           — closed primal-dual gap, 0 → 1
//	Progress      — uniform leaf progress Σ 2^-depth, 0 → 1
//	LeafFrequency — (nleaves − 0.5) / nvisited, −0.5 → 0.5
//	SubtreeSumGap — the SSG value, 1 → 0
//	OpenNodes     — open-node count, 0 → 0
//
// Each series reads its raw value inside one computeRaw switch (no callback
// indirection), smooths stored samples with per-kind double exponential
// smoothing constants, and extrapolates the number of remaining leaves from
// the smoothed trend toward the series' target value.
//
// Memory is bounded: the sample history holds at most 1024 entries. On
// reaching capacity the history is compacted — every second sample kept,
// resolution doubled, the smoother re-derived from the retained half — so a
// series survives arbitrarily long solves in constant space while the
// estimate stream stays continuous.
package timeseries
