// Package restart decides when a branch-and-bound search should be abandoned
// and started over, based on live estimates of the final tree size.
//
// The Monitor is the package's entry point. The engine reports every visited
// node through Observe, which fans the event out to the tree counters, the
// subtree sum gap, the five forecasting time series, the windowed search
// progress, and the weighted backtrack estimator. At leaf events the
// configured restart policy is evaluated; once it fires for enough
// consecutive leaves, the Monitor calls Engine.TriggerRestart and resets its
// per-solve state.
//
// Beyond the restart decision the Monitor exposes the blended total tree
// size estimate, a completion percentage suitable for display (optionally
// driven by a loaded regression forest), periodic diagnostic reports, and a
// Prometheus collector.
package restart
