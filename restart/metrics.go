package restart

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector exposes the Monitor's live state as Prometheus metrics.
// Register it with a prometheus.Registerer; every scrape reads the current
// values directly from the Monitor, so scrapes must not race with Observe.
type MetricsCollector struct {
	m *Monitor

	nodes      *prometheus.Desc
	visited    *prometheus.Desc
	open       *prometheus.Desc
	leaves     *prometheus.Desc
	progress   *prometheus.Desc
	ssgValue   *prometheus.Desc
	estimate   *prometheus.Desc
	completion *prometheus.Desc
	restarts   *prometheus.Desc
	hits       *prometheus.Desc
}

// NewMetricsCollector creates a collector bound to the given Monitor.
func NewMetricsCollector(m *Monitor) *MetricsCollector {
	return &MetricsCollector{
		m: m,
		nodes: prometheus.NewDesc("treestim_tree_nodes",
			"Total number of nodes created in the current solve", nil, nil),
		visited: prometheus.NewDesc("treestim_tree_visited_nodes",
			"Number of nodes visited in the current solve", nil, nil),
		open: prometheus.NewDesc("treestim_tree_open_nodes",
			"Current size of the open-node frontier", nil, nil),
		leaves: prometheus.NewDesc("treestim_tree_leaves",
			"Number of leaves visited in the current solve", nil, nil),
		progress: prometheus.NewDesc("treestim_search_progress",
			"Uniform leaf progress of the current solve in [0,1]", nil, nil),
		ssgValue: prometheus.NewDesc("treestim_subtree_sum_gap",
			"Current subtree sum gap value", nil, nil),
		estimate: prometheus.NewDesc("treestim_tree_size_estimate",
			"Blended estimate of the final tree size", nil, nil),
		completion: prometheus.NewDesc("treestim_search_completion",
			"Estimated completion of the search in [0,1]", nil, nil),
		restarts: prometheus.NewDesc("treestim_restarts_total",
			"Number of restarts performed", nil, nil),
		hits: prometheus.NewDesc("treestim_restart_policy_hits",
			"Current number of consecutive restart policy hits", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.nodes
	ch <- c.visited
	ch <- c.open
	ch <- c.leaves
	ch <- c.progress
	ch <- c.ssgValue
	ch <- c.estimate
	ch <- c.completion
	ch <- c.restarts
	ch <- c.hits
}

// Collect implements prometheus.Collector.
func (c *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	td := c.m.TreeData()

	ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.GaugeValue, float64(td.NNodes()))
	ch <- prometheus.MustNewConstMetric(c.visited, prometheus.GaugeValue, float64(td.NVisited()))
	ch <- prometheus.MustNewConstMetric(c.open, prometheus.GaugeValue, float64(td.NOpen()))
	ch <- prometheus.MustNewConstMetric(c.leaves, prometheus.GaugeValue, float64(td.NLeaves()))
	ch <- prometheus.MustNewConstMetric(c.progress, prometheus.GaugeValue, td.Progress())
	ch <- prometheus.MustNewConstMetric(c.ssgValue, prometheus.GaugeValue, td.SSG().Value())
	ch <- prometheus.MustNewConstMetric(c.estimate, prometheus.GaugeValue, c.m.TotalSizeEstimate())

	if completed, ok := c.m.Completed(); ok {
		ch <- prometheus.MustNewConstMetric(c.completion, prometheus.GaugeValue, completed)
	}

	ch <- prometheus.MustNewConstMetric(c.restarts, prometheus.CounterValue, float64(c.m.NRestarts()))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.GaugeValue, float64(c.m.HitCounter()))
}
