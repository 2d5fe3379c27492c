package restart

import (
	"fmt"
	"strings"
	"time"

	"github.com/JasperNL/treestim/core"
)

// invalidToDash renders a value with the given precision, or "-" for the
// Invalid sentinel.
func invalidToDash(v float64, digits int) string {
	if v == core.Invalid {
		return "-"
	}

	return fmt.Sprintf("%11.*f", digits, v)
}

// Report renders the diagnostic estimation block: the tree counters followed
// by one row per estimator. A positive reportNum adds the numbered header
// with the elapsed time and the matching trailer; 0 omits both.
func (m *Monitor) Report(reportNum int) string {
	var sb strings.Builder

	if reportNum > 0 {
		fmt.Fprintf(&sb, "Report %d\nTime Elapsed: %.2f\n", reportNum, time.Since(m.started).Seconds())
	}

	fmt.Fprintf(&sb, "  %-17s: %s\n", "Tree Data", m.td.String())

	fmt.Fprintf(&sb, "Tree Estimation    : %11s %11s %11s %11s %11s\n",
		"estim", "value", "trend", "resolution", "smooth")

	fmt.Fprintf(&sb, "  %-17s: %11.0f %11s %11s %11s %11s\n",
		"wbe", m.wbe.Estimate(), "-", "-", "-", "-")

	for _, ts := range m.series {
		fmt.Fprintf(&sb, "  %-17s: %11.0f %11.5f %11s %11d %11s\n",
			ts.Name(),
			ts.Estimate(m.td),
			ts.Current(),
			invalidToDash(ts.Trend(), 5),
			ts.Resolution(),
			invalidToDash(ts.SmoothEstimate(), 0))
	}

	fmt.Fprintf(&sb, "  %-17s: %11.0f %11s %11s %11s %11s\n",
		"total blend", m.TotalSizeEstimate(), "-", "-", "-", "-")

	if reportNum > 0 {
		fmt.Fprintf(&sb, "End of Report %d\n", reportNum)
	}

	return sb.String()
}
