package output

import (
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/reqx/packages/core/runner"
)

// Summary prints a latency summary for a completed run. Dry-run results
// carry no response and are excluded.
func (c *Console) Summary(report *runner.Report) {
	// 1us to 60s range, 3 significant digits
	histogram := hdrhistogram.New(1, 60_000_000, 3)

	executed := 0
	for _, r := range report.Results {
		if r.Response == nil {
			continue
		}
		executed++
		histogram.RecordValue(r.Response.Duration.Microseconds())
	}

	if executed == 0 {
		return
	}

	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintln(c.writer, dim("── Summary ──"))
	fmt.Fprintf(c.writer, "  %s %d request(s) in %s\n", bold("Sent:"), executed, report.Duration.Round(time.Millisecond))
	fmt.Fprintf(c.writer, "  %s min=%s p50=%s p95=%s p99=%s max=%s\n",
		bold("Latency:"),
		microseconds(histogram.Min()),
		microseconds(histogram.ValueAtQuantile(50)),
		microseconds(histogram.ValueAtQuantile(95)),
		microseconds(histogram.ValueAtQuantile(99)),
		microseconds(histogram.Max()),
	)
}

func microseconds(us int64) string {
	return (time.Duration(us) * time.Microsecond).Round(10 * time.Microsecond).String()
}
