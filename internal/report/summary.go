package report

import (
	"fmt"
	"io"

	"db-meta/internal/engine"
)

// PrintSummary writes one tally line per tier and a total line. Skipped counts
// are only shown for update runs.
func PrintSummary(w io.Writer, s engine.Summary, withSkipped bool) {
	fmt.Fprintln(w)
	for _, r := range s.Tiers {
		fmt.Fprintf(w, "%s: %s\n", r.Tier.Title(), tally(r.Executed, r.Skipped, r.Errors, withSkipped))
	}
	line := fmt.Sprintf("Total: %s", tally(s.Executed(), s.Skipped(), s.Errors(), withSkipped))
	if s.Errors() > 0 {
		fmt.Fprintln(w, errorFmt("%s", line))
		return
	}
	fmt.Fprintln(w, headerFmt("%s", line))
}

func tally(executed, skipped, errors int, withSkipped bool) string {
	if withSkipped {
		return fmt.Sprintf("%d executed, %d skipped, %d errors", executed, skipped, errors)
	}
	return fmt.Sprintf("%d executed, %d errors", executed, errors)
}

// PrintExport writes the outcome of an export run.
func PrintExport(w io.Writer, res engine.ExportResult) {
	if !res.Failed() {
		return
	}
	fmt.Fprintln(w)
	for _, tier := range engine.Tiers {
		if err, ok := res.Failures[tier]; ok {
			fmt.Fprintln(w, warnFmt("Warning: %s were not exported completely: %v", tier.Title(), err))
		}
	}
}
