package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/tracking"
)

const rule = "============================================================"

const timeLayout = "2006-01-02 15:04:05"

// summaryNames are the console labels per category.
var summaryNames = map[tracking.Category]string{
	tracking.Delivered:           "Delivered",
	tracking.Booked:              "Booked",
	tracking.InBound:             "Inbound",
	tracking.InTransit:           "In Transit",
	tracking.NoticeLeft:          "Notice Left",
	tracking.OutBound:            "Outbound",
	tracking.InTransitToDelivery: "In Transit to Delivery",
	tracking.Stuck:               "Stuck",
	tracking.Returned:            "Returned",
}

// FormatSummary renders the end-of-run console summary.
func FormatSummary(r *RunResult) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("TRACKING SUMMARY\n")
	b.WriteString(rule + "\n")
	if !r.StartedAt.IsZero() {
		fmt.Fprintf(&b, "Start Time: %s\n", r.StartedAt.Format(timeLayout))
	}
	fmt.Fprintf(&b, "Run ID: %s\n", r.RunID)

	if len(r.Records) == 0 {
		b.WriteString("No tracking data was successfully retrieved.\n")
	} else {
		fmt.Fprintf(&b, "Total Processed: %d\n", len(r.Records))
		for _, c := range tracking.SummaryOrder() {
			fmt.Fprintf(&b, "%s: %d\n", summaryNames[c], r.Categories.Count(c))
		}
	}
	fmt.Fprintf(&b, "Failed/No Info: %d\n", len(r.Miscellaneous))
	fmt.Fprintf(&b, "Skipped (blank tracking number): %d\n", r.Skipped)

	b.WriteString(rule + "\n")
	if r.FinalDataPath != "" {
		fmt.Fprintf(&b, "Consolidated data: %s\n", r.FinalDataPath)
	}
	if r.ReportPath != "" {
		fmt.Fprintf(&b, "Report generated: %s\n", r.ReportPath)
	}
	if !r.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "End Time: %s\n", r.FinishedAt.Format(timeLayout))
		fmt.Fprintf(&b, "Duration: %s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	}
	return b.String()
}
