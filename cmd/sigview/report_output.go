package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"sigview/internal/dataset"
)

const maxListedFailures = 10

func printReport(out io.Writer, report *dataset.Report) {
	if report == nil {
		return
	}
	fmt.Fprintf(out, "Root: %s\n", report.Root)
	fmt.Fprintf(out, "Files: %s discovered, %s parsed, %s failed\n",
		humanize.Comma(int64(report.Discovered)),
		humanize.Comma(int64(report.Succeeded)),
		humanize.Comma(int64(report.Failed)),
	)
	fmt.Fprintf(out, "Rows: %s (%s)\n", humanize.Comma(int64(report.Rows)), report.Duration.Round(time.Millisecond))
	printFailures(out, report.Failures, maxListedFailures)
}

// printFailures lists up to limit failures; limit <= 0 lists all.
func printFailures(out io.Writer, failures []dataset.FileFailure, limit int) {
	if len(failures) == 0 {
		return
	}
	shown := failures
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	colorize := shouldColorize(out)
	fmt.Fprintln(out, sectionTitle("Failures", colorize))
	for _, line := range renderStatusLines(failureStatus(shown), colorize) {
		fmt.Fprintln(out, line)
	}
	if rest := len(failures) - len(shown); rest > 0 {
		fmt.Fprintf(out, "... and %d more failures\n", rest)
	}
}

func rowsSummary(shown, total int) string {
	if shown >= total {
		return fmt.Sprintf("%s rows", humanize.Comma(int64(total)))
	}
	return fmt.Sprintf("showing %s of %s rows", humanize.Comma(int64(shown)), humanize.Comma(int64(total)))
}

// shownRows is the number of rows a display limit lets through.
func shownRows(limit, total int) int {
	if limit <= 0 || limit > total {
		return total
	}
	return limit
}
