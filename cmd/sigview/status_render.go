package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"

	"sigview/internal/dataset"
	"sigview/internal/preflight"
	"sigview/internal/sigmf"
)

// severity grades a doctor check or a per-file ingest failure.
type severity int

const (
	severityNote severity = iota
	severityPass
	severitySkip
	severityFail
)

const colorReset = "\x1b[0m"

var severityStyles = [...]struct{ tag, color string }{
	severityNote: {"note", "\x1b[36m"},
	severityPass: {"pass", "\x1b[32m"},
	severitySkip: {"skip", "\x1b[33m"},
	severityFail: {"fail", "\x1b[31m"},
}

// statusLine is one labelled row of doctor or failure output.
type statusLine struct {
	Label  string
	Level  severity
	Detail string
}

// renderStatusLines pads labels to the widest one in the block so details
// line up.
func renderStatusLines(lines []statusLine, colorize bool) []string {
	width := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l.Label); n > width {
			width = n
		}
	}
	rendered := make([]string, len(lines))
	for i, l := range lines {
		style := severityStyles[l.Level]
		tag := fmt.Sprintf("%-4s", style.tag)
		if colorize {
			tag = style.color + tag + colorReset
		}
		text := fmt.Sprintf("  %s  %-*s  %s", tag, width, l.Label, l.Detail)
		rendered[i] = strings.TrimRight(text, " ")
	}
	return rendered
}

func sectionTitle(title string, colorize bool) string {
	title = strings.TrimSpace(title) + ":"
	if colorize {
		return "\x1b[1m" + title + colorReset
	}
	return title
}

func preflightStatus(results []preflight.Result) []statusLine {
	lines := make([]statusLine, 0, len(results))
	for _, r := range results {
		level := severityFail
		if r.Passed {
			level = severityPass
		}
		lines = append(lines, statusLine{Label: r.Name, Level: level, Detail: r.Detail})
	}
	return lines
}

// failureSeverity separates files skipped for layout reasons (unreadable
// directory, no data file beside the metadata) from files whose content was
// rejected.
func failureSeverity(kind string) severity {
	switch kind {
	case dataset.KindWalk, sigmf.KindMissingDataFile:
		return severitySkip
	default:
		return severityFail
	}
}

func failureStatus(failures []dataset.FileFailure) []statusLine {
	lines := make([]statusLine, len(failures))
	for i, f := range failures {
		lines[i] = statusLine{
			Label:  f.Kind,
			Level:  failureSeverity(f.Kind),
			Detail: f.Path + ": " + f.Message,
		}
	}
	return lines
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
