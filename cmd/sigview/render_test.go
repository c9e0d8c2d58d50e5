package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"

	"sigview/internal/dataset"
	"sigview/internal/preflight"
	"sigview/internal/sigmf"
)

func TestRenderStatusLinesAlignsLabels(t *testing.T) {
	got := renderStatusLines([]statusLine{
		{Label: "Catalog", Level: severityFail, Detail: "locked"},
		{Label: "Archive directory", Level: severityPass, Detail: "/a (read ok)"},
		{Label: "Workers"},
	}, false)
	want := []string{
		"  fail  Catalog            locked",
		"  pass  Archive directory  /a (read ok)",
		"  note  Workers",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("renderStatusLines mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLinesColorsOnlyTheTag(t *testing.T) {
	got := renderStatusLines([]statusLine{{Label: "Catalog", Level: severitySkip, Detail: "ready"}}, true)
	want := "  " + severityStyles[severitySkip].color + "skip" + colorReset + "  Catalog  ready"
	if got[0] != want {
		t.Fatalf("unexpected colored line\n got: %q\nwant: %q", got[0], want)
	}
	if sectionTitle("Paths", false) != "Paths:" {
		t.Fatalf("unexpected plain section title %q", sectionTitle("Paths", false))
	}
}

func TestPreflightStatus(t *testing.T) {
	lines := preflightStatus([]preflight.Result{
		{Name: "Archive directory", Passed: true, Detail: "/a (read ok)"},
		{Name: "Log directory", Detail: "/l (error: does not exist)"},
	})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Level != severityPass || lines[1].Level != severityFail {
		t.Fatalf("unexpected levels: %+v", lines)
	}
}

func TestFailureStatusGradesByKind(t *testing.T) {
	lines := failureStatus([]dataset.FileFailure{
		{Path: "/a/orphan.sigmf-meta", Kind: sigmf.KindMissingDataFile, Message: "missing data file"},
		{Path: "/a/locked", Kind: dataset.KindWalk, Message: "permission denied"},
		{Path: "/a/bad.sigmf-meta", Kind: sigmf.KindMetadataParse, Message: "invalid JSON"},
		{Path: "/a/ci8.sigmf-meta", Kind: sigmf.KindUnsupportedDatatype, Message: "unsupported"},
	})
	wantLevels := []severity{severitySkip, severitySkip, severityFail, severityFail}
	for i, line := range lines {
		if line.Level != wantLevels[i] {
			t.Fatalf("line %d (%s): level %d, want %d", i, line.Label, line.Level, wantLevels[i])
		}
	}
	if lines[2].Label != sigmf.KindMetadataParse || lines[2].Detail != "/a/bad.sigmf-meta: invalid JSON" {
		t.Fatalf("unexpected failure line %+v", lines[2])
	}
}

func TestPrintFailuresTruncates(t *testing.T) {
	failures := make([]dataset.FileFailure, 4)
	for i := range failures {
		failures[i] = dataset.FileFailure{Path: fmt.Sprintf("f%d.sigmf-meta", i), Kind: sigmf.KindMetadataParse, Message: "bad"}
	}
	var buf bytes.Buffer
	printFailures(&buf, failures, 3)
	out := buf.String()
	if !strings.HasPrefix(out, "Failures:\n") {
		t.Fatalf("expected failures heading, got %q", out)
	}
	if strings.Contains(out, "f3.sigmf-meta") || !strings.Contains(out, "... and 1 more failures") {
		t.Fatalf("expected truncation after 3 failures:\n%s", out)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
	if newProgressPrinter(io.Discard) != nil {
		t.Fatalf("expected no progress printer for non-terminal output")
	}
}

func TestProgressLine(t *testing.T) {
	got := progressLine(dataset.Progress{Processed: 5, Failed: 1, Total: 20})
	if got != "Parsing metadata: 5/20 files (25%, 1 failed)" {
		t.Fatalf("unexpected progress line %q", got)
	}
}

func TestParseWhere(t *testing.T) {
	filters, err := parseWhere([]string{"snr_db=10", " author = ops", "snr_db=12", "sig_uuid="})
	if err != nil {
		t.Fatalf("parseWhere: %v", err)
	}
	if filters["snr_db"] != "12" {
		t.Fatalf("expected later clause to win, got %q", filters["snr_db"])
	}
	if filters["author"] != " ops" {
		t.Fatalf("expected value to be kept verbatim, got %q", filters["author"])
	}
	if v, ok := filters["sig_uuid"]; !ok || v != "" {
		t.Fatalf("expected empty value for sig_uuid, got %q", v)
	}

	for _, bad := range []string{"snr_db", "=5", "  =x"} {
		if _, err := parseWhere([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestVisibleColumns(t *testing.T) {
	all, err := visibleColumns(dataset.Schema, nil, nil)
	if err != nil || len(all) != 40 {
		t.Fatalf("expected all columns, got %d (%v)", len(all), err)
	}

	got, err := visibleColumns(dataset.Schema, []string{"snr_db", " snr_db ", "agc"}, []string{"author"})
	if err != nil {
		t.Fatalf("visibleColumns: %v", err)
	}
	if strings.Join(got, ",") != "snr_db,agc" {
		t.Fatalf("unexpected columns %v", got)
	}

	got, err = visibleColumns(dataset.Schema, nil, []string{"author"})
	if err != nil || len(got) != 1 || got[0] != "author" {
		t.Fatalf("expected configured columns, got %v (%v)", got, err)
	}

	if _, err := visibleColumns(dataset.Schema, []string{"nope"}, nil); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestRenderDataset(t *testing.T) {
	tbl := dataset.ToTable([]dataset.Row{
		{MetaFilename: "a", CenterFreqHz: 915e6, SNRDB: 12.5},
		{MetaFilename: "b", CenterFreqHz: 2.4e9, SNRDB: 0.001},
		{MetaFilename: "c"},
	})
	out, err := renderDataset(tbl, []string{"meta_filename", "center_freq_hz", "snr_db"}, 2)
	if err != nil {
		t.Fatalf("renderDataset: %v", err)
	}
	for _, want := range []string{"meta_filename", "9.15e+08", "12.500", "1.00e-03", "2.40e+09"} {
		requireContains(t, out, want)
	}
	if strings.Contains(out, "│ c ") {
		t.Fatalf("expected third row to be cut by limit:\n%s", out)
	}

	if _, err := renderDataset(tbl, []string{"nope"}, 0); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestRenderRecord(t *testing.T) {
	tbl := dataset.ToTable([]dataset.Row{{MetaFilename: "a", AGC: true}})
	out := renderRecord(tbl, 0)
	requireContains(t, out, "meta_filename")
	requireContains(t, out, "true")
	if renderRecord(tbl, 5) != "" {
		t.Fatal("expected empty output for out of range row")
	}
}

func TestTableRecordsNullsNonFinite(t *testing.T) {
	tbl := dataset.ToTable([]dataset.Row{{SNRDB: math.NaN(), Gain: math.Inf(1), NumSamples: 7}})
	recs := tableRecords(tbl)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0]["snr_db"] != nil || recs[0]["gain"] != nil {
		t.Fatalf("expected nulls for non-finite floats: %v", recs[0])
	}
	if recs[0]["num_samples"] != uint64(7) {
		t.Fatalf("unexpected num_samples %v", recs[0]["num_samples"])
	}
}

func TestShownRowsAndSummary(t *testing.T) {
	if shownRows(0, 5) != 5 || shownRows(-1, 5) != 5 || shownRows(10, 5) != 5 || shownRows(2, 5) != 2 {
		t.Fatal("unexpected shownRows result")
	}
	if got := rowsSummary(2, 1500); got != "showing 2 of 1,500 rows" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := rowsSummary(3, 3); got != "3 rows" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestMatchRatio(t *testing.T) {
	if matchRatio(0, 0) != 0 {
		t.Fatal("expected zero ratio for empty input")
	}
	if got := matchRatio(1, 4); got != 0.25 {
		t.Fatalf("matchRatio(1, 4) = %v", got)
	}
}
