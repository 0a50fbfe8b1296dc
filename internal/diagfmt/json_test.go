package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"entail/internal/diag"
	"entail/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs, id := sampleSet(t)
	diags := []diag.Diagnostic{
		diag.NewError(diag.SynExpectType, source.Span{File: id, Start: 17, End: 22}, "expected type").
			WithNote(source.Span{File: id, Start: 9, End: 14}, "in this trait"),
	}

	var buf bytes.Buffer
	if err := JSON(&buf, diags, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SYN2006" || d.Title != "expected type" {
		t.Errorf("unexpected header: %+v", d)
	}
	if d.Location.File != "lib.rs" || d.Location.StartLine != 2 || d.Location.StartCol != 10 || d.Location.EndCol != 15 {
		t.Errorf("unexpected location: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "in this trait" {
		t.Errorf("unexpected notes: %+v", d.Notes)
	}
}

func TestJSONMaxAndPositions(t *testing.T) {
	fs, id := sampleSet(t)
	sp := source.Span{File: id, Start: 0, End: 3}
	diags := []diag.Diagnostic{
		diag.NewWarning(diag.RewriteNoneFound, sp, "a"),
		diag.NewWarning(diag.RewriteNoneFound, sp, "b"),
		diag.NewWarning(diag.RewriteNoneFound, sp, "c"),
	}
	out := BuildDiagnosticsOutput(diags, fs, JSONOpts{Max: 2})
	if out.Count != 2 || out.Omitted != 1 {
		t.Fatalf("Max not applied: count=%d omitted=%d", out.Count, out.Omitted)
	}
	if out.Warnings != 3 || out.Errors != 0 {
		t.Errorf("totals must cover omitted entries: %+v", out)
	}
	if out.Diagnostics[0].Excerpt != "" {
		t.Errorf("excerpt must be omitted by default")
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("positions must be omitted by default")
	}
	if out.Diagnostics[0].Notes != nil {
		t.Errorf("notes must be omitted by default")
	}
}

func TestJSONWithoutFileSet(t *testing.T) {
	out := BuildDiagnosticsOutput([]diag.Diagnostic{diag.NewError(diag.IOReadFailed, source.Span{}, "gone")}, nil, JSONOpts{IncludePositions: true})
	if out.Diagnostics[0].Location.File != "" {
		t.Errorf("no file expected, got %q", out.Diagnostics[0].Location.File)
	}
}

func TestJSONExcerpt(t *testing.T) {
	fs, id := sampleSet(t)
	diags := []diag.Diagnostic{
		diag.NewError(diag.SynExpectType, source.Span{File: id, Start: 20, End: 25}, "expected type"),
	}
	out := BuildDiagnosticsOutput(diags, fs, JSONOpts{IncludeExcerpt: true})
	if got := out.Diagnostics[0].Excerpt; got != "Clone" {
		t.Errorf("excerpt = %q", got)
	}
	if out.Errors != 1 {
		t.Errorf("errors = %d", out.Errors)
	}
}

func TestJSONZeroSpanHasNoFile(t *testing.T) {
	fs, _ := sampleSet(t)
	out := BuildDiagnosticsOutput([]diag.Diagnostic{diag.NewError(diag.IOReadFailed, source.Span{}, "gone")}, fs, JSONOpts{IncludePositions: true, IncludeExcerpt: true})
	d := out.Diagnostics[0]
	if d.Location.File != "" || d.Location.StartLine != 0 || d.Excerpt != "" {
		t.Errorf("zero span must not resolve: %+v", d)
	}
}
