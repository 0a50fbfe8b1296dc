package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"entail/internal/diag"
	"entail/internal/source"
)

func sampleSet(t *testing.T) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("mod m {\n\ttrait T<U: Clone> {}\n}\n")
	return fs, fs.AddVirtual("/home/user/project/src/lib.rs", content)
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs, id := sampleSet(t)
	diags := []diag.Diagnostic{
		diag.NewWarning(diag.RewriteNotImplied, source.Span{File: id, Start: 17, End: 22}, "this predicate is not implied"),
	}

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/lib.rs:2:10"},
		{"Relative path", PathModeRelative, "src/lib.rs:2:10"},
		{"Basename only", PathModeBasename, "lib.rs:2:10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, diags, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected %q in output:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "WARNING IMP4001") {
				t.Errorf("expected severity and code in output:\n%s", out)
			}
		})
	}
}

func TestPrettySnippetAndCaret(t *testing.T) {
	fs, id := sampleSet(t)
	diags := []diag.Diagnostic{
		diag.NewError(diag.SynExpectType, source.Span{File: id, Start: 17, End: 22}, "expected type"),
	}
	var buf bytes.Buffer
	Pretty(&buf, diags, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})

	want := "lib.rs:2:10: ERROR SYN2006: expected type\n" +
		"  1 | mod m {\n" +
		"  2 | \ttrait T<U: Clone> {}\n" +
		"    | \t        ^~~~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("pretty output:\n%q\nwant:\n%q", got, want)
	}
}

func TestPrettyNotesAndMultilineMessages(t *testing.T) {
	fs, id := sampleSet(t)
	d := diag.NewError(diag.ArgUsage, source.Span{File: id, Start: 9, End: 14}, "Usage:\n  debug\n\n  allow_none").
		WithNote(source.Span{File: id, Start: 15, End: 16}, "declared here")
	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{ShowNotes: true, PathMode: PathModeBasename})
	out := buf.String()
	for _, want := range []string{"ARG3005: Usage:\n      debug\n\n      allow_none\n", "note lib.rs:2:8: declared here"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{diag.NewError(diag.IOReadFailed, source.Span{}, "src/gone.rs: no such file")}, nil, PrettyOpts{})
	if got, want := buf.String(), "ERROR PRJ5001: src/gone.rs: no such file\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCaretLineWideRunes(t *testing.T) {
	if got := caretLine("漢字 ", "x"); got != "     ^" {
		t.Fatalf("wide runes should take two columns, got %q", got)
	}
	if got := caretLine("", ""); got != "^" {
		t.Fatalf("empty span still gets a caret, got %q", got)
	}
}
