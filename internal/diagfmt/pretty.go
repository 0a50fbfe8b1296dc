package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"entail/internal/diag"
	"entail/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgGreen),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgMagenta, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  <line> | <source>
//	         |    ^~~~
//
// then the notes the same way when opts.ShowNotes is set. fs may be nil for
// diagnostics that have no place in a file.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i := range diags {
		d := &diags[i]
		sev := pal.severity(d.Severity)
		loc, file := locate(fs, d.Primary, opts.PathMode)
		head := sev.Sprintf("%s %s", d.Severity, d.Code.ID())
		if loc != "" {
			fmt.Fprintf(w, "%s: %s: ", loc, head) //nolint:errcheck
		} else {
			fmt.Fprintf(w, "%s: ", head) //nolint:errcheck
		}
		writeMessage(w, d.Message)
		if file != nil {
			writeSnippet(w, fs, file, d.Primary, opts.Context, pal, sev)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nloc, nfile := locate(fs, n.Span, opts.PathMode)
			fmt.Fprintf(w, "  %s", pal.note.Sprint("note")) //nolint:errcheck
			if nloc != "" {
				fmt.Fprintf(w, " %s", nloc) //nolint:errcheck
			}
			fmt.Fprint(w, ": ") //nolint:errcheck
			writeMessage(w, n.Msg)
			if nfile != nil {
				writeSnippet(w, fs, nfile, n.Span, 0, pal, pal.note)
			}
		}
	}
}

// writeMessage prints the first line as is and indents the rest.
func writeMessage(w io.Writer, msg string) {
	lines := strings.Split(strings.TrimRight(msg, "\n"), "\n")
	fmt.Fprintln(w, lines[0]) //nolint:errcheck
	for _, l := range lines[1:] {
		if l == "" {
			fmt.Fprintln(w) //nolint:errcheck
			continue
		}
		fmt.Fprintf(w, "    %s\n", l) //nolint:errcheck
	}
}

func locate(fs *source.FileSet, sp source.Span, mode PathMode) (string, *source.File) {
	if fs == nil || sp.IsZero() {
		return "", nil
	}
	f := fs.Get(sp.File)
	if f == nil {
		return "", nil
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col), f
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeAbsolute, PathModeBasename:
		return f.FormatPath(mode.String(), "")
	}
	return f.FormatPath("auto", fs.BaseDir())
}

func writeSnippet(w io.Writer, fs *source.FileSet, f *source.File, sp source.Span, context int8, pal palette, mark *color.Color) {
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	first := start.Line
	if context > 0 {
		first = max(1, start.Line-uint32(context))
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "  %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), f.GetLine(ln)) //nolint:errcheck
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col-1), len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col-1), len(line))
	}
	underline := caretLine(line[:col], line[col:max(col, stop)])
	fmt.Fprintf(w, "  %s %s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), mark.Sprint(underline)) //nolint:errcheck
}

// caretLine pads under prefix by display width, keeping tabs so the caret
// lines up with the source line, then marks covered.
func caretLine(prefix, covered string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := runewidth.StringWidth(covered)
	b.WriteByte('^')
	if width > 1 {
		b.WriteString(strings.Repeat("~", width-1))
	}
	return b.String()
}
