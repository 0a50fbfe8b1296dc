package diagfmt

import (
	"encoding/json"
	"io"

	"entail/internal/diag"
	"entail/internal/source"
)

// excerptLimit caps the bytes copied into DiagnosticJSON.Excerpt.
const excerptLimit = 256

// LocationJSON is a span with optional 1-based line and column positions.
type LocationJSON struct {
	File      string `json:"file,omitempty"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Excerpt  string       `json:"excerpt,omitempty"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON. Count is the number of
// entries in Diagnostics; Omitted counts those cut by JSONOpts.Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Omitted     int              `json:"omitted,omitempty"`
}

type locator struct {
	fs        *source.FileSet
	mode      PathMode
	positions bool
}

func (l locator) location(span source.Span) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	f := l.file(span)
	if f == nil {
		return loc
	}
	loc.File = formatPath(f, l.fs, l.mode)
	if l.positions {
		startPos, endPos := l.fs.Resolve(span)
		loc.StartLine, loc.StartCol = startPos.Line, startPos.Col
		loc.EndLine, loc.EndCol = endPos.Line, endPos.Col
	}
	return loc
}

func (l locator) file(span source.Span) *source.File {
	if l.fs == nil || span.IsZero() {
		return nil
	}
	return l.fs.Get(span.File)
}

// excerpt returns the text under span, clipped to the file and excerptLimit.
func (l locator) excerpt(span source.Span) string {
	f := l.file(span)
	if f == nil || span.Empty() {
		return ""
	}
	end := min(int(span.End), len(f.Content))
	start := int(span.Start)
	if start >= end {
		return ""
	}
	if end-start > excerptLimit {
		end = start + excerptLimit
	}
	return string(f.Content[start:end])
}

// makeLocation keeps the single-span form used by the trait printer.
func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	return locator{fs: fs, mode: pathMode, positions: includePositions}.location(span)
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(items []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	loc := locator{fs: fs, mode: opts.PathMode, positions: opts.IncludePositions}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}

	for _, d := range items {
		switch {
		case d.Severity >= diag.SevError:
			out.Errors++
		case d.Severity == diag.SevWarning:
			out.Warnings++
		}
		if opts.Max > 0 && len(out.Diagnostics) == opts.Max {
			out.Omitted++
			continue
		}
		entry := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: loc.location(d.Primary),
		}
		if opts.IncludeExcerpt {
			entry.Excerpt = loc.excerpt(d.Primary)
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				entry.Notes = append(entry.Notes, NoteJSON{Message: note.Msg, Location: loc.location(note.Span)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, entry)
	}
	out.Count = len(out.Diagnostics)
	return out
}

func JSON(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(items, fs, opts))
}
