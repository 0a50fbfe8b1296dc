package driver

import (
	"bytes"
	"sort"

	"github.com/cockroachdb/errors"

	"entail/internal/source"
)

// Edit replaces Span with Text. An empty span inserts.
type Edit struct {
	Span source.Span
	Text string
}

// applyEdits returns content with every edit applied. Edits must not overlap.
func applyEdits(content []byte, edits []Edit) ([]byte, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	var out bytes.Buffer
	out.Grow(len(content))
	var cur uint32
	for _, e := range sorted {
		if e.Span.Start < cur {
			return nil, errors.Newf("overlapping edits at byte %d", e.Span.Start)
		}
		if int(e.Span.End) > len(content) || e.Span.End < e.Span.Start {
			return nil, errors.Newf("edit %s out of range", e.Span)
		}
		out.Write(content[cur:e.Span.Start])
		out.WriteString(e.Text)
		cur = e.Span.End
	}
	out.Write(content[cur:])
	return out.Bytes(), nil
}

// removalSpan widens an attribute's span to its whole line when nothing else
// shares that line, otherwise to the blanks that follow it.
func removalSpan(content []byte, sp source.Span) source.Span {
	start, end := sp.Start, sp.End
	lineStart := start
	for lineStart > 0 && isBlank(content[lineStart-1]) {
		lineStart--
	}
	after := end
	for int(after) < len(content) && isBlank(content[after]) {
		after++
	}
	atLineStart := lineStart == 0 || content[lineStart-1] == '\n'
	atLineEnd := int(after) == len(content) || content[after] == '\n'
	if atLineStart && atLineEnd {
		if int(after) < len(content) {
			after++ // '\n'
		}
		return source.Span{File: sp.File, Start: lineStart, End: after}
	}
	return source.Span{File: sp.File, Start: start, End: after}
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }
