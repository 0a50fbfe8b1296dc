package diag

import (
	"strings"

	"entail/internal/source"
)

// AggregateError folds every error of one transformation into a single value.
// Each message is rendered with the same Prefix, one line per error.
type AggregateError struct {
	Prefix string
	Items  []Diagnostic
}

// Aggregate builds an AggregateError from the error-level diagnostics in diags.
// It returns nil when there is nothing to report.
func Aggregate(prefix string, diags ...[]Diagnostic) *AggregateError {
	var items []Diagnostic
	for _, group := range diags {
		for _, d := range group {
			if d.IsError() {
				items = append(items, d)
			}
		}
	}
	if len(items) == 0 {
		return nil
	}
	return &AggregateError{Prefix: prefix, Items: items}
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	for i, d := range e.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Prefix)
		b.WriteString(d.Message)
	}
	return b.String()
}

// Spans returns the primary span of every combined error.
func (e *AggregateError) Spans() []source.Span {
	out := make([]source.Span, len(e.Items))
	for i, d := range e.Items {
		out[i] = d.Primary
	}
	return out
}

// Diagnostics returns the combined errors with the prefix applied to each
// message, ready to be rendered against a FileSet.
func (e *AggregateError) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(e.Items))
	for i, d := range e.Items {
		d.Message = e.Prefix + d.Message
		out[i] = d
	}
	return out
}
