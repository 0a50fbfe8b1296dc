package main

import (
	"fmt"
	"io"

	"entail/internal/diag"
	"entail/internal/diagfmt"
	"entail/internal/driver"
	"entail/internal/observ"
	"entail/internal/source"
)

// collectDiagnostics flattens the per-file bags in result order.
func collectDiagnostics(results []*driver.RewriteResult) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, res := range results {
		if res.Bag != nil {
			out = append(out, res.Bag.Items()...)
		}
	}
	return out
}

func printDiagnostics(w io.Writer, results []*driver.RewriteResult, fs *source.FileSet, sess *session) {
	diags := collectDiagnostics(results)
	if len(diags) == 0 {
		return
	}
	diagfmt.Pretty(w, diags, fs, diagfmt.PrettyOpts{
		Color:     sess.color,
		Context:   2,
		ShowNotes: true,
	})
}

func printTimings(w io.Writer, results []*driver.RewriteResult) {
	var total observ.Report
	for _, res := range results {
		total.Merge(res.Path+": ", res.Timing)
	}
	fmt.Fprintln(w, "timings:") //nolint:errcheck
	for _, p := range total.Phases {
		fmt.Fprintf(w, "  %-40s %7.2f ms", p.Name, p.DurationMS) //nolint:errcheck
		if p.Note != "" {
			fmt.Fprintf(w, "  // %s", p.Note) //nolint:errcheck
		}
		fmt.Fprintln(w) //nolint:errcheck
	}
	fmt.Fprintf(w, "  %-40s %7.2f ms\n", "total", total.TotalMS) //nolint:errcheck
}
