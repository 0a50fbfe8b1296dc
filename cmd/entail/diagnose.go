package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"entail/internal/diag"
	"entail/internal/diagfmt"
	"entail/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.rs|directory> [...]",
	Short: "Report rewrite diagnostics without producing output",
	Long:  `Run the rewrite on every annotated trait and report errors and warnings only. Nothing is written.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().Bool("debug", false, "warn about every predicate that gets rewritten")
	diagCmd.Flags().Bool("allow-none", false, "do not warn about traits with nothing to rewrite")
	diagCmd.Flags().String("crate", "", "path of the crate providing ImpliedPredicate")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return errors.Wrap(err, "failed to get format flag")
	}
	format = strings.ToLower(format)
	noWarnings, _ := cmd.Flags().GetBool("no-warnings")
	warningsAsErrors, _ := cmd.Flags().GetBool("warnings-as-errors")
	withNotes, _ := cmd.Flags().GetBool("with-notes")
	fullPath, _ := cmd.Flags().GetBool("fullpath")
	jobs, _ := cmd.Flags().GetInt("jobs")

	cfg, err := rewriteConfig(cmd, sess)
	if err != nil {
		return err
	}
	fileSet, results, err := driver.RewritePaths(cmd.Context(), args, driver.RewriteOptions{
		Config:         cfg,
		MaxDiagnostics: sess.maxDiagnostics,
		Jobs:           jobs,
		Logger:         sess.log,
	})
	if err != nil {
		return err
	}

	diags := collectDiagnostics(results)
	if noWarnings {
		diags = filterErrors(diags)
	}
	if warningsAsErrors {
		for i := range diags {
			if diags[i].Severity == diag.SevWarning {
				diags[i].Severity = diag.SevError
			}
		}
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		diagfmt.Pretty(out, diags, fileSet, diagfmt.PrettyOpts{
			Color:     sess.color,
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	case "json":
		if err := diagfmt.JSON(out, diags, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeExcerpt:   true,
		}); err != nil {
			return err
		}
	case "short":
		if s := diag.FormatShortDiagnostics(diags, fileSet, withNotes); s != "" {
			if _, err := out.Write([]byte(s + "\n")); err != nil {
				return err
			}
		}
	default:
		return errors.Newf("unknown format: %s", format)
	}
	if sess.timings {
		printTimings(cmd.ErrOrStderr(), results)
	}

	for _, d := range diags {
		if d.IsError() {
			return errReported
		}
	}
	return nil
}

func filterErrors(diags []diag.Diagnostic) []diag.Diagnostic {
	out := diags[:0:0]
	for _, d := range diags {
		if d.IsError() {
			out = append(out, d)
		}
	}
	return out
}
