package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"entail/internal/ast"
	"entail/internal/diagfmt"
	"entail/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.rs",
	Short: "Show the annotated traits of a file as parsed",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return errors.Wrap(err, "failed to get format flag")
	}

	result, err := driver.Parse(cmd.Context(), args[0], sess.maxDiagnostics)
	if err != nil {
		return err
	}
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag.Items(), result.FileSet, diagfmt.PrettyOpts{
			Color:   sess.color,
			Context: 2,
		})
	}

	traits := make([]*ast.Trait, len(result.Traits))
	for i, pt := range result.Traits {
		traits[i] = pt.Trait
	}
	switch format {
	case "pretty":
		err = diagfmt.FormatTraitsPretty(cmd.OutOrStdout(), traits, result.FileSet)
	case "json":
		err = diagfmt.FormatTraitsJSON(cmd.OutOrStdout(), traits, result.FileSet)
	default:
		return errors.Newf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
