package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"entail/internal/driver"
	"entail/internal/implied"
	"entail/internal/logx"
	"entail/internal/project"
	"entail/internal/ui"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [flags] <file.rs|directory> [...]",
	Short: "Rewrite #[implied_bounds] traits",
	Long: `Rewrite every trait annotated with #[implied_bounds] under the given paths.
By default the rewritten sources are printed to stdout; use --write to update
the files in place or --check to only report which files would change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().Bool("write", false, "rewrite files in place")
	rewriteCmd.Flags().Bool("check", false, "exit with an error if any file would change")
	rewriteCmd.Flags().Bool("debug", false, "warn about every predicate that gets rewritten")
	rewriteCmd.Flags().Bool("allow-none", false, "do not warn about traits with nothing to rewrite")
	rewriteCmd.Flags().String("crate", "", "path of the crate providing ImpliedPredicate (default ::implied_bounds)")
	rewriteCmd.Flags().Bool("no-inline-warnings", false, "do not emit warning declarations into the rewritten source")
	rewriteCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	rewriteCmd.Flags().Bool("no-cache", false, "bypass the on-disk rewrite cache")
}

// rewriteConfig layers rewrite flags over entail.toml.
func rewriteConfig(cmd *cobra.Command, sess *session) (implied.Config, error) {
	cfg, err := sess.cfg.Implied()
	if err != nil {
		return implied.Config{}, err
	}
	flags := cmd.Flags()
	if v, _ := flags.GetBool("debug"); v {
		cfg.Debug = true
	}
	if v, _ := flags.GetBool("allow-none"); v {
		cfg.AllowNone = true
	}
	if v, _ := flags.GetBool("no-inline-warnings"); v {
		cfg.OmitWarningDecls = true
	}
	if crate, _ := flags.GetString("crate"); crate != "" {
		p, err := project.ParseCrate(crate)
		if err != nil {
			return implied.Config{}, errors.WithHint(errors.Wrap(err, "--crate"), "expected a module path such as ::my_crate::implied_bounds")
		}
		cfg.Crate = p
	}
	return cfg, nil
}

func openCache(cmd *cobra.Command, sess *session) *driver.DiskCache {
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache || !sess.cfg.CacheEnabled() {
		return nil
	}
	cache, err := driver.OpenDiskCache("entail", sess.cfg.Cache.Dir)
	if err != nil {
		sess.log.Warn("rewrite cache disabled", zap.Error(err))
		return nil
	}
	return cache
}

func runRewrite(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	if write && check {
		return errors.New("rewrite: --write cannot be used with --check")
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	cfg, err := rewriteConfig(cmd, sess)
	if err != nil {
		return err
	}

	fileSet, results, err := driver.RewritePaths(cmd.Context(), args, driver.RewriteOptions{
		Config:         cfg,
		MaxDiagnostics: sess.maxDiagnostics,
		Jobs:           jobs,
		Cache:          openCache(cmd, sess),
		Logger:         sess.log,
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return errors.WithHint(errors.New("rewrite: no source files found"), "pass .rs files or directories containing them")
	}

	stderr := cmd.ErrOrStderr()
	printDiagnostics(stderr, results, fileSet, sess)

	report := &ui.Report{Title: "entail rewrite", Color: sess.color, Width: terminalWidth(os.Stderr)}
	var failed, changed bool
	for _, res := range results {
		item := ui.Item{Path: res.Path, Traits: len(res.Sites)}
		switch {
		case res.HasErrors():
			failed = true
			item.Status = ui.StatusError
		case res.Changed && check:
			changed = true
			item.Status = ui.StatusPending
		case res.Changed && write:
			if _, err := driver.WriteBack(res); err != nil {
				return err
			}
			item.Status = ui.StatusRewritten
		case res.Cached:
			item.Status = ui.StatusCached
		default:
			item.Status = ui.StatusUnchanged
		}
		report.Items = append(report.Items, item)

		if !write && !check && !res.HasErrors() && res.File != nil {
			if _, err := cmd.OutOrStdout().Write(driver.Denormalize(res.File, res.Output)); err != nil {
				return errors.Wrap(err, "write stdout")
			}
		}
		sess.log.Debug(res.Summary(), zap.String(logx.FieldPath, res.Path))
	}

	if (write || check) && !sess.quiet {
		if err := report.Render(stderr); err != nil {
			return err
		}
	}
	if sess.timings {
		printTimings(stderr, results)
	}

	if failed {
		return errReported
	}
	if check && changed {
		fmt.Fprintln(stderr, "rewrite: some files need rewriting") //nolint:errcheck
		return errReported
	}
	return nil
}
