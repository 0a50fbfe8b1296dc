package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"entail/internal/logx"
	"entail/internal/prof"
	"entail/internal/project"
)

// session holds what every subcommand needs: resolved global flags, the
// entail.toml configuration and the logger.
type session struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	cfg            *project.Config
	log            *zap.Logger
	profiler       *prof.Profiler
}

func readColorMode(value string) (string, error) {
	switch mode := strings.TrimSpace(strings.ToLower(value)); mode {
	case "", "auto":
		return "auto", nil
	case "on", "off":
		return mode, nil
	default:
		return "", errors.Newf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get color flag")
	}
	mode, err := readColorMode(colorFlag)
	if err != nil {
		return nil, err
	}
	s := &session{}
	s.color = mode == "on" || (mode == "auto" && isTerminal(os.Stderr))
	color.NoColor = !s.color

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, errors.Wrap(err, "failed to get quiet flag")
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, errors.Wrap(err, "failed to get timings flag")
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get verbose flag")
	}
	logJSON, err := flags.GetBool("log-json")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get log-json flag")
	}
	s.log = logx.New(logx.Options{Verbose: verbose, JSON: logJSON, Out: cmd.ErrOrStderr()})

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config flag")
	}
	if configPath != "" {
		s.cfg, err = project.LoadConfig(configPath)
	} else {
		s.cfg, err = project.Discover(".")
	}
	if err != nil {
		return nil, err
	}
	if s.cfg.Path != "" {
		s.log.Debug("loaded config", zap.String(logx.FieldPath, s.cfg.Path))
	}

	s.maxDiagnostics, err = flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get max-diagnostics flag")
	}
	if !flags.Changed("max-diagnostics") && s.cfg.Diagnostics.Max > 0 {
		s.maxDiagnostics = s.cfg.Diagnostics.Max
	}

	profOpts, err := readProfileOptions(cmd)
	if err != nil {
		return nil, err
	}
	if profOpts.Enabled() {
		if s.profiler, err = prof.Start(profOpts); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func readProfileOptions(cmd *cobra.Command) (prof.Options, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return opts, errors.Wrap(err, "failed to get cpu-profile flag")
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return opts, errors.Wrap(err, "failed to get mem-profile flag")
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return opts, errors.Wrap(err, "failed to get runtime-trace flag")
	}
	return opts, nil
}

func (s *session) close() {
	if err := s.profiler.Stop(); err != nil {
		s.log.Warn("profiling failed", zap.Error(err))
	}
	_ = s.log.Sync()
}
