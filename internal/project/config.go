package project

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"entail/internal/args"
	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/implied"
	"entail/internal/source"
)

// Config mirrors entail.toml.
type Config struct {
	Rewrite     RewriteConfig     `toml:"rewrite"`
	Cache       CacheConfig       `toml:"cache"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type RewriteConfig struct {
	// Crate is a module path such as `::my_crate::implied_bounds`.
	Crate     string `toml:"crate"`
	Debug     bool   `toml:"debug"`
	AllowNone bool   `toml:"allow_none"`
	// InlineWarnings controls the inert warning declarations; nil means on.
	InlineWarnings *bool `toml:"inline_warnings"`
}

type CacheConfig struct {
	Enabled *bool  `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type DiagnosticsConfig struct {
	Max int `toml:"max"`
}

// CacheEnabled reports the [cache] enabled value, defaulting to true.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

// LoadConfig parses the TOML file at path.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.WithHint(
			errors.Newf("%s: unknown keys: %s", path, strings.Join(keys, ", ")),
			"known sections are [rewrite], [cache] and [diagnostics]")
	}
	if cfg.Diagnostics.Max < 0 {
		return nil, errors.Newf("%s: diagnostics.max must not be negative", path)
	}
	cfg.Path = path
	return &cfg, nil
}

// Discover finds and loads entail.toml above startDir. It returns an empty
// Config when there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Config{}, nil
	}
	return LoadConfig(path)
}

// Implied converts the [rewrite] section into a rewrite configuration.
func (c *Config) Implied() (implied.Config, error) {
	out := implied.Config{
		Debug:            c.Rewrite.Debug,
		AllowNone:        c.Rewrite.AllowNone,
		OmitWarningDecls: c.Rewrite.InlineWarnings != nil && !*c.Rewrite.InlineWarnings,
	}
	if c.Rewrite.Crate == "" {
		return out, nil
	}
	crate, err := ParseCrate(c.Rewrite.Crate)
	if err != nil {
		return implied.Config{}, errors.Wrapf(err, "%s: rewrite.crate", c.Path)
	}
	out.Crate = crate
	return out, nil
}

// ParseCrate parses a module path given on the command line or in entail.toml.
func ParseCrate(text string) (*ast.Path, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<crate>", []byte(text)))
	p, diags := args.ParsePath(file, file.FullSpan())
	if len(diags) > 0 {
		return nil, diag.Aggregate("invalid crate path: ", diags)
	}
	return p, nil
}
