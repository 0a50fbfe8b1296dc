package driver

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"entail/internal/diag"
	"entail/internal/format"
	"entail/internal/implied"
	"entail/internal/locate"
	"entail/internal/logx"
	"entail/internal/observ"
	"entail/internal/project"
	"entail/internal/source"
	"entail/internal/version"
)

// RewriteOptions configures RewriteFile, RewriteSource and RewritePaths.
type RewriteOptions struct {
	Config         implied.Config
	Format         format.Options
	MaxDiagnostics int
	Jobs           int        // 0 = GOMAXPROCS
	Cache          *DiskCache // nil disables caching
	Logger         *zap.Logger
}

// SiteResult is the outcome of one annotated trait.
type SiteResult struct {
	Name string
	Decl source.Span
	// Result is nil when the trait could not be rewritten; Err says why.
	Result      *implied.Result
	Err         error
	Constraints int
}

// RewriteResult is the outcome of one file.
type RewriteResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Sites   []SiteResult
	// Output is the rewritten content. A file with errors keeps its input.
	Output  []byte
	Changed bool
	Cached  bool
	Bag     *diag.Bag
	Timing  observ.Report
}

// HasErrors reports whether any site failed.
func (r *RewriteResult) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// RewriteFile loads path and rewrites every annotated trait in it.
func RewriteFile(ctx context.Context, path string, opts RewriteOptions) (*RewriteResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return RewriteSource(ctx, fs, id, opts)
}

// RewriteSource rewrites a file already loaded into fs. It only reads fs, so
// several files of one FileSet may be rewritten concurrently.
func RewriteSource(ctx context.Context, fs *source.FileSet, id source.FileID, opts RewriteOptions) (*RewriteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := fs.Get(id)
	if file == nil {
		return nil, errors.Newf("unknown file id %d", id)
	}
	log := logx.OrNop(opts.Logger).With(zap.String(logx.FieldPath, file.Path))
	timer := observ.NewTimer()

	res := &RewriteResult{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Output:  file.Content,
		Bag:     newBag(opts),
	}

	key := cacheKey(file, opts)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			log.Warn("cache read failed", zap.Error(err))
		}
		if hit {
			res.fromPayload(&payload)
			log.Debug("rewrite cached", zap.Bool(logx.FieldCache, true), zap.Int(logx.FieldSites, len(res.Sites)))
			return res, nil
		}
	}

	var sites []locate.Site
	err := timer.Measure("locate", func() error {
		var err error
		sites, err = locate.Find(ctx, file, locate.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "locate traits in %s", file.Path)
	}
	log.Debug("located annotated traits", zap.Int(logx.FieldSites, len(sites)))

	var edits []Edit
	idx := timer.Begin("transform")
	for _, site := range sites {
		sr, siteEdits := rewriteSite(file, site, opts)
		res.Sites = append(res.Sites, sr)
		if sr.Err != nil {
			var agg *diag.AggregateError
			if errors.As(sr.Err, &agg) {
				for _, d := range agg.Diagnostics() {
					res.Bag.Add(d)
				}
			} else {
				res.Bag.Add(diag.NewError(diag.UnknownCode, site.Decl, sr.Err.Error()))
			}
			log.Debug("trait not rewritten", zap.String(logx.FieldTrait, site.Name), zap.Error(sr.Err))
			continue
		}
		for _, d := range sr.Result.Diagnostics {
			res.Bag.Add(d)
		}
		edits = append(edits, siteEdits...)
	}
	timer.End(idx, fmt.Sprintf("%d sites", len(sites)))

	if !res.Bag.HasErrors() && len(edits) > 0 {
		if err := timer.Measure("splice", func() error {
			out, err := applyEdits(file.Content, edits)
			if err != nil {
				return err
			}
			res.Output = out
			return nil
		}); err != nil {
			return nil, errors.Wrapf(err, "splice %s", file.Path)
		}
	}
	res.Changed = !bytes.Equal(res.Output, file.Content)
	res.Timing = timer.Report()

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, res.toPayload()); err != nil {
			log.Warn("cache write failed", zap.Error(err))
		}
	}
	log.Debug("rewrite done",
		zap.Int(logx.FieldSites, len(res.Sites)),
		zap.Bool("changed", res.Changed),
		zap.Float64(logx.FieldDurationMS, res.Timing.TotalMS))
	return res, nil
}

// rewriteSite transforms one trait and returns the edits that install it.
func rewriteSite(file *source.File, site locate.Site, opts RewriteOptions) (SiteResult, []Edit) {
	sr := SiteResult{Name: site.Name, Decl: site.Decl}
	out, err := implied.TransformSource(file, implied.Site{Attr: site.Attr, Args: site.Args, Decl: site.Decl}, opts.Config)
	if err != nil {
		sr.Err = err
		return sr, nil
	}
	sr.Result = out
	sr.Constraints = len(out.Constraints)

	edits := []Edit{{Span: removalSpan(file.Content, site.Attr)}}
	// без извлечённых ограничений заголовок не трогаем: форматирование и комментарии остаются как были
	if len(out.Wrappers) > 0 {
		fopt := opts.Format
		fopt.BaseIndent = site.Indent
		edits = append(edits, Edit{Span: out.Trait.HeaderSpan(), Text: out.Header(fopt)})
	}
	if text := out.WarningText(site.Indent); text != "" {
		end := out.Trait.Span.End
		edits = append(edits, Edit{Span: source.Span{File: file.ID, Start: end, End: end}, Text: text})
	}
	return sr, edits
}

// cacheKey covers everything the output depends on.
func cacheKey(file *source.File, opts RewriteOptions) project.Digest {
	crate := ""
	if opts.Config.Crate != nil {
		crate = format.Path(opts.Config.Crate)
	}
	return project.Combine(project.Digest(file.Hash),
		version.Version,
		strconv.FormatBool(opts.Config.Debug),
		strconv.FormatBool(opts.Config.AllowNone),
		strconv.FormatBool(opts.Config.OmitWarningDecls),
		crate,
		strconv.Itoa(opts.Format.IndentWidth),
		strconv.FormatBool(opts.Format.UseTabs),
	)
}

func (r *RewriteResult) toPayload() *DiskPayload {
	p := &DiskPayload{
		Output:      r.Output,
		Changed:     r.Changed,
		Diagnostics: cacheDiagnostics(r.Bag.Items()),
	}
	for _, s := range r.Sites {
		p.Sites = append(p.Sites, CachedSite{Name: s.Name, Constraints: s.Constraints})
	}
	return p
}

func (r *RewriteResult) fromPayload(p *DiskPayload) {
	r.Cached = true
	r.Output = p.Output
	r.Changed = p.Changed
	for _, s := range p.Sites {
		r.Sites = append(r.Sites, SiteResult{Name: s.Name, Constraints: s.Constraints})
	}
	for _, d := range restoreDiagnostics(r.File.ID, p.Diagnostics) {
		r.Bag.Add(d)
	}
}

// Summary is a one-line description of a file result.
func (r *RewriteResult) Summary() string {
	var names []string
	for _, s := range r.Sites {
		names = append(names, fmt.Sprintf("%s(%d)", s.Name, s.Constraints))
	}
	return fmt.Sprintf("%s: %d trait(s) %s", r.Path, len(r.Sites), strings.Join(names, " "))
}

func newBag(opts RewriteOptions) *diag.Bag {
	return diag.NewBag(opts.MaxDiagnostics)
}

func ioDiagnostic(path string, err error) diag.Diagnostic {
	return diag.NewError(diag.IOReadFailed, source.Span{}, fmt.Sprintf("%s: %v", path, err))
}
