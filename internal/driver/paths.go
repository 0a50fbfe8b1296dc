package driver

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"entail/internal/logx"
	"entail/internal/source"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"target":       true,
	".git":         true,
	"node_modules": true,
}

// CollectSourceFiles expands paths into a sorted, de-duplicated list of *.rs
// files. Explicitly named files are kept whatever their extension.
func CollectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", p)
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == ".rs" {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", p)
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// RewritePaths rewrites every source file under paths in parallel. Results
// come back in CollectSourceFiles order; a file that cannot be read gets a
// result whose Bag holds the read error.
func RewritePaths(ctx context.Context, paths []string, opts RewriteOptions) (*source.FileSet, []*RewriteResult, error) {
	files, err := CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен на запись: загружаем всё заранее
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		ids[i], loadErrs[i] = fileSet.Load(path)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log := logx.OrNop(opts.Logger)
	log.Debug("rewriting files", zap.Int(logx.FieldCount, len(files)), zap.Int(logx.FieldJobs, jobs))

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*RewriteResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		if loadErrs[i] != nil {
			results[i] = readFailure(files[i], loadErrs[i], opts)
			continue
		}
		g.Go(func() error {
			res, err := RewriteSource(gctx, fileSet, ids[i], opts)
			if err != nil {
				return errors.Wrapf(err, "rewrite %s", files[i])
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

func readFailure(path string, err error, opts RewriteOptions) *RewriteResult {
	res := &RewriteResult{Path: path, Bag: newBag(opts)}
	res.Bag.Add(ioDiagnostic(path, err))
	return res
}

// WriteBack stores res.Output at res.Path, restoring the byte-order mark and
// CRLF line endings the loader normalized away. Unchanged or failed files
// are left alone.
func WriteBack(res *RewriteResult) (bool, error) {
	if res.File == nil || !res.Changed || res.HasErrors() {
		return false, nil
	}
	out := Denormalize(res.File, res.Output)
	mode := os.FileMode(0o644)
	if info, err := os.Stat(res.Path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(res.Path, out, mode.Perm()); err != nil {
		return false, errors.Wrapf(err, "write %s", res.Path)
	}
	return true, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Denormalize undoes the loader's CRLF and BOM normalization on content.
func Denormalize(file *source.File, content []byte) []byte {
	out := content
	if file.Flags&source.FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	if file.Flags&source.FileHadBOM != 0 {
		out = append(append([]byte{}, utf8BOM...), out...)
	}
	return out
}
