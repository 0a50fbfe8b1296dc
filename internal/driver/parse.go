package driver

import (
	"context"

	"fortio.org/safecast"
	"github.com/cockroachdb/errors"

	"entail/internal/ast"
	"entail/internal/diag"
	"entail/internal/locate"
	"entail/internal/parser"
	"entail/internal/source"
)

// ParsedTrait is one annotated trait as the parser sees it, before rewriting.
type ParsedTrait struct {
	Site  locate.Site
	Trait *ast.Trait // nil when the declaration did not parse
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Traits  []ParsedTrait
	Bag     *diag.Bag
}

// Parse locates the annotated traits of a file and parses each of them.
func Parse(ctx context.Context, filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filePath)
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}

	sites, err := locate.Find(ctx, file, locate.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		return nil, errors.Wrapf(err, "locate traits in %s", filePath)
	}

	res := &ParseResult{FileSet: fs, File: file, Bag: bag}
	for _, site := range sites {
		tr, ok := parser.ParseTrait(file, site.Decl, parser.Options{
			Reporter:  diag.BagReporter{Bag: bag},
			MaxErrors: maxErrors,
		})
		if !ok {
			tr = nil
		}
		res.Traits = append(res.Traits, ParsedTrait{Site: site, Trait: tr})
	}
	return res, nil
}
