// Package driver orchestrates lexing and parsing across whole directories of
// Jacy source files, fanning each file out to its own goroutine.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"github.com/jacylang/jacy/internal/ast"
	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/lexer"
	"github.com/jacylang/jacy/internal/parser"
	"github.com/jacylang/jacy/internal/source"
	"github.com/jacylang/jacy/internal/token"
)

// SourceExt is the file extension a directory walk collects.
const SourceExt = ".jc"

// TokenizeDirResult is one file's tokenization outcome.
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// ParseDirResult is one file's parse outcome.
type ParseDirResult struct {
	Path    string
	FileID  ast.FileID
	Builder *ast.Builder
	Bag     *diag.Bag
}

func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files) // deterministic order regardless of walk order
	return files, nil
}

// TokenizeDir tokenizes every .jc file under dir concurrently, capped at
// jobs goroutines (0 means runtime.GOMAXPROCS(0)).
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]TokenizeDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				bag := diag.NewBag(maxDiagnostics)
				if loadErr, hadErr := loadErrors[path]; hadErr {
					bag.Add(&diag.Diagnostic{
						Severity: diag.SevError,
						Code:     diag.IOLoadFileError,
						Message:  "failed to load file: " + loadErr.Error(),
						Primary:  source.Span{},
					})
					results[i] = TokenizeDirResult{Path: path, Bag: bag}
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)
				reportBadEncoding(file, bag)

				reporter := (&lexer.ReporterAdapter{Bag: bag}).Reporter()
				lx := lexer.New(file, lexer.Options{Reporter: reporter})

				var tokens []token.Token
				for {
					tok := lx.Next()
					tokens = append(tokens, tok)
					if tok.Kind == token.EOF {
						break
					}
				}

				results[i] = TokenizeDirResult{Path: path, FileID: fileID, Tokens: tokens, Bag: bag}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ParseDir parses every .jc file under dir concurrently, sharing a single
// Interner across files so cross-file symbol names intern identically.
func ParseDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, *source.Interner, []ParseDirResult, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), source.NewInterner(), nil, nil
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = fileID
	}

	interner := source.NewInterner()

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]ParseDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				bag := diag.NewBag(maxDiagnostics)
				if loadErr, hadErr := loadErrors[path]; hadErr {
					bag.Add(&diag.Diagnostic{
						Severity: diag.SevError,
						Code:     diag.IOLoadFileError,
						Message:  "failed to load file: " + loadErr.Error(),
						Primary:  source.Span{},
					})
					results[i] = ParseDirResult{Path: path, Bag: bag}
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)
				reportBadEncoding(file, bag)

				builder := ast.NewBuilder(ast.Hints{}, interner)
				lx := lexer.New(file, lexer.Options{})

				maxErrors, convErr := safecast.Conv[uint](maxDiagnostics)
				if convErr != nil {
					return fmt.Errorf("maxDiagnostics overflow: %w", convErr)
				}
				parseOpts := parser.Options{
					Reporter:  &diag.BagReporter{Bag: bag},
					MaxErrors: maxErrors,
				}
				res := parser.ParseFile(gctx, fileSet, lx, builder, parseOpts)

				results[i] = ParseDirResult{Path: path, FileID: res.File, Builder: builder, Bag: bag}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return fileSet, interner, results, err
	}
	return fileSet, interner, results, nil
}

// reportBadEncoding surfaces the BadEncoding diagnostic for a file loaded
// with invalid UTF-8 bytes, at offset 0 as spec.md requires.
func reportBadEncoding(file *source.File, bag *diag.Bag) {
	if file == nil || file.Flags&source.FileBadEncoding == 0 {
		return
	}
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOBadEncoding,
		Message:  fmt.Sprintf("%s is not valid UTF-8", file.Path),
		Primary:  source.Span{File: file.ID, Start: 0, End: 0},
	})
}
