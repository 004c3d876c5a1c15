package symbols

import (
	"fmt"
	"sort"

	"github.com/jacylang/jacy/internal/ast"
	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/project"
	"github.com/jacylang/jacy/internal/source"
)

// ProgramFile is one compilation unit registered with a Program: a parsed
// file plus the module path it occupies in the project's module tree.
type ProgramFile struct {
	ModulePath string
	Builder    *ast.Builder
	FileID     ast.FileID
	FilePath   string
	BaseDir    string
}

// moduleState marks a module's position during use-cycle detection, the
// same three-state machine spec.md describes for individual use-trees:
// Unvisited nodes have not been reached yet, InProgress nodes are on the
// current DFS path, and Resolved nodes have been fully explored.
type moduleState uint8

const (
	moduleUnvisited moduleState = iota
	moduleInProgress
	moduleResolved
)

// Program resolves a set of files that may import from one another. Unlike
// ResolveFile, which takes another module's exports as a given, Program
// computes a project-wide use-declaration graph first so that mutual
// `use` cycles across files (spec.md's S6 scenario) are caught before any
// file is resolved, rather than surfacing as ordinary unresolved names.
type Program struct {
	reporter diag.Reporter
	files    []ProgramFile
	byPath   map[string]*ProgramFile
}

// NewProgram creates an empty Program. reporter receives UseCycle
// diagnostics; it may be nil to resolve silently.
func NewProgram(reporter diag.Reporter) *Program {
	return &Program{reporter: reporter, byPath: make(map[string]*ProgramFile)}
}

// AddFile registers a parsed file under its module path. Later calls with
// the same ModulePath replace the earlier registration.
func (p *Program) AddFile(f ProgramFile) {
	p.files = append(p.files, f)
	cp := f
	p.byPath[f.ModulePath] = &cp
}

// Resolve runs use-cycle detection over every registered file's imports,
// then resolves each file in two passes: DeclareOnly to collect every
// module's own exports, and a full pass with the complete export map.
// Modules found to be part of a use-cycle have the cyclic import dropped
// (see ResolveOptions.BlockedImports) rather than aborting the whole run.
func (p *Program) Resolve(hints Hints, noStd bool, prelude []PreludeEntry) map[string]Result {
	blocked := p.detectUseCycles()

	declared := make(map[string]Result, len(p.files))
	table := NewTable(hints, p.sharedInterner())
	for i := range p.files {
		f := &p.files[i]
		declared[f.ModulePath] = ResolveFile(f.Builder, f.FileID, &ResolveOptions{
			Table:       table,
			Hints:       hints,
			Prelude:     prelude,
			Reporter:    nil, // declarations never fail validation the real pass wouldn't also catch
			ModulePath:  f.ModulePath,
			FilePath:    f.FilePath,
			BaseDir:     f.BaseDir,
			NoStd:       noStd,
			DeclareOnly: true,
		})
	}

	exports := make(map[string]*ModuleExports, len(p.files))
	for i := range p.files {
		f := &p.files[i]
		if ex := CollectExports(f.Builder, declared[f.ModulePath], f.ModulePath); ex != nil {
			exports[f.ModulePath] = ex
		}
	}

	results := make(map[string]Result, len(p.files))
	for i := range p.files {
		f := &p.files[i]
		results[f.ModulePath] = ResolveFile(f.Builder, f.FileID, &ResolveOptions{
			Table:          table,
			Hints:          hints,
			Prelude:        prelude,
			Reporter:       p.reporter,
			Validate:       true,
			ModulePath:     f.ModulePath,
			FilePath:       f.FilePath,
			BaseDir:        f.BaseDir,
			ModuleExports:  exports,
			NoStd:          noStd,
			ReuseDecls:     true,
			BlockedImports: blocked[f.ModulePath],
		})
	}
	return results
}

func (p *Program) sharedInterner() *source.Interner {
	for _, f := range p.files {
		if f.Builder != nil && f.Builder.StringsInterner != nil {
			return f.Builder.StringsInterner
		}
	}
	return source.NewInterner()
}

// useEdge is one `use`/import item's target module path.
type useEdge struct {
	itemID ast.ItemID
	target string
	span   source.Span
}

// detectUseCycles walks every file's import items, builds the module-level
// use graph, and DFSes it with InProgress/Resolved marking. Every module on
// a discovered cycle gets UseCycle reported once (at its own first cyclic
// import) and an entry in the returned block set naming the modules it must
// not import from.
func (p *Program) detectUseCycles() map[string]map[string]bool {
	edges := make(map[string][]useEdge, len(p.files))
	for i := range p.files {
		f := &p.files[i]
		edges[f.ModulePath] = collectUseEdges(f)
	}

	states := make(map[string]moduleState, len(p.files))
	blocked := make(map[string]map[string]bool)
	var stack []string

	var visit func(path string)
	visit = func(path string) {
		switch states[path] {
		case moduleResolved:
			return
		case moduleInProgress:
			p.reportCycle(stack, path)
			return
		}
		states[path] = moduleInProgress
		stack = append(stack, path)
		for _, e := range edges[path] {
			if e.target == "" || e.target == path {
				continue
			}
			if states[e.target] == moduleInProgress {
				p.reportCycle(stack, e.target)
				block(blocked, path, e.target)
				block(blocked, e.target, path)
				continue
			}
			if _, known := p.byPath[e.target]; known {
				visit(e.target)
			}
		}
		stack = stack[:len(stack)-1]
		states[path] = moduleResolved
	}

	paths := make([]string, 0, len(p.files))
	for path := range edges {
		paths = append(paths, path)
	}
	sort.Strings(paths) // deterministic report order
	for _, path := range paths {
		visit(path)
	}
	return blocked
}

func block(blocked map[string]map[string]bool, from, to string) {
	if blocked[from] == nil {
		blocked[from] = make(map[string]bool)
	}
	blocked[from][to] = true
}

// reportCycle emits one UseCycle diagnostic naming the cyclic path, anchored
// at the reentered module's first use item if known.
func (p *Program) reportCycle(stack []string, reentered string) {
	if p.reporter == nil {
		return
	}
	start := 0
	for i, m := range stack {
		if m == reentered {
			start = i
			break
		}
	}
	cycle := append(append([]string(nil), stack[start:]...), reentered)
	span := source.Span{}
	if f, ok := p.byPath[reentered]; ok {
		if edges := collectUseEdges(f); len(edges) > 0 {
			span = edges[0].span
		}
	}
	msg := fmt.Sprintf("use declarations form a cycle: %v", cycle)
	if b := diag.ReportError(p.reporter, diag.SemaUseCycle, span, msg); b != nil {
		b.Emit()
	}
}

// collectUseEdges extracts the module path each import item in f targets,
// resolved the same way fileResolver.resolveImportModulePath would.
func collectUseEdges(f *ProgramFile) []useEdge {
	if f.Builder == nil {
		return nil
	}
	file := f.Builder.Files.Get(f.FileID)
	if file == nil {
		return nil
	}
	var out []useEdge
	for _, itemID := range file.Items {
		item := f.Builder.Items.Get(itemID)
		if item == nil || item.Kind != ast.ItemImport {
			continue
		}
		imp, ok := f.Builder.Items.Import(itemID)
		if !ok || imp == nil {
			continue
		}
		target := resolveUseEdgeTarget(f, imp)
		if target == "" {
			continue
		}
		out = append(out, useEdge{itemID: itemID, target: target, span: item.Span})
	}
	return out
}

func resolveUseEdgeTarget(f *ProgramFile, imp *ast.ImportItem) string {
	if f.Builder.StringsInterner == nil || len(imp.Module) == 0 {
		return ""
	}
	segs := make([]string, 0, len(imp.Module))
	for _, sym := range imp.Module {
		segs = append(segs, f.Builder.StringsInterner.MustLookup(sym))
	}
	if norm, err := project.ResolveImportPath(f.ModulePath, f.BaseDir, segs); err == nil {
		return norm
	}
	return ""
}
