package symbols

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jacylang/jacy/internal/ast"
	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/project"
	"github.com/jacylang/jacy/internal/source"
)

// declareImport handles a module import declaration.
// Supports importing a single symbol, a group of symbols, and a wildcard import (import *).
func (fr *fileResolver) declareImport(itemID ast.ItemID, importItem *ast.ImportItem, itemSpan source.Span) {
	modulePath := fr.resolveImportModulePath(importItem.Module, itemSpan)
	if modulePath != "" && fr.blockedImports[modulePath] {
		// A use-cycle involving modulePath was already reported by
		// ResolveProgram; drop this import so neither side's bindings
		// are mutated by the cyclic edge.
		return
	}
	hasItems := importItem.HasOne || len(importItem.Group) > 0 || importItem.ImportAll

	if !hasItems {
		if modulePath != "" {
			if !fr.trackModuleImport(modulePath, itemSpan) {
				return
			}
		}
		if alias := fr.moduleAliasForImport(importItem, true); alias != source.NoSymbol {
			fr.declareModuleAlias(itemID, alias, modulePath, itemSpan)
		}
	}

	if importItem.HasOne {
		name := importItem.One.Alias
		if name == source.NoSymbol {
			name = importItem.One.Name
		}
		fr.declareImportName(itemID, name, importItem.One.Name, importItem.Module, modulePath, itemSpan)
	}
	for _, pair := range importItem.Group {
		name := pair.Alias
		if name == source.NoSymbol {
			name = pair.Name
		}
		fr.declareImportName(itemID, name, pair.Name, importItem.Module, modulePath, itemSpan)
	}
	if importItem.ImportAll {
		fr.declareImportAll(itemID, importItem.Module, modulePath, itemSpan)
	}
}

// declareModuleAlias declares a module alias in the current scope.
// The alias lets later code refer to the module by a short name instead of its full path.
func (fr *fileResolver) declareModuleAlias(itemID ast.ItemID, alias source.Symbol, modulePath string, span source.Span) {
	if alias == source.NoSymbol {
		return
	}
	decl := SymbolDecl{
		SourceFile: fr.sourceFile,
		ASTFile:    fr.fileID,
		Item:       itemID,
	}
	if symID, ok := fr.resolver.Declare(alias, span, SymbolModule, SymbolFlagImported, decl); ok {
		if sym := fr.result.Table.Symbols.Get(symID); sym != nil {
			sym.ModulePath = modulePath
		}
		if fr.aliasModulePaths != nil {
			fr.aliasModulePaths[alias] = modulePath
		}
		if exports := fr.moduleExports[modulePath]; exports != nil && fr.aliasExports != nil {
			fr.aliasExports[alias] = exports
		}
		fr.appendItemSymbol(itemID, symID)
	}
}

// declareImportName declares an imported symbol under the given name.
// Supports aliases for imported symbols.
func (fr *fileResolver) declareImportName(itemID ast.ItemID, name, original source.Symbol, module []source.Symbol, modulePath string, span source.Span) {
	if name == source.NoSymbol {
		return
	}
	decl := SymbolDecl{
		SourceFile: fr.sourceFile,
		ASTFile:    fr.fileID,
		Item:       itemID,
	}
	if symID, ok := fr.resolver.Declare(name, span, SymbolImport, SymbolFlagImported, decl); ok {
		if sym := fr.result.Table.Symbols.Get(symID); sym != nil {
			sym.ModulePath = modulePath
			sym.ImportName = original
			if len(module) > 0 {
				path := append([]source.Symbol(nil), module...)
				sym.Aliases = append(sym.Aliases, path...)
			}
			if original != source.NoSymbol && original != name {
				sym.Aliases = append(sym.Aliases, original)
			}
		}
		fr.appendItemSymbol(itemID, symID)
	}
}

// declareImportAll imports every public symbol from the named module.
// Symbols carrying @hidden have already been filtered out by CollectExports.
func (fr *fileResolver) declareImportAll(itemID ast.ItemID, module []source.Symbol, modulePath string, span source.Span) {
	if modulePath == "" {
		return
	}

	exports := fr.moduleExports[modulePath]
	if exports == nil {
		return
	}

	for name := range exports.Symbols {
		nameID := fr.builder.StringsInterner.Intern(name)
		fr.declareImportName(itemID, nameID, nameID, module, modulePath, span)
	}
}

// trackModuleImport records a module import and checks for duplicates.
// Returns false if the module was already imported earlier.
func (fr *fileResolver) trackModuleImport(modulePath string, span source.Span) bool {
	if modulePath == "" {
		return true
	}
	if prev, ok := fr.moduleImports[modulePath]; ok {
		fr.reportDuplicateModuleImport(modulePath, span, prev)
		return false
	}
	fr.moduleImports[modulePath] = span
	return true
}

// reportDuplicateModuleImport reports a duplicate module-import error.
func (fr *fileResolver) reportDuplicateModuleImport(modulePath string, span, prev source.Span) {
	if fr.resolver == nil || fr.resolver.reporter == nil {
		return
	}
	msg := fmt.Sprintf("module %q already imported", modulePath)
	builder := diag.ReportError(fr.resolver.reporter, diag.SemaDuplicateSymbol, span, msg)
	if builder == nil {
		return
	}
	if prev != (source.Span{}) {
		builder.WithNote(prev, "previous import here")
	}
	builder.Emit()
}

// moduleAliasForImport determines the alias under which a module is visible.
// If no alias was given explicitly and allowDefault is true, the last path segment is used.
func (fr *fileResolver) moduleAliasForImport(importItem *ast.ImportItem, allowDefault bool) source.Symbol {
	if importItem == nil {
		return source.NoSymbol
	}
	if importItem.ModuleAlias != source.NoSymbol {
		return importItem.ModuleAlias
	}
	if !allowDefault {
		return source.NoSymbol
	}
	for i := len(importItem.Module) - 1; i >= 0; i-- {
		seg := importItem.Module[i]
		segStr := fr.lookupString(seg)
		if segStr == "" || segStr == "." || segStr == ".." {
			continue
		}
		return seg
	}
	return source.NoSymbol
}

// resolveImportModulePath resolves an import's module path.
// Applies no_std substitution rules and normalizes the path.
func (fr *fileResolver) resolveImportModulePath(module []source.Symbol, span source.Span) string {
	segs := fr.moduleSegmentsToStrings(module)
	if len(segs) == 0 {
		return ""
	}
	segs = fr.applyNoStdImportRules(segs, span)
	base := fr.baseDir
	if base == "" && fr.filePath != "" {
		base = filepath.Dir(fr.filePath)
	}
	if norm, err := project.ResolveImportPath(fr.modulePath, base, segs); err == nil {
		return norm
	}
	joined := strings.Join(segs, "/")
	if norm, err := project.NormalizeModulePath(joined); err == nil {
		return norm
	}
	return joined
}

// moduleSegmentsToStrings converts module path segments from interned symbols to strings.
func (fr *fileResolver) moduleSegmentsToStrings(module []source.Symbol) []string {
	if len(module) == 0 || fr.builder == nil || fr.builder.StringsInterner == nil {
		return nil
	}
	out := make([]string, 0, len(module))
	for _, seg := range module {
		out = append(out, fr.lookupString(seg))
	}
	return out
}

// lookupString resolves an interned symbol to its string value.
func (fr *fileResolver) lookupString(id source.Symbol) string {
	if id == source.NoSymbol || fr.builder == nil || fr.builder.StringsInterner == nil {
		return ""
	}
	return fr.builder.StringsInterner.MustLookup(id)
}

// applyNoStdImportRules applies import substitution for no_std modules.
// Rewrites stdlib imports to core when the importing module runs in no_std mode.
func (fr *fileResolver) applyNoStdImportRules(segs []string, span source.Span) []string {
	if !fr.noStd || len(segs) == 0 || segs[0] != "stdlib" {
		return segs
	}
	replacement := append([]string{"core"}, segs[1:]...)
	if fr.resolver != nil && fr.resolver.reporter != nil {
		corePath := strings.Join(replacement, "/")
		msg := fmt.Sprintf("stdlib is not available in no_std modules; import %q instead", corePath)
		if b := diag.ReportError(fr.resolver.reporter, diag.SemaNoStdlib, span, msg); b != nil {
			b.Emit()
		}
	}
	return replacement
}
