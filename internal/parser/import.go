package parser

import (
	"fmt"

	"github.com/jacylang/jacy/internal/ast"
	"github.com/jacylang/jacy/internal/diag"
	"github.com/jacylang/jacy/internal/fix"
	"github.com/jacylang/jacy/internal/source"
	"github.com/jacylang/jacy/internal/token"
)

// parseImportItem recognizes the forms:
//
//	import module;                                    // module/submodule
//	import module :: Ident ;                          // a single item
//	import module :: Ident as Ident ;                 // item with alias
//	import module/subpath ;                           // module/submodule with subpaths
//	import module/subpath :: Ident ;                  // item with subpaths
//	import module/subpath :: Ident as Ident ;         // aliased item with subpaths
//	import module as Ident ;                          // module with alias
//	import module::{Ident, Ident} ;                   // items with subpaths
//	import module::{Ident as Ident, Ident as Ident} ; // aliased items with subpaths
//	import ./module ;    // not an error: import from the current directory
//	import ../module ;   // import from one directory up
//	import ../../module ; // import from two directories up
func (p *Parser) parseImportItem() (ast.ItemID, bool) {
	importTok := p.advance() // consume KwImport

	// Parse the module path (module/subpath/...)
	moduleSegs, moduleEndSpan, ok := p.parseImportModule()
	if !ok {
		p.resyncStatement()
		return ast.NoItemID, false
	}
	if moduleEndSpan.End > 0 {
		p.lastSpan = moduleEndSpan
	}

	var (
		moduleAlias   source.Symbol
		one           ast.ImportOne
		hasOne        bool
		pairs         []ast.ImportPair
		needSemicolon = true
		groupOpenSpan source.Span
		trailingComma source.Span
	)
	moduleAlias = source.NoSymbol

	switch p.lx.Peek().Kind {
	case token.ColonColon:
		colonColonTok := p.advance() // consume '::'

		// After '::' comes either an identifier or a group {Ident, ...}
		if p.at(token.Ident) {
			// import module::Ident [as Alias];
			nameID, ok := p.parseIdent()
			if !ok {
				p.resyncStatement()
				return ast.NoItemID, false
			}

			aliasID := source.NoSymbol
			if p.at(token.KwAs) {
				p.advance() // consume 'as'

				if !p.at(token.Ident) {
					// todo: remove 'as'
					p.err(diag.SynExpectIdentAfterAs, "expected identifier after 'as', got '"+p.lx.Peek().Text+"'")
					p.resyncStatement()
					return ast.NoItemID, false
				}

				aliasID, ok = p.parseIdent()
				if !ok {
					p.resyncStatement()
					return ast.NoItemID, false
				}
			}

			one = ast.ImportOne{Name: nameID, Alias: aliasID}
			hasOne = true

		} else if p.at(token.LBrace) {
			// import module::{Ident [as Alias], ...};
			openTok := p.advance() // consume '{'
			groupOpenSpan = openTok.Span
			pairs = make([]ast.ImportPair, 0, 2)
			broken := false

			for !p.at(token.RBrace) && !p.at(token.EOF) {
				nameID, ok := p.parseIdent()
				if !ok {
					// error already reported inside parseIdent
					broken = true
					p.resyncImportGroup()
					break
				}

				aliasID := source.NoSymbol
				if p.at(token.KwAs) {
					p.advance() // consume 'as'

					if !p.at(token.Ident) {
						p.err(diag.SynExpectIdentAfterAs, "expected identifier after 'as', got '"+p.lx.Peek().Text+"'")
						broken = true
						p.resyncImportGroup()
						break
					}

					aliasID, ok = p.parseIdent()
					if !ok {
						broken = true
						p.resyncImportGroup()
						break
					}
				}

				pairs = append(pairs, ast.ImportPair{Name: nameID, Alias: aliasID})

				if p.at(token.Comma) {
					commaTok := p.advance()
					trailingComma = commaTok.Span
					continue
				}
				if p.at_or(token.RBrace, token.EOF, token.Semicolon) || isTopLevelStarter(p.lx.Peek().Kind) {
					// No comma: a closing brace ends the group.
					// EOF, ';' or a top-level starter is an unclosed-brace case handled below.
					break
				}
				p.err(diag.SynUnexpectedToken, "expected ',' or '}' in import group, got '"+p.lx.Peek().Text+"'")
				broken = true
				p.resyncImportGroup()
				break
			}

			if broken {
				return ast.NoItemID, false
			}

			if len(pairs) == 0 {
				// Encountered ::{} with possibly a trailing ';'. Only remove
				// '::{}' here; deleting just '{}' would trip another
				// diagnostic ("unexpected item after ::").
				groupCloseSpan := source.Span{
					File:  groupOpenSpan.File,
					Start: groupOpenSpan.Start + 1,
					End:   groupOpenSpan.End + 1,
				}
				p.emitDiagnostic(
					diag.SynEmptyImportGroup,
					diag.SevWarning,
					p.currentErrorSpan(),
					"empty import group",
					func(b *diag.ReportBuilder) {
						if b == nil {
							return
						}
						fixID := fmt.Sprintf("%s-%d-%d", diag.SynEmptyImportGroup.ID(), p.currentErrorSpan().File, p.currentErrorSpan().Start)
						suggestion := fix.DeleteSpans(
							"remove '::{}' to simplify the import statement",
							[]source.Span{groupOpenSpan, groupCloseSpan, colonColonTok.Span},
							fix.WithKind(diag.FixKindRefactor),
							fix.WithApplicability(diag.FixApplicabilityAlwaysSafe),
							fix.WithID(fixID),
						)
						b.WithFixSuggestion(suggestion)
						b.WithNote(p.currentErrorSpan(), "remove double colons and braces to simplify the import statement")
					},
				)
			}

			missingClose := false
			var closeTok token.Token
			if p.at(token.RBrace) {
				closeTok = p.advance() // consume '}'
			} else {
				anchor := p.lastSpan
				if anchor.End == 0 {
					anchor = colonColonTok.Span
				}
				closeBraceSpan := anchor.ZeroideToEnd()
				p.emitDiagnostic(
					diag.SynUnclosedBrace,
					diag.SevError,
					closeBraceSpan,
					"expected '}' to close import group",
					func(b *diag.ReportBuilder) {
						if b == nil {
							return
						}
						fixID := fmt.Sprintf("%s-%d-%d", diag.SynUnclosedBrace.ID(), closeBraceSpan.File, closeBraceSpan.Start)
						suggestion := fix.InsertText(
							"add missing '}' to close import group",
							closeBraceSpan,
							"}",
							"",
							fix.WithKind(diag.FixKindRefactor),
							fix.WithApplicability(diag.FixApplicabilityAlwaysSafe),
							fix.WithID(fixID),
						)
						b.WithFixSuggestion(suggestion)
					},
				)
				p.lastSpan = closeBraceSpan
				closeTok = token.Token{Kind: token.RBrace, Span: closeBraceSpan}
				missingClose = true
			}

			// A single-item group can be written without braces; suggest that.
			if len(pairs) == 1 && !missingClose {
				braceSpan := groupOpenSpan
				if braceSpan.File == closeTok.Span.File {
					braceSpan = braceSpan.Cover(closeTok.Span)
				}
				msg := "import group with only one item can be written without braces"
				p.emitDiagnostic(diag.SynInfoImportGroup, diag.SevInfo, braceSpan, msg, func(b *diag.ReportBuilder) {
					if b == nil {
						return
					}
					removeSpans := []source.Span{groupOpenSpan, closeTok.Span}
					if trailingComma.End > trailingComma.Start {
						removeSpans = append(removeSpans, trailingComma)
					}
					fixID := fmt.Sprintf("%s-%d-%d", diag.SynInfoImportGroup.ID(), groupOpenSpan.File, groupOpenSpan.Start)
					suggestion := fix.DeleteSpans(
						"remove braces around single import",
						removeSpans,
						fix.WithKind(diag.FixKindRefactor),
						fix.WithApplicability(diag.FixApplicabilityAlwaysSafe),
						fix.WithID(fixID),
					)
					b.WithNote(braceSpan, "remove braces to simplify the import statement").
						WithFixSuggestion(suggestion)
				})
			}
		} else {
			// Neither an identifier nor '{'.
			dblSpan := colonColonTok.Span
			p.emitDiagnostic(
				diag.SynExpectItemAfterDbl,
				diag.SevError,
				dblSpan,
				"expected identifier or '{' after '::'",
				func(b *diag.ReportBuilder) {
					if b == nil {
						return
					}
					fixID := fmt.Sprintf("%s-%d-%d", diag.SynExpectItemAfterDbl.ID(), dblSpan.File, dblSpan.Start)
					suggestion := fix.DeleteSpan(
						"remove unexpected '::'",
						dblSpan,
						"::",
						fix.WithKind(diag.FixKindRefactor),
						fix.WithApplicability(diag.FixApplicabilityAlwaysSafe),
						fix.WithID(fixID),
					)
					b.WithFixSuggestion(suggestion)
				},
			)
			// Don't resyncStatement() here; keep checking for a trailing ';'.
			needSemicolon = true
		}

	case token.KwAs:
		// import module as Alias;
		p.advance() // consume 'as'

		if !p.at(token.Ident) {
			p.err(diag.SynExpectIdentAfterAs, "expected identifier after 'as', got '"+p.lx.Peek().Text+"'")
			p.resyncStatement()
			return ast.NoItemID, false
		}

		aliasID, ok := p.parseIdent()
		if !ok {
			p.resyncStatement()
			return ast.NoItemID, false
		}
		moduleAlias = aliasID

	case token.Semicolon:
		// import module; — nothing more to parse

	default:
		peek := p.lx.Peek()
		if peek.Kind != token.EOF {
			if !(needSemicolon && isTopLevelStarter(peek.Kind)) {
				p.err(diag.SynUnexpectedToken, "expected '::' or 'as' or ';' after module path, got '"+peek.Text+"'")
				needSemicolon = false
				p.resyncTop()
				return ast.NoItemID, false
			}
		}
		// EOF here just means a missing trailing ';'; fall through as usual.
	}

	if !needSemicolon {
		return ast.NoItemID, false
	}

	// Insert point for a missing ';' sits right after the last module token.
	insertSpan := source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected semicolon after import item", func(b *diag.ReportBuilder) {
		if b == nil {
			return
		}
		insertPos := source.Span{File: insertSpan.File, Start: insertSpan.Start, End: insertSpan.Start}
		fixID := fmt.Sprintf("%s-%d-%d", diag.SynExpectSemicolon.ID(), insertPos.File, insertPos.Start)
		suggestion := fix.InsertText(
			"insert ';' after import",
			insertPos,
			";",
			"",
			fix.Preferred(),
			fix.WithID(fixID),
			fix.WithKind(diag.FixKindRefactor),
			fix.WithApplicability(diag.FixApplicabilityAlwaysSafe),
		)
		b.WithFixSuggestion(suggestion)
		b.WithNote(insertPos, "insert ';' to terminate the import item")
	})
	if !ok {
		// expect() already reported a diagnostic with the right span.
		return ast.NoItemID, false
	}

	span := importTok.Span.Cover(semi.Span)
	id := p.arenas.NewImport(span, moduleSegs, moduleAlias, one, hasOne, pairs)
	return id, true
}

// parseImportModule collects a sequence of segments (identifiers, '.' or '..') joined by '/'.
// Returns the segment list, the span of the last segment, and success.
func (p *Parser) parseImportModule() ([]source.Symbol, source.Span, bool) {
	if !p.at_or(token.Ident, token.Dot, token.DotDot) {
		p.err(diag.SynExpectModuleSeg, "expected module segment, got '"+p.lx.Peek().Text+"'")
		return nil, source.Span{}, false
	}

	firstTok := p.advance()
	segments := []source.Symbol{p.arenas.StringsInterner.Intern(firstTok.Text)}
	lastSpan := firstTok.Span

	for p.at(token.Slash) {
		p.advance() // consume '/'

		if !p.at_or(token.Ident, token.Dot, token.DotDot) {
			p.err(diag.SynExpectModuleSeg, "expected module segment after '/'")
			// No resync here: the caller (parseImportItem) handles it.
			return nil, lastSpan, false
		}

		segTok := p.advance()
		segments = append(segments, p.arenas.StringsInterner.Intern(segTok.Text))
		lastSpan = segTok.Span
	}

	return segments, lastSpan, true
}
