// Package token defines the flat Token stream produced by the lexer: a
// closed set of punctuation/operator kinds, identifiers, literals, and EOF.
package token

import "github.com/jacylang/jacy/internal/source"

// Kind is the tag of a Token. It is a closed set: anything the lexer can
// produce has exactly one Kind.
type Kind uint8

const (
	// Invalid is a lexer recovery token: something was malformed but the
	// lexer still produced a token to keep the stream moving.
	Invalid Kind = iota
	// EOF marks the end of the token stream. Every stream ends with exactly
	// one EOF token, never omitted.
	EOF

	Ident

	// --- literals ---
	// Numeric literals are flat: base (dec/bin/oct/hex) lives in the raw
	// Text, not the Kind. IntLit/UintLit are distinguished by suffix (an
	// unsigned suffix -u8/u16/u32/u64/uint- yields UintLit, everything else
	// -no suffix or a signed suffix- yields IntLit).
	IntLit
	UintLit
	FloatLit
	StringLit
	FStringLit
	NothingLit

	// --- punctuation / operators (closed set) ---
	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	Bang          // !
	Assign        // =
	Lt            // <
	Gt            // >
	EqEq          // ==
	BangEq        // !=
	LtEq          // <=
	GtEq          // >=
	Spaceship     // <=>
	AndAnd        // &&
	OrOr          // ||
	Shl           // <<
	Shr           // >>
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=
	Dot           // .
	DotDot        // ..
	DotDotEq      // ..=
	DotDotDot     // ...
	Arrow         // ->
	FatArrow      // =>
	ColonColon    // ::
	ColonAssign   // :=
	Colon         // :
	Semicolon     // ;
	Comma         // ,
	Question      // ?
	QuestionQuestion // ??
	At            // @
	Hash          // #
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Underscore // _

	keywordBase // sentinel; keyword kinds start here, one per source.Keywords()
)

// keywordKind returns the Kind for the i-th entry of source.Keywords().
func keywordKind(i int) Kind { return keywordBase + Kind(i) }

var keywordKinds = buildKeywordKinds()

func buildKeywordKinds() map[string]Kind {
	m := make(map[string]Kind, len(source.Keywords()))
	for i, kw := range source.Keywords() {
		m[kw] = keywordKind(i)
	}
	return m
}

// LookupKeyword returns the Kind for a keyword spelling, if ident is one.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywordKinds[ident]
	return k, ok
}

// IsKeywordKind reports whether k is one of the reserved keyword kinds.
func IsKeywordKind(k Kind) bool {
	return k >= keywordBase && int(k) < int(keywordBase)+len(source.Keywords())
}

// Keyword kind constants, declared in the exact order of source.Keywords()
// so keywordKind(i) and these names agree.
var (
	KwFn       = keywordKind(0)
	KwLet      = keywordKind(1)
	KwMut      = keywordKind(2)
	KwConst    = keywordKind(3)
	KwIf       = keywordKind(4)
	KwElse     = keywordKind(5)
	KwWhile    = keywordKind(6)
	KwFor      = keywordKind(7)
	KwIn       = keywordKind(8)
	KwLoop     = keywordKind(9)
	KwMatch    = keywordKind(10)
	KwBreak    = keywordKind(11)
	KwContinue = keywordKind(12)
	KwReturn   = keywordKind(13)
	KwStruct   = keywordKind(14)
	KwEnum     = keywordKind(15)
	KwTrait    = keywordKind(16)
	KwImpl     = keywordKind(17)
	KwMod      = keywordKind(18)
	KwUse      = keywordKind(19)
	KwAs       = keywordKind(20)
	KwPub      = keywordKind(21)
	KwType     = keywordKind(22)
	KwInit     = keywordKind(23)
	KwSelfVal  = keywordKind(24)
	KwSelfType = keywordKind(25)
	KwRef      = keywordKind(26)

	// Jacy-specific surface added beyond the original core: true/false as
	// distinct keyword kinds (not a shared BoolLit), module imports, tagged
	// unions, design-by-contract declarations, extern/FFI, async/await,
	// pragma directives, and the concurrency/compare expression family.
	KwTrue     = keywordKind(27)
	KwFalse    = keywordKind(28)
	KwImport   = keywordKind(29)
	KwTag      = keywordKind(30)
	KwContract = keywordKind(31)
	KwAsync    = keywordKind(32)
	KwAwait    = keywordKind(33)
	KwExtern   = keywordKind(34)
	KwField    = keywordKind(35)
	KwPragma   = keywordKind(36)
	KwOwn      = keywordKind(37)
	KwCompare  = keywordKind(38)
	KwReduce   = keywordKind(39)
	KwMap      = keywordKind(40)
	KwFinally  = keywordKind(41)
	KwIs       = keywordKind(42)
	KwHeir     = keywordKind(43)
	KwMacro    = keywordKind(44)
	KwParallel = keywordKind(45)
	KwRace     = keywordKind(46)
	KwSelect   = keywordKind(47)
	KwSignal   = keywordKind(48)
	KwSpawn    = keywordKind(49)
	KwTo       = keywordKind(50)
	KwWith     = keywordKind(51)
	KwBlocking = keywordKind(52)
)

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if IsKeywordKind(k) {
		return source.Keywords()[int(k-keywordBase)]
	}
	return "<unknown-kind>"
}

var kindNames = map[Kind]string{
	Invalid: "<invalid>", EOF: "<eof>", Ident: "identifier",
	IntLit: "integer literal", UintLit: "unsigned integer literal",
	FloatLit: "float literal", StringLit: "string literal",
	FStringLit: "formatted string literal", NothingLit: "nothing literal",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", Bang: "!", Assign: "=",
	Lt: "<", Gt: ">", EqEq: "==", BangEq: "!=", LtEq: "<=", GtEq: ">=", Spaceship: "<=>",
	AndAnd: "&&", OrOr: "||", Shl: "<<", Shr: ">>",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	ShlAssign: "<<=", ShrAssign: ">>=",
	Dot: ".", DotDot: "..", DotDotEq: "..=", DotDotDot: "...", Arrow: "->", FatArrow: "=>",
	ColonColon: "::", ColonAssign: ":=", Colon: ":", Semicolon: ";", Comma: ",",
	Question: "?", QuestionQuestion: "??",
	At: "@", Hash: "#",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Underscore: "_",
}
