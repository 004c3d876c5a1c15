package source

// keywordList fixes the order keywords are pre-interned in, and therefore
// the reserved Symbol range IsKeyword checks against. token.Kind's keyword
// constants are declared in the same order so that
// token.Kind(keywordOffset)+i <-> keywordList[i] stay in lockstep.
var keywordList = []string{
	"fn", "let", "mut", "const", "if", "else", "while", "for", "in",
	"loop", "match", "break", "continue", "return",
	"struct", "enum", "trait", "impl", "mod", "use", "as", "pub",
	"type", "init", "self", "Self", "ref",
	"true", "false", "import", "tag", "contract", "async", "await",
	"extern", "field", "pragma", "own", "compare", "reduce", "map",
	"finally", "is", "heir", "macro", "parallel", "race", "select",
	"signal", "spawn", "to", "with", "blocking",
}

// Keywords returns the fixed, ordered list of keyword spellings.
func Keywords() []string { return keywordList }
