package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes action commands. Hyphenated ids come before keywords so
// that a move such as "lock-on" is never split on the "on" keyword.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Battler", Pattern: `(?i)(?:user|opponent)\.\d+`},
	{Name: "Hyphenated", Pattern: `[a-zA-Z]\w*(?:-\w+)+`},
	{Name: "Keyword", Pattern: `(?i)\b(?:attack|item|swap|flee|by|move|to|on)\b`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:]`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// Build creates our parser based on the struct tags in `ast.go`
func Build() *participle.Parser[Command] {
	return participle.MustBuild[Command](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
	)
}
