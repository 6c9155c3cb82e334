// Package lang holds the per-language delimiter tables: a few built-in
// definitions plus a loader for YAML-defined languages. Tables are static
// configuration; the parsing logic lives in the parse package.
package lang

import "github.com/dhamidi/parsource/parse"

// JavaScriptBlocks is the block-oriented table for JavaScript-ish
// sources. Keywords and separators are included so statement contents
// split into individual leaves.
func JavaScriptBlocks() *parse.Table {
	return parse.MustTable(parse.Config{
		Escape:       `\`,
		Trim:         " \t\n",
		StatementEnd: []string{";", ":"},
		LineEnd:      []string{"\n"},
		Comments:     []string{"//", "#"},
		Blocks: [][2]string{
			{"{", "}"},
			{"[", "]"},
			{"(", ")"},
			{"/*", "*/"},
		},
		Quotes:     []string{`"`, "'", "```"},
		Separators: []string{" ", "\t"},
		Keywords: []string{
			"let", "const", "var", "function", "return",
			"for", "else", "if", "while",
		},
	})
}

// JavaScriptExpression is the expression-oriented table used to further
// split statement contents into keywords and operators.
func JavaScriptExpression() *parse.Table {
	return parse.MustTable(parse.Config{
		Separators: []string{" ", "\t"},
		Keywords:   []string{"let", "const", "for", "else", "if", "then", "while"},
		OperatorInfix: []string{
			"=", "!=", "!==", "+=", "*=", "/=", "+", "-", "/", "*", "^",
			"|", "&", "||", "&&", ">", "<", ">=", "<=", "<<", ">>",
		},
		OperatorPrefix: []string{"!"},
		OperatorSuffix: []string{"++", "--"},
	})
}
