package lang

import "github.com/dhamidi/parsource/parse"

// Selectors is the table for a small query-selector language: brackets
// and braces with comma-terminated clauses.
func Selectors() *parse.Table {
	return parse.MustTable(parse.Config{
		Escape:       `\`,
		Trim:         " \t\n",
		StatementEnd: []string{","},
		LineEnd:      []string{"\n"},
		Blocks: [][2]string{
			{"[", "]"},
			{"{", "}"},
		},
		Quotes: []string{`"`, "'"},
	})
}
