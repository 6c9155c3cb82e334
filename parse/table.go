package parse

import "fmt"

const (
	// DefaultEscape hides the delimiter that immediately follows it from
	// the scanner.
	DefaultEscape = "\\"
	// DefaultTrim is the character set stripped from both ends of text
	// spans by the classifiers.
	DefaultTrim = " \t\n"
)

// Config lists the categorized delimiter literals of a language variant.
// Block-oriented tables use Comments, Quotes, Blocks, LineEnd and
// StatementEnd; expression-oriented tables use Separators, Keywords and
// the operator lists. A table may carry both kinds of categories: block
// tables frequently add Keywords and Separators so that statement
// contents split into individual leaves.
type Config struct {
	Escape         string
	Trim           string
	Comments       []string
	Quotes         []string
	Blocks         [][2]string
	LineEnd        []string
	StatementEnd   []string
	Separators     []string
	Keywords       []string
	OperatorInfix  []string
	OperatorPrefix []string
	OperatorSuffix []string
}

// Table is the immutable, derived-once delimiter table: the flattened
// delimiter list used by the scanner, the literal→kind lookup used by the
// classifiers, and the open↔close pairing for blocks. Build it once per
// language variant with NewTable.
type Table struct {
	escape     string
	trim       string
	delimiters []string
	kinds      map[string]EventKind
	blockMatch map[string]string
}

// NewTable derives a Table from categorized literals. A literal filed
// under two categories is a configuration error reported here, not at
// scan time. Building is pure; the result must be treated as immutable.
func NewTable(cfg Config) (*Table, error) {
	t := &Table{
		escape:     cfg.Escape,
		trim:       cfg.Trim,
		kinds:      map[string]EventKind{},
		blockMatch: map[string]string{},
	}
	if t.escape == "" {
		t.escape = DefaultEscape
	}
	if t.trim == "" {
		t.trim = DefaultTrim
	}

	blockStart := make([]string, 0, len(cfg.Blocks))
	blockEnd := make([]string, 0, len(cfg.Blocks))
	for _, pair := range cfg.Blocks {
		blockStart = append(blockStart, pair[0])
		blockEnd = append(blockEnd, pair[1])
		t.blockMatch[pair[0]] = pair[1]
		t.blockMatch[pair[1]] = pair[0]
	}

	// The order here is also the classification priority when two
	// delimiters start at the same position.
	for _, group := range []struct {
		literals []string
		kind     EventKind
	}{
		{cfg.Comments, EventComment},
		{blockStart, EventBlockStart},
		{blockEnd, EventBlockEnd},
		{cfg.Quotes, EventQuote},
		{cfg.LineEnd, EventLineEnd},
		{cfg.StatementEnd, EventStatementEnd},
		{cfg.Separators, EventSeparator},
		{cfg.Keywords, EventKeyword},
		{cfg.OperatorInfix, EventOpInfix},
		{cfg.OperatorPrefix, EventOpPrefix},
		{cfg.OperatorSuffix, EventOpSuffix},
	} {
		for _, lit := range group.literals {
			if lit == "" {
				return nil, fmt.Errorf("delimiter table: empty literal in %v category", group.kind)
			}
			if prev, ok := t.kinds[lit]; ok {
				return nil, fmt.Errorf("delimiter table: literal %q appears as both %v and %v", lit, prev, group.kind)
			}
			t.kinds[lit] = group.kind
			t.delimiters = append(t.delimiters, lit)
		}
	}
	return t, nil
}

// MustTable is NewTable for static, known-good configurations.
func MustTable(cfg Config) *Table {
	t, err := NewTable(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// Escape returns the escape literal.
func (t *Table) Escape() string { return t.escape }

// Trim returns the trim character set.
func (t *Table) Trim() string { return t.trim }

// Delimiters returns the flattened delimiter list in priority order. The
// slice is the table's own storage; callers must not modify it.
func (t *Table) Delimiters() []string { return t.delimiters }

// KindOf returns the event kind produced by a delimiter literal.
func (t *Table) KindOf(delim string) (EventKind, bool) {
	k, ok := t.kinds[delim]
	return k, ok
}

// BlockMatch returns the paired literal for a block open or close
// delimiter.
func (t *Table) BlockMatch(delim string) (string, bool) {
	m, ok := t.blockMatch[delim]
	return m, ok
}
