package parse

import (
	"testing"

	"github.com/dhamidi/parsource/tree"
)

// normalizeTable has no separators so comment contents arrive as one
// text span.
func normalizeTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(Config{
		Comments:     []string{"//"},
		Quotes:       []string{`"`},
		Blocks:       [][2]string{{"{", "}"}, {"(", ")"}},
		LineEnd:      []string{"\n"},
		StatementEnd: []string{";"},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func normalized(t *testing.T, text string) *tree.Node {
	t.Helper()
	x := NewExtractor(WithoutOffsets())
	c := NewBlockClassifier(text, normalizeTable(t))
	if _, err := x.Process(c); err != nil {
		t.Fatalf("extract: %v", err)
	}
	root := x.Result()
	if diags := Normalize(root); len(diags) != 0 {
		t.Fatalf("normalize diags: %v", diags)
	}
	return root
}

func findNode(root *tree.Node, name string) *tree.Node {
	var found *tree.Node
	for n := range root.Walk(nil) {
		if n.Name == name {
			found = n
		}
	}
	return found
}

func TestNormalizeWrapsStrayText(t *testing.T) {
	root := normalized(t, "lonely words")
	want := "(root (statement text))"
	if got := shape(root); got != want {
		t.Errorf("shape = %s, want %s", got, want)
	}
}

func TestNormalizeTextInsideStatementStaysPut(t *testing.T) {
	root := normalized(t, "a;")
	want := "(root (statement text))"
	if got := shape(root); got != want {
		t.Errorf("shape = %s, want %s", got, want)
	}
}

func TestNormalizeStatementAbsorbsFollowingText(t *testing.T) {
	root := normalized(t, "a; b")
	want := "(root (statement text text))"
	if got := shape(root); got != want {
		t.Errorf("shape = %s, want %s", got, want)
	}
}

func TestNormalizeDropsEmptyStatements(t *testing.T) {
	root := normalized(t, ";;")
	if root.Count() != 0 {
		t.Errorf("shape = %s, want bare root", shape(root))
	}
}

func TestNormalizeCommentDirective(t *testing.T) {
	root := normalized(t, "// @todo clean this up\n")
	comment := findNode(root, "comment")
	if comment == nil {
		t.Fatalf("no comment in %s", shape(root))
	}
	first := comment.FirstChild()
	if first == nil || first.Name != "directive" {
		t.Fatalf("comment shape = %s, want a leading directive", shape(comment))
	}
	if got := first.StringAttr("value"); got != "todo" {
		t.Errorf("directive value = %q, want %q", got, "todo")
	}
	rest := first.NextSibling()
	if rest == nil || rest.Name != "text" {
		t.Fatalf("comment shape = %s, want text after the directive", shape(comment))
	}
	if got := rest.StringAttr("value"); got != " clean this up" {
		t.Errorf("text value = %q", got)
	}
}

func TestNormalizeCommentSeparator(t *testing.T) {
	root := normalized(t, "// @done -- see notes\n")
	var kinds []string
	for n := range root.Walk(nil) {
		if n.Name == "directive" || n.Name == "separator" {
			kinds = append(kinds, n.Name)
		}
	}
	if len(kinds) != 2 || kinds[0] != "directive" || kinds[1] != "separator" {
		t.Errorf("pieces = %v, want directive then separator", kinds)
	}
}

func TestNormalizeCommentArgs(t *testing.T) {
	root := normalized(t, "// @uses(alpha, beta)\n")
	directive := findNode(root, "directive")
	if directive == nil {
		t.Fatalf("no directive in %s", shape(root))
	}
	args := directive.FirstChild()
	if args == nil || args.Name != "args" {
		t.Fatalf("directive shape = %s, want an args child", shape(directive))
	}
	if args.Count() != 2 {
		t.Fatalf("args has %d children, want 2", args.Count())
	}
	if got := args.Child(0).StringAttr("value"); got != "alpha" {
		t.Errorf("args[0] = %q, want %q", got, "alpha")
	}
	if got := args.Child(1).StringAttr("value"); got != "beta" {
		t.Errorf("args[1] = %q, want %q", got, "beta")
	}
}

func TestNormalizeMergesContinuationComments(t *testing.T) {
	root := normalized(t, "// @section intro\n// continues here\n")
	comments := 0
	var comment *tree.Node
	for n := range root.Walk(nil) {
		if n.Name == "comment" {
			comments++
			comment = n
		}
	}
	if comments != 1 {
		t.Fatalf("found %d comments, want the continuation merged into 1", comments)
	}
	last := comment.LastChild()
	if last == nil || last.Name != "text" {
		t.Fatalf("comment shape = %s", shape(comment))
	}
	if got := last.StringAttr("value"); got != "continues here" {
		t.Errorf("merged text = %q", got)
	}
}

func TestNormalizeRebasesPieceOffsets(t *testing.T) {
	x := NewExtractor()
	c := NewBlockClassifier("// @mark here\n", normalizeTable(t))
	if _, err := x.Process(c); err != nil {
		t.Fatalf("extract: %v", err)
	}
	root := x.Result()
	Normalize(root)

	directive := findNode(root, "directive")
	if directive == nil {
		t.Fatalf("no directive in %s", shape(root))
	}
	// "@mark" starts at offset 3 in the source.
	if got := directive.IntAttr("start"); got != 3 {
		t.Errorf("directive start = %d, want 3", got)
	}
	if got := directive.IntAttr("end"); got != 8 {
		t.Errorf("directive end = %d, want 8", got)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"statements", "a; b; c"},
		{"stray text", "just words"},
		{"directive comment", "// @todo fix\n"},
		{"args comment", "// @uses(a, b)\n"},
		{"continuation", "// @x one\n// two\n"},
		{"blocks", "f(x) { y; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := normalized(t, tt.text)
			once := shape(root)
			if diags := Normalize(root); len(diags) != 0 {
				t.Fatalf("second pass diags: %v", diags)
			}
			if twice := shape(root); twice != once {
				t.Errorf("second pass changed the tree:\n once: %s\ntwice: %s", once, twice)
			}
		})
	}
}
