package query

import (
	"testing"

	"github.com/dhamidi/parsource/tree"
)

// statementTree builds a small parsed shape:
//
//	root
//	├─ statement (keyword "let", text "a", op-inf "=", text "10")
//	└─ comment (directive "todo")
func statementTree() *tree.Node {
	root := tree.New("root")
	stmt := tree.New("statement")
	stmt.Append(tree.New("keyword").SetAttribute("value", "let"))
	stmt.Append(tree.New("text").SetAttribute("value", "a"))
	stmt.Append(tree.New("op-inf").SetAttribute("value", "="))
	stmt.Append(tree.New("text").SetAttribute("value", "10"))
	root.Append(stmt)
	comment := tree.New("comment")
	comment.Append(tree.New("directive").SetAttribute("value", "todo"))
	root.Append(comment)
	return root
}

func TestNamedMatchesKind(t *testing.T) {
	p := Named("keyword")
	n := tree.New("keyword")

	m, ok := p.Match(n)
	if !ok {
		t.Fatalf("no match")
	}
	nm, ok := m.(NodeMatch)
	if !ok {
		t.Fatalf("match type = %T, want NodeMatch", m)
	}
	if nm.Node != n {
		t.Errorf("matched node = %v", nm.Node)
	}

	if _, ok := p.Match(tree.New("text")); ok {
		t.Errorf("keyword pattern matched a text node")
	}
}

func TestNamedWildcard(t *testing.T) {
	p := Named("op-*")
	for _, kind := range []string{"op-inf", "op-pre", "op-suf"} {
		if _, ok := p.Match(tree.New(kind)); !ok {
			t.Errorf("op-* did not match %s", kind)
		}
	}
	if _, ok := p.Match(tree.New("keyword")); ok {
		t.Errorf("op-* matched keyword")
	}
}

func TestAsBindsSlot(t *testing.T) {
	p := As(Named("text"), "value")
	n := tree.New("text")

	m, ok := p.Match(n)
	if !ok {
		t.Fatalf("no match")
	}
	bindings := m.Bindings()
	if bindings["value"] != n {
		t.Errorf("bindings = %v, want value bound to the node", bindings)
	}
}

func TestAsDoesNotMutateOriginal(t *testing.T) {
	base := Named("text")
	As(base, "slot")

	m, _ := base.Match(tree.New("text"))
	if got := m.Bindings(); got != nil {
		t.Errorf("original pattern gained bindings: %v", got)
	}
}

func TestSequenceMatchesSiblingRun(t *testing.T) {
	root := statementTree()
	stmt := root.FirstChild()

	p := Sequence(
		Named("keyword"),
		As(Named("text"), "name"),
		Named("op-inf"),
		As(Named("text"), "init"),
	)
	m, ok := p.Match(stmt.FirstChild())
	if !ok {
		t.Fatalf("sequence did not match")
	}
	bindings := m.Bindings()
	if got := bindings["name"].StringAttr("value"); got != "a" {
		t.Errorf("name = %q, want %q", got, "a")
	}
	if got := bindings["init"].StringAttr("value"); got != "10" {
		t.Errorf("init = %q, want %q", got, "10")
	}

	seq, ok := m.(SeqMatch)
	if !ok {
		t.Fatalf("match type = %T, want SeqMatch", m)
	}
	if len(seq.Nodes()) != 4 {
		t.Errorf("matched %d nodes, want 4", len(seq.Nodes()))
	}
}

func TestSequenceFailsWhenSiblingsRunOut(t *testing.T) {
	root := statementTree()
	stmt := root.FirstChild()

	p := Sequence(Named("text"), Named("text"))
	// The last text child has no following sibling.
	if _, ok := p.Match(stmt.LastChild()); ok {
		t.Errorf("sequence matched past the last sibling")
	}
}

func TestAnyPicksFirstAlternative(t *testing.T) {
	p := Any(Named("keyword"), Named("text"))

	if _, ok := p.Match(tree.New("text")); !ok {
		t.Errorf("Any did not match the second alternative")
	}
	if _, ok := p.Match(tree.New("block")); ok {
		t.Errorf("Any matched an unlisted kind")
	}
}

func TestFindCollectsAllMatches(t *testing.T) {
	root := statementTree()

	matches := Find(Named("text"), root)
	if len(matches) != 2 {
		t.Fatalf("found %d matches, want 2", len(matches))
	}
	first := matches[0].(NodeMatch)
	if got := first.Node.StringAttr("value"); got != "a" {
		t.Errorf("first match = %q, want depth-first order", got)
	}
}

func TestFindSequenceAcrossTree(t *testing.T) {
	root := statementTree()

	p := Sequence(Named("keyword"), As(Named("text"), "name"))
	matches := Find(p, root)
	if len(matches) != 1 {
		t.Fatalf("found %d matches, want 1", len(matches))
	}
	if got := matches[0].Bindings()["name"].StringAttr("value"); got != "a" {
		t.Errorf("name = %q, want %q", got, "a")
	}
}

func TestSlottedSequence(t *testing.T) {
	root := statementTree()
	p := As(Sequence(Named("keyword"), Named("text")), "head")

	matches := Find(p, root)
	if len(matches) != 1 {
		t.Fatalf("found %d matches, want 1", len(matches))
	}
	head := matches[0].Bindings()["head"]
	if head == nil || head.Name != "keyword" {
		t.Errorf("head = %v, want the first matched node", head)
	}
}
