// Package query matches subsets of a parsed tree with small pattern
// combinators, and compiles text templates into regular expressions for
// cherry-picking source regions.
package query

import (
	"path"

	"github.com/dhamidi/parsource/tree"
)

// Match is the result of applying a Pattern: either a single node or a
// run of sibling nodes. The variants are a closed set; switch over them
// exhaustively.
type Match interface {
	// Bindings maps slot names to the nodes they captured.
	Bindings() map[string]*tree.Node
	isMatch()
}

// NodeMatch is a single matched node, possibly bound to a slot.
type NodeMatch struct {
	Slot string
	Node *tree.Node
}

func (NodeMatch) isMatch() {}

func (m NodeMatch) Bindings() map[string]*tree.Node {
	if m.Slot == "" {
		return nil
	}
	return map[string]*tree.Node{m.Slot: m.Node}
}

// SeqMatch is a run of consecutive sibling matches.
type SeqMatch struct {
	Of []Match
}

func (SeqMatch) isMatch() {}

func (m SeqMatch) Bindings() map[string]*tree.Node {
	var out map[string]*tree.Node
	for _, sub := range m.Of {
		for slot, node := range sub.Bindings() {
			if out == nil {
				out = map[string]*tree.Node{}
			}
			out[slot] = node
		}
	}
	return out
}

// Nodes returns the matched nodes in order.
func (m SeqMatch) Nodes() []*tree.Node {
	nodes := make([]*tree.Node, 0, len(m.Of))
	for _, sub := range m.Of {
		switch sub := sub.(type) {
		case NodeMatch:
			nodes = append(nodes, sub.Node)
		case SeqMatch:
			nodes = append(nodes, sub.Nodes()...)
		}
	}
	return nodes
}

// Pattern matches a node, or a node and some of its following siblings.
type Pattern interface {
	Match(n *tree.Node) (Match, bool)
}

// named matches a node whose kind name matches a shell-style wildcard
// pattern.
type named struct {
	pattern string
	slot    string
}

// Named returns a pattern matching node kind names against a shell-style
// wildcard (e.g. "op-*").
func Named(pattern string) Pattern {
	return named{pattern: pattern}
}

func (p named) Match(n *tree.Node) (Match, bool) {
	if ok, err := path.Match(p.pattern, n.Name); err != nil || !ok {
		return nil, false
	}
	return NodeMatch{Slot: p.slot, Node: n}, true
}

// As binds the pattern's match to a named slot. It returns a new pattern;
// patterns themselves are immutable.
func As(p Pattern, slot string) Pattern {
	switch p := p.(type) {
	case named:
		p.slot = slot
		return p
	default:
		return slotted{of: p, slot: slot}
	}
}

// slotted wraps any pattern so its first matched node binds to a slot.
type slotted struct {
	of   Pattern
	slot string
}

func (p slotted) Match(n *tree.Node) (Match, bool) {
	m, ok := p.of.Match(n)
	if !ok {
		return nil, false
	}
	switch m := m.(type) {
	case NodeMatch:
		m.Slot = p.slot
		return m, true
	default:
		return SeqMatch{Of: []Match{NodeMatch{Slot: p.slot, Node: n}, m}}, true
	}
}

// seqOf matches a run of patterns against a node and its following
// siblings.
type seqOf struct {
	of []Pattern
}

// Sequence matches the patterns against consecutive siblings starting at
// the probed node.
func Sequence(patterns ...Pattern) Pattern {
	return seqOf{of: patterns}
}

func (p seqOf) Match(n *tree.Node) (Match, bool) {
	var matches []Match
	cur := n
	for _, sub := range p.of {
		if cur == nil {
			return nil, false
		}
		m, ok := sub.Match(cur)
		if !ok {
			return nil, false
		}
		matches = append(matches, m)
		cur = cur.NextSibling()
	}
	return SeqMatch{Of: matches}, true
}

// anyOf matches the first of its alternatives that matches.
type anyOf struct {
	of []Pattern
}

// Any matches if any alternative matches, in order.
func Any(patterns ...Pattern) Pattern {
	return anyOf{of: patterns}
}

func (p anyOf) Match(n *tree.Node) (Match, bool) {
	for _, sub := range p.of {
		if m, ok := sub.Match(n); ok {
			return m, true
		}
	}
	return nil, false
}

// Find walks the tree depth-first and collects every position where the
// pattern matches.
func Find(p Pattern, root *tree.Node) []Match {
	var out []Match
	for n := range root.Walk(nil) {
		if m, ok := p.Match(n); ok {
			out = append(out, m)
		}
	}
	return out
}
