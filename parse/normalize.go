package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dhamidi/parsource/tree"
)

// Comment text is split against these patterns, in order: an
// annotation-like directive marker and a horizontal separator.
var commentPatterns = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`@(?P<value>[a-z][a-z0-9]+)`), "directive"},
	{regexp.MustCompile(`--\s+|―\s*`), "separator"},
}

// NewCommentPass returns the transform that decomposes comment contents:
// text children are split into directive, separator and plain text
// pieces, and a parenthesized block following a directive becomes its
// args list.
func NewCommentPass() *tree.Transform {
	return tree.NewTransform(map[string]tree.Handler{
		"text":  decomposeCommentText,
		"block": decomposeCommentBlock,
	})
}

// NewNormalizer returns the normalization pass set applied after
// extraction: comment decomposition plus statement cleanup. Running it
// over an already-normalized tree does not change the tree's shape.
func NewNormalizer() *tree.Transform {
	comments := NewCommentPass()
	return tree.NewTransform(map[string]tree.Handler{
		"text":      wrapStrayText,
		"statement": absorbStatementText,
		"comment": func(n *tree.Node) error {
			return normalizeComment(comments, n)
		},
	})
}

// Normalize runs the normalization pass set over the tree in place.
func Normalize(root *tree.Node) []tree.Diagnostic {
	return NewNormalizer().Process(root)
}

// decomposeCommentText replaces a raw text node with the pieces matched
// against the comment patterns; unmatched gaps become plain text
// children. Source offsets are rebased onto the original node's span
// when it carries one.
func decomposeCommentText(n *tree.Node) error {
	if n.Count() != 0 {
		return fmt.Errorf("text node has children: %s", n)
	}
	text := n.StringAttr("value")
	base, hasBase := n.Attr("start")

	patterns := make([]*regexp.Regexp, len(commentPatterns))
	for i, p := range commentPatterns {
		patterns[i] = p.re
	}

	var pieces []*tree.Node
	for _, span := range matchSpans(text, patterns) {
		var child *tree.Node
		value := span.value
		if span.pattern >= 0 {
			child = tree.New(commentPatterns[span.pattern].name)
		} else {
			child = tree.New("text")
			value = text[span.start:span.end]
		}
		if value != "" {
			child.SetAttribute("value", value)
		}
		if offset, ok := base.(int); hasBase && ok {
			child.SetAttribute("start", offset+span.start)
			child.SetAttribute("end", offset+span.end)
		}
		pieces = append(pieces, child)
	}
	n.Name = "parsed-comment"
	n.RemoveAttribute("value")
	return n.ReplaceWith(pieces...)
}

// decomposeCommentBlock turns a parenthesized group inside a comment into
// an args node whose comma-separated contents become one text child
// each. When the group directly follows a directive it is attached to it.
func decomposeCommentBlock(n *tree.Node) error {
	if n.StringAttr("type") != "(" {
		return nil
	}
	var joined strings.Builder
	for d := range n.Walk(nil) {
		joined.WriteString(d.StringAttr("value"))
	}
	children := n.Children()
	snapshot := make([]*tree.Node, len(children))
	copy(snapshot, children)
	for _, c := range snapshot {
		c.Detach()
	}
	for _, part := range strings.Split(joined.String(), ",") {
		arg := tree.New("text").SetAttribute("value", strings.TrimSpace(part))
		if err := n.Append(arg); err != nil {
			return err
		}
	}
	n.Name = "args"
	if prev := n.PreviousSibling(); prev != nil && prev.Name == "directive" {
		return prev.Append(n.Detach())
	}
	return nil
}

// normalizeComment decomposes the comment's contents, then merges a
// directive-less comment back into its preceding sibling. This stitches
// multi-line comments together: continuation lines end up as ordinary
// children of the comment they continue.
func normalizeComment(comments *tree.Transform, n *tree.Node) error {
	var errs []error
	for _, d := range comments.Process(n) {
		errs = append(errs, errors.New(d.String()))
	}
	if prev := n.PreviousSibling(); prev != nil {
		if first := n.FirstChild(); first != nil && first.Name != "directive" {
			children := n.Children()
			moved := make([]*tree.Node, len(children))
			copy(moved, children)
			for _, c := range moved {
				if err := prev.Append(c.Detach()); err != nil {
					errs = append(errs, err)
				}
			}
			n.Detach()
		}
	}
	return errors.Join(errs...)
}

// wrapStrayText moves text that is not already inside a statement into a
// fresh statement wrapper at the same position.
func wrapStrayText(n *tree.Node) error {
	if p := n.Parent(); p != nil && p.Name != "statement" {
		return n.Wrap(tree.New("statement"))
	}
	return nil
}

// absorbStatementText pulls immediately following text siblings into the
// statement, then drops the statement entirely if it ended up empty.
func absorbStatementText(n *tree.Node) error {
	for next := n.NextSibling(); next != nil && next.Name == "text"; next = n.NextSibling() {
		if err := n.Append(next.Detach()); err != nil {
			return err
		}
	}
	if n.Count() == 0 {
		n.Detach()
	}
	return nil
}
