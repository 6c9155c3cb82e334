// Package render writes a tree to its textual display format and reads
// that format back. The format shows one node per line (kind name
// followed by key=value pairs) with children beneath box-drawing
// connectors. Attribute values round-trip through a literal syntax
// (quoted strings, numbers, booleans) only.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/parsource/tree"
)

// Render returns the display format of the tree rooted at n.
func Render(n *tree.Node) string {
	var b strings.Builder
	writeNode(&b, n, "", "")
	return b.String()
}

func writeNode(b *strings.Builder, n *tree.Node, prefix, childPrefix string) {
	b.WriteString(prefix)
	name := n.Name
	if name == "" {
		name = "┐"
	}
	b.WriteString(name)
	for _, a := range n.Attributes() {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(formatValue(a.Value))
	}
	b.WriteByte('\n')

	last := n.Count() - 1
	for i, child := range n.Children() {
		if i == last {
			writeNode(b, child, childPrefix+"└─ ", childPrefix+"   ")
		} else {
			writeNode(b, child, childPrefix+"├─ ", childPrefix+"│  ")
		}
	}
}

// formatValue renders an attribute value in the restricted literal
// grammar. Values outside it are stringified and quoted so the output
// stays parseable, at the cost of type fidelity.
func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}
