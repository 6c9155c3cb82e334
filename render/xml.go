package render

import (
	"encoding/json"
	"strings"

	"github.com/dhamidi/parsource/tree"
)

// XML returns a compact XML-like dump of the tree, mainly for quick
// inspection. Text leaves carrying only a value collapse to their raw
// value; everything else becomes an element with JSON-encoded attribute
// values.
func XML(n *tree.Node) string {
	var b strings.Builder
	writeXML(&b, n)
	return b.String()
}

func writeXML(b *strings.Builder, n *tree.Node) {
	if n.Name == "text" && n.IsLeaf() {
		attrs := n.Attributes()
		if len(attrs) == 1 && attrs[0].Key == "value" {
			b.WriteString(n.StringAttr("value"))
			return
		}
		if len(attrs) == 0 {
			return
		}
	}
	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, a := range n.Attributes() {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(xmlValue(a.Value))
	}
	if n.IsLeaf() {
		b.WriteString(" />")
		return
	}
	b.WriteByte('>')
	for _, child := range n.Children() {
		writeXML(b, child)
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}

func xmlValue(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		raw, _ = json.Marshal(err.Error())
	}
	if _, isString := v.(string); isString {
		return string(raw)
	}
	quoted, _ := json.Marshal(string(raw))
	return string(quoted)
}
