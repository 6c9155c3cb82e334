package query

import (
	"fmt"
	"regexp"
	"strings"
)

// templateSymbols are the capture types allowed in template placeholders.
var templateSymbols = map[string]string{
	"name": `[A-Za-z_][A-Za-z0-9_]*`,
	"rest": `.*`,
}

var rePlaceholder = regexp.MustCompile(`^([A-Z_]+)(:([a-z_]+))?$`)

var reSpaces = regexp.MustCompile(` +`)

// tmplNode is the small AST of the template language: literal text,
// separators, and `<...>` placeholder groups with optional `?`
// cardinality.
type tmplNode struct {
	kind        string
	value       string
	cardinality string
	children    []*tmplNode
}

func (n *tmplNode) append(child *tmplNode) *tmplNode {
	n.children = append(n.children, child)
	return child
}

// CompileTemplate rewrites a template expression into a compiled regular
// expression with named groups. Templates are literal text with `<NAME>`
// or `<NAME:type>` placeholders, `|` alternation and `<>` soft
// separators.
func CompileTemplate(text string) (*regexp.Regexp, error) {
	src, err := TemplateRegexp(text)
	if err != nil {
		return nil, err
	}
	return regexp.Compile(src)
}

// TemplateRegexp returns the regular expression source a template
// compiles to.
func TemplateRegexp(text string) (string, error) {
	return parseTemplate(text, ' ').regexp()
}

// parseTemplate scans the template character by character, maintaining a
// stack of open placeholder groups.
func parseTemplate(text string, separator byte) *tmplNode {
	root := &tmplNode{kind: "expr"}
	current := root
	stack := []*tmplNode{root}
	var last byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		top := stack[len(stack)-1]
		switch {
		case c == separator:
			if current.kind != "sep" {
				current = current.append(&tmplNode{kind: "sep"})
			}
		case c == '<' && last != '\\':
			current = top.append(&tmplNode{kind: "tmpl"})
			stack = append(stack, current)
		case c == '>':
			if last == '<' {
				// `<>` is a soft separator, not a placeholder.
				current.kind = "sep"
				current.cardinality = "?"
			} else if last == '?' {
				current.value = strings.TrimSuffix(current.value, "?")
				top.cardinality = "?"
			}
			current = top
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
				current = stack[len(stack)-1]
			}
		case c == '|':
			current = top.append(&tmplNode{kind: "text"})
		case current.kind == "text":
			current.value += string(c)
		default:
			current = top.append(&tmplNode{kind: "text", value: string(c)})
		}
		last = c
	}
	return root
}

func (n *tmplNode) regexp() (string, error) {
	switch n.kind {
	case "expr":
		return n.childRegexps()
	case "tmpl":
		var groups []string
		sep := ""
		for _, child := range n.children {
			switch child.kind {
			case "text":
				if m := rePlaceholder.FindStringSubmatch(child.value); m != nil {
					symbol := m[3]
					if symbol == "" {
						symbol = strings.ToLower(m[1])
					}
					pattern, ok := templateSymbols[symbol]
					if !ok {
						return "", fmt.Errorf("unsupported symbol %q in template", symbol)
					}
					groups = append(groups, fmt.Sprintf("(?P<%s>%s)", m[1], pattern))
					continue
				}
				re, err := child.regexp()
				if err != nil {
					return "", err
				}
				groups = append(groups, re)
			case "tmpl":
				re, err := child.regexp()
				if err != nil {
					return "", err
				}
				groups = append(groups, re)
			case "sep":
				re, err := child.regexp()
				if err != nil {
					return "", err
				}
				sep = re
			default:
				return "", fmt.Errorf("node kind %q not supported inside a placeholder", child.kind)
			}
		}
		res := strings.Join(groups, "|")
		if sep != "" {
			res = "(" + res + ")" + sep
		}
		return "(" + res + ")" + n.cardinality, nil
	case "text":
		text := reSpaces.ReplaceAllString(regexp.QuoteMeta(n.value), `\s+`)
		rest, err := n.childRegexps()
		if err != nil {
			return "", err
		}
		return text + rest, nil
	case "sep":
		if n.cardinality == "?" {
			return `\s*`, nil
		}
		return `\s+`, nil
	default:
		return "", fmt.Errorf("template node kind %q not supported", n.kind)
	}
}

func (n *tmplNode) childRegexps() (string, error) {
	var b strings.Builder
	for _, child := range n.children {
		re, err := child.regexp()
		if err != nil {
			return "", err
		}
		b.WriteString(re)
	}
	return b.String(), nil
}
