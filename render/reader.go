package render

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dhamidi/parsource/tree"
)

// ErrNoRoot is returned when the input contains no parseable node line.
var ErrNoRoot = errors.New("display format has no root node")

// Parse reads the display format back into a tree, for fixtures and
// round-trip testing. Attribute values are restricted to literal syntax:
// quoted strings, integers, floats and booleans. A line whose value is
// not a valid literal is skipped, as is any line that does not look like
// a node at a consistent depth.
func Parse(text string) (*tree.Node, error) {
	var root *tree.Node
	parents := map[int]*tree.Node{}
	for _, line := range strings.Split(text, "\n") {
		depth, rest, ok := splitLeader(line)
		if !ok {
			continue
		}
		node, ok := parseNodeLine(rest)
		if !ok {
			// Children of the skipped line must not attach to an older
			// node recorded at the same depth.
			for d := range parents {
				if d >= depth {
					delete(parents, d)
				}
			}
			continue
		}
		if depth == 0 {
			if root != nil {
				continue
			}
			root = node
			parents[0] = node
			continue
		}
		parent, ok := parents[depth-1]
		if !ok || root == nil {
			continue
		}
		if err := parent.Append(node); err != nil {
			return nil, err
		}
		parents[depth] = node
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// splitLeader strips the box-drawing leader and returns the node depth.
// Each level contributes exactly three leader runes.
func splitLeader(line string) (depth int, rest string, ok bool) {
	runes := []rune(line)
	i := 0
	for i < len(runes) && isLeaderRune(runes[i]) {
		i++
	}
	if i%3 != 0 {
		return 0, "", false
	}
	rest = strings.TrimRight(string(runes[i:]), " \t\r")
	if rest == "" {
		return 0, "", false
	}
	return i / 3, rest, true
}

func isLeaderRune(r rune) bool {
	switch r {
	case '├', '└', '─', '│', ' ':
		return true
	}
	return false
}

// parseNodeLine parses "name key=value key=value".
func parseNodeLine(s string) (*tree.Node, bool) {
	name, attrs, _ := strings.Cut(s, " ")
	if !validName(name) {
		return nil, false
	}
	node := tree.New(name)
	for attrs != "" {
		attrs = strings.TrimLeft(attrs, " ")
		if attrs == "" {
			break
		}
		key, rest, found := strings.Cut(attrs, "=")
		if !found || !validName(key) {
			return nil, false
		}
		value, remaining, ok := parseValue(rest)
		if !ok {
			return nil, false
		}
		node.SetAttribute(key, value)
		attrs = remaining
	}
	return node, true
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// parseValue consumes one literal from the front of s and returns the
// remainder. Quoted strings may contain spaces; bare tokens end at the
// next space and must parse as a number or boolean.
func parseValue(s string) (value any, rest string, ok bool) {
	if strings.HasPrefix(s, `"`) {
		end := closingQuote(s)
		if end < 0 {
			return nil, "", false
		}
		unquoted, err := strconv.Unquote(s[:end+1])
		if err != nil {
			return nil, "", false
		}
		return unquoted, s[end+1:], true
	}
	token, rest, _ := strings.Cut(s, " ")
	if token == "" {
		return nil, "", false
	}
	if b, err := strconv.ParseBool(token); err == nil && (token == "true" || token == "false") {
		return b, rest, true
	}
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return int(i), rest, true
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f, rest, true
	}
	return nil, "", false
}

// closingQuote finds the index of the unescaped closing double quote.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
