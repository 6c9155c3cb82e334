package parse

import (
	"errors"
	"fmt"

	"github.com/dhamidi/parsource/tree"
)

// ErrUnderflow reports a close event fed while only the root scope was
// open: the input has more closing markers than opening ones.
var ErrUnderflow = errors.New("more closes than opens")

// frame is one open scope and the event kind that will close it. Frames
// form the ancestor chain of the node currently being built into; the
// root frame always exists and is never popped.
type frame struct {
	node     *tree.Node
	awaiting EventKind
}

// Extractor is a stack machine that consumes an event stream and builds a
// tree. Feed it one event at a time, or drive a whole classifier pass
// with Process. Reset rearms it for another pass.
type Extractor struct {
	root        *tree.Node
	stack       []frame
	withOffsets bool
}

// ExtractorOption adjusts extractor construction.
type ExtractorOption func(*Extractor)

// WithoutOffsets disables the start/end source-offset attributes on
// produced nodes. Mostly useful for fixtures.
func WithoutOffsets() ExtractorOption {
	return func(x *Extractor) { x.withOffsets = false }
}

// NewExtractor returns an extractor with a fresh root scope.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	x := &Extractor{withOffsets: true}
	for _, opt := range opts {
		opt(x)
	}
	x.Reset()
	return x
}

// Reset discards the current tree and stack and starts a new root scope.
func (x *Extractor) Reset() {
	x.root = tree.New("root")
	x.stack = x.stack[:0]
	x.stack = append(x.stack, frame{node: x.root, awaiting: -1})
}

// Result returns the root of the extracted tree. Frames still open at end
// of stream (unterminated comments or blocks) are not an error; the tree
// reflects whatever was attached to open scopes.
func (x *Extractor) Result() *tree.Node { return x.root }

// Depth returns the current stack depth, including the root frame.
func (x *Extractor) Depth() int { return len(x.stack) }

// Process drains the classifier through Feed. Structural underflow and
// classifier errors are fatal and returned as err; other feed failures
// are collected as diagnostics and the pass continues. The partially
// built tree stays available through Result either way.
func (x *Extractor) Process(events *Classifier) (diags []error, err error) {
	for events.Next() {
		if ferr := x.Feed(events.Event()); ferr != nil {
			if errors.Is(ferr, ErrUnderflow) {
				return diags, ferr
			}
			diags = append(diags, ferr)
		}
	}
	return diags, events.Err()
}

// Feed applies one event to the stack machine.
func (x *Extractor) Feed(ev *Event) error {
	switch ev.Kind {
	case EventComment:
		n := x.node(ev, "comment")
		x.append(n)
		x.push(n, EventLineEnd)
	case EventBlockStart:
		n := tree.New("block").SetAttribute("type", ev.Value)
		if x.withOffsets {
			n.SetAttribute("start", ev.Start)
			n.SetAttribute("end", ev.End)
		}
		x.append(n)
		x.push(n, EventBlockEnd)
	case EventLineEnd:
		if x.current().awaiting == EventLineEnd {
			return x.pop()
		}
	case EventBlockEnd:
		// Deliberately lenient: the closing delimiter is not checked
		// against the one that opened the current scope.
		return x.pop()
	case EventStatementEnd:
		return x.endStatement(ev)
	case EventQuote:
		x.append(x.leaf(ev, "quote"))
	case EventText:
		x.append(x.leaf(ev, "text"))
	case EventKeyword:
		x.append(x.leaf(ev, "keyword"))
	case EventOpInfix:
		x.append(x.leaf(ev, "op-inf"))
	case EventOpPrefix:
		x.append(x.leaf(ev, "op-pre"))
	case EventOpSuffix:
		x.append(x.leaf(ev, "op-suf"))
	default:
		return fmt.Errorf("unsupported event: %s", ev)
	}
	return nil
}

// endStatement moves every sibling after the most recent statement child
// of the current scope (all of them when there is none) into a new
// statement node appended to the scope.
func (x *Extractor) endStatement(ev *Event) error {
	scope := x.current().node
	children := scope.Children()
	from := 0
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].Name == "statement" {
			from = i + 1
			break
		}
	}
	moved := make([]*tree.Node, len(children)-from)
	copy(moved, children[from:])
	stmt := x.node(ev, "statement")
	for _, child := range moved {
		if err := stmt.Append(child.Detach()); err != nil {
			return err
		}
	}
	x.append(stmt)
	return nil
}

func (x *Extractor) current() frame { return x.stack[len(x.stack)-1] }

func (x *Extractor) push(n *tree.Node, awaiting EventKind) {
	x.stack = append(x.stack, frame{node: n, awaiting: awaiting})
}

func (x *Extractor) pop() error {
	if len(x.stack) == 1 {
		return fmt.Errorf("%w at %s", ErrUnderflow, x.current().node.Name)
	}
	x.stack = x.stack[:len(x.stack)-1]
	return nil
}

func (x *Extractor) append(n *tree.Node) {
	x.current().node.Append(n)
}

func (x *Extractor) node(ev *Event, name string) *tree.Node {
	n := tree.New(name)
	if x.withOffsets {
		n.SetAttribute("start", ev.Start)
		n.SetAttribute("end", ev.End)
	}
	return n
}

// leaf creates a node carrying the event's text as its value attribute.
func (x *Extractor) leaf(ev *Event, name string) *tree.Node {
	n := tree.New(name).SetAttribute("value", ev.Text())
	if x.withOffsets {
		n.SetAttribute("start", ev.Start)
		n.SetAttribute("end", ev.End)
	}
	return n
}
