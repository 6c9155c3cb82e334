package tree

import "fmt"

// Diagnostic is a recoverable condition reported while processing a tree.
// Diagnostics are values threaded back to the caller, never panics, so a
// caller can collect-and-continue or abort on the first one.
type Diagnostic struct {
	Node    *Node
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Node.Name, d.Message)
}

// Handler processes one node. A non-nil error becomes a Diagnostic
// attached to that node; processing continues with the remaining siblings.
type Handler func(n *Node) error

// Processor dispatches nodes to handlers by kind name. Handlers are
// resolved once, at construction time. A node with no registered handler
// produces a diagnostic and is not descended into.
type Processor struct {
	handlers map[string]Handler
}

// NewProcessor builds a processor from an explicit handler table.
func NewProcessor(handlers map[string]Handler) *Processor {
	h := make(map[string]Handler, len(handlers))
	for name, fn := range handlers {
		h[name] = fn
	}
	return &Processor{handlers: h}
}

// Process dispatches the node by its kind name and returns the collected
// diagnostics.
func (p *Processor) Process(n *Node) []Diagnostic {
	return p.dispatch(n, p.catchall)
}

func (p *Processor) dispatch(n *Node, catchall func(*Node) []Diagnostic) []Diagnostic {
	if fn, ok := p.handlers[n.Name]; ok {
		if err := fn(n); err != nil {
			return []Diagnostic{{Node: n, Message: err.Error()}}
		}
		return nil
	}
	return catchall(n)
}

func (p *Processor) catchall(n *Node) []Diagnostic {
	return []Diagnostic{{Node: n, Message: fmt.Sprintf("no handler for kind %q", n.Name)}}
}

// Transform is a Processor whose catchall recurses transparently into
// children instead of reporting them. The child walk tolerates handlers
// rewriting the tree mid-walk: the next sibling is captured before each
// child is processed, so nodes detached before being reached are skipped,
// nodes inserted after the current position are still visited, and nodes
// inserted before it are not revisited.
type Transform struct {
	Processor
}

// NewTransform builds a transform from an explicit handler table.
func NewTransform(handlers map[string]Handler) *Transform {
	return &Transform{Processor: *NewProcessor(handlers)}
}

// Process dispatches the node by its kind name, recursing through
// unregistered kinds, and returns the collected diagnostics.
func (t *Transform) Process(n *Node) []Diagnostic {
	return t.dispatch(n, t.recurse)
}

func (t *Transform) recurse(n *Node) []Diagnostic {
	var diags []Diagnostic
	current := n.FirstChild()
	for current != nil {
		c := current
		// Capture before processing: the handler may rewrite the tree.
		current = c.NextSibling()
		diags = append(diags, t.Process(c)...)
	}
	return diags
}
