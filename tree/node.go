// Package tree implements the mutable ordered tree produced by parsing,
// along with the generic node-type dispatch engine used to rewrite it.
package tree

import (
	"errors"
	"fmt"
	"iter"
	"sync/atomic"
)

// ids hands out node identities for the whole process. Identity is only
// used for debugging and equality, never for ordering.
var ids atomic.Int64

var (
	// ErrAttached is returned when a structural operation receives a node
	// that already has a parent. Callers must detach first.
	ErrAttached = errors.New("node already has a parent")
	// ErrNotChild is returned when removing a node from a parent that does
	// not own it.
	ErrNotChild = errors.New("node is not a child of this node")
	// ErrDetached is returned by operations that require the receiver to be
	// attached to a parent.
	ErrDetached = errors.New("node has no parent")
)

// Attr is a single named attribute. Attributes keep insertion order so a
// rendered tree is stable and round-trips.
type Attr struct {
	Key   string
	Value any
}

// Node is a uniquely identified, named tree node with ordered attributes,
// ordered children and at most one parent. Ownership is exclusive: a child
// belongs to exactly one parent until detached.
type Node struct {
	Name string

	id       int64
	attrs    []Attr
	parent   *Node
	children []*Node
}

// New creates a standalone node of the given kind name.
func New(name string) *Node {
	return &Node{Name: name, id: ids.Add(1)}
}

// ID returns the node's identity.
func (n *Node) ID() int64 { return n.id }

// Parent returns the owning parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Root walks up the parent chain and returns the topmost ancestor. A node
// without a parent is its own root.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Children returns the node's children in order. The returned slice is the
// node's own storage; callers must not modify it directly.
func (n *Node) Children() []*Node { return n.children }

// Count returns the number of children.
func (n *Node) Count() int { return len(n.children) }

// Child returns the i-th child, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// Index returns the node's position among its siblings, or -1 when
// detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return n.parent.IndexOf(n)
}

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// PreviousSibling returns the sibling before this node, or nil.
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.IndexOf(n)
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// NextSibling returns the sibling after this node, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.IndexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// IsEmpty reports whether the node has no children and no attributes.
func (n *Node) IsEmpty() bool { return n.IsLeaf() && len(n.attrs) == 0 }

// Attributes returns the node's attributes in insertion order. The slice
// is the node's own storage; callers must not modify it directly.
func (n *Node) Attributes() []Attr { return n.attrs }

// HasAttribute reports whether an attribute with the given key exists.
func (n *Node) HasAttribute(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// Attr looks up an attribute value by key.
func (n *Node) Attr(key string) (any, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// StringAttr returns the attribute as a string, or "" when absent or of a
// different type.
func (n *Node) StringAttr(key string) string {
	if v, ok := n.Attr(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IntAttr returns the attribute as an int, or -1 when absent or of a
// different type.
func (n *Node) IntAttr(key string) int {
	if v, ok := n.Attr(key); ok {
		if i, ok := v.(int); ok {
			return i
		}
	}
	return -1
}

// SetAttribute sets or replaces an attribute, keeping its original
// position when replacing. Returns the node for chaining.
func (n *Node) SetAttribute(key string, value any) *Node {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs[i].Value = value
			return n
		}
	}
	n.attrs = append(n.attrs, Attr{Key: key, Value: value})
	return n
}

// RemoveAttribute deletes an attribute if present.
func (n *Node) RemoveAttribute(key string) *Node {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			break
		}
	}
	return n
}

// Append attaches child as the last child. The child must be detached.
func (n *Node) Append(child *Node) error {
	if child.parent != nil {
		return fmt.Errorf("append %s to %s: %w", child.Name, n.Name, ErrAttached)
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// Insert attaches child at the given index. A negative index counts from
// the end. The child must be detached.
func (n *Node) Insert(index int, child *Node) error {
	if index < 0 {
		index += len(n.children)
	}
	if index < 0 || index > len(n.children) {
		return fmt.Errorf("insert into %s: index %d out of bounds", n.Name, index)
	}
	if child.parent != nil {
		return fmt.Errorf("insert %s into %s: %w", child.Name, n.Name, ErrAttached)
	}
	child.parent = n
	if index == len(n.children) {
		n.children = append(n.children, child)
		return nil
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	return nil
}

// Set replaces the child at the given index in place, detaching the
// previous occupant. With no children it behaves like Append; otherwise
// the index is clamped into range. A negative index counts from the end.
func (n *Node) Set(index int, child *Node) error {
	if child.parent != nil {
		return fmt.Errorf("set child of %s: %w", n.Name, ErrAttached)
	}
	if len(n.children) == 0 {
		return n.Append(child)
	}
	if index < 0 {
		index += len(n.children)
	}
	index = min(max(0, index), len(n.children)-1)
	previous := n.children[index]
	n.children[index] = child
	previous.parent = nil
	child.parent = n
	return nil
}

// Remove detaches child from this node. The child must be owned by n.
func (n *Node) Remove(child *Node) error {
	if child.parent != n {
		return fmt.Errorf("remove %s from %s: %w", child.Name, n.Name, ErrNotChild)
	}
	i := n.IndexOf(child)
	child.parent = nil
	n.children = append(n.children[:i], n.children[i+1:]...)
	return nil
}

// Detach severs the node from its parent, if any, and returns it.
func (n *Node) Detach() *Node {
	if n.parent != nil {
		n.parent.Remove(n)
	}
	return n
}

// Wrap splices wrapper in at this node's current position and moves the
// node inside it. A detached node is simply appended to the wrapper.
func (n *Node) Wrap(wrapper *Node) error {
	if wrapper.parent != nil {
		return fmt.Errorf("wrap %s: %w", n.Name, ErrAttached)
	}
	parent := n.parent
	if parent != nil {
		i := parent.IndexOf(n)
		if err := parent.Set(i, wrapper); err != nil {
			return err
		}
	}
	return wrapper.Append(n)
}

// Merge pulls the other node's children and attributes into this node.
// Children are moved in order; attributes keep existing values unless
// replace is set.
func (n *Node) Merge(other *Node, replace bool) *Node {
	for _, a := range other.attrs {
		if replace || !n.HasAttribute(a.Key) {
			n.SetAttribute(a.Key, a.Value)
		}
	}
	children := make([]*Node, len(other.children))
	copy(children, other.children)
	for _, c := range children {
		n.Append(c.Detach())
	}
	return n
}

// Absorb detaches the other node and merges its children and attributes
// into this node.
func (n *Node) Absorb(other *Node) *Node {
	other.Detach()
	return n.Merge(other, false)
}

// ReplaceWith splices zero or more nodes in at this node's position and
// detaches it. The replacement nodes must themselves be detached.
func (n *Node) ReplaceWith(nodes ...*Node) error {
	if n.parent == nil {
		return fmt.Errorf("replace %s: %w", n.Name, ErrDetached)
	}
	parent := n.parent
	index := parent.IndexOf(n)
	for i := len(nodes) - 1; i >= 0; i-- {
		if err := parent.Insert(index, nodes[i]); err != nil {
			return err
		}
	}
	n.Detach()
	return nil
}

// Walk returns a lazy depth-first traversal rooted at this node. When
// filter is non-nil and returns false for a node, the node and its whole
// subtree are skipped.
func (n *Node) Walk(filter func(*Node) bool) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(filter, yield)
	}
}

func (n *Node) walk(filter func(*Node) bool, yield func(*Node) bool) bool {
	if filter != nil && !filter(n) {
		return true
	}
	if !yield(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(filter, yield) {
			return false
		}
	}
	return true
}

// Copy makes a deep copy of the node with fresh identities. If depth is
// zero the children are not copied; a negative depth copies everything.
func (n *Node) Copy(depth int) *Node {
	node := New(n.Name)
	node.attrs = make([]Attr, len(n.attrs))
	copy(node.attrs, n.attrs)
	if depth != 0 {
		for _, c := range n.children {
			node.Append(c.Copy(depth - 1))
		}
	}
	return node
}

func (n *Node) String() string {
	s := fmt.Sprintf("<%s#%d", n.Name, n.id)
	for _, a := range n.attrs {
		s += fmt.Sprintf(" %s=%v", a.Key, a.Value)
	}
	if len(n.children) > 0 {
		s += fmt.Sprintf(" …%d", len(n.children))
	}
	return s + ">"
}
