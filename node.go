package text2d

import "github.com/go-gl/mathgl/mgl64"

// nodeIDCounter is a plain counter (no atomic, nodes are built on one goroutine).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node
	scene    *Scene

	// Placement
	Transform Transform
	Anchor    Anchor

	// Channel selects which animator channel, if any, owns this node's
	// transform. Untagged nodes are never written by the animator.
	Channel Channel

	// Computed during Update
	worldTransform [6]float64
	worldDepth     float64

	Visible bool

	// Sprite fields (NodeTypeSprite)
	Color Color
	Size  Vec2

	// Text fields (NodeTypeText)
	TextBlock *TextBlock
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Transform = IdentityTransform()
	n.Color = ColorWhite
	n.Visible = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a solid color rectangle of the given size, centred on its
// origin unless Anchor says otherwise.
func NewSprite(name string, c Color, size Vec2) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite}
	nodeDefaults(n)
	n.Color = c
	n.Size = size
	return n
}

// NewText creates a text node with the given content and font.
func NewText(name string, content string, font Font) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		TextBlock: &TextBlock{
			Content:     content,
			Font:        font,
			Color:       ColorWhite,
			Smoothing:   true,
			layoutDirty: true,
		},
	}
	nodeDefaults(n)
	return n
}

// Translation returns the node's local translation.
func (n *Node) Translation() mgl64.Vec3 {
	return n.Transform.Translation
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("text2d: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("text2d: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	switch {
	case n.scene != nil:
		n.scene.register(child)
	case child.scene != nil:
		child.scene.unregister(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("text2d: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	if child.scene != nil {
		child.scene.unregister(child)
	}
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// walk calls fn for n and every descendant, parents before children.
func walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		walk(c, fn)
	}
}
