package model

// RootName is the label of the accessible tree root.
const RootName = "Head up display"

// Node is one focusable or grouping element in the accessible tree.
// Parents are not stored; they are derived from Path.
type Node struct {
	Name     string  `yaml:"name"            json:"name"`
	Role     Role    `yaml:"role"            json:"role"`
	Path     Path    `yaml:"path,omitempty"  json:"path,omitempty"`
	State    string  `yaml:"state,omitempty" json:"state,omitempty"`
	Children []*Node `yaml:"children,omitempty" json:"children,omitempty"`

	id      string
	segment string
}

// Rect is a screen rectangle in overlay coordinates.
type Rect struct {
	X      int `yaml:"x"      json:"x"      mapstructure:"x"`
	Y      int `yaml:"y"      json:"y"      mapstructure:"y"`
	Width  int `yaml:"width"  json:"width"  mapstructure:"width"`
	Height int `yaml:"height" json:"height" mapstructure:"height"`
}

// NewRoot returns an empty tree root.
func NewRoot() *Node {
	return &Node{Name: RootName, Role: RoleRoot}
}

// NewNode creates a detached node. id becomes the node's path segment when
// it is unique among its siblings; an empty id yields "role:index". A
// detached node with an id is addressed by that id until it is appended.
func NewNode(id, name string, role Role) *Node {
	return &Node{id: id, Name: name, Role: role, Path: Path(id), segment: id}
}

// ID returns the identifier the node was created with.
func (n *Node) ID() string { return n.id }

// Label is the narration text for the node.
func (n *Node) Label() string {
	if n.State != "" {
		return n.Name + " " + n.State
	}
	return n.Name
}

// Append adds child as the last child and assigns paths to the whole
// appended subtree. It returns child.
func (n *Node) Append(child *Node) *Node {
	child.segment = n.segmentFor(child, len(n.Children), -1)
	n.Children = append(n.Children, child)
	child.repath(n.Path)
	return child
}

// Replace swaps the child at index for repl, keeping its position.
// It is a no-op when index is out of range.
func (n *Node) Replace(index int, repl *Node) {
	if index < 0 || index >= len(n.Children) {
		return
	}
	repl.segment = n.segmentFor(repl, index, index)
	n.Children[index] = repl
	repl.repath(n.Path)
}

// Clear drops all children.
func (n *Node) Clear() {
	n.Children = nil
}

// Find walks p segment by segment starting at n. p is absolute; it must
// be n's own path or lie below it. Missing segments yield nil.
func (n *Node) Find(p Path) *Node {
	rel, ok := n.Path.relative(p)
	if !ok {
		return nil
	}
	cur := n
	for _, seg := range rel.Segments() {
		var next *Node
		for _, c := range cur.Children {
			if c.segment == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// IndexOf returns the position of the direct child addressed by p, or -1.
func (n *Node) IndexOf(p Path) int {
	for i, c := range n.Children {
		if c.Path == p {
			return i
		}
	}
	return -1
}

// Equals reports whether the node's path ends with suffix. It identifies
// fixed nodes such as a "close" button regardless of position.
func (n *Node) Equals(suffix string) bool {
	return n.Path.HasSuffix(suffix)
}

// First returns the first child or nil.
func (n *Node) First() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// Last returns the last child or nil.
func (n *Node) Last() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Height is the number of levels below n.
func (n *Node) Height() int {
	h := 0
	for _, c := range n.Children {
		if ch := c.Height() + 1; ch > h {
			h = ch
		}
	}
	return h
}

// segmentFor picks the path segment for child at index, ignoring the
// sibling at skip.
func (n *Node) segmentFor(child *Node, index, skip int) string {
	if child.id == "" {
		return Segment(child.Role.String(), index)
	}
	for i, c := range n.Children {
		if i != skip && c.segment == child.id {
			return Segment(child.id, index)
		}
	}
	return child.id
}

func (n *Node) repath(parent Path) {
	n.Path = JoinPath(parent, n.segment)
	for _, c := range n.Children {
		if c.segment == "" {
			c.segment = Segment(c.Role.String(), 0)
		}
		c.repath(n.Path)
	}
}
