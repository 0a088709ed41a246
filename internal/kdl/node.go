package kdl

// Prop is a key=value entry on a node
type Prop struct {
	Key   string
	Value Value
}

// Node is a single node with its entries and children.
//
// Top-level nodes produced by Parse carry source offsets: Start/End cover
// the node text itself, while SpanStart/SpanEnd widen that range to any
// comment lines directly attached above the node and to the rest of the
// line after it, so the node can be cut or copied verbatim.
type Node struct {
	Name     string
	Args     []Value
	Props    []Prop
	Hidden   []Prop
	Children []*Node
	HasBlock bool

	Line   int
	Column int

	Start     int
	End       int
	SpanStart int
	SpanEnd   int
}

// NewNode builds a node with positional arguments
func NewNode(name string, args ...Value) *Node {
	return &Node{Name: name, Args: args}
}

// Add appends children and marks the node as having a block
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	n.HasBlock = true
	return n
}

// With appends a property
func (n *Node) With(key string, v Value) *Node {
	n.Props = append(n.Props, Prop{Key: key, Value: v})
	return n
}

// WithHidden appends a slashdashed property. The compositor ignores it.
func (n *Node) WithHidden(key string, v Value) *Node {
	n.Hidden = append(n.Hidden, Prop{Key: key, Value: v})
	return n
}

// Arg returns the i-th positional argument
func (n *Node) Arg(i int) (Value, bool) {
	if i < 0 || i >= len(n.Args) {
		return Value{}, false
	}
	return n.Args[i], true
}

// Prop returns the value of a property. Later duplicates win.
func (n *Node) Prop(key string) (Value, bool) {
	for i := len(n.Props) - 1; i >= 0; i-- {
		if n.Props[i].Key == key {
			return n.Props[i].Value, true
		}
	}
	return Value{}, false
}

// HiddenProp returns the value of a slashdashed property
func (n *Node) HiddenProp(key string) (Value, bool) {
	for i := len(n.Hidden) - 1; i >= 0; i-- {
		if n.Hidden[i].Key == key {
			return n.Hidden[i].Value, true
		}
	}
	return Value{}, false
}

// Child returns the last child with the given name, or nil
func (n *Node) Child(name string) *Node {
	for i := len(n.Children) - 1; i >= 0; i-- {
		if n.Children[i].Name == name {
			return n.Children[i]
		}
	}
	return nil
}

// ChildrenNamed returns every child with the given name in order
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// HasChild reports whether a child with the given name exists
func (n *Node) HasChild(name string) bool {
	return n.Child(name) != nil
}

// Document is a parsed source file
type Document struct {
	Nodes  []*Node
	Source []byte
}

// Names returns the top-level node names in order
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		names = append(names, n.Name)
	}
	return names
}

// Text returns the verbatim source of a top-level node, including
// attached comments and trailing same-line content.
func (d *Document) Text(n *Node) string {
	if n.SpanEnd > len(d.Source) || n.SpanStart > n.SpanEnd {
		return ""
	}
	return string(d.Source[n.SpanStart:n.SpanEnd])
}
