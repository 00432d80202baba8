// internal/render/tree.go
package render

// NodeKind discriminates the two node variants.
type NodeKind string

const (
	NodeElement NodeKind = "element"
	NodeText    NodeKind = "text"
)

// Node is one vertex of a render tree. Element nodes carry a component
// symbol, props, and children; text nodes carry only Text.
type Node struct {
	Kind      NodeKind               `json:"kind"`
	Component string                 `json:"component,omitempty"`
	Props     map[string]interface{} `json:"props,omitempty"`
	Children  []*Node                `json:"children,omitempty"`
	Text      string                 `json:"text,omitempty"`
}

// Element constructs an element node.
func Element(component string, props map[string]interface{}, children ...*Node) *Node {
	return &Node{
		Kind:      NodeElement,
		Component: component,
		Props:     props,
		Children:  children,
	}
}

// TextNode constructs a text leaf.
func TextNode(text string) *Node {
	return &Node{Kind: NodeText, Text: text}
}

// AddChild appends a child and returns the receiver for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// Walk visits n and every descendant in depth-first order.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// FindAll returns every descendant element (including n) whose component
// symbol equals name.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	n.Walk(func(node *Node) {
		if node.Kind == NodeElement && node.Component == name {
			out = append(out, node)
		}
	})
	return out
}

// CountNodes returns the total node count of the tree rooted at n.
func (n *Node) CountNodes() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}
