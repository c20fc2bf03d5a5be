package document

// Visitor is invoked once per node in document order.
type Visitor interface {
	Visit(n *Node) error
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(n *Node) error

func (f VisitorFunc) Visit(n *Node) error { return f(n) }

// Walk visits root and its descendants depth first, parents before children.
// The first error stops the walk and is returned.
func Walk(root *Node, v Visitor) error {
	if root == nil {
		return nil
	}
	if err := v.Visit(root); err != nil {
		return err
	}
	for _, c := range root.Children {
		if err := Walk(c, v); err != nil {
			return err
		}
	}
	return nil
}

// WalkAll runs each visitor over the whole tree in turn.
func WalkAll(root *Node, visitors ...Visitor) error {
	for _, v := range visitors {
		if err := Walk(root, v); err != nil {
			return err
		}
	}
	return nil
}
