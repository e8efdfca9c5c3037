package document

// WalkFunc is called for each node visited by Walk.
// Return a non-nil error to stop the walk.
type WalkFunc func(n Node) error

// Walk performs a depth-first pre-order traversal of the forest.
// List items are visited after their list and before their nested list.
func Walk(nodes []Node, fn WalkFunc) error {
	for _, n := range nodes {
		if err := walkNode(n, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkNode(n Node, fn WalkFunc) error {
	if n == nil {
		return nil
	}

	if err := fn(n); err != nil {
		return err
	}

	switch v := n.(type) {
	case *List:
		for _, item := range v.Items {
			if err := walkNode(item, fn); err != nil {
				return err
			}
		}
	case *ListItem:
		if v.Nested != nil {
			return walkNode(v.Nested, fn)
		}
	case *Blockquote:
		return Walk(v.Children, fn)
	case *Container:
		return Walk(v.Children, fn)
	}

	return nil
}

// FindByKind returns every node of the given kind in traversal order.
func FindByKind(nodes []Node, kind Kind) []Node {
	var found []Node

	//nolint:errcheck,revive // The callback never returns an error.
	Walk(nodes, func(n Node) error {
		if n.Kind() == kind {
			found = append(found, n)
		}
		return nil
	})

	return found
}

// Count tallies nodes by kind across the whole forest.
func Count(nodes []Node) map[Kind]int {
	counts := make(map[Kind]int)

	//nolint:errcheck,revive // The callback never returns an error.
	Walk(nodes, func(n Node) error {
		counts[n.Kind()]++
		return nil
	})

	return counts
}

// Depth returns the deepest nesting level in the forest. Top-level nodes
// are at depth 1; an empty forest has depth 0.
func Depth(nodes []Node) int {
	deepest := 0
	for _, n := range nodes {
		if d := nodeDepth(n); d > deepest {
			deepest = d
		}
	}
	return deepest
}

func nodeDepth(n Node) int {
	switch v := n.(type) {
	case *List:
		deepest := 0
		for _, item := range v.Items {
			if d := nodeDepth(item); d > deepest {
				deepest = d
			}
		}
		return 1 + deepest
	case *ListItem:
		if v.Nested != nil {
			return 1 + nodeDepth(v.Nested)
		}
		return 1
	case *Blockquote:
		return 1 + Depth(v.Children)
	case *Container:
		return 1 + Depth(v.Children)
	default:
		return 1
	}
}
