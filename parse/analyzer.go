package parse

import "github.com/cederberg/grammatica-sub000/tree"

// Analyzer is the caller-supplied callback surface invoked on node enter,
// child add, and node exit (§4.9), unless the node is synthetic or
// recovery is active. A callback may return a domain error, which is
// recorded like a parse error but does not trigger panic-mode recovery.
type Analyzer interface {
	Enter(node *tree.Node) error
	Exit(node *tree.Node) (*tree.Node, error)
	Child(parent, child *tree.Node) error
}

// DefaultAnalyzer builds the tree verbatim: Enter and Child are no-ops,
// Exit returns the node unchanged. It is used whenever a Driver is not
// given a more specific Analyzer.
type DefaultAnalyzer struct{}

func (DefaultAnalyzer) Enter(node *tree.Node) error { return nil }

func (DefaultAnalyzer) Exit(node *tree.Node) (*tree.Node, error) { return node, nil }

func (DefaultAnalyzer) Child(parent, child *tree.Node) error { return nil }
