package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/mj1618/visible/internal/visibility"
)

// Resolve turns a node expression into nodes: "window" and "document" name
// those nodes, anything else is a selector that may match many elements.
func Resolve(ctx context.Context, s Session, expr string) ([]visibility.Node, error) {
	switch strings.TrimSpace(expr) {
	case "window":
		return []visibility.Node{visibility.Window{}}, nil
	case "document":
		return []visibility.Node{visibility.Document{}}, nil
	}
	refs, err := s.Query(ctx, expr)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", expr, err)
	}
	nodes := make([]visibility.Node, len(refs))
	for i, r := range refs {
		nodes[i] = r
	}
	return nodes, nil
}

// Release hands the element nodes among nodes back to s when it holds
// resources for them. Window and document nodes are ignored.
func Release(ctx context.Context, s Session, nodes []visibility.Node) {
	r, ok := s.(Releaser)
	if !ok {
		return
	}
	var refs []visibility.Element
	for _, n := range nodes {
		if el, ok := n.(visibility.Element); ok {
			refs = append(refs, el)
		}
	}
	if len(refs) > 0 {
		r.Release(ctx, refs)
	}
}
