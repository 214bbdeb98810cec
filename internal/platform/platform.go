package platform

import (
	"context"

	"github.com/mj1618/visible/internal/model"
	"github.com/mj1618/visible/internal/visibility"
)

// Session is an open visual tree: a live browser page or a loaded snapshot.
// It is the host the classifier runs against.
type Session interface {
	visibility.Host

	// Query returns handles for every element matching a CSS selector,
	// in document order.
	Query(ctx context.Context, selector string) ([]visibility.Element, error)

	// Snapshot captures the current tree and window state.
	Snapshot(ctx context.Context) (*model.Page, error)

	// Screenshot returns a PNG of the viewport.
	Screenshot(ctx context.Context) ([]byte, error)

	Close() error
}

// Backend opens sessions for targets it understands.
type Backend interface {
	Open(ctx context.Context, target string, opts OpenOptions) (Session, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, target string, opts OpenOptions) (Session, error)

func (f BackendFunc) Open(ctx context.Context, target string, opts OpenOptions) (Session, error) {
	return f(ctx, target, opts)
}

// Releaser is implemented by sessions whose element refs pin resources in
// the host. Released refs must not be used again.
type Releaser interface {
	Release(ctx context.Context, refs []visibility.Element)
}
