package visibility

import "context"

// Host is the capability record a rendering environment hands to the
// classifier. Implementations read live state; nothing here mutates it.
type Host interface {
	// ScrollOffset returns the page's horizontal and vertical scroll position.
	ScrollOffset(ctx context.Context) (Point, error)

	// ViewportSize returns the window's inner width and height.
	ViewportSize(ctx context.Context) (Size, error)

	// DocumentScrollSize returns the scroll width and height of the
	// document's root element.
	DocumentScrollSize(ctx context.Context) (Size, error)

	// BoundingRect returns the viewport-relative bounding box of el.
	BoundingRect(ctx context.Context, el Element) (ClientRect, error)

	// Attribute looks up a literal attribute on el. ok is false when the
	// attribute is absent.
	Attribute(ctx context.Context, el Element, name string) (value string, ok bool, err error)
}
