// Package visibility decides whether a node in a visual tree is visible.
//
// A node is visible when it has a non-zero width or height and does not
// carry a literal display="none" attribute. The attribute is read as-is;
// computed or cascaded style is never consulted.
package visibility

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilNode is returned when a nil Node is classified.
var ErrNilNode = errors.New("visibility: nil node")

// DisplayAttribute is the attribute whose value "none" hides an element.
const DisplayAttribute = "display"

// IsVisible reports whether n is visible in h.
func IsVisible(ctx context.Context, h Host, n Node) (bool, error) {
	w, err := Width(ctx, h, n)
	if err != nil {
		return false, err
	}
	ht, err := Height(ctx, h, n)
	if err != nil {
		return false, err
	}
	if w == 0 && ht == 0 {
		return false, nil
	}
	display, err := displayAttribute(ctx, h, n)
	if err != nil {
		return false, err
	}
	return display != "none", nil
}

// Width returns the width of n: the viewport width for a window, the root
// scroll width for a document, and the rounded bounding width otherwise.
func Width(ctx context.Context, h Host, n Node) (int, error) {
	s, err := size(ctx, h, n)
	if err != nil {
		return 0, err
	}
	return s.Width, nil
}

// Height is the vertical counterpart of Width.
func Height(ctx context.Context, h Host, n Node) (int, error) {
	s, err := size(ctx, h, n)
	if err != nil {
		return 0, err
	}
	return s.Height, nil
}

func size(ctx context.Context, h Host, n Node) (Size, error) {
	switch n := n.(type) {
	case nil:
		return Size{}, ErrNilNode
	case Window:
		s, err := h.ViewportSize(ctx)
		if err != nil {
			return Size{}, fmt.Errorf("viewport size: %w", err)
		}
		return s, nil
	case Document:
		s, err := h.DocumentScrollSize(ctx)
		if err != nil {
			return Size{}, fmt.Errorf("document scroll size: %w", err)
		}
		return s, nil
	case Element:
		r, err := Offset(ctx, h, n)
		if err != nil {
			return Size{}, err
		}
		return Size{Width: r.Width, Height: r.Height}, nil
	default:
		return Size{}, fmt.Errorf("visibility: unsupported node %T", n)
	}
}

// Offset returns the page-relative box of el: the host's bounding rect
// shifted by the current scroll offset, with width and height rounded.
func Offset(ctx context.Context, h Host, el Element) (Rect, error) {
	cr, err := h.BoundingRect(ctx, el)
	if err != nil {
		return Rect{}, fmt.Errorf("bounding rect %q: %w", el.Ref, err)
	}
	scroll, err := h.ScrollOffset(ctx)
	if err != nil {
		return Rect{}, fmt.Errorf("scroll offset: %w", err)
	}
	return Rect{
		Left:   cr.Left + scroll.X,
		Top:    cr.Top + scroll.Y,
		Width:  round(cr.Width),
		Height: round(cr.Height),
	}, nil
}

// displayAttribute returns the literal display attribute of n. Windows and
// documents have no attributes.
func displayAttribute(ctx context.Context, h Host, n Node) (string, error) {
	el, ok := n.(Element)
	if !ok {
		return "", nil
	}
	v, _, err := h.Attribute(ctx, el, DisplayAttribute)
	if err != nil {
		return "", fmt.Errorf("attribute %q on %q: %w", DisplayAttribute, el.Ref, err)
	}
	return v, nil
}
