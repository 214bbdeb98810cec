package model

import (
	"context"

	"github.com/mj1618/visible/internal/visibility"
)

// FilterElements applies filters to a slice of elements, returning only
// matching elements. It filters by tag and bounding box. When an element
// does not match but some of its descendants do, the descendants take its
// place.
func FilterElements(elements []Element, tags []string, bbox *[4]int) []Element {
	if len(tags) == 0 && bbox == nil {
		return elements
	}

	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[t] = true
	}

	var result []Element
	for _, el := range elements {
		var filteredChildren []Element
		if len(el.Children) > 0 {
			filteredChildren = FilterElements(el.Children, tags, bbox)
		}

		tagMatch := len(tagSet) == 0 || tagSet[el.Tag]
		bboxMatch := bbox == nil || boundsIntersect(el.Rect, *bbox)

		if tagMatch && bboxMatch {
			filtered := el
			filtered.Children = filteredChildren
			result = append(result, filtered)
		} else if len(filteredChildren) > 0 {
			result = append(result, filteredChildren...)
		}
	}
	return result
}

// Annotate returns a copy of the page's element tree with Visible set on
// every element.
func Annotate(ctx context.Context, p *Page) ([]Element, error) {
	return annotate(ctx, p, p.Elements)
}

func annotate(ctx context.Context, p *Page, elements []Element) ([]Element, error) {
	if len(elements) == 0 {
		return nil, nil
	}
	out := make([]Element, len(elements))
	for i, el := range elements {
		vis, err := visibility.IsVisible(ctx, p, Ref(&elements[i]))
		if err != nil {
			return nil, err
		}
		children, err := annotate(ctx, p, el.Children)
		if err != nil {
			return nil, err
		}
		el.Visible = &vis
		el.Children = children
		out[i] = el
	}
	return out, nil
}

// FilterVisible drops elements whose Visible flag is false. Visible
// descendants of a hidden element are promoted to its place, since the
// classifier does not inherit visibility from ancestors.
func FilterVisible(elements []Element) []Element {
	var result []Element
	for _, el := range elements {
		children := FilterVisible(el.Children)
		if el.Visible != nil && !*el.Visible {
			result = append(result, children...)
			continue
		}
		kept := el
		kept.Children = children
		result = append(result, kept)
	}
	return result
}

// boundsIntersect checks if a client rect overlaps an [x, y, width, height]
// box.
func boundsIntersect(a [4]float64, b [4]int) bool {
	ax1, ay1, ax2, ay2 := a[0], a[1], a[0]+a[2], a[1]+a[3]
	bx1, by1 := float64(b[0]), float64(b[1])
	bx2, by2 := bx1+float64(b[2]), by1+float64(b[3])
	return ax1 < bx2 && ax2 > bx1 && ay1 < by2 && ay2 > by1
}
