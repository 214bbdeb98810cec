package model

import (
	"context"
	"testing"
)

func TestFilterElements_NoFilters(t *testing.T) {
	elements := []Element{
		{ID: 1, Tag: "button", Rect: [4]float64{0, 0, 100, 30}},
		{ID: 2, Tag: "p", Rect: [4]float64{0, 30, 100, 20}},
	}
	result := FilterElements(elements, nil, nil)
	if len(result) != 2 {
		t.Errorf("expected 2 elements, got %d", len(result))
	}
}

func TestFilterElements_TagFilter(t *testing.T) {
	elements := []Element{
		{ID: 1, Tag: "button", Rect: [4]float64{0, 0, 100, 30}},
		{ID: 2, Tag: "p", Rect: [4]float64{0, 30, 100, 20}},
		{ID: 3, Tag: "a", Rect: [4]float64{0, 50, 100, 20}},
	}
	result := FilterElements(elements, []string{"button", "a"}, nil)
	if len(result) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(result))
	}
	if result[0].Tag != "button" || result[1].Tag != "a" {
		t.Errorf("unexpected tags: %s, %s", result[0].Tag, result[1].Tag)
	}
}

func TestFilterElements_BBoxFilter(t *testing.T) {
	elements := []Element{
		{ID: 1, Tag: "div", Rect: [4]float64{10, 10, 50, 30}},   // inside
		{ID: 2, Tag: "div", Rect: [4]float64{200, 200, 50, 30}}, // outside
		{ID: 3, Tag: "div", Rect: [4]float64{90, 90, 50, 30}},   // overlaps
	}
	bbox := [4]int{0, 0, 100, 100}
	result := FilterElements(elements, nil, &bbox)
	if len(result) != 2 {
		t.Errorf("expected 2 elements (inside + overlapping), got %d", len(result))
	}
}

func TestFilterElements_PromotesChildren(t *testing.T) {
	elements := []Element{
		{
			ID: 1, Tag: "section", Rect: [4]float64{0, 0, 200, 200},
			Children: []Element{
				{ID: 2, Tag: "button", Rect: [4]float64{10, 10, 50, 30}},
				{ID: 3, Tag: "p", Rect: [4]float64{10, 50, 100, 20}},
			},
		},
	}
	result := FilterElements(elements, []string{"button"}, nil)
	if len(result) != 1 || result[0].ID != 2 {
		t.Fatalf("expected the button to be promoted, got %+v", result)
	}
}

func TestAnnotate_Fixtures(t *testing.T) {
	p := loadFixtures(t)
	annotated, err := Annotate(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}

	flat := FlattenElements(annotated)
	if len(flat) != 12 {
		t.Fatalf("expected 12 elements, got %d", len(flat))
	}
	for _, el := range flat {
		if el.Visible == nil {
			t.Fatalf("element %d not annotated", el.ID)
		}
	}
	// The page itself must not be modified.
	if p.Elements[0].Visible != nil {
		t.Error("Annotate should not modify the page")
	}
}

func TestFilterVisible(t *testing.T) {
	p := loadFixtures(t)
	annotated, err := Annotate(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}

	visible := FlattenElements(FilterVisible(annotated))
	want := []int{1, 2, 5, 6, 9, 12}
	if len(visible) != len(want) {
		var ids []int
		for _, el := range visible {
			ids = append(ids, el.ID)
		}
		t.Fatalf("got ids %v, want %v", ids, want)
	}
	for i, el := range visible {
		if el.ID != want[i] {
			t.Errorf("position %d: got id %d, want %d", i, el.ID, want[i])
		}
	}
	// The child of the hidden section is promoted to the body.
	if visible[len(visible)-1].Path != "body > p" {
		t.Errorf("expected promoted path %q, got %q", "body > p", visible[len(visible)-1].Path)
	}
}

func TestBoundsIntersect(t *testing.T) {
	tests := []struct {
		name string
		a    [4]float64
		b    [4]int
		want bool
	}{
		{"overlapping", [4]float64{0, 0, 100, 100}, [4]int{50, 50, 100, 100}, true},
		{"adjacent_no_overlap", [4]float64{0, 0, 100, 100}, [4]int{100, 0, 100, 100}, false},
		{"contained", [4]float64{0, 0, 200, 200}, [4]int{50, 50, 10, 10}, true},
		{"no_overlap", [4]float64{0, 0, 10, 10}, [4]int{20, 20, 10, 10}, false},
		{"subpixel_overlap", [4]float64{99.5, 0, 10, 10}, [4]int{0, 0, 100, 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := boundsIntersect(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("boundsIntersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
