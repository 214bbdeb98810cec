package model

// FlatElement is an element with a path breadcrumb instead of children.
type FlatElement struct {
	ID      int               `yaml:"i"               json:"i"`
	Tag     string            `yaml:"tag"             json:"tag"`
	Attrs   map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Rect    [4]float64        `yaml:"b"               json:"b"`
	Visible *bool             `yaml:"vis,omitempty"   json:"vis,omitempty"`
	Path    string            `yaml:"p,omitempty"     json:"p,omitempty"`
}

// FlattenElements converts a tree of elements into a flat list. Each
// element gets a path of tag names joined with " > ".
func FlattenElements(elements []Element) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		flattenRecursive(el, "", &result)
	}
	return result
}

func flattenRecursive(el Element, parentPath string, result *[]FlatElement) {
	currentPath := el.Tag
	if parentPath != "" {
		currentPath = parentPath + " > " + el.Tag
	}

	*result = append(*result, FlatElement{
		ID:      el.ID,
		Tag:     el.Tag,
		Attrs:   el.Attrs,
		Rect:    el.Rect,
		Visible: el.Visible,
		Path:    currentPath,
	})

	for _, child := range el.Children {
		flattenRecursive(child, currentPath, result)
	}
}
