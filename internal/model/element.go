package model

// Element is one node of a captured visual tree.
type Element struct {
	ID       int               `yaml:"i"               json:"i"`               // Sequential integer ID
	Tag      string            `yaml:"tag"             json:"tag"`             // Lowercase tag name
	Attrs    map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"` // Literal attributes
	Rect     [4]float64        `yaml:"b"               json:"b"`               // Client rect [left, top, width, height]
	Visible  *bool             `yaml:"vis,omitempty"   json:"vis,omitempty"`   // Set by Annotate; nil in snapshots
	Children []Element         `yaml:"c,omitempty"     json:"c,omitempty"`
}

// Attr returns the named attribute and whether it is present.
func (el Element) Attr(name string) (string, bool) {
	v, ok := el.Attrs[name]
	return v, ok
}
