package visibility

import "math"

// ClientRect is the viewport-relative bounding box a host reports for an
// element.
type ClientRect struct {
	Left   float64 `yaml:"left"   json:"left"`
	Top    float64 `yaml:"top"    json:"top"`
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Rect is an element's page-relative offset: left/top include the page
// scroll, width/height are rounded to whole pixels.
type Rect struct {
	Left   float64 `yaml:"left"   json:"left"`
	Top    float64 `yaml:"top"    json:"top"`
	Width  int     `yaml:"width"  json:"width"`
	Height int     `yaml:"height" json:"height"`
}

// Point is a horizontal/vertical pair, used for scroll offsets.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Size is a width/height pair in whole pixels.
type Size struct {
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// round rounds half up, so 0.5 -> 1 and -0.5 -> 0.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
