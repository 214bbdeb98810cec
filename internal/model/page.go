package model

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/mj1618/visible/internal/visibility"
)

// ErrElementNotFound is returned when an element ref does not resolve.
var ErrElementNotFound = errors.New("element not found")

// Page is a captured visual tree together with the window state it was
// captured under. It implements visibility.Host, so a snapshot can be
// classified exactly like a live page.
type Page struct {
	URL        string     `yaml:"url,omitempty"   json:"url,omitempty"`
	Title      string     `yaml:"title,omitempty" json:"title,omitempty"`
	TS         int64      `yaml:"ts"              json:"ts"`
	Viewport   [2]int     `yaml:"viewport"        json:"viewport"`    // innerWidth, innerHeight
	Scroll     [2]float64 `yaml:"scroll"          json:"scroll"`      // pageXOffset, pageYOffset
	ScrollSize [2]int     `yaml:"scroll_size"     json:"scroll_size"` // documentElement scrollWidth, scrollHeight
	Elements   []Element  `yaml:"elements"        json:"elements"`

	indexOnce sync.Once
	index     map[int]*Element
}

var _ visibility.Host = (*Page)(nil)

// Number assigns sequential IDs, in document order, to every element that
// has none. Existing IDs are kept.
func (p *Page) Number() {
	maxID := 0
	walk(p.Elements, func(el *Element) {
		if el.ID > maxID {
			maxID = el.ID
		}
	})
	walk(p.Elements, func(el *Element) {
		if el.ID == 0 {
			maxID++
			el.ID = maxID
		}
	})
}

// Lookup returns the element with the given ID.
func (p *Page) Lookup(id int) (*Element, bool) {
	p.indexOnce.Do(func() {
		p.index = make(map[int]*Element)
		walk(p.Elements, func(el *Element) {
			p.index[el.ID] = el
		})
	})
	el, ok := p.index[id]
	return el, ok
}

// Ref returns the visibility handle for el.
func Ref(el *Element) visibility.Element {
	return visibility.Element{Ref: strconv.Itoa(el.ID)}
}

func (p *Page) resolve(el visibility.Element) (*Element, error) {
	id, err := strconv.Atoi(el.Ref)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ref %q", ErrElementNotFound, el.Ref)
	}
	found, ok := p.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrElementNotFound, id)
	}
	return found, nil
}

func (p *Page) ScrollOffset(context.Context) (visibility.Point, error) {
	return visibility.Point{X: p.Scroll[0], Y: p.Scroll[1]}, nil
}

func (p *Page) ViewportSize(context.Context) (visibility.Size, error) {
	return visibility.Size{Width: p.Viewport[0], Height: p.Viewport[1]}, nil
}

func (p *Page) DocumentScrollSize(context.Context) (visibility.Size, error) {
	return visibility.Size{Width: p.ScrollSize[0], Height: p.ScrollSize[1]}, nil
}

func (p *Page) BoundingRect(_ context.Context, ref visibility.Element) (visibility.ClientRect, error) {
	el, err := p.resolve(ref)
	if err != nil {
		return visibility.ClientRect{}, err
	}
	return visibility.ClientRect{Left: el.Rect[0], Top: el.Rect[1], Width: el.Rect[2], Height: el.Rect[3]}, nil
}

func (p *Page) Attribute(_ context.Context, ref visibility.Element, name string) (string, bool, error) {
	el, err := p.resolve(ref)
	if err != nil {
		return "", false, err
	}
	v, ok := el.Attr(name)
	return v, ok, nil
}

// walk visits every element depth-first in document order.
func walk(elements []Element, fn func(*Element)) {
	for i := range elements {
		fn(&elements[i])
		walk(elements[i].Children, fn)
	}
}
