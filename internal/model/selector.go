package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/visible/internal/visibility"
)

// Selector matches elements by tag, id, class and attributes. It understands
// a comma-separated list of compound selectors such as
// `div.note[data-test]`, `#main`, `[display=none]` or `*`. There are no
// combinators. A selector made only of digits matches the element ID.
type Selector struct {
	alts []compound
	id   int
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

// ParseSelector compiles s.
func ParseSelector(s string) (*Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty selector")
	}
	if id, err := strconv.Atoi(s); err == nil {
		return &Selector{id: id}, nil
	}
	sel := &Selector{}
	for _, part := range splitList(s) {
		c, err := parseCompound(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid selector %q: %w", s, err)
		}
		sel.alts = append(sel.alts, c)
	}
	return sel, nil
}

func parseCompound(s string) (compound, error) {
	var c compound
	if s == "" {
		return c, fmt.Errorf("empty compound")
	}
	i := 0
	start := i
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	if i > start {
		c.tag = strings.ToLower(s[start:i])
	} else if i < len(s) && s[i] == '*' {
		i++
	}
	for i < len(s) {
		switch s[i] {
		case '#', '.':
			kind := s[i]
			i++
			start := i
			for i < len(s) && isNameByte(s[i]) {
				i++
			}
			if i == start {
				return c, fmt.Errorf("missing name after %q", kind)
			}
			if kind == '#' {
				c.id = s[start:i]
			} else {
				c.classes = append(c.classes, s[start:i])
			}
		case '[':
			end := attrEnd(s[i:])
			if end < 0 {
				return c, fmt.Errorf("unterminated attribute selector")
			}
			a, err := parseAttr(s[i+1 : i+end])
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
			i += end + 1
		default:
			return c, fmt.Errorf("unexpected %q at offset %d", s[i], i)
		}
	}
	return c, nil
}

// splitList splits a selector list on commas outside attribute brackets
// and quotes.
func splitList(s string) []string {
	var parts []string
	var quote byte
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// attrEnd returns the offset of the ']' closing the attribute selector at
// the start of s, skipping quoted values, or -1.
func attrEnd(s string) int {
	var quote byte
	for i := 1; i < len(s); i++ {
		switch c := s[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ']':
			return i
		}
	}
	return -1
}

func parseAttr(s string) (attrMatch, error) {
	name, value, hasValue := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return attrMatch{}, fmt.Errorf("missing attribute name")
	}
	value = strings.Trim(strings.TrimSpace(value), `"'`)
	return attrMatch{name: name, value: value, hasValue: hasValue}, nil
}

func isNameByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Match reports whether el satisfies the selector.
func (s *Selector) Match(el *Element) bool {
	if s.alts == nil {
		return el.ID == s.id
	}
	for _, c := range s.alts {
		if c.match(el) {
			return true
		}
	}
	return false
}

func (c compound) match(el *Element) bool {
	if c.tag != "" && c.tag != el.Tag {
		return false
	}
	if c.id != "" {
		if v, _ := el.Attr("id"); v != c.id {
			return false
		}
	}
	if len(c.classes) > 0 {
		have := strings.Fields(el.Attrs["class"])
		for _, want := range c.classes {
			if !containsString(have, want) {
				return false
			}
		}
	}
	for _, a := range c.attrs {
		v, ok := el.Attr(a.name)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Query returns handles for every element matching selector, in document
// order.
func (p *Page) Query(selector string) ([]visibility.Element, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	var refs []visibility.Element
	walk(p.Elements, func(el *Element) {
		if sel.Match(el) {
			refs = append(refs, Ref(el))
		}
	})
	return refs, nil
}
