package model

import (
	"fmt"
	"sort"
	"strings"
)

// ChangeType represents the kind of change between two captures.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// Change is a single difference between two captures of a page.
type Change struct {
	Type    ChangeType           `yaml:"type"              json:"type"`
	ID      int                  `yaml:"i"                 json:"i"`
	Tag     string               `yaml:"tag,omitempty"     json:"tag,omitempty"`
	Path    string               `yaml:"p,omitempty"       json:"p,omitempty"`
	Changes map[string][2]string `yaml:"changes,omitempty" json:"changes,omitempty"` // For changed: field -> [prev, curr]
}

// DiffElements compares two flat element lists and returns the changes,
// added and changed in curr order followed by removed in prev order.
// Elements are matched by ID, so both captures must come from the same
// document structure for the result to be meaningful.
func DiffElements(prev, curr []FlatElement) []Change {
	prevMap := make(map[int]FlatElement, len(prev))
	for _, el := range prev {
		prevMap[el.ID] = el
	}
	currMap := make(map[int]FlatElement, len(curr))
	for _, el := range curr {
		currMap[el.ID] = el
	}

	var changes []Change
	for _, el := range curr {
		prevEl, existed := prevMap[el.ID]
		if !existed {
			changes = append(changes, Change{Type: ChangeAdded, ID: el.ID, Tag: el.Tag, Path: el.Path})
			continue
		}
		if diffs := diffProperties(prevEl, el); diffs != nil {
			changes = append(changes, Change{Type: ChangeChanged, ID: el.ID, Tag: el.Tag, Path: el.Path, Changes: diffs})
		}
	}
	for _, el := range prev {
		if _, exists := currMap[el.ID]; !exists {
			changes = append(changes, Change{Type: ChangeRemoved, ID: el.ID, Tag: el.Tag, Path: el.Path})
		}
	}
	return changes
}

// VisibilityChanges keeps only changes that flip the vis flag.
func VisibilityChanges(changes []Change) []Change {
	var result []Change
	for _, c := range changes {
		if _, ok := c.Changes["vis"]; ok {
			result = append(result, c)
		}
	}
	return result
}

// diffProperties compares two elements and returns changed fields.
func diffProperties(prev, curr FlatElement) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Tag != curr.Tag {
		diffs["tag"] = [2]string{prev.Tag, curr.Tag}
	}
	if prev.Rect != curr.Rect {
		diffs["b"] = [2]string{
			fmt.Sprintf("%v", prev.Rect),
			fmt.Sprintf("%v", curr.Rect),
		}
	}
	if pv, cv := visString(prev.Visible), visString(curr.Visible); pv != cv {
		diffs["vis"] = [2]string{pv, cv}
	}

	names := make(map[string]bool)
	for k := range prev.Attrs {
		names[k] = true
	}
	for k := range curr.Attrs {
		names[k] = true
	}
	for k := range names {
		pa, pok := prev.Attrs[k]
		ca, cok := curr.Attrs[k]
		if pa != ca || pok != cok {
			diffs["attrs."+k] = [2]string{attrString(pa, pok), attrString(ca, cok)}
		}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func visString(v *bool) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", *v)
}

func attrString(v string, ok bool) string {
	if !ok {
		return "(absent)"
	}
	return fmt.Sprintf("%q", v)
}

// ChangedFields returns the sorted field names of a changed element.
func (c Change) ChangedFields() []string {
	fields := make([]string, 0, len(c.Changes))
	for k := range c.Changes {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// String formats a change on one line, e.g. "changed [5] div: vis".
func (c Change) String() string {
	s := fmt.Sprintf("%s [%d] %s", c.Type, c.ID, c.Tag)
	if len(c.Changes) > 0 {
		s += ": " + strings.Join(c.ChangedFields(), ", ")
	}
	return s
}
