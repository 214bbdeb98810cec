// Package inspect runs the classifier over an open session on behalf of the
// CLI and the MCP server.
package inspect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/visible/internal/model"
	"github.com/mj1618/visible/internal/platform"
	"github.com/mj1618/visible/internal/visibility"
)

// NodeResult is the classification of one resolved node.
type NodeResult struct {
	Node    string `yaml:"node"            json:"node"`
	Kind    string `yaml:"kind,omitempty"  json:"kind,omitempty"`
	Ref     string `yaml:"ref,omitempty"   json:"ref,omitempty"`
	Visible bool   `yaml:"visible"         json:"visible"`
	Width   int    `yaml:"w"               json:"w"`
	Height  int    `yaml:"h"               json:"h"`
	Error   string `yaml:"error,omitempty" json:"error,omitempty"`
}

// Check classifies every node each expression resolves to. An expression
// that matches nothing yields one result with Error set; host failures
// abort the check.
func Check(ctx context.Context, s platform.Session, exprs []string) ([]NodeResult, error) {
	var results []NodeResult
	for _, expr := range exprs {
		nodes, err := platform.Resolve(ctx, s, expr)
		if err != nil {
			return nil, err
		}
		if len(nodes) == 0 {
			results = append(results, NodeResult{Node: expr, Error: "no elements match"})
			continue
		}
		classified, err := classifyAll(ctx, s, expr, nodes)
		platform.Release(ctx, s, nodes)
		if err != nil {
			return nil, err
		}
		results = append(results, classified...)
	}
	return results, nil
}

func classifyAll(ctx context.Context, s platform.Session, expr string, nodes []visibility.Node) ([]NodeResult, error) {
	results := make([]NodeResult, 0, len(nodes))
	for _, n := range nodes {
		r, err := classify(ctx, s, expr, n)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func classify(ctx context.Context, h visibility.Host, expr string, n visibility.Node) (NodeResult, error) {
	vis, err := visibility.IsVisible(ctx, h, n)
	if err != nil {
		return NodeResult{}, fmt.Errorf("%s: %w", expr, err)
	}
	w, err := visibility.Width(ctx, h, n)
	if err != nil {
		return NodeResult{}, fmt.Errorf("%s: %w", expr, err)
	}
	ht, err := visibility.Height(ctx, h, n)
	if err != nil {
		return NodeResult{}, fmt.Errorf("%s: %w", expr, err)
	}
	r := NodeResult{Node: expr, Kind: n.Kind().String(), Visible: vis, Width: w, Height: ht}
	if el, ok := n.(visibility.Element); ok {
		r.Ref = el.Ref
	}
	return r, nil
}

// AllMatch reports whether every result is visible (or, with wantHidden,
// hidden). Results carrying an error never match.
func AllMatch(results []NodeResult, wantHidden bool) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if r.Error != "" || r.Visible == wantHidden {
			return false
		}
	}
	return true
}

// ReadOptions filters the tree returned by Read.
type ReadOptions struct {
	Tags        []string
	BBox        *[4]int
	VisibleOnly bool
	Flat        bool
}

// ParseTags splits a comma-separated tag list, lowercasing each tag and
// dropping blanks.
func ParseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ReadResult is the tree output of the read command.
type ReadResult struct {
	URL      string          `yaml:"url,omitempty"   json:"url,omitempty"`
	Title    string          `yaml:"title,omitempty" json:"title,omitempty"`
	TS       int64           `yaml:"ts"              json:"ts"`
	Viewport [2]int          `yaml:"viewport"        json:"viewport"`
	Elements []model.Element `yaml:"elements"        json:"elements"`
}

// ReadFlatResult is the output when --flat is used.
type ReadFlatResult struct {
	URL      string              `yaml:"url,omitempty"   json:"url,omitempty"`
	Title    string              `yaml:"title,omitempty" json:"title,omitempty"`
	TS       int64               `yaml:"ts"              json:"ts"`
	Viewport [2]int              `yaml:"viewport"        json:"viewport"`
	Elements []model.FlatElement `yaml:"elements"        json:"elements"`
}

// Read captures the session's tree, marks each element visible or hidden
// and applies the filters. It returns a *ReadResult, or a *ReadFlatResult
// when opts.Flat is set.
func Read(ctx context.Context, s platform.Session, opts ReadOptions) (interface{}, error) {
	page, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	elements, err := model.Annotate(ctx, page)
	if err != nil {
		return nil, err
	}
	if opts.VisibleOnly {
		elements = model.FilterVisible(elements)
	}
	elements = model.FilterElements(elements, opts.Tags, opts.BBox)

	ts := page.TS
	if ts == 0 {
		ts = time.Now().Unix()
	}
	if opts.Flat {
		flat := model.FlattenElements(elements)
		if flat == nil {
			flat = []model.FlatElement{}
		}
		return &ReadFlatResult{URL: page.URL, Title: page.Title, TS: ts, Viewport: page.Viewport, Elements: flat}, nil
	}
	if elements == nil {
		elements = []model.Element{}
	}
	return &ReadResult{URL: page.URL, Title: page.Title, TS: ts, Viewport: page.Viewport, Elements: elements}, nil
}
