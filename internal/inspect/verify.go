package inspect

import (
	"context"
	"fmt"

	"github.com/mj1618/visible/internal/platform"
	"github.com/mj1618/visible/internal/visibility"
	"golang.org/x/sync/errgroup"
)

// Fixture attributes: every element carrying TestAttr is a fixture, and it
// must be visible exactly when ExpectAttr is present and not "invisible".
const (
	TestAttr   = "data-test"
	ExpectAttr = "data-visible"
)

// FixtureResult is the outcome of one fixture.
type FixtureResult struct {
	Name     string `yaml:"name"     json:"name"`
	Ref      string `yaml:"ref"      json:"ref"`
	Expected bool   `yaml:"expected" json:"expected"`
	Visible  bool   `yaml:"visible"  json:"visible"`
	Pass     bool   `yaml:"pass"     json:"pass"`
}

// VerifyResult summarises a fixture run.
type VerifyResult struct {
	Pass     bool            `yaml:"pass"     json:"pass"`
	Total    int             `yaml:"total"    json:"total"`
	Failed   int             `yaml:"failed"   json:"failed"`
	Fixtures []FixtureResult `yaml:"fixtures" json:"fixtures"`
}

// Verify classifies every fixture element in s, at most concurrency at a
// time, and compares each against its expectation.
func Verify(ctx context.Context, s platform.Session, concurrency int) (*VerifyResult, error) {
	refs, err := s.Query(ctx, "["+TestAttr+"]")
	if err != nil {
		return nil, fmt.Errorf("query fixtures: %w", err)
	}
	nodes := make([]visibility.Node, len(refs))
	for i, r := range refs {
		nodes[i] = r
	}
	defer platform.Release(ctx, s, nodes)

	fixtures := make([]FixtureResult, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, ref := range refs {
		g.Go(func() error {
			f, err := verifyOne(gctx, s, ref)
			if err != nil {
				return err
			}
			fixtures[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &VerifyResult{Total: len(fixtures), Fixtures: fixtures}
	for _, f := range fixtures {
		if !f.Pass {
			res.Failed++
		}
	}
	res.Pass = res.Failed == 0
	return res, nil
}

func verifyOne(ctx context.Context, h visibility.Host, ref visibility.Element) (FixtureResult, error) {
	name, _, err := h.Attribute(ctx, ref, TestAttr)
	if err != nil {
		return FixtureResult{}, err
	}
	expect, ok, err := h.Attribute(ctx, ref, ExpectAttr)
	if err != nil {
		return FixtureResult{}, err
	}
	vis, err := visibility.IsVisible(ctx, h, ref)
	if err != nil {
		return FixtureResult{}, fmt.Errorf("fixture %q: %w", name, err)
	}
	want := ok && expect != "" && expect != "invisible"
	return FixtureResult{Name: name, Ref: ref.Ref, Expected: want, Visible: vis, Pass: vis == want}, nil
}
