// Package snapshot serves visual trees from YAML page snapshots, so pages
// captured earlier can be classified without a browser.
package snapshot

import (
	"context"
	"fmt"

	"github.com/mj1618/visible/internal/model"
	"github.com/mj1618/visible/internal/platform"
	"github.com/mj1618/visible/internal/visibility"
)

func init() {
	platform.Register(platform.BackendSnapshot, platform.BackendFunc(Open))
}

// Session is a read-only session over a loaded page.
type Session struct {
	*model.Page
}

var _ platform.Session = (*Session)(nil)

// Open loads the snapshot file at path.
func Open(_ context.Context, path string, opts platform.OpenOptions) (platform.Session, error) {
	p, err := model.LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		opts.Logger.Debug("snapshot loaded", "path", path, "url", p.URL, "viewport", p.Viewport)
	}
	return New(p), nil
}

// New wraps an in-memory page.
func New(p *model.Page) *Session {
	return &Session{Page: p}
}

func (s *Session) Query(_ context.Context, selector string) ([]visibility.Element, error) {
	return s.Page.Query(selector)
}

func (s *Session) Snapshot(context.Context) (*model.Page, error) {
	return s.Page, nil
}

func (s *Session) Screenshot(context.Context) ([]byte, error) {
	return nil, fmt.Errorf("snapshot %s: %w", s.URL, platform.ErrUnsupported)
}

func (s *Session) Close() error { return nil }
