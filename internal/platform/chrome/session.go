package chrome

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/mj1618/visible/internal/model"
	"github.com/mj1618/visible/internal/platform"
	"github.com/mj1618/visible/internal/visibility"
)

// Session is one browser tab navigated to a target URL.
type Session struct {
	page    *rod.Page
	browser *browser
	logger  *log.Logger

	refs *refTable
}

var (
	_ platform.Session  = (*Session)(nil)
	_ platform.Releaser = (*Session)(nil)
)

// Open starts (or connects to) a browser, opens a tab and navigates it to
// target.
func Open(ctx context.Context, target string, opts platform.OpenOptions) (platform.Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	timeout := opts.NavigateTimeout
	if timeout <= 0 {
		timeout = DefaultNavigateTimeout
	}

	b, err := connect(ctx, opts, logger)
	if err != nil {
		return nil, err
	}
	page, err := b.newPage(opts)
	if err != nil {
		b.close()
		return nil, fmt.Errorf("create tab: %w", err)
	}
	s := &Session{page: page, browser: b, logger: logger, refs: newRefTable()}

	if opts.Viewport != [2]int{} {
		err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             opts.Viewport[0],
			Height:            opts.Viewport[1],
			DeviceScaleFactor: 1,
		})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("set viewport: %w", err)
		}
	}

	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := page.Context(navCtx).Navigate(target); err != nil {
		s.Close()
		return nil, fmt.Errorf("navigate %s: %w", target, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		logger.Warn("wait load", "url", target, "error", err)
	}
	logger.Debug("page loaded", "url", target)
	return s, nil
}

func (s *Session) ScrollOffset(ctx context.Context) (visibility.Point, error) {
	res, err := s.page.Context(ctx).Eval(`() => ({x: window.pageXOffset, y: window.pageYOffset})`)
	if err != nil {
		return visibility.Point{}, err
	}
	return visibility.Point{X: res.Value.Get("x").Num(), Y: res.Value.Get("y").Num()}, nil
}

func (s *Session) ViewportSize(ctx context.Context) (visibility.Size, error) {
	res, err := s.page.Context(ctx).Eval(`() => ({w: window.innerWidth, h: window.innerHeight})`)
	if err != nil {
		return visibility.Size{}, err
	}
	return visibility.Size{Width: res.Value.Get("w").Int(), Height: res.Value.Get("h").Int()}, nil
}

func (s *Session) DocumentScrollSize(ctx context.Context) (visibility.Size, error) {
	res, err := s.page.Context(ctx).Eval(`() => {
		const de = document.documentElement;
		return {w: de.scrollWidth, h: de.scrollHeight};
	}`)
	if err != nil {
		return visibility.Size{}, err
	}
	return visibility.Size{Width: res.Value.Get("w").Int(), Height: res.Value.Get("h").Int()}, nil
}

func (s *Session) BoundingRect(ctx context.Context, ref visibility.Element) (visibility.ClientRect, error) {
	el, err := s.element(ref)
	if err != nil {
		return visibility.ClientRect{}, err
	}
	res, err := el.Context(ctx).Eval(`() => {
		const r = this.getBoundingClientRect();
		return {left: r.left, top: r.top, width: r.width, height: r.height};
	}`)
	if err != nil {
		return visibility.ClientRect{}, err
	}
	v := res.Value
	return visibility.ClientRect{
		Left:   v.Get("left").Num(),
		Top:    v.Get("top").Num(),
		Width:  v.Get("width").Num(),
		Height: v.Get("height").Num(),
	}, nil
}

func (s *Session) Attribute(ctx context.Context, ref visibility.Element, name string) (string, bool, error) {
	el, err := s.element(ref)
	if err != nil {
		return "", false, err
	}
	v, err := el.Context(ctx).Attribute(name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

// Query issues a ref for every element matching selector. Refs stay valid
// until passed to Release or the session is closed.
func (s *Session) Query(ctx context.Context, selector string) ([]visibility.Element, error) {
	els, err := s.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	refs := make([]visibility.Element, len(els))
	for i, el := range els {
		refs[i] = visibility.Element{Ref: s.refs.issue(el)}
	}
	return refs, nil
}

// Release drops refs issued by Query and frees their objects in the
// browser. Failures are logged; the refs are gone either way.
func (s *Session) Release(_ context.Context, refs []visibility.Element) {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Ref
	}
	if err := s.refs.release(names); err != nil {
		s.logger.Debug("release elements", "count", len(names), "error", err)
	}
}

func (s *Session) element(ref visibility.Element) (*rod.Element, error) {
	obj, ok := s.refs.get(ref.Ref)
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrElementNotFound, ref.Ref)
	}
	el, ok := obj.(*rod.Element)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an element", model.ErrElementNotFound, ref.Ref)
	}
	return el, nil
}

func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	data, err := s.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

// Close closes the tab and, for browsers launched by this session, the
// browser.
func (s *Session) Close() error {
	s.refs.reset()
	if err := s.page.Close(); err != nil {
		s.logger.Debug("close tab", "error", err)
	}
	return s.browser.close()
}
