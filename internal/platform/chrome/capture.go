package chrome

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mj1618/visible/internal/model"
)

// MaxCaptureElements caps how many elements Snapshot serialises.
const MaxCaptureElements = 5000

// captureJS walks the body in document order, recording tag, literal
// attributes and the client rect of each element. The result uses the
// model.Page JSON layout.
const captureJS = `(max) => {
	let count = 0;
	const visit = (el) => {
		if (count >= max) return null;
		count++;
		const r = el.getBoundingClientRect();
		const attrs = {};
		for (const a of el.attributes) attrs[a.name] = a.value;
		const c = [];
		for (const child of el.children) {
			const n = visit(child);
			if (n) c.push(n);
		}
		return {tag: el.tagName.toLowerCase(), attrs: attrs, b: [r.left, r.top, r.width, r.height], c: c};
	};
	const de = document.documentElement;
	const root = document.body || de;
	return JSON.stringify({
		url: location.href,
		title: document.title,
		viewport: [window.innerWidth, window.innerHeight],
		scroll: [window.pageXOffset, window.pageYOffset],
		scroll_size: [de.scrollWidth, de.scrollHeight],
		elements: root ? [visit(root)] : [],
	});
}`

// Snapshot serialises the live page into a model.Page.
func (s *Session) Snapshot(ctx context.Context) (*model.Page, error) {
	res, err := s.page.Context(ctx).Eval(captureJS, MaxCaptureElements)
	if err != nil {
		return nil, fmt.Errorf("capture page: %w", err)
	}
	p, err := decodeCapture(res.Value.Str(), time.Now())
	if err != nil {
		return nil, err
	}
	s.logger.Debug("captured page", "url", p.URL, "elements", len(model.FlattenElements(p.Elements)))
	return p, nil
}

func decodeCapture(raw string, at time.Time) (*model.Page, error) {
	var p model.Page
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}
	p.TS = at.Unix()
	p.Number()
	return &p, nil
}
