package chrome

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mj1618/visible/internal/platform"
	"github.com/mj1618/visible/internal/visibility"
)

func TestDecodeCapture(t *testing.T) {
	raw := `{"url":"https://example.com/","title":"Example",
		"viewport":[1280,800],"scroll":[0,40.5],"scroll_size":[1280,2400],
		"elements":[{"tag":"body","attrs":{},"b":[0,-40.5,1280,2400],"c":[
			{"tag":"div","attrs":{"display":"none","id":"x"},"b":[8,8,100,20],"c":[]}
		]}]}`
	at := time.Unix(1760000000, 0)
	p, err := decodeCapture(raw, at)
	if err != nil {
		t.Fatal(err)
	}
	if p.TS != at.Unix() {
		t.Errorf("ts = %d, want %d", p.TS, at.Unix())
	}
	if p.Viewport != [2]int{1280, 800} || p.Scroll != [2]float64{0, 40.5} {
		t.Errorf("window state not decoded: %+v", p)
	}
	div, ok := p.Lookup(2)
	if !ok {
		t.Fatal("expected div to be numbered 2")
	}
	if div.Attrs["display"] != "none" || div.Rect != [4]float64{8, 8, 100, 20} {
		t.Errorf("div not decoded: %+v", div)
	}

	vis, err := visibility.IsVisible(context.Background(), p, visibility.Element{Ref: "2"})
	if err != nil {
		t.Fatal(err)
	}
	if vis {
		t.Error("captured display=none element should not be visible")
	}
}

func TestDecodeCapture_Invalid(t *testing.T) {
	if _, err := decodeCapture("not json", time.Now()); err == nil {
		t.Error("expected decode error")
	}
}

const livePage = `data:text/html,<html><body style="margin:0">` +
	`<div id="box" style="width:100px;height:50px"></div>` +
	`<div id="attr" display="none" style="width:100px;height:50px"></div>` +
	`<div id="empty" style="width:0;height:0"></div>` +
	`<div id="styled" style="display:none"></div>` +
	`</body></html>`

// TestSession_Live drives a real browser. Set VISIBLE_TEST_CHROME=1 to run it.
func TestSession_Live(t *testing.T) {
	if os.Getenv("VISIBLE_TEST_CHROME") == "" {
		t.Skip("set VISIBLE_TEST_CHROME=1 to run browser tests")
	}
	ctx := context.Background()
	s, err := Open(ctx, livePage, platform.OpenOptions{Headless: true, Viewport: [2]int{800, 600}})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	tests := []struct {
		expr string
		want bool
	}{
		{"window", true},
		{"document", true},
		{"#box", true},
		{"#attr", false},
		{"#empty", false},
		{"#styled", false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			nodes, err := platform.Resolve(ctx, s, tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			if len(nodes) != 1 {
				t.Fatalf("resolved %d nodes", len(nodes))
			}
			got, err := visibility.IsVisible(ctx, s, nodes[0])
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	p, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p.Viewport != [2]int{800, 600} {
		t.Errorf("captured viewport = %v", p.Viewport)
	}
}
