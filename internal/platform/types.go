package platform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Backend names.
const (
	BackendChrome   = "chrome"
	BackendSnapshot = "snapshot"
)

// OpenOptions configures how a target is opened.
type OpenOptions struct {
	Backend         string        // Force a backend ("" = pick from target)
	RemoteURL       string        // DevTools websocket of a running browser ("" = launch one)
	Bin             string        // Browser binary ("" = launcher default)
	Headless        bool          // Launch without a window
	Stealth         bool          // Open pages with go-rod/stealth
	Viewport        [2]int        // Window size; zero keeps the browser default
	NavigateTimeout time.Duration // Navigation deadline (0 = 30s)
	Logger          *log.Logger   // nil = log.Default()
}

// ParseBBox parses a "x,y,w,h" string into [x, y, w, h].
func ParseBBox(s string) (*[4]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid bbox %q: expected x,y,w,h", s)
	}
	var b [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid bbox %q: %w", s, err)
		}
		b[i] = v
	}
	return &b, nil
}

// ParseViewport parses a "WIDTHxHEIGHT" string.
func ParseViewport(s string) ([2]int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return [2]int{}, fmt.Errorf("invalid viewport %q: expected WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return [2]int{}, fmt.Errorf("invalid viewport %q: %w", s, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return [2]int{}, fmt.Errorf("invalid viewport %q: %w", s, err)
	}
	if width < 0 || height < 0 {
		return [2]int{}, fmt.Errorf("invalid viewport %q: negative size", s)
	}
	return [2]int{width, height}, nil
}
