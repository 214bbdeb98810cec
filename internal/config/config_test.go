package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
}

func TestDecode_OverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
browser:
  remote_url: ws://127.0.0.1:9222/devtools/browser/abc
  viewport: 375x667
  navigate_timeout: 10s
serve:
  session_ttl: 2m
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Browser.RemoteURL != "ws://127.0.0.1:9222/devtools/browser/abc" {
		t.Errorf("remote_url = %q", cfg.Browser.RemoteURL)
	}
	if cfg.Browser.NavigateTimeout != 10*time.Second {
		t.Errorf("navigate_timeout = %v", cfg.Browser.NavigateTimeout)
	}
	if cfg.Serve.SessionTTL != 2*time.Minute {
		t.Errorf("session_ttl = %v", cfg.Serve.SessionTTL)
	}
	// Untouched keys keep their defaults.
	if !cfg.Browser.Headless {
		t.Error("headless should default to true")
	}
	if cfg.Serve.Port != DefaultPort || cfg.Verify.Concurrency != DefaultConcurrency {
		t.Errorf("defaults lost: %+v", cfg)
	}

	opts := cfg.OpenOptions()
	if opts.Viewport != [2]int{375, 667} {
		t.Errorf("viewport = %v", opts.Viewport)
	}
}

func TestDecode_Empty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Browser.Viewport != DefaultViewport {
		t.Errorf("viewport = %q", cfg.Browser.Viewport)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "bogus: 1\n",
		"bad viewport":   "browser:\n  viewport: huge\n",
		"no concurrency": "verify:\n  concurrency: 0\n",
		"negative ttl":   "serve:\n  session_ttl: -1s\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visible.yaml")
	if err := os.WriteFile(path, []byte("format: json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, used, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if used != path || cfg.Format != "json" {
		t.Errorf("got (%q, %q)", used, cfg.Format)
	}

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing explicit config should fail")
	}
}
