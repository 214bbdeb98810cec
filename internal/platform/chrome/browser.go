// Package chrome classifies elements on live pages in a Chromium browser
// driven over the DevTools protocol with go-rod.
package chrome

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/mj1618/visible/internal/platform"
)

// DefaultNavigateTimeout bounds navigation plus load when the caller sets
// no timeout.
const DefaultNavigateTimeout = 30 * time.Second

func init() {
	platform.Register(platform.BackendChrome, platform.BackendFunc(Open))
}

// browser is a connected browser plus whatever must be torn down with it.
type browser struct {
	rod  *rod.Browser
	lnch *launcher.Launcher // nil when connected to a remote browser
}

// detach keeps ctx's values but not its cancellation: a browser lives as
// long as its session, not as long as the request that opened it.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func connect(ctx context.Context, opts platform.OpenOptions, logger *log.Logger) (*browser, error) {
	ctx = detach(ctx)
	wsURL := opts.RemoteURL
	var l *launcher.Launcher
	if wsURL == "" {
		l = launcher.New().Headless(opts.Headless)
		if opts.Bin != "" {
			l = l.Bin(opts.Bin)
		}
		l = l.Set("disable-blink-features", "AutomationControlled")
		u, err := l.Context(ctx).Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		wsURL = u
		logger.Debug("launched local browser", "url", wsURL, "headless", opts.Headless)
	} else {
		logger.Debug("connecting to remote browser", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL).Context(ctx)
	if err := b.Connect(); err != nil {
		if l != nil {
			l.Kill()
		}
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	return &browser{rod: b, lnch: l}, nil
}

func (b *browser) newPage(opts platform.OpenOptions) (*rod.Page, error) {
	if opts.Stealth {
		return stealth.Page(b.rod)
	}
	return b.rod.Page(proto.TargetCreateTarget{URL: ""})
}

func (b *browser) close() error {
	if b.lnch == nil {
		// Remote browsers outlive us.
		return nil
	}
	err := b.rod.Close()
	b.lnch.Kill()
	b.lnch.Cleanup()
	return err
}
