package platform

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupported is returned when a backend cannot perform an operation.
var ErrUnsupported = errors.New("operation not supported by this backend")

// ErrNoBackend is returned when no registered backend handles a target.
var ErrNoBackend = errors.New("no backend for target")

var (
	registryMu sync.RWMutex
	registry   = map[string]Backend{}
)

// Register makes a backend available under name. Backend packages call it
// from init(); see internal/platform/chrome and internal/platform/snapshot.
func Register(name string, b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = b
}

// Provider opens sessions on the registered backends.
type Provider struct {
	backends map[string]Backend
}

// NewProvider returns a Provider over the currently registered backends.
func NewProvider() (*Provider, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if len(registry) == 0 {
		return nil, ErrNoBackend
	}
	backends := make(map[string]Backend, len(registry))
	for name, b := range registry {
		backends[name] = b
	}
	return &Provider{backends: backends}, nil
}

// Backends lists the available backend names.
func (p *Provider) Backends() []string {
	names := make([]string, 0, len(p.backends))
	for name := range p.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens target on opts.Backend, or on the backend implied by the
// target when none is forced.
func (p *Provider) Open(ctx context.Context, target string, opts OpenOptions) (Session, error) {
	name := opts.Backend
	if name == "" {
		name = BackendFor(target)
	}
	b, ok := p.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (backend %q; available: %s)", ErrNoBackend, target, name, strings.Join(p.Backends(), ", "))
	}
	s, err := b.Open(ctx, target, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", target, err)
	}
	return s, nil
}

// BackendFor picks a backend name from the shape of target: URLs go to the
// browser, everything else is read as a snapshot file.
func BackendFor(target string) string {
	lower := strings.ToLower(target)
	for _, prefix := range []string{"http://", "https://", "file://", "about:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return BackendChrome
		}
	}
	return BackendSnapshot
}
