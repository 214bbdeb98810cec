package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mj1618/visible/internal/platform"
)

// OpenFunc opens a session on a target.
type OpenFunc func(ctx context.Context, target string) (platform.Session, error)

// poolEntry holds an open session with its last use.
type poolEntry struct {
	session  platform.Session
	lastUsed time.Time
}

// SessionPool keeps sessions open between tool calls so that repeated
// questions about one page do not relaunch the browser. It holds pages,
// never classification results.
type SessionPool struct {
	mu      sync.Mutex
	entries map[string]*poolEntry
	ttl     time.Duration
	open    OpenFunc
	logger  *log.Logger
	now     func() time.Time
}

// NewSessionPool creates a pool. A ttl of 0 disables reuse: every acquire
// opens a fresh session and release closes it.
func NewSessionPool(ttl time.Duration, open OpenFunc, logger *log.Logger) *SessionPool {
	if logger == nil {
		logger = log.Default()
	}
	return &SessionPool{
		entries: make(map[string]*poolEntry),
		ttl:     ttl,
		open:    open,
		logger:  logger,
		now:     time.Now,
	}
}

// Acquire returns a session for target and a release func the caller must
// invoke when done with it. The caller must hold the server mutex.
func (p *SessionPool) Acquire(ctx context.Context, target string) (platform.Session, func(), error) {
	if p.ttl == 0 {
		s, err := p.open(ctx, target)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { p.closeSession(target, s) }, nil
	}

	p.evictExpired()

	p.mu.Lock()
	if entry, ok := p.entries[target]; ok {
		p.mu.Unlock()
		return entry.session, func() { p.touch(target) }, nil
	}
	p.mu.Unlock()

	s, err := p.open(ctx, target)
	if err != nil {
		return nil, nil, err
	}

	p.mu.Lock()
	p.entries[target] = &poolEntry{session: s, lastUsed: p.now()}
	p.mu.Unlock()

	return s, func() { p.touch(target) }, nil
}

func (p *SessionPool) touch(target string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if entry, ok := p.entries[target]; ok {
		entry.lastUsed = p.now()
	}
}

// Invalidate closes and forgets the session for target.
func (p *SessionPool) Invalidate(target string) {
	p.mu.Lock()
	entry, ok := p.entries[target]
	delete(p.entries, target)
	p.mu.Unlock()
	if ok {
		p.closeSession(target, entry.session)
	}
}

// CloseAll closes every pooled session.
func (p *SessionPool) CloseAll() {
	p.mu.Lock()
	entries := p.entries
	p.entries = make(map[string]*poolEntry)
	p.mu.Unlock()
	for target, entry := range entries {
		p.closeSession(target, entry.session)
	}
}

// Len returns the number of pooled sessions.
func (p *SessionPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

func (p *SessionPool) evictExpired() {
	p.mu.Lock()
	var expired []string
	for target, entry := range p.entries {
		if p.now().Sub(entry.lastUsed) >= p.ttl {
			expired = append(expired, target)
		}
	}
	p.mu.Unlock()
	for _, target := range expired {
		p.Invalidate(target)
	}
}

func (p *SessionPool) closeSession(target string, s platform.Session) {
	if err := s.Close(); err != nil {
		p.logger.Warn("close session", "target", target, "error", err)
	}
}
