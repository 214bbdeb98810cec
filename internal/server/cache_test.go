package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mj1618/visible/internal/model"
	"github.com/mj1618/visible/internal/platform"
	"github.com/mj1618/visible/internal/platform/snapshot"
)

var errClose = errors.New("close failed")

// countingSession records Close calls.
type countingSession struct {
	*snapshot.Session
	closed *int
}

func (s countingSession) Close() error {
	*s.closed++
	return errClose
}

func newCountingPool(ttl time.Duration) (*SessionPool, *int, *int) {
	opens, closes := 0, 0
	pool := NewSessionPool(ttl, func(context.Context, string) (platform.Session, error) {
		opens++
		return countingSession{Session: snapshot.New(&model.Page{}), closed: &closes}, nil
	}, nil)
	return pool, &opens, &closes
}

func TestSessionPool_NoTTL(t *testing.T) {
	pool, opens, closes := newCountingPool(0)
	for i := 0; i < 2; i++ {
		_, release, err := pool.Acquire(context.Background(), "a")
		if err != nil {
			t.Fatal(err)
		}
		release()
	}
	if *opens != 2 || *closes != 2 {
		t.Errorf("opens=%d closes=%d, want 2 and 2", *opens, *closes)
	}
	if pool.Len() != 0 {
		t.Error("nothing should be pooled with a zero TTL")
	}
}

func TestSessionPool_ExpiresIdleSessions(t *testing.T) {
	pool, opens, closes := newCountingPool(time.Minute)
	now := time.Unix(1000, 0)
	pool.now = func() time.Time { return now }

	_, release, err := pool.Acquire(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	release()

	now = now.Add(30 * time.Second)
	_, release, _ = pool.Acquire(context.Background(), "a")
	release()
	if *opens != 1 {
		t.Errorf("session within TTL should be reused, opens=%d", *opens)
	}

	now = now.Add(2 * time.Minute)
	_, release, _ = pool.Acquire(context.Background(), "a")
	release()
	if *opens != 2 || *closes != 1 {
		t.Errorf("expired session should be replaced: opens=%d closes=%d", *opens, *closes)
	}
}

func TestSessionPool_CloseAll(t *testing.T) {
	pool, _, closes := newCountingPool(time.Hour)
	for _, target := range []string{"a", "b", "c"} {
		_, release, err := pool.Acquire(context.Background(), target)
		if err != nil {
			t.Fatal(err)
		}
		release()
	}
	pool.CloseAll()
	if *closes != 3 || pool.Len() != 0 {
		t.Errorf("closes=%d len=%d", *closes, pool.Len())
	}
}

func TestSessionPool_OpenError(t *testing.T) {
	boom := errors.New("boom")
	pool := NewSessionPool(time.Hour, func(context.Context, string) (platform.Session, error) {
		return nil, boom
	}, nil)
	if _, _, err := pool.Acquire(context.Background(), "a"); !errors.Is(err, boom) {
		t.Errorf("expected open error, got %v", err)
	}
	if pool.Len() != 0 {
		t.Error("failed open should not be pooled")
	}
}
