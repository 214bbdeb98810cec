package chrome

import (
	"errors"
	"strconv"
	"sync"
)

// remoteObject is a handle that pins an object in the browser until it is
// released.
type remoteObject interface {
	Release() error
}

// refTable maps the refs handed to callers onto browser handles. Entries
// live until released, so long-lived sessions must release what they query.
type refTable struct {
	mu     sync.Mutex
	objs   map[string]remoteObject
	nextID int
}

func newRefTable() *refTable {
	return &refTable{objs: make(map[string]remoteObject)}
}

// issue stores obj under a fresh ref ("e1", "e2", ...).
func (t *refTable) issue(obj remoteObject) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	ref := "e" + strconv.Itoa(t.nextID)
	t.objs[ref] = obj
	return ref
}

func (t *refTable) get(ref string) (remoteObject, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	obj, ok := t.objs[ref]
	return obj, ok
}

// release forgets refs and releases their browser handles. Unknown refs
// are skipped. Entries are dropped even when the browser call fails.
func (t *refTable) release(refs []string) error {
	t.mu.Lock()
	objs := make([]remoteObject, 0, len(refs))
	for _, ref := range refs {
		if obj, ok := t.objs[ref]; ok {
			objs = append(objs, obj)
			delete(t.objs, ref)
		}
	}
	t.mu.Unlock()

	var errs []error
	for _, obj := range objs {
		if err := obj.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// reset forgets every ref without touching the browser, for use when the
// page itself is going away.
func (t *refTable) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.objs = make(map[string]remoteObject)
}

func (t *refTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.objs)
}
