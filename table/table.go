package table

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/wippyai/union"
	"github.com/wippyai/union/typeid"
)

// Table maps handles to unions. It is safe for concurrent use.
type Table struct {
	registry  *union.Registry
	logger    *zap.Logger
	entries   []entry
	freeList  []Handle
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	live      int
	closed    bool
}

type entry struct {
	value union.Union
	valid bool
}

// Option configures a Table.
type Option func(*Table)

// WithRegistry sets the registry used by GetAs. Defaults to union.Default().
func WithRegistry(r *union.Registry) Option {
	return func(t *Table) {
		t.registry = r
	}
}

// WithLogger sets the logger for lifecycle debug output.
func WithLogger(l *zap.Logger) Option {
	return func(t *Table) {
		t.logger = l
	}
}

// New creates an empty table.
func New(opts ...Option) *Table {
	t := &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.registry == nil {
		t.registry = union.Default()
	}
	if t.logger == nil {
		t.logger = union.Logger()
	}
	return t
}

// Registry returns the registry used for typed reads.
func (t *Table) Registry() *union.Registry {
	return t.registry
}

// Insert stores u and returns its handle. It returns 0 once the table is
// closed or when u is not valid.
func (t *Table) Insert(u union.Union) Handle {
	if !u.IsValid() {
		return 0
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}

	e := entry{value: u, valid: true}
	var h Handle
	if n := len(t.freeList); n > 0 {
		h = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[h-1] = e
	} else {
		t.entries = append(t.entries, e)
		h = Handle(len(t.entries))
	}
	t.live++
	t.mu.Unlock()

	t.logger.Debug("union stored",
		zap.Uint32("handle", uint32(h)),
		zap.Stringer("type_id", u.ID()),
	)
	t.notify(Event{Type: EventCreated, Handle: h, Value: u})
	return h
}

// Get returns the union stored under h.
func (t *Table) Get(h Handle) (union.Union, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lookup(h)
}

// GetAs returns the T stored under h. It reports false for an unknown handle
// or when the union holds another type.
func GetAs[T any](t *Table, h Handle) (T, bool) {
	u, ok := t.Get(h)
	if !ok {
		var zero T
		return zero, false
	}
	return union.ConverterOf[T](t.registry).TryGetValue(u)
}

// Remove drops the union stored under h and returns it.
func (t *Table) Remove(h Handle) (union.Union, bool) {
	t.mu.Lock()
	u, ok := t.lookup(h)
	if !ok {
		t.mu.Unlock()
		return union.Union{}, false
	}
	t.entries[h-1] = entry{}
	t.freeList = append(t.freeList, h)
	t.live--
	t.mu.Unlock()

	drop(u)
	t.logger.Debug("union dropped",
		zap.Uint32("handle", uint32(h)),
		zap.Stringer("type_id", u.ID()),
	)
	t.notify(Event{Type: EventDropped, Handle: h, Value: u})
	return u, true
}

// Len returns the number of stored unions.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

// Each calls fn for every stored union in handle order until fn returns false.
// fn must not modify the table.
func (t *Table) Each(fn func(Handle, union.Union) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e.valid {
			if !fn(Handle(i+1), e.value) {
				return
			}
		}
	}
}

// Handles returns the live handles in ascending order.
func (t *Table) Handles() []Handle {
	var handles []Handle
	t.Each(func(h Handle, _ union.Union) bool {
		handles = append(handles, h)
		return true
	})
	return handles
}

// Types returns how many unions of each type the table holds.
func (t *Table) Types() map[typeid.ID]int {
	counts := make(map[typeid.ID]int)
	t.Each(func(_ Handle, u union.Union) bool {
		counts[u.ID()]++
		return true
	})
	return counts
}

// TypeIDs returns the distinct stored type identifiers in ascending order.
func (t *Table) TypeIDs() []typeid.ID {
	ids := maps.Keys(t.Types())
	slices.Sort(ids)
	return ids
}

// Clear drops every stored union.
func (t *Table) Clear() {
	// Collect handles first to avoid holding the lock during Remove
	for _, h := range t.Handles() {
		t.Remove(h)
	}
}

// Close drops every stored union and stops accepting inserts.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	t.Clear()

	t.mu.Lock()
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer. Func observers cannot be removed.
func (t *Table) Unsubscribe(o Observer) {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return
	}
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// lookup requires t.mu to be held.
func (t *Table) lookup(h Handle) (union.Union, bool) {
	if h == 0 || int(h) > len(t.entries) {
		return union.Union{}, false
	}
	e := t.entries[h-1]
	if !e.valid {
		return union.Union{}, false
	}
	return e.value, true
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnTableEvent(e)
	}
}

func drop(u union.Union) {
	p := u.Payload()
	if d, ok := p.Ref().(Dropper); ok {
		d.Drop()
	}
}
