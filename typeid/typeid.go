package typeid

import (
	"reflect"
	"strconv"
	"sync"
)

// ID identifies a Go type for the lifetime of the process.
type ID uint32

// Invalid is never assigned to a type.
const Invalid ID = 0

var (
	ids sync.Map // reflect.Type -> ID

	mu    sync.RWMutex
	types []reflect.Type // types[id-1]
)

// Of returns the identifier of T, assigning one on first use.
func Of[T any]() ID {
	return OfType(reflect.TypeFor[T]())
}

// OfType returns the identifier of t, assigning one on first use.
// A nil type yields Invalid.
func OfType(t reflect.Type) ID {
	if t == nil {
		return Invalid
	}
	if id, ok := ids.Load(t); ok {
		return id.(ID)
	}
	return assign(t)
}

func assign(t reflect.Type) ID {
	mu.Lock()
	defer mu.Unlock()

	// Another goroutine may have won while we waited for the lock.
	if id, ok := ids.Load(t); ok {
		return id.(ID)
	}

	types = append(types, t)
	id := ID(len(types))
	ids.Store(t, id)
	return id
}

// TypeOf returns the type an identifier was assigned to.
func TypeOf(id ID) (reflect.Type, bool) {
	if id == Invalid {
		return nil, false
	}

	mu.RLock()
	defer mu.RUnlock()

	if int(id) > len(types) {
		return nil, false
	}
	return types[id-1], true
}

// Name returns the type name for an identifier.
func Name(id ID) string {
	if id == Invalid {
		return "<invalid>"
	}
	t, ok := TypeOf(id)
	if !ok {
		return "<unknown>"
	}
	return t.String()
}

// Count returns the number of identifiers assigned so far.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(types)
}

// NameOf returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func NameOf(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// IsValid reports whether id was produced by this package.
func (id ID) IsValid() bool {
	return id != Invalid
}

func (id ID) String() string {
	if id == Invalid {
		return "typeid(invalid)"
	}
	return "typeid(" + strconv.FormatUint(uint64(id), 10) + ")"
}
