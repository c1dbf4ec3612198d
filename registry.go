package union

import (
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/wippyai/union/errors"
	"github.com/wippyai/union/payload"
	"github.com/wippyai/union/payload/layout"
	"github.com/wippyai/union/typeid"
)

// Registry maps type identifiers to converters.
//
// Entries are added, never removed. Once a converter is published for a type
// it is the only converter that registry will ever return for it, no matter
// how many goroutines race to register or resolve that type.
type Registry struct {
	logger      *zap.Logger
	converters  sync.Map // typeid.ID -> Erased
	observers   []Observer
	count       atomic.Int64
	obsMu       sync.RWMutex
	capacity    int
	diagnostics bool
	builtins    bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithCapacity sets the inline payload capacity in bytes. It must be a multiple
// of payload.CapacityStep no larger than payload.MaxCapacity.
func WithCapacity(capacity int) Option {
	return func(r *Registry) {
		r.capacity = capacity
	}
}

// WithLogger sets the logger used for diagnostics. By default the registry
// logs through the package Logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithDiagnostics turns undefined-converter diagnostics on or off. They are on
// by default unless built with the release tag.
func WithDiagnostics(enabled bool) Option {
	return func(r *Registry) {
		r.diagnostics = enabled
	}
}

// WithoutBuiltins skips pre-registration of the predeclared scalar and string
// converters. Those types then go through default resolution on first use.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		r.builtins = false
	}
}

// NewRegistry creates an isolated registry.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		capacity:    payload.DefaultCapacity,
		diagnostics: diagnosticsDefault,
		builtins:    true,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := payload.ValidateCapacity(r.capacity); err != nil {
		return nil, err
	}

	if r.builtins {
		registerBuiltins(r)
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on invalid options.
func MustNewRegistry(opts ...Option) *Registry {
	r, err := NewRegistry(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry, created on first use with the
// default capacity.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = MustNewRegistry()
	})
	return defaultRegistry
}

// Capacity returns the inline payload capacity in bytes.
func (r *Registry) Capacity() int {
	return r.capacity
}

// Len returns the number of published converters.
func (r *Registry) Len() int {
	return int(r.count.Load())
}

// Lookup returns the converter published for id, if any. It never resolves.
func (r *Registry) Lookup(id typeid.ID) (Erased, bool) {
	c, ok := r.converters.Load(id)
	if !ok {
		return nil, false
	}
	return c.(Erased), true
}

// Format renders u with the converter published for its type.
func (r *Registry) Format(u Union) string {
	if !u.IsValid() {
		return "<invalid>"
	}
	c, ok := r.Lookup(u.id)
	if !ok {
		return "<" + typeid.Name(u.id) + ">"
	}
	return c.ToString(u)
}

// Box returns the value held by u as an interface value.
func (r *Registry) Box(u Union) (any, bool) {
	if !u.IsValid() {
		return nil, false
	}
	c, ok := r.Lookup(u.id)
	if !ok {
		return nil, false
	}
	return c.Box(u)
}

// Entry describes one published converter.
type Entry struct {
	Type reflect.Type
	ID   typeid.ID
	Kind ConverterKind
}

// Entries returns a snapshot of published converters ordered by type ID.
func (r *Registry) Entries() []Entry {
	snapshot := make(map[typeid.ID]Erased)
	r.converters.Range(func(k, v any) bool {
		snapshot[k.(typeid.ID)] = v.(Erased)
		return true
	})

	ids := maps.Keys(snapshot)
	slices.Sort(ids)

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		c := snapshot[id]
		entries = append(entries, Entry{ID: id, Type: c.Type(), Kind: c.Kind()})
	}
	return entries
}

// publish stores c unless a converter for its type already exists.
func (r *Registry) publish(c Erased) (Erased, bool) {
	actual, loaded := r.converters.LoadOrStore(c.ID(), c)
	if loaded {
		return actual.(Erased), false
	}
	r.count.Add(1)
	return c, true
}

func (r *Registry) log() *zap.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// Register publishes c as the converter for T. It returns false when T
// already has a converter, registered or resolved; the existing one stays.
// A nil converter, one for a different type, or an inline converter for a
// type larger than the registry capacity panics.
func Register[T any](r *Registry, c Converter[T]) bool {
	id := typeid.Of[T]()
	if c == nil {
		panic(errors.NilPointer(errors.PhaseRegister, "union.Converter["+typeid.Name(id)+"]"))
	}
	if c.ID() != id {
		panic(errors.TypeMismatch(errors.PhaseRegister, typeid.Name(c.ID()), typeid.Name(id)))
	}
	if size := int(c.Type().Size()); c.Kind() == KindInline && size > r.capacity {
		err := errors.CapacityExceeded(errors.PhaseRegister, c.Type().String(), size, r.capacity)
		r.notify(Event{Type: EventRejected, ID: id, GoType: c.Type(), Kind: KindInline, Err: err})
		panic(err)
	}

	actual, ok := r.publish(c)
	if !ok {
		r.notify(Event{
			Type:   EventRejected,
			ID:     id,
			GoType: c.Type(),
			Kind:   actual.Kind(),
		})
		return false
	}

	r.notify(Event{Type: EventRegistered, ID: id, GoType: c.Type(), Kind: c.Kind()})
	return true
}

// RegisterInline publishes an inline converter for T. A T that holds pointers
// or exceeds the registry capacity is a configuration error reported the same
// way on every call.
func RegisterInline[T any](r *Registry) (bool, error) {
	c, err := NewInlineConverter[T](r.capacity)
	if err != nil {
		t := reflect.TypeFor[T]()
		r.notify(Event{Type: EventRejected, ID: typeid.Of[T](), GoType: t, Kind: KindInline, Err: err})
		return false, errors.Registration(t.String(), err)
	}
	return Register(r, c), nil
}

// MustRegisterInline is like RegisterInline but panics on error. Use it during
// initialisation so capacity mistakes stop the program at startup.
func MustRegisterInline[T any](r *Registry) bool {
	ok, err := RegisterInline[T](r)
	if err != nil {
		panic(err)
	}
	return ok
}

// RegisterObject publishes an object converter for T, boxing values of T in
// the reference slot even when they would fit inline.
func RegisterObject[T any](r *Registry) bool {
	return Register(r, NewObjectConverter[T]())
}

// ConverterOf returns the converter for T, resolving and publishing a default
// on first use.
func ConverterOf[T any](r *Registry) Converter[T] {
	id := typeid.Of[T]()
	if c, ok := r.converters.Load(id); ok {
		return c.(Converter[T])
	}
	return resolve[T](r)
}

func resolve[T any](r *Registry) Converter[T] {
	c := defaultConverter[T](r)

	actual, ok := r.publish(c)
	if !ok {
		return actual.(Converter[T])
	}

	if c.Kind() == KindUndefined && r.diagnostics {
		r.log().Warn("no converter fits type; values will not be stored",
			zap.String("type", c.Type().String()),
			zap.Stringer("type_id", c.ID()),
			zap.Int("size", int(c.Type().Size())),
			zap.Int("capacity", r.capacity),
		)
	}
	r.notify(Event{Type: EventResolved, ID: c.ID(), GoType: c.Type(), Kind: c.Kind()})
	return c
}

var stringType = reflect.TypeFor[string]()

func defaultConverter[T any](r *Registry) Converter[T] {
	t := reflect.TypeFor[T]()
	if t == stringType {
		return any(newStringConverter()).(Converter[T])
	}

	info := layout.Of(t)
	switch {
	case !info.PointerFree:
		return NewObjectConverter[T]()
	case info.Fits(r.capacity):
		return newInlineConverter[T](nil)
	default:
		return newUndefinedConverter[T](r.log(), int(info.Size), r.capacity, r.diagnostics)
	}
}
