package union

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/union/typeid"
)

// undefinedConverter stands in for pointer-free types too large for the
// registry's payload capacity. Every operation fails the same way each time.
type undefinedConverter[T any] struct {
	log         *zap.Logger
	typ         reflect.Type
	size        int
	capacity    int
	id          typeid.ID
	diagnostics bool
}

func newUndefinedConverter[T any](log *zap.Logger, size, capacity int, diagnostics bool) *undefinedConverter[T] {
	return &undefinedConverter[T]{
		log:         log,
		typ:         reflect.TypeFor[T](),
		size:        size,
		capacity:    capacity,
		id:          typeid.Of[T](),
		diagnostics: diagnostics,
	}
}

func (c *undefinedConverter[T]) ID() typeid.ID       { return c.id }
func (c *undefinedConverter[T]) Type() reflect.Type  { return c.typ }
func (c *undefinedConverter[T]) Kind() ConverterKind { return KindUndefined }

// ToUnion returns the zero Union; the value is dropped.
func (c *undefinedConverter[T]) ToUnion(T) Union {
	c.trace("ToUnion")
	return Union{}
}

func (c *undefinedConverter[T]) ToTyped(T) Typed[T] {
	c.trace("ToTyped")
	return Typed[T]{c: c}
}

func (c *undefinedConverter[T]) TryGetValue(Union) (T, bool) {
	c.trace("TryGetValue")
	var zero T
	return zero, false
}

func (c *undefinedConverter[T]) GetValue(Union) T {
	c.trace("GetValue")
	var zero T
	return zero
}

func (c *undefinedConverter[T]) TrySetValueTo(Union, *T) bool {
	c.trace("TrySetValueTo")
	return false
}

func (c *undefinedConverter[T]) ToString(Union) string {
	c.trace("ToString")
	return "<undefined " + c.typ.String() + ">"
}

func (c *undefinedConverter[T]) Box(Union) (any, bool) {
	c.trace("Box")
	return nil, false
}

func (c *undefinedConverter[T]) trace(op string) {
	if !c.diagnostics {
		return
	}
	c.log.Debug("undefined converter used",
		zap.String("op", op),
		zap.String("type", c.typ.String()),
		zap.Stringer("type_id", c.id),
		zap.Int("size", c.size),
		zap.Int("capacity", c.capacity),
	)
}
