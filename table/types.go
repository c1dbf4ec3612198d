package table

import "github.com/wippyai/union"

// Handle is an opaque reference to a union in a Table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a table lifecycle event.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event describes an insert or removal.
type Event struct {
	Value  union.Union
	Handle Handle
	Type   EventType
}

// Observer receives table lifecycle events.
type Observer interface {
	OnTableEvent(Event)
}

// ObserverFunc is an adapter to use ordinary functions as Observers.
type ObserverFunc func(Event)

// OnTableEvent implements Observer.
func (f ObserverFunc) OnTableEvent(e Event) {
	f(e)
}

// Dropper is optionally implemented by values boxed in a union's reference
// slot that need cleanup when their handle is removed.
type Dropper interface {
	Drop()
}
