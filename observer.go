package union

import (
	"reflect"

	"github.com/wippyai/union/typeid"
)

// EventType identifies a registry event.
type EventType uint8

const (
	// EventRegistered follows a successful explicit registration.
	EventRegistered EventType = iota
	// EventResolved follows publication of a default converter on first use.
	EventResolved
	// EventRejected follows a refused registration: the type already had a
	// converter, or the requested converter could not be built (Err set).
	EventRejected
)

var eventTypeNames = [...]string{
	EventRegistered: "registered",
	EventResolved:   "resolved",
	EventRejected:   "rejected",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event describes a change, or refused change, to a registry.
// For EventRejected without Err, Kind is that of the converter kept.
type Event struct {
	Err    error
	GoType reflect.Type
	ID     typeid.ID
	Kind   ConverterKind
	Type   EventType
}

// Observer receives registry events. Events are delivered synchronously on the
// goroutine that caused them; observers must not call Subscribe or Unsubscribe
// from OnRegistryEvent.
type Observer interface {
	OnRegistryEvent(Event)
}

// ObserverFunc is an adapter to use ordinary functions as Observers.
// Func observers cannot be compared, so they cannot be unsubscribed.
type ObserverFunc func(Event)

// OnRegistryEvent implements Observer.
func (f ObserverFunc) OnRegistryEvent(e Event) {
	f(e)
}

// Subscribe adds an observer for registry events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return
	}
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnRegistryEvent(e)
	}
}
