package class

import "slices"

// EventChangeState is fired on an instance whenever one of its effective
// states turns on or off. The event value is a StateChange.
const EventChangeState = "changeState"

type (
	// Event is passed to listeners.
	Event struct {
		// Type is the event name, e.g. "changeEnabled".
		Type string
		// Target is the instance that fired the event.
		Target *Object
		// Value and Old hold the new and previous values.
		Value, Old any
		// Context is the value given to AddListener.
		Context any
	}

	// StateChange is the value of a changeState event.
	StateChange struct {
		Name   string
		Active bool
	}

	// Listener handles a fired event.
	Listener func(e *Event)

	// ListenerID identifies a registered listener.
	ListenerID uint64

	listenerEntry struct {
		id      ListenerID
		event   string
		handler Listener
		context any
	}
)

// AddListener registers h for the event name. Listeners run in the order
// they were added.
func (o *Object) AddListener(event string, h Listener, context any) ListenerID {
	o.nextListen++
	o.listeners = append(o.listeners, listenerEntry{
		id:      o.nextListen,
		event:   event,
		handler: h,
		context: context,
	})
	return o.nextListen
}

// RemoveListener unregisters the listener id. It reports whether the
// listener was registered.
func (o *Object) RemoveListener(id ListenerID) bool {
	i := slices.IndexFunc(o.listeners, func(l listenerEntry) bool { return l.id == id })
	if i < 0 {
		return false
	}
	o.listeners = slices.Delete(o.listeners, i, i+1)
	return true
}

// HasListener reports whether a listener is registered for event.
func (o *Object) HasListener(event string) bool {
	return slices.ContainsFunc(o.listeners, func(l listenerEntry) bool { return l.event == event })
}

// Fire delivers the event to its listeners synchronously. Listeners added
// or removed by a handler take effect on the next Fire.
func (o *Object) Fire(event string, value, old any) {
	for _, l := range slices.Clone(o.listeners) {
		if l.event != event {
			continue
		}
		l.handler(&Event{Type: event, Target: o, Value: value, Old: old, Context: l.context})
	}
}
