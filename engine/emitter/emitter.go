// Package emitter implements ordered, synchronous listener fan-out.
//
// An Intent is broadcast before a state change and any listener may veto it;
// an Event is broadcast after the change and cannot be vetoed. Listeners run
// in registration order. Emit iterates a snapshot of the listener list, so a
// listener may register further listeners or emit recursively; the nested
// emission keeps its own ordering and short-circuit rules.
package emitter

// IntentHandler answers an intent. Returning false vetoes the action.
type IntentHandler[S, P any] func(source S, payload P) bool

// EventHandler observes a completed action.
type EventHandler[S, P any] func(source S, payload P)

// Intent is a vetoable broadcast.
type Intent[S, P any] struct {
	handlers []IntentHandler[S, P]
}

// Register appends a handler. There is no unsubscribe.
func (e *Intent[S, P]) Register(h IntentHandler[S, P]) {
	e.handlers = append(e.handlers, h)
}

// Emit asks every handler in order and stops at the first veto.
// Returns true when no handler objected.
func (e *Intent[S, P]) Emit(source S, payload P) bool {
	for _, h := range e.handlers {
		if !h(source, payload) {
			return false
		}
	}
	return true
}

// Len returns the number of registered handlers.
func (e *Intent[S, P]) Len() int {
	return len(e.handlers)
}

// Event is a notification broadcast.
type Event[S, P any] struct {
	handlers []EventHandler[S, P]
}

// Register appends a handler. There is no unsubscribe.
func (e *Event[S, P]) Register(h EventHandler[S, P]) {
	e.handlers = append(e.handlers, h)
}

// Emit notifies every handler in order.
func (e *Event[S, P]) Emit(source S, payload P) {
	for _, h := range e.handlers {
		h(source, payload)
	}
}

// Len returns the number of registered handlers.
func (e *Event[S, P]) Len() int {
	return len(e.handlers)
}
