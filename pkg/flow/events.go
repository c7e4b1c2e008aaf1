package flow

import "slices"

// Reason tags the mutation kind carried by a change event.
type Reason string

// The closed set of change reasons.
const (
	ReasonNodeAdd    Reason = "node:add"
	ReasonNodeUpdate Reason = "node:update"
	ReasonNodeRemove Reason = "node:remove"

	ReasonConnectionAdd    Reason = "connection:add"
	ReasonConnectionUpdate Reason = "connection:update"
	ReasonConnectionRemove Reason = "connection:remove"

	ReasonGroupAdd    Reason = "group:add"
	ReasonGroupUpdate Reason = "group:update"
	ReasonGroupRemove Reason = "group:remove"

	ReasonTemplateAdd    Reason = "template:add"
	ReasonTemplateUpdate Reason = "template:update"
	ReasonTemplateRemove Reason = "template:remove"

	ReasonImport   Reason = "graph:import"
	ReasonMetadata Reason = "graph:metadata"
)

// Event describes one successful mutation. State is the full deep-cloned
// snapshot taken after the mutation; Payload carries the specific entity (or
// partial metadata) that changed, when one applies.
type Event struct {
	Reason  Reason
	State   State
	Payload any
}

// Listener receives change events. Listeners run synchronously on the
// mutator's stack; a panic inside a listener propagates to the mutator's
// caller.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers a listener on the live change feed and returns its
// de-registration function. Listeners are notified in subscription order.
// No events are buffered or replayed to late subscribers.
func (g *Graph) Subscribe(fn Listener) (unsubscribe func()) {
	g.nextSubID++
	id := g.nextSubID
	g.subs = append(g.subs, subscription{id: id, fn: fn})
	return func() {
		g.subs = slices.DeleteFunc(g.subs, func(s subscription) bool { return s.id == id })
	}
}

// emit notifies every subscriber with a fresh snapshot. The subscriber list
// is copied first so a listener may unsubscribe (itself or others) mid-emit.
func (g *Graph) emit(reason Reason, payload any) {
	if len(g.subs) == 0 {
		return
	}
	ev := Event{Reason: reason, State: g.snapshot(), Payload: payload}
	for _, s := range slices.Clone(g.subs) {
		s.fn(ev)
	}
}
