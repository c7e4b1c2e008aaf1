// Package flow provides the mutable, observable graph model behind a visual
// flow-diagram editor: nodes with typed ports, directed connections between
// ports, group containment, templates for node instantiation, and
// viewport/metadata state.
//
// # Overview
//
// The graph is the single source of truth consumed by rendering and editor
// layers. Those collaborators interact with it exclusively through three
// surfaces: snapshot reads ([Graph.State] and the per-entity getters), the
// change feed ([Graph.Subscribe]), and the mutation API. Nothing external
// ever holds a reference into the internal stores - every read and every
// event carries deep, independent copies.
//
// # Basic Usage
//
// Create a graph with [New], add nodes and wire them up:
//
//	g := flow.New()
//	g.AddNode(flow.Node{ID: "a", Ports: []flow.Port{{ID: "out", Direction: flow.DirectionOutput}}})
//	g.AddNode(flow.Node{ID: "b", Ports: []flow.Port{{ID: "in", Direction: flow.DirectionInput}}})
//	g.AddConnection(flow.Connection{
//	    Source: flow.PortAddress{NodeID: "a", PortID: "out"},
//	    Target: flow.PortAddress{NodeID: "b", PortID: "in"},
//	})
//
// # Invariants
//
// Every mutation is transactional: the proposed change is validated against
// the current stores, applied atomically, and then announced to subscribers.
// On a validation failure the stores are untouched, no event fires, and a
// typed error from the closed taxonomy in
// [github.com/flowcanvas/flowcanvas/pkg/errors] is returned. The enforced
// rules cover port direction and uniqueness, per-port connection capacity,
// colour compatibility, the loopback policy, duplicate detection, and
// group-membership consistency.
//
// # Change Feed
//
// [Graph.Subscribe] registers a listener and returns its de-registration
// function. Every successful mutation synchronously emits an [Event]
// carrying the mutation's [Reason] tag and a full post-mutation snapshot.
// Listeners are invoked in subscription order on the mutator's stack; there
// is no buffering and no replay for late subscribers.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. All operations are
// finite synchronous computations with no suspension points, so a single
// owning goroutine needs no locks; embedding in a multi-goroutine host
// requires external serialization of the whole instance.
package flow
