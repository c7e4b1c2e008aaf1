// Package pkg provides the core libraries for FlowCanvas flow diagrams.
//
// # Overview
//
// FlowCanvas models editable flow diagrams: nodes with typed ports, directed
// connections, groups, and templates. The pkg directory is organized into
// three areas:
//
//  1. [flow] - The mutable, observable graph core (validation, events, import/export state)
//  2. [flowio] - JSON persistence and Graphviz DOT export
//  3. [errors] - The closed taxonomy of typed error codes
//
// # Architecture
//
// The typical data flow through FlowCanvas:
//
//	JSON document
//	     ↓
//	[flowio] package (decode + full import validation)
//	     ↓
//	[flow] package (mutations, change feed, snapshots)
//	     ↓
//	JSON/DOT output
//
// # Quick Start
//
// Build a graph, subscribe to its change feed, and wire two nodes:
//
//	import "github.com/flowcanvas/flowcanvas/pkg/flow"
//
//	g := flow.New()
//	unsubscribe := g.Subscribe(func(ev flow.Event) {
//	    fmt.Println(ev.Reason)
//	})
//	defer unsubscribe()
//
//	g.AddNode(flow.Node{ID: "a", Ports: []flow.Port{{ID: "out", Direction: flow.DirectionOutput}}})
//	g.AddNode(flow.Node{ID: "b", Ports: []flow.Port{{ID: "in", Direction: flow.DirectionInput}}})
//	g.AddConnection(flow.Connection{
//	    Source: flow.PortAddress{NodeID: "a", PortID: "out"},
//	    Target: flow.PortAddress{NodeID: "b", PortID: "in"},
//	})
//
// Persist and reload:
//
//	flowio.WriteFile(g, "diagram.json")
//	g2, err := flowio.ReadFile("diagram.json")
//
// # Main Packages
//
// [flow] - The graph model. Every mutation validates against the full
// constraint set (port direction and uniqueness, per-port capacity, colour
// compatibility, loopback policy, duplicate detection, group consistency),
// applies atomically, and announces itself on the synchronous change feed.
// Templates stamp out nodes with override > defaults > template precedence.
//
// [flowio] - Serialization. JSON documents round-trip through the graph's
// import validation; DOT export renders groups as clusters for external
// Graphviz tooling.
//
// [errors] - Structured errors carrying machine-readable codes. Callers
// branch on codes with errors.Is, never on message text.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/flow/...   # Specific package
//	go test -run Example     # Examples only
//
// [flow]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/flow
// [flowio]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/flowio
// [errors]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/flowcanvas/flowcanvas/pkg/buildinfo
package pkg
