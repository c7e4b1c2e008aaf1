// Package flowio provides JSON persistence and DOT export for flow graphs.
//
// # Overview
//
// This package moves graph state across a process boundary. The JSON side is
// a thin wrapper over the graph's own state shape, designed for:
//
//   - Saving and restoring editor documents
//   - Integration with external tools that produce or consume diagrams
//   - Round-trip preservation: read, mutate, write, and re-read identically
//
// # JSON Format
//
// The document is the graph's full state aggregate:
//
//	{
//	  "nodes": [{"id": "a", "ports": [{"id": "out", "direction": "output"}]}],
//	  "connections": [{"id": "c1", "source": {"nodeId": "a", "portId": "out"},
//	                   "target": {"nodeId": "b", "portId": "in"}}],
//	  "groups": [],
//	  "templates": [],
//	  "viewport": {"position": {"x": 0, "y": 0}, "zoom": 1}
//	}
//
// # Reading
//
// Use [ReadFile] to load a graph from a file path, or [Read] to load from any
// io.Reader:
//
//	g, err := flowio.ReadFile("diagram.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both run the document through the graph's full import validation: every
// node, connection, group and template is checked exactly as if it had been
// added through the mutation API, and decoding fails on the first violation.
// The returned graph is independent of the input and can be mutated freely.
//
// # Writing
//
// Use [WriteFile] to save a graph to a file, or [Write] to write to any
// io.Writer:
//
//	err := flowio.WriteFile(g, "diagram.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The output is a deep snapshot taken at call time; later graph mutations do
// not affect bytes already written.
//
// # DOT Export
//
// [ToDOT] converts a graph to Graphviz DOT source for quick structural
// inspection with external tooling. Groups become clusters, connections
// become edges tagged with their port names, and connection colours carry
// through as edge colours. The export is one-way; there is no DOT import.
package flowio
