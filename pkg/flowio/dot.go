package flowio

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/flowcanvas/flowcanvas/pkg/flow"
)

// Options configures DOT export.
type Options struct {
	// Detailed includes port names on edges and template provenance in node
	// labels. When false, only labels (or ids) are shown.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT source. Groups are emitted as
// clusters containing their member nodes, ungrouped nodes at the top level,
// and connections as edges. A connection's resolved colour becomes the edge
// colour.
func ToDOT(g *flow.Graph, opts Options) string {
	s := g.State()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	grouped := make(map[string]bool)
	for i, gr := range s.Groups {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", clusterLabel(gr))
		buf.WriteString("    style=dashed;\n")
		for _, id := range gr.NodeIDs {
			if n, ok := findNode(s.Nodes, id); ok {
				fmt.Fprintf(&buf, "    %q [label=%q];\n", n.ID, nodeLabel(n, opts.Detailed))
				grouped[id] = true
			}
		}
		buf.WriteString("  }\n")
	}
	if len(s.Groups) > 0 {
		buf.WriteString("\n")
	}

	for _, n := range s.Nodes {
		if grouped[n.ID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, nodeLabel(n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, c := range s.Connections {
		attrs := edgeAttrs(c, opts.Detailed)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.Source.NodeID, c.Target.NodeID)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.Source.NodeID, c.Target.NodeID, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func clusterLabel(gr flow.Group) string {
	if gr.Label != "" {
		return gr.Label
	}
	return gr.ID
}

func nodeLabel(n flow.Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if detailed && n.TemplateID != "" {
		label += "\n<" + n.TemplateID + ">"
	}
	return label
}

func edgeAttrs(c flow.Connection, detailed bool) []string {
	var attrs []string
	if c.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", c.Color))
	}
	if detailed {
		attrs = append(attrs,
			fmt.Sprintf("taillabel=%q", c.Source.PortID),
			fmt.Sprintf("headlabel=%q", c.Target.PortID))
	}
	return attrs
}

func findNode(nodes []flow.Node, id string) (flow.Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return flow.Node{}, false
}
