package flow

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/pkg/errors"
)

// snapshot builds a deep, independent copy of the full aggregate in
// insertion order. Entity slices are always non-nil so the JSON shape is
// stable and distinguishes "no templates" from "templates absent" on import.
func (g *Graph) snapshot() State {
	s := State{
		Nodes:       make([]Node, len(g.nodeIDs)),
		Connections: make([]Connection, len(g.connIDs)),
		Groups:      make([]Group, len(g.groupIDs)),
		Templates:   make([]Template, len(g.tmplIDs)),
		Meta:        cloneMeta(g.meta),
	}
	for i, id := range g.nodeIDs {
		s.Nodes[i] = cloneNode(*g.nodes[id])
	}
	for i, id := range g.connIDs {
		s.Connections[i] = cloneConnection(*g.conns[id])
	}
	for i, id := range g.groupIDs {
		s.Groups[i] = cloneGroup(*g.groups[id])
	}
	for i, id := range g.tmplIDs {
		s.Templates[i] = cloneTemplate(*g.templates[id])
	}
	vp := g.viewport
	s.Viewport = &vp
	return s
}

// State returns a deep-clone snapshot of the full aggregate. Mutating the
// returned value never affects the graph.
func (g *Graph) State() State { return g.snapshot() }

// Viewport returns the current pan/zoom state.
func (g *Graph) Viewport() Viewport { return g.viewport }

// Metadata returns a deep copy of the graph-level metadata.
func (g *Graph) Metadata() Metadata { return cloneMeta(g.meta) }

// MarshalJSON serializes the current snapshot, making the graph itself
// directly encodable as its state shape.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.snapshot())
}

// SetViewport replaces the viewport and emits graph:metadata.
func (g *Graph) SetViewport(position Point, zoom float64) {
	g.viewport = Viewport{Position: position, Zoom: zoom}
	vp := g.viewport
	g.emit(ReasonMetadata, &vp)
}

// SetMetadata replaces the graph-level metadata bag and emits graph:metadata.
func (g *Graph) SetMetadata(meta Metadata) {
	g.meta = cloneMeta(meta)
	g.emit(ReasonMetadata, cloneMeta(meta))
}

// Import replaces the entire graph state. Templates are replaced only when
// the incoming state carries a (possibly empty, non-nil) template list;
// nodes, connections and groups are replaced unconditionally. Every entity
// runs through the same validation as its incremental add operation, with
// connections re-validated in full against the freshly imported nodes.
//
// The replacement is all-or-nothing: the new stores are built and validated
// on the side and swapped in only when everything passed, so a failed import
// leaves the prior state completely intact and emits nothing. A successful
// import emits a single graph:import event.
func (g *Graph) Import(s State) error {
	return g.importState(s, true)
}

func (g *Graph) importState(s State, notify bool) error {
	templates := make(map[string]*Template)
	var tmplIDs []string
	if s.Templates == nil {
		// Absent template list keeps the registry as-is.
		for _, id := range g.tmplIDs {
			t := cloneTemplate(*g.templates[id])
			templates[t.ID] = &t
			tmplIDs = append(tmplIDs, t.ID)
		}
	} else {
		for _, t := range s.Templates {
			if _, exists := templates[t.ID]; exists {
				return errors.New(errors.CodeTemplateExists, "template %q already exists", t.ID)
			}
			if err := validateTemplate(&t); err != nil {
				return err
			}
			stored := cloneTemplate(t)
			templates[stored.ID] = &stored
			tmplIDs = append(tmplIDs, stored.ID)
		}
	}

	nodes := make(map[string]*Node, len(s.Nodes))
	nodeIDs := make([]string, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if _, exists := nodes[n.ID]; exists {
			return errors.New(errors.CodeNodeExists, "node %q already exists", n.ID)
		}
		if err := validateNode(&n); err != nil {
			return err
		}
		stored := cloneNode(n)
		nodes[stored.ID] = &stored
		nodeIDs = append(nodeIDs, stored.ID)
	}

	groups := make(map[string]*Group, len(s.Groups))
	groupIDs := make([]string, 0, len(s.Groups))
	for _, gr := range s.Groups {
		if _, exists := groups[gr.ID]; exists {
			return errors.New(errors.CodeGroupExists, "group %q already exists", gr.ID)
		}
		if err := validateGroup(&gr, nodes); err != nil {
			return err
		}
		stored := cloneGroup(gr)
		groups[stored.ID] = &stored
		groupIDs = append(groupIDs, stored.ID)
	}

	conns := make(map[string]*Connection, len(s.Connections))
	connIDs := make([]string, 0, len(s.Connections))
	inserted := make([]*Connection, 0, len(s.Connections))
	for _, c := range s.Connections {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if _, exists := conns[c.ID]; exists {
			return errors.New(errors.CodeConnectionExists, "connection %q already exists", c.ID)
		}
		r, err := validateConnection(nodes, inserted, &c, "")
		if err != nil {
			return err
		}
		c.Color = resolveColor(c.Color, r.srcPort, r.tgtPort)
		stored := cloneConnection(c)
		conns[stored.ID] = &stored
		connIDs = append(connIDs, stored.ID)
		inserted = append(inserted, &stored)
	}

	g.nodes, g.nodeIDs = nodes, nodeIDs
	g.conns, g.connIDs = conns, connIDs
	g.groups, g.groupIDs = groups, groupIDs
	g.templates, g.tmplIDs = templates, tmplIDs
	if s.Viewport != nil {
		g.viewport = *s.Viewport
	} else {
		g.viewport = DefaultViewport()
	}
	g.meta = cloneMeta(s.Meta)

	if notify {
		g.emit(ReasonImport, nil)
	}
	return nil
}
