package flow

import (
	"slices"

	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/pkg/errors"
)

// orderedConns returns the connection store in insertion order for the
// duplicate-pair and capacity scans.
func (g *Graph) orderedConns() []*Connection {
	out := make([]*Connection, len(g.connIDs))
	for i, id := range g.connIDs {
		out[i] = g.conns[id]
	}
	return out
}

// AddConnection inserts a directed edge between an output port and an input
// port. A missing id is generated. It fails with CONNECTION_EXISTS when the
// id or the (source, target) address pair is already used, and with the
// endpoint validation codes otherwise (NODE_NOT_FOUND, PORT_NOT_FOUND,
// PORT_DIRECTION_MISMATCH, PORT_CONNECTION_LIMIT, PORT_COLOR_MISMATCH, and
// INVALID_STATE for a loopback neither port allows).
//
// The stored colour is the resolved one: an explicit request wins, then a
// colour both ports share, then whichever side's colour the other accepts,
// then whichever port has a colour at all.
func (g *Graph) AddConnection(c Connection) (Connection, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, exists := g.conns[c.ID]; exists {
		return Connection{}, errors.New(errors.CodeConnectionExists, "connection %q already exists", c.ID)
	}

	r, err := validateConnection(g.nodes, g.orderedConns(), &c, "")
	if err != nil {
		return Connection{}, err
	}
	c.Color = resolveColor(c.Color, r.srcPort, r.tgtPort)

	stored := cloneConnection(c)
	g.conns[stored.ID] = &stored
	g.connIDs = append(g.connIDs, stored.ID)
	g.emit(ReasonConnectionAdd, cloneConnection(stored))
	return cloneConnection(stored), nil
}

// UpdateConnection merges a patch onto an existing connection, re-resolves
// the (possibly changed) endpoints and re-runs the full validation set
// against them, excluding the connection's own id from the duplicate and
// capacity scans. A cleared colour is re-resolved from the new endpoints.
func (g *Graph) UpdateConnection(id string, patch ConnectionPatch) (Connection, error) {
	existing, ok := g.conns[id]
	if !ok {
		return Connection{}, errors.New(errors.CodeConnectionNotFound, "connection %q not found", id)
	}

	candidate := cloneConnection(*existing)
	if patch.Source != nil {
		candidate.Source = *patch.Source
	}
	if patch.Target != nil {
		candidate.Target = *patch.Target
	}
	if patch.Path != nil {
		candidate.Path = clonePoints(patch.Path)
	}
	if patch.Color != nil {
		candidate.Color = *patch.Color
	}
	if patch.Meta != nil {
		candidate.Meta = cloneMeta(patch.Meta)
	}

	r, err := validateConnection(g.nodes, g.orderedConns(), &candidate, id)
	if err != nil {
		return Connection{}, err
	}
	candidate.Color = resolveColor(candidate.Color, r.srcPort, r.tgtPort)

	*existing = candidate
	g.emit(ReasonConnectionUpdate, cloneConnection(candidate))
	return cloneConnection(candidate), nil
}

// RemoveConnection deletes a connection. The emitted payload and return
// value are the pre-removal snapshot.
func (g *Graph) RemoveConnection(id string) (Connection, error) {
	existing, ok := g.conns[id]
	if !ok {
		return Connection{}, errors.New(errors.CodeConnectionNotFound, "connection %q not found", id)
	}
	pre := cloneConnection(*existing)

	delete(g.conns, id)
	g.connIDs = slices.DeleteFunc(g.connIDs, func(s string) bool { return s == id })
	g.emit(ReasonConnectionRemove, pre)
	return pre, nil
}

// Connection returns a deep copy of the connection and true, or a zero
// connection and false.
func (g *Graph) Connection(id string) (Connection, bool) {
	c, ok := g.conns[id]
	if !ok {
		return Connection{}, false
	}
	return cloneConnection(*c), true
}

// ConnectionCount returns the number of connections in the graph.
func (g *Graph) ConnectionCount() int { return len(g.conns) }
