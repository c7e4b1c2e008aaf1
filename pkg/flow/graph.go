package flow

import (
	"slices"

	"github.com/flowcanvas/flowcanvas/pkg/errors"
)

// Graph is the mutable, observable flow-diagram model: nodes with typed
// ports, directed connections between ports, group containment, templates
// for node instantiation, and viewport/metadata state.
//
// Every mutation validates first, applies atomically, then notifies
// subscribers; on failure the stores are untouched and a typed error is
// returned. Every read returns deep, independent copies.
//
// The zero value is not usable - use [New] or [NewFromState].
// Graph is not safe for concurrent use: all access must come from a single
// owning goroutine or be externally serialized.
type Graph struct {
	nodes     map[string]*Node
	nodeIDs   []string // insertion order, for deterministic snapshots
	conns     map[string]*Connection
	connIDs   []string
	groups    map[string]*Group
	groupIDs  []string
	templates map[string]*Template
	tmplIDs   []string

	viewport Viewport
	meta     Metadata

	subs      []subscription
	nextSubID int
}

// New creates an empty graph with the default viewport.
func New() *Graph {
	return &Graph{
		nodes:     make(map[string]*Node),
		conns:     make(map[string]*Connection),
		groups:    make(map[string]*Group),
		templates: make(map[string]*Template),
		viewport:  DefaultViewport(),
	}
}

// NewFromState creates a graph seeded with the given state. The seed runs
// through the same validation as [Graph.Import] but emits no event.
func NewFromState(s State) (*Graph, error) {
	g := New()
	if err := g.importState(s, false); err != nil {
		return nil, err
	}
	return g, nil
}

// =============================================================================
// Node Operations
// =============================================================================

// AddNode inserts a node. It fails with NODE_EXISTS on an id collision and
// with INVALID_STATE when the node's ports violate shape rules (duplicate
// ids, bad direction, negative capacity, empty colour entries). The stored
// node is a deep copy; a deep copy is also returned.
func (g *Graph) AddNode(n Node) (Node, error) {
	if _, exists := g.nodes[n.ID]; exists {
		return Node{}, errors.New(errors.CodeNodeExists, "node %q already exists", n.ID)
	}
	if err := validateNode(&n); err != nil {
		return Node{}, err
	}

	stored := cloneNode(n)
	g.nodes[stored.ID] = &stored
	g.nodeIDs = append(g.nodeIDs, stored.ID)
	g.emit(ReasonNodeAdd, cloneNode(stored))
	return cloneNode(stored), nil
}

// UpdateNode merges a patch onto an existing node. Present patch fields
// replace whole sub-structures (Ports, Data, Form, Meta are never deep
// merged). The merged node is re-validated as in [Graph.AddNode].
func (g *Graph) UpdateNode(id string, patch NodePatch) (Node, error) {
	existing, ok := g.nodes[id]
	if !ok {
		return Node{}, errors.New(errors.CodeNodeNotFound, "node %q not found", id)
	}

	candidate := cloneNode(*existing)
	if patch.Label != nil {
		candidate.Label = *patch.Label
	}
	if patch.Description != nil {
		candidate.Description = *patch.Description
	}
	if patch.Position != nil {
		candidate.Position = *patch.Position
	}
	if patch.Size != nil {
		candidate.Size = cloneSize(patch.Size)
	}
	if patch.Data != nil {
		candidate.Data = cloneMeta(patch.Data)
	}
	if patch.Ports != nil {
		candidate.Ports = clonePorts(patch.Ports)
	}
	if patch.Form != nil {
		candidate.Form = cloneForm(patch.Form)
	}
	if patch.Meta != nil {
		candidate.Meta = cloneMeta(patch.Meta)
	}
	if patch.Readonly != nil {
		candidate.Readonly = *patch.Readonly
	}

	if err := validateNode(&candidate); err != nil {
		return Node{}, err
	}

	*existing = candidate
	g.emit(ReasonNodeUpdate, cloneNode(candidate))
	return cloneNode(candidate), nil
}

// MoveNode updates only the node's position.
func (g *Graph) MoveNode(id string, position Point) (Node, error) {
	return g.UpdateNode(id, NodePatch{Position: &position})
}

// SetNodeData replaces the node's entire data bag. There is no field-level
// merge; passing nil clears the bag.
func (g *Graph) SetNodeData(id string, data Metadata) (Node, error) {
	existing, ok := g.nodes[id]
	if !ok {
		return Node{}, errors.New(errors.CodeNodeNotFound, "node %q not found", id)
	}
	existing.Data = cloneMeta(data)
	g.emit(ReasonNodeUpdate, cloneNode(*existing))
	return cloneNode(*existing), nil
}

// RemoveNode deletes a node and cascades: every connection touching the node
// is deleted and the node id is removed from every group's membership. The
// emitted payload and return value are the pre-removal node snapshot.
func (g *Graph) RemoveNode(id string) (Node, error) {
	existing, ok := g.nodes[id]
	if !ok {
		return Node{}, errors.New(errors.CodeNodeNotFound, "node %q not found", id)
	}
	pre := cloneNode(*existing)

	for _, connID := range slices.Clone(g.connIDs) {
		c := g.conns[connID]
		if c.Source.NodeID == id || c.Target.NodeID == id {
			delete(g.conns, connID)
			g.connIDs = slices.DeleteFunc(g.connIDs, func(s string) bool { return s == connID })
		}
	}
	for _, gr := range g.groups {
		gr.NodeIDs = slices.DeleteFunc(gr.NodeIDs, func(s string) bool { return s == id })
	}

	delete(g.nodes, id)
	g.nodeIDs = slices.DeleteFunc(g.nodeIDs, func(s string) bool { return s == id })
	g.emit(ReasonNodeRemove, pre)
	return pre, nil
}

// Node returns a deep copy of the node and true, or a zero node and false.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return cloneNode(*n), true
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// =============================================================================
// Group Operations
// =============================================================================

// AddGroup inserts a group. It fails with GROUP_EXISTS on an id collision,
// NODE_NOT_FOUND when the membership references a missing node, and
// INVALID_STATE on duplicate members.
func (g *Graph) AddGroup(gr Group) (Group, error) {
	if _, exists := g.groups[gr.ID]; exists {
		return Group{}, errors.New(errors.CodeGroupExists, "group %q already exists", gr.ID)
	}
	if err := validateGroup(&gr, g.nodes); err != nil {
		return Group{}, err
	}

	stored := cloneGroup(gr)
	g.groups[stored.ID] = &stored
	g.groupIDs = append(g.groupIDs, stored.ID)
	g.emit(ReasonGroupAdd, cloneGroup(stored))
	return cloneGroup(stored), nil
}

// UpdateGroup merges a patch onto an existing group and re-validates the
// membership list against the current node store.
func (g *Graph) UpdateGroup(id string, patch GroupPatch) (Group, error) {
	existing, ok := g.groups[id]
	if !ok {
		return Group{}, errors.New(errors.CodeGroupNotFound, "group %q not found", id)
	}

	candidate := cloneGroup(*existing)
	if patch.Label != nil {
		candidate.Label = *patch.Label
	}
	if patch.NodeIDs != nil {
		candidate.NodeIDs = cloneStrings(patch.NodeIDs)
	}
	if patch.Bounds != nil {
		candidate.Bounds = cloneRect(patch.Bounds)
	}
	if patch.Meta != nil {
		candidate.Meta = cloneMeta(patch.Meta)
	}

	if err := validateGroup(&candidate, g.nodes); err != nil {
		return Group{}, err
	}

	*existing = candidate
	g.emit(ReasonGroupUpdate, cloneGroup(candidate))
	return cloneGroup(candidate), nil
}

// RemoveGroup deletes a group. Member nodes survive: each has its GroupID
// back-reference detached (emitting node:update per affected node) before
// the group:remove event fires with the pre-removal group snapshot.
func (g *Graph) RemoveGroup(id string) (Group, error) {
	existing, ok := g.groups[id]
	if !ok {
		return Group{}, errors.New(errors.CodeGroupNotFound, "group %q not found", id)
	}
	pre := cloneGroup(*existing)

	for _, nodeID := range pre.NodeIDs {
		n, ok := g.nodes[nodeID]
		if !ok || n.GroupID != id {
			continue
		}
		n.GroupID = ""
		g.emit(ReasonNodeUpdate, cloneNode(*n))
	}

	delete(g.groups, id)
	g.groupIDs = slices.DeleteFunc(g.groupIDs, func(s string) bool { return s == id })
	g.emit(ReasonGroupRemove, pre)
	return pre, nil
}

// AssignNodeToGroup is the only sanctioned path for changing group
// membership. An empty groupID detaches the node from any group. The node is
// removed from its previous group's membership, added to the new group's,
// and its GroupID back-reference updated - emitting group:update for each
// touched group and node:update for the node.
func (g *Graph) AssignNodeToGroup(nodeID, groupID string) error {
	n, ok := g.nodes[nodeID]
	if !ok {
		return errors.New(errors.CodeNodeNotFound, "node %q not found", nodeID)
	}
	var target *Group
	if groupID != "" {
		if target, ok = g.groups[groupID]; !ok {
			return errors.New(errors.CodeGroupNotFound, "group %q not found", groupID)
		}
	}

	if prev, ok := g.groups[n.GroupID]; ok && n.GroupID != "" {
		prev.NodeIDs = slices.DeleteFunc(prev.NodeIDs, func(s string) bool { return s == nodeID })
		g.emit(ReasonGroupUpdate, cloneGroup(*prev))
	}
	if target != nil {
		if !slices.Contains(target.NodeIDs, nodeID) {
			target.NodeIDs = append(target.NodeIDs, nodeID)
		}
		g.emit(ReasonGroupUpdate, cloneGroup(*target))
	}

	n.GroupID = groupID
	g.emit(ReasonNodeUpdate, cloneNode(*n))
	return nil
}

// Group returns a deep copy of the group and true, or a zero group and false.
func (g *Graph) Group(id string) (Group, bool) {
	gr, ok := g.groups[id]
	if !ok {
		return Group{}, false
	}
	return cloneGroup(*gr), true
}

// GroupCount returns the number of groups in the graph.
func (g *Graph) GroupCount() int { return len(g.groups) }
