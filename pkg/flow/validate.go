package flow

import "github.com/flowcanvas/flowcanvas/pkg/errors"

// Pure structural validators. These inspect a proposed change against the
// current store state and never mutate anything; the mutation API commits
// only after every check has passed.

// validateNode checks node identity and port shape. It is run on every add,
// update and template stamp.
func validateNode(n *Node) error {
	if n.ID == "" {
		return errors.New(errors.CodeInvalidState, "node id must not be empty")
	}
	return validatePorts(n.Ports)
}

// validatePorts checks uniqueness, direction, capacity and colour-list shape
// for a port list.
func validatePorts(ports []Port) error {
	seen := make(map[string]struct{}, len(ports))
	for i := range ports {
		p := &ports[i]
		if p.ID == "" {
			return errors.New(errors.CodeInvalidState, "port id must not be empty")
		}
		if _, dup := seen[p.ID]; dup {
			return errors.New(errors.CodeInvalidState, "duplicate port id %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Direction != DirectionInput && p.Direction != DirectionOutput {
			return errors.New(errors.CodeInvalidState, "port %q: direction must be input or output", p.ID)
		}
		if p.MaxConnections != nil && *p.MaxConnections < 0 {
			return errors.New(errors.CodeInvalidState, "port %q: maxConnections must not be negative", p.ID)
		}
		for _, c := range p.AcceptsColors {
			if c == "" {
				return errors.New(errors.CodeInvalidState, "port %q: acceptsColors entries must be non-empty", p.ID)
			}
		}
	}
	return nil
}

// validateGroup checks group identity and that the membership list references
// existing nodes without duplicates.
func validateGroup(gr *Group, nodes map[string]*Node) error {
	if gr.ID == "" {
		return errors.New(errors.CodeInvalidState, "group id must not be empty")
	}
	seen := make(map[string]struct{}, len(gr.NodeIDs))
	for _, id := range gr.NodeIDs {
		if _, ok := nodes[id]; !ok {
			return errors.New(errors.CodeNodeNotFound, "group %q references unknown node %q", gr.ID, id)
		}
		if _, dup := seen[id]; dup {
			return errors.New(errors.CodeInvalidState, "group %q lists node %q twice", gr.ID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// validateTemplate checks template identity and its port lists, including
// the defaults override list when present.
func validateTemplate(t *Template) error {
	if t.ID == "" {
		return errors.New(errors.CodeInvalidState, "template id must not be empty")
	}
	if err := validatePorts(t.Ports); err != nil {
		return err
	}
	if t.Defaults != nil && t.Defaults.Ports != nil {
		return validatePorts(t.Defaults.Ports)
	}
	return nil
}

// listPermits reports whether a declared acceptsColors list explicitly
// permits color. Wildcard entries match anything. An empty list permits
// nothing explicitly - but see checkColorCompat: undeclared lists are
// permissive, they just never vouch for a colour.
func listPermits(accepts []string, color string) bool {
	for _, a := range accepts {
		if a == ColorWildcardStar || a == ColorWildcardAny || a == color {
			return true
		}
	}
	return false
}

// checkColorCompat runs the colour-compatibility rules between the two
// endpoint ports of a proposed connection.
//
// The asymmetric edge cases are load-bearing for existing consumers and are
// preserved exactly: a port with no declared acceptsColors never rejects on
// its own, yet when both colours are set and differ, at least one side must
// explicitly permit the other's colour.
func checkColorCompat(src, tgt *Port) error {
	sc, tc := src.Color, tgt.Color

	if tc != "" && len(src.AcceptsColors) > 0 && !listPermits(src.AcceptsColors, tc) {
		return errors.New(errors.CodePortColorMismatch,
			"source port %q does not accept colour %q", src.ID, tc)
	}
	if sc != "" && len(tgt.AcceptsColors) > 0 && !listPermits(tgt.AcceptsColors, sc) {
		return errors.New(errors.CodePortColorMismatch,
			"target port %q does not accept colour %q", tgt.ID, sc)
	}
	if sc != "" && tc != "" && sc != tc &&
		!listPermits(src.AcceptsColors, tc) && !listPermits(tgt.AcceptsColors, sc) {
		return errors.New(errors.CodePortColorMismatch,
			"port colours %q and %q are incompatible", sc, tc)
	}
	return nil
}

// findPort locates a port by id on a node. The second return is false when
// the node has no such port.
func findPort(n *Node, portID string) (*Port, bool) {
	for i := range n.Ports {
		if n.Ports[i].ID == portID {
			return &n.Ports[i], true
		}
	}
	return nil, false
}

// resolvedEndpoints carries the node and port pointers a connection's
// addresses resolve to.
type resolvedEndpoints struct {
	srcNode, tgtNode *Node
	srcPort, tgtPort *Port
}

// resolveEndpoints looks up both endpoint ports of a connection.
func resolveEndpoints(nodes map[string]*Node, c *Connection) (resolvedEndpoints, error) {
	var r resolvedEndpoints
	var ok bool

	if r.srcNode, ok = nodes[c.Source.NodeID]; !ok {
		return r, errors.New(errors.CodeNodeNotFound, "source node %q not found", c.Source.NodeID)
	}
	if r.srcPort, ok = findPort(r.srcNode, c.Source.PortID); !ok {
		return r, errors.New(errors.CodePortNotFound,
			"port %q not found on node %q", c.Source.PortID, c.Source.NodeID)
	}
	if r.tgtNode, ok = nodes[c.Target.NodeID]; !ok {
		return r, errors.New(errors.CodeNodeNotFound, "target node %q not found", c.Target.NodeID)
	}
	if r.tgtPort, ok = findPort(r.tgtNode, c.Target.PortID); !ok {
		return r, errors.New(errors.CodePortNotFound,
			"port %q not found on node %q", c.Target.PortID, c.Target.NodeID)
	}
	return r, nil
}

// validateConnection resolves a connection's endpoints and runs the full
// add-time rule set: direction, duplicate pair, loopback policy, capacity
// and colour compatibility. excludeID removes the connection's own id from
// the duplicate and capacity scans so updates do not count themselves.
func validateConnection(nodes map[string]*Node, conns []*Connection, c *Connection, excludeID string) (resolvedEndpoints, error) {
	r, err := resolveEndpoints(nodes, c)
	if err != nil {
		return r, err
	}

	if r.srcPort.Direction != DirectionOutput {
		return r, errors.New(errors.CodePortDirectionMismatch,
			"source port %q must be an output", r.srcPort.ID)
	}
	if r.tgtPort.Direction != DirectionInput {
		return r, errors.New(errors.CodePortDirectionMismatch,
			"target port %q must be an input", r.tgtPort.ID)
	}

	for _, other := range conns {
		if other.ID == excludeID {
			continue
		}
		if other.Source == c.Source && other.Target == c.Target {
			return r, errors.New(errors.CodeConnectionExists,
				"connection from %s.%s to %s.%s already exists",
				c.Source.NodeID, c.Source.PortID, c.Target.NodeID, c.Target.PortID)
		}
	}

	if c.Source.NodeID == c.Target.NodeID && !r.srcPort.AllowLoopback && !r.tgtPort.AllowLoopback {
		return r, errors.New(errors.CodeInvalidState,
			"loopback on node %q requires allowLoopback on a port", c.Source.NodeID)
	}

	if max := r.srcPort.MaxConnections; max != nil {
		used := 0
		for _, other := range conns {
			if other.ID != excludeID && other.Source == c.Source {
				used++
			}
		}
		if used+1 > *max {
			return r, errors.New(errors.CodePortConnectionLimit,
				"port %q on node %q is at its limit of %d connections",
				c.Source.PortID, c.Source.NodeID, *max)
		}
	}
	if max := r.tgtPort.MaxConnections; max != nil {
		used := 0
		for _, other := range conns {
			if other.ID != excludeID && other.Target == c.Target {
				used++
			}
		}
		if used+1 > *max {
			return r, errors.New(errors.CodePortConnectionLimit,
				"port %q on node %q is at its limit of %d connections",
				c.Target.PortID, c.Target.NodeID, *max)
		}
	}

	if err := checkColorCompat(r.srcPort, r.tgtPort); err != nil {
		return r, err
	}
	return r, nil
}

// resolveColor decides the stored colour of a connection. An explicit request
// wins; otherwise a shared port colour, then whichever side's colour the
// other port explicitly accepts, then whichever port has a colour at all.
func resolveColor(requested string, src, tgt *Port) string {
	if requested != "" {
		return requested
	}
	sc, tc := src.Color, tgt.Color
	switch {
	case sc != "" && sc == tc:
		return sc
	case sc != "" && listPermits(tgt.AcceptsColors, sc):
		return sc
	case tc != "" && listPermits(src.AcceptsColors, tc):
		return tc
	case sc != "":
		return sc
	default:
		return tc
	}
}
