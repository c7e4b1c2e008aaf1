package flow

// Direction indicates which way data flows through a port.
type Direction string

const (
	// DirectionInput marks a port that receives connections.
	DirectionInput Direction = "input"
	// DirectionOutput marks a port that originates connections.
	DirectionOutput Direction = "output"
)

// Wildcard entries in a port's acceptsColors list that match any colour.
const (
	ColorWildcardStar = "*"
	ColorWildcardAny  = "any"
)

// Metadata stores arbitrary key-value pairs attached to entities or the graph.
// Values are restricted to JSON-representable types so snapshots can be
// deep-cloned and round-tripped losslessly.
type Metadata map[string]any

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the rendered extent of a node.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect describes the visual bounds of a group on the canvas.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewport is the pan/zoom state of the canvas.
type Viewport struct {
	Position Point   `json:"position"`
	Zoom     float64 `json:"zoom"`
}

// DefaultViewport returns the viewport of a freshly created graph:
// origin position, 1.0 zoom.
func DefaultViewport() Viewport {
	return Viewport{Zoom: 1}
}

// Port is a typed attachment point on a node. Ports are directional and
// optionally colour-constrained and capacity-limited. Port IDs must be
// unique within their owning node.
type Port struct {
	ID             string    `json:"id"`
	Key            string    `json:"key,omitempty"`
	Label          string    `json:"label,omitempty"`
	Direction      Direction `json:"direction"`
	DataType       string    `json:"dataType,omitempty"`
	MaxConnections *int      `json:"maxConnections,omitempty"` // nil = unbounded
	AllowLoopback  bool      `json:"allowLoopback,omitempty"`
	Color          string    `json:"color,omitempty"`
	AcceptsColors  []string  `json:"acceptsColors,omitempty"` // "*" or "any" match everything
	Meta           Metadata  `json:"metadata,omitempty"`
}

// FormField describes a single editable field of a node's data bag.
// Forms are purely descriptive; the graph never validates Data against them.
type FormField struct {
	ID       string   `json:"id"`
	Label    string   `json:"label,omitempty"`
	Type     string   `json:"type,omitempty"`
	Required bool     `json:"required,omitempty"`
	Meta     Metadata `json:"metadata,omitempty"`
}

// FormSection groups form fields under a heading.
type FormSection struct {
	ID     string      `json:"id"`
	Label  string      `json:"label,omitempty"`
	Fields []FormField `json:"fields,omitempty"`
}

// Node is a vertex in the flow diagram. Nodes own their ports; a node's
// GroupID is a back-reference only and is kept consistent with the group's
// member list by [Graph.AssignNodeToGroup].
type Node struct {
	ID          string        `json:"id"`
	Label       string        `json:"label,omitempty"`
	Description string        `json:"description,omitempty"`
	Position    Point         `json:"position"`
	Size        *Size         `json:"size,omitempty"`
	Data        Metadata      `json:"data,omitempty"`
	Ports       []Port        `json:"ports,omitempty"`
	Form        []FormSection `json:"form,omitempty"`
	GroupID     string        `json:"groupId,omitempty"`
	Meta        Metadata      `json:"metadata,omitempty"`
	Readonly    bool          `json:"readonly,omitempty"`
	TemplateID  string        `json:"templateId,omitempty"`
}

// PortAddress identifies a port by its owning node.
type PortAddress struct {
	NodeID string `json:"nodeId"`
	PortID string `json:"portId"`
}

// Connection is a directed edge from an output port to an input port.
// Path is a routing hint for renderers with no semantic effect on validity.
type Connection struct {
	ID     string      `json:"id"`
	Source PortAddress `json:"source"`
	Target PortAddress `json:"target"`
	Path   []Point     `json:"path,omitempty"`
	Color  string      `json:"color,omitempty"`
	Meta   Metadata    `json:"metadata,omitempty"`
}

// Group is a named collection of nodes. Membership lives in NodeIDs;
// each member node carries the matching GroupID back-reference.
type Group struct {
	ID      string   `json:"id"`
	Label   string   `json:"label,omitempty"`
	NodeIDs []string `json:"nodeIds,omitempty"`
	Bounds  *Rect    `json:"bounds,omitempty"`
	Meta    Metadata `json:"metadata,omitempty"`
}

// TemplateDefaults overrides applied to nodes stamped from a template.
// Each present field takes precedence over the template's own value and
// yields to an explicit per-instance override.
type TemplateDefaults struct {
	Label       *string       `json:"label,omitempty"`
	Description *string       `json:"description,omitempty"`
	Position    *Point        `json:"position,omitempty"`
	Size        *Size         `json:"size,omitempty"`
	Data        Metadata      `json:"data,omitempty"`
	Ports       []Port        `json:"ports,omitempty"`
	Form        []FormSection `json:"form,omitempty"`
	Meta        Metadata      `json:"metadata,omitempty"`
	GroupID     *string       `json:"groupId,omitempty"`
	Readonly    *bool         `json:"readonly,omitempty"`
}

// Template is a reusable blueprint for stamping out new nodes. It is never
// consulted when validating existing nodes; stamped nodes only carry the
// provenance TemplateID tag.
type Template struct {
	ID       string            `json:"id"`
	Label    string            `json:"label,omitempty"`
	Ports    []Port            `json:"ports,omitempty"`
	Form     []FormSection     `json:"form,omitempty"`
	Data     Metadata          `json:"data,omitempty"`
	Size     *Size             `json:"size,omitempty"`
	Meta     Metadata          `json:"metadata,omitempty"`
	Defaults *TemplateDefaults `json:"defaults,omitempty"`
}

// State is the full serializable aggregate of a graph: the unit returned by
// [Graph.State] and embedded in every change event. The shape is stable JSON
// and must round-trip through Import without change.
type State struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
	Groups      []Group      `json:"groups"`
	Templates   []Template   `json:"templates"`
	Viewport    *Viewport    `json:"viewport,omitempty"`
	Meta        Metadata     `json:"metadata,omitempty"`
}

// =============================================================================
// Patch Types
// =============================================================================
//
// Each Update* operation accepts a patch whose present fields replace the
// corresponding whole sub-structure on the entity. There is no deep merge:
// providing Ports, Data, Form, Meta, Path or NodeIDs replaces the previous
// value wholesale. Nil pointer/slice/map fields leave the entity untouched.

// NodePatch is a partial update for a node.
//
// Group membership is deliberately absent: [Graph.AssignNodeToGroup] is the
// only sanctioned path that keeps node and group membership consistent.
type NodePatch struct {
	Label       *string
	Description *string
	Position    *Point
	Size        *Size
	Data        Metadata
	Ports       []Port
	Form        []FormSection
	Meta        Metadata
	Readonly    *bool
}

// ConnectionPatch is a partial update for a connection. Changing Source or
// Target re-runs the full endpoint validation against the new addresses.
type ConnectionPatch struct {
	Source *PortAddress
	Target *PortAddress
	Path   []Point
	Color  *string
	Meta   Metadata
}

// GroupPatch is a partial update for a group. A present NodeIDs replaces the
// membership list and is re-validated against the current node store.
type GroupPatch struct {
	Label   *string
	NodeIDs []string
	Bounds  *Rect
	Meta    Metadata
}

// TemplatePatch is a partial update for a template.
type TemplatePatch struct {
	Label    *string
	Ports    []Port
	Form     []FormSection
	Data     Metadata
	Size     *Size
	Meta     Metadata
	Defaults *TemplateDefaults
}

// NodeOverrides are per-instance values applied when stamping a node from a
// template. Present fields win over the template's defaults, which in turn
// win over the template itself.
type NodeOverrides struct {
	ID          string
	Label       *string
	Description *string
	Position    *Point
	Size        *Size
	Data        Metadata
	Ports       []Port
	Form        []FormSection
	Meta        Metadata
	GroupID     *string
	Readonly    *bool
}
