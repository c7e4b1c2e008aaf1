package flow

import (
	"slices"

	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/pkg/errors"
)

// RegisterTemplate adds a node template. It fails with TEMPLATE_EXISTS on an
// id collision and validates both the template's own ports and its
// defaults.ports override when present.
func (g *Graph) RegisterTemplate(t Template) (Template, error) {
	if _, exists := g.templates[t.ID]; exists {
		return Template{}, errors.New(errors.CodeTemplateExists, "template %q already exists", t.ID)
	}
	if err := validateTemplate(&t); err != nil {
		return Template{}, err
	}

	stored := cloneTemplate(t)
	g.templates[stored.ID] = &stored
	g.tmplIDs = append(g.tmplIDs, stored.ID)
	g.emit(ReasonTemplateAdd, cloneTemplate(stored))
	return cloneTemplate(stored), nil
}

// RegisterTemplates adds templates in order, stopping at the first failure.
// Templates registered before the failure remain registered.
func (g *Graph) RegisterTemplates(list []Template) ([]Template, error) {
	out := make([]Template, 0, len(list))
	for _, t := range list {
		stored, err := g.RegisterTemplate(t)
		if err != nil {
			return out, err
		}
		out = append(out, stored)
	}
	return out, nil
}

// UpdateTemplate merges a patch onto an existing template and re-validates.
func (g *Graph) UpdateTemplate(id string, patch TemplatePatch) (Template, error) {
	existing, ok := g.templates[id]
	if !ok {
		return Template{}, errors.New(errors.CodeTemplateNotFound, "template %q not found", id)
	}

	candidate := cloneTemplate(*existing)
	if patch.Label != nil {
		candidate.Label = *patch.Label
	}
	if patch.Ports != nil {
		candidate.Ports = clonePorts(patch.Ports)
	}
	if patch.Form != nil {
		candidate.Form = cloneForm(patch.Form)
	}
	if patch.Data != nil {
		candidate.Data = cloneMeta(patch.Data)
	}
	if patch.Size != nil {
		candidate.Size = cloneSize(patch.Size)
	}
	if patch.Meta != nil {
		candidate.Meta = cloneMeta(patch.Meta)
	}
	if patch.Defaults != nil {
		candidate.Defaults = cloneDefaults(patch.Defaults)
	}

	if err := validateTemplate(&candidate); err != nil {
		return Template{}, err
	}

	*existing = candidate
	g.emit(ReasonTemplateUpdate, cloneTemplate(candidate))
	return cloneTemplate(candidate), nil
}

// UnregisterTemplate removes a template. Nodes stamped from it are not
// affected; they keep their provenance TemplateID tag.
func (g *Graph) UnregisterTemplate(id string) (Template, error) {
	existing, ok := g.templates[id]
	if !ok {
		return Template{}, errors.New(errors.CodeTemplateNotFound, "template %q not found", id)
	}
	pre := cloneTemplate(*existing)

	delete(g.templates, id)
	g.tmplIDs = slices.DeleteFunc(g.tmplIDs, func(s string) bool { return s == id })
	g.emit(ReasonTemplateRemove, pre)
	return pre, nil
}

// Template returns a deep copy of the template and true, or a zero template
// and false.
func (g *Graph) Template(id string) (Template, bool) {
	t, ok := g.templates[id]
	if !ok {
		return Template{}, false
	}
	return cloneTemplate(*t), true
}

// Templates returns deep copies of all registered templates in registration
// order.
func (g *Graph) Templates() []Template {
	out := make([]Template, len(g.tmplIDs))
	for i, id := range g.tmplIDs {
		out[i] = cloneTemplate(*g.templates[id])
	}
	return out
}

// TemplateCount returns the number of registered templates.
func (g *Graph) TemplateCount() int { return len(g.templates) }

// CreateNodeFromTemplate synthesizes a node from a template without
// inserting it. Each field group resolves independently with 3-tier
// precedence: overrides win over the template's defaults, which win over the
// template itself. A missing override id is generated. The synthesized node
// is validated as in [Graph.AddNode]; an empty resolved port list fails with
// INVALID_STATE.
func (g *Graph) CreateNodeFromTemplate(templateID string, ov NodeOverrides) (Node, error) {
	t, ok := g.templates[templateID]
	if !ok {
		return Node{}, errors.New(errors.CodeTemplateNotFound, "template %q not found", templateID)
	}

	d := t.Defaults
	if d == nil {
		d = &TemplateDefaults{}
	}

	n := Node{
		ID:          ov.ID,
		Label:       resolveString(ov.Label, d.Label, t.Label),
		Description: resolveString(ov.Description, d.Description, ""),
		Position:    resolvePoint(ov.Position, d.Position),
		Size:        resolveSize(ov.Size, d.Size, t.Size),
		Data:        resolveMeta(ov.Data, d.Data, t.Data),
		Ports:       resolvePorts(ov.Ports, d.Ports, t.Ports),
		Form:        resolveForm(ov.Form, d.Form, t.Form),
		Meta:        resolveMeta(ov.Meta, d.Meta, t.Meta),
		GroupID:     resolveString(ov.GroupID, d.GroupID, ""),
		Readonly:    resolveBool(ov.Readonly, d.Readonly, false),
		TemplateID:  t.ID,
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if len(n.Ports) == 0 {
		return Node{}, errors.New(errors.CodeInvalidState,
			"template %q resolves to a node without ports", templateID)
	}
	if err := validateNode(&n); err != nil {
		return Node{}, err
	}
	return n, nil
}

// AddNodeFromTemplate stamps a node from a template and inserts it.
func (g *Graph) AddNodeFromTemplate(templateID string, ov NodeOverrides) (Node, error) {
	n, err := g.CreateNodeFromTemplate(templateID, ov)
	if err != nil {
		return Node{}, err
	}
	return g.AddNode(n)
}

// =============================================================================
// 3-Tier Field Resolvers
// =============================================================================
//
// One small pure function per field group keeps the override > defaults >
// template precedence auditable and testable in isolation.

func resolveString(ov, def *string, base string) string {
	if ov != nil {
		return *ov
	}
	if def != nil {
		return *def
	}
	return base
}

func resolveBool(ov, def *bool, base bool) bool {
	if ov != nil {
		return *ov
	}
	if def != nil {
		return *def
	}
	return base
}

func resolvePoint(ov, def *Point) Point {
	if ov != nil {
		return *ov
	}
	if def != nil {
		return *def
	}
	return Point{}
}

func resolveSize(ov, def, base *Size) *Size {
	if ov != nil {
		return cloneSize(ov)
	}
	if def != nil {
		return cloneSize(def)
	}
	return cloneSize(base)
}

func resolveMeta(ov, def, base Metadata) Metadata {
	if ov != nil {
		return cloneMeta(ov)
	}
	if def != nil {
		return cloneMeta(def)
	}
	return cloneMeta(base)
}

func resolvePorts(ov, def, base []Port) []Port {
	if ov != nil {
		return clonePorts(ov)
	}
	if def != nil {
		return clonePorts(def)
	}
	return clonePorts(base)
}

func resolveForm(ov, def, base []FormSection) []FormSection {
	if ov != nil {
		return cloneForm(ov)
	}
	if def != nil {
		return cloneForm(def)
	}
	return cloneForm(base)
}
