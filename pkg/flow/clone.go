package flow

// Deep-clone helpers. Every external read and every emitted event carries an
// independent copy of the stores, so callers can never mutate internal state
// through returned references. Nil inputs stay nil so snapshots round-trip
// byte-for-byte through JSON.

// cloneValue deep-copies a JSON-representable value. Maps and slices are
// copied recursively; scalars are returned as-is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Metadata:
		out := make(Metadata, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneMeta(m Metadata) Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func clonePoints(p []Point) []Point {
	if p == nil {
		return nil
	}
	out := make([]Point, len(p))
	copy(out, p)
	return out
}

func clonePoint(p *Point) *Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneSize(s *Size) *Size {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneRect(r *Rect) *Rect {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

func clonePort(p Port) Port {
	p.MaxConnections = cloneInt(p.MaxConnections)
	p.AcceptsColors = cloneStrings(p.AcceptsColors)
	p.Meta = cloneMeta(p.Meta)
	return p
}

func clonePorts(ports []Port) []Port {
	if ports == nil {
		return nil
	}
	out := make([]Port, len(ports))
	for i, p := range ports {
		out[i] = clonePort(p)
	}
	return out
}

func cloneForm(form []FormSection) []FormSection {
	if form == nil {
		return nil
	}
	out := make([]FormSection, len(form))
	for i, s := range form {
		fields := make([]FormField, len(s.Fields))
		for j, f := range s.Fields {
			f.Meta = cloneMeta(f.Meta)
			fields[j] = f
		}
		if s.Fields == nil {
			fields = nil
		}
		s.Fields = fields
		out[i] = s
	}
	return out
}

func cloneNode(n Node) Node {
	n.Size = cloneSize(n.Size)
	n.Data = cloneMeta(n.Data)
	n.Ports = clonePorts(n.Ports)
	n.Form = cloneForm(n.Form)
	n.Meta = cloneMeta(n.Meta)
	return n
}

func cloneConnection(c Connection) Connection {
	c.Path = clonePoints(c.Path)
	c.Meta = cloneMeta(c.Meta)
	return c
}

func cloneGroup(g Group) Group {
	g.NodeIDs = cloneStrings(g.NodeIDs)
	g.Bounds = cloneRect(g.Bounds)
	g.Meta = cloneMeta(g.Meta)
	return g
}

func cloneDefaults(d *TemplateDefaults) *TemplateDefaults {
	if d == nil {
		return nil
	}
	return &TemplateDefaults{
		Label:       cloneString(d.Label),
		Description: cloneString(d.Description),
		Position:    clonePoint(d.Position),
		Size:        cloneSize(d.Size),
		Data:        cloneMeta(d.Data),
		Ports:       clonePorts(d.Ports),
		Form:        cloneForm(d.Form),
		Meta:        cloneMeta(d.Meta),
		GroupID:     cloneString(d.GroupID),
		Readonly:    cloneBool(d.Readonly),
	}
}

func cloneTemplate(t Template) Template {
	t.Ports = clonePorts(t.Ports)
	t.Form = cloneForm(t.Form)
	t.Data = cloneMeta(t.Data)
	t.Size = cloneSize(t.Size)
	t.Meta = cloneMeta(t.Meta)
	t.Defaults = cloneDefaults(t.Defaults)
	return t
}
