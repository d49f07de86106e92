package jsoncodec

import (
	"fmt"

	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/ir"
)

// High-fidelity mode: every node renders as a single-key object whose
// key is the node's qualified name and whose body carries structure
// under reserved property names. Unlike natural mode the mapping is
// reversible: order, attributes, namespace declarations, CDATA,
// comments and processing instructions all survive the round trip.

func encodeFidelity(n *ir.Node, cfg *config.Config) any {
	switch n.Kind {
	case ir.ElementKind:
		root := &Object{}
		root.Set(qnameFor(n, cfg), fidelityBody(n, cfg))
		return root
	case ir.TextKind:
		return n.Value
	case ir.CDATAKind:
		o := &Object{}
		o.Set(cfg.Reserved.CDATA, n.Value)
		return o
	case ir.CommentKind:
		o := &Object{}
		o.Set(cfg.Reserved.Comment, n.Value)
		return o
	case ir.ProcInstKind:
		pi := &Object{}
		pi.Set("target", n.Name)
		pi.Set("data", n.Value)
		o := &Object{}
		o.Set(cfg.Reserved.ProcInst, pi)
		return o
	}
	return nil
}

// fidelityBody renders an element's content. An element carrying only a
// collapsed scalar value renders as that scalar directly.
func fidelityBody(el *ir.Node, cfg *config.Config) any {
	body := &Object{}
	if el.Namespace != "" {
		body.Set(cfg.Reserved.Namespace, el.Namespace)
	}
	if len(el.NSDecls) > 0 {
		decls := &Object{}
		for _, d := range el.NSDecls {
			decls.Set(d.Prefix, d.URI)
		}
		body.Set(cfg.Reserved.Declarations, decls)
	}
	if len(el.Attrs) > 0 {
		attrs := &Object{}
		for _, a := range el.Attrs {
			attrs.Set(a.Name, a.Value)
		}
		body.Set(cfg.Reserved.Attributes, attrs)
	}
	if el.Value != nil {
		if body.Len() == 0 && len(el.Children) == 0 {
			return el.Value
		}
		body.Set(cfg.Reserved.Value, el.Value)
	}
	if len(el.Children) > 0 {
		items := make([]any, 0, len(el.Children))
		for _, c := range el.Children {
			if v, ok := fidelityChild(c, cfg); ok {
				items = append(items, v)
			}
		}
		body.Set(cfg.Reserved.Children, items)
	}
	return body
}

func fidelityChild(c *ir.Node, cfg *config.Config) (any, bool) {
	switch c.Kind {
	case ir.ElementKind:
		o := &Object{}
		o.Set(qnameFor(c, cfg), fidelityBody(c, cfg))
		return o, true
	case ir.TextKind:
		return c.Value, true
	case ir.CDATAKind:
		if !cfg.Preserve.CDATA {
			return c.Value, true
		}
	case ir.CommentKind:
		if !cfg.Preserve.Comments {
			return nil, false
		}
	case ir.ProcInstKind:
		if !cfg.Preserve.ProcInst {
			return nil, false
		}
	}
	return encodeFidelity(c, cfg), true
}

func decodeFidelity(v any, cfg *config.Config) (*ir.Node, error) {
	obj, ok := v.(*Object)
	if !ok || obj.Len() != 1 {
		return nil, fmt.Errorf("%w: high-fidelity mode requires a single-key root object", ErrParse)
	}
	m := obj.Members[0]
	if cfg.IsReserved(m.Key) {
		return nil, fmt.Errorf("%w: reserved name %q cannot be the root element", ErrParse, m.Key)
	}
	return fidelityElement(m.Key, m.Value, cfg)
}

func fidelityElement(name string, body any, cfg *config.Config) (*ir.Node, error) {
	el := newNamedElement(name, cfg)
	obj, ok := body.(*Object)
	if !ok {
		if !isScalar(body) {
			return nil, fmt.Errorf("%w: element %q body must be an object or scalar, got %T", ErrParse, name, body)
		}
		el.Value = body
		return el, nil
	}
	r := &cfg.Reserved
	for _, m := range obj.Members {
		switch m.Key {
		case r.Namespace:
			el.Namespace, ok = m.Value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q must be a string", ErrParse, m.Key)
			}
		case r.Prefix:
			p, ok := m.Value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q must be a string", ErrParse, m.Key)
			}
			el.Prefix = p
		case r.Declarations:
			decls, ok := m.Value.(*Object)
			if !ok {
				return nil, fmt.Errorf("%w: %q must be an object", ErrParse, m.Key)
			}
			for _, d := range decls.Members {
				uri, ok := d.Value.(string)
				if !ok {
					return nil, fmt.Errorf("%w: namespace declaration %q must map to a string", ErrParse, d.Key)
				}
				el.SetNSDecl(d.Key, uri)
			}
		case r.Attributes:
			attrs, ok := m.Value.(*Object)
			if !ok {
				return nil, fmt.Errorf("%w: %q must be an object", ErrParse, m.Key)
			}
			for _, a := range attrs.Members {
				if !isScalar(a.Value) {
					return nil, fmt.Errorf("%w: attribute %q must be a scalar", ErrParse, a.Key)
				}
				el.SetAttr(a.Key, a.Value)
			}
		case r.Value:
			if !isScalar(m.Value) {
				return nil, fmt.Errorf("%w: %q must be a scalar", ErrParse, m.Key)
			}
			el.Value = m.Value
		case r.Children:
			items, ok := m.Value.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: %q must be an array", ErrParse, m.Key)
			}
			for _, it := range items {
				child, err := fidelityNode(it, cfg)
				if err != nil {
					return nil, err
				}
				el.AddChild(child)
			}
		default:
			return nil, fmt.Errorf("%w: unexpected key %q in element %q", ErrParse, m.Key, name)
		}
	}
	return el, nil
}

// fidelityNode decodes one child item: a scalar is a text node, a
// single-key object is an element or, under a reserved key, a CDATA
// section, comment or processing instruction.
func fidelityNode(v any, cfg *config.Config) (*ir.Node, error) {
	obj, ok := v.(*Object)
	if !ok {
		if !isScalar(v) {
			return nil, fmt.Errorf("%w: child must be a scalar or single-key object, got %T", ErrParse, v)
		}
		n := ir.NewText("")
		n.Value = v
		return n, nil
	}
	if obj.Len() != 1 {
		return nil, fmt.Errorf("%w: child object must have exactly one key, got %d", ErrParse, obj.Len())
	}
	m := obj.Members[0]
	r := &cfg.Reserved
	switch m.Key {
	case r.CDATA:
		s, ok := m.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be a string", ErrParse, m.Key)
		}
		return ir.NewCDATA(s), nil
	case r.Comment:
		s, ok := m.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be a string", ErrParse, m.Key)
		}
		return ir.NewComment(s), nil
	case r.ProcInst:
		pi, ok := m.Value.(*Object)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be an object", ErrParse, m.Key)
		}
		target, _ := pi.Get("target")
		data, _ := pi.Get("data")
		ts, ok := target.(string)
		if !ok {
			return nil, fmt.Errorf("%w: processing instruction target must be a string", ErrParse)
		}
		ds, _ := data.(string)
		return ir.NewProcInst(ts, ds), nil
	}
	if cfg.IsReserved(m.Key) {
		return nil, fmt.Errorf("%w: reserved name %q cannot name an element", ErrParse, m.Key)
	}
	return fidelityElement(m.Key, m.Value, cfg)
}
