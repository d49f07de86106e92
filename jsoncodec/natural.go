package jsoncodec

import (
	"fmt"
	"strings"

	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/ir"
)

// Natural mode: best-effort idiomatic JSON. The shape strategies in the
// configuration decide attribute placement, text placement and array
// shape. The mapping is lossy: comments and processing instructions are
// dropped, CDATA folds into text, and a single-item array collapses to
// its item on the way back out.

func decodeNatural(v any, cfg *config.Config) (*ir.Node, error) {
	switch t := v.(type) {
	case *Object:
		if t.Len() != 1 {
			return nil, fmt.Errorf("%w: natural mode requires a single-key root object, got %d keys", ErrValidation, t.Len())
		}
		m := t.Members[0]
		el, err := elementFromValue(m.Key, m.Value, cfg)
		if err != nil {
			return nil, err
		}
		if el == nil {
			return nil, fmt.Errorf("%w: root element removed by empty-element strategy", ErrValidation)
		}
		return el, nil
	case []any:
		// a bare array gets an implicit wrapper element
		root := ir.NewElement("array")
		if err := appendItems(root, "array", t, cfg); err != nil {
			return nil, err
		}
		return root, nil
	default:
		return nil, fmt.Errorf("%w: natural mode requires an object or array at the root, got %T", ErrValidation, v)
	}
}

// elementFromValue builds the element for one object key. A nil return
// with nil error means the empty-element strategy removed the element.
func elementFromValue(name string, v any, cfg *config.Config) (*ir.Node, error) {
	el := newNamedElement(name, cfg)
	switch t := v.(type) {
	case nil:
		switch cfg.Empty {
		case config.EmptyRemove:
			return nil, nil
		case config.EmptyString:
			el.Value = ""
		}
	case *Object:
		if err := buildObject(el, t, cfg); err != nil {
			return nil, err
		}
	case []any:
		// an array directly under a lone key keeps the key as wrapper
		if err := appendItems(el, name, t, cfg); err != nil {
			return nil, err
		}
	default:
		el.Value = t
	}
	return el, nil
}

// newNamedElement splits a prefixed key into prefix and local name.
func newNamedElement(name string, cfg *config.Config) *ir.Node {
	if !cfg.Preserve.Namespaces {
		return ir.NewElement(name)
	}
	if i := strings.IndexByte(name, ':'); i > 0 && i < len(name)-1 {
		el := ir.NewElement(name[i+1:])
		el.Prefix = name[:i]
		return el
	}
	return ir.NewElement(name)
}

func buildObject(el *ir.Node, obj *Object, cfg *config.Config) error {
	var textVal any
	haveText := false
	var children []Member

	// attribute extraction precedes text extraction precedes recursion
	for _, m := range obj.Members {
		switch {
		case cfg.Attributes == config.AttrProperty && m.Key == cfg.AttributeProperty:
			am, ok := m.Value.(*Object)
			if !ok {
				return fmt.Errorf("%w: %q must hold an object of attributes, got %T", ErrValidation, m.Key, m.Value)
			}
			for _, a := range am.Members {
				if !isScalar(a.Value) {
					return fmt.Errorf("%w: attribute %q must be a scalar, got %T", ErrValidation, a.Key, a.Value)
				}
				setAttrOrDecl(el, a.Key, a.Value, cfg)
			}
		case cfg.Attributes == config.AttrPrefix && strings.HasPrefix(m.Key, cfg.AttributePrefix) && len(m.Key) > len(cfg.AttributePrefix):
			if !isScalar(m.Value) {
				return fmt.Errorf("%w: attribute %q must be a scalar, got %T", ErrValidation, m.Key, m.Value)
			}
			setAttrOrDecl(el, m.Key[len(cfg.AttributePrefix):], m.Value, cfg)
		case m.Key == cfg.TextProperty:
			if !isScalar(m.Value) {
				return fmt.Errorf("%w: %q must be a scalar, got %T", ErrValidation, m.Key, m.Value)
			}
			textVal, haveText = m.Value, true
		case cfg.Attributes == config.AttrMerge && m.Value != nil && isScalar(m.Value):
			setAttrOrDecl(el, m.Key, m.Value, cfg)
		default:
			children = append(children, m)
		}
	}

	for _, m := range children {
		switch t := m.Value.(type) {
		case []any:
			if cfg.Arrays == config.ArrayWrapped {
				wrapper := newNamedElement(m.Key, cfg)
				if err := appendItems(wrapper, m.Key, t, cfg); err != nil {
					return err
				}
				el.AddChild(wrapper)
				continue
			}
			// multiple: items become repeated siblings named by the key
			for _, item := range t {
				child, err := elementFromValue(m.Key, item, cfg)
				if err != nil {
					return err
				}
				if child != nil {
					el.AddChild(child)
				}
			}
		default:
			child, err := elementFromValue(m.Key, m.Value, cfg)
			if err != nil {
				return err
			}
			if child != nil {
				el.AddChild(child)
			}
		}
	}

	if haveText {
		if len(el.Children) == 0 {
			el.Value = textVal
		} else {
			txt := ir.NewText(ir.ScalarString(textVal))
			txt.Value = textVal
			el.Children = append([]*ir.Node{txt}, el.Children...)
			txt.Parent = el
			for i, c := range el.Children {
				c.ParentIndex = i
			}
		}
	}
	return nil
}

// appendItems adds array items under a wrapper element. When every item
// is a single-key object those keys name the children; otherwise the
// item-name table supplies the name.
func appendItems(wrapper *ir.Node, key string, items []any, cfg *config.Config) error {
	single := len(items) > 0
	for _, it := range items {
		obj, ok := it.(*Object)
		if !ok || obj.Len() != 1 {
			single = false
			break
		}
	}
	for _, it := range items {
		var (
			child *ir.Node
			err   error
		)
		if single {
			m := it.(*Object).Members[0]
			child, err = elementFromValue(m.Key, m.Value, cfg)
		} else {
			child, err = elementFromValue(cfg.ItemNameFor(key), it, cfg)
		}
		if err != nil {
			return err
		}
		if child != nil {
			wrapper.AddChild(child)
		}
	}
	return nil
}

// setAttrOrDecl stores an attribute, routing xmlns/xmlns:* keys into
// namespace declarations the way the XML parser does.
func setAttrOrDecl(el *ir.Node, name string, v any, cfg *config.Config) {
	if cfg.Preserve.Namespaces {
		if name == "xmlns" {
			el.SetNSDecl("", ir.ScalarString(v))
			return
		}
		if strings.HasPrefix(name, "xmlns:") {
			el.SetNSDecl(name[len("xmlns:"):], ir.ScalarString(v))
			return
		}
	}
	if cfg.Preserve.Attributes {
		el.SetAttr(name, v)
	}
}

// removed is the sentinel an empty-element strategy of "remove" yields;
// parents drop the member entirely.
type removedMarker struct{}

var removed = removedMarker{}

func encodeNatural(n *ir.Node, cfg *config.Config) any {
	switch n.Kind {
	case ir.ElementKind:
		v := elementValue(n, cfg)
		if _, gone := v.(removedMarker); gone {
			// a removed root has nowhere to be absent from
			v = nil
		}
		root := &Object{}
		root.Set(qnameFor(n, cfg), v)
		return root
	case ir.TextKind, ir.CDATAKind:
		return n.Value
	default:
		return nil
	}
}

// elementValue renders an element's content: a scalar for plain leaves,
// an array for wrapped array elements, otherwise an ordered object.
func elementValue(el *ir.Node, cfg *config.Config) any {
	obj := &Object{}

	attrs := attrMembers(el, cfg)
	switch cfg.Attributes {
	case config.AttrProperty:
		if len(attrs) > 0 {
			obj.Set(cfg.AttributeProperty, &Object{Members: attrs})
		}
	case config.AttrPrefix:
		for _, a := range attrs {
			obj.Set(cfg.AttributePrefix+a.Key, a.Value)
		}
	case config.AttrMerge:
		for _, a := range attrs {
			obj.Set(a.Key, a.Value)
		}
	}

	textVal, haveText := textContent(el, cfg)

	var elems []*ir.Node
	for _, c := range el.Children {
		if c.Kind == ir.ElementKind {
			elems = append(elems, c)
		}
	}

	if cfg.Arrays == config.ArrayWrapped && obj.Len() == 0 && !haveText &&
		len(elems) == len(el.Children) && isWrapped(el, elems, cfg) {
		arr := make([]any, 0, len(elems))
		for _, c := range elems {
			v := elementValue(c, cfg)
			if _, gone := v.(removedMarker); gone {
				continue
			}
			arr = append(arr, v)
		}
		return arr
	}

	// group same-named siblings; a repeated name collapses into one
	// array anchored at the first occurrence
	groups := []*group{}
	byName := map[string]*group{}
	for _, c := range elems {
		name := qnameFor(c, cfg)
		g, ok := byName[name]
		if !ok {
			g = &group{name: name}
			byName[name] = g
			groups = append(groups, g)
		}
		g.nodes = append(g.nodes, c)
	}
	// a repeated name always becomes an array, under both array
	// strategies; replacing a member in place would drop siblings
	for _, g := range groups {
		if len(g.nodes) > 1 {
			arr := make([]any, 0, len(g.nodes))
			for _, c := range g.nodes {
				v := elementValue(c, cfg)
				if _, gone := v.(removedMarker); gone {
					continue
				}
				arr = append(arr, v)
			}
			obj.Set(g.name, arr)
			continue
		}
		for _, c := range g.nodes {
			v := elementValue(c, cfg)
			if _, gone := v.(removedMarker); gone {
				continue
			}
			obj.Set(g.name, v)
		}
	}

	if haveText {
		if obj.Len() == 0 && cfg.Text == config.TextDirect {
			return textVal
		}
		obj.Set(cfg.TextProperty, textVal)
	}
	// the empty strategy applies to elements that were empty in the
	// source, not ones whose children were all removed
	if obj.Len() == 0 && !haveText && len(el.Children) == 0 {
		switch cfg.Empty {
		case config.EmptyNull:
			return nil
		case config.EmptyString:
			return ""
		case config.EmptyRemove:
			return removed
		}
	}
	return obj
}

type group struct {
	name  string
	nodes []*ir.Node
}

func isWrapped(el *ir.Node, elems []*ir.Node, cfg *config.Config) bool {
	if len(elems) == 0 {
		return false
	}
	want := cfg.ItemNameFor(el.Name)
	for _, c := range elems {
		if c.Name != want {
			return false
		}
	}
	return true
}

// attrMembers renders namespace declarations and attributes in XML
// source order: xmlns first, then the attribute list.
func attrMembers(el *ir.Node, cfg *config.Config) []Member {
	var res []Member
	if cfg.Preserve.Namespaces {
		for _, d := range el.NSDecls {
			key := "xmlns"
			if d.Prefix != "" {
				key += ":" + d.Prefix
			}
			res = append(res, Member{Key: key, Value: d.URI})
		}
	}
	if cfg.Preserve.Attributes {
		for _, a := range el.Attrs {
			res = append(res, Member{Key: a.Name, Value: a.Value})
		}
	}
	return res
}

// textContent collects an element's character content. A lone scalar
// value stays a scalar; anything else concatenates to a string, with
// CDATA folding in.
func textContent(el *ir.Node, cfg *config.Config) (any, bool) {
	if !cfg.Preserve.Text {
		return nil, false
	}
	var parts []string
	n := 0
	for _, c := range el.Children {
		if c.Kind.IsCharData() {
			parts = append(parts, ir.ScalarString(c.Value))
			n++
		}
	}
	if el.Value != nil && n == 0 {
		return el.Value, true
	}
	if el.Value != nil {
		parts = append([]string{ir.ScalarString(el.Value)}, parts...)
	}
	if len(parts) == 0 {
		return nil, false
	}
	return strings.Join(parts, ""), true
}

func qnameFor(el *ir.Node, cfg *config.Config) string {
	if cfg.Preserve.Namespaces && el.Prefix != "" {
		return el.Prefix + ":" + el.Name
	}
	return el.Name
}
