package transform

import (
	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/debug"
	"github.com/xj-format/go-xj/format"
	"github.com/xj-format/go-xj/ir"
)

// Apply runs the rules over the tree rooted at n, in order, and returns
// a new tree; n is never mutated. target is the format the result is
// headed for, available to rules through the context. A nil result
// means a rule removed the root.
//
// Rule failures never abort the walk. A rule returning an error leaves
// its position unchanged, logs when rule debugging is on, and the walk
// continues.
func Apply(n *ir.Node, rules []Transform, target format.Format, cfg *config.Config) *ir.Node {
	cfg = config.OrDefault(cfg)
	if n == nil {
		return nil
	}
	if len(rules) == 0 {
		return n.Clone(true)
	}
	if debug.Transform() {
		debug.Logf("transform: %d rules toward %s\n", len(rules), target)
	}
	ctx := &Context{
		Name:   n.Name,
		Kind:   n.Kind,
		Path:   pathSegment(n),
		Config: cfg,
		Format: target,
	}
	return applyNode(n, rules, ctx)
}

// applyNode rewrites a single node and its subtree. A nil return drops
// the node from the rebuilt parent.
func applyNode(n *ir.Node, rules []Transform, ctx *Context) *ir.Node {
	res := n.Clone(false)

	switch n.Kind {
	case ir.ElementKind:
		name, keep := applyAt(rules, Element, n.Name, ctx)
		if !keep {
			return nil
		}
		if s, ok := name.(string); ok {
			res.Name = s
		}
		if n.Value != nil {
			v, keep := applyAt(rules, Value, n.Value, ctx)
			if !keep {
				res.Value = nil
			} else {
				res.Value = v
			}
		}
		res.NSDecls = res.NSDecls[:0]
		for _, d := range n.NSDecls {
			v, keep := applyAt(rules, Namespace, d.URI, ctx.attr(nsKey(d.Prefix)))
			if !keep {
				continue
			}
			if s, ok := v.(string); ok {
				res.SetNSDecl(d.Prefix, s)
			} else {
				res.SetNSDecl(d.Prefix, d.URI)
			}
		}
		res.Attrs = res.Attrs[:0]
		for _, a := range n.Attrs {
			v, keep := applyAt(rules, Attribute, a.Value, ctx.attr(a.Name))
			if !keep {
				continue
			}
			res.SetAttr(a.Name, v)
		}
		for i, c := range n.Children {
			cc := applyNode(c, rules, ctx.child(c, i))
			if cc != nil {
				res.AddChild(cc)
			}
		}
	case ir.TextKind:
		v, keep := applyAt(rules, Text, n.Value, ctx)
		if !keep {
			return nil
		}
		res.Value = v
	case ir.CDATAKind:
		v, keep := applyAt(rules, CDATA, n.Value, ctx)
		if !keep {
			return nil
		}
		res.Value = v
	case ir.CommentKind:
		v, keep := applyAt(rules, Comment, n.Value, ctx)
		if !keep {
			return nil
		}
		res.Value = v
	case ir.ProcInstKind:
		v, keep := applyAt(rules, ProcInst, n.Value, ctx)
		if !keep {
			return nil
		}
		res.Value = v
	}
	return res
}

// applyAt runs the matching rules at one position, threading the value
// through in registration order. Removal short-circuits.
func applyAt(rules []Transform, at Target, value any, ctx *Context) (any, bool) {
	for _, r := range rules {
		if !r.Targets().Has(at) {
			continue
		}
		v, keep, err := r.Apply(value, ctx)
		if err != nil {
			debug.Warnf("rule failed at %s: %v\n", ctx.Path, err)
			continue
		}
		if !keep {
			return nil, false
		}
		value = v
	}
	return value, true
}

func nsKey(prefix string) string {
	if prefix == "" {
		return "xmlns"
	}
	return "xmlns:" + prefix
}
