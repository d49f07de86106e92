package xmlcodec

import (
	"fmt"
	"io"
	"strings"

	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/debug"
	"github.com/xj-format/go-xj/entity"
	"github.com/xj-format/go-xj/ir"
)

type encState struct {
	depth  int
	indent int
	pretty bool
	paint  func(ColorClass, string) string
}

// Encode serializes a tree as XML text.
func Encode(n *ir.Node, w io.Writer, cfg *config.Config) error {
	return encodeWith(n, w, cfg, nil)
}

// EncodeColored serializes with ANSI color escapes for terminal viewing.
func EncodeColored(n *ir.Node, w io.Writer, cfg *config.Config, colors *Colors) error {
	return encodeWith(n, w, cfg, colors)
}

func EncodeString(n *ir.Node, cfg *config.Config) (string, error) {
	var b strings.Builder
	if err := Encode(n, &b, cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}

func encodeWith(n *ir.Node, w io.Writer, cfg *config.Config, colors *Colors) error {
	cfg = config.OrDefault(cfg)
	if debug.Encode() {
		debug.Logf("encode: %s at %s\n", n.Kind, n.Path())
	}
	es := &encState{
		indent: cfg.Indent,
		pretty: cfg.Pretty,
		paint:  func(_ ColorClass, s string) string { return s },
	}
	if colors != nil {
		es.paint = colors.Color
	}
	var b strings.Builder
	if cfg.XMLDeclaration {
		b.WriteString(es.paint(DeclColor, `<?xml version="1.0" encoding="UTF-8"?>`))
		b.WriteString("\n")
	}
	// an XML declaration carried in the tree is replaced, never doubled
	if n.Kind == ir.ProcInstKind && n.Name == "xml" {
		_, err := io.WriteString(w, b.String())
		return err
	}
	if err := encodeNode(&b, n, es, cfg); err != nil {
		return err
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func encodeNode(b *strings.Builder, n *ir.Node, es *encState, cfg *config.Config) error {
	switch n.Kind {
	case ir.ElementKind:
		return encodeElement(b, n, es, cfg)
	case ir.TextKind:
		b.WriteString(es.paint(TextColor, entity.Escape(ir.ScalarString(n.Value))))
		return nil
	case ir.CDATAKind:
		v := strings.ReplaceAll(ir.ScalarString(n.Value), "]]>", "]]]]><![CDATA[>")
		b.WriteString(es.paint(CDATAColor, "<![CDATA["+v+"]]>"))
		return nil
	case ir.CommentKind:
		b.WriteString(es.paint(CommentColor, "<!--"+ir.ScalarString(n.Value)+"-->"))
		return nil
	case ir.ProcInstKind:
		if n.Name == "" {
			return fmt.Errorf("%w: processing instruction with empty target at %s", ErrSerialize, n.Path())
		}
		s := "<?" + n.Name
		if data := ir.ScalarString(n.Value); data != "" {
			s += " " + data
		}
		b.WriteString(es.paint(PIColor, s+"?>"))
		return nil
	default:
		return fmt.Errorf("%w: unknown node kind %d at %s", ErrSerialize, n.Kind, n.Path())
	}
}

func encodeElement(b *strings.Builder, el *ir.Node, es *encState, cfg *config.Config) error {
	if el.Name == "" {
		return fmt.Errorf("%w: element with empty name at %s", ErrSerialize, el.Path())
	}
	qn := el.Name
	if el.Prefix != "" && cfg.Preserve.Namespaces {
		qn = el.Prefix + ":" + el.Name
	}
	b.WriteString("<" + es.paint(TagColor, qn))
	if cfg.Preserve.Namespaces {
		for _, d := range el.NSDecls {
			name := "xmlns"
			if d.Prefix != "" {
				name += ":" + d.Prefix
			}
			b.WriteString(" " + es.paint(AttrNameColor, name) + `="` +
				es.paint(AttrValueColor, entity.Escape(d.URI)) + `"`)
		}
	}
	if cfg.Preserve.Attributes {
		for _, a := range el.Attrs {
			if a.Name == "" {
				return fmt.Errorf("%w: attribute with empty name at %s", ErrSerialize, el.Path())
			}
			b.WriteString(" " + es.paint(AttrNameColor, a.Name) + `="` +
				es.paint(AttrValueColor, entity.Escape(ir.ScalarString(a.Value))) + `"`)
		}
	}

	children := renderable(el, cfg)
	if len(children) == 0 && el.Value == nil {
		b.WriteString("/>")
		return nil
	}
	b.WriteString(">")

	switch {
	case len(children) == 0:
		// no children, has value: inline text content
		b.WriteString(es.paint(TextColor, entity.Escape(ir.ScalarString(el.Value))))
	case es.pretty && !hasCharData(el, children):
		// element children only: one child per line
		inner := *es
		inner.depth++
		for _, c := range children {
			writeIndent(b, &inner)
			if err := encodeNode(b, c, &inner, cfg); err != nil {
				return err
			}
		}
		writeIndent(b, es)
	default:
		// mixed or non-pretty content: inline concatenation, no
		// newlines, to keep significant whitespace intact
		inner := *es
		inner.pretty = false
		if el.Value != nil {
			b.WriteString(es.paint(TextColor, entity.Escape(ir.ScalarString(el.Value))))
		}
		for _, c := range children {
			if err := encodeNode(b, c, &inner, cfg); err != nil {
				return err
			}
		}
	}
	b.WriteString("</" + es.paint(TagColor, qn) + ">")
	return nil
}

// renderable filters an element's children by the preserve flags. CDATA
// sections demote to plain text when not preserved as CDATA; text nodes
// that are pure whitespace are formatting and dropped unless whitespace
// preservation is on.
func renderable(el *ir.Node, cfg *config.Config) []*ir.Node {
	res := make([]*ir.Node, 0, len(el.Children))
	for _, c := range el.Children {
		switch c.Kind {
		case ir.CommentKind:
			if !cfg.Preserve.Comments {
				continue
			}
		case ir.ProcInstKind:
			if !cfg.Preserve.ProcInst {
				continue
			}
		case ir.CDATAKind:
			if !cfg.Preserve.Text {
				continue
			}
			if !cfg.Preserve.CDATA {
				c = ir.NewText(ir.ScalarString(c.Value))
			}
		case ir.TextKind:
			if !cfg.Preserve.Text {
				continue
			}
			if strings.TrimSpace(ir.ScalarString(c.Value)) == "" && !cfg.Preserve.Whitespace {
				continue
			}
		}
		res = append(res, c)
	}
	return res
}

func hasCharData(el *ir.Node, children []*ir.Node) bool {
	if el.Value != nil {
		return true
	}
	for _, c := range children {
		if c.Kind.IsCharData() {
			return true
		}
	}
	return false
}

func writeIndent(b *strings.Builder, es *encState) {
	b.WriteString("\n")
	b.WriteString(strings.Repeat(strings.Repeat(" ", es.indent), es.depth))
}
