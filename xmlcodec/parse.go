package xmlcodec

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/debug"
	"github.com/xj-format/go-xj/entity"
	"github.com/xj-format/go-xj/ir"
)

// Parse reads an XML document into a tree. Raw ampersands are repaired
// first (see entity.Preprocess); anything else malformed surfaces as an
// error wrapping ErrParse with the offending source fragment.
func Parse(d []byte, cfg *config.Config) (*ir.Node, error) {
	return ParseString(string(d), cfg)
}

func ParseString(s string, cfg *config.Config) (*ir.Node, error) {
	cfg = config.OrDefault(cfg)
	src := entity.Preprocess(s)
	dec := xml.NewDecoder(strings.NewReader(src))

	var root, cur *ir.Node
	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v (near %q)", ErrParse, err, excerpt(src, int(dec.InputOffset())))
		}
		end := dec.InputOffset()

		switch t := tok.(type) {
		case xml.StartElement:
			el := ir.NewElement(t.Name.Local)
			if cfg.Preserve.Namespaces {
				for _, a := range t.Attr {
					switch {
					case a.Name.Space == "xmlns":
						el.SetNSDecl(a.Name.Local, a.Value)
					case a.Name.Space == "" && a.Name.Local == "xmlns":
						el.SetNSDecl("", a.Value)
					}
				}
			}
			switch {
			case cur != nil:
				cur.AddChild(el)
			case root == nil:
				root = el
			default:
				return nil, fmt.Errorf("%w: multiple root elements (near %q)", ErrParse, excerpt(src, int(start)))
			}
			if cfg.Preserve.Namespaces {
				resolveName(el, t.Name.Space)
			}
			if cfg.Preserve.Attributes {
				for _, a := range t.Attr {
					if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
						continue
					}
					el.SetAttr(attrName(el, a.Name, cfg), a.Value)
				}
			}
			cur = el

		case xml.EndElement:
			collapseText(cur)
			cur = cur.Parent

		case xml.CharData:
			if cur == nil {
				continue
			}
			text := string(t)
			if strings.HasPrefix(src[start:end], "<![CDATA[") && cfg.Preserve.CDATA {
				cur.AddChild(ir.NewCDATA(text))
				continue
			}
			if !cfg.Preserve.Text {
				continue
			}
			if strings.TrimSpace(text) == "" && !cfg.Preserve.Whitespace {
				continue
			}
			cur.AddChild(ir.NewText(text))

		case xml.Comment:
			if cur == nil || !cfg.Preserve.Comments {
				continue
			}
			cur.AddChild(ir.NewComment(string(t)))

		case xml.ProcInst:
			// the XML declaration is formatting, not content
			if t.Target == "xml" {
				continue
			}
			if cur == nil || !cfg.Preserve.ProcInst {
				if debug.Parse() && cur == nil {
					debug.Logf("dropping top-level processing instruction %q\n", t.Target)
				}
				continue
			}
			cur.AddChild(ir.NewProcInst(t.Target, string(t.Inst)))

		case xml.Directive:
			// DOCTYPE and friends are out of scope
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	return root, nil
}

// resolveName fills in Prefix and Namespace from the decoder's resolved
// name space. encoding/xml reports a URI for declared prefixes and the
// bare prefix for undeclared ones; the prefix itself is recovered by a
// reverse lookup against the in-scope declarations.
func resolveName(el *ir.Node, space string) {
	if space == "" {
		return
	}
	if p, ok := el.LookupPrefix(space); ok {
		el.Prefix = p
		el.Namespace = space
		return
	}
	if looksLikeURI(space) {
		el.Namespace = space
		return
	}
	el.Prefix = space
}

func attrName(el *ir.Node, name xml.Name, cfg *config.Config) string {
	if name.Space == "" || !cfg.Preserve.Namespaces {
		return name.Local
	}
	if p, ok := el.LookupPrefix(name.Space); ok && p != "" {
		return p + ":" + name.Local
	}
	if !looksLikeURI(name.Space) {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

// looksLikeURI distinguishes a namespace URI from an undeclared prefix:
// prefixes cannot contain ':' or '/'.
func looksLikeURI(s string) bool {
	return strings.ContainsAny(s, ":/")
}

// collapseText folds an element whose entire content is one text node
// into a leaf carrying that text as its value.
func collapseText(el *ir.Node) {
	if el == nil || len(el.Children) != 1 || el.Value != nil {
		return
	}
	c := el.Children[0]
	if c.Kind != ir.TextKind {
		return
	}
	el.Value = c.Value
	el.RemoveChild(c)
}

func excerpt(src string, off int) string {
	lo := off - 10
	if lo < 0 {
		lo = 0
	}
	hi := lo + 40
	if hi > len(src) {
		hi = len(src)
	}
	return src[lo:hi]
}
