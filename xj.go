// Package xj converts between XML and JSON documents through a shared
// node tree. The subpackages carry the machinery: xmlcodec and
// jsoncodec move between text and the tree in package ir, transform
// rewrites trees, and config selects the mapping strategies. This
// package ties them together for the common whole-document cases.
package xj

import (
	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/format"
	"github.com/xj-format/go-xj/ir"
	"github.com/xj-format/go-xj/jsoncodec"
	"github.com/xj-format/go-xj/transform"
	"github.com/xj-format/go-xj/xmlcodec"
)

// XMLToJSON parses XML text, applies the rules in order, and renders
// JSON per the configuration. A nil config means defaults.
func XMLToJSON(d []byte, c *config.Config, rules ...transform.Transform) ([]byte, error) {
	c = config.OrDefault(c)
	doc, err := xmlcodec.Parse(d, c)
	if err != nil {
		return nil, err
	}
	doc = transform.Apply(doc, rules, format.JSONFormat, c)
	if doc == nil {
		// a rule removed the root
		return nil, nil
	}
	return jsoncodec.EncodeBytes(doc, c)
}

// JSONToXML parses JSON text, applies the rules in order, and renders
// XML per the configuration. A nil config means defaults.
func JSONToXML(d []byte, c *config.Config, rules ...transform.Transform) ([]byte, error) {
	c = config.OrDefault(c)
	doc, err := jsoncodec.DecodeBytes(d, c)
	if err != nil {
		return nil, err
	}
	doc = transform.Apply(doc, rules, format.XMLFormat, c)
	if doc == nil {
		return nil, nil
	}
	s, err := xmlcodec.EncodeString(doc, c)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Tree parses either format into a node tree.
func Tree(d []byte, f format.Format, c *config.Config) (*ir.Node, error) {
	if f.IsXML() {
		return xmlcodec.Parse(d, c)
	}
	return jsoncodec.DecodeBytes(d, c)
}
