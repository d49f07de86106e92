// Package xmlcodec maps XML text to and from ir.Node trees.
//
// # Usage
//
//	// Parse XML into a tree
//	node, err := xmlcodec.Parse([]byte(`<user id="7"><name>Ann</name></user>`), nil)
//	if err != nil {
//	    return err
//	}
//
//	// Serialize a tree back to XML
//	text, err := xmlcodec.EncodeString(node, nil)
//
// Parsing and serialization are both driven by a config.Config: the
// preserve flags gate which constructs survive, and the formatting
// fields control pretty-printing, indent width and the XML declaration.
// A nil config means config.Default().
//
// # Related Packages
//
//   - github.com/xj-format/go-xj/ir - the tree representation
//   - github.com/xj-format/go-xj/jsoncodec - JSON values to/from IR
//   - github.com/xj-format/go-xj/entity - entity escaping
package xmlcodec
