// Package config holds the conversion configuration consumed by both
// codecs and by the transform pipeline. A Config is never mutated by the
// code it is handed to; share one freely across conversions.
package config

type Config struct {
	// Attributes selects how JSON object keys become XML attributes
	// and back.
	Attributes AttributeStrategy `yaml:"attributes"`
	// AttributeProperty is the reserved key holding the attribute map
	// wholesale under AttrProperty.
	AttributeProperty string `yaml:"attributeProperty"`
	// AttributePrefix marks attribute keys under AttrPrefix; the prefix
	// is stripped from the attribute name.
	AttributePrefix string `yaml:"attributePrefix"`

	// Text selects whether element text becomes the object's scalar
	// value or the reserved TextProperty key.
	Text         TextStrategy `yaml:"text"`
	TextProperty string       `yaml:"textProperty"`

	// Arrays selects how repeated JSON array items map to repeated
	// sibling elements and back.
	Arrays ArrayStrategy `yaml:"arrays"`
	// ItemName names wrapped array items when no per-parent entry
	// exists in ItemNames.
	ItemName  string            `yaml:"itemName"`
	ItemNames map[string]string `yaml:"itemNames"`

	// Empty selects the JSON shape of an XML element with no text and
	// no children.
	Empty EmptyStrategy `yaml:"empty"`

	// HighFidelity selects the reversible JSON codec over the natural,
	// lossy one.
	HighFidelity bool `yaml:"highFidelity"`

	Preserve Preserve `yaml:"preserve"`

	// Formatting.
	Pretty         bool `yaml:"pretty"`
	Indent         int  `yaml:"indent"`
	XMLDeclaration bool `yaml:"xmlDeclaration"`

	// Reserved property names used by the high-fidelity JSON codec.
	Reserved Reserved `yaml:"reserved"`
}

// Preserve gates whether each construct round-trips or is dropped.
type Preserve struct {
	Namespaces bool `yaml:"namespaces"`
	Comments   bool `yaml:"comments"`
	CDATA      bool `yaml:"cdata"`
	ProcInst   bool `yaml:"procInst"`
	Attributes bool `yaml:"attributes"`
	Text       bool `yaml:"text"`
	// Whitespace keeps whitespace-only text nodes, which are otherwise
	// treated as formatting and dropped.
	Whitespace bool `yaml:"whitespace"`
}

// Reserved names the properties the high-fidelity codec uses to carry
// structure. Every name must be distinct.
type Reserved struct {
	Value        string `yaml:"value"`
	Children     string `yaml:"children"`
	Attributes   string `yaml:"attributes"`
	Namespace    string `yaml:"namespace"`
	Prefix       string `yaml:"prefix"`
	Declarations string `yaml:"declarations"`
	CDATA        string `yaml:"cdata"`
	Comment      string `yaml:"comment"`
	ProcInst     string `yaml:"procInst"`
}

// Default returns the default configuration: natural mode, property
// attributes under "@attrs", direct text, multiple-sibling arrays,
// empty elements as empty objects, everything preserved, pretty XML
// with 2-space indent and a declaration.
func Default() *Config {
	return &Config{
		Attributes:        AttrProperty,
		AttributeProperty: "@attrs",
		AttributePrefix:   "@",
		Text:              TextDirect,
		TextProperty:      "#text",
		Arrays:            ArrayMultiple,
		ItemName:          "item",
		Empty:             EmptyObject,
		Preserve: Preserve{
			Namespaces: true,
			Comments:   true,
			CDATA:      true,
			ProcInst:   true,
			Attributes: true,
			Text:       true,
		},
		Pretty:         true,
		Indent:         2,
		XMLDeclaration: true,
		Reserved: Reserved{
			Value:        "#value",
			Children:     "#children",
			Attributes:   "#attrs",
			Namespace:    "#ns",
			Prefix:       "#prefix",
			Declarations: "#xmlns",
			CDATA:        "#cdata",
			Comment:      "#comment",
			ProcInst:     "#pi",
		},
	}
}

// OrDefault returns c, or the default configuration when c is nil.
func OrDefault(c *Config) *Config {
	if c == nil {
		return Default()
	}
	return c
}

// Clone returns a copy of c with its own ItemNames map.
func (c *Config) Clone() *Config {
	cp := *c
	if c.ItemNames != nil {
		cp.ItemNames = make(map[string]string, len(c.ItemNames))
		for k, v := range c.ItemNames {
			cp.ItemNames[k] = v
		}
	}
	return &cp
}

// ItemNameFor returns the array item element name configured for the
// given parent key, falling back to the global ItemName.
func (c *Config) ItemNameFor(parent string) string {
	if n, ok := c.ItemNames[parent]; ok {
		return n
	}
	return c.ItemName
}

// IsReserved reports whether key is one of the high-fidelity reserved
// property names.
func (c *Config) IsReserved(key string) bool {
	r := &c.Reserved
	switch key {
	case r.Value, r.Children, r.Attributes, r.Namespace, r.Prefix,
		r.Declarations, r.CDATA, r.Comment, r.ProcInst:
		return true
	}
	return false
}
