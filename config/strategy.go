package config

import (
	"errors"
	"fmt"
)

var ErrBadStrategy = errors.New("bad strategy")

// AttributeStrategy selects how JSON object keys become XML attributes.
type AttributeStrategy int

const (
	// AttrProperty: one designated key supplies the attribute map
	// wholesale.
	AttrProperty AttributeStrategy = iota
	// AttrPrefix: any key starting with the configured prefix becomes
	// an attribute, prefix stripped.
	AttrPrefix
	// AttrMerge: any remaining scalar-valued key is demoted to an
	// attribute; only structured keys become children.
	AttrMerge
)

// TextStrategy selects where element text lives in JSON.
type TextStrategy int

const (
	TextDirect TextStrategy = iota
	TextProperty
)

// ArrayStrategy selects the XML shape of JSON arrays.
type ArrayStrategy int

const (
	// ArrayMultiple: array items become repeated sibling elements named
	// by the array's key; repeated sibling names collapse back into one
	// array.
	ArrayMultiple ArrayStrategy = iota
	// ArrayWrapped: the array's key becomes a wrapper element whose
	// item children are named per the item-name table.
	ArrayWrapped
)

// EmptyStrategy selects the JSON shape of an element with no text and no
// children.
type EmptyStrategy int

const (
	EmptyObject EmptyStrategy = iota
	EmptyNull
	EmptyString
	EmptyRemove
)

func (s AttributeStrategy) String() string { return attrNames[s] }
func (s TextStrategy) String() string      { return textNames[s] }
func (s ArrayStrategy) String() string     { return arrayNames[s] }
func (s EmptyStrategy) String() string     { return emptyNames[s] }

var attrNames = map[AttributeStrategy]string{
	AttrProperty: "property",
	AttrPrefix:   "prefix",
	AttrMerge:    "merge",
}

var textNames = map[TextStrategy]string{
	TextDirect:   "direct",
	TextProperty: "property",
}

var arrayNames = map[ArrayStrategy]string{
	ArrayMultiple: "multiple",
	ArrayWrapped:  "wrapped",
}

var emptyNames = map[EmptyStrategy]string{
	EmptyObject: "object",
	EmptyNull:   "null",
	EmptyString: "string",
	EmptyRemove: "remove",
}

func (s AttributeStrategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s TextStrategy) MarshalText() ([]byte, error)      { return []byte(s.String()), nil }
func (s ArrayStrategy) MarshalText() ([]byte, error)     { return []byte(s.String()), nil }
func (s EmptyStrategy) MarshalText() ([]byte, error)     { return []byte(s.String()), nil }

func (s *AttributeStrategy) UnmarshalText(d []byte) error {
	return unmarshalStrategy(s, attrNames, d)
}

func (s *TextStrategy) UnmarshalText(d []byte) error {
	return unmarshalStrategy(s, textNames, d)
}

func (s *ArrayStrategy) UnmarshalText(d []byte) error {
	return unmarshalStrategy(s, arrayNames, d)
}

func (s *EmptyStrategy) UnmarshalText(d []byte) error {
	return unmarshalStrategy(s, emptyNames, d)
}

func unmarshalStrategy[T comparable](dst *T, names map[T]string, d []byte) error {
	for v, name := range names {
		if name == string(d) {
			*dst = v
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrBadStrategy, d)
}
