package ir

import (
	"bytes"
	"encoding/json"
)

// The IR is itself representable in JSON, so trees can be logged,
// diffed and exchanged in contexts without codec support. This is
// distinct from the jsoncodec package, which maps between trees and the
// JSON documents they describe.

type nodeJSON struct {
	Kind      Kind     `json:"kind"`
	Name      string   `json:"name,omitempty"`
	Value     any      `json:"value,omitempty"`
	Prefix    string   `json:"prefix,omitempty"`
	Namespace string   `json:"namespace,omitempty"`
	Attrs     []Attr   `json:"attrs,omitempty"`
	NSDecls   []NSDecl `json:"nsdecls,omitempty"`
	Children  []*Node  `json:"children,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(&nodeJSON{
		Kind:      n.Kind,
		Name:      n.Name,
		Value:     n.Value,
		Prefix:    n.Prefix,
		Namespace: n.Namespace,
		Attrs:     n.Attrs,
		NSDecls:   n.NSDecls,
		Children:  n.Children,
	})
}

func (n *Node) UnmarshalJSON(d []byte) error {
	tmp := &nodeJSON{}
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	if err := dec.Decode(tmp); err != nil {
		return err
	}
	n.Kind = tmp.Kind
	n.Name = tmp.Name
	n.Value = tmp.Value
	n.Prefix = tmp.Prefix
	n.Namespace = tmp.Namespace
	n.Attrs = tmp.Attrs
	n.NSDecls = tmp.NSDecls
	n.Children = tmp.Children
	for i, c := range n.Children {
		c.Parent = n
		c.ParentIndex = i
	}
	return nil
}
