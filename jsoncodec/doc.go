// Package jsoncodec converts between JSON documents and the node tree
// in package ir.
//
// Two modes are available, selected by the configuration. Natural mode
// produces the JSON a hand-written API would: attributes fold into the
// object per the attribute strategy, element text becomes the object's
// scalar value or a reserved property, and repeated siblings become
// arrays. Natural mode is lossy; comments and processing instructions
// are dropped, a one-element array collapses on the way back, and a
// root element dropped by the "remove" empty strategy still encodes as
// {"name": null}, since a JSON document cannot be empty the way a
// member can be absent.
// High-fidelity mode spends reserved property names (#children, #attrs
// and friends) to carry the full node structure and round-trips
// exactly.
//
// JSON object member order is significant in both directions, so the
// codec works on its own ordered Object type rather than
// map[string]any.
package jsoncodec
