package jsoncodec

import (
	"fmt"

	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/debug"
	"github.com/xj-format/go-xj/ir"
)

// Decode builds a node tree from a decoded JSON value. The value is an
// *Object, []any or scalar as produced by ParseValue; plain
// map[string]any input is normalized first, with keys in sorted order.
func Decode(v any, cfg *config.Config) (*ir.Node, error) {
	cfg = config.OrDefault(cfg)
	v = normalizeValue(v)
	if cfg.HighFidelity {
		return decodeFidelity(v, cfg)
	}
	return decodeNatural(v, cfg)
}

// DecodeBytes parses JSON text and builds a node tree from it.
func DecodeBytes(data []byte, cfg *config.Config) (*ir.Node, error) {
	v, err := ParseValue(data)
	if err != nil {
		return nil, err
	}
	if debug.Decode() {
		debug.Logf("decode: %d bytes of json\n", len(data))
	}
	return Decode(v, cfg)
}

// Encode renders a node tree as a JSON value: an *Object for elements,
// a scalar for bare text nodes. Comments and processing instructions at
// the root have no JSON shape in natural mode and encode as null.
func Encode(n *ir.Node, cfg *config.Config) any {
	cfg = config.OrDefault(cfg)
	if cfg.HighFidelity {
		return encodeFidelity(n, cfg)
	}
	return encodeNatural(n, cfg)
}

// EncodeBytes renders a node tree as JSON text, honoring the Pretty and
// Indent settings.
func EncodeBytes(n *ir.Node, cfg *config.Config) ([]byte, error) {
	cfg = config.OrDefault(cfg)
	v := Encode(n, cfg)
	data, err := MarshalValue(v, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return data, nil
}
