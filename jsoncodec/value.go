package jsoncodec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xj-format/go-xj/config"
)

// JSON values are represented as a closed set: nil, bool, json.Number,
// string, []any and *Object. Object preserves member insertion order,
// which both codec modes rely on.

type Object struct {
	Members []Member
}

type Member struct {
	Key   string
	Value any
}

func NewObject(members ...Member) *Object {
	return &Object{Members: members}
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Members)
}

func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	for i := range o.Members {
		if o.Members[i].Key == key {
			return o.Members[i].Value, true
		}
	}
	return nil, false
}

// Set sets key, replacing an existing member in place or appending a new
// one at the end.
func (o *Object) Set(key string, v any) *Object {
	for i := range o.Members {
		if o.Members[i].Key == key {
			o.Members[i].Value = v
			return o
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: v})
	return o
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i := range o.Members {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(o.Members[i].Key)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		v, err := json.Marshal(o.Members[i].Value)
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (o *Object) UnmarshalJSON(d []byte) error {
	v, err := ParseValue(d)
	if err != nil {
		return err
	}
	obj, ok := v.(*Object)
	if !ok {
		return fmt.Errorf("%w: not an object", ErrParse)
	}
	*o = *obj
	return nil
}

// ParseValue reads a JSON document into the ordered value representation
// with numbers kept as json.Number.
func ParseValue(d []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	v, err := readValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after value", ErrParse)
	}
	return v, nil
}

func readValue(dec *json.Decoder) (any, error) {
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := t.(json.Delim)
	if !ok {
		return t, nil
	}
	switch delim {
	case '{':
		obj := &Object{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v", kt)
			}
			v, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, Member{Key: key, Value: v})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// MarshalValue renders a JSON value as text, honoring the formatting
// configuration.
func MarshalValue(v any, cfg *config.Config) ([]byte, error) {
	cfg = config.OrDefault(cfg)
	if !cfg.Pretty {
		return json.Marshal(v)
	}
	indent := cfg.Indent
	if indent <= 0 {
		indent = 2
	}
	return json.MarshalIndent(v, "", strings.Repeat(" ", indent))
}

// normalizeValue maps values produced by plain encoding/json decoding
// (map[string]any, []any) into the ordered representation. Member order
// of a Go map is unrecoverable, so keys are sorted for determinism.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := &Object{Members: make([]Member, 0, len(keys))}
		for _, k := range keys {
			obj.Members = append(obj.Members, Member{Key: k, Value: normalizeValue(t[k])})
		}
		return obj
	case []any:
		res := make([]any, len(t))
		for i := range t {
			res[i] = normalizeValue(t[i])
		}
		return res
	case *Object:
		for i := range t.Members {
			t.Members[i].Value = normalizeValue(t.Members[i].Value)
		}
		return t
	default:
		return v
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, bool, string, json.Number, float64, int, int64:
		return true
	default:
		return false
	}
}
