// Package rules provides ready-made Transform implementations for the
// common rewrites: renaming and removing nodes, regular-expression
// substitution, number normalization and expression-driven rewrites.
// Each constructor validates its parameters and returns
// transform.ErrTransform on bad ones; the returned rules themselves
// never fail construction-time checks again during application.
package rules

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/xj-format/go-xj/ir"
	"github.com/xj-format/go-xj/transform"
)

// Rename renames elements called from to to. Attributes keep their
// names; renaming applies to element positions only.
func Rename(from, to string) (transform.Transform, error) {
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: rename needs non-empty from and to", transform.ErrTransform)
	}
	return transform.Func{
		On: transform.Element,
		F: func(v any, ctx *transform.Context) (any, bool, error) {
			if v == from {
				return to, true, nil
			}
			return v, true, nil
		},
	}, nil
}

// Remove drops every position on the given targets whose name matches.
// For attributes the attribute name is matched, for elements the
// element name, for processing instructions the target.
func Remove(on transform.Target, name string) (transform.Transform, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: remove needs a name", transform.ErrTransform)
	}
	return transform.Func{
		On: on,
		F: func(v any, ctx *transform.Context) (any, bool, error) {
			if ctx.Name == name {
				return nil, false, nil
			}
			return v, true, nil
		},
	}, nil
}

// Regexp rewrites string values on the given targets by pattern
// substitution. The replacement may use $1-style group references.
func Regexp(on transform.Target, pattern, replacement string) (transform.Transform, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transform.ErrTransform, err)
	}
	return transform.Func{
		On: on,
		F: func(v any, ctx *transform.Context) (any, bool, error) {
			if s, ok := v.(string); ok {
				return re.ReplaceAllString(s, replacement), true, nil
			}
			return v, true, nil
		},
	}, nil
}

// Numbers normalizes numeric values for the direction the tree is
// headed: strings that parse as numbers become json.Number on the way
// to JSON, and numbers become their string rendering on the way to XML.
func Numbers(on transform.Target) transform.Transform {
	return transform.Func{
		On: on,
		F: func(v any, ctx *transform.Context) (any, bool, error) {
			if ctx.Format.IsJSON() {
				s, ok := v.(string)
				if !ok || !numberPat.MatchString(s) {
					return v, true, nil
				}
				return json.Number(s), true, nil
			}
			switch v.(type) {
			case json.Number, int64, float64:
				return ir.ScalarString(v), true, nil
			}
			return v, true, nil
		},
	}
}

var numberPat = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
