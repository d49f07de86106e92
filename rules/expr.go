package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/xj-format/go-xj/debug"
	"github.com/xj-format/go-xj/transform"
)

// Expr compiles an expression and applies it to every matched position.
// The expression sees the variables value, name, attribute, path and
// format; its result replaces the value, and a nil result removes the
// position.
//
//	Expr(transform.Value, `format == "xml" ? string(value) : value`)
//	Expr(transform.Attribute, `name == "secret" ? nil : value`)
func Expr(on transform.Target, src string) (transform.Transform, error) {
	prg, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transform.ErrTransform, err)
	}
	if debug.Rules() {
		debug.Logf("rules: compiled %q for %s\n", src, on)
	}
	return &exprRule{on: on, src: src, prg: prg}, nil
}

type exprRule struct {
	on  transform.Target
	src string
	prg *vm.Program
}

func (r *exprRule) Targets() transform.Target { return r.on }

func (r *exprRule) Apply(v any, ctx *transform.Context) (any, bool, error) {
	env := map[string]any{
		"value":     v,
		"name":      ctx.Name,
		"attribute": ctx.Attribute,
		"path":      ctx.Path,
		"format":    ctx.Format.String(),
	}
	res, err := expr.Run(r.prg, env)
	if err != nil {
		return nil, false, fmt.Errorf("expr %q: %w", r.src, err)
	}
	if res == nil {
		return nil, false, nil
	}
	return res, true, nil
}
