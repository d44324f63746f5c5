// source.go: binding parsed syntax to a Registry.
//
// DeclareSource, ConstructSource and EvalMatchSource are the textual
// counterparts of Declare, Construct and NewMatchSet/Eval. They go through
// exactly the same validation paths: a non-exhaustive source-level match
// fails when the match set is built, never mid-evaluation.
package sumtype

import "fmt"

// DeclareSource parses an enum declaration and registers it.
func (r *Registry) DeclareSource(src string) (*SumTypeDecl, error) {
	d, err := ParseDecl(src)
	if err != nil {
		return nil, err
	}
	return r.Declare(d.Name, d.Param != "", d.Variants...)
}

// ConstructSource parses a construction expression and builds the value.
// Name references are resolved from env; pass nil when the expression is
// self-contained.
func (r *Registry) ConstructSource(src string, env map[string]*Value) (*Value, error) {
	c, err := ParseValue(src)
	if err != nil {
		return nil, err
	}
	res, err := r.evalExpr(c, valueEnv(env))
	if err != nil {
		return nil, err
	}
	v, ok := res.(*Value)
	if !ok {
		// ParseValue only yields constructions, so this cannot trigger.
		return nil, fmt.Errorf("sumtype: %q did not produce a value", src)
	}
	return v, nil
}

// EvalMatchSource parses a match expression, validates its arms against the
// scrutinee's declaration and evaluates it. Arm bodies are literals, binder
// references, env references, or constructions over those; binders shadow
// env names.
func (r *Registry) EvalMatchSource(src string, env map[string]*Value) (any, error) {
	m, err := ParseMatch(src)
	if err != nil {
		return nil, err
	}

	outer := valueEnv(env)
	scrutinee, err := r.evalExpr(m.Scrutinee, outer)
	if err != nil {
		return nil, err
	}
	value, ok := scrutinee.(*Value)
	if !ok {
		return nil, fmt.Errorf("sumtype: match scrutinee is not a sum-typed value")
	}

	arms := make([]Arm, len(m.Arms))
	for i, a := range m.Arms {
		arms[i] = r.bindArm(a, outer)
	}
	ms, err := NewMatchSet(value.decl, arms...)
	if err != nil {
		return nil, err
	}
	return ms.Eval(value)
}

// bindArm turns a parsed arm into an engine Arm whose handler evaluates the
// body with the binders bound positionally over the outer environment.
func (r *Registry) bindArm(a ArmAST, outer map[string]any) Arm {
	body := a.Body
	binders := a.Binders
	handler := func(bound []any) (any, error) {
		scope := outer
		if len(binders) > 0 {
			scope = make(map[string]any, len(outer)+len(binders))
			for k, v := range outer {
				scope[k] = v
			}
			for i, name := range binders {
				scope[name] = bound[i]
			}
		}
		return r.evalExpr(body, scope)
	}
	if a.Wildcard {
		return Wildcard(handler)
	}
	return Case(a.Variant, binders, handler)
}

func (r *Registry) evalExpr(e ExprAST, scope map[string]any) (any, error) {
	switch x := e.(type) {
	case LitExpr:
		return x.Val, nil
	case RefExpr:
		v, ok := scope[x.Name]
		if !ok {
			return nil, fmt.Errorf("sumtype: unbound name %q", x.Name)
		}
		return v, nil
	case *CtorExpr:
		decl, err := r.Lookup(x.TypeName)
		if err != nil {
			return nil, err
		}
		args := make([]any, len(x.Args))
		for i, a := range x.Args {
			args[i], err = r.evalExpr(a, scope)
			if err != nil {
				return nil, err
			}
		}
		if x.HasArg {
			inst, err := decl.Instantiate(x.TypeArg)
			if err != nil {
				return nil, err
			}
			return inst.Construct(x.Variant, args...)
		}
		return decl.Construct(x.Variant, args...)
	}
	return nil, fmt.Errorf("sumtype: unknown expression node %T", e)
}

func valueEnv(env map[string]*Value) map[string]any {
	out := make(map[string]any, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}
