package typeexpr

import (
	"fmt"

	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/symbol"
)

// Resolver maps expressions onto schema types.
// The zero value uses schema.MaxDepth.
type Resolver struct {
	MaxDepth int
}

func (r Resolver) maxDepth() int {
	if r.MaxDepth <= 0 || r.MaxDepth > schema.MaxDepth {
		return schema.MaxDepth
	}
	return r.MaxDepth
}

// Resolve maps e onto a TypeDef. Errors have phase generate.
func (r Resolver) Resolve(e Expr) (schema.TypeDef, error) {
	return r.resolve(e, 1)
}

// ResolveString parses and resolves text in one step.
func (r Resolver) ResolveString(text string) (schema.TypeDef, error) {
	e, err := Parse(text)
	if err != nil {
		return schema.TypeDef{}, err
	}
	return r.Resolve(e)
}

func (r Resolver) resolve(e Expr, depth int) (schema.TypeDef, error) {
	if limit := r.maxDepth(); depth > limit {
		err := errors.DepthExceeded(errors.PhaseGenerate, nil, limit)
		err.TypeName = e.String()
		return schema.TypeDef{}, err
	}

	if e.Tuple {
		elems := make([]schema.TypeDef, 0, len(e.Args))
		for _, a := range e.Args {
			t, err := r.resolve(a, depth+1)
			if err != nil {
				return schema.TypeDef{}, err
			}
			elems = append(elems, t)
		}
		return schema.TypeDef{Kind: schema.KindTuple, Elems: elems}, nil
	}

	if kind, ok := schema.LookupScalar(e.Name); ok {
		if len(e.Args) != 0 {
			return schema.TypeDef{}, unsupported(e, e.Name+" takes no type arguments")
		}
		return schema.Scalar(kind), nil
	}

	switch e.Name {
	case "Option", "Vec", "Set":
		if len(e.Args) != 1 {
			return schema.TypeDef{}, unsupported(e, fmt.Sprintf("%s takes 1 type argument, got %d", e.Name, len(e.Args)))
		}
		elem, err := r.resolve(e.Args[0], depth+1)
		if err != nil {
			return schema.TypeDef{}, err
		}
		switch e.Name {
		case "Option":
			return schema.Option(elem), nil
		case "Vec":
			return schema.Vec(elem), nil
		default:
			return schema.Set(elem), nil
		}
	case "Map":
		if len(e.Args) != 2 {
			return schema.TypeDef{}, unsupported(e, fmt.Sprintf("Map takes 2 type arguments, got %d", len(e.Args)))
		}
		key, err := r.resolve(e.Args[0], depth+1)
		if err != nil {
			return schema.TypeDef{}, err
		}
		value, err := r.resolve(e.Args[1], depth+1)
		if err != nil {
			return schema.TypeDef{}, err
		}
		return schema.Map(key, value), nil
	}

	if len(e.Args) != 0 {
		return schema.TypeDef{}, unsupported(e, "unknown generic type "+e.Name)
	}
	if err := symbol.CheckName(e.Name, schema.MaxNameLen); err != nil {
		if ce, ok := err.(*errors.Error); ok {
			ce.TypeName = e.String()
		}
		return schema.TypeDef{}, err
	}
	return schema.UDT(e.Name), nil
}

func unsupported(e Expr, detail string) *errors.Error {
	err := errors.UnsupportedType(errors.PhaseGenerate, nil, detail)
	err.TypeName = e.String()
	return err
}
