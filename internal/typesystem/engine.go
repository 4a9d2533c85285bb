package typesystem

import "github.com/veltlang/velt/internal/config"

// Engine evaluates type terms under substitution. It is a pure, synchronous
// recursive evaluator: no shared mutable state, safe for concurrent use from
// independent call sites.
//
// The relation oracle and constraint lookup are supplied by the surrounding
// checker; the engine itself only rewrites terms.
type Engine struct {
	oracle      Relater
	constraints ConstraintSource
	maxDepth    int
}

// NewEngine builds an engine around the given oracle and constraint source.
// maxDepth is the externally supplied instantiation depth budget; values
// <= 0 select the default.
func NewEngine(oracle Relater, constraints ConstraintSource, maxDepth int) *Engine {
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}
	return &Engine{oracle: oracle, constraints: constraints, maxDepth: maxDepth}
}

// Instantiate applies the mapper to a term. For parameters it defers to the
// mapper; unions and tuples are mapped structurally and reconstructed;
// atoms and never pass through. A conditional is not a plain structural
// container: substitution can trigger union splitting, short-circuiting, or
// branch selection, so it is routed through the distribution and resolution
// pipeline instead.
func (e *Engine) Instantiate(t Type, m TypeMapper) (Type, error) {
	return e.instantiate(t, m, 0)
}

func (e *Engine) instantiate(t Type, m TypeMapper, depth int) (Type, error) {
	if depth > e.maxDepth {
		return nil, NewRecursionLimitError(e.maxDepth, t)
	}

	switch t := t.(type) {
	case TParam:
		if freeUnder(m, t) {
			if err := e.checkInScope(t); err != nil {
				return nil, err
			}
			return t, nil
		}
		return m.Map(t), nil

	case TUnion:
		members := make([]Type, 0, len(t.Types))
		for _, member := range t.Types {
			r, err := e.instantiate(member, m, depth+1)
			if err != nil {
				return nil, err
			}
			members = append(members, r)
		}
		// Substitution can introduce nested unions or never members;
		// normalization flattens and collapses them.
		return NewUnion(members), nil

	case TTuple:
		elements := make([]Type, len(t.Elements))
		for i, el := range t.Elements {
			r, err := e.instantiate(el, m, depth+1)
			if err != nil {
				return nil, err
			}
			elements[i] = r
		}
		return TTuple{Elements: elements}, nil

	case TCond:
		return e.instantiateConditional(t, m, depth+1)

	default:
		// Atoms, never and the wildcard marker are fixed points.
		return t, nil
	}
}

// checkInScope flags a free parameter that has no known declaration site.
// Inferred parameters are bound by their enclosing extends clause and are
// always in scope. With no constraint source the engine has no scope
// information and accepts every parameter.
func (e *Engine) checkInScope(p TParam) error {
	if p.Inferred || e.constraints == nil {
		return nil
	}
	if _, ok := e.constraints.ConstraintOf(p); !ok {
		return NewMalformedTermError(p)
	}
	return nil
}
