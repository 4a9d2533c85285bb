package typesystem

// instantiateConditional decides whether instantiating a conditional term
// requires union decomposition, then hands off to resolution.
//
// A distributive conditional has a bare parameter as its check type. Looking
// that parameter up under the mapper yields the distribution value:
//
//   - never short-circuits to never before any branch is evaluated and
//     before any oracle call (distribution over the empty set);
//   - a union distributes member-wise, each member evaluated under an
//     independently extended mapper, results re-unioned;
//   - anything else resolves directly with the mapper unchanged.
//
// Unions are normalized on construction, so a union value always has at
// least two members and contains no never member; only a check value that is
// exactly never triggers the short-circuit.
//
// A residual term can carry the distribution flag with a check that is no
// longer a bare parameter: deferral substitutes the check but preserves the
// flag. Distribution already happened when that parameter was bound, so such
// a term resolves directly.
func (e *Engine) instantiateConditional(c TCond, m TypeMapper, depth int) (Type, error) {
	if depth > e.maxDepth {
		return nil, NewRecursionLimitError(e.maxDepth, c)
	}

	p, bare := c.Check.(TParam)
	if !c.Distributive || !bare {
		check, err := e.instantiate(c.Check, m, depth+1)
		if err != nil {
			return nil, err
		}
		return e.resolveConditional(c, check, m, depth)
	}

	v := m.Map(p)

	if IsNever(v) {
		return Never, nil
	}

	if u, ok := v.(TUnion); ok {
		results := make([]Type, 0, len(u.Types))
		for _, member := range u.Types {
			r, err := e.instantiateConditional(c, Extend(m, p, member), depth+1)
			if err != nil {
				return nil, err
			}
			results = append(results, r)
		}
		return NewUnion(results), nil
	}

	return e.resolveConditional(c, v, m, depth)
}
