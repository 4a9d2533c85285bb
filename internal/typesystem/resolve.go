package typesystem

// OutcomeKind classifies the result of conditional type resolution.
type OutcomeKind int

const (
	// OutcomeResolved means the condition was decided and a concrete branch
	// (recursively instantiated) was produced.
	OutcomeResolved OutcomeKind = iota
	// OutcomeDeferred means the outcome depends on an instantiation not yet
	// known; the result is a residual conditional term to be re-evaluated
	// once more substitution information is available.
	OutcomeDeferred
)

func (k OutcomeKind) String() string {
	if k == OutcomeDeferred {
		return "deferred"
	}
	return "resolved"
}

// ResolutionOutcome is the result of ResolveKind: the evaluated term plus
// whether any residual conditional remains in it.
type ResolutionOutcome struct {
	Kind OutcomeKind
	Type Type
}

// ResolveKind evaluates a conditional under the mapper and reports whether
// the result is fully decided or still carries deferred conditional terms.
// Exposed for diagnostic tooling that wants to distinguish "deferred" from
// "resolved" alongside the instantiated value.
func (e *Engine) ResolveKind(c TCond, m TypeMapper) (ResolutionOutcome, error) {
	t, err := e.Instantiate(c, m)
	if err != nil {
		return ResolutionOutcome{}, err
	}
	kind := OutcomeResolved
	if ContainsConditional(t) {
		kind = OutcomeDeferred
	}
	return ResolutionOutcome{Kind: kind, Type: t}, nil
}

// resolveConditional classifies the condition for a post-distribution check
// type via two independent oracle invocations:
//
//   - the permissive test relates the check and extends types with every
//     still-free parameter replaced by the wildcard marker. If even this
//     most generous view fails, no future instantiation can satisfy the
//     condition: resolved false.
//   - the restrictive test erases each free parameter of the check type to
//     its declared constraint and relates against the extends type as-is
//     (a free parameter in target position relates only to itself, never or
//     wildcard). If this worst-case view holds, the condition holds for
//     every future instantiation: resolved true.
//
// Permissive-true/restrictive-false is exactly the deferred region; the two
// tests are never merged or short-circuited. Permissive-false with
// restrictive-true violates monotonicity and is reported as an internal
// invariant error.
func (e *Engine) resolveConditional(c TCond, check Type, m TypeMapper, depth int) (Type, error) {
	extendsResolved, err := e.instantiate(c.Extends, m, depth+1)
	if err != nil {
		return nil, err
	}

	permissive := e.oracle.IsRelated(wildcardTerm(check), wildcardTerm(extendsResolved), nil)

	inf := NewInferenceContext()
	restrictiveCheck, err := e.restrictiveTerm(check, nil)
	if err != nil {
		return nil, err
	}
	restrictive := e.oracle.IsRelated(restrictiveCheck, extendsResolved, inf)

	switch {
	case !permissive && restrictive:
		return nil, NewOracleInconsistencyError(check, extendsResolved)

	case !permissive:
		return e.instantiate(c.False, m, depth+1)

	case restrictive:
		mt := inf.ExtendMapper(m)
		// Inferred parameters the oracle never reached collapse to never so
		// they cannot leak free into the resolved branch.
		for _, p := range inferredParams(c.Extends) {
			if _, ok := inf.Binding(p); !ok {
				mt = Extend(mt, p, Never)
			}
		}
		return e.instantiate(c.True, mt, depth+1)

	default:
		return e.deferConditional(c, check, extendsResolved, m, depth)
	}
}

// deferConditional reconstructs a residual conditional term for later
// re-evaluation. The distribution flag is carried over unchanged; it was
// fixed at declaration and is never recomputed from the partially
// substituted shape. For a distributive term whose check parameter is still
// free, the check is exactly that bare parameter, so the naked-parameter
// shape future distribution depends on is preserved.
//
// The mapper is applied to the branch terms through the normal pipeline, so
// parameters the caller already bound do not leak unbound into the residual;
// nested conditionals that cannot be decided yet defer again rather than
// being forced.
func (e *Engine) deferConditional(c TCond, check, extendsResolved Type, m TypeMapper, depth int) (Type, error) {
	trueBranch, err := e.instantiate(c.True, m, depth+1)
	if err != nil {
		return nil, err
	}
	falseBranch, err := e.instantiate(c.False, m, depth+1)
	if err != nil {
		return nil, err
	}
	return remakeConditional(c, check, extendsResolved, trueBranch, falseBranch), nil
}

// wildcardTerm replaces every parameter in t with the wildcard marker.
// Conditionals are rebuilt structurally here: the synthetic term exists only
// for the duration of one oracle call and must not be re-resolved.
func wildcardTerm(t Type) Type {
	switch t := t.(type) {
	case TParam:
		return Wildcard
	case TUnion:
		members := make([]Type, len(t.Types))
		for i, m := range t.Types {
			members[i] = wildcardTerm(m)
		}
		return NewUnion(members)
	case TTuple:
		elements := make([]Type, len(t.Elements))
		for i, el := range t.Elements {
			elements[i] = wildcardTerm(el)
		}
		return TTuple{Elements: elements}
	case TCond:
		return remakeConditional(t,
			wildcardTerm(t.Check), wildcardTerm(t.Extends),
			wildcardTerm(t.True), wildcardTerm(t.False))
	default:
		return t
	}
}

// restrictiveTerm replaces every free parameter in t with its declared
// constraint, erasing any narrower information. Constraints may themselves
// mention parameters, so erasure recurses; a constraint cycle falls back to
// the top type. Inferred parameters have no declared constraint and erase to
// the wildcard marker.
func (e *Engine) restrictiveTerm(t Type, visited map[ParamID]bool) (Type, error) {
	switch t := t.(type) {
	case TParam:
		if t.Inferred {
			return Wildcard, nil
		}
		if visited[t.ID] {
			return Unknown, nil
		}
		constraint := Type(Unknown)
		if e.constraints != nil {
			ctr, ok := e.constraints.ConstraintOf(t)
			if !ok {
				return nil, NewMalformedTermError(t)
			}
			constraint = ctr
		}
		next := make(map[ParamID]bool, len(visited)+1)
		for k, v := range visited {
			next[k] = v
		}
		next[t.ID] = true
		return e.restrictiveTerm(constraint, next)
	case TUnion:
		members := make([]Type, len(t.Types))
		for i, m := range t.Types {
			r, err := e.restrictiveTerm(m, visited)
			if err != nil {
				return nil, err
			}
			members[i] = r
		}
		return NewUnion(members), nil
	case TTuple:
		elements := make([]Type, len(t.Elements))
		for i, el := range t.Elements {
			r, err := e.restrictiveTerm(el, visited)
			if err != nil {
				return nil, err
			}
			elements[i] = r
		}
		return TTuple{Elements: elements}, nil
	case TCond:
		check, err := e.restrictiveTerm(t.Check, visited)
		if err != nil {
			return nil, err
		}
		extends, err := e.restrictiveTerm(t.Extends, visited)
		if err != nil {
			return nil, err
		}
		trueBranch, err := e.restrictiveTerm(t.True, visited)
		if err != nil {
			return nil, err
		}
		falseBranch, err := e.restrictiveTerm(t.False, visited)
		if err != nil {
			return nil, err
		}
		return remakeConditional(t, check, extends, trueBranch, falseBranch), nil
	default:
		return t, nil
	}
}

// inferredParams collects the inferred parameters occurring in t, in
// left-to-right order.
func inferredParams(t Type) []TParam {
	var params []TParam
	for _, p := range collectParams(t, nil) {
		if p.Inferred {
			params = append(params, p)
		}
	}
	return params
}

func collectParams(t Type, acc []TParam) []TParam {
	switch t := t.(type) {
	case TParam:
		acc = append(acc, t)
	case TUnion:
		for _, m := range t.Types {
			acc = collectParams(m, acc)
		}
	case TTuple:
		for _, el := range t.Elements {
			acc = collectParams(el, acc)
		}
	case TCond:
		acc = collectParams(t.Check, acc)
		acc = collectParams(t.Extends, acc)
		acc = collectParams(t.True, acc)
		acc = collectParams(t.False, acc)
	}
	return acc
}
