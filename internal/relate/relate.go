// Package relate provides a reference implementation of the structural
// assignability oracle consumed by the resolution engine. It covers exactly
// the shapes the engine manipulates; a full checker would substitute its own
// relation for real object types.
package relate

import (
	"github.com/veltlang/velt/internal/typesystem"
)

// Checker decides structural assignability between type terms.
type Checker struct {
	constraints typesystem.ConstraintSource
}

// New builds a checker. constraints may be nil, in which case free source
// parameters relate through the top type.
func New(constraints typesystem.ConstraintSource) *Checker {
	return &Checker{constraints: constraints}
}

// IsRelated reports whether source is assignable to target.
//
// The wildcard marker is universally assignable in both directions. When inf
// is non-nil, inferred parameters encountered in target position capture the
// source type instead of being compared.
func (c *Checker) IsRelated(source, target typesystem.Type, inf *typesystem.InferenceContext) bool {
	return c.isRelated(source, target, inf, nil)
}

func (c *Checker) isRelated(source, target typesystem.Type, inf *typesystem.InferenceContext, unfolding map[typesystem.ParamID]bool) bool {
	if typesystem.IsWildcard(source) || typesystem.IsWildcard(target) {
		return true
	}

	if p, ok := target.(typesystem.TParam); ok && p.Inferred {
		if inf != nil {
			inf.Capture(p, source)
		}
		return true
	}

	if typesystem.Equal(source, target) {
		return true
	}

	// never is the bottom type, unknown the top.
	if typesystem.IsNever(source) {
		return true
	}
	if typesystem.IsUnknown(target) {
		return true
	}
	if typesystem.IsNever(target) {
		return false
	}

	// A union source is related iff every member is.
	if u, ok := source.(typesystem.TUnion); ok {
		for _, member := range u.Types {
			if !c.isRelated(member, target, inf, unfolding) {
				return false
			}
		}
		return true
	}

	// A union target is related iff some member is. Each attempt captures
	// inference into a scratch context so failed members leave no trace.
	if u, ok := target.(typesystem.TUnion); ok {
		for _, member := range u.Types {
			var probe *typesystem.InferenceContext
			if inf != nil {
				probe = typesystem.NewInferenceContext()
			}
			if c.isRelated(source, member, probe, unfolding) {
				if inf != nil {
					probe.Each(func(p typesystem.TParam, t typesystem.Type) {
						inf.Capture(p, t)
					})
				}
				return true
			}
		}
		return false
	}

	// A free parameter in target position admits only itself (handled by
	// the equality rule above), never, or the wildcard. Nothing else can be
	// assignable to every possible instantiation of it.
	if _, ok := target.(typesystem.TParam); ok {
		return false
	}

	// A free parameter in source position is related iff its declared
	// constraint is: every instantiation of the parameter stays within the
	// constraint. Constraint cycles terminate through the top type.
	if p, ok := source.(typesystem.TParam); ok {
		if unfolding[p.ID] {
			return c.isRelated(typesystem.Unknown, target, inf, unfolding)
		}
		constraint := typesystem.Type(typesystem.Unknown)
		if c.constraints != nil {
			if ctr, ok := c.constraints.ConstraintOf(p); ok {
				constraint = ctr
			}
		}
		next := make(map[typesystem.ParamID]bool, len(unfolding)+1)
		for k, v := range unfolding {
			next[k] = v
		}
		next[p.ID] = true
		return c.isRelated(constraint, target, inf, next)
	}

	if s, ok := source.(typesystem.TTuple); ok {
		t, ok := target.(typesystem.TTuple)
		if !ok || len(s.Elements) != len(t.Elements) {
			return false
		}
		for i := range s.Elements {
			if !c.isRelated(s.Elements[i], t.Elements[i], inf, unfolding) {
				return false
			}
		}
		return true
	}

	// Atoms relate by identity only (covered by the equality rule);
	// residual conditionals likewise.
	return false
}
