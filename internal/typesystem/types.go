package typesystem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/veltlang/velt/internal/config"
)

// Type is the interface for all type terms in our system.
// Terms are immutable values: rewriting always produces a new term, with
// structural sharing permitted for unchanged subterms.
type Type interface {
	String() string
	FreeTypeParams() []TParam
}

// ParamID is a stable identity for a type parameter, unique per declaration
// site. Two parameters are the same parameter iff their IDs match; constraint
// contents never enter the comparison.
type ParamID int

// TParam represents a type parameter (e.g. 'T', 'X').
// Inferred marks parameters introduced by an 'infer' position in the extends
// clause of a conditional type; they are bound locally by inference capture
// rather than by the caller's mapper.
type TParam struct {
	ID       ParamID
	Name     string
	Inferred bool
}

func (t TParam) String() string {
	return t.Name
}

func (t TParam) FreeTypeParams() []TParam {
	return []TParam{t}
}

// SameParam reports whether a and b are the same parameter (identity
// equality by declaration site).
func SameParam(a, b TParam) bool {
	return a.ID == b.ID
}

// TAtom represents a concrete non-decomposed type (a primitive, object
// shape, etc.), opaque to this engine. Atoms are compared only via the
// relation oracle; the engine itself never looks inside one.
type TAtom struct {
	Name string
}

func (t TAtom) String() string {
	return t.Name
}

func (t TAtom) FreeTypeParams() []TParam {
	return nil
}

// Unknown is the top type: every type is assignable to it. It doubles as
// the implicit constraint of parameters declared without one.
var Unknown = TAtom{Name: config.UnknownTypeName}

// IsUnknown reports whether t is the top type.
func IsUnknown(t Type) bool {
	a, ok := t.(TAtom)
	return ok && a.Name == config.UnknownTypeName
}

// TNever is the empty union, a distinguished singleton. It is the identity
// element for union formation and the result of distributing over nothing.
type TNever struct{}

func (t TNever) String() string {
	return config.NeverTypeName
}

func (t TNever) FreeTypeParams() []TParam {
	return nil
}

// Never is the canonical empty-union term.
var Never Type = TNever{}

// IsNever reports whether t is exactly the empty union.
func IsNever(t Type) bool {
	_, ok := t.(TNever)
	return ok
}

// TWildcard is a sentinel assignable to and from every type including never.
// It exists only transiently during resolution and never appears in a
// finished type term.
type TWildcard struct{}

func (t TWildcard) String() string {
	return "'?"
}

func (t TWildcard) FreeTypeParams() []TParam {
	return nil
}

// Wildcard is the single wildcard marker value.
var Wildcard Type = TWildcard{}

// IsWildcard reports whether t is the wildcard marker.
func IsWildcard(t Type) bool {
	_, ok := t.(TWildcard)
	return ok
}

// TUnion represents a union type (e.g. Int | String).
// Unions are normalized on construction: flattened, never-free, deduplicated
// and sorted, with at least 2 members. Use NewUnion to build one.
type TUnion struct {
	Types []Type
}

func (t TUnion) String() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = parenIfUnionArg(m)
	}
	return strings.Join(parts, " | ")
}

func (t TUnion) FreeTypeParams() []TParam {
	var params []TParam
	for _, m := range t.Types {
		params = append(params, m.FreeTypeParams()...)
	}
	return uniqueParams(params)
}

// TTuple represents a tuple type (e.g. [Int, Bool]).
// Wrapping a check type in a one-element tuple is the standard way to
// suppress distribution.
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

func (t TTuple) FreeTypeParams() []TParam {
	var params []TParam
	for _, e := range t.Elements {
		params = append(params, e.FreeTypeParams()...)
	}
	return uniqueParams(params)
}

// TCond represents a conditional type: Check extends Extends ? True : False.
// Distributive is fixed at construction time (true iff the check type was a
// bare parameter at the point the type was declared) and is never recomputed
// from a partially substituted term.
type TCond struct {
	Check        Type
	Extends      Type
	True         Type
	False        Type
	Distributive bool
}

func (t TCond) String() string {
	return fmt.Sprintf("%s extends %s ? %s : %s",
		parenIfCond(t.Check), parenIfCond(t.Extends), t.True.String(), t.False.String())
}

func (t TCond) FreeTypeParams() []TParam {
	var params []TParam
	params = append(params, t.Check.FreeTypeParams()...)
	params = append(params, t.Extends.FreeTypeParams()...)
	params = append(params, t.True.FreeTypeParams()...)
	params = append(params, t.False.FreeTypeParams()...)
	var free []TParam
	for _, p := range uniqueParams(params) {
		if !p.Inferred {
			free = append(free, p)
		}
	}
	return free
}

// NewConditional builds a conditional term, computing the distribution flag
// from the declared shape of the check type: distributive iff the check is
// exactly a bare, non-inferred parameter.
func NewConditional(check, extends, trueBranch, falseBranch Type) TCond {
	p, ok := check.(TParam)
	return TCond{
		Check:        check,
		Extends:      extends,
		True:         trueBranch,
		False:        falseBranch,
		Distributive: ok && !p.Inferred,
	}
}

// remakeConditional rebuilds a conditional with new parts while preserving
// the original distribution flag. Used by substitution and the deferred term
// builder, where the flag must not be rederived from the rewritten shape.
func remakeConditional(c TCond, check, extends, trueBranch, falseBranch Type) TCond {
	return TCond{
		Check:        check,
		Extends:      extends,
		True:         trueBranch,
		False:        falseBranch,
		Distributive: c.Distributive,
	}
}

// NewUnion creates a normalized union from the given members.
// It flattens nested unions, drops never members (never is the identity
// element for union, not a distinct branch), removes duplicates and sorts.
// Zero surviving members collapse to never, a single member to itself.
func NewUnion(types []Type) Type {
	flat := make([]Type, 0, len(types))
	for _, t := range types {
		switch m := t.(type) {
		case TUnion:
			flat = append(flat, m.Types...)
		case TNever:
			// dropped
		default:
			flat = append(flat, t)
		}
	}

	seen := make(map[string]bool, len(flat))
	unique := make([]Type, 0, len(flat))
	for _, t := range flat {
		k := termKey(t)
		if !seen[k] {
			seen[k] = true
			unique = append(unique, t)
		}
	}

	if len(unique) == 0 {
		return Never
	}
	if len(unique) == 1 {
		return unique[0]
	}

	// Sort for deterministic comparison
	sort.Slice(unique, func(i, j int) bool {
		return termKey(unique[i]) < termKey(unique[j])
	})

	return TUnion{Types: unique}
}

// Equal reports structural equality of two terms. Parameters compare by
// identity, every other shape by structure. Constraints never participate.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case TParam:
		bp, ok := b.(TParam)
		return ok && SameParam(a, bp)
	case TAtom:
		ba, ok := b.(TAtom)
		return ok && a.Name == ba.Name
	case TNever:
		return IsNever(b)
	case TWildcard:
		return IsWildcard(b)
	case TUnion:
		bu, ok := b.(TUnion)
		if !ok || len(a.Types) != len(bu.Types) {
			return false
		}
		for i := range a.Types {
			if !Equal(a.Types[i], bu.Types[i]) {
				return false
			}
		}
		return true
	case TTuple:
		bt, ok := b.(TTuple)
		if !ok || len(a.Elements) != len(bt.Elements) {
			return false
		}
		for i := range a.Elements {
			if !Equal(a.Elements[i], bt.Elements[i]) {
				return false
			}
		}
		return true
	case TCond:
		bc, ok := b.(TCond)
		return ok && a.Distributive == bc.Distributive &&
			Equal(a.Check, bc.Check) && Equal(a.Extends, bc.Extends) &&
			Equal(a.True, bc.True) && Equal(a.False, bc.False)
	default:
		return false
	}
}

// ContainsConditional reports whether any conditional subterm remains in t.
func ContainsConditional(t Type) bool {
	switch t := t.(type) {
	case TCond:
		return true
	case TUnion:
		for _, m := range t.Types {
			if ContainsConditional(m) {
				return true
			}
		}
	case TTuple:
		for _, e := range t.Elements {
			if ContainsConditional(e) {
				return true
			}
		}
	}
	return false
}

// IsGround reports whether t contains no free parameters.
func IsGround(t Type) bool {
	return len(t.FreeTypeParams()) == 0
}

// termKey renders a term for dedupe and ordering. Unlike String it keeps
// parameter identities distinct even when display names collide.
func termKey(t Type) string {
	switch t := t.(type) {
	case TParam:
		return fmt.Sprintf("%s#%d", t.Name, t.ID)
	case TUnion:
		parts := make([]string, len(t.Types))
		for i, m := range t.Types {
			parts[i] = termKey(m)
		}
		return "(" + strings.Join(parts, " | ") + ")"
	case TTuple:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = termKey(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TCond:
		return fmt.Sprintf("(%s extends %s ? %s : %s)",
			termKey(t.Check), termKey(t.Extends), termKey(t.True), termKey(t.False))
	default:
		return t.String()
	}
}

func parenIfUnionArg(t Type) string {
	if _, ok := t.(TCond); ok {
		return "(" + t.String() + ")"
	}
	return t.String()
}

func parenIfCond(t Type) string {
	switch t.(type) {
	case TCond, TUnion:
		return "(" + t.String() + ")"
	default:
		return t.String()
	}
}

func uniqueParams(params []TParam) []TParam {
	unique := []TParam{}
	seen := map[ParamID]bool{}
	for _, p := range params {
		if !seen[p.ID] {
			seen[p.ID] = true
			unique = append(unique, p)
		}
	}
	return unique
}
