package typesystem

// TypeMapper is a total function from parameter identity to types.
// Mappers are immutable; extension builds a delegation chain rather than
// copying a key-value mapping, so single-binding composition is O(1).
type TypeMapper interface {
	// Map looks the parameter up through the delegation chain. The base
	// case (identity mapper) returns the parameter unchanged.
	Map(p TParam) Type
}

type identityMapper struct{}

func (identityMapper) Map(p TParam) Type {
	return p
}

// Identity returns the identity mapper.
func Identity() TypeMapper {
	return identityMapper{}
}

type bindingMapper struct {
	param TParam
	to    Type
	base  TypeMapper
}

func (m bindingMapper) Map(p TParam) Type {
	if SameParam(p, m.param) {
		return m.to
	}
	return m.base.Map(p)
}

// Extend returns a mapper that intercepts param and delegates everything
// else to base. Pure; base is not mutated.
func Extend(base TypeMapper, param TParam, to Type) TypeMapper {
	return bindingMapper{param: param, to: to, base: base}
}

// MapperOf builds a mapper binding each parameter to the corresponding type.
// Convenience for callers instantiating an alias with an argument list.
func MapperOf(params []TParam, args []Type) TypeMapper {
	m := Identity()
	for i, p := range params {
		if i >= len(args) {
			break
		}
		m = Extend(m, p, args[i])
	}
	return m
}

// freeUnder reports whether m leaves p unchanged (p is still free after
// substitution).
func freeUnder(m TypeMapper, p TParam) bool {
	mapped, ok := m.Map(p).(TParam)
	return ok && SameParam(mapped, p)
}
