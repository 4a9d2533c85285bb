package typesystem

// InferenceContext is the side-channel the relation oracle populates while
// matching a check type against an extends type: inferred parameters
// (introduced by 'infer' positions) discovered during matching are captured
// here and later turned into mapper bindings for the true branch.
type InferenceContext struct {
	bindings map[ParamID]Type
	params   []TParam // capture order, for deterministic mapper extension
}

func NewInferenceContext() *InferenceContext {
	return &InferenceContext{bindings: make(map[ParamID]Type)}
}

// Capture records t as a candidate for p. Repeated captures of the same
// parameter accumulate as a union.
func (ic *InferenceContext) Capture(p TParam, t Type) {
	if existing, ok := ic.bindings[p.ID]; ok {
		ic.bindings[p.ID] = NewUnion([]Type{existing, t})
		return
	}
	ic.bindings[p.ID] = t
	ic.params = append(ic.params, p)
}

// Binding returns the captured type for p, if any.
func (ic *InferenceContext) Binding(p TParam) (Type, bool) {
	t, ok := ic.bindings[p.ID]
	return t, ok
}

// Empty reports whether nothing was captured.
func (ic *InferenceContext) Empty() bool {
	return len(ic.bindings) == 0
}

// Each visits the captured bindings in capture order.
func (ic *InferenceContext) Each(f func(p TParam, t Type)) {
	for _, p := range ic.params {
		f(p, ic.bindings[p.ID])
	}
}

// ExtendMapper returns base extended with one binding per captured
// parameter, in capture order.
func (ic *InferenceContext) ExtendMapper(base TypeMapper) TypeMapper {
	m := base
	for _, p := range ic.params {
		m = Extend(m, p, ic.bindings[p.ID])
	}
	return m
}
