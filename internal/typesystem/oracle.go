package typesystem

// Relater is the structural assignability oracle supplied by the
// surrounding type checker. It decides whether source is assignable to
// target for concrete shapes; the engine never interprets atoms itself.
//
// Implementations must treat the Wildcard marker as universally assignable
// in both directions, and may populate inf (when non-nil) with bindings for
// inferred parameters discovered in target position.
type Relater interface {
	IsRelated(source, target Type, inf *InferenceContext) bool
}

// ConstraintSource looks up the declared constraint of a type parameter.
// It is used to build the restrictive instantiation and to detect
// out-of-scope parameters.
type ConstraintSource interface {
	// ConstraintOf returns the declared constraint of p. Parameters declared
	// without an explicit constraint report the top type. ok is false when p
	// is not a known declaration site at all.
	ConstraintOf(p TParam) (Type, bool)
}
