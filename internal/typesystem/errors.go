package typesystem

import "fmt"

// MalformedTermError indicates a term referenced a parameter with no binding
// and no enclosing scope. Always fatal; it is a programming error in the
// surrounding checker, never recovered locally.
type MalformedTermError struct {
	Param TParam
}

func (e *MalformedTermError) Error() string {
	return fmt.Sprintf("malformed term: parameter %s (#%d) has no binding and no enclosing scope", e.Param.Name, e.Param.ID)
}

func NewMalformedTermError(p TParam) *MalformedTermError {
	return &MalformedTermError{Param: p}
}

// RecursionLimitError indicates the instantiation depth budget was
// exhausted, pointing at an unbounded or self-referential conditional type.
// Surfaced as a user-facing diagnostic, not a crash.
type RecursionLimitError struct {
	Limit int
	Term  Type
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("recursion limit exceeded: instantiation depth budget of %d exhausted while resolving %s", e.Limit, e.Term)
}

func NewRecursionLimitError(limit int, term Type) *RecursionLimitError {
	return &RecursionLimitError{Limit: limit, Term: term}
}

// OracleInconsistencyError indicates the relation oracle answered false for
// the permissive test but true for the restrictive test of the same
// condition. The permissive instantiation is strictly weaker by
// construction, so this violates an internal invariant.
type OracleInconsistencyError struct {
	Check   Type
	Extends Type
}

func (e *OracleInconsistencyError) Error() string {
	return fmt.Sprintf("oracle inconsistency: %s extends %s is permissive-false but restrictive-true", e.Check, e.Extends)
}

func NewOracleInconsistencyError(check, extends Type) *OracleInconsistencyError {
	return &OracleInconsistencyError{Check: check, Extends: extends}
}
