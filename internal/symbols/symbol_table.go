package symbols

import (
	"fmt"

	"github.com/veltlang/velt/internal/typesystem"
)

// Alias is a declared generic type alias:
//
//	type Name<P extends C, ...> = body
type Alias struct {
	Name   string
	Params []typesystem.TParam
	Body   typesystem.Type
}

// SymbolTable owns alias declarations and parameter identities. Parameter
// IDs are interned here: unique per declaration site, stable for the
// lifetime of the table. It implements typesystem.ConstraintSource.
type SymbolTable struct {
	aliases     map[string]*Alias
	constraints map[typesystem.ParamID]typesystem.Type
	names       map[typesystem.ParamID]string
	nextID      typesystem.ParamID
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		aliases:     make(map[string]*Alias),
		constraints: make(map[typesystem.ParamID]typesystem.Type),
		names:       make(map[typesystem.ParamID]string),
		nextID:      1,
	}
}

// NewParam interns a fresh type parameter with the top type as its implicit
// constraint.
func (st *SymbolTable) NewParam(name string) typesystem.TParam {
	p := typesystem.TParam{ID: st.nextID, Name: name}
	st.nextID++
	st.constraints[p.ID] = typesystem.Unknown
	st.names[p.ID] = name
	return p
}

// NewInferParam interns a fresh inferred parameter. Inferred parameters are
// bound by their enclosing extends clause, not by callers, and carry no
// declared constraint.
func (st *SymbolTable) NewInferParam(name string) typesystem.TParam {
	p := typesystem.TParam{ID: st.nextID, Name: name, Inferred: true}
	st.nextID++
	st.names[p.ID] = name
	return p
}

// SetConstraint records the declared constraint of p, replacing the implicit
// top type.
func (st *SymbolTable) SetConstraint(p typesystem.TParam, constraint typesystem.Type) {
	st.constraints[p.ID] = constraint
}

// ConstraintOf returns the declared constraint of p. ok is false for
// parameters this table never interned.
func (st *SymbolTable) ConstraintOf(p typesystem.TParam) (typesystem.Type, bool) {
	c, ok := st.constraints[p.ID]
	return c, ok
}

// Declare registers an alias. Redeclaring a name is an error.
func (st *SymbolTable) Declare(alias *Alias) error {
	if _, exists := st.aliases[alias.Name]; exists {
		return &DuplicateAliasError{Name: alias.Name}
	}
	st.aliases[alias.Name] = alias
	return nil
}

// Lookup returns the alias declared under name.
func (st *SymbolTable) Lookup(name string) (*Alias, bool) {
	a, ok := st.aliases[name]
	return a, ok
}

// Expand instantiates the alias body with the given arguments through the
// engine, so conditional bodies distribute, short-circuit or defer exactly
// as they would at a use site inside the checker.
func (st *SymbolTable) Expand(name string, args []typesystem.Type, engine *typesystem.Engine) (typesystem.Type, error) {
	alias, ok := st.aliases[name]
	if !ok {
		return nil, &AliasNotFoundError{Name: name}
	}
	if len(args) != len(alias.Params) {
		return nil, &ArityError{Name: name, Want: len(alias.Params), Got: len(args)}
	}
	return engine.Instantiate(alias.Body, typesystem.MapperOf(alias.Params, args))
}

// AliasNotFoundError indicates a reference to an undeclared alias.
type AliasNotFoundError struct {
	Name string
}

func (e *AliasNotFoundError) Error() string {
	return fmt.Sprintf("type alias not found: %s", e.Name)
}

// DuplicateAliasError indicates an alias name was declared twice.
type DuplicateAliasError struct {
	Name string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("type alias already declared: %s", e.Name)
}

// ArityError indicates an alias was applied to the wrong number of type
// arguments.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("wrong number of type arguments for %s: want %d, got %d", e.Name, e.Want, e.Got)
}
