// Package analyzer lowers parsed type expressions into type terms: it
// resolves names against the declaration scope, interns parameters, and
// expands alias applications through the resolution engine.
package analyzer

import (
	"github.com/veltlang/velt/internal/ast"
	"github.com/veltlang/velt/internal/diagnostics"
	"github.com/veltlang/velt/internal/symbols"
	"github.com/veltlang/velt/internal/typesystem"
)

type Builder struct {
	symbols *symbols.SymbolTable
	engine  *typesystem.Engine
}

func NewBuilder(st *symbols.SymbolTable, engine *typesystem.Engine) *Builder {
	return &Builder{symbols: st, engine: engine}
}

// Declare lowers an alias declaration and registers it. Parameters are
// interned first so constraints may reference sibling parameters; the body
// is lowered with all parameters in scope. Aliases referenced in the body
// must already be declared (forward and self references are errors).
func (b *Builder) Declare(decl *ast.TypeDecl) error {
	scope := make(map[string]typesystem.TParam, len(decl.Params))
	params := make([]typesystem.TParam, 0, len(decl.Params))

	for _, pd := range decl.Params {
		if _, dup := scope[pd.Name]; dup {
			return diagnostics.NewError(diagnostics.ErrT003, pd.Token,
				"duplicate type parameter '%s'", pd.Name)
		}
		p := b.symbols.NewParam(pd.Name)
		scope[pd.Name] = p
		params = append(params, p)
	}

	for i, pd := range decl.Params {
		if pd.Constraint == nil {
			continue
		}
		c, err := b.BuildType(pd.Constraint, scope)
		if err != nil {
			return err
		}
		b.symbols.SetConstraint(params[i], c)
	}

	body, err := b.BuildType(decl.Body, scope)
	if err != nil {
		return err
	}

	if err := b.symbols.Declare(&symbols.Alias{Name: decl.Name, Params: params, Body: body}); err != nil {
		return diagnostics.NewError(diagnostics.ErrT003, decl.Token, "%s", err.Error())
	}
	return nil
}

// BuildType lowers a type expression under the given parameter scope.
func (b *Builder) BuildType(node ast.Type, scope map[string]typesystem.TParam) (typesystem.Type, error) {
	switch node := node.(type) {
	case *ast.NeverType:
		return typesystem.Never, nil

	case *ast.UnknownType:
		return typesystem.Unknown, nil

	case *ast.InferType:
		return nil, diagnostics.NewError(diagnostics.ErrT004, node.Token,
			"'infer %s' is only allowed in the extends clause of a conditional type", node.Name)

	case *ast.NamedType:
		if p, inScope := scope[node.Name]; inScope {
			if len(node.Args) > 0 {
				return nil, diagnostics.NewError(diagnostics.ErrT002, node.Token,
					"type parameter '%s' does not accept type arguments", node.Name)
			}
			return p, nil
		}
		if _, isAlias := b.symbols.Lookup(node.Name); isAlias {
			args := make([]typesystem.Type, len(node.Args))
			for i, a := range node.Args {
				arg, err := b.BuildType(a, scope)
				if err != nil {
					return nil, err
				}
				args[i] = arg
			}
			t, err := b.symbols.Expand(node.Name, args, b.engine)
			if err != nil {
				return nil, b.wrapExpandError(node, err)
			}
			return t, nil
		}
		if len(node.Args) > 0 {
			return nil, diagnostics.NewError(diagnostics.ErrT001, node.Token,
				"unknown type alias '%s'", node.Name)
		}
		// A bare name that is neither a parameter in scope nor an alias is
		// an atom, opaque to the engine.
		return typesystem.TAtom{Name: node.Name}, nil

	case *ast.UnionType:
		members := make([]typesystem.Type, len(node.Types))
		for i, m := range node.Types {
			t, err := b.BuildType(m, scope)
			if err != nil {
				return nil, err
			}
			members[i] = t
		}
		return typesystem.NewUnion(members), nil

	case *ast.TupleType:
		elements := make([]typesystem.Type, len(node.Types))
		for i, el := range node.Types {
			t, err := b.BuildType(el, scope)
			if err != nil {
				return nil, err
			}
			elements[i] = t
		}
		return typesystem.TTuple{Elements: elements}, nil

	case *ast.ConditionalType:
		return b.buildConditional(node, scope)

	default:
		return nil, diagnostics.NewError(diagnostics.ErrP001, node.GetToken(),
			"unsupported type expression")
	}
}

// buildConditional lowers a conditional type. Parameters introduced by
// 'infer' positions in the extends clause are in scope for the extends
// clause itself and the true branch, but not the false branch.
func (b *Builder) buildConditional(node *ast.ConditionalType, scope map[string]typesystem.TParam) (typesystem.Type, error) {
	check, err := b.BuildType(node.Check, scope)
	if err != nil {
		return nil, err
	}

	extendsScope := make(map[string]typesystem.TParam, len(scope))
	for k, v := range scope {
		extendsScope[k] = v
	}

	extendsType, err := b.buildExtends(node.Extends, extendsScope)
	if err != nil {
		return nil, err
	}

	trueType, err := b.BuildType(node.True, extendsScope)
	if err != nil {
		return nil, err
	}
	falseType, err := b.BuildType(node.False, scope)
	if err != nil {
		return nil, err
	}

	return typesystem.NewConditional(check, extendsType, trueType, falseType), nil
}

// buildExtends lowers an extends clause, interning 'infer' parameters into
// the scope as it encounters them. A repeated 'infer P' reuses the first
// interned parameter, so multiple positions accumulate into one capture.
func (b *Builder) buildExtends(node ast.Type, scope map[string]typesystem.TParam) (typesystem.Type, error) {
	switch node := node.(type) {
	case *ast.InferType:
		if p, ok := scope[node.Name]; ok && p.Inferred {
			return p, nil
		}
		if _, shadows := scope[node.Name]; shadows {
			return nil, diagnostics.NewError(diagnostics.ErrT003, node.Token,
				"'infer %s' shadows a type parameter in scope", node.Name)
		}
		p := b.symbols.NewInferParam(node.Name)
		scope[node.Name] = p
		return p, nil

	case *ast.UnionType:
		members := make([]typesystem.Type, len(node.Types))
		for i, m := range node.Types {
			t, err := b.buildExtends(m, scope)
			if err != nil {
				return nil, err
			}
			members[i] = t
		}
		return typesystem.NewUnion(members), nil

	case *ast.TupleType:
		elements := make([]typesystem.Type, len(node.Types))
		for i, el := range node.Types {
			t, err := b.buildExtends(el, scope)
			if err != nil {
				return nil, err
			}
			elements[i] = t
		}
		return typesystem.TTuple{Elements: elements}, nil

	default:
		return b.BuildType(node, scope)
	}
}

func (b *Builder) wrapExpandError(node *ast.NamedType, err error) error {
	if d, ok := err.(*diagnostics.Diagnostic); ok {
		return d
	}
	return diagnostics.NewError(diagnostics.ErrE001, node.Token, "%s", err.Error())
}
