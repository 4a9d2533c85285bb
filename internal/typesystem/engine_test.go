package typesystem

import (
	"errors"
	"testing"
)

// fakeOracle is an equality-based relation oracle that counts invocations.
// The wildcard marker relates in both directions; everything else relates
// only to an equal term. A test can override behavior via fn.
type fakeOracle struct {
	calls   int
	targets []Type
	fn      func(source, target Type, inf *InferenceContext) bool
}

func (o *fakeOracle) IsRelated(source, target Type, inf *InferenceContext) bool {
	o.calls++
	o.targets = append(o.targets, target)
	if o.fn != nil {
		return o.fn(source, target, inf)
	}
	return IsWildcard(source) || IsWildcard(target) || Equal(source, target)
}

type fakeConstraints map[ParamID]Type

func (c fakeConstraints) ConstraintOf(p TParam) (Type, bool) {
	t, ok := c[p.ID]
	return t, ok
}

var (
	atomStr  = TAtom{Name: "Str"}
	atomNum  = TAtom{Name: "Num"}
	atomNull = TAtom{Name: "Null"}
	atomYes  = TAtom{Name: "True"}
	atomNo   = TAtom{Name: "False"}
)

func newTestEngine(oracle Relater, constraints ConstraintSource) *Engine {
	return NewEngine(oracle, constraints, 0)
}

func mustInstantiate(t *testing.T, e *Engine, typ Type, m TypeMapper) Type {
	t.Helper()
	got, err := e.Instantiate(typ, m)
	if err != nil {
		t.Fatalf("Instantiate(%s) error: %v", typ, err)
	}
	return got
}

func TestNeverShortCircuitSkipsOracle(t *testing.T) {
	p := TParam{ID: 1, Name: "P"}
	// The true branch mentions a parameter no scope knows about; the
	// short-circuit must fire before the branch is ever touched.
	stray := TParam{ID: 99, Name: "Stray"}
	cond := NewConditional(p, atomStr, stray, atomNo)

	oracle := &fakeOracle{}
	e := newTestEngine(oracle, fakeConstraints{p.ID: Unknown})

	got := mustInstantiate(t, e, cond, Extend(Identity(), p, Never))
	if !IsNever(got) {
		t.Errorf("P := never should collapse to never, got %s", got)
	}
	if oracle.calls != 0 {
		t.Errorf("short-circuit made %d oracle calls, want 0", oracle.calls)
	}
}

func TestDistributionOverUnion(t *testing.T) {
	x := TParam{ID: 1, Name: "X"}
	// X extends Null ? Num : X
	cond := NewConditional(x, atomNull, atomNum, x)
	e := newTestEngine(&fakeOracle{}, fakeConstraints{x.ID: Unknown})

	got := mustInstantiate(t, e, cond, Extend(Identity(), x, NewUnion([]Type{atomNull, atomStr})))
	if got.String() != "Num | Str" {
		t.Errorf("distribution result = %s, want Num | Str", got)
	}

	// Distribution is exactly the union of the per-member instantiations.
	perMember := []Type{
		mustInstantiate(t, e, cond, Extend(Identity(), x, atomNull)),
		mustInstantiate(t, e, cond, Extend(Identity(), x, atomStr)),
	}
	if want := NewUnion(perMember); !Equal(got, want) {
		t.Errorf("distribution = %s, union of members = %s", got, want)
	}
}

func TestDistributionDropsNeverArms(t *testing.T) {
	x := TParam{ID: 1, Name: "X"}
	// X extends Str ? never : X keeps only the members that miss.
	cond := NewConditional(x, atomStr, Never, x)
	e := newTestEngine(&fakeOracle{}, fakeConstraints{x.ID: Unknown})

	got := mustInstantiate(t, e, cond, Extend(Identity(), x, NewUnion([]Type{atomStr, atomNum})))
	if !Equal(got, atomNum) {
		t.Errorf("filter result = %s, want Num", got)
	}
}

func TestTupleWrappingSuppressesDistribution(t *testing.T) {
	p := TParam{ID: 1, Name: "P"}
	constraints := fakeConstraints{p.ID: Unknown}
	bind := Extend(Identity(), p, Never)

	// Distributive form: P := never vanishes before the test runs.
	bare := NewConditional(p, Never, atomYes, atomNo)
	e := newTestEngine(&fakeOracle{}, constraints)
	if got := mustInstantiate(t, e, bare, bind); !IsNever(got) {
		t.Errorf("bare check: got %s, want never", got)
	}

	// Wrapped form: [P] extends [never] actually asks the question.
	wrapped := NewConditional(
		TTuple{Elements: []Type{p}},
		TTuple{Elements: []Type{Never}},
		atomYes, atomNo)
	if got := mustInstantiate(t, e, wrapped, bind); !Equal(got, atomYes) {
		t.Errorf("wrapped check: got %s, want True", got)
	}
}

func TestUnionExtendsIsOneOracleArgument(t *testing.T) {
	// A union in the extends clause is a single relation target, not a
	// per-member decomposition.
	target := NewUnion([]Type{atomStr, atomNum})
	cond := NewConditional(atomStr, target, atomYes, atomNo)

	oracle := &fakeOracle{fn: func(source, tgt Type, inf *InferenceContext) bool {
		return true
	}}
	e := newTestEngine(oracle, nil)

	got := mustInstantiate(t, e, cond, Identity())
	if !Equal(got, atomYes) {
		t.Errorf("got %s, want True", got)
	}
	if oracle.calls != 2 {
		t.Fatalf("made %d oracle calls, want 2 (permissive + restrictive)", oracle.calls)
	}
	for _, tgt := range oracle.targets {
		u, ok := tgt.(TUnion)
		if !ok || len(u.Types) != 2 {
			t.Errorf("oracle target = %s, want the intact 2-member union", tgt)
		}
	}
}

func TestResolvedFalse(t *testing.T) {
	x := TParam{ID: 1, Name: "X"}
	cond := NewConditional(x, atomStr, atomYes, atomNo)
	e := newTestEngine(&fakeOracle{}, fakeConstraints{x.ID: Unknown})

	got := mustInstantiate(t, e, cond, Extend(Identity(), x, atomNum))
	if !Equal(got, atomNo) {
		t.Errorf("X := Num against Str should pick the false branch, got %s", got)
	}
}

func TestFreeParameterDefers(t *testing.T) {
	x := TParam{ID: 1, Name: "X"}
	cond := NewConditional(x, atomStr, atomYes, atomNo)
	e := newTestEngine(&fakeOracle{}, fakeConstraints{x.ID: Unknown})

	got := mustInstantiate(t, e, cond, Identity())
	res, ok := got.(TCond)
	if !ok {
		t.Fatalf("free check should defer to a residual conditional, got %s", got)
	}
	if !res.Distributive {
		t.Errorf("residual must keep the distribution flag")
	}
	if !Equal(res.Check, x) {
		t.Errorf("residual check = %s, want the bare parameter X", res.Check)
	}

	// Once X is bound the residual resolves like the original.
	if r := mustInstantiate(t, e, res, Extend(Identity(), x, atomStr)); !Equal(r, atomYes) {
		t.Errorf("re-evaluating residual with X := Str = %s, want True", r)
	}
}

func TestExtendsSideParameterBoundToNever(t *testing.T) {
	x := TParam{ID: 1, Name: "X"}
	// Str extends X ? True : False with X := never. The check side is
	// ground, so nothing short-circuits; both tests fail against never.
	cond := NewConditional(atomStr, x, atomYes, atomNo)
	oracle := &fakeOracle{}
	e := newTestEngine(oracle, fakeConstraints{x.ID: Unknown})

	got := mustInstantiate(t, e, cond, Extend(Identity(), x, Never))
	if !Equal(got, atomNo) {
		t.Errorf("got %s, want False", got)
	}
	if oracle.calls != 2 {
		t.Errorf("made %d oracle calls, want 2", oracle.calls)
	}
}

func TestExtendsSideFreeParameterDefers(t *testing.T) {
	x := TParam{ID: 1, Name: "X"}
	// Str extends X ? True : False with X free: the permissive view
	// (X as wildcard) holds, but a free parameter in target position
	// admits only itself, never or the wildcard.
	cond := NewConditional(atomStr, x, atomYes, atomNo)
	e := newTestEngine(&fakeOracle{}, fakeConstraints{x.ID: atomStr})

	got := mustInstantiate(t, e, cond, Identity())
	res, ok := got.(TCond)
	if !ok {
		t.Fatalf("got %s, want a residual conditional", got)
	}
	if !Equal(res.Extends, x) {
		t.Errorf("residual extends = %s, want X", res.Extends)
	}
}

func TestResidualWithSubstitutedCheckReinstantiates(t *testing.T) {
	p := TParam{ID: 1, Name: "P"}
	x := TParam{ID: 2, Name: "X"}
	// P extends X ? True : False with P := Str and X free: the residual
	// keeps the distribution flag but its check is now an atom. A later
	// pass must resolve it instead of distributing again.
	cond := NewConditional(p, x, atomYes, atomNo)
	e := newTestEngine(&fakeOracle{}, fakeConstraints{p.ID: Unknown, x.ID: Unknown})

	first := mustInstantiate(t, e, cond, Extend(Identity(), p, atomStr))
	res, ok := first.(TCond)
	if !ok {
		t.Fatalf("got %s, want a residual conditional", first)
	}
	if !res.Distributive {
		t.Fatalf("residual must keep the distribution flag")
	}
	if !Equal(res.Check, atomStr) {
		t.Fatalf("residual check = %s, want Str", res.Check)
	}

	got := mustInstantiate(t, e, res, Extend(Identity(), x, atomStr))
	if !Equal(got, atomYes) {
		t.Errorf("re-instantiated residual = %s, want True", got)
	}
}

func TestConstraintDecidesCondition(t *testing.T) {
	x := TParam{ID: 1, Name: "X"}
	cond := NewConditional(x, atomStr, atomYes, atomNo)

	// X's declared bound already guarantees the condition for every
	// instantiation, so it resolves true while X is still free.
	e := newTestEngine(&fakeOracle{}, fakeConstraints{x.ID: atomStr})
	if got := mustInstantiate(t, e, cond, Identity()); !Equal(got, atomYes) {
		t.Errorf("constraint Str should decide X extends Str, got %s", got)
	}
}

func TestDeferredResidualKeepsBoundParameters(t *testing.T) {
	x := TParam{ID: 1, Name: "X"}
	y := TParam{ID: 2, Name: "Y"}
	cond := NewConditional(x, atomStr, y, Never)
	e := newTestEngine(&fakeOracle{}, fakeConstraints{x.ID: Unknown, y.ID: Unknown})

	got := mustInstantiate(t, e, cond, Extend(Identity(), y, atomNum))
	if got.String() != "X extends Str ? Num : never" {
		t.Errorf("residual = %s, want X extends Str ? Num : never", got)
	}
}

func TestInferenceCapture(t *testing.T) {
	a := TParam{ID: 1, Name: "A", Inferred: true}
	b := TParam{ID: 2, Name: "B", Inferred: true}
	extends := TTuple{Elements: []Type{a, b}}
	cond := NewConditional(atomStr, extends, TTuple{Elements: []Type{a, b}}, Never)

	// The oracle captures A twice and never reaches B.
	oracle := &fakeOracle{fn: func(source, tgt Type, inf *InferenceContext) bool {
		if inf != nil {
			inf.Capture(a, atomNum)
			inf.Capture(a, atomStr)
		}
		return true
	}}
	e := newTestEngine(oracle, nil)

	got := mustInstantiate(t, e, cond, Identity())
	if got.String() != "[Num | Str, never]" {
		t.Errorf("got %s, want [Num | Str, never]: repeated captures union, unreached infer binds to never", got)
	}
}

func TestRecursionLimit(t *testing.T) {
	deep := Type(atomStr)
	for i := 0; i < 10; i++ {
		deep = TTuple{Elements: []Type{deep}}
	}
	e := NewEngine(&fakeOracle{}, nil, 5)

	_, err := e.Instantiate(deep, Identity())
	var limitErr *RecursionLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("err = %v, want RecursionLimitError", err)
	}
	if limitErr.Limit != 5 {
		t.Errorf("Limit = %d, want 5", limitErr.Limit)
	}
}

func TestMalformedTerm(t *testing.T) {
	stray := TParam{ID: 42, Name: "Stray"}
	e := newTestEngine(&fakeOracle{}, fakeConstraints{})

	tests := []struct {
		name string
		typ  Type
	}{
		{"Bare Free Parameter", stray},
		{"Check Of Conditional", NewConditional(stray, atomStr, atomYes, atomNo)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Instantiate(tt.typ, Identity())
			var malformed *MalformedTermError
			if !errors.As(err, &malformed) {
				t.Fatalf("err = %v, want MalformedTermError", err)
			}
			if !SameParam(malformed.Param, stray) {
				t.Errorf("Param = %s, want Stray", malformed.Param)
			}
		})
	}
}

func TestInferredParameterNeedsNoScope(t *testing.T) {
	// Inference-introduced parameters are bound by their extends clause,
	// not by a declaration site; passing one through must not trip the
	// scope check.
	r := TParam{ID: 7, Name: "R", Inferred: true}
	e := newTestEngine(&fakeOracle{}, fakeConstraints{})

	got := mustInstantiate(t, e, r, Identity())
	if !Equal(got, r) {
		t.Errorf("got %s, want R", got)
	}
}

func TestOracleInconsistency(t *testing.T) {
	x := TParam{ID: 1, Name: "X"}
	cond := NewConditional(x, atomStr, atomYes, atomNo)

	// Rigged to fail the generous test and pass the strict one.
	oracle := &fakeOracle{fn: func(source, tgt Type, inf *InferenceContext) bool {
		return !IsWildcard(source)
	}}
	e := newTestEngine(oracle, fakeConstraints{x.ID: atomStr})

	_, err := e.Instantiate(cond, Identity())
	var inconsistent *OracleInconsistencyError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("err = %v, want OracleInconsistencyError", err)
	}
}

func TestGroundInstantiationIsIdempotent(t *testing.T) {
	e := newTestEngine(&fakeOracle{}, nil)

	tests := []Type{
		atomStr,
		Never,
		NewUnion([]Type{atomStr, atomNum}),
		TTuple{Elements: []Type{atomStr, TTuple{Elements: []Type{atomNum}}}},
	}
	for _, typ := range tests {
		got := mustInstantiate(t, e, typ, Identity())
		if !Equal(got, typ) {
			t.Errorf("Instantiate(%s) = %s, want unchanged", typ, got)
		}
		again := mustInstantiate(t, e, got, Identity())
		if !Equal(again, got) {
			t.Errorf("second pass changed %s to %s", got, again)
		}
	}
}

func TestResolveKind(t *testing.T) {
	x := TParam{ID: 1, Name: "X"}
	cond := NewConditional(x, atomStr, atomYes, atomNo)
	e := newTestEngine(&fakeOracle{}, fakeConstraints{x.ID: Unknown})

	deferred, err := e.ResolveKind(cond, Identity())
	if err != nil {
		t.Fatalf("ResolveKind error: %v", err)
	}
	if deferred.Kind != OutcomeDeferred {
		t.Errorf("free check: Kind = %s, want deferred", deferred.Kind)
	}

	resolved, err := e.ResolveKind(cond, Extend(Identity(), x, atomStr))
	if err != nil {
		t.Fatalf("ResolveKind error: %v", err)
	}
	if resolved.Kind != OutcomeResolved {
		t.Errorf("bound check: Kind = %s, want resolved", resolved.Kind)
	}
	if !Equal(resolved.Type, atomYes) {
		t.Errorf("resolved.Type = %s, want True", resolved.Type)
	}
}
