package typesystem

import (
	"testing"
)

func TestNewUnionNormalization(t *testing.T) {
	str := TAtom{Name: "Str"}
	num := TAtom{Name: "Num"}
	null := TAtom{Name: "Null"}

	tests := []struct {
		name    string
		members []Type
		want    string
	}{
		{
			name:    "Flatten Nested",
			members: []Type{str, TUnion{Types: []Type{num, null}}},
			want:    "Null | Num | Str",
		},
		{
			name:    "Drop Never Members",
			members: []Type{Never, str},
			want:    "Str",
		},
		{
			name:    "Collapse To Never",
			members: []Type{Never, Never},
			want:    "never",
		},
		{
			name:    "Empty Is Never",
			members: []Type{},
			want:    "never",
		},
		{
			name:    "Dedupe",
			members: []Type{str, str, num},
			want:    "Num | Str",
		},
		{
			name:    "Single Member Collapses",
			members: []Type{TUnion{Types: []Type{str, num}}},
			want:    "Num | Str",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewUnion(tt.members)
			if got.String() != tt.want {
				t.Errorf("NewUnion() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUnionOrderInsensitive(t *testing.T) {
	str := TAtom{Name: "Str"}
	num := TAtom{Name: "Num"}

	a := NewUnion([]Type{str, num})
	b := NewUnion([]Type{num, str})
	if !Equal(a, b) {
		t.Errorf("NewUnion member order should not matter: %s vs %s", a, b)
	}
}

func TestConditionalDistributiveFlag(t *testing.T) {
	p := TParam{ID: 1, Name: "P"}
	inferP := TParam{ID: 2, Name: "R", Inferred: true}
	str := TAtom{Name: "Str"}

	tests := []struct {
		name  string
		check Type
		want  bool
	}{
		{"Bare Parameter", p, true},
		{"Inferred Parameter", inferP, false},
		{"Atom", str, false},
		{"Tuple Wrapped Parameter", TTuple{Elements: []Type{p}}, false},
		{"Union Of Parameters", TUnion{Types: []Type{p, str}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConditional(tt.check, str, str, Never)
			if c.Distributive != tt.want {
				t.Errorf("Distributive = %v, want %v", c.Distributive, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	p1 := TParam{ID: 1, Name: "P"}
	p1Alias := TParam{ID: 1, Name: "Q"} // same site, different display name
	p2 := TParam{ID: 2, Name: "P"}
	str := TAtom{Name: "Str"}

	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"Param Identity Not Name", p1, p1Alias, true},
		{"Same Name Different Site", p1, p2, false},
		{"Atom By Name", str, TAtom{Name: "Str"}, true},
		{"Never Singleton", Never, TNever{}, true},
		{"Tuple Elementwise", TTuple{Elements: []Type{str}}, TTuple{Elements: []Type{str}}, true},
		{"Tuple Length", TTuple{Elements: []Type{str}}, TTuple{Elements: []Type{str, str}}, false},
		{"Atom Vs Param", str, p1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTermKeyKeepsParamSitesDistinct(t *testing.T) {
	// Two parameters with the same display name must not collapse when a
	// union is deduplicated.
	p1 := TParam{ID: 1, Name: "P"}
	p2 := TParam{ID: 2, Name: "P"}

	u := NewUnion([]Type{p1, p2})
	union, ok := u.(TUnion)
	if !ok {
		t.Fatalf("NewUnion() = %s, want a 2-member union", u)
	}
	if len(union.Types) != 2 {
		t.Errorf("union has %d members, want 2", len(union.Types))
	}
}

func TestContainsConditional(t *testing.T) {
	p := TParam{ID: 1, Name: "P"}
	str := TAtom{Name: "Str"}
	cond := NewConditional(p, str, str, Never)

	if !ContainsConditional(cond) {
		t.Errorf("conditional term should report itself")
	}
	if !ContainsConditional(TTuple{Elements: []Type{cond}}) {
		t.Errorf("conditional inside tuple should be found")
	}
	if !ContainsConditional(NewUnion([]Type{str, cond})) {
		t.Errorf("conditional inside union should be found")
	}
	if ContainsConditional(NewUnion([]Type{str, TAtom{Name: "Num"}})) {
		t.Errorf("union of atoms should not report a conditional")
	}
}

func TestStringRendering(t *testing.T) {
	p := TParam{ID: 1, Name: "X"}
	str := TAtom{Name: "Str"}
	num := TAtom{Name: "Num"}

	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"Never", Never, "never"},
		{"Unknown", Unknown, "unknown"},
		{"Tuple", TTuple{Elements: []Type{str, num}}, "[Str, Num]"},
		{"Conditional", NewConditional(p, str, num, p), "X extends Str ? Num : X"},
		{
			"Union Extends Parenthesized",
			NewConditional(p, NewUnion([]Type{str, num}), num, p),
			"X extends (Num | Str) ? Num : X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}
