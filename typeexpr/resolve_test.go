package typeexpr

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/schema"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  schema.TypeDef
	}{
		{"u32", schema.Scalar(schema.KindU32)},
		{"i32", schema.Scalar(schema.KindI32)},
		{"u64", schema.Scalar(schema.KindU64)},
		{"i64", schema.Scalar(schema.KindI64)},
		{"bool", schema.Scalar(schema.KindBool)},
		{"Symbol", schema.Scalar(schema.KindSymbol)},
		{"sdk::Symbol", schema.Scalar(schema.KindSymbol)},
		{"Bitset", schema.Scalar(schema.KindBitset)},
		{"Status", schema.Scalar(schema.KindStatus)},
		{"Binary", schema.Scalar(schema.KindBinary)},
		{"Point", schema.UDT("Point")},
		{"Option<u64>", schema.Option(schema.Scalar(schema.KindU64))},
		{"Set<Symbol>", schema.Set(schema.Scalar(schema.KindSymbol))},
		{"Map<Symbol, i32>", schema.Map(schema.Scalar(schema.KindSymbol), schema.Scalar(schema.KindI32))},
		{"Vec<Option<u64>>", schema.Vec(schema.Option(schema.Scalar(schema.KindU64)))},
		{"(i32, Point)", schema.Tuple(schema.Scalar(schema.KindI32), schema.UDT("Point"))},
		{"()", schema.Tuple()},
		{"(bool)", schema.Scalar(schema.KindBool)},
	}
	var r Resolver
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := r.ResolveString(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Scenario C: nested generics resolve structurally.
func TestResolve_NestedGenerics(t *testing.T) {
	var r Resolver
	m, err := r.Resolve(Named("Map", Named("Symbol"), Named("i32")))
	if err != nil {
		t.Fatal(err)
	}
	if m.Kind != schema.KindMap || m.Key.Kind != schema.KindSymbol || m.Value.Kind != schema.KindI32 {
		t.Errorf("Map<Symbol, i32> = %v", m)
	}

	v, err := r.Resolve(Named("Vec", Named("Option", Named("u64"))))
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != schema.KindVec || v.Elem.Kind != schema.KindOption || v.Elem.Elem.Kind != schema.KindU64 {
		t.Errorf("Vec<Option<u64>> = %v", v)
	}
}

func TestResolve_Unsupported(t *testing.T) {
	tests := []string{
		"Vec",
		"Vec<u32, u32>",
		"Option<u32, bool>",
		"Map<u32>",
		"Map<u32, i32, bool>",
		"u32<bool>",
		"HashMap<u32, u32>",
		"Result<u32, Symbol>",
		"Vec<Map<u32>>",
	}
	var r Resolver
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := r.ResolveString(input)
			if !errors.Is(err, &cgerrors.Error{Phase: cgerrors.PhaseGenerate, Kind: cgerrors.KindUnsupportedType}) {
				t.Errorf("Resolve(%q) err = %v, want unsupported_type", input, err)
			}
		})
	}

	// Case-sensitive keywords: near misses are user-defined references.
	got, err := r.ResolveString("U32")
	if err != nil || got.Kind != schema.KindUDT {
		t.Errorf("U32 = %v, %v; want UDT", got, err)
	}
}

func TestResolve_TypeNames(t *testing.T) {
	var r Resolver
	if _, err := r.Resolve(Named(strings.Repeat("T", schema.MaxNameLen))); err != nil {
		t.Errorf("name of %d chars: %v", schema.MaxNameLen, err)
	}
	_, err := r.Resolve(Named(strings.Repeat("T", schema.MaxNameLen+1)))
	if !errors.Is(err, &cgerrors.Error{Phase: cgerrors.PhaseGenerate, Kind: cgerrors.KindIdentifierTooLong}) {
		t.Errorf("long name err = %v", err)
	}
	_, err = r.Resolve(Named("Bad-Name"))
	if !errors.Is(err, &cgerrors.Error{Phase: cgerrors.PhaseGenerate, Kind: cgerrors.KindInvalidIdentifier}) {
		t.Errorf("bad name err = %v", err)
	}
}

func TestResolve_DepthGuard(t *testing.T) {
	nest := func(n int) Expr {
		e := Named("u32")
		for i := 0; i < n; i++ {
			e = Named("Vec", e)
		}
		return e
	}

	var r Resolver
	if _, err := r.Resolve(nest(schema.MaxDepth - 1)); err != nil {
		t.Errorf("depth %d should resolve: %v", schema.MaxDepth, err)
	}
	_, err := r.Resolve(nest(schema.MaxDepth))
	var ce *cgerrors.Error
	if !errors.As(err, &ce) || ce.Kind != cgerrors.KindDepthExceeded {
		t.Fatalf("err = %v, want depth_exceeded", err)
	}
	if ce.Value != schema.MaxDepth {
		t.Errorf("Value = %v, want %d", ce.Value, schema.MaxDepth)
	}

	shallow := Resolver{MaxDepth: 3}
	if _, err := shallow.Resolve(nest(2)); err != nil {
		t.Errorf("depth 3 with limit 3: %v", err)
	}
	if _, err := shallow.Resolve(nest(3)); err == nil {
		t.Error("depth 4 with limit 3 should fail")
	}
}

func TestResolve_MatchesSchemaEncoding(t *testing.T) {
	var r Resolver
	td, err := r.ResolveString("Map<Symbol, Vec<(Point, Option<Binary>)>>")
	if err != nil {
		t.Fatal(err)
	}
	if got := td.String(); got != "Map<Symbol, Vec<(Point, Option<Binary>)>>" {
		t.Errorf("String = %q", got)
	}
}
