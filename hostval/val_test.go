package hostval

import (
	"math"
	"testing"

	"github.com/wippyai/contractgen/symbol"
)

func TestVal_RoundTrip(t *testing.T) {
	if !Unit().IsUnit() || (Val{}).Tag() != TagUnit {
		t.Error("zero Val should be unit")
	}
	if b, ok := BoolVal(true).Bool(); !ok || !b {
		t.Error("BoolVal(true)")
	}
	if b, ok := BoolVal(false).Bool(); !ok || b {
		t.Error("BoolVal(false)")
	}
	if x, ok := U32Val(math.MaxUint32).U32(); !ok || x != math.MaxUint32 {
		t.Errorf("U32 = %d", x)
	}
	if x, ok := I32Val(math.MinInt32).I32(); !ok || x != math.MinInt32 {
		t.Errorf("I32 = %d", x)
	}
	if x, ok := U64Val(math.MaxUint64).U64(); !ok || x != math.MaxUint64 {
		t.Errorf("U64 = %d", x)
	}
	if x, ok := I64Val(-1).I64(); !ok || x != -1 {
		t.Errorf("I64 = %d", x)
	}
	sym := symbol.MustNew("Circle")
	if s, ok := SymbolVal(sym).Symbol(); !ok || s != sym {
		t.Errorf("Symbol = %v", s)
	}
	if b, ok := BitsetVal(0xF0).Bitset(); !ok || b != 0xF0 {
		t.Errorf("Bitset = %#x", b)
	}
	st := Status{Type: 3, Code: math.MaxUint32}
	if s, ok := StatusVal(st).Status(); !ok || s != st {
		t.Errorf("Status = %+v", s)
	}
}

func TestVal_WrongTag(t *testing.T) {
	v := I32Val(5)
	if _, ok := v.U32(); ok {
		t.Error("i32 should not read as u32")
	}
	if _, ok := v.I64(); ok {
		t.Error("i32 should not read as i64")
	}
	if _, ok := v.Object(); ok {
		t.Error("i32 should not read as object")
	}
	if I32Val(1) == U32Val(1) {
		t.Error("values with different tags must differ")
	}
}

func TestVal_String(t *testing.T) {
	tests := []struct {
		v    Val
		want string
	}{
		{Unit(), "()"},
		{BoolVal(true), "true"},
		{I32Val(-7), "-7i32"},
		{U64Val(9), "9u64"},
		{SymbolVal(symbol.MustNew("x")), "sym:x"},
		{StatusVal(Status{Type: 1, Code: 2}), "status:1/2"},
		{objectVal(4), "obj#4"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
