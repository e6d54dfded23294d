package symbol

import (
	"errors"
	"strings"
	"sync"
	"testing"

	cgerrors "github.com/wippyai/contractgen/errors"
)

func TestNew_RoundTrip(t *testing.T) {
	names := []string{"x", "y", "Circle", "Empty", "accid", "asset_a", "_", "0", "Z9_az", "abcdefghij"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			s, err := New(name)
			if err != nil {
				t.Fatalf("New(%q): %v", name, err)
			}
			if got := s.String(); got != name {
				t.Errorf("String() = %q, want %q", got, name)
			}
			if s.Len() != len(name) {
				t.Errorf("Len() = %d, want %d", s.Len(), len(name))
			}
		})
	}
}

func TestNew_Bound(t *testing.T) {
	atMax := strings.Repeat("a", MaxLen)
	if _, err := New(atMax); err != nil {
		t.Errorf("name of length %d should succeed: %v", MaxLen, err)
	}

	overMax := strings.Repeat("a", MaxLen+1)
	_, err := New(overMax)
	if err == nil {
		t.Fatalf("name of length %d should fail", MaxLen+1)
	}
	if !errors.Is(err, &cgerrors.Error{Phase: cgerrors.PhaseGenerate, Kind: cgerrors.KindIdentifierTooLong}) {
		t.Errorf("err = %v, want identifier_too_long", err)
	}
	if !strings.Contains(err.Error(), overMax) {
		t.Errorf("error %q should name the identifier", err)
	}
}

func TestNew_InvalidChars(t *testing.T) {
	tests := []string{"", "a-b", "a b", "ü", "x.y"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(name)
			if !errors.Is(err, &cgerrors.Error{Phase: cgerrors.PhaseGenerate, Kind: cgerrors.KindInvalidIdentifier}) {
				t.Errorf("New(%q) err = %v, want invalid_identifier", name, err)
			}
		})
	}
}

func TestNew_Distinct(t *testing.T) {
	a := MustNew("ab")
	b := MustNew("ba")
	c := MustNew("_ab")
	if a == b || a == c || b == c {
		t.Errorf("symbols collide: %d %d %d", a, b, c)
	}
	if MustNew("ab") != a {
		t.Error("same name must produce the same symbol")
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew should panic on invalid name")
		}
	}()
	MustNew("assetpoolcirculating")
}

func TestCheckName(t *testing.T) {
	if err := CheckName(strings.Repeat("T", 60), 60); err != nil {
		t.Errorf("60 char type name: %v", err)
	}
	if err := CheckName(strings.Repeat("T", 61), 60); err == nil {
		t.Error("61 char type name should fail")
	}
}

func TestTable_Intern(t *testing.T) {
	tab := NewTable()
	s1, err := tab.Intern("amount")
	if err != nil {
		t.Fatal(err)
	}
	s2, err := tab.Intern("amount")
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 || s1 != MustNew("amount") {
		t.Error("interned symbols must be identical")
	}
	if tab.Len() != 1 {
		t.Errorf("Len = %d, want 1", tab.Len())
	}

	if _, err := tab.Intern("much_too_long"); err == nil {
		t.Error("Intern should reject long names")
	}
	if tab.Len() != 1 {
		t.Error("invalid names must not be cached")
	}
}

func TestTable_Concurrent(t *testing.T) {
	tab := NewTable()
	var wg sync.WaitGroup
	results := make([]Symbol, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = tab.Intern("shared")
		}(i)
	}
	wg.Wait()
	for _, s := range results {
		if s != results[0] {
			t.Fatal("concurrent interning produced different symbols")
		}
	}
}
