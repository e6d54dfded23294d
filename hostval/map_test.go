package hostval

import (
	"testing"
)

func TestMap_Wrapper(t *testing.T) {
	env := NewLocalEnv()
	m, err := NewMap(env)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := m.Put(sym("y"), I32Val(2))
	if err != nil {
		t.Fatal(err)
	}
	m2, err = m2.Put(sym("x"), I32Val(1))
	if err != nil {
		t.Fatal(err)
	}

	if n, _ := m.Len(); n != 0 {
		t.Error("Put changed the receiver")
	}
	if n, _ := m2.Len(); n != 2 {
		t.Errorf("Len = %d", n)
	}
	if has, _ := m2.Has(sym("x")); !has {
		t.Error("Has(x) = false")
	}
	if v, ok, _ := m2.Get(sym("y")); !ok || v != I32Val(2) {
		t.Errorf("Get(y) = %v, %v", v, ok)
	}
	keys, err := m2.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != sym("x") || keys[1] != sym("y") {
		t.Errorf("Keys = %v", keys)
	}

	m3, err := m2.Del(sym("x"))
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := m3.Len(); n != 1 {
		t.Errorf("after Del len = %d", n)
	}

	again, err := AsMap(env, m3.Val())
	if err != nil {
		t.Fatal(err)
	}
	if again.Val() != m3.Val() {
		t.Error("AsMap should wrap the same value")
	}
}

func TestAsMap_Rejects(t *testing.T) {
	env := NewLocalEnv()
	vec, _ := env.VecNew()
	for _, v := range []Val{vec, U32Val(1), Unit()} {
		if _, err := AsMap(env, v); err == nil {
			t.Errorf("AsMap(%v) should fail", v)
		}
	}
}

func TestPair(t *testing.T) {
	env := NewLocalEnv()
	p, err := NewPair(env, sym("Circle"), I32Val(5))
	if err != nil {
		t.Fatal(err)
	}
	a, b, err := SplitPair(env, p)
	if err != nil {
		t.Fatal(err)
	}
	if a != sym("Circle") || b != I32Val(5) {
		t.Errorf("SplitPair = %v, %v", a, b)
	}

	triple, _ := NewVec(env, Unit(), Unit(), Unit())
	if _, _, err := SplitPair(env, triple); err == nil {
		t.Error("three-element vec is not a pair")
	}
	m, _ := env.MapNew()
	if _, _, err := SplitPair(env, m); err == nil {
		t.Error("map is not a pair")
	}
}
