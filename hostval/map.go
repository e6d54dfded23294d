package hostval

import (
	"github.com/wippyai/contractgen/errors"
)

// Map is a typed handle on a host map object. Put and Del return a new Map;
// the receiver keeps referring to the original object.
type Map struct {
	env Env
	val Val
}

// NewMap creates an empty map in env.
func NewMap(env Env) (Map, error) {
	v, err := env.MapNew()
	if err != nil {
		return Map{}, err
	}
	return Map{env: env, val: v}, nil
}

// AsMap wraps v, which must reference a map object.
func AsMap(env Env, v Val) (Map, error) {
	if t, ok := env.ObjectType(v); !ok || t != ObjectMap {
		return Map{}, errors.New(errors.PhaseHost, errors.KindTypeMismatch).
			TypeName("map").
			Value(v.String()).
			Detail("value is not a map object").
			Build()
	}
	return Map{env: env, val: v}, nil
}

// Val returns the underlying host value.
func (m Map) Val() Val { return m.val }

func (m Map) Has(k Val) (bool, error) {
	return m.env.MapHas(m.val, k)
}

func (m Map) Get(k Val) (Val, bool, error) {
	return m.env.MapGet(m.val, k)
}

func (m Map) Put(k, v Val) (Map, error) {
	nv, err := m.env.MapPut(m.val, k, v)
	if err != nil {
		return Map{}, err
	}
	return Map{env: m.env, val: nv}, nil
}

func (m Map) Del(k Val) (Map, error) {
	nv, err := m.env.MapDel(m.val, k)
	if err != nil {
		return Map{}, err
	}
	return Map{env: m.env, val: nv}, nil
}

func (m Map) Len() (int, error) {
	return m.env.MapLen(m.val)
}

// Keys returns the keys in key order.
func (m Map) Keys() ([]Val, error) {
	kv, err := m.env.MapKeys(m.val)
	if err != nil {
		return nil, err
	}
	return VecItems(m.env, kv)
}

// NewVec creates a vector holding items in order.
func NewVec(env Env, items ...Val) (Val, error) {
	v, err := env.VecNew()
	if err != nil {
		return Val{}, err
	}
	for _, x := range items {
		if v, err = env.VecPush(v, x); err != nil {
			return Val{}, err
		}
	}
	return v, nil
}

// VecItems returns every element of a vector.
func VecItems(env Env, v Val) ([]Val, error) {
	n, err := env.VecLen(v)
	if err != nil {
		return nil, err
	}
	items := make([]Val, n)
	for i := range items {
		if items[i], err = env.VecGet(v, i); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// NewPair creates a two-element vector.
func NewPair(env Env, a, b Val) (Val, error) {
	return NewVec(env, a, b)
}

// SplitPair returns the elements of a two-element vector.
func SplitPair(env Env, v Val) (Val, Val, error) {
	if t, ok := env.ObjectType(v); !ok || t != ObjectVec {
		return Val{}, Val{}, errors.New(errors.PhaseHost, errors.KindTypeMismatch).
			TypeName("pair").
			Value(v.String()).
			Detail("value is not a vec object").
			Build()
	}
	n, err := env.VecLen(v)
	if err != nil {
		return Val{}, Val{}, err
	}
	if n != 2 {
		return Val{}, Val{}, errors.New(errors.PhaseHost, errors.KindTypeMismatch).
			TypeName("pair").
			Value(n).
			Detail("expected 2 elements, got %d", n).
			Build()
	}
	a, err := env.VecGet(v, 0)
	if err != nil {
		return Val{}, Val{}, err
	}
	b, err := env.VecGet(v, 1)
	if err != nil {
		return Val{}, Val{}, err
	}
	return a, b, nil
}
