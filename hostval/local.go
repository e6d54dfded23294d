package hostval

import (
	"sort"
	"sync"

	"github.com/wippyai/contractgen/errors"
)

// LocalEnv is an in-memory Env. Objects are never freed; the environment
// lives as long as the values created in it. Safe for concurrent use.
type LocalEnv struct {
	objects []object
	mu      sync.RWMutex
}

type object struct {
	keys []Val // map keys, sorted
	vals []Val // map values parallel to keys, or vector elements
	data []byte
	typ  ObjectType
}

// NewLocalEnv creates an empty environment.
func NewLocalEnv() *LocalEnv {
	return &LocalEnv{objects: make([]object, 0, 64)}
}

// Len returns the number of objects created so far.
func (e *LocalEnv) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.objects)
}

// insert must be called with mu held for writing.
func (e *LocalEnv) insert(o object) Val {
	e.objects = append(e.objects, o)
	return objectVal(Handle(len(e.objects)))
}

// lookup must be called with mu held.
func (e *LocalEnv) lookup(v Val, want ObjectType) (*object, error) {
	h, ok := v.Object()
	if !ok {
		return nil, errors.New(errors.PhaseHost, errors.KindTypeMismatch).
			TypeName(want.String()).
			Value(v.String()).
			Detail("expected %s object, got %s", want, v.tag).
			Build()
	}
	if h == 0 || int(h) > len(e.objects) {
		return nil, errors.NotFound(errors.PhaseHost, "object", v.String())
	}
	o := &e.objects[h-1]
	if o.typ != want {
		return nil, errors.New(errors.PhaseHost, errors.KindTypeMismatch).
			TypeName(want.String()).
			Value(v.String()).
			Detail("expected %s object, got %s", want, o.typ).
			Build()
	}
	return o, nil
}

// search returns the index of k in keys and whether it is present.
func (e *LocalEnv) search(keys []Val, k Val) (int, bool) {
	i := sort.Search(len(keys), func(i int) bool {
		return e.compare(keys[i], k) >= 0
	})
	return i, i < len(keys) && e.compare(keys[i], k) == 0
}

func (e *LocalEnv) MapNew() (Val, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.insert(object{typ: ObjectMap}), nil
}

func (e *LocalEnv) MapPut(m, k, v Val) (Val, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, err := e.lookup(m, ObjectMap)
	if err != nil {
		return Val{}, err
	}
	i, found := e.search(o.keys, k)

	n := len(o.keys)
	if !found {
		n++
	}
	keys := make([]Val, 0, n)
	vals := make([]Val, 0, n)
	keys = append(keys, o.keys[:i]...)
	vals = append(vals, o.vals[:i]...)
	keys = append(keys, k)
	vals = append(vals, v)
	if found {
		i++
	}
	keys = append(keys, o.keys[i:]...)
	vals = append(vals, o.vals[i:]...)

	return e.insert(object{typ: ObjectMap, keys: keys, vals: vals}), nil
}

func (e *LocalEnv) MapGet(m, k Val) (Val, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	o, err := e.lookup(m, ObjectMap)
	if err != nil {
		return Val{}, false, err
	}
	i, found := e.search(o.keys, k)
	if !found {
		return Val{}, false, nil
	}
	return o.vals[i], true, nil
}

func (e *LocalEnv) MapHas(m, k Val) (bool, error) {
	_, ok, err := e.MapGet(m, k)
	return ok, err
}

func (e *LocalEnv) MapDel(m, k Val) (Val, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, err := e.lookup(m, ObjectMap)
	if err != nil {
		return Val{}, err
	}
	i, found := e.search(o.keys, k)
	if !found {
		return Val{}, errors.NotFound(errors.PhaseHost, "map key", k.String())
	}

	keys := make([]Val, 0, len(o.keys)-1)
	vals := make([]Val, 0, len(o.keys)-1)
	keys = append(append(keys, o.keys[:i]...), o.keys[i+1:]...)
	vals = append(append(vals, o.vals[:i]...), o.vals[i+1:]...)
	return e.insert(object{typ: ObjectMap, keys: keys, vals: vals}), nil
}

func (e *LocalEnv) MapLen(m Val) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	o, err := e.lookup(m, ObjectMap)
	if err != nil {
		return 0, err
	}
	return len(o.keys), nil
}

func (e *LocalEnv) MapKeys(m Val) (Val, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, err := e.lookup(m, ObjectMap)
	if err != nil {
		return Val{}, err
	}
	keys := append([]Val{}, o.keys...)
	return e.insert(object{typ: ObjectVec, vals: keys}), nil
}

func (e *LocalEnv) VecNew() (Val, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.insert(object{typ: ObjectVec}), nil
}

func (e *LocalEnv) VecPush(v, x Val) (Val, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, err := e.lookup(v, ObjectVec)
	if err != nil {
		return Val{}, err
	}
	vals := make([]Val, len(o.vals), len(o.vals)+1)
	copy(vals, o.vals)
	vals = append(vals, x)
	return e.insert(object{typ: ObjectVec, vals: vals}), nil
}

func (e *LocalEnv) VecGet(v Val, i int) (Val, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	o, err := e.lookup(v, ObjectVec)
	if err != nil {
		return Val{}, err
	}
	if i < 0 || i >= len(o.vals) {
		return Val{}, errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Value(i).
			Detail("index %d out of range for vec of length %d", i, len(o.vals)).
			Build()
	}
	return o.vals[i], nil
}

func (e *LocalEnv) VecLen(v Val) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	o, err := e.lookup(v, ObjectVec)
	if err != nil {
		return 0, err
	}
	return len(o.vals), nil
}

func (e *LocalEnv) BinaryNew(b []byte) (Val, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.insert(object{typ: ObjectBinary, data: append([]byte{}, b...)}), nil
}

func (e *LocalEnv) BinaryBytes(v Val) ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	o, err := e.lookup(v, ObjectBinary)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, o.data...), nil
}

func (e *LocalEnv) ObjectType(v Val) (ObjectType, bool) {
	h, ok := v.Object()
	if !ok || h == 0 {
		return 0, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if int(h) > len(e.objects) {
		return 0, false
	}
	return e.objects[h-1].typ, true
}

// Compare orders two values: by tag, then by content. Objects compare by
// type and then structurally, so equal contents compare equal regardless
// of handle.
func (e *LocalEnv) Compare(a, b Val) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.compare(a, b)
}

// compare must be called with mu held.
func (e *LocalEnv) compare(a, b Val) int {
	if a.tag != b.tag {
		return cmpInt(int(a.tag), int(b.tag))
	}
	switch a.tag {
	case TagI32:
		x, _ := a.I32()
		y, _ := b.I32()
		return cmpInt(int(x), int(y))
	case TagI64:
		x, _ := a.I64()
		y, _ := b.I64()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case TagObject:
		return e.compareObjects(a, b)
	}
	switch {
	case a.bits < b.bits:
		return -1
	case a.bits > b.bits:
		return 1
	}
	return 0
}

func (e *LocalEnv) compareObjects(a, b Val) int {
	ha, _ := a.Object()
	hb, _ := b.Object()
	if ha == hb {
		return 0
	}
	if ha == 0 || hb == 0 || int(ha) > len(e.objects) || int(hb) > len(e.objects) {
		return cmpInt(int(ha), int(hb))
	}
	oa, ob := &e.objects[ha-1], &e.objects[hb-1]
	if oa.typ != ob.typ {
		return cmpInt(int(oa.typ), int(ob.typ))
	}
	switch oa.typ {
	case ObjectBinary:
		for i := 0; i < len(oa.data) && i < len(ob.data); i++ {
			if c := cmpInt(int(oa.data[i]), int(ob.data[i])); c != 0 {
				return c
			}
		}
		return cmpInt(len(oa.data), len(ob.data))
	case ObjectMap:
		for i := 0; i < len(oa.keys) && i < len(ob.keys); i++ {
			if c := e.compare(oa.keys[i], ob.keys[i]); c != 0 {
				return c
			}
			if c := e.compare(oa.vals[i], ob.vals[i]); c != 0 {
				return c
			}
		}
		return cmpInt(len(oa.keys), len(ob.keys))
	default:
		for i := 0; i < len(oa.vals) && i < len(ob.vals); i++ {
			if c := e.compare(oa.vals[i], ob.vals[i]); c != 0 {
				return c
			}
		}
		return cmpInt(len(oa.vals), len(ob.vals))
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

var _ Env = (*LocalEnv)(nil)
