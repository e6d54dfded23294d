package codec

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/hostval"
	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/symbol"
)

// node converts one Go type to and from host values. Decode writes into
// rv, which must be settable.
type node interface {
	encode(env hostval.Env, rv reflect.Value, path []string) (hostval.Val, error)
	decode(env hostval.Env, v hostval.Val, rv reflect.Value, path []string) error
}

// compile returns the node for a resolved type and its Go type.
func (r *Registry) compile(td schema.TypeDef, gt reflect.Type, path []string) (node, error) {
	key := nodeKey{goType: gt, typ: td.String()}
	if cached, ok := r.nodes.Load(key); ok {
		return cached.(node), nil
	}

	n, err := r.build(td, gt, path)
	if err != nil {
		return nil, err
	}
	actual, _ := r.nodes.LoadOrStore(key, n)
	return actual.(node), nil
}

func (r *Registry) build(td schema.TypeDef, gt reflect.Type, path []string) (node, error) {
	mismatch := func() error {
		return errors.TypeMismatch(errors.PhaseGenerate, path, gt.String(), td.String())
	}

	switch td.Kind {
	case schema.KindU32, schema.KindI32, schema.KindU64, schema.KindI64,
		schema.KindBool, schema.KindSymbol, schema.KindBitset, schema.KindStatus:
		if !scalarMatches(td.Kind, gt) {
			return nil, mismatch()
		}
		return scalarNode{kind: td.Kind}, nil

	case schema.KindBinary:
		if gt.Kind() != reflect.Slice || gt.Elem().Kind() != reflect.Uint8 {
			return nil, mismatch()
		}
		return binaryNode{}, nil

	case schema.KindOption:
		if gt.Kind() != reflect.Ptr {
			return nil, mismatch()
		}
		elem, err := r.compile(*td.Elem, gt.Elem(), path)
		if err != nil {
			return nil, err
		}
		return &optionNode{elem: elem, elemType: gt.Elem()}, nil

	case schema.KindVec:
		if gt.Kind() != reflect.Slice {
			return nil, mismatch()
		}
		elem, err := r.compile(*td.Elem, gt.Elem(), path)
		if err != nil {
			return nil, err
		}
		return &vecNode{elem: elem}, nil

	case schema.KindSet:
		if gt.Kind() != reflect.Map || !isUnitStruct(gt.Elem()) {
			return nil, mismatch()
		}
		key, err := r.compile(*td.Elem, gt.Key(), path)
		if err != nil {
			return nil, err
		}
		return &setNode{key: key}, nil

	case schema.KindMap:
		if gt.Kind() != reflect.Map {
			return nil, mismatch()
		}
		key, err := r.compile(*td.Key, gt.Key(), path)
		if err != nil {
			return nil, err
		}
		value, err := r.compile(*td.Value, gt.Elem(), path)
		if err != nil {
			return nil, err
		}
		return &mapNode{key: key, value: value}, nil

	case schema.KindTuple:
		if gt.Kind() != reflect.Struct || gt.NumField() != len(td.Elems) {
			return nil, mismatch()
		}
		elems := make([]node, len(td.Elems))
		for i, et := range td.Elems {
			n, err := r.compile(et, gt.Field(i).Type, path)
			if err != nil {
				return nil, err
			}
			elems[i] = n
		}
		return &tupleNode{elems: elems}, nil

	case schema.KindUDT:
		if gt.Kind() != reflect.Struct {
			return nil, mismatch()
		}
		return &udtNode{reg: r, name: td.Name}, nil
	}

	return nil, errors.UnsupportedType(errors.PhaseGenerate, path, "no codec for "+td.String())
}

func scalarMatches(k schema.Kind, gt reflect.Type) bool {
	switch k {
	case schema.KindSymbol:
		return gt == symbolType
	case schema.KindBitset:
		return gt == bitsetType
	case schema.KindStatus:
		return gt == statusType
	case schema.KindU32:
		return gt.Kind() == reflect.Uint32
	case schema.KindI32:
		return gt.Kind() == reflect.Int32
	case schema.KindU64:
		return gt.Kind() == reflect.Uint64
	case schema.KindI64:
		return gt.Kind() == reflect.Int64
	case schema.KindBool:
		return gt.Kind() == reflect.Bool
	}
	return false
}

// decodeMismatch reports a host value of the wrong shape.
func decodeMismatch(path []string, rv reflect.Value, want string, got hostval.Val) error {
	return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
		Path(path...).
		GoType(rv.Type().String()).
		TypeName(want).
		Value(got.String()).
		Detail("got %s", got.Tag()).
		Build()
}

// hostErr moves a host failure into the given phase so callers see a
// single error class per operation.
func hostErr(phase errors.Phase, path []string, err error) error {
	if e, ok := err.(*errors.Error); ok && e.Phase == phase {
		return e
	}
	kind := errors.KindTypeMismatch
	if phase == errors.PhaseEncode {
		kind = errors.KindInvalidData
	}
	return errors.New(phase, kind).Path(path...).Cause(err).Build()
}

type scalarNode struct {
	kind schema.Kind
}

func (n scalarNode) encode(_ hostval.Env, rv reflect.Value, _ []string) (hostval.Val, error) {
	switch n.kind {
	case schema.KindU32:
		return hostval.U32Val(uint32(rv.Uint())), nil
	case schema.KindI32:
		return hostval.I32Val(int32(rv.Int())), nil
	case schema.KindU64:
		return hostval.U64Val(rv.Uint()), nil
	case schema.KindI64:
		return hostval.I64Val(rv.Int()), nil
	case schema.KindBool:
		return hostval.BoolVal(rv.Bool()), nil
	case schema.KindSymbol:
		return hostval.SymbolVal(symbol.Symbol(rv.Uint())), nil
	case schema.KindBitset:
		return hostval.BitsetVal(hostval.Bitset(rv.Uint())), nil
	default:
		return hostval.StatusVal(rv.Interface().(hostval.Status)), nil
	}
}

func (n scalarNode) decode(_ hostval.Env, v hostval.Val, rv reflect.Value, path []string) error {
	ok := false
	switch n.kind {
	case schema.KindU32:
		var x uint32
		if x, ok = v.U32(); ok {
			rv.SetUint(uint64(x))
		}
	case schema.KindI32:
		var x int32
		if x, ok = v.I32(); ok {
			rv.SetInt(int64(x))
		}
	case schema.KindU64:
		var x uint64
		if x, ok = v.U64(); ok {
			rv.SetUint(x)
		}
	case schema.KindI64:
		var x int64
		if x, ok = v.I64(); ok {
			rv.SetInt(x)
		}
	case schema.KindBool:
		var x bool
		if x, ok = v.Bool(); ok {
			rv.SetBool(x)
		}
	case schema.KindSymbol:
		var x symbol.Symbol
		if x, ok = v.Symbol(); ok {
			rv.SetUint(uint64(x))
		}
	case schema.KindBitset:
		var x hostval.Bitset
		if x, ok = v.Bitset(); ok {
			rv.SetUint(uint64(x))
		}
	case schema.KindStatus:
		var x hostval.Status
		if x, ok = v.Status(); ok {
			rv.Set(reflect.ValueOf(x))
		}
	}
	if !ok {
		return decodeMismatch(path, rv, n.kind.String(), v)
	}
	return nil
}

type binaryNode struct{}

func (binaryNode) encode(env hostval.Env, rv reflect.Value, path []string) (hostval.Val, error) {
	v, err := env.BinaryNew(rv.Bytes())
	if err != nil {
		return hostval.Val{}, hostErr(errors.PhaseEncode, path, err)
	}
	return v, nil
}

func (binaryNode) decode(env hostval.Env, v hostval.Val, rv reflect.Value, path []string) error {
	if t, ok := env.ObjectType(v); !ok || t != hostval.ObjectBinary {
		return decodeMismatch(path, rv, "Binary", v)
	}
	b, err := env.BinaryBytes(v)
	if err != nil {
		return hostErr(errors.PhaseDecode, path, err)
	}
	rv.SetBytes(b)
	return nil
}

// optionNode encodes None as unit.
type optionNode struct {
	elem     node
	elemType reflect.Type
}

func (n *optionNode) encode(env hostval.Env, rv reflect.Value, path []string) (hostval.Val, error) {
	if rv.IsNil() {
		return hostval.Unit(), nil
	}
	return n.elem.encode(env, rv.Elem(), path)
}

func (n *optionNode) decode(env hostval.Env, v hostval.Val, rv reflect.Value, path []string) error {
	if v.IsUnit() {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	p := reflect.New(n.elemType)
	if err := n.elem.decode(env, v, p.Elem(), path); err != nil {
		return err
	}
	rv.Set(p)
	return nil
}

type vecNode struct {
	elem node
}

func (n *vecNode) encode(env hostval.Env, rv reflect.Value, path []string) (hostval.Val, error) {
	vec, err := env.VecNew()
	if err != nil {
		return hostval.Val{}, hostErr(errors.PhaseEncode, path, err)
	}
	for i := 0; i < rv.Len(); i++ {
		ev, err := n.elem.encode(env, rv.Index(i), indexPath(path, i))
		if err != nil {
			return hostval.Val{}, err
		}
		if vec, err = env.VecPush(vec, ev); err != nil {
			return hostval.Val{}, hostErr(errors.PhaseEncode, path, err)
		}
	}
	return vec, nil
}

func (n *vecNode) decode(env hostval.Env, v hostval.Val, rv reflect.Value, path []string) error {
	if t, ok := env.ObjectType(v); !ok || t != hostval.ObjectVec {
		return decodeMismatch(path, rv, "Vec", v)
	}
	items, err := hostval.VecItems(env, v)
	if err != nil {
		return hostErr(errors.PhaseDecode, path, err)
	}
	s := reflect.MakeSlice(rv.Type(), len(items), len(items))
	for i, item := range items {
		if err := n.elem.decode(env, item, s.Index(i), indexPath(path, i)); err != nil {
			return err
		}
	}
	rv.Set(s)
	return nil
}

// setNode encodes a set as a host map with unit values.
type setNode struct {
	key node
}

func (n *setNode) encode(env hostval.Env, rv reflect.Value, path []string) (hostval.Val, error) {
	m, err := hostval.NewMap(env)
	if err != nil {
		return hostval.Val{}, hostErr(errors.PhaseEncode, path, err)
	}
	iter := rv.MapRange()
	for iter.Next() {
		k, err := n.key.encode(env, iter.Key(), path)
		if err != nil {
			return hostval.Val{}, err
		}
		if m, err = m.Put(k, hostval.Unit()); err != nil {
			return hostval.Val{}, hostErr(errors.PhaseEncode, path, err)
		}
	}
	return m.Val(), nil
}

func (n *setNode) decode(env hostval.Env, v hostval.Val, rv reflect.Value, path []string) error {
	m, err := hostval.AsMap(env, v)
	if err != nil {
		return decodeMismatch(path, rv, "Set", v)
	}
	keys, err := m.Keys()
	if err != nil {
		return hostErr(errors.PhaseDecode, path, err)
	}
	out := reflect.MakeMapWithSize(rv.Type(), len(keys))
	unit := reflect.Zero(rv.Type().Elem())
	for i, k := range keys {
		if val, _, err := m.Get(k); err != nil {
			return hostErr(errors.PhaseDecode, path, err)
		} else if !val.IsUnit() {
			return decodeMismatch(indexPath(path, i), unit, "unit", val)
		}
		kv := reflect.New(rv.Type().Key()).Elem()
		if err := n.key.decode(env, k, kv, indexPath(path, i)); err != nil {
			return err
		}
		out.SetMapIndex(kv, unit)
	}
	rv.Set(out)
	return nil
}

type mapNode struct {
	key   node
	value node
}

func (n *mapNode) encode(env hostval.Env, rv reflect.Value, path []string) (hostval.Val, error) {
	m, err := hostval.NewMap(env)
	if err != nil {
		return hostval.Val{}, hostErr(errors.PhaseEncode, path, err)
	}
	iter := rv.MapRange()
	for iter.Next() {
		kpath := appendPath(path, fmt.Sprint(iter.Key().Interface()))
		k, err := n.key.encode(env, iter.Key(), kpath)
		if err != nil {
			return hostval.Val{}, err
		}
		v, err := n.value.encode(env, iter.Value(), kpath)
		if err != nil {
			return hostval.Val{}, err
		}
		if m, err = m.Put(k, v); err != nil {
			return hostval.Val{}, hostErr(errors.PhaseEncode, kpath, err)
		}
	}
	return m.Val(), nil
}

func (n *mapNode) decode(env hostval.Env, v hostval.Val, rv reflect.Value, path []string) error {
	m, err := hostval.AsMap(env, v)
	if err != nil {
		return decodeMismatch(path, rv, "Map", v)
	}
	keys, err := m.Keys()
	if err != nil {
		return hostErr(errors.PhaseDecode, path, err)
	}
	out := reflect.MakeMapWithSize(rv.Type(), len(keys))
	for i, k := range keys {
		kpath := indexPath(path, i)
		kv := reflect.New(rv.Type().Key()).Elem()
		if err := n.key.decode(env, k, kv, kpath); err != nil {
			return err
		}
		hv, _, err := m.Get(k)
		if err != nil {
			return hostErr(errors.PhaseDecode, kpath, err)
		}
		vv := reflect.New(rv.Type().Elem()).Elem()
		if err := n.value.decode(env, hv, vv, kpath); err != nil {
			return err
		}
		out.SetMapIndex(kv, vv)
	}
	rv.Set(out)
	return nil
}

// tupleNode maps an anonymous Go struct onto a host vector.
type tupleNode struct {
	elems []node
}

func (n *tupleNode) encode(env hostval.Env, rv reflect.Value, path []string) (hostval.Val, error) {
	items := make([]hostval.Val, len(n.elems))
	for i, e := range n.elems {
		v, err := e.encode(env, rv.Field(i), indexPath(path, i))
		if err != nil {
			return hostval.Val{}, err
		}
		items[i] = v
	}
	v, err := hostval.NewVec(env, items...)
	if err != nil {
		return hostval.Val{}, hostErr(errors.PhaseEncode, path, err)
	}
	return v, nil
}

func (n *tupleNode) decode(env hostval.Env, v hostval.Val, rv reflect.Value, path []string) error {
	if t, ok := env.ObjectType(v); !ok || t != hostval.ObjectVec {
		return decodeMismatch(path, rv, "tuple", v)
	}
	items, err := hostval.VecItems(env, v)
	if err != nil {
		return hostErr(errors.PhaseDecode, path, err)
	}
	if len(items) != len(n.elems) {
		return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(path...).
			GoType(rv.Type().String()).
			Value(len(items)).
			Detail("tuple of %d elements, got %d", len(n.elems), len(items)).
			Build()
	}
	out := reflect.New(rv.Type()).Elem()
	for i, e := range n.elems {
		if err := e.decode(env, items[i], out.Field(i), indexPath(path, i)); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

// udtNode resolves a user-defined type through the registry on each call,
// so types may reference each other regardless of registration order.
type udtNode struct {
	reg  *Registry
	name string
}

func (n *udtNode) resolve(phase errors.Phase, rv reflect.Value, path []string) (*udt, error) {
	u, ok := n.reg.lookup(n.name)
	if !ok {
		err := errors.NotFound(phase, "type", n.name)
		err.Path = path
		return nil, err
	}
	if u.goType != rv.Type() {
		return nil, errors.TypeMismatch(phase, path, rv.Type().String(), n.name)
	}
	return u, nil
}

func (n *udtNode) encode(env hostval.Env, rv reflect.Value, path []string) (hostval.Val, error) {
	u, err := n.resolve(errors.PhaseEncode, rv, path)
	if err != nil {
		return hostval.Val{}, err
	}
	return u.encode(env, rv, path)
}

func (n *udtNode) decode(env hostval.Env, v hostval.Val, rv reflect.Value, path []string) error {
	u, err := n.resolve(errors.PhaseDecode, rv, path)
	if err != nil {
		return err
	}
	return u.decode(env, v, rv, path)
}

func indexPath(path []string, i int) []string {
	return appendPath(path, "["+strconv.Itoa(i)+"]")
}
