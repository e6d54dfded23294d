package codec

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/gen"
	"github.com/wippyai/contractgen/hostval"
	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/symbol"
	"github.com/wippyai/contractgen/typeexpr"
)

// Enum converts values of the case-struct type T to and from
// (discriminant, payload) pairs. An Enum is immutable and safe for
// concurrent use.
type Enum[T any] struct {
	reg    *Registry
	result *gen.EnumResult
	goType reflect.Type
	name   string
	cases  []enumCase
}

type caseShape uint8

const (
	caseUnit    caseShape = iota // *struct{}
	caseWrapped                  // *struct{ V T }
	caseDirect                   // *T
)

type enumCase struct {
	node  node
	ident string
	path  []string
	key   hostval.Val
	name  symbol.Symbol
	index int
	shape caseShape
}

// NewEnum reflects T, generates its descriptor and registers it in reg.
// A nil reg means Default.
func NewEnum[T any](reg *Registry, opts ...Option) (*Enum[T], error) {
	if reg == nil {
		reg = Default
	}
	o := buildOptions(opts)
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, unsupportedGo(t, "enum codec requires a struct of case pointers")
	}

	name := o.name
	if name == "" {
		name = t.Name()
	}
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseGenerate, "anonymous struct "+t.String()+" needs WithName")
	}

	release := reg.reserve(t, name)
	defer release()

	def := gen.EnumDef{Name: name, Schema: !o.noSchema}
	var fieldIndex []int
	var shapes []caseShape
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		ident, hidden := fieldIdent(f, false)
		if hidden {
			continue
		}
		cd, shape := reg.caseDef(ident, f.Type)
		def.Cases = append(def.Cases, cd)
		fieldIndex = append(fieldIndex, i)
		shapes = append(shapes, shape)
	}

	res, err := reg.gen.Enum(def)
	if err != nil {
		return nil, err
	}

	e := &Enum[T]{reg: reg, result: res, goType: t, name: name}
	errs := &errors.List{Type: name}
	for _, rc := range res.Cases {
		idx := fieldIndex[rc.Source]
		ident := def.Cases[rc.Source].Name
		c := enumCase{
			ident: ident,
			path:  []string{name, ident},
			key:   hostval.SymbolVal(rc.Name),
			name:  rc.Name,
			index: idx,
			shape: shapes[rc.Source],
		}
		if rc.Payload != nil {
			pt := t.Field(idx).Type.Elem()
			if c.shape == caseWrapped {
				pt = pt.Field(0).Type
			}
			n, err := reg.compile(*rc.Payload, pt, c.path)
			if err != nil {
				errs.Add(err)
				continue
			}
			c.node = n
		}
		e.cases = append(e.cases, c)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := reg.register(name, &udt{
		goType:   t,
		entry:    res.Entry,
		artifact: res.Artifact,
		encode:   e.encodeValue,
		decode:   e.decodeValue,
	}); err != nil {
		return nil, err
	}

	Logger().Debug("enum codec ready",
		zap.String("type", name),
		zap.Int("cases", len(e.cases)))
	return e, nil
}

// caseDef maps one case field onto a definition. Every case field must be
// a pointer; the pointee decides the payload.
func (r *Registry) caseDef(ident string, ft reflect.Type) (gen.CaseDef, caseShape) {
	cd := gen.CaseDef{Name: ident}
	if ft.Kind() != reflect.Ptr {
		cd.Err = unsupportedGo(ft, "enum case must be a pointer field")
		return cd, caseDirect
	}

	pt := ft.Elem()
	if pt.Kind() == reflect.Struct && pt.Name() == "" {
		switch pt.NumField() {
		case 0:
			return cd, caseUnit
		case 1:
			if !pt.Field(0).IsExported() {
				cd.Err = unsupportedGo(pt, "payload field "+pt.Field(0).Name+" is unexported")
				return cd, caseWrapped
			}
			expr, err := r.exprOf(pt.Field(0).Type)
			cd.Payloads, cd.Err = []typeexpr.Expr{expr}, err
			return cd, caseWrapped
		default:
			// Reported by the generator as an unsupported variant shape.
			cd.Payloads = make([]typeexpr.Expr, pt.NumField())
			for i := range cd.Payloads {
				cd.Payloads[i], _ = r.exprOf(pt.Field(i).Type)
			}
			return cd, caseWrapped
		}
	}

	expr, err := r.exprOf(pt)
	cd.Payloads, cd.Err = []typeexpr.Expr{expr}, err
	return cd, caseDirect
}

// Name returns the registered type name.
func (e *Enum[T]) Name() string { return e.name }

// Descriptor returns the generated union descriptor.
func (e *Enum[T]) Descriptor() *schema.Union { return e.result.Descriptor }

// Entry returns the versioned schema entry.
func (e *Enum[T]) Entry() *schema.Entry { return e.result.Entry }

// Artifact returns the published schema, or nil when generated WithoutSchema.
func (e *Enum[T]) Artifact() *gen.Artifact { return e.result.Artifact }

// Encode produces the (identifier, payload) pair of the single set case.
func (e *Enum[T]) Encode(env hostval.Env, v T) (hostval.Val, error) {
	return e.encodeValue(env, reflect.ValueOf(&v).Elem(), nil)
}

// Decode selects the first case whose identifier matches the discriminant.
// On error the zero T is returned.
func (e *Enum[T]) Decode(env hostval.Env, v hostval.Val) (T, error) {
	var out T
	if err := e.decodeValue(env, v, reflect.ValueOf(&out).Elem(), nil); err != nil {
		var zero T
		Logger().Debug("decode failed", zap.String("type", e.name), zap.Error(err))
		return zero, err
	}
	return out, nil
}

func (e *Enum[T]) basePath(prefix []string) []string {
	if len(prefix) == 0 {
		return []string{e.name}
	}
	return prefix
}

func (e *Enum[T]) casePath(prefix []string, c *enumCase) []string {
	if len(prefix) == 0 {
		return c.path
	}
	return appendPath(prefix, c.ident)
}

func (e *Enum[T]) encodeValue(env hostval.Env, rv reflect.Value, prefix []string) (hostval.Val, error) {
	var set *enumCase
	count := 0
	for i := range e.cases {
		c := &e.cases[i]
		if rv.Field(c.index).IsNil() {
			continue
		}
		if set == nil {
			set = c
		}
		count++
	}
	if count != 1 {
		return hostval.Val{}, errors.New(errors.PhaseEncode, errors.KindInvalidVariant).
			Path(e.basePath(prefix)...).
			GoType(e.goType.String()).
			Value(count).
			Detail("exactly one case must be set, found %d", count).
			Build()
	}

	path := e.casePath(prefix, set)
	payload := hostval.Unit()
	if set.node != nil {
		pv := rv.Field(set.index).Elem()
		if set.shape == caseWrapped {
			pv = pv.Field(0)
		}
		var err error
		if payload, err = set.node.encode(env, pv, path); err != nil {
			return hostval.Val{}, err
		}
	}
	pair, err := hostval.NewPair(env, set.key, payload)
	if err != nil {
		return hostval.Val{}, hostErr(errors.PhaseEncode, path, err)
	}
	return pair, nil
}

func (e *Enum[T]) decodeValue(env hostval.Env, v hostval.Val, rv reflect.Value, prefix []string) error {
	base := e.basePath(prefix)
	disc, payload, err := hostval.SplitPair(env, v)
	if err != nil {
		return decodeMismatch(base, rv, e.name, v)
	}
	sym, ok := disc.Symbol()
	if !ok {
		return decodeMismatch(base, rv, "Symbol", disc)
	}

	var c *enumCase
	for i := range e.cases {
		if e.cases[i].name == sym {
			c = &e.cases[i]
			break
		}
	}
	if c == nil {
		return errors.UnknownDiscriminant(errors.PhaseDecode, base, sym.String(), e.name)
	}

	path := e.casePath(prefix, c)
	out := reflect.New(e.goType).Elem()
	ptr := reflect.New(e.goType.Field(c.index).Type.Elem())
	switch {
	case c.node == nil:
		if !payload.IsUnit() {
			return decodeMismatch(path, ptr.Elem(), "unit", payload)
		}
	case c.shape == caseWrapped:
		if err := c.node.decode(env, payload, ptr.Elem().Field(0), path); err != nil {
			return err
		}
	default:
		if err := c.node.decode(env, payload, ptr.Elem(), path); err != nil {
			return err
		}
	}
	out.Field(c.index).Set(ptr)
	rv.Set(out)
	return nil
}
