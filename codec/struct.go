package codec

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/gen"
	"github.com/wippyai/contractgen/hostval"
	"github.com/wippyai/contractgen/schema"
)

// Struct converts values of the struct type T to and from host maps.
// A Struct is immutable and safe for concurrent use.
type Struct[T any] struct {
	reg    *Registry
	result *gen.StructResult
	goType reflect.Type
	name   string
	fields []structField
}

type structField struct {
	node  node
	ident string
	path  []string
	key   hostval.Val
	index int
}

// NewStruct reflects T, generates its descriptor and registers it in reg.
// A nil reg means Default. Every unsupported or invalid field is reported
// in a single *errors.List.
func NewStruct[T any](reg *Registry, opts ...Option) (*Struct[T], error) {
	if reg == nil {
		reg = Default
	}
	o := buildOptions(opts)
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, unsupportedGo(t, "struct codec requires a struct type")
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

	def := gen.StructDef{Name: name, Schema: !o.noSchema, Fields: make([]gen.FieldDef, t.NumField())}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		ident, hidden := fieldIdent(f, true)
		fd := gen.FieldDef{Name: ident, Hidden: hidden}
		if !hidden {
			fd.Type, fd.Err = reg.exprOf(f.Type)
		}
		def.Fields[i] = fd
	}

	res, err := reg.gen.Struct(def)
	if err != nil {
		return nil, err
	}

	s := &Struct[T]{reg: reg, result: res, goType: t, name: name}
	errs := &errors.List{Type: name}
	for _, rf := range res.Fields {
		ident := def.Fields[rf.Source].Name
		path := []string{name, ident}
		n, err := reg.compile(rf.Type, t.Field(rf.Source).Type, path)
		if err != nil {
			errs.Add(err)
			continue
		}
		s.fields = append(s.fields, structField{
			node:  n,
			ident: ident,
			path:  path,
			key:   hostval.SymbolVal(rf.Name),
			index: rf.Source,
		})
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := reg.register(name, &udt{
		goType:   t,
		entry:    res.Entry,
		artifact: res.Artifact,
		encode:   s.encodeValue,
		decode:   s.decodeValue,
	}); err != nil {
		return nil, err
	}

	Logger().Debug("struct codec ready",
		zap.String("type", name),
		zap.Int("fields", len(s.fields)))
	return s, nil
}

// Name returns the registered type name.
func (s *Struct[T]) Name() string { return s.name }

// Descriptor returns the generated struct descriptor.
func (s *Struct[T]) Descriptor() *schema.Struct { return s.result.Descriptor }

// Entry returns the versioned schema entry.
func (s *Struct[T]) Entry() *schema.Entry { return s.result.Entry }

// Artifact returns the published schema, or nil when generated WithoutSchema.
func (s *Struct[T]) Artifact() *gen.Artifact { return s.result.Artifact }

// Encode builds a host map with one entry per visible field, inserted in
// declaration order.
func (s *Struct[T]) Encode(env hostval.Env, v T) (hostval.Val, error) {
	return s.encodeValue(env, reflect.ValueOf(&v).Elem(), nil)
}

// Decode reads every visible field from a host map. Hidden fields are left
// at their zero value. On error the zero T is returned.
func (s *Struct[T]) Decode(env hostval.Env, v hostval.Val) (T, error) {
	var out T
	if err := s.decodeValue(env, v, reflect.ValueOf(&out).Elem(), nil); err != nil {
		var zero T
		Logger().Debug("decode failed", zap.String("type", s.name), zap.Error(err))
		return zero, err
	}
	return out, nil
}

func (s *Struct[T]) encodeValue(env hostval.Env, rv reflect.Value, prefix []string) (hostval.Val, error) {
	m, err := hostval.NewMap(env)
	if err != nil {
		return hostval.Val{}, hostErr(errors.PhaseEncode, s.pathOf(prefix, nil), err)
	}
	for _, f := range s.fields {
		path := s.pathOf(prefix, f.path)
		v, err := f.node.encode(env, rv.Field(f.index), path)
		if err != nil {
			return hostval.Val{}, err
		}
		if m, err = m.Put(f.key, v); err != nil {
			return hostval.Val{}, hostErr(errors.PhaseEncode, path, err)
		}
	}
	return m.Val(), nil
}

func (s *Struct[T]) decodeValue(env hostval.Env, v hostval.Val, rv reflect.Value, prefix []string) error {
	m, err := hostval.AsMap(env, v)
	if err != nil {
		return decodeMismatch(s.pathOf(prefix, []string{s.name}), rv, s.name, v)
	}

	out := reflect.New(s.goType).Elem()
	for _, f := range s.fields {
		path := s.pathOf(prefix, f.path)
		hv, ok, err := m.Get(f.key)
		if err != nil {
			return hostErr(errors.PhaseDecode, path, err)
		}
		if !ok {
			return errors.FieldMissing(errors.PhaseDecode, path[:len(path)-1], f.ident)
		}
		if err := f.node.decode(env, hv, out.Field(f.index), path); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

// pathOf joins the caller's path with a local one. Nested values drop the
// local type name, since the caller's path already names the member.
func (s *Struct[T]) pathOf(prefix, local []string) []string {
	if len(prefix) == 0 {
		return local
	}
	if len(local) > 0 {
		local = local[1:]
	}
	return append(append(make([]string, 0, len(prefix)+len(local)), prefix...), local...)
}
