package schema

import (
	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/symbol"
)

// Unmarshal decodes one entry from the start of data and returns the number
// of bytes consumed.
func Unmarshal(data []byte) (*Entry, int, error) {
	r := &reader{data: data}
	e, err := unmarshalEntry(r)
	if err != nil {
		return nil, 0, err
	}
	return e, r.pos, nil
}

// UnmarshalAll decodes back-to-back entries until data is exhausted.
func UnmarshalAll(data []byte) ([]*Entry, error) {
	r := &reader{data: data}
	var entries []*Entry
	for r.remaining() > 0 {
		e, err := unmarshalEntry(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func truncated(r *reader, what string) error {
	return errors.New(errors.PhaseSchema, errors.KindInvalidData).
		Value(r.pos).
		Detail("malformed %s at offset %d", what, r.pos).
		Build()
}

func unmarshalEntry(r *reader) (*Entry, error) {
	kind, ok := r.u32()
	if !ok {
		return nil, truncated(r, "entry kind")
	}
	if kind != entryKindUDT {
		return nil, errors.InvalidData(errors.PhaseSchema, nil, "unknown entry kind")
	}
	version, ok := r.u32()
	if !ok {
		return nil, truncated(r, "entry version")
	}
	udt, ok := r.u32()
	if !ok {
		return nil, truncated(r, "udt kind")
	}
	name, ok := r.string(MaxNameLen)
	if !ok {
		return nil, truncated(r, "type name")
	}
	path := []string{name}

	switch udt {
	case udtStruct:
		s, err := unmarshalStruct(r, name, path)
		if err != nil {
			return nil, err
		}
		return &Entry{Version: version, Struct: s}, nil
	case udtUnion:
		u, err := unmarshalUnion(r, name, path)
		if err != nil {
			return nil, err
		}
		return &Entry{Version: version, Union: u}, nil
	default:
		return nil, errors.InvalidData(errors.PhaseSchema, path, "unknown udt kind")
	}
}

func unmarshalSymbol(r *reader, what string) (symbol.Symbol, error) {
	name, ok := r.string(symbol.MaxLen)
	if !ok {
		return 0, truncated(r, what)
	}
	s, err := symbol.New(name)
	if err != nil {
		return 0, schemaErr(err, nil)
	}
	return s, nil
}

func unmarshalStruct(r *reader, name string, path []string) (*Struct, error) {
	n, ok := r.u32()
	if !ok || n > MaxFields {
		return nil, truncated(r, "field count")
	}
	s := &Struct{Name: name, Fields: make([]Field, 0, n)}
	for i := uint32(0); i < n; i++ {
		fname, err := unmarshalSymbol(r, "field name")
		if err != nil {
			return nil, err
		}
		t, err := unmarshalTypeDef(r, append(path, fname.String()), 1)
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, Field{Name: fname, Type: t})
	}
	return s, nil
}

func unmarshalUnion(r *reader, name string, path []string) (*Union, error) {
	n, ok := r.u32()
	if !ok || n > MaxCases {
		return nil, truncated(r, "case count")
	}
	u := &Union{Name: name, Cases: make([]Case, 0, n)}
	for i := uint32(0); i < n; i++ {
		cname, err := unmarshalSymbol(r, "case name")
		if err != nil {
			return nil, err
		}
		present, ok := r.u32()
		if !ok || present > 1 {
			return nil, truncated(r, "case payload flag")
		}
		c := Case{Name: cname}
		if present == 1 {
			t, err := unmarshalTypeDef(r, append(path, cname.String()), 1)
			if err != nil {
				return nil, err
			}
			c.Payload = &t
		}
		u.Cases = append(u.Cases, c)
	}
	return u, nil
}

func unmarshalTypeDef(r *reader, path []string, depth int) (TypeDef, error) {
	if depth > MaxDepth {
		return TypeDef{}, errors.DepthExceeded(errors.PhaseSchema, path, MaxDepth)
	}
	raw, ok := r.u32()
	if !ok {
		return TypeDef{}, truncated(r, "type kind")
	}
	kind := Kind(raw)

	switch {
	case kind.IsScalar():
		return Scalar(kind), nil
	case kind == KindUDT:
		name, ok := r.string(MaxNameLen)
		if !ok {
			return TypeDef{}, truncated(r, "udt name")
		}
		return UDT(name), nil
	case kind == KindOption || kind == KindVec || kind == KindSet:
		elem, err := unmarshalTypeDef(r, path, depth+1)
		if err != nil {
			return TypeDef{}, err
		}
		return TypeDef{Kind: kind, Elem: &elem}, nil
	case kind == KindMap:
		key, err := unmarshalTypeDef(r, path, depth+1)
		if err != nil {
			return TypeDef{}, err
		}
		value, err := unmarshalTypeDef(r, path, depth+1)
		if err != nil {
			return TypeDef{}, err
		}
		return Map(key, value), nil
	case kind == KindTuple:
		n, ok := r.u32()
		if !ok || n > MaxTupleElems {
			return TypeDef{}, truncated(r, "tuple length")
		}
		elems := make([]TypeDef, 0, n)
		for i := uint32(0); i < n; i++ {
			e, err := unmarshalTypeDef(r, path, depth+1)
			if err != nil {
				return TypeDef{}, err
			}
			elems = append(elems, e)
		}
		return TypeDef{Kind: KindTuple, Elems: elems}, nil
	default:
		return TypeDef{}, errors.New(errors.PhaseSchema, errors.KindUnsupportedType).
			Path(path...).
			Detail("unknown type kind %d", raw).
			Build()
	}
}
