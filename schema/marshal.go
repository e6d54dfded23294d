package schema

import (
	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/symbol"
)

const (
	entryKindUDT uint32 = 0
	udtStruct    uint32 = 0
	udtUnion     uint32 = 1
)

// Marshal encodes an entry canonically.
func Marshal(e *Entry) ([]byte, error) {
	if e == nil {
		return nil, errors.New(errors.PhaseSchema, errors.KindNilPointer).Detail("nil entry").Build()
	}
	w := &writer{}
	if err := marshalEntry(w, e); err != nil {
		return nil, err
	}
	return w.bytes(), nil
}

// MarshalAll encodes entries back to back, in the given order.
func MarshalAll(entries []*Entry) ([]byte, error) {
	w := &writer{}
	for _, e := range entries {
		if e == nil {
			return nil, errors.New(errors.PhaseSchema, errors.KindNilPointer).Detail("nil entry").Build()
		}
		if err := marshalEntry(w, e); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

func marshalEntry(w *writer, e *Entry) error {
	w.u32(entryKindUDT)
	w.u32(e.Version)

	switch {
	case e.Struct != nil && e.Union == nil:
		return marshalStruct(w, e.Struct)
	case e.Union != nil && e.Struct == nil:
		return marshalUnion(w, e.Union)
	default:
		return errors.InvalidData(errors.PhaseSchema, nil, "entry must wrap exactly one of struct or union")
	}
}

func marshalName(w *writer, name string, path []string) error {
	if err := symbol.CheckName(name, MaxNameLen); err != nil {
		return schemaErr(err, path)
	}
	w.string(name)
	return nil
}

func marshalSymbol(w *writer, s symbol.Symbol, path []string) error {
	name := s.String()
	if name == "" {
		return errors.InvalidIdentifier(errors.PhaseSchema, path, name, "empty identifier")
	}
	w.string(name)
	return nil
}

func marshalStruct(w *writer, s *Struct) error {
	path := []string{s.Name}
	w.u32(udtStruct)
	if err := marshalName(w, s.Name, path); err != nil {
		return err
	}
	if len(s.Fields) > MaxFields {
		return errors.Overflow(errors.PhaseSchema, path, len(s.Fields), MaxFields, "field list")
	}
	w.u32(uint32(len(s.Fields)))
	for _, f := range s.Fields {
		fpath := append(append([]string{}, path...), f.Name.String())
		if err := marshalSymbol(w, f.Name, fpath); err != nil {
			return err
		}
		if err := marshalTypeDef(w, f.Type, fpath, 1); err != nil {
			return err
		}
	}
	return nil
}

func marshalUnion(w *writer, u *Union) error {
	path := []string{u.Name}
	w.u32(udtUnion)
	if err := marshalName(w, u.Name, path); err != nil {
		return err
	}
	if len(u.Cases) > MaxCases {
		return errors.Overflow(errors.PhaseSchema, path, len(u.Cases), MaxCases, "case list")
	}
	w.u32(uint32(len(u.Cases)))
	for _, c := range u.Cases {
		cpath := append(append([]string{}, path...), c.Name.String())
		if err := marshalSymbol(w, c.Name, cpath); err != nil {
			return err
		}
		w.bool(c.Payload != nil)
		if c.Payload != nil {
			if err := marshalTypeDef(w, *c.Payload, cpath, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

func marshalTypeDef(w *writer, t TypeDef, path []string, depth int) error {
	if depth > MaxDepth {
		return errors.DepthExceeded(errors.PhaseSchema, path, MaxDepth)
	}
	w.u32(uint32(t.Kind))

	switch t.Kind {
	case KindU64, KindI64, KindU32, KindI32, KindBool, KindSymbol, KindBitset, KindStatus, KindBinary:
		return nil
	case KindUDT:
		return marshalName(w, t.Name, path)
	case KindOption, KindVec, KindSet:
		if t.Elem == nil {
			return errors.InvalidData(errors.PhaseSchema, path, t.Kind.String()+" without element type")
		}
		return marshalTypeDef(w, *t.Elem, path, depth+1)
	case KindMap:
		if t.Key == nil || t.Value == nil {
			return errors.InvalidData(errors.PhaseSchema, path, "Map without key or value type")
		}
		if err := marshalTypeDef(w, *t.Key, path, depth+1); err != nil {
			return err
		}
		return marshalTypeDef(w, *t.Value, path, depth+1)
	case KindTuple:
		if len(t.Elems) > MaxTupleElems {
			return errors.Overflow(errors.PhaseSchema, path, len(t.Elems), MaxTupleElems, "tuple")
		}
		w.u32(uint32(len(t.Elems)))
		for _, e := range t.Elems {
			if err := marshalTypeDef(w, e, path, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.New(errors.PhaseSchema, errors.KindUnsupportedType).
			Path(path...).
			Detail("unknown type kind %d", uint32(t.Kind)).
			Build()
	}
}

func schemaErr(err error, path []string) error {
	if e, ok := err.(*errors.Error); ok {
		cp := *e
		cp.Phase = errors.PhaseSchema
		cp.Path = path
		return &cp
	}
	return err
}
