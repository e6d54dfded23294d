package schema

import (
	"go.bytecodealliance.org/wit"
)

// WIT projects the entry onto a named WIT type definition: structs become
// records, unions become variants. User-defined references become named
// type definitions without a kind; consumers resolve them by name.
func (e *Entry) WIT() *wit.TypeDef {
	name := e.Name()
	switch {
	case e.Struct != nil:
		fields := make([]wit.Field, len(e.Struct.Fields))
		for i, f := range e.Struct.Fields {
			fields[i] = wit.Field{Name: f.Name.String(), Type: f.Type.WIT()}
		}
		return &wit.TypeDef{Name: &name, Kind: &wit.Record{Fields: fields}}
	case e.Union != nil:
		cases := make([]wit.Case, len(e.Union.Cases))
		for i, c := range e.Union.Cases {
			cases[i] = wit.Case{Name: c.Name.String()}
			if c.Payload != nil {
				cases[i].Type = c.Payload.WIT()
			}
		}
		return &wit.TypeDef{Name: &name, Kind: &wit.Variant{Cases: cases}}
	}
	return nil
}

// WIT projects the type onto the closest WIT type.
//
//	Symbol  -> string
//	Bitset  -> u64
//	Status  -> tuple<u32, u32>
//	Binary  -> list<u8>
//	Set<T>  -> list<T>
//	Map<K,V> -> list<tuple<K, V>>
func (t TypeDef) WIT() wit.Type {
	switch t.Kind {
	case KindU32:
		return wit.U32{}
	case KindI32:
		return wit.S32{}
	case KindU64, KindBitset:
		return wit.U64{}
	case KindI64:
		return wit.S64{}
	case KindBool:
		return wit.Bool{}
	case KindSymbol:
		return wit.String{}
	case KindStatus:
		return &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U32{}, wit.U32{}}}}
	case KindBinary:
		return &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}
	case KindUDT:
		name := t.Name
		return &wit.TypeDef{Name: &name}
	case KindOption:
		return &wit.TypeDef{Kind: &wit.Option{Type: t.Elem.WIT()}}
	case KindVec, KindSet:
		return &wit.TypeDef{Kind: &wit.List{Type: t.Elem.WIT()}}
	case KindMap:
		pair := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{t.Key.WIT(), t.Value.WIT()}}}
		return &wit.TypeDef{Kind: &wit.List{Type: pair}}
	case KindTuple:
		types := make([]wit.Type, len(t.Elems))
		for i, e := range t.Elems {
			types[i] = e.WIT()
		}
		return &wit.TypeDef{Kind: &wit.Tuple{Types: types}}
	}
	return nil
}
