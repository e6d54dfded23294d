package schema

import (
	"strings"

	"github.com/wippyai/contractgen/symbol"
)

// Kind is the wire discriminant of a TypeDef.
type Kind uint32

const (
	KindU64    Kind = 1
	KindI64    Kind = 2
	KindU32    Kind = 3
	KindI32    Kind = 4
	KindBool   Kind = 5
	KindSymbol Kind = 6
	KindBitset Kind = 7
	KindStatus Kind = 8
	KindBinary Kind = 9
	KindOption Kind = 1000
	KindVec    Kind = 1001
	KindSet    Kind = 1002
	KindMap    Kind = 1003
	KindTuple  Kind = 1004
	KindUDT    Kind = 2000
)

// Version0 is the only envelope version produced today.
const Version0 uint32 = 0

// Bounds enforced by the serializer.
const (
	MaxNameLen    = 60
	MaxFields     = 40
	MaxCases      = 50
	MaxTupleElems = 12
	MaxDepth      = 32
)

var kindNames = map[Kind]string{
	KindU64:    "u64",
	KindI64:    "i64",
	KindU32:    "u32",
	KindI32:    "i32",
	KindBool:   "bool",
	KindSymbol: "Symbol",
	KindBitset: "Bitset",
	KindStatus: "Status",
	KindBinary: "Binary",
	KindOption: "Option",
	KindVec:    "Vec",
	KindSet:    "Set",
	KindMap:    "Map",
	KindTuple:  "tuple",
	KindUDT:    "udt",
}

var scalarKeywords = map[string]Kind{
	"u64":    KindU64,
	"i64":    KindI64,
	"u32":    KindU32,
	"i32":    KindI32,
	"bool":   KindBool,
	"Symbol": KindSymbol,
	"Bitset": KindBitset,
	"Status": KindStatus,
	"Binary": KindBinary,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsScalar reports whether the kind carries no nested type.
func (k Kind) IsScalar() bool {
	return k >= KindU64 && k <= KindBinary
}

// LookupScalar returns the scalar kind for an exact keyword match.
func LookupScalar(keyword string) (Kind, bool) {
	k, ok := scalarKeywords[keyword]
	return k, ok
}

// TypeDef describes the type of a field, case payload, or container element.
type TypeDef struct {
	Key   *TypeDef
	Value *TypeDef
	Elem  *TypeDef
	Name  string
	Elems []TypeDef
	Kind  Kind
}

// Scalar returns a scalar TypeDef.
func Scalar(k Kind) TypeDef {
	return TypeDef{Kind: k}
}

// UDT returns a reference to a user-defined type by name.
func UDT(name string) TypeDef {
	return TypeDef{Kind: KindUDT, Name: name}
}

// Option returns Option<elem>.
func Option(elem TypeDef) TypeDef {
	return TypeDef{Kind: KindOption, Elem: &elem}
}

// Vec returns Vec<elem>.
func Vec(elem TypeDef) TypeDef {
	return TypeDef{Kind: KindVec, Elem: &elem}
}

// Set returns Set<elem>.
func Set(elem TypeDef) TypeDef {
	return TypeDef{Kind: KindSet, Elem: &elem}
}

// Map returns Map<key, value>.
func Map(key, value TypeDef) TypeDef {
	return TypeDef{Kind: KindMap, Key: &key, Value: &value}
}

// Tuple returns a tuple over elems, order preserved.
func Tuple(elems ...TypeDef) TypeDef {
	return TypeDef{Kind: KindTuple, Elems: append([]TypeDef{}, elems...)}
}

// String renders the type in expression syntax, e.g. Vec<Option<u64>>.
func (t TypeDef) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t TypeDef) write(b *strings.Builder) {
	switch t.Kind {
	case KindUDT:
		b.WriteString(t.Name)
	case KindOption, KindVec, KindSet:
		b.WriteString(t.Kind.String())
		b.WriteByte('<')
		if t.Elem != nil {
			t.Elem.write(b)
		}
		b.WriteByte('>')
	case KindMap:
		b.WriteString("Map<")
		if t.Key != nil {
			t.Key.write(b)
		}
		b.WriteString(", ")
		if t.Value != nil {
			t.Value.write(b)
		}
		b.WriteByte('>')
	case KindTuple:
		b.WriteByte('(')
		for i, e := range t.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			e.write(b)
		}
		if len(t.Elems) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	default:
		b.WriteString(t.Kind.String())
	}
}

// Depth returns the nesting depth; scalars and UDT references have depth 1.
func (t TypeDef) Depth() int {
	inner := 0
	for _, c := range t.children() {
		if d := c.Depth(); d > inner {
			inner = d
		}
	}
	return 1 + inner
}

func (t TypeDef) children() []TypeDef {
	switch t.Kind {
	case KindOption, KindVec, KindSet:
		if t.Elem != nil {
			return []TypeDef{*t.Elem}
		}
	case KindMap:
		var out []TypeDef
		if t.Key != nil {
			out = append(out, *t.Key)
		}
		if t.Value != nil {
			out = append(out, *t.Value)
		}
		return out
	case KindTuple:
		return t.Elems
	}
	return nil
}

// Field describes one visible struct field.
type Field struct {
	Type TypeDef
	Name symbol.Symbol
}

// Case describes one union case. Payload is nil for a unit case.
type Case struct {
	Payload *TypeDef
	Name    symbol.Symbol
}

// Struct describes a user-defined structure.
type Struct struct {
	Name   string
	Fields []Field
}

// Union describes a user-defined tagged union.
type Union struct {
	Name  string
	Cases []Case
}

// Entry is the versioned envelope around a user-defined type.
type Entry struct {
	Struct  *Struct
	Union   *Union
	Version uint32
}

// StructEntry wraps s in a version 0 entry.
func StructEntry(s *Struct) *Entry {
	return &Entry{Version: Version0, Struct: s}
}

// UnionEntry wraps u in a version 0 entry.
func UnionEntry(u *Union) *Entry {
	return &Entry{Version: Version0, Union: u}
}

// Name returns the name of the wrapped type.
func (e *Entry) Name() string {
	switch {
	case e.Struct != nil:
		return e.Struct.Name
	case e.Union != nil:
		return e.Union.Name
	}
	return ""
}

// ArtifactPrefix prefixes the name under which a type's schema bytes are published.
const ArtifactPrefix = "__SPEC_XDR_"

// ArtifactName derives the artifact name for a type name.
func ArtifactName(typeName string) string {
	return ArtifactPrefix + strings.ToUpper(typeName)
}
