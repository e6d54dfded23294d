package gen

import (
	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/symbol"
	"github.com/wippyai/contractgen/typeexpr"
)

// FieldDef is one declared field of a struct.
type FieldDef struct {
	Err    error // front-end failure, reported with the field's path
	Name   string
	Type   typeexpr.Expr
	Hidden bool
}

// StructDef describes a user-defined structure.
type StructDef struct {
	Name   string
	Fields []FieldDef
	Schema bool
}

// CaseDef is one declared case of an enum. Zero payloads is a unit case.
type CaseDef struct {
	Err      error
	Name     string
	Payloads []typeexpr.Expr
}

// EnumDef describes a user-defined tagged union.
type EnumDef struct {
	Name   string
	Cases  []CaseDef
	Schema bool
}

// ResolvedField is a visible field after generation.
// Source is the index of the field in StructDef.Fields.
type ResolvedField struct {
	Type   schema.TypeDef
	Source int
	Name   symbol.Symbol
}

// ResolvedCase is a case after generation.
// Source is the index of the case in EnumDef.Cases. Shadowed marks a case
// whose identifier repeats an earlier case; decoding never selects it.
type ResolvedCase struct {
	Payload  *schema.TypeDef
	Source   int
	Name     symbol.Symbol
	Shadowed bool
}

// Artifact is the published schema of one type.
type Artifact struct {
	Name string
	Data []byte
}

// StructResult is the output of Generator.Struct.
type StructResult struct {
	Descriptor *schema.Struct
	Entry      *schema.Entry
	Artifact   *Artifact
	Fields     []ResolvedField
}

// EnumResult is the output of Generator.Enum.
type EnumResult struct {
	Descriptor *schema.Union
	Entry      *schema.Entry
	Artifact   *Artifact
	Cases      []ResolvedCase
}
