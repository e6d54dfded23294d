package hostval

import (
	"fmt"

	"github.com/wippyai/contractgen/symbol"
)

// Tag identifies the variant held by a Val.
type Tag uint8

const (
	TagUnit Tag = iota
	TagBool
	TagU32
	TagI32
	TagU64
	TagI64
	TagSymbol
	TagBitset
	TagStatus
	TagObject
)

func (t Tag) String() string {
	switch t {
	case TagUnit:
		return "unit"
	case TagBool:
		return "bool"
	case TagU32:
		return "u32"
	case TagI32:
		return "i32"
	case TagU64:
		return "u64"
	case TagI64:
		return "i64"
	case TagSymbol:
		return "Symbol"
	case TagBitset:
		return "Bitset"
	case TagStatus:
		return "Status"
	case TagObject:
		return "object"
	}
	return "unknown"
}

// Handle references a host object. Handle 0 is reserved and always invalid.
type Handle uint32

// Bitset is a 64-bit flag set.
type Bitset uint64

// Status is a (type, code) status pair.
type Status struct {
	Type uint32
	Code uint32
}

// Val is a host value. The zero Val is unit. Vals are comparable with ==;
// objects compare by handle.
type Val struct {
	bits uint64
	tag  Tag
}

// Constructors for each value variant.

func Unit() Val { return Val{} }

func BoolVal(b bool) Val {
	if b {
		return Val{tag: TagBool, bits: 1}
	}
	return Val{tag: TagBool}
}

func U32Val(x uint32) Val           { return Val{tag: TagU32, bits: uint64(x)} }
func I32Val(x int32) Val            { return Val{tag: TagI32, bits: uint64(uint32(x))} }
func U64Val(x uint64) Val           { return Val{tag: TagU64, bits: x} }
func I64Val(x int64) Val            { return Val{tag: TagI64, bits: uint64(x)} }
func SymbolVal(s symbol.Symbol) Val { return Val{tag: TagSymbol, bits: uint64(s)} }
func BitsetVal(b Bitset) Val        { return Val{tag: TagBitset, bits: uint64(b)} }
func StatusVal(s Status) Val        { return Val{tag: TagStatus, bits: uint64(s.Type)<<32 | uint64(s.Code)} }

func objectVal(h Handle) Val { return Val{tag: TagObject, bits: uint64(h)} }

// Tag returns the variant held by v.
func (v Val) Tag() Tag { return v.tag }

// IsUnit reports whether v is the unit value.
func (v Val) IsUnit() bool { return v.tag == TagUnit }

func (v Val) Bool() (bool, bool) {
	return v.bits != 0, v.tag == TagBool
}

func (v Val) U32() (uint32, bool) {
	return uint32(v.bits), v.tag == TagU32
}

func (v Val) I32() (int32, bool) {
	return int32(uint32(v.bits)), v.tag == TagI32
}

func (v Val) U64() (uint64, bool) {
	return v.bits, v.tag == TagU64
}

func (v Val) I64() (int64, bool) {
	return int64(v.bits), v.tag == TagI64
}

func (v Val) Symbol() (symbol.Symbol, bool) {
	return symbol.Symbol(v.bits), v.tag == TagSymbol
}

func (v Val) Bitset() (Bitset, bool) {
	return Bitset(v.bits), v.tag == TagBitset
}

func (v Val) Status() (Status, bool) {
	return Status{Type: uint32(v.bits >> 32), Code: uint32(v.bits)}, v.tag == TagStatus
}

// Object returns the handle of an object value.
func (v Val) Object() (Handle, bool) {
	return Handle(v.bits), v.tag == TagObject
}

func (v Val) String() string {
	switch v.tag {
	case TagUnit:
		return "()"
	case TagBool:
		b, _ := v.Bool()
		return fmt.Sprintf("%t", b)
	case TagI32:
		x, _ := v.I32()
		return fmt.Sprintf("%di32", x)
	case TagI64:
		x, _ := v.I64()
		return fmt.Sprintf("%di64", x)
	case TagU32:
		return fmt.Sprintf("%du32", uint32(v.bits))
	case TagU64:
		return fmt.Sprintf("%du64", v.bits)
	case TagSymbol:
		s, _ := v.Symbol()
		return "sym:" + s.String()
	case TagBitset:
		return fmt.Sprintf("bits:%#x", v.bits)
	case TagStatus:
		s, _ := v.Status()
		return fmt.Sprintf("status:%d/%d", s.Type, s.Code)
	case TagObject:
		return fmt.Sprintf("obj#%d", v.bits)
	}
	return "invalid"
}
