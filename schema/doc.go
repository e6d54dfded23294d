// Package schema defines contract type descriptors and their canonical
// binary encoding.
//
// A TypeDef is a recursive description of a field or payload type. Struct and
// Union describe user-defined types; Entry wraps either in a versioned
// envelope, which is the unit of serialization:
//
//	Entry{Version: 0, Struct: &Struct{Name: "Point", Fields: ...}}
//
// # Wire Format
//
// Entries are encoded in an XDR-style big-endian layout. Every integer is a
// 4-byte word; strings and arrays are length-prefixed, strings are padded to a
// multiple of four bytes; optional values carry a 4-byte presence flag:
//
//	entry     = u32 kind(0=udt) u32 version udt
//	udt       = u32 udtkind(0=struct,1=union) string name<60> body
//	struct    = u32 count<40> { string name<10> typedef }*
//	union     = u32 count<50> { string name<10> u32 present [typedef] }*
//	typedef   = u32 kind payload
//	tuple     = u32 count<12> typedef*
//
// Encoding is deterministic: the same Entry always produces identical bytes,
// so artifacts can be diffed or content-addressed. Lengths beyond the bounds
// fail with a schema overflow error instead of truncating.
package schema
