// Package codec converts between Go values and host values.
//
// Go types are reflected into definitions, run through the gen package, and
// compiled into codecs:
//
//	reg := codec.NewRegistry()
//	points, err := codec.NewStruct[Point](reg)
//	shapes, err := codec.NewEnum[Shape](reg)
//
// # Type Mapping
//
//	Go type              Contract type
//	─────────────────────────────────────
//	uint32 / int32       u32 / i32
//	uint64 / int64       u64 / i64
//	bool                 bool
//	symbol.Symbol        Symbol
//	hostval.Bitset       Bitset
//	hostval.Status       Status
//	[]byte               Binary
//	*T                   Option<T>
//	[]T                  Vec<T>
//	map[K]struct{}       Set<K>
//	map[K]V              Map<K, V>
//	struct{...}          tuple of the fields, in order
//	named struct         user-defined type, by name
//
// Any other Go type is reported as unsupported. Every field is checked
// before NewStruct returns, so one call reports every problem.
//
// # Structs
//
// Exported fields take part in encoding; unexported fields and fields
// tagged contract:"-" are hidden and decode to their zero value. The
// identifier is the contract tag, or the Go name with its first letter
// lower-cased:
//
//	type Point struct {
//		X     int32
//		Y     int32
//		cache uint64
//	}
//
// A struct encodes as a host map from identifier to field value.
//
// # Enums
//
// An enum is a struct of pointer fields, one per case, with exactly one
// set in a valid value. The pointee selects the payload:
//
//	type Shape struct {
//		Circle *int32    // payload i32
//		Rect   *Rect     // payload Rect
//		Empty  *struct{} // unit case
//	}
//
// An anonymous pointee with a single field, *struct{ V T }, also carries T.
// A case encodes as the pair (identifier, payload); unit cases carry the
// unit value. Decoding scans cases in declaration order and the first case
// whose identifier matches wins.
//
// # Host Values
//
// Option encodes None as unit. Vec and tuples encode as host vectors, Map
// as a host map, and Set as a host map with unit values.
//
// Decoding is all-or-nothing: any failure returns the zero value and an
// error with phase decode (see errors.IsConversion).
package codec
