// Package contractgen generates contract type schemas and value codecs for
// smart-contract style host environments.
//
// A contract type is a struct (named fields) or an enum (named cases with at
// most one payload) built from a fixed set of host-representable types. For
// each type the module produces two things: a compact binary schema that is
// published inside the contract's wasm module, and a codec that converts Go
// values to and from opaque host values.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	contractgen/
//	├── symbol/          Compact identifiers (10 chars, 6-bit packed)
//	├── schema/          Type descriptors and their XDR-style encoding
//	├── typeexpr/        Type expression parser and resolver
//	├── gen/             Descriptor generation from definitions and YAML files
//	├── hostval/         Host values, the host environment and a local backend
//	├── codec/           Reflection-derived struct and enum codecs
//	├── artifact/        Schema artifacts in wasm custom sections
//	├── errors/          Structured error types for debugging
//	└── cmd/specgen/     Generator and inspector CLI
//
// # Quick Start
//
// Derive codecs from Go types:
//
//	type Point struct {
//	    X int32
//	    Y int32
//	}
//
//	points, err := codec.NewStruct[Point](nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	env := hostval.NewLocalEnv()
//	v, err := points.Encode(env, Point{X: 1, Y: 2})
//	p, err := points.Decode(env, v)
//
// Or generate schemas from a definitions file without any Go types:
//
//	defs, err := gen.LoadDefs("types.yaml")
//	out, err := gen.New().Generate(defs)
//	module, err := artifact.Embed(artifact.NewModule(), out.Artifacts)
//
// # Type System
//
//   - Scalars: u32, i32, u64, i64, bool, Symbol, Bitset, Status, Binary
//   - Generics: Option<T>, Vec<T>, Set<T>, Map<K, V>, tuples (A, B, ...)
//   - Named: structs and enums, referenced by name
//
// # Errors
//
// Generation never stops at the first problem: every invalid field or case is
// reported in one errors.List. Decoding is all-or-nothing and reports the
// path of the offending field.
//
// # Thread Safety
//
// Registries, generators, codecs and LocalEnv are safe for concurrent use.
package contractgen
