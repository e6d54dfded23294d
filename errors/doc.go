// Package errors provides structured error types for contract type generation.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/contract type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("Point", "x").
//		GoType("int32").
//		TypeName("i32").
//		Detail("host value is not an i32").
//		Build()
//
// Generation-time failures are never reported one at a time. They are
// collected in a List and returned together once every field and case of a
// type has been inspected:
//
//	var list errors.List
//	list.Add(err, "Point", "x")
//	return list.Err()
//
// Three error classes are exposed as sentinels for errors.Is:
//
//	errors.ErrGeneration      any generation-time failure
//	errors.ErrConversion      any runtime decode failure
//	errors.ErrSchemaEncoding  a length overflow while serializing a schema
package errors
