// Package typeexpr parses and resolves contract type expressions.
//
// An expression is either a name with optional generic arguments
// (u32, Point, Vec<Option<u64>>, Map<Symbol, i32>) or a tuple
// ((i32, bool), (u64,), ()). Path-qualified names such as sdk::Symbol
// refer to their last segment, and a parenthesized single type (T) is T.
//
// Resolver maps an Expr onto a schema.TypeDef:
//
//	u32 i32 u64 i64 bool Symbol Bitset Status Binary  scalar keywords
//	Option<T> Vec<T> Set<T>                          one argument
//	Map<K, V>                                        two arguments
//	(A, B, ...)                                      tuple, order preserved
//	Name                                             user-defined type reference
//
// Anything else is rejected with an unsupported_type error; the resolver
// never substitutes a default.
package typeexpr
