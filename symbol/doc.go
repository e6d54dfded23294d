// Package symbol implements compact identifiers.
//
// A Symbol packs up to MaxLen characters from [A-Za-z0-9_] into a uint64,
// six bits per character. Symbols name struct fields and enum cases both in
// the serialized schema and as runtime map keys and discriminants, so the
// same literal always produces the same Symbol.
//
// Validation happens once, in New. Table caches validated symbols so that the
// schema producer and the runtime codec share one source of truth.
package symbol
