// Package gen turns type definitions into schema descriptors.
//
// A StructDef or EnumDef is the language-neutral form of a user-defined
// type: a name plus fields or cases whose types are typeexpr expressions.
// Generator validates every identifier, resolves every type and assembles
// the schema entry. All failures of one definition are collected and
// returned together as an *errors.List, so a single run reports every
// problem.
//
// Definitions come from two front ends: the codec package reflects Go
// types, and ParseDefs reads YAML documents such as
//
//	types:
//	  - struct: Point
//	    fields:
//	      - {name: x, type: i32}
//	      - {name: y, type: i32}
//	  - enum: Shape
//	    cases:
//	      - {name: Circle, payload: [i32]}
//	      - {name: Empty}
//
// When a definition requests a schema, the result carries an Artifact named
// schema.ArtifactName(def.Name) holding the canonical schema bytes.
package gen
