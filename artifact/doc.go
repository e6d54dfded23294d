// Package artifact stores contract type schemas inside WebAssembly modules.
//
// Every exported type's schema is published as a named artifact
// (schema.ArtifactName). Embed collects the artifacts of a module into a
// single custom section named SectionName, replacing any earlier copy:
//
//	section  = name("contractspecv0") u32 count { name data }*
//	name     = u32 len bytes
//	data     = u32 len bytes
//
// All lengths are unsigned LEB128, matching the surrounding module encoding.
// Artifacts are written in name order, so the section is deterministic.
//
// Extract compiles a module with wazero, reads the section back and decodes
// every entry. Sections and Read work on the raw bytes without a runtime.
package artifact
