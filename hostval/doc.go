// Package hostval models the host environment that contract values live in.
//
// A Val is a small tagged value: unit, bool, 32/64-bit integers, symbols,
// bitsets, status codes, or a handle to a host object. Host objects (maps,
// vectors and binary blobs) are owned by an Env and are immutable: MapPut,
// MapDel and VecPush return a new object and leave the original untouched.
//
// LocalEnv is an in-process Env backed by a handle table. Map keys are kept
// in a deterministic total order so iteration and key listing are stable.
package hostval
