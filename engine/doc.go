// Package engine defines the boundary contract between the toxbind session
// layer and a Tox messaging engine.
//
// The engine is treated as an opaque collaborator: it allocates a flat
// option structure, constructs instance handles from it, reports failures
// as integer codes, and delivers events through untyped callbacks with
// positional arguments. This package models that surface as Go types so
// the session layer above it never depends on a concrete engine.
//
// A Backend implementation is typically a thin shim over the real engine.
// The enginetest subpackage provides an in-memory Backend for tests.
package engine
