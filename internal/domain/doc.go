// Package domain defines the target graph used by application code.
//
// A Parent owns an ordered collection of Child values. The collection is
// exposed through the Children interface so callers can iterate, index and
// search it without knowing how it was built.
//
// # Child Collections
//
// ChildList is the materialized collection. It holds one *Child per logical
// element and every accessor returns a pointer into that single owned slice,
// so a mutation made through one lookup is visible through every other.
//
// Collections produced by mapper.ToDomainLazy are projections instead: each
// access re-runs the transform against the source records and returns fresh
// *Child values. They exist to demonstrate the identity bug and must not be
// returned from storage or service code.
//
// # Design Principles
//
// - No database or external dependencies
// - Pure data holders; validation is left to callers
package domain
