// Package repository defines the storage contract for parent graphs.
//
// A Repository persists a parent together with its children, reads it back
// by id and applies child value updates. Two implementations exist:
//
// - memory: a map of records behind a mutex, used by tests and the demo CLI
// - sqlite: a modernc.org/sqlite database with embedded migrations
//
// # Read Path
//
// Every implementation builds the returned graph with mapper.ToDomain, so the
// result owns a materialized child collection. Returning a lazy projection
// from a read would bring back the identity bug after every round trip.
//
// # Update Semantics
//
// UpdateParent matches children by id and overwrites the stored value for
// each match. Stored children missing from the payload are left alone,
// payload children missing from storage are ignored, and updating a parent
// that does not exist is a no-op. Children are never deleted.
//
// # Testing
//
// Package repositorytest holds a contract suite that both implementations
// run against.
package repository
