// Package service implements the graph workflows used by the graphmap CLI.
//
// GraphService sits between fixtures, the mapper and a repository. It maps
// imported records with the configured mapping mode, persists them, applies
// child value edits through the storage read/update path, and probes whether
// a mapping keeps child identity stable.
//
// # Event System
//
// Writes publish events on an EventBus. Delivery is best effort: a full
// subscriber channel drops the event.
//
// # Design Principles
//
// - Services own validation; mapper and repository pass data through
// - Repository pattern for data access
// - Context-aware for cancellation
package service
