// Package mapper converts between the stored record graph and the domain graph.
//
// ToDomain is the mapping every caller should use: it evaluates the child
// transform once and stores the results in a domain.ChildList owned by the
// returned parent.
//
// ToDomainLazy keeps the transform unevaluated. The returned collection is
// bound to the source record's child slice and re-runs the transform on every
// access, so two lookups of the same child return different pointers and a
// mutation through one is not seen through the other. It is kept as a
// reproducible baseline for that defect.
//
// Both mappings preserve child order, never mutate the source, never fail
// and map an absent child collection to an empty one.
package mapper
