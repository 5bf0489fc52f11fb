package domain

import "iter"

// Children is a read view over a parent's child collection.
//
// Whether two lookups of the same element return the same *Child depends on
// the implementation. ChildList guarantees it; lazy projections do not.
type Children interface {
	// All yields the children in order
	All() iter.Seq[*Child]
	// Len returns the number of children
	Len() int
	// At returns the child at index i, or nil when out of range
	At(i int) *Child
	// Find returns the first child matching pred, or nil
	Find(pred func(*Child) bool) *Child
	// FindByID returns the first child with the given id, or nil
	FindByID(id string) *Child
}

// ChildList is a materialized, identity-stable child collection.
// The zero value is an empty list.
type ChildList struct {
	items []*Child
}

// NewChildList takes ownership of a copy of children.
// Nil entries are kept in place so positions match the input.
func NewChildList(children ...*Child) *ChildList {
	l := &ChildList{items: make([]*Child, len(children))}
	copy(l.items, children)
	return l
}

// All yields pointers into the owned slice
func (l *ChildList) All() iter.Seq[*Child] {
	return func(yield func(*Child) bool) {
		if l == nil {
			return
		}
		for _, c := range l.items {
			if !yield(c) {
				return
			}
		}
	}
}

// Len returns the number of children
func (l *ChildList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the child at index i, or nil when out of range
func (l *ChildList) At(i int) *Child {
	if l == nil || i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Find returns the first child matching pred, or nil
func (l *ChildList) Find(pred func(*Child) bool) *Child {
	if l == nil {
		return nil
	}
	for _, c := range l.items {
		if c != nil && pred(c) {
			return c
		}
	}
	return nil
}

// FindByID returns the first child whose current id matches. Ids can change
// through the pointers the list hands out, so there is no id index.
func (l *ChildList) FindByID(id string) *Child {
	return l.Find(func(c *Child) bool { return c.ID == id })
}
