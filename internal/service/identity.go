package service

import (
	"graphmap/internal/domain"
	"graphmap/internal/record"
)

// IdentityReport describes what happened when the first child of a mapped
// graph was looked up twice and edited through the first lookup
type IdentityReport struct {
	ParentID        string `json:"parent_id"`
	ChildID         string `json:"child_id,omitempty"`
	Checked         bool   `json:"checked"`          // false when the parent has no children
	SameInstance    bool   `json:"same_instance"`    // both lookups returned one pointer
	MutationVisible bool   `json:"mutation_visible"` // the edit showed through the second lookup
}

// Stable reports whether the mapping kept child identity
func (r IdentityReport) Stable() bool {
	return r.Checked && r.SameInstance && r.MutationVisible
}

// ProbeIdentity maps rec with the configured mapping and checks identity
// stability of its first child. rec itself is not modified.
func (s *GraphService) ProbeIdentity(rec *record.Parent) IdentityReport {
	report := probeIdentity(s.mapFn(rec))

	s.eventBus.Publish(Event{
		Type:    EventIdentityProbed,
		Payload: report,
	})

	return report
}

func probeIdentity(parent *domain.Parent) IdentityReport {
	report := IdentityReport{}
	if parent == nil {
		return report
	}
	report.ParentID = parent.ID

	if parent.ChildCount() == 0 {
		return report
	}
	first := parent.Children.At(0)
	if first == nil {
		return report
	}
	report.ChildID = first.ID
	report.Checked = true

	a := parent.Children.FindByID(first.ID)
	b := parent.Children.FindByID(first.ID)
	report.SameInstance = a == b

	const marker = "\x00identity-probe"
	original := a.Value
	a.Value = marker
	report.MutationVisible = parent.Children.FindByID(first.ID).Value == marker
	a.Value = original

	return report
}
