package mapper

import (
	"graphmap/internal/domain"
	"graphmap/internal/record"
)

// ToDomain maps a record graph to a domain graph with materialized children
func ToDomain(src *record.Parent) *domain.Parent {
	if src == nil {
		return nil
	}

	children := make([]*domain.Child, 0, len(src.Children))
	for _, c := range project(src.Children) {
		children = append(children, c)
	}

	return &domain.Parent{
		ID:       src.ID,
		Value:    src.Value,
		Children: domain.NewChildList(children...),
	}
}

// ToDomainLazy maps a record graph to a domain graph whose children are
// recomputed from src on every access
func ToDomainLazy(src *record.Parent) *domain.Parent {
	if src == nil {
		return nil
	}

	return &domain.Parent{
		ID:       src.ID,
		Value:    src.Value,
		Children: &projection{source: src.Children},
	}
}

// ToRecord maps a domain graph back to its stored shape.
// Children are read exactly once, whatever collection backs them.
func ToRecord(p *domain.Parent) *record.Parent {
	if p == nil {
		return nil
	}

	out := &record.Parent{
		ID:       p.ID,
		Value:    p.Value,
		Children: []record.Child{},
	}
	if p.Children == nil {
		return out
	}
	for c := range p.Children.All() {
		if c == nil {
			continue
		}
		out.Children = append(out.Children, record.Child{ID: c.ID, Value: c.Value})
	}
	return out
}

func toDomainChild(c record.Child) *domain.Child {
	return &domain.Child{
		ID:    c.ID,
		Value: c.Value,
	}
}
