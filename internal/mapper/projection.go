package mapper

import (
	"iter"

	"graphmap/internal/domain"
	"graphmap/internal/record"
)

// project yields a fresh domain child per source record each time it is ranged over
func project(src []record.Child) iter.Seq2[int, *domain.Child] {
	return func(yield func(int, *domain.Child) bool) {
		for i := range src {
			if !yield(i, toDomainChild(src[i])) {
				return
			}
		}
	}
}

// projection is the unmaterialized child collection returned by ToDomainLazy.
// Every method re-evaluates project against source.
type projection struct {
	source []record.Child
}

var _ domain.Children = (*projection)(nil)

func (p *projection) All() iter.Seq[*domain.Child] {
	return func(yield func(*domain.Child) bool) {
		for _, c := range project(p.source) {
			if !yield(c) {
				return
			}
		}
	}
}

func (p *projection) Len() int {
	n := 0
	for range project(p.source) {
		n++
	}
	return n
}

func (p *projection) At(i int) *domain.Child {
	for j, c := range project(p.source) {
		if j == i {
			return c
		}
	}
	return nil
}

func (p *projection) Find(pred func(*domain.Child) bool) *domain.Child {
	for _, c := range project(p.source) {
		if pred(c) {
			return c
		}
	}
	return nil
}

func (p *projection) FindByID(id string) *domain.Child {
	return p.Find(func(c *domain.Child) bool { return c.ID == id })
}
