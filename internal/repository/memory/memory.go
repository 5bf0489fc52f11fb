// Package memory provides an in-process Repository backed by a map.
package memory

import (
	"context"
	"fmt"
	"sync"

	"graphmap/internal/domain"
	"graphmap/internal/mapper"
	"graphmap/internal/record"
	"graphmap/internal/repository"
)

// Repository implements repository.Repository in memory.
// Stored records are copied on every write and read, so no caller ever
// holds a reference into the store.
type Repository struct {
	mu      sync.RWMutex
	parents map[string]record.Parent
}

var _ repository.Repository = (*Repository)(nil)

// New creates an empty in-memory repository
func New() *Repository {
	return &Repository{
		parents: make(map[string]record.Parent),
	}
}

// AddParent stores a copy of the parent graph
func (r *Repository) AddParent(ctx context.Context, parent *domain.Parent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("parent is required")
	}

	rec := mapper.ToRecord(parent)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.parents[rec.ID]; ok {
		return fmt.Errorf("add parent %s: %w", rec.ID, repository.ErrParentExists)
	}
	r.parents[rec.ID] = *rec
	return nil
}

// GetParent returns a materialized copy of the stored graph, or nil
func (r *Repository) GetParent(ctx context.Context, id string) (*domain.Parent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	rec, ok := r.parents[id]
	if ok {
		rec = rec.Clone()
	}
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return mapper.ToDomain(&rec), nil
}

// UpdateParent overwrites values of stored children whose ids appear in parent
func (r *Repository) UpdateParent(ctx context.Context, parent *domain.Parent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("parent is required")
	}

	payload := mapper.ToRecord(parent)

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.parents[payload.ID]
	if !ok {
		return nil
	}

	stored = stored.Clone()
	for _, c := range payload.Children {
		i := stored.ChildIndex(c.ID)
		if i < 0 {
			continue
		}
		stored.Children[i].Value = c.Value
	}
	r.parents[payload.ID] = stored
	return nil
}

// size returns the number of stored parents
func (r *Repository) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.parents)
}

// Close drops all stored data
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parents = make(map[string]record.Parent)
	return nil
}
