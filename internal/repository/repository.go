package repository

import (
	"context"
	"errors"

	"graphmap/internal/domain"
)

// ErrParentExists is returned by AddParent when the id is already stored
var ErrParentExists = errors.New("parent already exists")

// Repository defines the interface for parent graph storage
type Repository interface {
	// AddParent persists a parent and all of its children
	AddParent(ctx context.Context, parent *domain.Parent) error
	// GetParent returns a freshly built graph, or nil when id is unknown
	GetParent(ctx context.Context, id string) (*domain.Parent, error)
	// UpdateParent copies child values onto stored children with matching ids
	UpdateParent(ctx context.Context, parent *domain.Parent) error

	// Close releases resources
	Close() error
}
