package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"graphmap/internal/codec"
	"graphmap/internal/config"
	"graphmap/internal/domain"
	"graphmap/internal/mapper"
	"graphmap/internal/record"
	"graphmap/internal/repository"
)

// MapFunc converts a record graph to a domain graph
type MapFunc func(*record.Parent) *domain.Parent

// MapperFor returns the mapping for mode, defaulting to the eager one
func MapperFor(mode config.MappingMode) MapFunc {
	if mode == config.MappingLazy {
		return mapper.ToDomainLazy
	}
	return mapper.ToDomain
}

// GraphService provides business logic for parent graph operations
type GraphService struct {
	repo     repository.Repository
	eventBus *EventBus
	mapFn    MapFunc
}

// NewGraphService creates a new graph service.
// mode only affects how imported records are mapped before storage.
func NewGraphService(repo repository.Repository, eventBus *EventBus, mode config.MappingMode) *GraphService {
	return &GraphService{
		repo:     repo,
		eventBus: eventBus,
		mapFn:    MapperFor(mode),
	}
}

// AddParent validates and stores a parent graph
func (s *GraphService) AddParent(ctx context.Context, parent *domain.Parent) error {
	if err := s.validateParent(parent); err != nil {
		return err
	}

	if err := s.repo.AddParent(ctx, parent); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventParentAdded,
		Payload: map[string]any{"parent_id": parent.ID, "children": parent.ChildCount()},
	})

	return nil
}

// GetParent retrieves a parent graph, or nil if it is not stored
func (s *GraphService) GetParent(ctx context.Context, id string) (*domain.Parent, error) {
	return s.repo.GetParent(ctx, id)
}

// SetChildValue loads the parent, edits one child through the loaded graph
// and writes it back. It reports whether both parent and child were found.
func (s *GraphService) SetChildValue(ctx context.Context, parentID, childID, value string) (bool, error) {
	parent, err := s.repo.GetParent(ctx, parentID)
	if err != nil {
		return false, fmt.Errorf("load parent %s: %w", parentID, err)
	}
	if parent == nil {
		return false, nil
	}

	child := parent.Child(childID)
	if child == nil {
		return false, nil
	}
	child.Value = value

	if err := s.repo.UpdateParent(ctx, parent); err != nil {
		return false, fmt.Errorf("update parent %s: %w", parentID, err)
	}

	s.eventBus.Publish(Event{
		Type:    EventParentUpdated,
		Payload: map[string]string{"parent_id": parentID, "child_id": childID},
	})

	return true, nil
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	ParentsAdded  int `json:"parents_added"`
	ChildrenAdded int `json:"children_added"`
}

// Import maps each record with the configured mapping and stores it
func (s *GraphService) Import(ctx context.Context, parents []record.Parent) (*ImportResult, error) {
	result := &ImportResult{}
	for i := range parents {
		parent := s.mapFn(&parents[i])
		if err := s.AddParent(ctx, parent); err != nil {
			return result, fmt.Errorf("import parent %q: %w", parents[i].ID, err)
		}
		result.ParentsAdded++
		result.ChildrenAdded += len(parents[i].Children)
	}

	s.eventBus.Publish(Event{
		Type:    EventFixtureLoaded,
		Payload: result,
	})

	return result, nil
}

// ImportYAML imports parent graphs from YAML
func (s *GraphService) ImportYAML(ctx context.Context, data []byte) (*ImportResult, error) {
	return s.importWith(ctx, codec.NewYAMLCodec(), data)
}

// ImportJSON imports parent graphs from JSON
func (s *GraphService) ImportJSON(ctx context.Context, data []byte) (*ImportResult, error) {
	return s.importWith(ctx, codec.NewJSONCodec(), data)
}

func (s *GraphService) importWith(ctx context.Context, imp codec.Importer, data []byte) (*ImportResult, error) {
	parents, err := imp.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, parents)
}

// Export writes the stored graphs for ids. Unknown ids are skipped.
func (s *GraphService) Export(ctx context.Context, ids []string, exp codec.Exporter, w io.Writer) error {
	parents := make([]record.Parent, 0, len(ids))
	for _, id := range ids {
		parent, err := s.repo.GetParent(ctx, id)
		if err != nil {
			return fmt.Errorf("load parent %s: %w", id, err)
		}
		if parent == nil {
			continue
		}
		parents = append(parents, *mapper.ToRecord(parent))
	}

	return exp.Export(parents, w)
}

// Validation helpers

func (s *GraphService) validateParent(parent *domain.Parent) error {
	if parent == nil {
		return fmt.Errorf("parent required")
	}
	if parent.ID == "" {
		return fmt.Errorf("parent ID required")
	}
	return nil
}
