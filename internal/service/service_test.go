package service

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphmap/internal/codec"
	"graphmap/internal/config"
	"graphmap/internal/domain"
	"graphmap/internal/record"
	"graphmap/internal/repository/memory"
)

const (
	parentID = "8A0EBECB-C231-4C7C-A5CC-14B599687F3A"
	childID  = "D4506C2B-C837-4BF3-BAB6-D131EC8E296F"
)

func newTestService(t *testing.T, mode config.MappingMode) (*GraphService, chan Event) {
	t.Helper()
	repo := memory.New()
	t.Cleanup(func() { repo.Close() })

	bus := NewEventBus()
	events := make(chan Event, 16)
	bus.Subscribe(events)

	return NewGraphService(repo, bus, mode), events
}

func scenarioRecord() *record.Parent {
	return &record.Parent{
		ID:       parentID,
		Value:    "new",
		Children: []record.Child{{ID: childID, Value: "new"}},
	}
}

func TestGraphServiceValidateParent(t *testing.T) {
	svc := &GraphService{}

	t.Run("valid parent passes validation", func(t *testing.T) {
		assert.NoError(t, svc.validateParent(domain.NewParent("p", "v")))
	})

	t.Run("nil parent fails validation", func(t *testing.T) {
		assert.Error(t, svc.validateParent(nil))
	})

	t.Run("empty ID fails validation", func(t *testing.T) {
		assert.Error(t, svc.validateParent(&domain.Parent{Value: "v"}))
	})
}

func TestScenarioAddGetUpdate(t *testing.T) {
	ctx := context.Background()
	svc, events := newTestService(t, config.MappingEager)

	require.NoError(t, svc.AddParent(ctx, domain.NewParent(parentID, "new", domain.Child{ID: childID, Value: "new"})))

	got, err := svc.GetParent(ctx, parentID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 1, got.ChildCount())
	assert.Equal(t, childID, got.Children.At(0).ID)
	assert.Equal(t, "new", got.Children.At(0).Value)

	found, err := svc.SetChildValue(ctx, parentID, childID, "updated")
	require.NoError(t, err)
	assert.True(t, found)

	final, err := svc.GetParent(ctx, parentID)
	require.NoError(t, err)
	assert.Equal(t, "updated", final.Child(childID).Value)

	assert.Equal(t, EventParentAdded, (<-events).Type)
	assert.Equal(t, EventParentUpdated, (<-events).Type)
}

func TestSetChildValueMissing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, config.MappingEager)

	found, err := svc.SetChildValue(ctx, "nope", childID, "x")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, svc.AddParent(ctx, domain.NewParent(parentID, "new")))
	found, err = svc.SetChildValue(ctx, parentID, childID, "x")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestImportUsesConfiguredMapping(t *testing.T) {
	for _, mode := range []config.MappingMode{config.MappingEager, config.MappingLazy} {
		t.Run(string(mode), func(t *testing.T) {
			ctx := context.Background()
			svc, events := newTestService(t, mode)

			result, err := svc.Import(ctx, []record.Parent{*scenarioRecord(), {ID: "empty", Value: "v"}})
			require.NoError(t, err)
			assert.Equal(t, &ImportResult{ParentsAdded: 2, ChildrenAdded: 1}, result)

			// storage always hands back a materialized graph
			got, err := svc.GetParent(ctx, parentID)
			require.NoError(t, err)
			assert.Same(t, got.Children.At(0), got.Child(childID))

			empty, err := svc.GetParent(ctx, "empty")
			require.NoError(t, err)
			assert.Equal(t, 0, empty.ChildCount())

			assert.Equal(t, EventParentAdded, (<-events).Type)
			assert.Equal(t, EventParentAdded, (<-events).Type)
			assert.Equal(t, EventFixtureLoaded, (<-events).Type)
		})
	}
}

func TestImportStopsOnDuplicate(t *testing.T) {
	svc, _ := newTestService(t, config.MappingEager)

	result, err := svc.Import(context.Background(), []record.Parent{{ID: "p"}, {ID: "p"}, {ID: "q"}})
	require.Error(t, err)
	assert.Equal(t, 1, result.ParentsAdded)
}

func TestImportYAMLAndExport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, config.MappingEager)

	fixture := []byte(`
parents:
  - id: p
    value: v
    children:
      - id: b
        value: "2"
      - id: a
        value: "1"
`)
	_, err := svc.ImportYAML(ctx, fixture)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, []string{"p", "missing"}, codec.NewJSONCodec(), &buf))

	result, err := svc.ImportJSON(ctx, bytes.ReplaceAll(buf.Bytes(), []byte(`"p"`), []byte(`"p2"`)))
	require.NoError(t, err)
	assert.Equal(t, 1, result.ParentsAdded)

	copied, err := svc.GetParent(ctx, "p2")
	require.NoError(t, err)
	require.Equal(t, 2, copied.ChildCount())
	assert.Equal(t, "b", copied.Children.At(0).ID)
	assert.Equal(t, "a", copied.Children.At(1).ID)
}

func TestImportYAMLRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t, config.MappingEager)

	_, err := svc.ImportYAML(context.Background(), []byte("parents: nope"))
	assert.Error(t, err)
}

func TestProbeIdentity(t *testing.T) {
	t.Run("eager mapping is stable", func(t *testing.T) {
		svc, events := newTestService(t, config.MappingEager)
		rec := scenarioRecord()

		report := svc.ProbeIdentity(rec)

		assert.Equal(t, IdentityReport{
			ParentID:        parentID,
			ChildID:         childID,
			Checked:         true,
			SameInstance:    true,
			MutationVisible: true,
		}, report)
		assert.True(t, report.Stable())
		assert.Equal(t, "new", rec.Children[0].Value)
		assert.Equal(t, EventIdentityProbed, (<-events).Type)
	})

	t.Run("lazy mapping is not", func(t *testing.T) {
		svc, _ := newTestService(t, config.MappingLazy)
		rec := scenarioRecord()

		report := svc.ProbeIdentity(rec)

		assert.True(t, report.Checked)
		assert.False(t, report.SameInstance)
		assert.False(t, report.MutationVisible)
		assert.False(t, report.Stable())
		assert.Equal(t, "new", rec.Children[0].Value)
	})

	t.Run("no children is unchecked", func(t *testing.T) {
		svc, _ := newTestService(t, config.MappingEager)

		report := svc.ProbeIdentity(&record.Parent{ID: "p"})

		assert.False(t, report.Checked)
		assert.False(t, report.Stable())
		assert.Equal(t, "p", report.ParentID)
	})

	t.Run("nil record", func(t *testing.T) {
		svc, _ := newTestService(t, config.MappingEager)
		assert.Equal(t, IdentityReport{}, svc.ProbeIdentity(nil))
	})
}

func TestEventBusDropsWhenFull(t *testing.T) {
	bus := NewEventBus()
	ch := make(chan Event, 1)
	bus.Subscribe(ch)

	bus.Publish(Event{Type: EventParentAdded})
	bus.Publish(Event{Type: EventParentUpdated})

	assert.Len(t, ch, 1)
	assert.Equal(t, EventParentAdded, (<-ch).Type)
	assert.Equal(t, uint64(1), bus.Dropped())

	var nilBus *EventBus
	nilBus.Publish(Event{Type: EventParentAdded})
	assert.Zero(t, nilBus.Dropped())
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	kept := make(chan Event, 4)
	removed := make(chan Event, 4)
	bus.Subscribe(kept)
	unsubscribe := bus.Subscribe(removed)

	bus.Publish(Event{Type: EventParentAdded})
	unsubscribe()
	unsubscribe()
	bus.Publish(Event{Type: EventParentUpdated})

	assert.Len(t, kept, 2)
	assert.Len(t, removed, 1)
	assert.Zero(t, bus.Dropped())
}

func TestEventBusConcurrentSubscribePublish(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ch := make(chan Event, 1)
			unsubscribe := bus.Subscribe(ch)
			unsubscribe()
		}()
		go func() {
			defer wg.Done()
			bus.Publish(Event{Type: EventParentAdded})
		}()
	}
	wg.Wait()
}
