package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"

	"graphmap/internal/codec"
	"graphmap/internal/config"
	"graphmap/internal/mapper"
	"graphmap/internal/record"
	"graphmap/internal/repository"
	"graphmap/internal/repository/memory"
	"graphmap/internal/repository/sqlite"
	"graphmap/internal/service"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Config file path (default: search standard locations)")
	fixturePath := flag.String("fixture", "", "YAML or JSON fixture to load (default: built-in scenario)")
	mode := flag.String("mode", "", "Mapping mode override: eager or lazy")
	exportPath := flag.String("export", "", "Write the stored graphs back out to this YAML or JSON file")
	dump := flag.Bool("dump", false, "Dump every graph read back from storage")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := loadConfig(*configPath, *mode)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println(cfg.Summary())

	repo, err := openRepository(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open repository: %v", err)
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := service.NewEventBus()
	eventChan := make(chan service.Event, 100)
	unsubscribe := eventBus.Subscribe(eventChan)

	svc := service.NewGraphService(repo, eventBus, cfg.Mapping.Mode)

	err = run(ctx, svc, *fixturePath, *exportPath, *dump, eventChan)
	unsubscribe()
	if n := eventBus.Dropped(); n > 0 {
		log.Printf("Dropped %d events (subscriber buffer full)", n)
	}
	if err != nil {
		log.Printf("Run failed: %v", err)
		repo.Close()
		os.Exit(1)
	}
}

func loadConfig(path, modeOverride string) (*config.Config, error) {
	var (
		cfg    *config.Config
		source string
		err    error
	)
	if path != "" {
		cfg, source, err = config.LoadFromPath(path)
	} else {
		cfg, source, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if source != "" {
		log.Printf("Config loaded: %s", source)
	}

	if modeOverride != "" {
		if err := cfg.Mapping.Mode.UnmarshalText([]byte(modeOverride)); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func openRepository(cfg config.StorageConfig) (repository.Repository, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		repo, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		log.Printf("Database opened: %s", cfg.Path)
		return repo, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func run(ctx context.Context, svc *service.GraphService, fixturePath, exportPath string, dump bool, events <-chan service.Event) error {
	defer drainEvents(events)

	parents, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d parent graphs", len(parents))

	// Probe before import: storage never sees the probe's edits
	for i := range parents {
		report := svc.ProbeIdentity(&parents[i])
		switch {
		case !report.Checked:
			log.Printf("Parent %s: no children to probe", report.ParentID)
		case report.Stable():
			log.Printf("Parent %s: child %s identity stable", report.ParentID, report.ChildID)
		default:
			log.Printf("Parent %s: child %s identity NOT stable (same instance: %v, mutation visible: %v)",
				report.ParentID, report.ChildID, report.SameInstance, report.MutationVisible)
		}
	}

	result, err := svc.Import(ctx, parents)
	if err != nil {
		return err
	}
	log.Printf("Imported %d parents with %d children", result.ParentsAdded, result.ChildrenAdded)

	ids := make([]string, 0, len(parents))
	for _, p := range parents {
		ids = append(ids, p.ID)
		if len(p.Children) == 0 {
			continue
		}

		childID := p.Children[0].ID
		found, err := svc.SetChildValue(ctx, p.ID, childID, "updated")
		if err != nil {
			return err
		}
		if !found {
			log.Printf("Parent %s: child %s not found after import", p.ID, childID)
			continue
		}

		stored, err := svc.GetParent(ctx, p.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			return fmt.Errorf("parent %s missing after update", p.ID)
		}
		log.Printf("Parent %s: child %s value after round trip = %q",
			p.ID, childID, stored.Child(childID).Value)

		if dump {
			fmt.Print(spew.Sdump(mapper.ToRecord(stored)))
		}
	}

	if exportPath != "" {
		if err := export(ctx, svc, ids, exportPath); err != nil {
			return err
		}
		log.Printf("Exported %d parents to %s", len(ids), exportPath)
	}

	return nil
}

// loadFixture reads path, or builds the single-child scenario with fresh ids
func loadFixture(path string) ([]record.Parent, error) {
	if path == "" {
		return []record.Parent{{
			ID:    strings.ToUpper(uuid.NewString()),
			Value: "new",
			Children: []record.Child{
				{ID: strings.ToUpper(uuid.NewString()), Value: "new"},
			},
		}}, nil
	}

	imp, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	return imp.Parse(f)
}

func export(ctx context.Context, svc *service.GraphService, ids []string, path string) (err error) {
	exp, err := codec.ForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return svc.Export(ctx, ids, exp, f)
}

func drainEvents(events <-chan service.Event) {
	for {
		select {
		case event := <-events:
			log.Printf("Event: %s", event.Type)
		default:
			return
		}
	}
}
