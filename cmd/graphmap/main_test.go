package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphmap/internal/codec"
	"graphmap/internal/config"
	"graphmap/internal/service"
)

func TestLoadFixtureDefaultScenario(t *testing.T) {
	parents, err := loadFixture("")
	require.NoError(t, err)
	require.Len(t, parents, 1)
	require.Len(t, parents[0].Children, 1)

	_, err = uuid.Parse(parents[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, "new", parents[0].Children[0].Value)
}

func TestRunRoundTripsThroughSQLite(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(fixture, []byte(`
parents:
  - id: p
    value: v
    children:
      - id: a
        value: new
      - id: b
        value: new
  - id: q
    value: w
`), 0644))

	repo, err := openRepository(config.StorageConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	svc := service.NewGraphService(repo, nil, config.MappingLazy)
	exportPath := filepath.Join(dir, "out.json")

	require.NoError(t, run(ctx, svc, fixture, exportPath, false, make(chan service.Event)))

	p, err := svc.GetParent(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, "updated", p.Child("a").Value)
	assert.Equal(t, "new", p.Child("b").Value)

	f, err := os.Open(exportPath)
	require.NoError(t, err)
	defer f.Close()
	exported, err := codec.NewJSONCodec().Parse(f)
	require.NoError(t, err)
	assert.Len(t, exported, 2)
}

func TestOpenRepositoryUnknownDriver(t *testing.T) {
	_, err := openRepository(config.StorageConfig{Driver: "postgres"})
	assert.Error(t, err)
}

func TestLoadConfigModeOverride(t *testing.T) {
	t.Setenv(config.EnvPrefix+"MAPPING_MODE", "")
	os.Unsetenv(config.EnvPrefix + "MAPPING_MODE")

	path := filepath.Join(t.TempDir(), "graphmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mapping:\n  mode: eager\n"), 0644))

	cfg, err := loadConfig(path, " LAZY ")
	require.NoError(t, err)
	assert.Equal(t, config.MappingLazy, cfg.Mapping.Mode)

	_, err = loadConfig(path, "deferred")
	assert.ErrorContains(t, err, "deferred")
}
