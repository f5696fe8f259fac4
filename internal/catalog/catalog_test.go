package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhollow/stronghold/internal/catalog"
	"github.com/ironhollow/stronghold/internal/resource"
)

func TestSpecFallsBackToDefaults(t *testing.T) {
	cat := catalog.NewDefault()

	for _, typ := range catalog.AllBuildingTypes {
		spec := cat.Spec(typ)
		require.NotNil(t, spec, "type %s", typ)
		assert.Greater(t, spec.ConstructionTime, 0)
		assert.GreaterOrEqual(t, spec.MaxLevel, 1)
		assert.Greater(t, spec.WorkerSlotsAt(1), 0)
	}
}

func TestFarmDefaultNumbers(t *testing.T) {
	spec := catalog.NewDefault().Spec(catalog.Farm)

	assert.Equal(t, 20, spec.ProductionAt(1)[resource.Food])
	assert.Equal(t, 5, spec.UpkeepAt(1)[resource.Gold])
	assert.Equal(t, 3, spec.WorkerSlotsAt(1))
}

func TestLevelLookupsClampToLastEntry(t *testing.T) {
	spec := catalog.NewDefault().Spec(catalog.Farm)

	// Past the configured range, the last entry is reused.
	assert.Equal(t, spec.ProductionAt(3), spec.ProductionAt(9))
	assert.Equal(t, spec.WorkerSlotsAt(3), spec.WorkerSlotsAt(9))
}

func TestProjectsAtGatesOnLevel(t *testing.T) {
	spec := catalog.NewDefault().Spec(catalog.Farm)

	assert.Empty(t, spec.ProjectsAt(1))
	require.Len(t, spec.ProjectsAt(2), 1)
	assert.Equal(t, "Irrigation Channels", spec.ProjectsAt(2)[0].Name)
}

func TestNameLookupsIgnoreCase(t *testing.T) {
	// viper hands Load lowercased keys, so resolution cannot be exact-match.
	typ, ok := catalog.BuildingTypeByName("farm")
	require.True(t, ok)
	assert.Equal(t, catalog.Farm, typ)

	rt, ok := resource.TypeByName("gold")
	require.True(t, ok)
	assert.Equal(t, resource.Gold, rt)

	_, ok = catalog.BuildingTypeByName("granary")
	assert.False(t, ok)
}

func TestLoadOverridesAndPreservesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := `
buildings:
  Farm:
    worker_slots_by_level: [4, 5, 6]
    construction_time: 2
    construction_cost:
      Gold: 80
    max_level: 3
    primary_skill: Farming
    skill_bonus_per_level: 0.1
    production:
      Food: [25, 30, 35]
    upkeep:
      Gold: [4, 5, 6]
    projects:
      - name: Crop Rotation
        min_level: 1
        duration_weeks: 2
        weekly_upkeep:
          Gold: 3
        weekly_production:
          Food: 4
        completion_reward:
          Food: 10
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cat, err := catalog.Load(path)
	require.NoError(t, err)

	farm := cat.Spec(catalog.Farm)
	assert.Equal(t, 25, farm.ProductionAt(1)[resource.Food])
	assert.Equal(t, 2, farm.ConstructionTime)
	assert.Equal(t, resource.Cost{resource.Gold: 80}, farm.ConstructionCost)

	require.Len(t, farm.Projects, 1)
	assert.Equal(t, resource.Cost{resource.Gold: 3}, farm.Projects[0].WeeklyUpkeep)
	assert.Equal(t, resource.Cost{resource.Food: 4}, farm.Projects[0].WeeklyProduction)

	// Types not present in the file keep their builtin defaults.
	mine := cat.Spec(catalog.Mine)
	assert.Equal(t, 5, mine.ProductionAt(1)[resource.Iron])
}

func TestLoadRejectsInvalidEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := `
buildings:
  Farm:
    worker_slots_by_level: [3]
    construction_time: 0
    construction_cost:
      Gold: 100
    max_level: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := catalog.Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownResource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	data := `
buildings:
  Farm:
    worker_slots_by_level: [3]
    construction_time: 4
    construction_cost:
      Mithril: 100
    max_level: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := catalog.Load(path)
	assert.Error(t, err)
}
