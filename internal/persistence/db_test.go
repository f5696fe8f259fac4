package persistence

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhollow/stronghold/internal/building"
	"github.com/ironhollow/stronghold/internal/catalog"
	"github.com/ironhollow/stronghold/internal/engine"
	"github.com/ironhollow/stronghold/internal/mission"
	"github.com/ironhollow/stronghold/internal/npc"
	"github.com/ironhollow/stronghold/internal/resource"
	"github.com/ironhollow/stronghold/internal/rng"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "game.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	s := engine.New(engine.Config{
		Name:     "Ravenkeep",
		Location: "Northern Marches",
		Rand:     rng.NewSeeded(7),
	})
	s.Week = 14
	s.Year = 2
	s.Reputation = 12

	require.True(t, s.AddBuilding(s.NewBuilding(catalog.Sawmill, "Mill")))

	n := npc.New("Bram", "male", npc.TypeFarmer)
	n.AddHealthState(npc.Sick)
	s.AddNPC(n)

	m := mission.New("Scout the Pass", "A look beyond the ridge.", 2,
		mission.Requirements{NPCCount: 1, Resources: resource.Cost{resource.Gold: 25}},
		mission.Rewards{Resources: resource.Cost{resource.Gold: 100}, Reputation: 3})
	s.AddMission(m)

	s.AdvanceWeek()
	require.NoError(t, db.SaveGame(s))

	loaded, err := db.LoadGame(catalog.NewDefault(), rng.NewSeeded(7))
	require.NoError(t, err)

	assert.Equal(t, "Ravenkeep", loaded.Name)
	assert.Equal(t, "Northern Marches", loaded.Location)
	assert.Equal(t, s.Week, loaded.Week)
	assert.Equal(t, s.Year, loaded.Year)
	assert.Equal(t, 12, loaded.Reputation)

	assert.Equal(t, s.Ledger.Amount(resource.Gold), loaded.Ledger.Amount(resource.Gold))
	assert.Equal(t, s.Ledger.Amount(resource.Food), loaded.Ledger.Amount(resource.Food))

	require.Len(t, loaded.Buildings, 1)
	assert.Equal(t, "Mill", loaded.Buildings[0].Name)
	assert.Equal(t, catalog.Sawmill, loaded.Buildings[0].Type)
	assert.NotNil(t, loaded.Building(loaded.Buildings[0].ID))

	got := loaded.Roster.Get(n.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Bram", got.Name)
	assert.True(t, got.HasHealthState(npc.Sick) || len(got.Health) == 0) // may have recovered during AdvanceWeek

	require.Len(t, loaded.Missions, 1)
	assert.Equal(t, "Scout the Pass", loaded.Missions[0].Name)
	assert.Equal(t, resource.Cost{resource.Gold: 25}, loaded.Missions[0].Requirements.Resources)

	assert.NotEmpty(t, loaded.Journal.Entries())
}

func TestSaveIsFullReplace(t *testing.T) {
	db := openTestDB(t)

	s := engine.New(engine.Config{Name: "Ravenkeep", Rand: rng.NewSeeded(1)})
	require.True(t, s.AddBuilding(s.NewBuilding(catalog.Farm, "First Farm")))
	require.NoError(t, db.SaveGame(s))

	require.True(t, s.RemoveBuilding(s.Buildings[0].ID))
	require.True(t, s.AddBuilding(s.NewBuilding(catalog.Sawmill, "Mill")))
	require.NoError(t, db.SaveGame(s))

	loaded, err := db.LoadGame(catalog.NewDefault(), rng.NewSeeded(1))
	require.NoError(t, err)
	require.Len(t, loaded.Buildings, 1)
	assert.Equal(t, "Mill", loaded.Buildings[0].Name)
	assert.Equal(t, catalog.Sawmill, loaded.Buildings[0].Type)
}

func TestLoadRestoresProjectSnapshot(t *testing.T) {
	db := openTestDB(t)

	s := engine.New(engine.Config{Name: "Ravenkeep", Rand: rng.NewSeeded(1)})
	b := s.NewBuilding(catalog.Farm, "Old Farm")
	b.Status = building.Complete
	b.Level = 2
	require.True(t, s.AddBuilding(b))

	n := npc.New("Bram", "male", npc.TypeFarmer)
	s.AddNPC(n)
	require.True(t, s.AssignWorkersToBuilding(b.ID, []uuid.UUID{n.ID}))
	require.True(t, s.StartBuildingProject(b.ID, "Irrigation Channels"))

	require.NoError(t, db.SaveGame(s))
	loaded, err := db.LoadGame(catalog.NewDefault(), rng.NewSeeded(1))
	require.NoError(t, err)

	lb := loaded.Building(b.ID)
	require.NotNil(t, lb)
	require.NotNil(t, lb.CurrentProject)
	assert.Equal(t, "Irrigation Channels", lb.CurrentProject.Name)
	assert.Equal(t, []uuid.UUID{n.ID}, lb.CurrentProject.AssignedWorkers)
}
