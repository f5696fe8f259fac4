package building_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhollow/stronghold/internal/building"
	"github.com/ironhollow/stronghold/internal/catalog"
	"github.com/ironhollow/stronghold/internal/project"
	"github.com/ironhollow/stronghold/internal/resource"
)

func newFarm(t *testing.T) *building.Building {
	t.Helper()
	return building.New(catalog.Farm, "East Farm", catalog.NewDefault())
}

func completeFarm(t *testing.T) *building.Building {
	t.Helper()
	b := newFarm(t)
	b.AssignedWorkers = []uuid.UUID{uuid.New()}
	for !b.AdvanceConstruction() {
	}
	return b
}

func TestConstructionNeedsBuilders(t *testing.T) {
	b := newFarm(t)

	// No workers, no crew: two weeks pass and nothing moves.
	assert.False(t, b.AdvanceConstruction())
	assert.False(t, b.AdvanceConstruction())
	assert.Equal(t, building.Planning, b.Status)
	assert.Equal(t, 0, b.ConstructionProgress)
	assert.Equal(t, b.ConstructionTimeTotal, b.ConstructionTimeRemaining)
}

func TestConstructionCompletesWithWorker(t *testing.T) {
	b := newFarm(t)
	b.ConstructionTimeTotal = 2
	b.ConstructionTimeRemaining = 2
	b.AssignedWorkers = []uuid.UUID{uuid.New()}

	done := b.AdvanceConstruction()
	assert.False(t, done)
	assert.Equal(t, building.UnderConstruction, b.Status)
	assert.Equal(t, 50, b.ConstructionProgress)

	done = b.AdvanceConstruction()
	assert.True(t, done)
	assert.Equal(t, building.Complete, b.Status)
	assert.Equal(t, 100, b.ConstructionProgress)

	// Completion is signalled only once.
	assert.False(t, b.AdvanceConstruction())
}

func TestConstructionCrewAloneProgresses(t *testing.T) {
	b := newFarm(t)
	b.ConstructionCrew = []uuid.UUID{uuid.New()}

	b.AdvanceConstruction()

	assert.Equal(t, building.UnderConstruction, b.Status)
	assert.Equal(t, b.ConstructionTimeTotal-1, b.ConstructionTimeRemaining)
}

func TestStartUpgradeRefusedAtMaxLevel(t *testing.T) {
	b := completeFarm(t)
	b.Level = b.Spec().MaxLevel
	ledger := resource.NewLedger(map[resource.Type]int{resource.Gold: 10000, resource.Wood: 10000})
	before := ledger.Snapshot()

	ok := b.StartUpgrade(ledger)

	assert.False(t, ok)
	assert.Equal(t, b.Spec().MaxLevel, b.Level)
	assert.Equal(t, before, ledger.Snapshot())
}

func TestStartUpgradeRefusedWithoutFunds(t *testing.T) {
	b := completeFarm(t)
	ledger := resource.NewLedger(map[resource.Type]int{resource.Gold: 1})

	ok := b.StartUpgrade(ledger)

	assert.False(t, ok)
	assert.Equal(t, building.Complete, b.Status)
	assert.Equal(t, 1, ledger.Amount(resource.Gold))
}

func TestUpgradeCostScalesWithLevel(t *testing.T) {
	b := completeFarm(t)

	// Construction cost 100 Gold / 50 Wood; level 1 multiplier 0.6.
	cost := b.UpgradeCost()
	assert.Equal(t, 60, cost[resource.Gold])
	assert.Equal(t, 30, cost[resource.Wood])

	b.Level = 2
	cost = b.UpgradeCost()
	assert.Equal(t, 70, cost[resource.Gold])
}

func TestUpgradeRaisesLevelAndSlots(t *testing.T) {
	b := completeFarm(t)
	ledger := resource.NewLedger(map[resource.Type]int{resource.Gold: 1000, resource.Wood: 1000})

	require.True(t, b.StartUpgrade(ledger))
	assert.Equal(t, building.Upgrading, b.Status)

	for !b.AdvanceUpgrade() {
	}

	assert.Equal(t, 2, b.Level)
	assert.Equal(t, building.Complete, b.Status)
	assert.Equal(t, b.Spec().WorkerSlotsAt(2), b.WorkerSlots)
	assert.Equal(t, 25, b.BaseProduction[resource.Food])
}

func TestAdvanceNoOpsWithoutWorkers(t *testing.T) {
	b := completeFarm(t)
	b.AssignedWorkers = nil
	b.Damage(60)
	ledger := resource.NewLedger(map[resource.Type]int{resource.Gold: 1000, resource.Wood: 1000})
	require.True(t, b.StartRepair(ledger))
	remaining := b.RepairTimeRemaining

	assert.False(t, b.AdvanceRepair())
	assert.Equal(t, remaining, b.RepairTimeRemaining)
}

func TestDamageForcesDamagedAndCancelsProject(t *testing.T) {
	b := completeFarm(t)
	ledger := resource.NewLedger(map[resource.Type]int{resource.Gold: 1000, resource.Wood: 1000})
	p := project.New("Fence Work", "", resource.Cost{resource.Gold: 10}, 2, nil)
	require.True(t, b.StartProject(p, ledger))

	b.Damage(60)

	assert.Equal(t, 40, b.Condition)
	assert.Equal(t, building.Damaged, b.Status)
	assert.Nil(t, b.CurrentProject)
}

func TestDamageFloorsAtZero(t *testing.T) {
	b := completeFarm(t)

	b.Damage(250)

	assert.Equal(t, 0, b.Condition)
}

func TestRepairRestoresCondition(t *testing.T) {
	b := completeFarm(t)
	b.Damage(60)
	ledger := resource.NewLedger(map[resource.Type]int{resource.Gold: 1000, resource.Wood: 1000})

	require.True(t, b.StartRepair(ledger))
	// Farm construction time 4 → repair time 2.
	assert.Equal(t, 2, b.RepairTimeRemaining)

	for !b.AdvanceRepair() {
	}

	assert.Equal(t, building.Complete, b.Status)
	assert.Equal(t, 100, b.Condition)
}

func TestStartProjectSnapshotsWorkers(t *testing.T) {
	b := completeFarm(t)
	w1, w2 := uuid.New(), uuid.New()
	b.AssignedWorkers = []uuid.UUID{w1, w2}
	ledger := resource.NewLedger(map[resource.Type]int{resource.Gold: 100})
	p := project.New("Fence Work", "", resource.Cost{resource.Gold: 10}, 2, nil)

	require.True(t, b.StartProject(p, ledger))
	assert.Equal(t, 90, ledger.Amount(resource.Gold))

	// Later roster changes do not restaff the project.
	b.AssignedWorkers = []uuid.UUID{uuid.New()}
	assert.True(t, p.Staffs(w1))
	assert.True(t, p.Staffs(w2))
}

func TestStartProjectRefusedWhenBusyOrUnpaid(t *testing.T) {
	b := completeFarm(t)
	ledger := resource.NewLedger(map[resource.Type]int{resource.Gold: 15})
	p1 := project.New("First", "", resource.Cost{resource.Gold: 10}, 2, nil)
	p2 := project.New("Second", "", resource.Cost{resource.Gold: 10}, 2, nil)

	require.True(t, b.StartProject(p1, ledger))
	assert.False(t, b.StartProject(p2, ledger), "one active project per building")
	assert.Equal(t, 5, ledger.Amount(resource.Gold), "refusal deducts nothing")

	b.CancelProject()
	assert.False(t, b.StartProject(p2, ledger), "insufficient funds")
}

func TestUpdateProductionIdempotent(t *testing.T) {
	b := completeFarm(t)
	workers := []building.WorkerView{{ID: uuid.New(), SkillLevel: 2}, {ID: uuid.New(), SkillLevel: 0}}

	b.UpdateProduction(workers)
	first := b.ActualProduction[resource.Food]
	b.UpdateProduction(workers)

	assert.Equal(t, first, b.ActualProduction[resource.Food])
}

func TestUpdateProductionExcludesProjectWorkers(t *testing.T) {
	b := completeFarm(t)
	w1, w2 := uuid.New(), uuid.New()
	b.AssignedWorkers = []uuid.UUID{w1, w2}
	ledger := resource.NewLedger(map[resource.Type]int{resource.Gold: 100})
	p := project.New("Fence Work", "", resource.Cost{resource.Gold: 10}, 2, nil)
	require.True(t, b.StartProject(p, ledger))
	p.AssignedWorkers = []uuid.UUID{w1}

	b.UpdateProduction([]building.WorkerView{{ID: w1}, {ID: w2}})

	// Only w2 produces: 20 food per worker at level 1.
	assert.Equal(t, 20, b.ActualProduction[resource.Food])
	assert.Equal(t, 5, b.ActualUpkeep[resource.Gold])
}

func TestUpdateProductionSkillBonus(t *testing.T) {
	b := completeFarm(t)
	// Farm bonus 0.10 per skill level: one worker at level 2 → 20 × 1.2.
	b.UpdateProduction([]building.WorkerView{{ID: uuid.New(), SkillLevel: 2}})

	assert.Equal(t, 24, b.ActualProduction[resource.Food])
}
