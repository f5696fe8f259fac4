package mission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhollow/stronghold/internal/building"
	"github.com/ironhollow/stronghold/internal/catalog"
	"github.com/ironhollow/stronghold/internal/mission"
	"github.com/ironhollow/stronghold/internal/npc"
	"github.com/ironhollow/stronghold/internal/resource"
	"github.com/ironhollow/stronghold/internal/rng"
)

func TestSuccessProbabilityBounds(t *testing.T) {
	assert.Equal(t, 75, mission.SuccessProbability(0))
	assert.Equal(t, 95, mission.SuccessProbability(20))
	assert.Equal(t, 95, mission.SuccessProbability(100), "capped at 95")

	// Monotonic non-decreasing in total skill levels.
	prev := 0
	for levels := 0; levels <= 40; levels++ {
		p := mission.SuccessProbability(levels)
		assert.GreaterOrEqual(t, p, prev)
		assert.LessOrEqual(t, p, 95)
		prev = p
	}
}

func testMission(reqs mission.Requirements) *mission.Mission {
	return mission.New("Scout the Pass", "", 2, reqs, mission.Rewards{
		Resources:  resource.Cost{resource.Gold: 100},
		Reputation: 5,
	})
}

func TestAreRequirementsMetAllThreePredicates(t *testing.T) {
	soldier := npc.TypeSoldier
	watchtower := catalog.Watchtower
	reqs := mission.Requirements{
		Resources:        resource.Cost{resource.Food: 10},
		NPCCount:         1,
		NPCType:          &soldier,
		MinSkill:         npc.SkillCombat,
		MinSkillLevel:    1,
		BuildingType:     &watchtower,
		BuildingMinLevel: 1,
	}
	m := testMission(reqs)

	ledger := resource.NewLedger(map[resource.Type]int{resource.Food: 20})
	roster := npc.NewRoster()
	roster.Add(npc.New("Berk", "male", npc.TypeSoldier))
	buildings := []mission.BuildingView{{Type: catalog.Watchtower, Level: 1, Functional: true}}

	assert.True(t, m.AreRequirementsMet(ledger, roster, buildings))

	// Each predicate fails independently; no partial credit.
	poor := resource.NewLedger(map[resource.Type]int{resource.Food: 5})
	assert.False(t, m.AreRequirementsMet(poor, roster, buildings))

	empty := npc.NewRoster()
	assert.False(t, m.AreRequirementsMet(ledger, empty, buildings))

	unbuilt := []mission.BuildingView{{Type: catalog.Watchtower, Level: 1, Functional: false}}
	assert.False(t, m.AreRequirementsMet(ledger, roster, unbuilt))
}

func TestAreRequirementsMetIgnoresAssignedNPCs(t *testing.T) {
	reqs := mission.Requirements{NPCCount: 1}
	m := testMission(reqs)
	ledger := resource.NewLedger(nil)
	roster := npc.NewRoster()
	busy := npc.New("Busy", "female", npc.TypeScout)
	busy.Assignment = npc.Assignment{Kind: npc.AssignedBuilding}
	roster.Add(busy)

	assert.False(t, m.AreRequirementsMet(ledger, roster, nil))
}

func TestStartDeductsResourcesImmediately(t *testing.T) {
	m := testMission(mission.Requirements{Resources: resource.Cost{resource.Gold: 50}})
	ledger := resource.NewLedger(map[resource.Type]int{resource.Gold: 60})

	require.True(t, m.Start(ledger))
	assert.Equal(t, mission.InProgress, m.Status)
	assert.Equal(t, 10, ledger.Amount(resource.Gold))

	// Already started: refused, nothing deducted.
	assert.False(t, m.Start(ledger))
	assert.Equal(t, 10, ledger.Amount(resource.Gold))
}

func TestAdvanceProgressResolvesAtZero(t *testing.T) {
	m := testMission(mission.Requirements{})
	ledger := resource.NewLedger(nil)
	require.True(t, m.Start(ledger))

	// Week one: still in progress.
	assert.False(t, m.AdvanceProgress(rng.NewSequence(0.99), 0))
	assert.Equal(t, mission.InProgress, m.Status)

	// Week two: roll 10 < 75, success.
	assert.True(t, m.AdvanceProgress(rng.NewSequence(0.10), 0))
	assert.Equal(t, mission.Completed, m.Status)
	assert.True(t, m.Succeeded())
}

func TestAdvanceProgressFailureRoll(t *testing.T) {
	m := testMission(mission.Requirements{})
	m.Duration = 1
	ledger := resource.NewLedger(nil)
	require.True(t, m.Start(ledger))

	// Roll 80 >= 75 with no skills: failure.
	assert.True(t, m.AdvanceProgress(rng.NewSequence(0.80), 0))
	assert.Equal(t, mission.Failed, m.Status)
}

func TestPartySkillLevelsSkipsUnknownIDs(t *testing.T) {
	m := testMission(mission.Requirements{})
	roster := npc.NewRoster()
	scout := npc.New("Anya", "female", npc.TypeScout)
	roster.Add(scout)
	m.AssignedNPCs = append(m.AssignedNPCs, scout.ID, npc.New("Ghost", "male", npc.TypeScout).ID)

	assert.Equal(t, scout.TotalSkillLevels(), m.PartySkillLevels(roster))
}

func TestBuildingViewTypeMatchesBuildingPackage(t *testing.T) {
	b := building.New(catalog.Watchtower, "North Tower", catalog.NewDefault())
	view := mission.BuildingView{Type: b.Type, Level: b.Level, Functional: b.IsFunctional()}

	assert.Equal(t, catalog.Watchtower, view.Type)
}
