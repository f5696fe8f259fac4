package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhollow/stronghold/internal/resource"
)

func TestApplyWeeklyChangeClampsAtZero(t *testing.T) {
	l := resource.NewLedger(map[resource.Type]int{resource.Food: 5})

	l.ResetWeekly()
	l.AddConsumption(resource.Food, resource.OriginPopulation, "Population", 20)
	l.ApplyWeeklyChange()

	assert.Equal(t, 0, l.Amount(resource.Food))
	// The net change still reports the full deficit.
	assert.Equal(t, -20, l.Get(resource.Food).NetWeeklyChange())
}

func TestApplyWeeklyChangeNetsProductionAndConsumption(t *testing.T) {
	l := resource.NewLedger(map[resource.Type]int{resource.Gold: 100, resource.Food: 100})

	l.ResetWeekly()
	l.AddProduction(resource.Food, resource.OriginBuilding, "Farm", 20)
	l.AddConsumption(resource.Food, resource.OriginPopulation, "Population", 3)
	l.AddConsumption(resource.Gold, resource.OriginBuilding, "Farm", 5)
	l.ApplyWeeklyChange()

	assert.Equal(t, 117, l.Amount(resource.Food))
	assert.Equal(t, 95, l.Amount(resource.Gold))
	assert.Equal(t, 17, l.Get(resource.Food).NetWeeklyChange())
	assert.Equal(t, -5, l.Get(resource.Gold).NetWeeklyChange())
}

func TestSpendIsAtomic(t *testing.T) {
	l := resource.NewLedger(map[resource.Type]int{resource.Gold: 50, resource.Wood: 10})

	ok := l.Spend(resource.Cost{resource.Gold: 30, resource.Wood: 20})

	require.False(t, ok)
	assert.Equal(t, 50, l.Amount(resource.Gold))
	assert.Equal(t, 10, l.Amount(resource.Wood))

	ok = l.Spend(resource.Cost{resource.Gold: 30, resource.Wood: 10})

	require.True(t, ok)
	assert.Equal(t, 20, l.Amount(resource.Gold))
	assert.Equal(t, 0, l.Amount(resource.Wood))
}

func TestResetWeeklyClearsSources(t *testing.T) {
	l := resource.NewLedger(nil)

	l.AddProduction(resource.Stone, resource.OriginBuilding, "Quarry", 8)
	require.Len(t, l.Get(resource.Stone).Sources, 1)

	l.ResetWeekly()

	assert.Empty(t, l.Get(resource.Stone).Sources)
	assert.Equal(t, 0, l.Get(resource.Stone).WeeklyProduction)
}

func TestSourceBreakdownSigns(t *testing.T) {
	l := resource.NewLedger(nil)

	l.AddProduction(resource.Iron, resource.OriginBuilding, "Mine", 4)
	l.AddConsumption(resource.Iron, resource.OriginBuilding, "Smithy", 2)

	sources := l.Get(resource.Iron).Sources
	require.Len(t, sources, 2)
	assert.Equal(t, 4, sources[0].Amount)
	assert.Equal(t, -2, sources[1].Amount)
}

func TestTypeByNameRoundTrip(t *testing.T) {
	for _, typ := range resource.AllTypes {
		got, ok := resource.TypeByName(resource.TypeName(typ))
		require.True(t, ok)
		assert.Equal(t, typ, got)
	}

	_, ok := resource.TypeByName("Mithril")
	assert.False(t, ok)
}
