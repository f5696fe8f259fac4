package catalog

import (
	"github.com/ironhollow/stronghold/internal/resource"
)

// Builtin per-type defaults, used whenever the loaded catalog has no entry
// for a building type.
var defaults = map[BuildingType]*Spec{
	Keep: {
		Type:               Keep,
		WorkerSlotsByLevel: []int{2, 3, 4, 5, 6},
		ConstructionTime:   12,
		ConstructionCost:   resource.Cost{resource.Gold: 500, resource.Wood: 200, resource.Stone: 300},
		MaxLevel:           5,
		PrimarySkill:       "Leadership",
		SecondarySkill:     "Combat",
		SkillBonusPerLevel: 0.05,
		Upkeep:             map[resource.Type][]int{resource.Gold: {10, 14, 18, 22, 26}},
	},
	Farm: {
		Type:               Farm,
		WorkerSlotsByLevel: []int{3, 4, 5},
		ConstructionTime:   4,
		ConstructionCost:   resource.Cost{resource.Gold: 100, resource.Wood: 50},
		MaxLevel:           3,
		PrimarySkill:       "Farming",
		SkillBonusPerLevel: 0.10,
		Production:         map[resource.Type][]int{resource.Food: {20, 25, 30}},
		Upkeep:             map[resource.Type][]int{resource.Gold: {5, 7, 9}},
		Projects: []ProjectTemplate{
			{
				Name:             "Irrigation Channels",
				Description:      "Dig channels from the river to the fields.",
				MinLevel:         2,
				Cost:             resource.Cost{resource.Gold: 50, resource.Wood: 20},
				DurationWeeks:    3,
				WeeklyUpkeep:     resource.Cost{resource.Gold: 2},
				CompletionReward: resource.Cost{resource.Food: 60},
			},
		},
	},
	Sawmill: {
		Type:               Sawmill,
		WorkerSlotsByLevel: []int{2, 3, 4},
		ConstructionTime:   3,
		ConstructionCost:   resource.Cost{resource.Gold: 120, resource.Stone: 30},
		MaxLevel:           3,
		PrimarySkill:       "Crafting",
		SkillBonusPerLevel: 0.08,
		Production:         map[resource.Type][]int{resource.Wood: {10, 13, 16}},
		Upkeep:             map[resource.Type][]int{resource.Gold: {4, 6, 8}},
	},
	Quarry: {
		Type:               Quarry,
		WorkerSlotsByLevel: []int{3, 4, 5},
		ConstructionTime:   5,
		ConstructionCost:   resource.Cost{resource.Gold: 150, resource.Wood: 60},
		MaxLevel:           3,
		PrimarySkill:       "Crafting",
		SkillBonusPerLevel: 0.08,
		Production:         map[resource.Type][]int{resource.Stone: {8, 10, 13}},
		Upkeep:             map[resource.Type][]int{resource.Gold: {6, 8, 10}, resource.Food: {2, 3, 4}},
	},
	Mine: {
		Type:               Mine,
		WorkerSlotsByLevel: []int{3, 4, 6},
		ConstructionTime:   6,
		ConstructionCost:   resource.Cost{resource.Gold: 200, resource.Wood: 100},
		MaxLevel:           3,
		PrimarySkill:       "Crafting",
		SecondarySkill:     "Engineering",
		SkillBonusPerLevel: 0.08,
		Production:         map[resource.Type][]int{resource.Iron: {5, 7, 9}},
		Upkeep:             map[resource.Type][]int{resource.Gold: {8, 11, 14}, resource.Food: {3, 4, 5}},
	},
	Barracks: {
		Type:               Barracks,
		WorkerSlotsByLevel: []int{4, 6, 8, 10},
		ConstructionTime:   6,
		ConstructionCost:   resource.Cost{resource.Gold: 250, resource.Wood: 100, resource.Stone: 100},
		MaxLevel:           4,
		PrimarySkill:       "Combat",
		SkillBonusPerLevel: 0.05,
		Upkeep:             map[resource.Type][]int{resource.Gold: {12, 16, 20, 24}, resource.Food: {4, 6, 8, 10}},
	},
	Workshop: {
		Type:               Workshop,
		WorkerSlotsByLevel: []int{2, 3, 4},
		ConstructionTime:   4,
		ConstructionCost:   resource.Cost{resource.Gold: 180, resource.Wood: 80},
		MaxLevel:           3,
		PrimarySkill:       "Crafting",
		SkillBonusPerLevel: 0.10,
		Production:         map[resource.Type][]int{resource.Gold: {8, 11, 14}},
		Upkeep:             map[resource.Type][]int{resource.Wood: {2, 3, 4}},
	},
	Smithy: {
		Type:               Smithy,
		WorkerSlotsByLevel: []int{2, 3, 4},
		ConstructionTime:   5,
		ConstructionCost:   resource.Cost{resource.Gold: 220, resource.Stone: 80, resource.Iron: 20},
		MaxLevel:           3,
		PrimarySkill:       "Crafting",
		SecondarySkill:     "Engineering",
		SkillBonusPerLevel: 0.10,
		Production:         map[resource.Type][]int{resource.Gold: {12, 16, 20}},
		Upkeep:             map[resource.Type][]int{resource.Iron: {2, 3, 4}, resource.Wood: {2, 3, 4}},
	},
	Market: {
		Type:               Market,
		WorkerSlotsByLevel: []int{3, 5, 7},
		ConstructionTime:   5,
		ConstructionCost:   resource.Cost{resource.Gold: 300, resource.Wood: 120},
		MaxLevel:           3,
		PrimarySkill:       "Trade",
		SkillBonusPerLevel: 0.12,
		Production:         map[resource.Type][]int{resource.Gold: {10, 14, 18}},
		Upkeep:             map[resource.Type][]int{resource.Gold: {5, 7, 9}},
	},
	Tavern: {
		Type:               Tavern,
		WorkerSlotsByLevel: []int{2, 3, 4},
		ConstructionTime:   3,
		ConstructionCost:   resource.Cost{resource.Gold: 150, resource.Wood: 80},
		MaxLevel:           3,
		PrimarySkill:       "Trade",
		SkillBonusPerLevel: 0.08,
		Production:         map[resource.Type][]int{resource.Gold: {6, 8, 10}},
		Upkeep:             map[resource.Type][]int{resource.Food: {3, 4, 5}},
	},
	Chapel: {
		Type:               Chapel,
		WorkerSlotsByLevel: []int{1, 2, 3},
		ConstructionTime:   6,
		ConstructionCost:   resource.Cost{resource.Gold: 200, resource.Stone: 120},
		MaxLevel:           3,
		PrimarySkill:       "Diplomacy",
		SkillBonusPerLevel: 0.05,
		Upkeep:             map[resource.Type][]int{resource.Gold: {4, 6, 8}},
	},
	Library: {
		Type:               Library,
		WorkerSlotsByLevel: []int{2, 3, 4},
		ConstructionTime:   8,
		ConstructionCost:   resource.Cost{resource.Gold: 350, resource.Wood: 100, resource.Stone: 100},
		MaxLevel:           3,
		PrimarySkill:       "Lore",
		SkillBonusPerLevel: 0.05,
		Upkeep:             map[resource.Type][]int{resource.Gold: {8, 11, 14}},
	},
	Infirmary: {
		Type:               Infirmary,
		WorkerSlotsByLevel: []int{2, 3, 5},
		ConstructionTime:   5,
		ConstructionCost:   resource.Cost{resource.Gold: 250, resource.Wood: 100},
		MaxLevel:           3,
		PrimarySkill:       "Medicine",
		SkillBonusPerLevel: 0.10,
		Upkeep:             map[resource.Type][]int{resource.Gold: {6, 9, 12}},
	},
	Stable: {
		Type:               Stable,
		WorkerSlotsByLevel: []int{2, 3, 4},
		ConstructionTime:   4,
		ConstructionCost:   resource.Cost{resource.Gold: 180, resource.Wood: 120},
		MaxLevel:           3,
		PrimarySkill:       "Scouting",
		SkillBonusPerLevel: 0.06,
		Upkeep:             map[resource.Type][]int{resource.Gold: {5, 7, 9}, resource.Food: {4, 5, 6}},
	},
	Watchtower: {
		Type:               Watchtower,
		WorkerSlotsByLevel: []int{1, 2, 2},
		ConstructionTime:   3,
		ConstructionCost:   resource.Cost{resource.Gold: 120, resource.Wood: 40, resource.Stone: 60},
		MaxLevel:           3,
		PrimarySkill:       "Scouting",
		SecondarySkill:     "Combat",
		SkillBonusPerLevel: 0.05,
		Upkeep:             map[resource.Type][]int{resource.Gold: {3, 5, 7}},
	},
}

// defaultSpec returns the builtin configuration for a building type.
func defaultSpec(t BuildingType) *Spec {
	if s, ok := defaults[t]; ok {
		return s
	}
	// Unknown type with no documented default: minimal but functional.
	return &Spec{
		Type:               t,
		WorkerSlotsByLevel: []int{2},
		ConstructionTime:   4,
		ConstructionCost:   resource.Cost{resource.Gold: 100},
		MaxLevel:           1,
	}
}
