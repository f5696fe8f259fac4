// Package mission provides expedition-style tasks with prerequisites, a
// success roll, and rewards.
package mission

import (
	"github.com/google/uuid"

	"github.com/ironhollow/stronghold/internal/building"
	"github.com/ironhollow/stronghold/internal/npc"
	"github.com/ironhollow/stronghold/internal/resource"
	"github.com/ironhollow/stronghold/internal/rng"
)

// Status is the mission lifecycle value.
type Status uint8

const (
	Available Status = iota
	InProgress
	Completed
	Failed
)

// StatusName returns a human-readable mission status.
func StatusName(s Status) string {
	switch s {
	case Available:
		return "Available"
	case InProgress:
		return "In Progress"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (s Status) String() string { return StatusName(s) }

// Success probability bounds.
const (
	baseProbability = 75
	skillBonusCap   = 20
	probabilityCap  = 95
)

// Requirements are the three independent prerequisites. All must hold; no
// partial credit.
type Requirements struct {
	Resources resource.Cost `json:"resources,omitempty"`

	NPCCount      int      `json:"npc_count"`
	NPCType       *npc.Type `json:"npc_type,omitempty"`
	MinSkill      string   `json:"min_skill,omitempty"`
	MinSkillLevel int      `json:"min_skill_level,omitempty"`

	BuildingType     *building.Type `json:"building_type,omitempty"`
	BuildingMinLevel int            `json:"building_min_level,omitempty"`
}

// Rewards are granted only on success.
type Rewards struct {
	Resources    resource.Cost `json:"resources,omitempty"`
	Reputation   int           `json:"reputation"`
	SpecialItems []string      `json:"special_items,omitempty"`
}

// BuildingView is the minimal building information the requirement check
// needs.
type BuildingView struct {
	Type       building.Type
	Level      int
	Functional bool
}

// Mission is one expedition.
type Mission struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Status       Status       `json:"status"`
	Duration     int          `json:"duration_weeks"`
	Remaining    int          `json:"remaining_weeks"`
	Requirements Requirements `json:"requirements"`
	Rewards      Rewards      `json:"rewards"`
	AssignedNPCs []uuid.UUID  `json:"assigned_npcs"`
}

// New creates an available mission.
func New(name, description string, duration int, reqs Requirements, rewards Rewards) *Mission {
	return &Mission{
		ID:           uuid.New(),
		Name:         name,
		Description:  description,
		Status:       Available,
		Duration:     duration,
		Remaining:    duration,
		Requirements: reqs,
		Rewards:      rewards,
	}
}

// AreRequirementsMet checks the resource, inhabitant, and building
// prerequisites against the current state. Only currently unassigned
// inhabitants count toward the headcount.
func (m *Mission) AreRequirementsMet(ledger *resource.Ledger, roster *npc.Roster, buildings []BuildingView) bool {
	if !ledger.CanAfford(m.Requirements.Resources) {
		return false
	}

	if m.Requirements.NPCCount > 0 {
		qualified := 0
		for _, n := range roster.Unassigned() {
			if m.Requirements.NPCType != nil && n.Type != *m.Requirements.NPCType {
				continue
			}
			if m.Requirements.MinSkill != "" && n.SkillLevel(m.Requirements.MinSkill) < m.Requirements.MinSkillLevel {
				continue
			}
			qualified++
		}
		if qualified < m.Requirements.NPCCount {
			return false
		}
	}

	if m.Requirements.BuildingType != nil {
		found := false
		for _, b := range buildings {
			if b.Functional && b.Type == *m.Requirements.BuildingType && b.Level >= m.Requirements.BuildingMinLevel {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Start deducts the resource requirement and moves the mission to
// InProgress. It does not reserve inhabitants; the caller assigns them.
// Refused unless Available and fully payable.
func (m *Mission) Start(ledger *resource.Ledger) bool {
	if m.Status != Available {
		return false
	}
	if !ledger.Spend(m.Requirements.Resources) {
		return false
	}
	m.Status = InProgress
	m.Remaining = m.Duration
	return true
}

// SuccessProbability is the chance out of 100 that the mission resolves
// successfully, given the total skill levels of the assigned party.
func SuccessProbability(totalSkillLevels int) int {
	bonus := totalSkillLevels
	if bonus > skillBonusCap {
		bonus = skillBonusCap
	}
	p := baseProbability + bonus
	if p > probabilityCap {
		p = probabilityCap
	}
	return p
}

// PartySkillLevels sums every skill level of the assigned inhabitants.
// Unknown ids are skipped.
func (m *Mission) PartySkillLevels(roster *npc.Roster) int {
	total := 0
	for _, id := range m.AssignedNPCs {
		if n := roster.Get(id); n != nil {
			total += n.TotalSkillLevels()
		}
	}
	return total
}

// AdvanceProgress counts down one week of an in-progress mission. At zero
// the success roll resolves it to Completed or Failed. Returns true on the
// week the mission resolves.
func (m *Mission) AdvanceProgress(r rng.Source, partySkillLevels int) bool {
	if m.Status != InProgress {
		return false
	}

	m.Remaining--
	if m.Remaining > 0 {
		return false
	}

	m.Remaining = 0
	if m.roll(r) < SuccessProbability(partySkillLevels) {
		m.Status = Completed
	} else {
		m.Status = Failed
	}
	return true
}

// Succeeded reports whether the mission resolved successfully.
func (m *Mission) Succeeded() bool {
	return m.Status == Completed
}

func (m *Mission) roll(r rng.Source) int {
	return r.Intn(100)
}
