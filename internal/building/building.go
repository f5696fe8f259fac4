// Package building provides the per-building lifecycle state machine,
// progress counters, and production/upkeep recomputation.
package building

import (
	"math"

	"github.com/google/uuid"

	"github.com/ironhollow/stronghold/internal/catalog"
	"github.com/ironhollow/stronghold/internal/project"
	"github.com/ironhollow/stronghold/internal/resource"
)

// Type aliases the catalog's building type so callers deal with one name.
type Type = catalog.BuildingType

// Status is the lifecycle state machine value.
type Status uint8

const (
	Planning Status = iota
	UnderConstruction
	Complete
	Damaged
	Repairing
	Upgrading
)

// StatusName returns a human-readable lifecycle status.
func StatusName(s Status) string {
	switch s {
	case Planning:
		return "Planning"
	case UnderConstruction:
		return "Under Construction"
	case Complete:
		return "Complete"
	case Damaged:
		return "Damaged"
	case Repairing:
		return "Repairing"
	case Upgrading:
		return "Upgrading"
	default:
		return "Unknown"
	}
}

func (s Status) String() string { return StatusName(s) }

// MaxConstructionCrew caps the dedicated construction crew.
const MaxConstructionCrew = 3

// damagedThreshold is the condition below which a complete building is
// forced into the Damaged state.
const damagedThreshold = 50

// Building is one structure of the stronghold.
type Building struct {
	ID     uuid.UUID `json:"id"`
	Type   Type      `json:"type"`
	Name   string    `json:"name"`
	Level  int       `json:"level"`
	Status Status    `json:"status"`

	Condition            int `json:"condition"`             // 0–100
	ConstructionProgress int `json:"construction_progress"` // 0–100

	ConstructionTimeTotal     int `json:"construction_time_total"`
	ConstructionTimeRemaining int `json:"construction_time_remaining"`
	RepairTimeRemaining       int `json:"repair_time_remaining"`
	UpgradeTimeRemaining      int `json:"upgrade_time_remaining"`

	WorkerSlots      int         `json:"worker_slots"`
	AssignedWorkers  []uuid.UUID `json:"assigned_workers"`
	ConstructionCrew []uuid.UUID `json:"construction_crew"`

	ConstructionCost resource.Cost `json:"construction_cost"`

	BaseProduction   map[resource.Type]int `json:"base_production"`
	ActualProduction map[resource.Type]int `json:"actual_production"`
	BaseUpkeep       map[resource.Type]int `json:"base_upkeep"`
	ActualUpkeep     map[resource.Type]int `json:"actual_upkeep"`

	CurrentProject *project.Project `json:"current_project,omitempty"`

	spec *catalog.Spec
}

// New creates a building of the given type in the Planning state, with
// stats taken from the catalog (builtin defaults when no entry exists).
func New(t Type, name string, cat *catalog.Catalog) *Building {
	spec := cat.Spec(t)
	b := &Building{
		ID:                        uuid.New(),
		Type:                      t,
		Name:                      name,
		Level:                     1,
		Status:                    Planning,
		Condition:                 100,
		ConstructionTimeTotal:     spec.ConstructionTime,
		ConstructionTimeRemaining: spec.ConstructionTime,
		WorkerSlots:               spec.WorkerSlotsAt(1),
		ConstructionCost:          spec.ConstructionCost,
		spec:                      spec,
	}
	b.refreshBaseTables()
	return b
}

// Attach re-binds the catalog spec after a load from storage.
func (b *Building) Attach(cat *catalog.Catalog) {
	b.spec = cat.Spec(b.Type)
	if b.WorkerSlots == 0 {
		b.WorkerSlots = b.spec.WorkerSlotsAt(b.Level)
	}
	b.refreshBaseTables()
}

// Spec returns the bound catalog configuration.
func (b *Building) Spec() *catalog.Spec {
	return b.spec
}

// refreshBaseTables recomputes the static per-level tables. Base production
// is the per-worker rate at full slots; base upkeep is flat per level.
func (b *Building) refreshBaseTables() {
	if b.spec == nil {
		return
	}
	b.BaseProduction = b.spec.ProductionAt(b.Level)
	b.BaseUpkeep = b.spec.UpkeepAt(b.Level)
}

// IsFunctional reports whether the building produces and consumes this
// week. Only Complete buildings count.
func (b *Building) IsFunctional() bool {
	return b.Status == Complete
}

// HasWorkers reports whether at least one ordinary worker is assigned.
func (b *Building) HasWorkers() bool {
	return len(b.AssignedWorkers) > 0
}

// hasBuilders reports whether construction can progress: either ordinary
// workers or the dedicated crew will do.
func (b *Building) hasBuilders() bool {
	return len(b.AssignedWorkers) > 0 || len(b.ConstructionCrew) > 0
}

// UpgradeCost derives the next-level cost from the construction cost.
func (b *Building) UpgradeCost() resource.Cost {
	mult := 0.5 + 0.1*float64(b.Level)
	cost := make(resource.Cost, len(b.ConstructionCost))
	for t, n := range b.ConstructionCost {
		cost[t] = int(math.Round(float64(n) * mult))
	}
	return cost
}

// RepairCost derives the repair cost from the construction cost.
func (b *Building) RepairCost() resource.Cost {
	cost := make(resource.Cost, len(b.ConstructionCost))
	for t, n := range b.ConstructionCost {
		if half := n / 2; half > 0 {
			cost[t] = half
		}
	}
	return cost
}

// RepairTime derives the repair duration from the construction time.
func (b *Building) RepairTime() int {
	t := int(math.Round(float64(b.ConstructionTimeTotal) * 0.5))
	if t < 1 {
		t = 1
	}
	return t
}

// AssignedWorkerCount returns the number of ordinary workers.
func (b *Building) AssignedWorkerCount() int {
	return len(b.AssignedWorkers)
}

// HasAssignedWorker reports whether the given id is in the ordinary pool.
func (b *Building) HasAssignedWorker(id uuid.UUID) bool {
	for _, w := range b.AssignedWorkers {
		if w == id {
			return true
		}
	}
	return false
}
