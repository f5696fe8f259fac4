package building

import (
	"math"

	"github.com/google/uuid"

	"github.com/ironhollow/stronghold/internal/resource"
)

// WorkerView is the lightweight per-worker input to production
// recomputation: the worker's id and their level in the building's
// relevant skills. The caller resolves these from the roster so this
// package never holds live inhabitant state.
type WorkerView struct {
	ID         uuid.UUID
	SkillLevel int
}

// UpdateProduction recomputes ActualProduction and ActualUpkeep from the
// current worker set. Workers snapshotted into the active project are
// excluded from ordinary production. The computation is a pure function of
// its inputs; calling it twice with the same workers yields the same
// tables.
func (b *Building) UpdateProduction(workers []WorkerView) {
	effective := 0
	skillLevels := 0
	for _, w := range workers {
		if b.CurrentProject != nil && b.CurrentProject.Staffs(w.ID) {
			continue
		}
		effective++
		skillLevels += w.SkillLevel
	}

	bonus := 0.0
	if b.spec != nil {
		bonus = b.spec.SkillBonusPerLevel
	}
	mult := 1.0 + bonus*float64(skillLevels)

	b.ActualProduction = make(map[resource.Type]int, len(b.BaseProduction))
	for t, perWorker := range b.BaseProduction {
		amount := int(math.Round(float64(perWorker*effective) * mult))
		if amount > 0 {
			b.ActualProduction[t] = amount
		}
	}

	// Upkeep is flat per level; an unstaffed but complete building still
	// costs its keep.
	b.ActualUpkeep = make(map[resource.Type]int, len(b.BaseUpkeep))
	for t, base := range b.BaseUpkeep {
		if base > 0 {
			b.ActualUpkeep[t] = base
		}
	}
}
