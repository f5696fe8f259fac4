package building

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/ironhollow/stronghold/internal/project"
	"github.com/ironhollow/stronghold/internal/resource"
)

// AdvanceConstruction progresses the Planning/UnderConstruction path by one
// week. Without a single builder nothing moves. Returns true exactly once,
// on the week construction completes.
func (b *Building) AdvanceConstruction() bool {
	if b.Status != Planning && b.Status != UnderConstruction {
		return false
	}
	if !b.hasBuilders() {
		return false
	}

	b.Status = UnderConstruction
	b.ConstructionTimeRemaining--
	if b.ConstructionTimeTotal > 0 {
		b.ConstructionProgress = 100 - b.ConstructionTimeRemaining*100/b.ConstructionTimeTotal
	}

	if b.ConstructionTimeRemaining > 0 {
		return false
	}

	b.Status = Complete
	b.ConstructionProgress = 100
	b.ConstructionTimeRemaining = 0
	slog.Info("construction complete", "building", b.Name, "type", b.Type)
	return true
}

// StartRepair pays the repair cost and moves a Damaged building into
// Repairing. Refused without full payment; refusal changes nothing.
func (b *Building) StartRepair(ledger *resource.Ledger) bool {
	if b.Status != Damaged {
		return false
	}
	if !ledger.Spend(b.RepairCost()) {
		return false
	}
	b.Status = Repairing
	b.RepairTimeRemaining = b.RepairTime()
	return true
}

// AdvanceRepair progresses an active repair by one week. No workers, no
// progress. Returns true on the week the repair completes.
func (b *Building) AdvanceRepair() bool {
	if b.Status != Repairing || !b.HasWorkers() {
		return false
	}

	b.RepairTimeRemaining--
	if b.RepairTimeRemaining > 0 {
		return false
	}

	b.Status = Complete
	b.Condition = 100
	b.RepairTimeRemaining = 0
	slog.Info("repair complete", "building", b.Name)
	return true
}

// StartUpgrade charges the upgrade cost and moves a Complete building into
// Upgrading. Refused at max level or without full payment, leaving all
// state untouched.
func (b *Building) StartUpgrade(ledger *resource.Ledger) bool {
	if b.Status != Complete {
		return false
	}
	if b.spec != nil && b.Level >= b.spec.MaxLevel {
		return false
	}
	if !ledger.Spend(b.UpgradeCost()) {
		return false
	}
	b.Status = Upgrading
	b.UpgradeTimeRemaining = b.ConstructionTimeTotal
	return true
}

// AdvanceUpgrade progresses an active upgrade by one week. On completion
// the level rises, worker slots grow per the catalog, and the base tables
// are recomputed.
func (b *Building) AdvanceUpgrade() bool {
	if b.Status != Upgrading || !b.HasWorkers() {
		return false
	}

	b.UpgradeTimeRemaining--
	if b.UpgradeTimeRemaining > 0 {
		return false
	}

	b.Level++
	b.Status = Complete
	b.UpgradeTimeRemaining = 0
	if b.spec != nil {
		b.WorkerSlots = b.spec.WorkerSlotsAt(b.Level)
	}
	b.refreshBaseTables()
	slog.Info("upgrade complete", "building", b.Name, "level", b.Level)
	return true
}

// Damage lowers the condition, floored at zero. A Complete building whose
// condition drops below the threshold is forced into Damaged and loses its
// current project.
func (b *Building) Damage(amount int) {
	if amount <= 0 {
		return
	}
	b.Condition -= amount
	if b.Condition < 0 {
		b.Condition = 0
	}
	if b.Status == Complete && b.Condition < damagedThreshold {
		b.Status = Damaged
		if b.CurrentProject != nil {
			slog.Info("project cancelled by damage", "building", b.Name, "project", b.CurrentProject.Name)
			b.CurrentProject = nil
		}
	}
}

// StartProject pays the project's initial cost and attaches it. Only a
// Complete building with no active project qualifies. The building's
// current ordinary workers are snapshotted into the project.
func (b *Building) StartProject(p *project.Project, ledger *resource.Ledger) bool {
	if b.Status != Complete || b.CurrentProject != nil || p == nil {
		return false
	}
	if !ledger.Spend(p.InitialCost) {
		return false
	}
	p.AssignedWorkers = make([]uuid.UUID, len(b.AssignedWorkers))
	copy(p.AssignedWorkers, b.AssignedWorkers)
	b.CurrentProject = p
	return true
}

// CancelProject clears the active project. Cost already paid is sunk; there
// is no refund.
func (b *Building) CancelProject() {
	b.CurrentProject = nil
}
