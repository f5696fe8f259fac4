package engine

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/ironhollow/stronghold/internal/building"
	"github.com/ironhollow/stronghold/internal/mission"
	"github.com/ironhollow/stronghold/internal/npc"
	"github.com/ironhollow/stronghold/internal/project"
)

// Command surface consumed by the presentation layer. Every operation
// either fully applies or changes nothing; business-rule refusals return
// false without touching state.

// AddBuilding charges the construction cost and registers the building in
// the Planning state. Refused without full payment.
func (s *Stronghold) AddBuilding(b *building.Building) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b == nil || s.buildingIndex[b.ID] != nil {
		return false
	}
	if !s.Ledger.Spend(b.ConstructionCost) {
		return false
	}
	s.Buildings = append(s.Buildings, b)
	s.buildingIndex[b.ID] = b
	slog.Info("building planned", "building", b.Name, "type", b.Type)
	s.notify()
	return true
}

// CancelBuildingConstruction removes a building that has not finished
// construction, refunding its full cost and releasing its workers.
func (s *Stronghold) CancelBuildingConstruction(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.buildingIndex[id]
	if b == nil || (b.Status != building.Planning && b.Status != building.UnderConstruction) {
		return false
	}
	s.Ledger.Credit(b.ConstructionCost)
	s.removeBuilding(b)
	slog.Info("construction cancelled", "building", b.Name)
	s.notify()
	return true
}

// RemoveBuilding deletes a building outright, with no refund. Its workers
// are released.
func (s *Stronghold) RemoveBuilding(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.buildingIndex[id]
	if b == nil {
		return false
	}
	s.removeBuilding(b)
	s.notify()
	return true
}

func (s *Stronghold) removeBuilding(b *building.Building) {
	s.Roster.ClearAssignmentsTo(b.ID)
	delete(s.buildingIndex, b.ID)
	out := s.Buildings[:0]
	for _, other := range s.Buildings {
		if other != b {
			out = append(out, other)
		}
	}
	s.Buildings = out
}

// AddNPC registers an inhabitant.
func (s *Stronghold) AddNPC(n *npc.NPC) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Roster.Add(n)
	s.notify()
}

var recruitNames = map[string][]string{
	"male":   {"Aldric", "Bram", "Cedric", "Doran", "Edwin", "Garrick", "Hodge", "Leofric", "Osric", "Wulfstan"},
	"female": {"Adela", "Brynn", "Elswyth", "Gisela", "Hilda", "Maren", "Rowena", "Sibyl", "Thea", "Ysolde"},
}

// RecruitNPC creates a new inhabitant with a random archetype and name and
// adds them to the roster.
func (s *Stronghold) RecruitNPC() *npc.NPC {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := npc.AllTypes[s.rand.Intn(len(npc.AllTypes))]
	gender := "female"
	if s.rand.Intn(2) == 0 {
		gender = "male"
	}
	pool := recruitNames[gender]
	n := npc.New(pool[s.rand.Intn(len(pool))], gender, t)
	s.Roster.Add(n)
	slog.Info("recruit arrived", "name", n.Name, "type", n.Type)
	s.notify()
	return n
}

// DismissNPC releases an inhabitant from service and strikes them from the
// roster. Refused while they are away on a mission; the party list would go
// stale.
func (s *Stronghold) DismissNPC(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.Roster.Get(id)
	if n == nil || !n.Alive || n.Assignment.Kind == npc.AssignedMission {
		return false
	}
	for _, b := range s.Buildings {
		s.detachWorker(b, n.ID)
	}
	s.Roster.Remove(n.ID)
	s.record(EntryPopulation, "Departure", n.Name+" has left the stronghold.", ImportanceNormal, n.ID)
	slog.Info("inhabitant dismissed", "name", n.Name)
	s.notify()
	return true
}

// AssignWorkersToBuilding replaces the building's ordinary worker set with
// the given ids. The replacement is atomic: capacity and id validation run
// first, then every existing assignment to the building is cleared and the
// new set applied. Over-capacity requests are rejected, never truncated.
func (s *Stronghold) AssignWorkersToBuilding(buildingID uuid.UUID, npcIDs []uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.buildingIndex[buildingID]
	if b == nil {
		return false
	}

	workers := make([]*npc.NPC, 0, len(npcIDs))
	seen := make(map[uuid.UUID]bool, len(npcIDs))
	for _, id := range npcIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		n := s.Roster.Get(id)
		if n == nil || !n.Alive {
			// Dangling references are skipped, not fatal.
			continue
		}
		workers = append(workers, n)
	}
	if len(workers) > b.WorkerSlots {
		return false
	}

	// Full replace: release the outgoing worker set first. Crew
	// assignments to this building are left alone.
	for _, id := range b.AssignedWorkers {
		if n := s.Roster.Get(id); n != nil && n.Assignment.TargetID == b.ID {
			n.ClearAssignment()
		}
	}
	b.AssignedWorkers = nil
	for _, n := range workers {
		// Detach from any worker or crew list, this building's included.
		if prev := s.buildingIndex[n.Assignment.TargetID]; prev != nil {
			s.detachWorker(prev, n.ID)
		}
		n.Assignment = npc.Assignment{Kind: npc.AssignedBuilding, TargetID: b.ID, TargetName: b.Name}
		b.AssignedWorkers = append(b.AssignedWorkers, n.ID)
	}
	s.notify()
	return true
}

func (s *Stronghold) detachWorker(b *building.Building, id uuid.UUID) {
	out := b.AssignedWorkers[:0]
	for _, w := range b.AssignedWorkers {
		if w != id {
			out = append(out, w)
		}
	}
	b.AssignedWorkers = out

	crew := b.ConstructionCrew[:0]
	for _, w := range b.ConstructionCrew {
		if w != id {
			crew = append(crew, w)
		}
	}
	b.ConstructionCrew = crew
}

// AssignConstructionCrewToBuilding replaces the building's dedicated
// construction crew. The crew is capped at three distinct inhabitants and
// is additive to ordinary worker slots; four or more ids are rejected
// outright. Members come off whatever worker or crew list they were on, so
// an inhabitant is never counted twice, and the outgoing crew is released.
func (s *Stronghold) AssignConstructionCrewToBuilding(buildingID uuid.UUID, crewIDs []uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.buildingIndex[buildingID]
	if b == nil {
		return false
	}

	seen := make(map[uuid.UUID]bool, len(crewIDs))
	crew := make([]*npc.NPC, 0, len(crewIDs))
	distinct := 0
	for _, id := range crewIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		distinct++
		n := s.Roster.Get(id)
		if n == nil || !n.Alive {
			continue
		}
		crew = append(crew, n)
	}
	if distinct > building.MaxConstructionCrew {
		return false
	}

	s.releaseCrew(b)
	for _, n := range crew {
		if prev := s.buildingIndex[n.Assignment.TargetID]; prev != nil {
			s.detachWorker(prev, n.ID)
		}
		n.Assignment = npc.Assignment{Kind: npc.AssignedBuilding, TargetID: b.ID, TargetName: b.Name}
		b.ConstructionCrew = append(b.ConstructionCrew, n.ID)
	}
	s.notify()
	return true
}

// releaseCrew empties the building's construction crew. A member still on
// the building's ordinary worker list keeps that assignment; everyone else
// is unassigned.
func (s *Stronghold) releaseCrew(b *building.Building) {
	for _, id := range b.ConstructionCrew {
		if slices.Contains(b.AssignedWorkers, id) {
			continue
		}
		if n := s.Roster.Get(id); n != nil && n.Assignment.TargetID == b.ID {
			n.ClearAssignment()
		}
	}
	b.ConstructionCrew = nil
}

// StartBuildingRepair pays for and begins a repair.
func (s *Stronghold) StartBuildingRepair(buildingID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.buildingIndex[buildingID]
	if b == nil || !b.StartRepair(s.Ledger) {
		return false
	}
	s.record(EntryRepair, "Repair started", b.Name+" is under repair.", ImportanceLow, b.ID)
	s.notify()
	return true
}

// StartBuildingUpgrade pays for and begins an upgrade to the next level.
func (s *Stronghold) StartBuildingUpgrade(buildingID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.buildingIndex[buildingID]
	if b == nil || !b.StartUpgrade(s.Ledger) {
		return false
	}
	s.record(EntryUpgrade, "Upgrade started", b.Name+" is being upgraded.", ImportanceLow, b.ID)
	s.notify()
	return true
}

// StartBuildingProject starts a catalog project template on a building.
// The template must be unlocked at the building's current level.
func (s *Stronghold) StartBuildingProject(buildingID uuid.UUID, templateName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.buildingIndex[buildingID]
	if b == nil || b.Spec() == nil {
		return false
	}
	for _, tpl := range b.Spec().ProjectsAt(b.Level) {
		if tpl.Name != templateName {
			continue
		}
		p := project.FromTemplate(tpl)
		if !b.StartProject(p, s.Ledger) {
			return false
		}
		s.record(EntryProject, "Project started", p.Name+" begun at "+b.Name+".", ImportanceLow, b.ID, p.ID)
		s.notify()
		return true
	}
	return false
}

// CancelBuildingProject clears a building's active project. The initial
// cost is sunk; nothing is refunded.
func (s *Stronghold) CancelBuildingProject(buildingID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.buildingIndex[buildingID]
	if b == nil || b.CurrentProject == nil {
		return false
	}
	b.CancelProject()
	s.notify()
	return true
}

// DamageBuilding applies damage to a building's condition.
func (s *Stronghold) DamageBuilding(buildingID uuid.UUID, amount int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.buildingIndex[buildingID]
	if b == nil {
		return false
	}
	wasComplete := b.Status == building.Complete
	b.Damage(amount)
	if wasComplete && b.Status == building.Damaged {
		s.record(EntryRepair, "Building damaged", b.Name+" has fallen into disrepair.", ImportanceNormal, b.ID)
	}
	s.notify()
	return true
}

// AddMission registers an available mission.
func (s *Stronghold) AddMission(m *mission.Mission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Missions = append(s.Missions, m)
	s.notify()
}

// missionBuildingViews projects the buildings into the mission
// requirement check's shape.
func (s *Stronghold) missionBuildingViews() []mission.BuildingView {
	views := make([]mission.BuildingView, 0, len(s.Buildings))
	for _, b := range s.Buildings {
		views = append(views, mission.BuildingView{Type: b.Type, Level: b.Level, Functional: b.IsFunctional()})
	}
	return views
}

// StartMission checks the mission's prerequisites, deducts its resource
// requirement, and reserves the named party. Refused when requirements do
// not hold or any party member is unavailable.
func (s *Stronghold) StartMission(missionID uuid.UUID, partyIDs []uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var m *mission.Mission
	for _, cand := range s.Missions {
		if cand.ID == missionID {
			m = cand
			break
		}
	}
	if m == nil || m.Status != mission.Available {
		return false
	}
	if !m.AreRequirementsMet(s.Ledger, s.Roster, s.missionBuildingViews()) {
		return false
	}

	party := make([]*npc.NPC, 0, len(partyIDs))
	for _, id := range partyIDs {
		n := s.Roster.Get(id)
		if n == nil || !n.Alive || len(n.Health) > 0 || !n.IsUnassigned() {
			return false
		}
		party = append(party, n)
	}
	if len(party) < m.Requirements.NPCCount {
		return false
	}

	if !m.Start(s.Ledger) {
		return false
	}
	for _, n := range party {
		n.Assignment = npc.Assignment{Kind: npc.AssignedMission, TargetID: m.ID, TargetName: m.Name}
		m.AssignedNPCs = append(m.AssignedNPCs, n.ID)
	}
	s.record(EntryMission, "Mission underway", m.Name+" has set out.", ImportanceNormal, m.ID)
	s.notify()
	return true
}
