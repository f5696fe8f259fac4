package engine

import (
	"fmt"
	"log/slog"

	"github.com/ironhollow/stronghold/internal/building"
	"github.com/ironhollow/stronghold/internal/mission"
	"github.com/ironhollow/stronghold/internal/npc"
	"github.com/ironhollow/stronghold/internal/resource"
)

// Weekly upkeep charged per living inhabitant.
const (
	foodPerInhabitant = 1
	wagePerInhabitant = 1
)

// AdvanceWeek runs one full turn. The step order is fixed: calendar,
// building lifecycles, production recompute, ledger recompute, health
// rolls, project countdowns, mission resolution, report. A building that
// finishes construction this turn already produces this week, and mission
// rewards land in the ledger before the report reads it.
func (s *Stronghold) AdvanceWeek() *WeeklyReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.Ledger.Snapshot()

	s.advanceCalendar()
	report := &WeeklyReport{
		Week:   s.Week,
		Year:   s.Year,
		Season: SeasonName(s.Season()),
	}

	s.advanceBuildingLifecycles(report)
	s.recomputeProduction()
	s.recomputeLedger()
	s.rollHealth(report)
	s.advanceProjects(report)
	s.advanceMissions(report)

	s.buildResourceDeltas(report, previous)
	s.forecastCompletions(report)

	s.lastReport = report
	s.record(EntryReport, "Week "+s.Date(), s.reportSummary(report), ImportanceLow)
	slog.Info("week advanced", "date", s.Date(), "gold", s.Ledger.Amount(resource.Gold))
	s.notify()
	return report
}

func (s *Stronghold) advanceBuildingLifecycles(report *WeeklyReport) {
	for _, b := range s.Buildings {
		switch b.Status {
		case building.Planning, building.UnderConstruction:
			if b.AdvanceConstruction() {
				s.releaseCrew(b)
				report.CompletedConstruction = append(report.CompletedConstruction, b.Name)
				s.record(EntryConstruction, "Construction complete", b.Name+" now stands finished.", ImportanceNormal, b.ID)
			}
		case building.Repairing:
			if b.AdvanceRepair() {
				report.CompletedRepairs = append(report.CompletedRepairs, b.Name)
				s.record(EntryRepair, "Repair complete", b.Name+" has been restored.", ImportanceNormal, b.ID)
			}
		case building.Upgrading:
			if b.AdvanceUpgrade() {
				report.CompletedUpgrades = append(report.CompletedUpgrades, b.Name)
				s.record(EntryUpgrade, "Upgrade complete",
					fmt.Sprintf("%s reached level %d.", b.Name, b.Level), ImportanceNormal, b.ID)
			}
		}
	}
}

func (s *Stronghold) recomputeProduction() {
	for _, b := range s.Buildings {
		if !b.IsFunctional() {
			continue
		}
		b.UpdateProduction(s.workerViews(b))
	}
}

// recomputeLedger rebuilds the weekly production/consumption tables from
// scratch and applies the net change. Upkeep is charged for every
// functional building whether or not it is staffed.
func (s *Stronghold) recomputeLedger() {
	s.Ledger.ResetWeekly()

	for _, b := range s.Buildings {
		if !b.IsFunctional() {
			continue
		}
		for t, amount := range b.ActualProduction {
			s.Ledger.AddProduction(t, resource.OriginBuilding, b.Name, amount)
		}
		for t, amount := range b.ActualUpkeep {
			s.Ledger.AddConsumption(t, resource.OriginBuilding, b.Name, amount)
		}
	}

	// Active projects charge and yield every week they run, their final
	// week included.
	for _, b := range s.Buildings {
		p := b.CurrentProject
		if p == nil {
			continue
		}
		for t, amount := range p.WeeklyProduction {
			s.Ledger.AddProduction(t, resource.OriginProject, p.Name, amount)
		}
		for t, amount := range p.WeeklyUpkeep {
			s.Ledger.AddConsumption(t, resource.OriginProject, p.Name, amount)
		}
	}

	if living := s.Roster.LivingCount(); living > 0 {
		s.Ledger.AddConsumption(resource.Food, resource.OriginPopulation, "population", living*foodPerInhabitant)
		s.Ledger.AddConsumption(resource.Gold, resource.OriginPopulation, "wages", living*wagePerInhabitant)
	}

	s.Ledger.ApplyWeeklyChange()
}

func (s *Stronghold) rollHealth(report *WeeklyReport) {
	for _, n := range s.Roster.Living() {
		out := n.RollWeeklyHealth(s.rand)
		if out.Died {
			report.Deaths = append(report.Deaths, n.Name)
			s.handleDeath(n)
			continue
		}
		for range out.Recovered {
			report.Recoveries = append(report.Recoveries, n.Name)
			s.record(EntryHealth, "Recovery", n.Name+" is back on their feet.", ImportanceLow, n.ID)
		}
	}
}

// handleDeath detaches a dead inhabitant from everything referencing them.
// Project snapshots are left alone: project progress does not depend on
// the workers surviving.
func (s *Stronghold) handleDeath(n *npc.NPC) {
	s.record(EntryHealth, "Death", n.Name+" has succumbed to their injuries.", ImportanceHigh, n.ID)
	slog.Info("inhabitant died", "name", n.Name)
	for _, b := range s.Buildings {
		s.detachWorker(b, n.ID)
	}
	n.ClearAssignment()
}

func (s *Stronghold) advanceProjects(report *WeeklyReport) {
	for _, b := range s.Buildings {
		p := b.CurrentProject
		if p == nil {
			continue
		}
		if !p.Advance() {
			continue
		}
		s.Ledger.Credit(p.CompletionReward)
		report.CompletedProjects = append(report.CompletedProjects, p.Name)
		s.record(EntryProject, "Project complete", p.Name+" finished at "+b.Name+".", ImportanceNormal, b.ID, p.ID)
		b.CurrentProject = nil
	}
}

func (s *Stronghold) advanceMissions(report *WeeklyReport) {
	remaining := s.Missions[:0]
	for _, m := range s.Missions {
		if m.Status != mission.InProgress {
			remaining = append(remaining, m)
			continue
		}
		if !m.AdvanceProgress(s.rand, m.PartySkillLevels(s.Roster)) {
			remaining = append(remaining, m)
			continue
		}

		report.Missions = append(report.Missions, MissionResult{MissionID: m.ID, Name: m.Name, Succeeded: m.Succeeded()})
		if m.Succeeded() {
			s.Ledger.Credit(m.Rewards.Resources)
			s.Reputation += m.Rewards.Reputation
			s.record(EntryMission, "Mission succeeded", m.Name+" returned triumphant.", ImportanceHigh, m.ID)
		} else {
			s.record(EntryMission, "Mission failed", m.Name+" came to nothing.", ImportanceNormal, m.ID)
		}

		for _, id := range m.AssignedNPCs {
			if n := s.Roster.Get(id); n != nil {
				n.ClearAssignment()
			}
		}
		s.CompletedMissions = append(s.CompletedMissions, m)
	}
	s.Missions = remaining
}

func (s *Stronghold) buildResourceDeltas(report *WeeklyReport, previous map[resource.Type]int) {
	for _, t := range resource.AllTypes {
		r := s.Ledger.Get(t)
		report.Resources = append(report.Resources, ResourceDelta{
			Type:     t,
			Previous: previous[t],
			Current:  r.Amount,
			Net:      r.NetWeeklyChange(),
		})
	}
}

func (s *Stronghold) forecastCompletions(report *WeeklyReport) {
	for _, b := range s.Buildings {
		switch b.Status {
		case building.UnderConstruction:
			report.Upcoming = append(report.Upcoming, UpcomingCompletion{
				BuildingID: b.ID, BuildingName: b.Name,
				Operation: "construction", WeeksLeft: b.ConstructionTimeRemaining,
			})
		case building.Repairing:
			report.Upcoming = append(report.Upcoming, UpcomingCompletion{
				BuildingID: b.ID, BuildingName: b.Name,
				Operation: "repair", WeeksLeft: b.RepairTimeRemaining,
			})
		case building.Upgrading:
			report.Upcoming = append(report.Upcoming, UpcomingCompletion{
				BuildingID: b.ID, BuildingName: b.Name,
				Operation: "upgrade", WeeksLeft: b.UpgradeTimeRemaining,
			})
		}
		if p := b.CurrentProject; p != nil {
			report.Upcoming = append(report.Upcoming, UpcomingCompletion{
				BuildingID: b.ID, BuildingName: b.Name,
				Operation: "project", Detail: p.Name, WeeksLeft: p.RemainingWeeks,
			})
		}
	}
}

func (s *Stronghold) reportSummary(report *WeeklyReport) string {
	gold := report.Delta(resource.Gold)
	food := report.Delta(resource.Food)
	return fmt.Sprintf("Gold %d (%+d), Food %d (%+d), %d inhabitants.",
		gold.Current, gold.Net, food.Current, food.Net, s.Roster.LivingCount())
}
