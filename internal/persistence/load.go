package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/ironhollow/stronghold/internal/building"
	"github.com/ironhollow/stronghold/internal/catalog"
	"github.com/ironhollow/stronghold/internal/engine"
	"github.com/ironhollow/stronghold/internal/mission"
	"github.com/ironhollow/stronghold/internal/npc"
	"github.com/ironhollow/stronghold/internal/project"
	"github.com/ironhollow/stronghold/internal/resource"
	"github.com/ironhollow/stronghold/internal/rng"
)

type buildingRow struct {
	ID                        string  `db:"id"`
	Type                      int     `db:"type"`
	Name                      string  `db:"name"`
	Level                     int     `db:"level"`
	Status                    int     `db:"status"`
	Condition                 int     `db:"condition"`
	ConstructionProgress      int     `db:"construction_progress"`
	ConstructionTimeTotal     int     `db:"construction_time_total"`
	ConstructionTimeRemaining int     `db:"construction_time_remaining"`
	RepairTimeRemaining       int     `db:"repair_time_remaining"`
	UpgradeTimeRemaining      int     `db:"upgrade_time_remaining"`
	WorkerSlots               int     `db:"worker_slots"`
	WorkersJSON               string  `db:"workers_json"`
	CrewJSON                  string  `db:"crew_json"`
	CostJSON                  string  `db:"cost_json"`
	ProjectJSON               *string `db:"project_json"`
}

type npcRow struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	Gender         string `db:"gender"`
	Type           int    `db:"type"`
	Level          int    `db:"level"`
	Alive          int    `db:"alive"`
	SkillsJSON     string `db:"skills_json"`
	HealthJSON     string `db:"health_json"`
	AssignmentJSON string `db:"assignment_json"`
}

type resourceRow struct {
	Type              int    `db:"type"`
	Amount            int    `db:"amount"`
	WeeklyProduction  int    `db:"weekly_production"`
	WeeklyConsumption int    `db:"weekly_consumption"`
	SourcesJSON       string `db:"sources_json"`
}

type missionRow struct {
	ID               string `db:"id"`
	Name             string `db:"name"`
	Description      string `db:"description"`
	Status           int    `db:"status"`
	Duration         int    `db:"duration"`
	Remaining        int    `db:"remaining"`
	Completed        int    `db:"completed"`
	RequirementsJSON string `db:"requirements_json"`
	RewardsJSON      string `db:"rewards_json"`
	PartyJSON        string `db:"party_json"`
}

type journalRow struct {
	Week        int    `db:"week"`
	Year        int    `db:"year"`
	Type        string `db:"type"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Importance  int    `db:"importance"`
	RefsJSON    string `db:"refs_json"`
}

func (db *DB) loadBuildings() ([]*building.Building, error) {
	var rows []buildingRow
	if err := db.conn.Select(&rows, "SELECT * FROM buildings"); err != nil {
		return nil, err
	}

	out := make([]*building.Building, 0, len(rows))
	for _, row := range rows {
		id, err := parseUUID(row.ID, "building")
		if err != nil {
			return nil, err
		}

		b := &building.Building{
			ID:                        id,
			Type:                      building.Type(row.Type),
			Name:                      row.Name,
			Level:                     row.Level,
			Status:                    building.Status(row.Status),
			Condition:                 row.Condition,
			ConstructionProgress:      row.ConstructionProgress,
			ConstructionTimeTotal:     row.ConstructionTimeTotal,
			ConstructionTimeRemaining: row.ConstructionTimeRemaining,
			RepairTimeRemaining:       row.RepairTimeRemaining,
			UpgradeTimeRemaining:      row.UpgradeTimeRemaining,
			WorkerSlots:               row.WorkerSlots,
		}
		if err := json.Unmarshal([]byte(row.WorkersJSON), &b.AssignedWorkers); err != nil {
			return nil, fmt.Errorf("building %s workers: %w", b.Name, err)
		}
		if err := json.Unmarshal([]byte(row.CrewJSON), &b.ConstructionCrew); err != nil {
			return nil, fmt.Errorf("building %s crew: %w", b.Name, err)
		}
		if err := json.Unmarshal([]byte(row.CostJSON), &b.ConstructionCost); err != nil {
			return nil, fmt.Errorf("building %s cost: %w", b.Name, err)
		}
		if row.ProjectJSON != nil && *row.ProjectJSON != "" {
			var p project.Project
			if err := json.Unmarshal([]byte(*row.ProjectJSON), &p); err != nil {
				return nil, fmt.Errorf("building %s project: %w", b.Name, err)
			}
			b.CurrentProject = &p
		}
		out = append(out, b)
	}
	return out, nil
}

func (db *DB) loadNPCs() ([]*npc.NPC, error) {
	var rows []npcRow
	if err := db.conn.Select(&rows, "SELECT * FROM npcs"); err != nil {
		return nil, err
	}

	out := make([]*npc.NPC, 0, len(rows))
	for _, row := range rows {
		id, err := parseUUID(row.ID, "npc")
		if err != nil {
			return nil, err
		}

		n := &npc.NPC{
			ID:     id,
			Name:   row.Name,
			Gender: row.Gender,
			Type:   npc.Type(row.Type),
			Level:  row.Level,
			Alive:  row.Alive != 0,
		}
		if err := json.Unmarshal([]byte(row.SkillsJSON), &n.Skills); err != nil {
			return nil, fmt.Errorf("npc %s skills: %w", n.Name, err)
		}
		if err := json.Unmarshal([]byte(row.HealthJSON), &n.Health); err != nil {
			return nil, fmt.Errorf("npc %s health: %w", n.Name, err)
		}
		if err := json.Unmarshal([]byte(row.AssignmentJSON), &n.Assignment); err != nil {
			return nil, fmt.Errorf("npc %s assignment: %w", n.Name, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func (db *DB) loadResources() ([]*resource.Resource, error) {
	var rows []resourceRow
	if err := db.conn.Select(&rows, "SELECT * FROM resources"); err != nil {
		return nil, err
	}

	out := make([]*resource.Resource, 0, len(rows))
	for _, row := range rows {
		r := &resource.Resource{
			Type:              resource.Type(row.Type),
			Amount:            row.Amount,
			WeeklyProduction:  row.WeeklyProduction,
			WeeklyConsumption: row.WeeklyConsumption,
		}
		if err := json.Unmarshal([]byte(row.SourcesJSON), &r.Sources); err != nil {
			return nil, fmt.Errorf("resource %s sources: %w", r.Type, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (db *DB) loadMissions() (active, completed []*mission.Mission, err error) {
	var rows []missionRow
	if err := db.conn.Select(&rows, "SELECT * FROM missions"); err != nil {
		return nil, nil, err
	}

	for _, row := range rows {
		id, err := parseUUID(row.ID, "mission")
		if err != nil {
			return nil, nil, err
		}

		m := &mission.Mission{
			ID:          id,
			Name:        row.Name,
			Description: row.Description,
			Status:      mission.Status(row.Status),
			Duration:    row.Duration,
			Remaining:   row.Remaining,
		}
		if err := json.Unmarshal([]byte(row.RequirementsJSON), &m.Requirements); err != nil {
			return nil, nil, fmt.Errorf("mission %s requirements: %w", m.Name, err)
		}
		if err := json.Unmarshal([]byte(row.RewardsJSON), &m.Rewards); err != nil {
			return nil, nil, fmt.Errorf("mission %s rewards: %w", m.Name, err)
		}
		if err := json.Unmarshal([]byte(row.PartyJSON), &m.AssignedNPCs); err != nil {
			return nil, nil, fmt.Errorf("mission %s party: %w", m.Name, err)
		}

		if row.Completed != 0 {
			completed = append(completed, m)
		} else {
			active = append(active, m)
		}
	}
	return active, completed, nil
}

func (db *DB) loadJournal() (*engine.Journal, error) {
	var rows []journalRow
	if err := db.conn.Select(&rows, "SELECT week, year, type, title, description, importance, refs_json FROM journal ORDER BY id"); err != nil {
		return nil, err
	}

	j := engine.NewJournal()
	for _, row := range rows {
		var refs []uuid.UUID
		if err := json.Unmarshal([]byte(row.RefsJSON), &refs); err != nil {
			return nil, fmt.Errorf("journal refs: %w", err)
		}
		j.Append(engine.JournalEntry{
			Week:        row.Week,
			Year:        row.Year,
			Type:        row.Type,
			Title:       row.Title,
			Description: row.Description,
			Refs:        refs,
			Importance:  row.Importance,
		})
	}
	return j, nil
}

func (db *DB) metaInt(meta map[string]string, key string, fallback int) int {
	raw, ok := meta[key]
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("bad meta value", "key", key, "value", raw)
		return fallback
	}
	return v
}

func (db *DB) loadMeta() (map[string]string, error) {
	rows, err := db.conn.Queryx("SELECT key, value FROM game_meta")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

// LoadGame reconstructs a stronghold from the stored snapshot. The
// returned aggregate is fully independent; on any error the caller's
// current game is untouched.
func (db *DB) LoadGame(cat *catalog.Catalog, r rng.Source) (*engine.Stronghold, error) {
	meta, err := db.loadMeta()
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	buildings, err := db.loadBuildings()
	if err != nil {
		return nil, fmt.Errorf("load buildings: %w", err)
	}
	npcs, err := db.loadNPCs()
	if err != nil {
		return nil, fmt.Errorf("load npcs: %w", err)
	}
	records, err := db.loadResources()
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	active, completed, err := db.loadMissions()
	if err != nil {
		return nil, fmt.Errorf("load missions: %w", err)
	}
	journal, err := db.loadJournal()
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}

	s := &engine.Stronghold{
		Name:              meta["name"],
		Location:          meta["location"],
		Level:             db.metaInt(meta, "level", 1),
		Week:              db.metaInt(meta, "week", 1),
		Year:              db.metaInt(meta, "year", 1),
		Reputation:        db.metaInt(meta, "reputation", 0),
		Ledger:            resource.RestoreLedger(records),
		Roster:            npc.RestoreRoster(npcs),
		Buildings:         buildings,
		Missions:          active,
		CompletedMissions: completed,
		Journal:           journal,
	}
	s.Restore(cat, r)

	slog.Info("game loaded", "name", s.Name, "week", s.Week, "year", s.Year,
		"buildings", len(buildings), "npcs", len(npcs))
	return s, nil
}
