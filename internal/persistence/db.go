// Package persistence provides SQLite-based snapshot storage for a
// stronghold. Saves are full structural dumps; loads build a fresh
// aggregate and never touch the caller's live one.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ironhollow/stronghold/internal/building"
	"github.com/ironhollow/stronghold/internal/engine"
	"github.com/ironhollow/stronghold/internal/mission"
	"github.com/ironhollow/stronghold/internal/npc"
	"github.com/ironhollow/stronghold/internal/resource"
)

// DB wraps a SQLite connection for game state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS buildings (
		id TEXT PRIMARY KEY,
		type INTEGER NOT NULL,
		name TEXT NOT NULL,
		level INTEGER NOT NULL,
		status INTEGER NOT NULL,
		condition INTEGER NOT NULL,
		construction_progress INTEGER NOT NULL,
		construction_time_total INTEGER NOT NULL,
		construction_time_remaining INTEGER NOT NULL,
		repair_time_remaining INTEGER NOT NULL,
		upgrade_time_remaining INTEGER NOT NULL,
		worker_slots INTEGER NOT NULL,
		workers_json TEXT NOT NULL,
		crew_json TEXT NOT NULL,
		cost_json TEXT NOT NULL,
		project_json TEXT
	);

	CREATE TABLE IF NOT EXISTS npcs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		gender TEXT NOT NULL,
		type INTEGER NOT NULL,
		level INTEGER NOT NULL,
		alive INTEGER NOT NULL,
		skills_json TEXT NOT NULL,
		health_json TEXT NOT NULL,
		assignment_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS resources (
		type INTEGER PRIMARY KEY,
		amount INTEGER NOT NULL,
		weekly_production INTEGER NOT NULL,
		weekly_consumption INTEGER NOT NULL,
		sources_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS missions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		status INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		remaining INTEGER NOT NULL,
		completed INTEGER NOT NULL,
		requirements_json TEXT NOT NULL,
		rewards_json TEXT NOT NULL,
		party_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		week INTEGER NOT NULL,
		year INTEGER NOT NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		importance INTEGER NOT NULL,
		refs_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_journal_week ON journal(year, week);
	CREATE INDEX IF NOT EXISTS idx_npcs_alive ON npcs(alive);
	`
	_, err := db.conn.Exec(schema)
	return err
}

func saveBuildings(tx *sqlx.Tx, buildings []*building.Building) error {
	if _, err := tx.Exec("DELETE FROM buildings"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO buildings
		(id, type, name, level, status, condition, construction_progress,
		 construction_time_total, construction_time_remaining, repair_time_remaining,
		 upgrade_time_remaining, worker_slots, workers_json, crew_json, cost_json, project_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range buildings {
		workersJSON, _ := json.Marshal(b.AssignedWorkers)
		crewJSON, _ := json.Marshal(b.ConstructionCrew)
		costJSON, _ := json.Marshal(b.ConstructionCost)

		var projectJSON []byte
		if b.CurrentProject != nil {
			projectJSON, _ = json.Marshal(b.CurrentProject)
		}

		_, err := stmt.Exec(
			b.ID.String(), b.Type, b.Name, b.Level, b.Status, b.Condition,
			b.ConstructionProgress, b.ConstructionTimeTotal, b.ConstructionTimeRemaining,
			b.RepairTimeRemaining, b.UpgradeTimeRemaining, b.WorkerSlots,
			string(workersJSON), string(crewJSON), string(costJSON), nullable(projectJSON),
		)
		if err != nil {
			return fmt.Errorf("insert building %s: %w", b.Name, err)
		}
	}
	return nil
}

func saveNPCs(tx *sqlx.Tx, npcs []*npc.NPC) error {
	if _, err := tx.Exec("DELETE FROM npcs"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO npcs
		(id, name, gender, type, level, alive, skills_json, health_json, assignment_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range npcs {
		skillsJSON, _ := json.Marshal(n.Skills)
		healthJSON, _ := json.Marshal(n.Health)
		assignJSON, _ := json.Marshal(n.Assignment)

		alive := 0
		if n.Alive {
			alive = 1
		}

		_, err := stmt.Exec(
			n.ID.String(), n.Name, n.Gender, n.Type, n.Level, alive,
			string(skillsJSON), string(healthJSON), string(assignJSON),
		)
		if err != nil {
			return fmt.Errorf("insert npc %s: %w", n.Name, err)
		}
	}
	return nil
}

func saveResources(tx *sqlx.Tx, records []*resource.Resource) error {
	if _, err := tx.Exec("DELETE FROM resources"); err != nil {
		return err
	}

	for _, r := range records {
		sourcesJSON, _ := json.Marshal(r.Sources)
		_, err := tx.Exec(`INSERT INTO resources
			(type, amount, weekly_production, weekly_consumption, sources_json)
			VALUES (?, ?, ?, ?, ?)`,
			r.Type, r.Amount, r.WeeklyProduction, r.WeeklyConsumption, string(sourcesJSON),
		)
		if err != nil {
			return fmt.Errorf("insert resource %s: %w", r.Type, err)
		}
	}
	return nil
}

func saveMissions(tx *sqlx.Tx, active, completed []*mission.Mission) error {
	if _, err := tx.Exec("DELETE FROM missions"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO missions
		(id, name, description, status, duration, remaining, completed,
		 requirements_json, rewards_json, party_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	insert := func(m *mission.Mission, done int) error {
		reqsJSON, _ := json.Marshal(m.Requirements)
		rewardsJSON, _ := json.Marshal(m.Rewards)
		partyJSON, _ := json.Marshal(m.AssignedNPCs)

		_, err := stmt.Exec(
			m.ID.String(), m.Name, m.Description, m.Status, m.Duration, m.Remaining,
			done, string(reqsJSON), string(rewardsJSON), string(partyJSON),
		)
		return err
	}

	for _, m := range active {
		if err := insert(m, 0); err != nil {
			return fmt.Errorf("insert mission %s: %w", m.Name, err)
		}
	}
	for _, m := range completed {
		if err := insert(m, 1); err != nil {
			return fmt.Errorf("insert mission %s: %w", m.Name, err)
		}
	}
	return nil
}

func saveJournal(tx *sqlx.Tx, entries []engine.JournalEntry) error {
	if _, err := tx.Exec("DELETE FROM journal"); err != nil {
		return err
	}

	for _, e := range entries {
		refsJSON, _ := json.Marshal(e.Refs)
		_, err := tx.Exec(`INSERT INTO journal
			(week, year, type, title, description, importance, refs_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.Week, e.Year, e.Type, e.Title, e.Description, e.Importance, string(refsJSON),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func saveMeta(tx *sqlx.Tx, s *engine.Stronghold) error {
	meta := map[string]string{
		"name":       s.Name,
		"location":   s.Location,
		"level":      fmt.Sprintf("%d", s.Level),
		"week":       fmt.Sprintf("%d", s.Week),
		"year":       fmt.Sprintf("%d", s.Year),
		"reputation": fmt.Sprintf("%d", s.Reputation),
	}
	for key, value := range meta {
		_, err := tx.Exec(
			"INSERT OR REPLACE INTO game_meta (key, value) VALUES (?, ?)",
			key, value,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveGame performs a full-replace snapshot of the stronghold in one
// transaction.
func (db *DB) SaveGame(s *engine.Stronghold) error {
	slog.Info("saving game", "name", s.Name,
		"buildings", len(s.Buildings), "npcs", len(s.Roster.All()))

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveBuildings(tx, s.Buildings); err != nil {
		return fmt.Errorf("save buildings: %w", err)
	}
	if err := saveNPCs(tx, s.Roster.All()); err != nil {
		return fmt.Errorf("save npcs: %w", err)
	}
	if err := saveResources(tx, s.Ledger.All()); err != nil {
		return fmt.Errorf("save resources: %w", err)
	}
	if err := saveMissions(tx, s.Missions, s.CompletedMissions); err != nil {
		return fmt.Errorf("save missions: %w", err)
	}
	if err := saveJournal(tx, s.Journal.Entries()); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	if err := saveMeta(tx, s); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("game saved")
	return nil
}

func nullable(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func parseUUID(raw, context string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: bad id %q: %w", context, raw, err)
	}
	return id, nil
}
