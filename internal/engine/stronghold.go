// Package engine ties the stronghold subsystems together: the aggregate
// root, the command surface consumed by the presentation layer, and the
// weekly turn orchestrator.
package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ironhollow/stronghold/internal/building"
	"github.com/ironhollow/stronghold/internal/catalog"
	"github.com/ironhollow/stronghold/internal/mission"
	"github.com/ironhollow/stronghold/internal/npc"
	"github.com/ironhollow/stronghold/internal/resource"
	"github.com/ironhollow/stronghold/internal/rng"
)

// Stronghold is the aggregate root. One instance per game; every command
// and the weekly orchestrator mutate it in place. A mutex serializes
// callers so the engine can be exposed as a service without partial-turn
// visibility.
type Stronghold struct {
	mu sync.Mutex

	Name     string `json:"name"`
	Location string `json:"location"`
	Level    int    `json:"level"`

	Week       int `json:"week"` // 1..52 within the year
	Year       int `json:"year"`
	Reputation int `json:"reputation"`

	Ledger *resource.Ledger `json:"-"`
	Roster *npc.Roster      `json:"-"`

	Buildings     []*building.Building
	buildingIndex map[uuid.UUID]*building.Building

	Missions          []*mission.Mission
	CompletedMissions []*mission.Mission

	Journal *Journal

	catalog    *catalog.Catalog
	rand       rng.Source
	observer   func()
	lastReport *WeeklyReport
}

// Config configures a new stronghold.
type Config struct {
	Name     string
	Location string
	Catalog  *catalog.Catalog
	Rand     rng.Source
	// Resources overrides the starting stocks; nil uses the defaults.
	Resources map[resource.Type]int
}

// defaultResources are the starting stocks of a fresh game.
var defaultResources = map[resource.Type]int{
	resource.Gold:  500,
	resource.Food:  100,
	resource.Wood:  100,
	resource.Stone: 50,
}

// New creates a fresh stronghold at week 1 of year 1.
func New(cfg Config) *Stronghold {
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.NewDefault()
	}
	if cfg.Rand == nil {
		cfg.Rand = rng.NewSeeded(1)
	}
	res := cfg.Resources
	if res == nil {
		res = defaultResources
	}
	return &Stronghold{
		Name:          cfg.Name,
		Location:      cfg.Location,
		Level:         1,
		Week:          1,
		Year:          1,
		Ledger:        resource.NewLedger(res),
		Roster:        npc.NewRoster(),
		buildingIndex: make(map[uuid.UUID]*building.Building),
		Journal:       NewJournal(),
		catalog:       cfg.Catalog,
		rand:          cfg.Rand,
	}
}

// Catalog returns the bound building catalog.
func (s *Stronghold) Catalog() *catalog.Catalog {
	return s.catalog
}

// SetObserver registers a callback fired after every successful
// state-changing command and after each completed week. It carries no
// payload; consumers re-read the aggregate.
func (s *Stronghold) SetObserver(fn func()) {
	s.observer = fn
}

func (s *Stronghold) notify() {
	if s.observer != nil {
		s.observer()
	}
}

// Treasury is a derived read of the Gold stock. There is no separately
// mutated mirror.
func (s *Stronghold) Treasury() int {
	return s.Ledger.Amount(resource.Gold)
}

// Building returns the building with the given id, nil when unknown.
func (s *Stronghold) Building(id uuid.UUID) *building.Building {
	return s.buildingIndex[id]
}

// NewBuilding constructs a building of the given type against the bound
// catalog without adding it to the stronghold.
func (s *Stronghold) NewBuilding(t building.Type, name string) *building.Building {
	return building.New(t, name, s.catalog)
}

// rebuildIndexes restores the lookup tables after a load from storage.
func (s *Stronghold) rebuildIndexes() {
	s.buildingIndex = make(map[uuid.UUID]*building.Building, len(s.Buildings))
	for _, b := range s.Buildings {
		b.Attach(s.catalog)
		s.buildingIndex[b.ID] = b
	}
}

// Restore rebinds runtime-only dependencies on an aggregate reconstructed
// from a snapshot.
func (s *Stronghold) Restore(cat *catalog.Catalog, r rng.Source) {
	if cat == nil {
		cat = catalog.NewDefault()
	}
	if r == nil {
		r = rng.NewSeeded(1)
	}
	s.catalog = cat
	s.rand = r
	if s.Journal == nil {
		s.Journal = NewJournal()
	}
	s.rebuildIndexes()
}

// View runs fn with the aggregate locked. Read-only consumers (the HTTP
// snapshot server) use it to avoid observing a half-applied turn.
func (s *Stronghold) View(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// LastReport returns the report of the most recent AdvanceWeek, nil before
// the first turn. Callers must hold the lock (see View).
func (s *Stronghold) LastReport() *WeeklyReport {
	return s.lastReport
}

// record appends a journal entry stamped with the current date.
func (s *Stronghold) record(entryType, title, description string, importance int, refs ...uuid.UUID) {
	s.Journal.Append(JournalEntry{
		Week:        s.Week,
		Year:        s.Year,
		Type:        entryType,
		Title:       title,
		Description: description,
		Refs:        refs,
		Importance:  importance,
	})
}

// workerViews resolves a building's assigned workers into the production
// inputs. Dangling ids and dead or unavailable inhabitants contribute
// nothing.
func (s *Stronghold) workerViews(b *building.Building) []building.WorkerView {
	spec := b.Spec()
	var views []building.WorkerView
	for _, id := range b.AssignedWorkers {
		n := s.Roster.Get(id)
		if n == nil || !n.Alive || len(n.Health) > 0 {
			continue
		}
		level := 0
		if spec != nil {
			level = n.SkillLevel(spec.PrimarySkill)
			if spec.SecondarySkill != "" {
				level += n.SkillLevel(spec.SecondarySkill)
			}
		}
		views = append(views, building.WorkerView{ID: id, SkillLevel: level})
	}
	return views
}
