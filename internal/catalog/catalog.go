// Package catalog provides the read-only building configuration table:
// per-type costs, worker slots, level scaling, skill relevance, and
// level-gated project templates. Loaded once at startup; the simulation
// only reads it.
package catalog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/ironhollow/stronghold/internal/resource"
)

// BuildingType identifies one of the fixed building kinds.
type BuildingType uint8

const (
	Keep BuildingType = iota
	Farm
	Sawmill
	Quarry
	Mine
	Barracks
	Workshop
	Smithy
	Market
	Tavern
	Chapel
	Library
	Infirmary
	Stable
	Watchtower
)

// AllBuildingTypes lists every building kind.
var AllBuildingTypes = []BuildingType{
	Keep, Farm, Sawmill, Quarry, Mine, Barracks, Workshop, Smithy,
	Market, Tavern, Chapel, Library, Infirmary, Stable, Watchtower,
}

var buildingTypeNames = map[BuildingType]string{
	Keep:       "Keep",
	Farm:       "Farm",
	Sawmill:    "Sawmill",
	Quarry:     "Quarry",
	Mine:       "Mine",
	Barracks:   "Barracks",
	Workshop:   "Workshop",
	Smithy:     "Smithy",
	Market:     "Market",
	Tavern:     "Tavern",
	Chapel:     "Chapel",
	Library:    "Library",
	Infirmary:  "Infirmary",
	Stable:     "Stable",
	Watchtower: "Watchtower",
}

// BuildingTypeName returns a human-readable building type name.
func BuildingTypeName(t BuildingType) string {
	if name, ok := buildingTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

func (t BuildingType) String() string { return BuildingTypeName(t) }

// BuildingTypeByName resolves a type name. Matching ignores case; viper
// lowercases config keys before they reach Load.
func BuildingTypeByName(name string) (BuildingType, bool) {
	for t, n := range buildingTypeNames {
		if strings.EqualFold(n, name) {
			return t, true
		}
	}
	return 0, false
}

// ProjectTemplate is a level-gated project a building can offer. Weekly
// tables run every week the project is active, on top of the one-off cost
// and completion reward.
type ProjectTemplate struct {
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	MinLevel         int           `json:"min_level"`
	Cost             resource.Cost `json:"cost"`
	DurationWeeks    int           `json:"duration_weeks"`
	WeeklyProduction resource.Cost `json:"weekly_production"`
	WeeklyUpkeep     resource.Cost `json:"weekly_upkeep"`
	CompletionReward resource.Cost `json:"completion_reward"`
}

// Spec is the full configuration for one building type. Level-indexed
// slices use index level-1; lookups past the end reuse the last entry.
type Spec struct {
	Type               BuildingType
	WorkerSlotsByLevel []int
	ConstructionTime   int // weeks
	ConstructionCost   resource.Cost
	MaxLevel           int
	PrimarySkill       string
	SecondarySkill     string
	SkillBonusPerLevel float64 // production multiplier per relevant skill level
	Production         map[resource.Type][]int // per-worker output by level
	Upkeep             map[resource.Type][]int // flat cost by level
	Projects           []ProjectTemplate
}

func levelEntry(values []int, level int) int {
	if len(values) == 0 {
		return 0
	}
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return values[idx]
}

// WorkerSlotsAt returns the worker-slot capacity at a level.
func (s *Spec) WorkerSlotsAt(level int) int {
	return levelEntry(s.WorkerSlotsByLevel, level)
}

// ProductionAt returns the per-worker output table at a level.
func (s *Spec) ProductionAt(level int) map[resource.Type]int {
	out := make(map[resource.Type]int, len(s.Production))
	for t, values := range s.Production {
		if v := levelEntry(values, level); v > 0 {
			out[t] = v
		}
	}
	return out
}

// UpkeepAt returns the flat upkeep table at a level.
func (s *Spec) UpkeepAt(level int) map[resource.Type]int {
	out := make(map[resource.Type]int, len(s.Upkeep))
	for t, values := range s.Upkeep {
		if v := levelEntry(values, level); v > 0 {
			out[t] = v
		}
	}
	return out
}

// ProjectsAt returns the project templates available at a level.
func (s *Spec) ProjectsAt(level int) []ProjectTemplate {
	var out []ProjectTemplate
	for _, p := range s.Projects {
		if level >= p.MinLevel {
			out = append(out, p)
		}
	}
	return out
}

// Catalog is the keyed table of building specs.
type Catalog struct {
	entries map[BuildingType]*Spec
}

// NewDefault returns a catalog containing only the builtin defaults.
func NewDefault() *Catalog {
	return &Catalog{entries: make(map[BuildingType]*Spec)}
}

// Spec returns the configuration for a building type, falling back to the
// builtin defaults when no entry was loaded.
func (c *Catalog) Spec(t BuildingType) *Spec {
	if s, ok := c.entries[t]; ok {
		return s
	}
	return defaultSpec(t)
}

// rawSpec is the file-facing shape of one catalog entry. Resource names are
// strings in the file and compiled to typed costs on load.
type rawSpec struct {
	WorkerSlotsByLevel []int            `mapstructure:"worker_slots_by_level" validate:"required,min=1,dive,gte=0"`
	ConstructionTime   int              `mapstructure:"construction_time" validate:"required,gt=0"`
	ConstructionCost   map[string]int   `mapstructure:"construction_cost" validate:"required,dive,gte=0"`
	MaxLevel           int              `mapstructure:"max_level" validate:"required,gte=1"`
	PrimarySkill       string           `mapstructure:"primary_skill"`
	SecondarySkill     string           `mapstructure:"secondary_skill"`
	SkillBonusPerLevel float64          `mapstructure:"skill_bonus_per_level" validate:"gte=0,lte=1"`
	Production         map[string][]int `mapstructure:"production"`
	Upkeep             map[string][]int `mapstructure:"upkeep"`
	Projects           []rawProject     `mapstructure:"projects"`
}

type rawProject struct {
	Name             string         `mapstructure:"name" validate:"required"`
	Description      string         `mapstructure:"description"`
	MinLevel         int            `mapstructure:"min_level" validate:"gte=1"`
	Cost             map[string]int `mapstructure:"cost"`
	DurationWeeks    int            `mapstructure:"duration_weeks" validate:"required,gt=0"`
	WeeklyProduction map[string]int `mapstructure:"weekly_production"`
	WeeklyUpkeep     map[string]int `mapstructure:"weekly_upkeep"`
	CompletionReward map[string]int `mapstructure:"completion_reward"`
}

// Load reads a catalog file (yaml/toml/json, decided by extension) and
// returns the compiled catalog. Types absent from the file use builtin
// defaults; a malformed entry fails the whole load.
func Load(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	validate := validator.New()
	cat := NewDefault()

	var raw map[string]rawSpec
	if err := v.UnmarshalKey("buildings", &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for name, entry := range raw {
		t, ok := BuildingTypeByName(name)
		if !ok {
			slog.Warn("catalog entry for unknown building type skipped", "type", name)
			continue
		}
		if err := validate.Struct(entry); err != nil {
			return nil, fmt.Errorf("catalog entry %s: %w", name, err)
		}
		spec, err := compileSpec(t, entry)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %s: %w", name, err)
		}
		cat.entries[t] = spec
	}

	slog.Info("building catalog loaded", "path", path, "entries", len(cat.entries))
	return cat, nil
}

func compileSpec(t BuildingType, raw rawSpec) (*Spec, error) {
	spec := &Spec{
		Type:               t,
		WorkerSlotsByLevel: raw.WorkerSlotsByLevel,
		ConstructionTime:   raw.ConstructionTime,
		MaxLevel:           raw.MaxLevel,
		PrimarySkill:       raw.PrimarySkill,
		SecondarySkill:     raw.SecondarySkill,
		SkillBonusPerLevel: raw.SkillBonusPerLevel,
		Production:         make(map[resource.Type][]int),
		Upkeep:             make(map[resource.Type][]int),
	}

	var err error
	if spec.ConstructionCost, err = compileCost(raw.ConstructionCost); err != nil {
		return nil, err
	}
	for name, values := range raw.Production {
		rt, ok := resource.TypeByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown resource %q", name)
		}
		spec.Production[rt] = values
	}
	for name, values := range raw.Upkeep {
		rt, ok := resource.TypeByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown resource %q", name)
		}
		spec.Upkeep[rt] = values
	}
	for _, rp := range raw.Projects {
		tpl := ProjectTemplate{
			Name:          rp.Name,
			Description:   rp.Description,
			MinLevel:      rp.MinLevel,
			DurationWeeks: rp.DurationWeeks,
		}
		if tpl.Cost, err = compileCost(rp.Cost); err != nil {
			return nil, err
		}
		if tpl.WeeklyProduction, err = compileCost(rp.WeeklyProduction); err != nil {
			return nil, err
		}
		if tpl.WeeklyUpkeep, err = compileCost(rp.WeeklyUpkeep); err != nil {
			return nil, err
		}
		if tpl.CompletionReward, err = compileCost(rp.CompletionReward); err != nil {
			return nil, err
		}
		spec.Projects = append(spec.Projects, tpl)
	}
	return spec, nil
}

func compileCost(raw map[string]int) (resource.Cost, error) {
	cost := make(resource.Cost, len(raw))
	for name, amount := range raw {
		t, ok := resource.TypeByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown resource %q", name)
		}
		cost[t] = amount
	}
	return cost, nil
}
