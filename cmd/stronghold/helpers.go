package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/viper"

	"github.com/ironhollow/stronghold/internal/building"
	"github.com/ironhollow/stronghold/internal/catalog"
	"github.com/ironhollow/stronghold/internal/engine"
	"github.com/ironhollow/stronghold/internal/npc"
	"github.com/ironhollow/stronghold/internal/persistence"
	"github.com/ironhollow/stronghold/internal/rng"
)

func loadCatalog() (*catalog.Catalog, error) {
	path := viper.GetString("catalog")
	if path == "" {
		return catalog.NewDefault(), nil
	}
	return catalog.Load(path)
}

func gameRand(name string) rng.Source {
	if seed := viper.GetInt64("seed"); seed != 0 {
		return rng.NewSeeded(seed)
	}
	var h int64
	for _, c := range name {
		h = h*31 + int64(c)
	}
	return rng.NewSeeded(h)
}

// withGame loads the saved game, runs fn, and writes the game back when fn
// mutated it without error.
func withGame(fn func(game *engine.Stronghold) error) error {
	db, err := persistence.Open(viper.GetString("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	cat, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	game, err := db.LoadGame(cat, nil)
	if err != nil {
		return fmt.Errorf("load game (run 'stronghold new' first?): %w", err)
	}
	if game.Name == "" {
		return fmt.Errorf("no saved game at %s; run 'stronghold new' first", viper.GetString("db"))
	}
	game.Restore(cat, gameRand(game.Name))

	if err := fn(game); err != nil {
		return err
	}
	return db.SaveGame(game)
}

// resolveBuildingType matches user input against catalog type names,
// suggesting the closest one on a typo.
func resolveBuildingType(input string) (catalog.BuildingType, error) {
	if t, ok := catalog.BuildingTypeByName(input); ok {
		return t, nil
	}

	lowered := strings.ToLower(input)
	best := catalog.BuildingType(0)
	bestDist := len(input) + 1
	for _, t := range catalog.AllBuildingTypes {
		name := strings.ToLower(catalog.BuildingTypeName(t))
		if name == lowered {
			return t, nil
		}
		if d := levenshtein.ComputeDistance(lowered, name); d < bestDist {
			best, bestDist = t, d
		}
	}
	if bestDist <= 2 {
		return 0, fmt.Errorf("unknown building type %q (did you mean %q?)", input, catalog.BuildingTypeName(best))
	}
	return 0, fmt.Errorf("unknown building type %q", input)
}

// findBuilding matches a building by exact name, then case-insensitively.
func findBuilding(game *engine.Stronghold, name string) (*building.Building, error) {
	for _, b := range game.Buildings {
		if b.Name == name {
			return b, nil
		}
	}
	lowered := strings.ToLower(name)
	for _, b := range game.Buildings {
		if strings.ToLower(b.Name) == lowered {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no building named %q", name)
}

// findNPC matches an inhabitant by name, preferring living ones.
func findNPC(game *engine.Stronghold, name string) (*npc.NPC, error) {
	lowered := strings.ToLower(name)
	for _, n := range game.Roster.Living() {
		if strings.ToLower(n.Name) == lowered {
			return n, nil
		}
	}
	return nil, fmt.Errorf("no living inhabitant named %q", name)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
