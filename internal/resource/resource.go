// Package resource provides the stronghold resource ledger: named quantities
// with per-week production and consumption entries.
package resource

import "strings"

// Type identifies a stockpiled resource.
type Type uint8

const (
	Gold Type = iota
	Food
	Wood
	Stone
	Iron
	Luxury
	Special
)

// AllTypes lists every resource type in ledger order.
var AllTypes = []Type{Gold, Food, Wood, Stone, Iron, Luxury, Special}

// TypeName returns a human-readable resource name.
func TypeName(t Type) string {
	switch t {
	case Gold:
		return "Gold"
	case Food:
		return "Food"
	case Wood:
		return "Wood"
	case Stone:
		return "Stone"
	case Iron:
		return "Iron"
	case Luxury:
		return "Luxury"
	case Special:
		return "Special"
	default:
		return "Unknown"
	}
}

func (t Type) String() string { return TypeName(t) }

// TypeByName resolves a resource name back to its Type. Matching ignores
// case; config decoders lowercase map keys.
func TypeByName(name string) (Type, bool) {
	for _, t := range AllTypes {
		if strings.EqualFold(TypeName(t), name) {
			return t, true
		}
	}
	return 0, false
}

// SourceOrigin classifies where a weekly entry came from.
type SourceOrigin string

const (
	OriginBuilding   SourceOrigin = "building"
	OriginProject    SourceOrigin = "project"
	OriginMission    SourceOrigin = "mission"
	OriginPopulation SourceOrigin = "population"
	OriginManual     SourceOrigin = "manual"
)

// Source records one production or consumption entry for the UI breakdown.
// Amount is positive for production and negative for consumption.
type Source struct {
	Origin SourceOrigin `json:"origin"`
	Name   string       `json:"name"`
	Amount int          `json:"amount"`
}

// Resource holds the current stock and derived weekly totals for one type.
type Resource struct {
	Type              Type     `json:"type"`
	Amount            int      `json:"amount"`
	WeeklyProduction  int      `json:"weekly_production"`
	WeeklyConsumption int      `json:"weekly_consumption"`
	Sources           []Source `json:"sources,omitempty"`
}

// NetWeeklyChange is production minus consumption, independent of the zero
// floor applied to Amount.
func (r *Resource) NetWeeklyChange() int {
	return r.WeeklyProduction - r.WeeklyConsumption
}
