package engine

import (
	"github.com/google/uuid"

	"github.com/ironhollow/stronghold/internal/resource"
)

// ResourceDelta captures one resource's movement across a turn boundary.
type ResourceDelta struct {
	Type     resource.Type `json:"type"`
	Previous int           `json:"previous"`
	Current  int           `json:"current"`
	// Net is the true weekly delta before the zero clamp; Current may sit
	// above Previous+Net when the stock bottomed out.
	Net int `json:"net"`
}

// UpcomingCompletion forecasts a building operation nearing its end.
type UpcomingCompletion struct {
	BuildingID   uuid.UUID `json:"building_id"`
	BuildingName string    `json:"building_name"`
	Operation    string    `json:"operation"` // construction, repair, upgrade or project
	Detail       string    `json:"detail,omitempty"`
	WeeksLeft    int       `json:"weeks_left"`
}

// MissionResult records one mission resolved during the turn.
type MissionResult struct {
	MissionID uuid.UUID `json:"mission_id"`
	Name      string    `json:"name"`
	Succeeded bool      `json:"succeeded"`
}

// WeeklyReport summarizes a single AdvanceWeek call.
type WeeklyReport struct {
	Week   int    `json:"week"`
	Year   int    `json:"year"`
	Season string `json:"season"`

	Resources []ResourceDelta `json:"resources"`

	CompletedConstruction []string `json:"completed_construction,omitempty"`
	CompletedRepairs      []string `json:"completed_repairs,omitempty"`
	CompletedUpgrades     []string `json:"completed_upgrades,omitempty"`
	CompletedProjects     []string `json:"completed_projects,omitempty"`

	Missions []MissionResult `json:"missions,omitempty"`

	Deaths     []string `json:"deaths,omitempty"`
	Recoveries []string `json:"recoveries,omitempty"`
	NewIllness []string `json:"new_illness,omitempty"`

	Upcoming []UpcomingCompletion `json:"upcoming,omitempty"`
}

// Delta returns the report line for one resource type, or a zero line when
// the type was not tracked.
func (r *WeeklyReport) Delta(t resource.Type) ResourceDelta {
	for _, d := range r.Resources {
		if d.Type == t {
			return d
		}
	}
	return ResourceDelta{Type: t}
}
