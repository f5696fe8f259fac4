// Package project provides time-boxed building sub-tasks. A project is
// scoped to one building and staffs itself from that building's already
// assigned workers.
package project

import (
	"github.com/google/uuid"

	"github.com/ironhollow/stronghold/internal/catalog"
	"github.com/ironhollow/stronghold/internal/resource"
)

// Project is an active sub-task on a building. The assigned-worker set is a
// snapshot taken at start time; later roster changes on the host building do
// not restaff the project. Weekly tables apply every week the project runs.
type Project struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	InitialCost      resource.Cost `json:"initial_cost"`
	DurationWeeks    int           `json:"duration_weeks"`
	RemainingWeeks   int           `json:"remaining_weeks"`
	AssignedWorkers  []uuid.UUID   `json:"assigned_workers"`
	WeeklyProduction resource.Cost `json:"weekly_production,omitempty"`
	WeeklyUpkeep     resource.Cost `json:"weekly_upkeep,omitempty"`
	CompletionReward resource.Cost `json:"completion_reward"`
}

// FromTemplate instantiates a project from a catalog template.
func FromTemplate(tpl catalog.ProjectTemplate) *Project {
	return &Project{
		ID:               uuid.New(),
		Name:             tpl.Name,
		Description:      tpl.Description,
		InitialCost:      tpl.Cost,
		DurationWeeks:    tpl.DurationWeeks,
		RemainingWeeks:   tpl.DurationWeeks,
		WeeklyProduction: tpl.WeeklyProduction,
		WeeklyUpkeep:     tpl.WeeklyUpkeep,
		CompletionReward: tpl.CompletionReward,
	}
}

// New creates an ad-hoc project.
func New(name, description string, cost resource.Cost, duration int, reward resource.Cost) *Project {
	return &Project{
		ID:               uuid.New(),
		Name:             name,
		Description:      description,
		InitialCost:      cost,
		DurationWeeks:    duration,
		RemainingWeeks:   duration,
		CompletionReward: reward,
	}
}

// Advance counts down one week. Returns true exactly once, when the project
// finishes.
func (p *Project) Advance() bool {
	if p.RemainingWeeks <= 0 {
		return false
	}
	p.RemainingWeeks--
	return p.RemainingWeeks == 0
}

// Staffs reports whether the given worker id is part of the project's
// snapshot.
func (p *Project) Staffs(id uuid.UUID) bool {
	for _, w := range p.AssignedWorkers {
		if w == id {
			return true
		}
	}
	return false
}
