// Package npc provides the inhabitant data model: archetypes, skills, health
// states, and the single current assignment.
package npc

import (
	"github.com/google/uuid"
)

// Type represents an inhabitant archetype. Each archetype grants one
// mandatory level-1 skill on creation.
type Type uint8

const (
	TypeFarmer Type = iota
	TypeSoldier
	TypeCraftsman
	TypeMerchant
	TypeHealer
	TypeScout
	TypeEngineer
	TypeScholar
)

// AllTypes lists every archetype.
var AllTypes = []Type{
	TypeFarmer, TypeSoldier, TypeCraftsman, TypeMerchant,
	TypeHealer, TypeScout, TypeEngineer, TypeScholar,
}

// TypeName returns a human-readable archetype name.
func TypeName(t Type) string {
	switch t {
	case TypeFarmer:
		return "Farmer"
	case TypeSoldier:
		return "Soldier"
	case TypeCraftsman:
		return "Craftsman"
	case TypeMerchant:
		return "Merchant"
	case TypeHealer:
		return "Healer"
	case TypeScout:
		return "Scout"
	case TypeEngineer:
		return "Engineer"
	case TypeScholar:
		return "Scholar"
	default:
		return "Unknown"
	}
}

func (t Type) String() string { return TypeName(t) }

// AssignmentKind says what an inhabitant is currently attached to.
type AssignmentKind uint8

const (
	Unassigned AssignmentKind = iota
	AssignedBuilding
	AssignedMission
	AssignedProject
)

// Assignment is the single current attachment of an inhabitant.
type Assignment struct {
	Kind       AssignmentKind `json:"kind"`
	TargetID   uuid.UUID      `json:"target_id,omitempty"`
	TargetName string         `json:"target_name,omitempty"`
}

// Status is derived from health states and assignment; it is never stored.
type Status uint8

const (
	StatusIdle Status = iota
	StatusWorking
	StatusOnMission
	StatusOnProject
	StatusUnavailable
)

// StatusName returns a human-readable status name.
func StatusName(s Status) string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusWorking:
		return "Working"
	case StatusOnMission:
		return "On Mission"
	case StatusOnProject:
		return "On Project"
	case StatusUnavailable:
		return "Unavailable"
	default:
		return "Unknown"
	}
}

func (s Status) String() string { return StatusName(s) }

// NPC is an inhabitant of the stronghold.
type NPC struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Gender string    `json:"gender"`
	Type   Type      `json:"type"`
	Level  int       `json:"level"`

	Skills     map[string]*Skill `json:"skills"`
	Health     []HealthState     `json:"health,omitempty"`
	Assignment Assignment        `json:"assignment"`
	Alive      bool              `json:"alive"`
}

// New creates an inhabitant with the full skill catalog at level 0 and the
// archetype's mandatory skill at level 1.
func New(name, gender string, t Type) *NPC {
	n := &NPC{
		ID:     uuid.New(),
		Name:   name,
		Gender: gender,
		Type:   t,
		Level:  1,
		Skills: newSkillSet(),
		Alive:  true,
	}
	if s, ok := n.Skills[MandatorySkill(t)]; ok {
		s.Level = 1
	}
	return n
}

// Status derives the current status. Any health state forces Unavailable
// regardless of assignment.
func (n *NPC) Status() Status {
	if len(n.Health) > 0 {
		return StatusUnavailable
	}
	switch n.Assignment.Kind {
	case AssignedBuilding:
		return StatusWorking
	case AssignedMission:
		return StatusOnMission
	case AssignedProject:
		return StatusOnProject
	default:
		return StatusIdle
	}
}

// IsUnassigned reports whether the inhabitant has no current attachment.
func (n *NPC) IsUnassigned() bool {
	return n.Assignment.Kind == Unassigned
}

// ClearAssignment detaches the inhabitant.
func (n *NPC) ClearAssignment() {
	n.Assignment = Assignment{}
}

// SkillLevel returns the current level of a named skill, 0 when unknown.
func (n *NPC) SkillLevel(name string) int {
	if s, ok := n.Skills[name]; ok {
		return s.Level
	}
	return 0
}

// TotalSkillLevels sums every skill level.
func (n *NPC) TotalSkillLevels() int {
	total := 0
	for _, s := range n.Skills {
		total += s.Level
	}
	return total
}
