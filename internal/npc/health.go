package npc

import (
	"github.com/ironhollow/stronghold/internal/rng"
)

// HealthState is an independent condition flag. An inhabitant can carry
// several at once; any flag makes them unavailable for work.
type HealthState string

const (
	Sick           HealthState = "Sick"
	LightlyInjured HealthState = "LightlyInjured"
	GravelyInjured HealthState = "GravelyInjured"
)

// Weekly roll chances.
const (
	graveRecoveryChance = 0.10
	graveDeathChance    = 0.05
	minorRecoveryChance = 0.20
)

// HealthOutcome reports what a weekly health pass did to one inhabitant.
type HealthOutcome struct {
	Died      bool
	Recovered []HealthState
}

// HasHealthState reports whether the given flag is set.
func (n *NPC) HasHealthState(h HealthState) bool {
	for _, s := range n.Health {
		if s == h {
			return true
		}
	}
	return false
}

// AddHealthState sets a flag if not already present.
func (n *NPC) AddHealthState(h HealthState) {
	if !n.HasHealthState(h) {
		n.Health = append(n.Health, h)
	}
}

// removeHealthState clears one flag.
func (n *NPC) removeHealthState(h HealthState) {
	out := n.Health[:0]
	for _, s := range n.Health {
		if s != h {
			out = append(out, s)
		}
	}
	n.Health = out
	if len(n.Health) == 0 {
		n.Health = nil
	}
}

// RollWeeklyHealth runs the weekly recovery/death rolls for this inhabitant.
// Gravely injured: 10% recovery, 5% death, else the state persists.
// Sick and lightly injured: flat 20% recovery.
func (n *NPC) RollWeeklyHealth(r rng.Source) HealthOutcome {
	var out HealthOutcome
	if !n.Alive || len(n.Health) == 0 {
		return out
	}

	if n.HasHealthState(GravelyInjured) {
		roll := r.Float()
		switch {
		case roll < graveRecoveryChance:
			n.removeHealthState(GravelyInjured)
			out.Recovered = append(out.Recovered, GravelyInjured)
		case roll < graveRecoveryChance+graveDeathChance:
			n.Alive = false
			out.Died = true
			return out
		}
	}

	for _, state := range []HealthState{Sick, LightlyInjured} {
		if n.HasHealthState(state) && r.Float() < minorRecoveryChance {
			n.removeHealthState(state)
			out.Recovered = append(out.Recovered, state)
		}
	}
	return out
}
