package npc

import (
	"github.com/google/uuid"
)

// Roster owns every inhabitant and provides stable-id lookups. Other
// subsystems hold ids, never live slices of the roster.
type Roster struct {
	npcs  []*NPC
	index map[uuid.UUID]*NPC
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{index: make(map[uuid.UUID]*NPC)}
}

// RestoreRoster rebuilds a roster from persisted inhabitants.
func RestoreRoster(npcs []*NPC) *Roster {
	r := NewRoster()
	for _, n := range npcs {
		r.Add(n)
	}
	return r
}

// Add registers an inhabitant.
func (r *Roster) Add(n *NPC) {
	if _, exists := r.index[n.ID]; exists {
		return
	}
	r.npcs = append(r.npcs, n)
	r.index[n.ID] = n
}

// Get returns the inhabitant with the given id, nil when unknown. Dangling
// references are expected during interactive editing; callers skip nils.
func (r *Roster) Get(id uuid.UUID) *NPC {
	return r.index[id]
}

// Remove deletes an inhabitant from the roster.
func (r *Roster) Remove(id uuid.UUID) {
	n, ok := r.index[id]
	if !ok {
		return
	}
	delete(r.index, id)
	out := r.npcs[:0]
	for _, m := range r.npcs {
		if m != n {
			out = append(out, m)
		}
	}
	r.npcs = out
}

// All returns the inhabitants in registration order.
func (r *Roster) All() []*NPC {
	return r.npcs
}

// Living returns every living inhabitant.
func (r *Roster) Living() []*NPC {
	var out []*NPC
	for _, n := range r.npcs {
		if n.Alive {
			out = append(out, n)
		}
	}
	return out
}

// LivingCount returns the number of living inhabitants.
func (r *Roster) LivingCount() int {
	count := 0
	for _, n := range r.npcs {
		if n.Alive {
			count++
		}
	}
	return count
}

// Unassigned returns living, available inhabitants with no attachment.
func (r *Roster) Unassigned() []*NPC {
	var out []*NPC
	for _, n := range r.npcs {
		if n.Alive && len(n.Health) == 0 && n.IsUnassigned() {
			out = append(out, n)
		}
	}
	return out
}

// ClearAssignmentsTo detaches every inhabitant currently assigned to the
// given target, regardless of assignment kind.
func (r *Roster) ClearAssignmentsTo(targetID uuid.UUID) {
	for _, n := range r.npcs {
		if n.Assignment.TargetID == targetID {
			n.ClearAssignment()
		}
	}
}
