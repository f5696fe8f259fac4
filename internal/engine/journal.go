package engine

import (
	"github.com/google/uuid"
)

// Journal entry types.
const (
	EntryConstruction = "construction"
	EntryRepair       = "repair"
	EntryUpgrade      = "upgrade"
	EntryProject      = "project"
	EntryMission      = "mission"
	EntryHealth       = "health"
	EntryPopulation   = "population"
	EntryReport       = "report"
)

// Importance levels for journal entries.
const (
	ImportanceLow = iota + 1
	ImportanceNormal
	ImportanceHigh
)

// JournalEntry is an immutable record of one game event.
type JournalEntry struct {
	Week        int         `json:"week"`
	Year        int         `json:"year"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Refs        []uuid.UUID `json:"refs,omitempty"`
	Importance  int         `json:"importance"`
}

// Journal is the append-only, chronologically ordered event log. Only the
// orchestrator and lifecycle transitions write to it.
type Journal struct {
	entries []JournalEntry
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Append adds an entry at the end.
func (j *Journal) Append(e JournalEntry) {
	j.entries = append(j.entries, e)
}

// Entries returns every entry in order.
func (j *Journal) Entries() []JournalEntry {
	return j.entries
}

// ByType returns entries of one type, in order.
func (j *Journal) ByType(entryType string) []JournalEntry {
	var out []JournalEntry
	for _, e := range j.entries {
		if e.Type == entryType {
			out = append(out, e)
		}
	}
	return out
}

// Recent returns the last n entries.
func (j *Journal) Recent(n int) []JournalEntry {
	if n >= len(j.entries) {
		return j.entries
	}
	return j.entries[len(j.entries)-n:]
}
