// Package api serves a read-only HTTP snapshot of a running game. The
// presentation contract is a full re-read: every endpoint returns the
// current state, never a delta.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ironhollow/stronghold/internal/engine"
	"github.com/ironhollow/stronghold/internal/npc"
	"github.com/ironhollow/stronghold/internal/resource"
)

// Server serves the stronghold state over HTTP.
type Server struct {
	Game *engine.Stronghold
	Port int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	journalLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/resources", s.handleResources)
	mux.HandleFunc("/api/v1/buildings", s.handleBuildings)
	mux.HandleFunc("/api/v1/npcs", s.handleNPCs)
	mux.HandleFunc("/api/v1/missions", s.handleMissions)
	mux.HandleFunc("/api/v1/journal", RateLimitMiddleware(journalLimiter, s.handleJournal))
	mux.HandleFunc("/api/v1/report", s.handleReport)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Handler returns the routed handler without starting a listener. Used in
// tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/resources", s.handleResources)
	mux.HandleFunc("/api/v1/buildings", s.handleBuildings)
	mux.HandleFunc("/api/v1/npcs", s.handleNPCs)
	mux.HandleFunc("/api/v1/missions", s.handleMissions)
	mux.HandleFunc("/api/v1/journal", s.handleJournal)
	mux.HandleFunc("/api/v1/report", s.handleReport)
	return corsMiddleware(mux)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var status map[string]any
	s.Game.View(func() {
		status = map[string]any{
			"name":       s.Game.Name,
			"location":   s.Game.Location,
			"level":      s.Game.Level,
			"week":       s.Game.Week,
			"year":       s.Game.Year,
			"date":       s.Game.Date(),
			"season":     engine.SeasonName(s.Game.Season()),
			"reputation": s.Game.Reputation,
			"treasury":   s.Game.Treasury(),
			"population": s.Game.Roster.LivingCount(),
			"buildings":  len(s.Game.Buildings),
			"missions":   len(s.Game.Missions),
		}
	})
	writeJSON(w, status)
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	type resourceEntry struct {
		Type        string            `json:"type"`
		Amount      int               `json:"amount"`
		Production  int               `json:"weekly_production"`
		Consumption int               `json:"weekly_consumption"`
		Net         int               `json:"net_weekly_change"`
		Sources     []resource.Source `json:"sources,omitempty"`
	}

	var result []resourceEntry
	s.Game.View(func() {
		for _, rec := range s.Game.Ledger.All() {
			result = append(result, resourceEntry{
				Type:        rec.Type.String(),
				Amount:      rec.Amount,
				Production:  rec.WeeklyProduction,
				Consumption: rec.WeeklyConsumption,
				Net:         rec.NetWeeklyChange(),
				Sources:     rec.Sources,
			})
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleBuildings(w http.ResponseWriter, r *http.Request) {
	type buildingSummary struct {
		ID          string `json:"id"`
		Type        string `json:"type"`
		Name        string `json:"name"`
		Level       int    `json:"level"`
		Status      string `json:"status"`
		Condition   int    `json:"condition"`
		Progress    int    `json:"construction_progress"`
		WorkerSlots int    `json:"worker_slots"`
		Workers     int    `json:"workers"`
		Crew        int    `json:"construction_crew"`
		Project     string `json:"project,omitempty"`
	}

	var result []buildingSummary
	s.Game.View(func() {
		for _, b := range s.Game.Buildings {
			entry := buildingSummary{
				ID:          b.ID.String(),
				Type:        b.Type.String(),
				Name:        b.Name,
				Level:       b.Level,
				Status:      b.Status.String(),
				Condition:   b.Condition,
				Progress:    b.ConstructionProgress,
				WorkerSlots: b.WorkerSlots,
				Workers:     b.AssignedWorkerCount(),
				Crew:        len(b.ConstructionCrew),
			}
			if b.CurrentProject != nil {
				entry.Project = b.CurrentProject.Name
			}
			result = append(result, entry)
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleNPCs(w http.ResponseWriter, r *http.Request) {
	type npcSummary struct {
		ID         string            `json:"id"`
		Name       string            `json:"name"`
		Type       string            `json:"type"`
		Level      int               `json:"level"`
		Status     string            `json:"status"`
		Alive      bool              `json:"alive"`
		Health     []npc.HealthState `json:"health,omitempty"`
		Assignment string            `json:"assignment,omitempty"`
	}

	var result []npcSummary
	s.Game.View(func() {
		for _, n := range s.Game.Roster.All() {
			entry := npcSummary{
				ID:     n.ID.String(),
				Name:   n.Name,
				Type:   n.Type.String(),
				Level:  n.Level,
				Status: n.Status().String(),
				Alive:  n.Alive,
				Health: n.Health,
			}
			if !n.IsUnassigned() {
				entry.Assignment = n.Assignment.TargetName
			}
			result = append(result, entry)
		}
	})
	writeJSON(w, result)
}

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	type missionSummary struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Status    string `json:"status"`
		Remaining int    `json:"remaining_weeks"`
		Party     int    `json:"party_size"`
	}

	result := map[string][]missionSummary{}
	s.Game.View(func() {
		for _, m := range s.Game.Missions {
			result["active"] = append(result["active"], missionSummary{
				ID: m.ID.String(), Name: m.Name, Status: m.Status.String(),
				Remaining: m.Remaining, Party: len(m.AssignedNPCs),
			})
		}
		for _, m := range s.Game.CompletedMissions {
			result["completed"] = append(result["completed"], missionSummary{
				ID: m.ID.String(), Name: m.Name, Status: m.Status.String(),
			})
		}
	})
	writeJSON(w, result)
}

// handleJournal returns recent journal entries, newest last. Supports
// ?type= and ?limit= filters.
func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	entryType := r.URL.Query().Get("type")

	var entries []engine.JournalEntry
	s.Game.View(func() {
		if entryType != "" {
			all := s.Game.Journal.ByType(entryType)
			if len(all) > limit {
				all = all[len(all)-limit:]
			}
			entries = all
		} else {
			entries = s.Game.Journal.Recent(limit)
		}
	})
	writeJSON(w, entries)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var report *engine.WeeklyReport
	s.Game.View(func() {
		report = s.Game.LastReport()
	})
	if report == nil {
		http.Error(w, "no turn has been played yet", http.StatusNotFound)
		return
	}
	writeJSON(w, report)
}

// corsMiddleware allows browser clients from localhost dev servers plus
// any origins listed in CORS_ORIGINS (comma-separated).
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
