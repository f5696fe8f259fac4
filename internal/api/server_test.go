package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhollow/stronghold/internal/building"
	"github.com/ironhollow/stronghold/internal/catalog"
	"github.com/ironhollow/stronghold/internal/engine"
	"github.com/ironhollow/stronghold/internal/npc"
	"github.com/ironhollow/stronghold/internal/rng"
)

func newTestServer(t *testing.T) (*Server, *engine.Stronghold) {
	t.Helper()
	game := engine.New(engine.Config{Name: "Ravenkeep", Location: "Northern Marches", Rand: rng.NewSeeded(1)})
	b := game.NewBuilding(catalog.Farm, "Old Farm")
	b.Status = building.Complete
	require.True(t, game.AddBuilding(b))
	game.AddNPC(npc.New("Bram", "male", npc.TypeFarmer))
	return &Server{Game: game}, game
}

func get(t *testing.T, s *Server, path string, into any) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code == 200 && into != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
	}
	return rec.Code
}

func TestStatusEndpoint(t *testing.T) {
	s, game := newTestServer(t)

	var status map[string]any
	require.Equal(t, 200, get(t, s, "/api/v1/status", &status))

	assert.Equal(t, "Ravenkeep", status["name"])
	assert.Equal(t, float64(1), status["week"])
	assert.Equal(t, "Spring", status["season"])
	assert.Equal(t, float64(game.Treasury()), status["treasury"])
	assert.Equal(t, float64(1), status["population"])
}

func TestBuildingsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	var buildings []map[string]any
	require.Equal(t, 200, get(t, s, "/api/v1/buildings", &buildings))
	require.Len(t, buildings, 1)
	assert.Equal(t, "Old Farm", buildings[0]["name"])
	assert.Equal(t, "Complete", buildings[0]["status"])
}

func TestReportEndpointBeforeAndAfterTurn(t *testing.T) {
	s, game := newTestServer(t)

	assert.Equal(t, 404, get(t, s, "/api/v1/report", nil))

	game.AdvanceWeek()
	var report map[string]any
	require.Equal(t, 200, get(t, s, "/api/v1/report", &report))
	assert.Equal(t, float64(2), report["week"])
}

func TestJournalFilter(t *testing.T) {
	s, game := newTestServer(t)
	game.AdvanceWeek()
	game.AdvanceWeek()

	var entries []map[string]any
	require.Equal(t, 200, get(t, s, "/api/v1/journal?type=report&limit=1", &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "report", entries[0]["type"])
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
	assert.Greater(t, rl.RetryAfter("10.0.0.1"), 0)
}
