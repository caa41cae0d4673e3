package players

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"gameplan-backend/internal/steam"
)

type fakeSteam struct {
	player    *steam.Player
	recent    []steam.RecentlyPlayedGame
	err       error
	lastCount int
}

func (f *fakeSteam) GetPlayerSummary(ctx context.Context, steamID string) (*steam.Player, error) {
	_ = ctx
	_ = steamID
	if f.err != nil {
		return nil, f.err
	}
	return f.player, nil
}

func (f *fakeSteam) GetRecentlyPlayedGames(ctx context.Context, steamID string, count int) ([]steam.RecentlyPlayedGame, error) {
	_ = ctx
	_ = steamID
	f.lastCount = count
	if f.err != nil {
		return nil, f.err
	}
	return f.recent, nil
}

func setupPlayersRouter(t *testing.T, client ProfileFetcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(client).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestGetSummary(t *testing.T) {
	r := setupPlayersRouter(t, &fakeSteam{player: &steam.Player{
		SteamID:     "76561197960287930",
		PersonaName: "gabe",
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/76561197960287930", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var player steam.Player
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if player.PersonaName != "gabe" {
		t.Fatalf("unexpected player: %+v", player)
	}
}

func TestGetSummaryMissingPlayerReturns404(t *testing.T) {
	r := setupPlayersRouter(t, &fakeSteam{player: nil})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/76561197960287930", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestGetSummaryPrivateProfileReturns403(t *testing.T) {
	r := setupPlayersRouter(t, &fakeSteam{err: steam.ErrPrivateProfile})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/76561197960287930", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestGetRecentlyPlayedPassesCount(t *testing.T) {
	client := &fakeSteam{recent: []steam.RecentlyPlayedGame{
		{Name: "Hades", Playtime2Weeks: 90},
	}}
	r := setupPlayersRouter(t, client)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/76561197960287930/recent?count=5", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if client.lastCount != 5 {
		t.Fatalf("expected count 5, got %d", client.lastCount)
	}

	var body struct {
		Games []steam.RecentlyPlayedGame `json:"games"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Games) != 1 || body.Games[0].Playtime2Weeks != 90 {
		t.Fatalf("unexpected games: %+v", body.Games)
	}
}

func TestGetRecentlyPlayedNilBecomesEmptyList(t *testing.T) {
	r := setupPlayersRouter(t, &fakeSteam{recent: nil})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/76561197960287930/recent", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Games []steam.RecentlyPlayedGame `json:"games"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Games == nil {
		t.Fatalf("expected empty list, got null")
	}
}
