package players

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameplan-backend/internal/shared/server/respond"
	"gameplan-backend/internal/steam"
)

// ProfileFetcher is the slice of the Steam client this handler consumes.
type ProfileFetcher interface {
	GetPlayerSummary(ctx context.Context, steamID string) (*steam.Player, error)
	GetRecentlyPlayedGames(ctx context.Context, steamID string, count int) ([]steam.RecentlyPlayedGame, error)
}

// Handler exposes player profile data to the presentation layer.
type Handler struct {
	Steam ProfileFetcher
}

// NewHandler constructs a Handler.
func NewHandler(steamClient ProfileFetcher) *Handler {
	return &Handler{Steam: steamClient}
}

// RegisterRoutes attaches player routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/players/:id", h.getSummary)
	rg.GET("/players/:id/recent", h.getRecentlyPlayed)
}

func (h *Handler) getSummary(c *gin.Context) {
	steamID := c.Param("id")
	c.Set("steamId", steamID)

	player, err := h.Steam.GetPlayerSummary(c.Request.Context(), steamID)
	if err != nil {
		respondSteamError(c, err)
		return
	}
	if player == nil {
		respond.Error(c, http.StatusNotFound, "not_found", "player not found", nil)
		return
	}

	respond.OK(c, player)
}

func (h *Handler) getRecentlyPlayed(c *gin.Context) {
	steamID := c.Param("id")
	c.Set("steamId", steamID)

	count := 0
	if v := c.Query("count"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			count = parsed
		}
	}

	games, err := h.Steam.GetRecentlyPlayedGames(c.Request.Context(), steamID, count)
	if err != nil {
		respondSteamError(c, err)
		return
	}
	if games == nil {
		games = []steam.RecentlyPlayedGame{}
	}

	respond.OK(c, gin.H{"games": games})
}

func respondSteamError(c *gin.Context, err error) {
	var statusErr *steam.StatusError
	switch {
	case errors.Is(err, steam.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "not_configured", "Steam API key is not configured.", nil)
	case errors.Is(err, steam.ErrPrivateProfile):
		respond.Error(c, http.StatusForbidden, "private_profile", "Failed to fetch data. The user's profile may be private.", nil)
	case errors.As(err, &statusErr):
		respond.Error(c, http.StatusBadGateway, "steam_error", "Steam did not answer the request. Please try again.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch player data", nil)
	}
}
