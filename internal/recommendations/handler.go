package recommendations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameplan-backend/internal/shared/server/respond"
	"gameplan-backend/internal/steam"
)

// Handler wires HTTP handlers to the recommendations service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.suggest)
}

type suggestRequest struct {
	SteamID  string `json:"steamId"`
	Schedule string `json:"schedule"`
}

func (h *Handler) suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body must be JSON with steamId and schedule", nil)
		return
	}
	c.Set("steamId", req.SteamID)

	result, err := h.Svc.Suggest(c.Request.Context(), req.SteamID, req.Schedule)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingSteamID):
			respond.Error(c, http.StatusBadRequest, "validation_error", "steamId is required", []map[string]string{
				{"field": "steamId", "issue": "required"},
			})
		case errors.Is(err, ErrEmptySchedule):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Please select at least one available time slot in your schedule.", []map[string]string{
				{"field": "schedule", "issue": "empty"},
			})
		case errors.Is(err, steam.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", "Steam API key is not configured.", nil)
		case errors.Is(err, steam.ErrPrivateProfile):
			respond.Error(c, http.StatusForbidden, "private_profile", "Failed to fetch data. The user's profile may be private.", nil)
		case isSteamStatusError(err):
			respond.Error(c, http.StatusBadGateway, "steam_error", "Steam did not answer the library request. Please try again.", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "llm_error", "Failed to get game recommendations from AI. Please try again.", nil)
		}
		return
	}

	c.Set("recommendationId", result.RecommendationID)
	respond.OK(c, result)
}

func isSteamStatusError(err error) bool {
	var statusErr *steam.StatusError
	return errors.As(err, &statusErr)
}
