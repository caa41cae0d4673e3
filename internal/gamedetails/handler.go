package gamedetails

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gameplan-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the game-details service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches game-details routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/games/details", h.getDetails)
}

func (h *Handler) getDetails(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "title query parameter is required", []map[string]string{
			{"field": "title", "issue": "required"},
		})
		return
	}

	respond.OK(c, h.Svc.Get(c.Request.Context(), title))
}
