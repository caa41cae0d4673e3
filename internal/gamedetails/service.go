package gamedetails

import (
	"context"
	"encoding/json"
	"fmt"

	"gameplan-backend/internal/llm"
	"gameplan-backend/internal/shared/metrics"
	"gameplan-backend/internal/shared/telemetry"
)

// FallbackDetails is returned whenever the model cannot supply a description.
const FallbackDetails = "Could not retrieve details for this game."

// Details is the best-effort description of one game.
type Details struct {
	GameDetails string `json:"gameDetails"`
}

// Service fetches an on-demand description for a single game title. Lookups
// are best-effort: a failed model call yields the fallback text, never an
// error, so a broken lookup can't interrupt the surrounding flow.
type Service struct {
	LLM llm.Client
}

// Get returns the model's description of the given game, or the fallback.
func (s *Service) Get(ctx context.Context, gameTitle string) Details {
	metrics.IncDetailLookup()

	details, err := s.lookup(ctx, gameTitle)
	if err != nil {
		metrics.IncDetailLookupFallback()
		telemetry.Warn("gamedetails.fallback", map[string]any{
			"game_title": gameTitle,
			"error":      err.Error(),
		})
		return Details{GameDetails: FallbackDetails}
	}
	return details
}

func (s *Service) lookup(ctx context.Context, gameTitle string) (Details, error) {
	raw, err := s.LLM.GameDetails(ctx, gameTitle)
	if err != nil {
		return Details{}, err
	}
	var details Details
	if err := json.Unmarshal(raw, &details); err != nil {
		return Details{}, fmt.Errorf("output does not match details schema: %v", err)
	}
	if details.GameDetails == "" {
		return Details{}, fmt.Errorf("model returned empty details")
	}
	return details, nil
}
