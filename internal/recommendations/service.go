package recommendations

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"gameplan-backend/internal/llm"
	"gameplan-backend/internal/shared/metrics"
	"gameplan-backend/internal/shared/telemetry"
	"gameplan-backend/internal/steam"
)

// LibraryFetcher is the slice of the Steam client this service consumes.
type LibraryFetcher interface {
	GetOwnedGames(ctx context.Context, steamID string) ([]steam.Game, error)
}

// Service builds the model request from a Steam library and a schedule and
// interprets the model's output.
type Service struct {
	Steam LibraryFetcher
	LLM   llm.Client
}

// Suggest runs the full recommendation flow for one request.
func (s *Service) Suggest(ctx context.Context, steamID, scheduleJSON string) (Result, error) {
	if strings.TrimSpace(steamID) == "" {
		return Result{}, ErrMissingSteamID
	}
	if isEmptySchedule(scheduleJSON) {
		return Result{}, ErrEmptySchedule
	}

	metrics.IncRecommendationStarted()
	start := time.Now()
	result, err := s.suggest(ctx, steamID, scheduleJSON)
	metrics.ObserveRecommendationDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncRecommendationFailed()
		return Result{}, err
	}
	metrics.IncRecommendationCompleted()
	return result, nil
}

func (s *Service) suggest(ctx context.Context, steamID, scheduleJSON string) (Result, error) {
	games, err := s.Steam.GetOwnedGames(ctx, steamID)
	if err != nil {
		return Result{}, fmt.Errorf("fetch owned games: %w", err)
	}

	library := mapLibrary(games)
	result := Result{
		RecommendationID: uuid.NewString(),
		SuggestedGames:   []SuggestedGame{},
	}
	if len(library) == 0 {
		// Nothing rankable; answering without a model call.
		metrics.IncRecommendationShortCircuited()
		telemetry.Info("recommendation.short_circuit", map[string]any{
			"recommendation_id": result.RecommendationID,
			"owned_games":       len(games),
		})
		return result, nil
	}

	libraryJSON, err := json.Marshal(library)
	if err != nil {
		return Result{}, fmt.Errorf("marshal library: %w", err)
	}

	raw, err := s.LLM.SuggestGames(ctx, llm.SuggestInput{
		LibraryJSON:  string(libraryJSON),
		ScheduleJSON: scheduleJSON,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrModelContract, err)
	}

	suggested, err := parseSuggestions(raw)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrModelContract, err)
	}
	result.SuggestedGames = suggested

	telemetry.Info("recommendation.complete", map[string]any{
		"recommendation_id": result.RecommendationID,
		"library_size":      len(library),
		"suggested":         len(result.SuggestedGames),
	})
	return result, nil
}

// mapLibrary drops entries without a title and converts cumulative minutes to
// whole hours, rounding halves up (math.Round: half away from zero, which for
// non-negative playtimes is half-up; 125min -> 2h, 150min -> 3h).
func mapLibrary(games []steam.Game) []LibraryGame {
	library := make([]LibraryGame, 0, len(games))
	for _, g := range games {
		if strings.TrimSpace(g.Name) == "" {
			continue
		}
		library = append(library, LibraryGame{
			GameTitle:       g.Name,
			PlaytimeInHours: int(math.Round(float64(g.PlaytimeForever) / 60.0)),
		})
	}
	return library
}

// parseSuggestions validates the model output against the suggestion schema.
// A missing or null suggestedGames array is a valid empty result; anything
// that is not an object with a conforming array is an error.
func parseSuggestions(raw json.RawMessage) ([]SuggestedGame, error) {
	var parsed struct {
		SuggestedGames []SuggestedGame `json:"suggestedGames"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("output does not match suggestion schema: %v", err)
	}
	if parsed.SuggestedGames == nil {
		return []SuggestedGame{}, nil
	}
	return parsed.SuggestedGames, nil
}

// isEmptySchedule reports whether the serialized grid is blank or the
// empty-object sentinel meaning nothing was selected.
func isEmptySchedule(scheduleJSON string) bool {
	trimmed := strings.TrimSpace(scheduleJSON)
	if trimmed == "" || trimmed == "{}" {
		return true
	}
	var grid map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &grid); err != nil {
		return false
	}
	return len(grid) == 0
}
