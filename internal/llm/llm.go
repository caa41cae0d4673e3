package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts the generative-model provider behind the two fixed
// contracts this service needs: ranking a game library against a schedule and
// describing a single game.
type Client interface {
	SuggestGames(ctx context.Context, input SuggestInput) (json.RawMessage, error)
	GameDetails(ctx context.Context, gameTitle string) (json.RawMessage, error)
}

// SuggestInput carries the two opaque JSON blobs for a suggestion request.
type SuggestInput struct {
	LibraryJSON  string
	ScheduleJSON string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// SuggestGames returns ErrNotImplemented.
func (PlaceholderClient) SuggestGames(ctx context.Context, input SuggestInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}

// GameDetails returns ErrNotImplemented.
func (PlaceholderClient) GameDetails(ctx context.Context, gameTitle string) (json.RawMessage, error) {
	_ = ctx
	_ = gameTitle
	return nil, ErrNotImplemented
}
