package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/suggest.txt
	suggestPrompt string
	//go:embed prompts/details.txt
	detailsPrompt string
)

// SuggestPrompt renders the game-suggestion prompt with the library and
// schedule JSON blobs filled in.
func SuggestPrompt(libraryJSON, scheduleJSON string) string {
	out := strings.ReplaceAll(suggestPrompt, "{{libraryData}}", libraryJSON)
	return strings.ReplaceAll(out, "{{userSchedule}}", scheduleJSON)
}

// DetailsPrompt renders the game-details prompt for a single title.
func DetailsPrompt(gameTitle string) string {
	return strings.ReplaceAll(detailsPrompt, "{{gameTitle}}", gameTitle)
}
