package recommendations

// LibraryGame is one library entry in the shape the model contract expects:
// title plus whole-hour playtime.
type LibraryGame struct {
	GameTitle       string `json:"gameTitle"`
	PlaytimeInHours int    `json:"playtimeInHours"`
}

// SuggestedGame is a single ranked recommendation from the model.
type SuggestedGame struct {
	GameTitle string `json:"gameTitle"`
	Reason    string `json:"reason"`
}

// Result is the ordered suggestion list for one request. An empty
// SuggestedGames slice is a valid outcome meaning no suitable suggestions.
type Result struct {
	RecommendationID string          `json:"recommendationId"`
	SuggestedGames   []SuggestedGame `json:"suggestedGames"`
}
