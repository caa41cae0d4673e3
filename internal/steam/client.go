package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.steampowered.com"
	defaultTimeout = 15 * time.Second

	ownedGamesPath      = "IPlayerService/GetOwnedGames/v1/"
	playerSummariesPath = "ISteamUser/GetPlayerSummaries/v2/"
	recentlyPlayedPath  = "IPlayerService/GetRecentlyPlayedGames/v1/"
)

// DefaultRecentCount is how many recently played games are requested when the
// caller does not ask for a specific count.
const DefaultRecentCount = 20

// Client talks to the Steam Web API. The zero value is not usable; construct
// with New.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout overrides the per-request transport timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New constructs a Client. An empty apiKey is allowed at construction time;
// every call will then fail with ErrNotConfigured before touching the network.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOwnedGames fetches the list of games the given account owns, with display
// metadata appended. The result may be empty.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]Game, error) {
	params := url.Values{
		"steamid":         {steamID},
		"include_appinfo": {"true"},
		"format":          {"json"},
	}
	var out ownedGamesResponse
	if err := c.apiGet(ctx, ownedGamesPath, params, &out); err != nil {
		return nil, err
	}
	return out.Games, nil
}

// GetPlayerSummary fetches the public profile summary for the given account.
// A merely-missing profile yields (nil, nil), not an error.
func (c *Client) GetPlayerSummary(ctx context.Context, steamID string) (*Player, error) {
	params := url.Values{
		"steamids": {steamID},
		"format":   {"json"},
	}
	var out playerSummariesResponse
	if err := c.apiGet(ctx, playerSummariesPath, params, &out); err != nil {
		return nil, err
	}
	if len(out.Players) == 0 {
		return nil, nil
	}
	return &out.Players[0], nil
}

// GetRecentlyPlayedGames fetches games played in the last two weeks. A count
// of zero or less falls back to DefaultRecentCount.
func (c *Client) GetRecentlyPlayedGames(ctx context.Context, steamID string, count int) ([]RecentlyPlayedGame, error) {
	if count <= 0 {
		count = DefaultRecentCount
	}
	params := url.Values{
		"steamid": {steamID},
		"count":   {strconv.Itoa(count)},
		"format":  {"json"},
	}
	var out recentlyPlayedResponse
	if err := c.apiGet(ctx, recentlyPlayedPath, params, &out); err != nil {
		return nil, err
	}
	return out.Games, nil
}

// apiGet is the shared fetch/validate/map path for all Steam endpoints: it
// injects the key, performs the request, and decodes the envelope. An empty
// response object maps to ErrPrivateProfile.
func (c *Client) apiGet(ctx context.Context, path string, params url.Values, payload any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + "/" + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("steam API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("steam API read body: %w", err)
	}

	var envelope struct {
		Response json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("steam API response parse: %w", err)
	}
	if emptyObject(envelope.Response) {
		return ErrPrivateProfile
	}
	if err := json.Unmarshal(envelope.Response, payload); err != nil {
		return fmt.Errorf("steam API response parse: %w", err)
	}
	return nil
}

// emptyObject reports whether raw is absent, null, or an object with no keys.
func emptyObject(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return true
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return false
	}
	return len(keys) == 0
}
