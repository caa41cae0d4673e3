package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	SteamAPIKey     string
	SteamAPIBaseURL string
	SteamTimeout    time.Duration
	LLMProvider     string
	LLMModel        string
	GeminiAPIKey    string
	GeminiTimeout   time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	steamKey := os.Getenv("STEAM_API_KEY")
	if steamKey == "" {
		log.Printf("STEAM_API_KEY is not set; Steam API calls will fail")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		Env:             env,
		SteamAPIKey:     steamKey,
		SteamAPIBaseURL: getEnv("STEAM_API_BASE_URL", "https://api.steampowered.com"),
		SteamTimeout:    timeoutSeconds("STEAM_TIMEOUT_SECONDS", 15*time.Second),
		LLMProvider:     normalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:        getEnv("LLM_MODEL", "gemini-2.0-flash"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiTimeout:   timeoutSeconds("GEMINI_TIMEOUT_SECONDS", 60*time.Second),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func timeoutSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return time.Duration(parsed) * time.Second
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return "gemini"
	default:
		return "gemini"
	}
}
