package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// UserID identifies the local profile; progress records are keyed by it.
	UserID string `json:"user_id,omitempty"`

	// AIBaseURL is the chat-completions endpoint used for summarization.
	AIBaseURL string `json:"ai_base_url,omitempty"`

	// AIModel is the model name sent with summarization requests.
	AIModel string `json:"ai_model,omitempty"`

	// AIAPIKey authenticates summarization requests.
	// The FERN_AI_API_KEY environment variable takes precedence when set.
	AIAPIKey string `json:"ai_api_key,omitempty"`

	// Bind and Port configure the web API server.
	Bind string `json:"bind,omitempty"`
	Port int    `json:"port,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is
	// locked" errors). 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UserID:    "local",
		AIBaseURL: "https://api.groq.com/openai/v1/chat/completions",
		AIModel:   "llama-3.3-70b-versatile",
		Bind:      "127.0.0.1",
		Port:      7333,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.fern.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)

	// Environment wins over file for the API key so it never has to be
	// written to disk.
	if key := os.Getenv("FERN_AI_API_KEY"); key != "" {
		merged.AIAPIKey = key
	}
	return merged, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// File doesn't exist, return zero config
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.UserID = overlayString(base.UserID, overlay.UserID)
	result.AIBaseURL = overlayString(base.AIBaseURL, overlay.AIBaseURL)
	result.AIModel = overlayString(base.AIModel, overlay.AIModel)
	result.AIAPIKey = overlayString(base.AIAPIKey, overlay.AIAPIKey)
	result.Bind = overlayString(base.Bind, overlay.Bind)

	result.Port = overlay.Port
	if result.Port == 0 {
		result.Port = base.Port
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func overlayString(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
