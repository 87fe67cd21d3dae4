// Package config provides configuration loading and structs for the notegraph server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Notes     NotesConfig     `yaml:"notes"`
	Search    SearchConfig    `yaml:"search"`
	Graph     GraphConfig     `yaml:"graph"`
	Plan      PlanConfig      `yaml:"plan"`
	Questions QuestionsConfig `yaml:"questions"`
	AI        AIConfig        `yaml:"ai"`
	Profile   ProfileConfig   `yaml:"profile"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StorageConfig selects the storage backend and its paths.
type StorageConfig struct {
	Driver         string `yaml:"driver"`
	DatabasePath   string `yaml:"database_path"`
	DSN            string `yaml:"dsn"`
	BleveIndexPath string `yaml:"bleve_index_path"`
}

// NotesConfig holds note store settings.
type NotesConfig struct {
	MirrorLinks *bool  `yaml:"mirror_links"`
	DefaultUser string `yaml:"default_user"`
	SeedDemo    bool   `yaml:"seed_demo"`
}

// MirrorLinksOrDefault returns whether link changes are mirrored onto peers; defaults to true when unset.
func (n *NotesConfig) MirrorLinksOrDefault() bool {
	if n.MirrorLinks != nil {
		return *n.MirrorLinks
	}
	return true
}

// SearchConfig holds search settings.
type SearchConfig struct {
	ResultLimit   int  `yaml:"result_limit"`
	RankedEnabled bool `yaml:"ranked_enabled"`
}

// GraphConfig holds graph layout and drawing settings.
type GraphConfig struct {
	HitRadius          float64 `yaml:"hit_radius"`
	NodeRadius         float64 `yaml:"node_radius"`
	SelectedNodeRadius float64 `yaml:"selected_node_radius"`
	LabelMax           int     `yaml:"label_max"`
	RadiusFactor       float64 `yaml:"radius_factor"`
	DefaultWidth       int     `yaml:"default_width"`
	DefaultHeight      int     `yaml:"default_height"`
}

// PlanConfig holds study plan defaults.
type PlanConfig struct {
	DefaultWeeks        int `yaml:"default_weeks"`
	DefaultHoursPerWeek int `yaml:"default_hours_per_week"`
}

// QuestionsConfig points at the question seed file.
type QuestionsConfig struct {
	SeedPath string `yaml:"seed_path"`
	Watch    bool   `yaml:"watch"`
}

// AIConfig holds settings for the chat, search and generation adapters.
type AIConfig struct {
	Chat          ChatConfig      `yaml:"chat"`
	Search        WebSearchConfig `yaml:"search"`
	Generate      GenerateConfig  `yaml:"generate"`
	RatePerSecond float64         `yaml:"rate_per_second"`
	Burst         int             `yaml:"burst"`
	TimeoutSec    int             `yaml:"timeout_sec"`
}

// Chat providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ChatConfig configures the chat completion backend.
type ChatConfig struct {
	Provider     string  `yaml:"provider"`
	BaseURL      string  `yaml:"base_url"`
	APIKey       string  `yaml:"api_key"`
	Model        string  `yaml:"model"`
	SystemPrompt string  `yaml:"system_prompt"`
	MaxTokens    int     `yaml:"max_tokens"`
	Temperature  float32 `yaml:"temperature"`
}

// WebSearchConfig configures the web research backend.
type WebSearchConfig struct {
	URL        string `yaml:"url"`
	APIKey     string `yaml:"api_key"`
	MaxResults int    `yaml:"max_results"`
	Depth      string `yaml:"depth"`
}

// GenerateConfig configures the text generation backend.
type GenerateConfig struct {
	URL          string  `yaml:"url"`
	APIKey       string  `yaml:"api_key"`
	MaxNewTokens int     `yaml:"max_new_tokens"`
	Temperature  float64 `yaml:"temperature"`
}

// ProfileConfig holds profile and avatar settings.
type ProfileConfig struct {
	AvatarDir      string `yaml:"avatar_dir"`
	MaxAvatarBytes int64  `yaml:"max_avatar_bytes"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	ApplyEnv(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.BleveIndexPath = expandPath(cfg.Storage.BleveIndexPath, configDir)
	cfg.Profile.AvatarDir = expandPath(cfg.Profile.AvatarDir, configDir)
	if cfg.Questions.SeedPath != "" {
		cfg.Questions.SeedPath = expandPath(cfg.Questions.SeedPath, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ApplyEnv fills empty secrets from the environment.
func ApplyEnv(cfg *Config) {
	setFromEnv(&cfg.Storage.DSN, "NOTEGRAPH_DSN")
	switch cfg.AI.Chat.Provider {
	case ProviderGemini:
		setFromEnv(&cfg.AI.Chat.APIKey, "GEMINI_API_KEY")
	default:
		setFromEnv(&cfg.AI.Chat.APIKey, "GROQ_API_KEY")
	}
	setFromEnv(&cfg.AI.Search.APIKey, "TAVILY_API_KEY")
	setFromEnv(&cfg.AI.Generate.APIKey, "HF_API_KEY")
}

func setFromEnv(dst *string, key string) {
	if *dst != "" {
		return
	}
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
