package config

const defaultSystemPrompt = "You are a helpful AI assistant specialized in computer science, data structures, algorithms, and programming. Provide clear, educational explanations that help with learning and understanding concepts."

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverSQLite
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/notegraph/data/db/notes.db"
	}
	if cfg.Storage.BleveIndexPath == "" {
		cfg.Storage.BleveIndexPath = "/usr/local/var/notegraph/data/indices/bleve"
	}

	if cfg.Notes.DefaultUser == "" {
		cfg.Notes.DefaultUser = "local"
	}

	if cfg.Search.ResultLimit == 0 {
		cfg.Search.ResultLimit = 8
	}

	if cfg.Graph.HitRadius == 0 {
		cfg.Graph.HitRadius = 14
	}
	if cfg.Graph.NodeRadius == 0 {
		cfg.Graph.NodeRadius = 10
	}
	if cfg.Graph.SelectedNodeRadius == 0 {
		cfg.Graph.SelectedNodeRadius = 14
	}
	if cfg.Graph.LabelMax == 0 {
		cfg.Graph.LabelMax = 15
	}
	if cfg.Graph.RadiusFactor == 0 {
		cfg.Graph.RadiusFactor = 0.25
	}
	if cfg.Graph.DefaultWidth == 0 {
		cfg.Graph.DefaultWidth = 800
	}
	if cfg.Graph.DefaultHeight == 0 {
		cfg.Graph.DefaultHeight = 600
	}

	if cfg.Plan.DefaultWeeks == 0 {
		cfg.Plan.DefaultWeeks = 4
	}
	if cfg.Plan.DefaultHoursPerWeek == 0 {
		cfg.Plan.DefaultHoursPerWeek = 10
	}

	if cfg.AI.Chat.Provider == "" {
		cfg.AI.Chat.Provider = ProviderOpenAI
	}
	if cfg.AI.Chat.Model == "" {
		if cfg.AI.Chat.Provider == ProviderGemini {
			cfg.AI.Chat.Model = "gemini-2.0-flash"
		} else {
			cfg.AI.Chat.Model = "llama3-8b-8192"
		}
	}
	if cfg.AI.Chat.BaseURL == "" && cfg.AI.Chat.Provider == ProviderOpenAI {
		cfg.AI.Chat.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.AI.Chat.SystemPrompt == "" {
		cfg.AI.Chat.SystemPrompt = defaultSystemPrompt
	}
	if cfg.AI.Chat.MaxTokens == 0 {
		cfg.AI.Chat.MaxTokens = 1024
	}
	if cfg.AI.Chat.Temperature == 0 {
		cfg.AI.Chat.Temperature = 0.7
	}
	if cfg.AI.Search.URL == "" {
		cfg.AI.Search.URL = "https://api.tavily.com/search"
	}
	if cfg.AI.Search.MaxResults == 0 {
		cfg.AI.Search.MaxResults = 5
	}
	if cfg.AI.Search.Depth == "" {
		cfg.AI.Search.Depth = "advanced"
	}
	if cfg.AI.Generate.URL == "" {
		cfg.AI.Generate.URL = "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-Instruct-v0.1"
	}
	if cfg.AI.Generate.MaxNewTokens == 0 {
		cfg.AI.Generate.MaxNewTokens = 300
	}
	if cfg.AI.Generate.Temperature == 0 {
		cfg.AI.Generate.Temperature = 0.7
	}
	if cfg.AI.RatePerSecond == 0 {
		cfg.AI.RatePerSecond = 1
	}
	if cfg.AI.Burst == 0 {
		cfg.AI.Burst = 5
	}
	if cfg.AI.TimeoutSec == 0 {
		cfg.AI.TimeoutSec = 60
	}

	if cfg.Profile.AvatarDir == "" {
		cfg.Profile.AvatarDir = "/usr/local/var/notegraph/data/avatars"
	}
	if cfg.Profile.MaxAvatarBytes == 0 {
		cfg.Profile.MaxAvatarBytes = 5 * 1024 * 1024
	}
}
