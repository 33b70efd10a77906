package config

import (
	"os"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server" json:"server"`
	Dataset DatasetConfig `mapstructure:"dataset" json:"dataset"`
	LLM     LLMConfig     `mapstructure:"llm" json:"llm"`
	Chat    ChatConfig    `mapstructure:"chat" json:"chat"`
	Session SessionConfig `mapstructure:"session" json:"session"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type DatasetConfig struct {
	Path string `mapstructure:"path" json:"path"`
}

type LLMConfig struct {
	APIKey    string `mapstructure:"api_key" json:"api_key,omitempty"`
	BaseURL   string `mapstructure:"base_url" json:"base_url"`
	Model     string `mapstructure:"model" json:"model"`
	MaxTokens int    `mapstructure:"max_tokens" json:"max_tokens"`
}

type ChatConfig struct {
	// HistoryLimit caps the number of turns kept and forwarded per session.
	// Zero means unbounded.
	HistoryLimit int `mapstructure:"history_limit" json:"history_limit"`
}

type SessionConfig struct {
	Store      string `mapstructure:"store" json:"store"` // "memory" or "sqlite"
	SQLitePath string `mapstructure:"sqlite_path" json:"sqlite_path"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Set defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("dataset.path", "final_sentinel_v2.csv")
	v.SetDefault("llm.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("llm.model", "meta-llama/llama-4-maverick")
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("chat.history_limit", 0)
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.sqlite_path", "sentinel_sessions.db")

	// Read config; a missing file is fine, defaults plus env cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Load environment variables
	loadEnvOverrides(&cfg)

	return &cfg, nil
}

func loadEnvOverrides(cfg *Config) {
	if v := os.Getenv("SENTINEL_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SENTINEL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SENTINEL_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("SENTINEL_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("SENTINEL_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("SENTINEL_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("SENTINEL_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxTokens = n
		}
	}
	if v := os.Getenv("SENTINEL_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chat.HistoryLimit = n
		}
	}
	if v := os.Getenv("SENTINEL_SESSION_STORE"); v != "" {
		cfg.Session.Store = v
	}
	if v := os.Getenv("SENTINEL_SESSION_SQLITE_PATH"); v != "" {
		cfg.Session.SQLitePath = v
	}
}
