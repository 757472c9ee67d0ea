// Package config loads application settings from an optional TOML file
// and the environment. Environment variables always win so deployments
// can override a checked-in file without editing it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Defaults applied when neither file nor environment provides a value.
const (
	DefaultQdrantURL  = "http://localhost:6333"
	DefaultListenAddr = ":8000"
	DefaultChunkSize  = 600
	DefaultOverlap    = 100
)

// Config holds all runtime settings.
type Config struct {
	// Qdrant is the vector store connection.
	Qdrant QdrantConfig `toml:"qdrant"`

	// OpenAI configures the embedding provider.
	OpenAI OpenAIConfig `toml:"openai"`

	// Groq configures the answer model provider.
	Groq GroqConfig `toml:"groq"`

	// Server configures the HTTP API.
	Server ServerConfig `toml:"server"`

	// Chunking configures the text splitter.
	Chunking ChunkingConfig `toml:"chunking"`

	// DataDir is where local state (answer history, feedback) lives.
	// Defaults to ~/.docqa/data.
	DataDir string `toml:"data_dir"`

	// FeedbackPath is the CSV file feedback is appended to. Defaults
	// to <DataDir>/feedback.csv.
	FeedbackPath string `toml:"feedback_path"`
}

// QdrantConfig is the vector store connection.
type QdrantConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
}

// OpenAIConfig is the embedding provider connection.
type OpenAIConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// GroqConfig is the LLM provider connection.
type GroqConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// ServerConfig is the HTTP API listener.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// ChunkingConfig is the text splitter tuning.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// Load builds the configuration. A .env file in the working directory
// is applied first (without clobbering existing variables), then the
// TOML file at path if it exists, then environment overrides. An empty
// path means ~/.docqa/config.toml.
func Load(path string) (*Config, error) {
	// Missing .env is the common case and not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Qdrant:   QdrantConfig{URL: DefaultQdrantURL},
		Server:   ServerConfig{Addr: DefaultListenAddr},
		Chunking: ChunkingConfig{Size: DefaultChunkSize, Overlap: DefaultOverlap},
	}

	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".docqa", "config.toml")
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if cfg.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DataDir = filepath.Join(home, ".docqa", "data")
		}
	}
	if cfg.FeedbackPath == "" && cfg.DataDir != "" {
		cfg.FeedbackPath = filepath.Join(cfg.DataDir, "feedback.csv")
	}
	if cfg.Chunking.Size <= 0 {
		cfg.Chunking.Size = DefaultChunkSize
	}
	if cfg.Chunking.Overlap < 0 {
		cfg.Chunking.Overlap = DefaultOverlap
	}

	return cfg, nil
}

// applyEnv overlays environment variables onto the config.
func (c *Config) applyEnv() {
	setString(&c.Qdrant.URL, "QDRANT_URL")
	setString(&c.Qdrant.APIKey, "QDRANT_API_KEY")
	setString(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setString(&c.OpenAI.Model, "OPENAI_EMBEDDING_MODEL")
	setString(&c.Groq.APIKey, "GROQ_API_KEY")
	setString(&c.Groq.BaseURL, "GROQ_BASE_URL")
	setString(&c.Groq.Model, "GROQ_MODEL")
	setString(&c.Server.Addr, "DOCQA_ADDR")
	setString(&c.DataDir, "DOCQA_DATA_DIR")
	setString(&c.FeedbackPath, "DOCQA_FEEDBACK_PATH")
	setInt(&c.Chunking.Size, "DOCQA_CHUNK_SIZE")
	setInt(&c.Chunking.Overlap, "DOCQA_CHUNK_OVERLAP")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
