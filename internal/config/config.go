// ABOUTME: Centralized configuration for the study core
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all settings for the study system.
type Config struct {
	// Storage settings
	DBPath string

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Retrieval settings
	MatchThreshold float64
	MatchCount     int

	// Ingestion settings
	ChunkSize      int
	ChunkOverlap   int
	EmbedBatchSize int

	// Study settings
	DueCardLimit int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:         getEnv("STUDY_DB_PATH", DefaultDBPath()),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("STUDY_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("STUDY_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 1),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		MatchThreshold: getEnvFloat("STUDY_MATCH_THRESHOLD", 0.7),
		MatchCount:     getEnvInt("STUDY_MATCH_COUNT", 5),
		ChunkSize:      getEnvInt("STUDY_CHUNK_SIZE", 500),
		ChunkOverlap:   getEnvInt("STUDY_CHUNK_OVERLAP", 50),
		EmbedBatchSize: getEnvInt("STUDY_EMBED_BATCH_SIZE", 20),
		DueCardLimit:   getEnvInt("STUDY_DUE_CARD_LIMIT", 20),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration ranges.
func (c *Config) Validate() error {
	if c.MatchThreshold < 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("STUDY_MATCH_THRESHOLD must be 0-1, got %f", c.MatchThreshold)
	}
	if c.MatchCount <= 0 {
		return fmt.Errorf("STUDY_MATCH_COUNT must be positive, got %d", c.MatchCount)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("STUDY_CHUNK_OVERLAP (%d) must be smaller than STUDY_CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.EmbedBatchSize <= 0 {
		return fmt.Errorf("STUDY_EMBED_BATCH_SIZE must be positive, got %d", c.EmbedBatchSize)
	}
	return nil
}

// DefaultDBPath returns the default database location following the XDG spec.
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".local", "share", "study", "study.db")
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "study", "study.db")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
