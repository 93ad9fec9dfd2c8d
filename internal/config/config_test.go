// ABOUTME: Tests for environment-driven configuration loading
// ABOUTME: Covers defaults, overrides, and validation failures

package config

import (
	"strings"
	"testing"
	"time"
)

func clearStudyEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"STUDY_DB_PATH", "OPENAI_API_KEY", "STUDY_CHAT_MODEL", "STUDY_EMBEDDING_MODEL",
		"OPENAI_TIMEOUT", "OPENAI_MAX_RETRIES", "OPENAI_RETRY_DELAY",
		"STUDY_MATCH_THRESHOLD", "STUDY_MATCH_COUNT",
		"STUDY_CHUNK_SIZE", "STUDY_CHUNK_OVERLAP", "STUDY_EMBED_BATCH_SIZE",
		"STUDY_DUE_CARD_LIMIT",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearStudyEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d", cfg.MaxRetries)
	}
	if cfg.MatchThreshold != 0.7 {
		t.Errorf("MatchThreshold = %f", cfg.MatchThreshold)
	}
	if cfg.MatchCount != 5 {
		t.Errorf("MatchCount = %d", cfg.MatchCount)
	}
	if cfg.ChunkSize != 500 || cfg.ChunkOverlap != 50 {
		t.Errorf("chunking defaults = %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.EmbedBatchSize != 20 {
		t.Errorf("EmbedBatchSize = %d", cfg.EmbedBatchSize)
	}
	if cfg.DueCardLimit != 20 {
		t.Errorf("DueCardLimit = %d", cfg.DueCardLimit)
	}
	if !strings.HasSuffix(cfg.DBPath, "study.db") {
		t.Errorf("DBPath = %q, want study.db default", cfg.DBPath)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearStudyEnv(t)
	t.Setenv("STUDY_DB_PATH", "/tmp/override.db")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("STUDY_CHAT_MODEL", "gpt-4o")
	t.Setenv("OPENAI_TIMEOUT", "90s")
	t.Setenv("STUDY_MATCH_THRESHOLD", "0.5")
	t.Setenv("STUDY_MATCH_COUNT", "8")
	t.Setenv("STUDY_CHUNK_SIZE", "300")
	t.Setenv("STUDY_CHUNK_OVERLAP", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DBPath != "/tmp/override.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.OpenAIKey != "sk-test" {
		t.Errorf("OpenAIKey = %q", cfg.OpenAIKey)
	}
	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("ChatModel = %q", cfg.ChatModel)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.MatchThreshold != 0.5 {
		t.Errorf("MatchThreshold = %f", cfg.MatchThreshold)
	}
	if cfg.MatchCount != 8 {
		t.Errorf("MatchCount = %d", cfg.MatchCount)
	}
	if cfg.ChunkSize != 300 || cfg.ChunkOverlap != 30 {
		t.Errorf("chunking = %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	clearStudyEnv(t)
	t.Setenv("STUDY_MATCH_COUNT", "not-a-number")
	t.Setenv("OPENAI_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MatchCount != 5 {
		t.Errorf("MatchCount = %d, want default on parse failure", cfg.MatchCount)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default on parse failure", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			MatchThreshold: 0.7,
			MatchCount:     5,
			MaxRetries:     1,
			ChunkSize:      500,
			ChunkOverlap:   50,
			EmbedBatchSize: 20,
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold above one", func(c *Config) { c.MatchThreshold = 1.5 }},
		{"threshold negative", func(c *Config) { c.MatchThreshold = -0.1 }},
		{"zero match count", func(c *Config) { c.MatchCount = 0 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"excessive retries", func(c *Config) { c.MaxRetries = 11 }},
		{"overlap not below size", func(c *Config) { c.ChunkOverlap = 500 }},
		{"zero batch size", func(c *Config) { c.EmbedBatchSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
