package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("sample rate = %d, want 16000", cfg.Audio.SampleRate)
	}
	if cfg.Audio.SilenceThreshold != 0.01 {
		t.Errorf("silence threshold = %v, want 0.01", cfg.Audio.SilenceThreshold)
	}
	if cfg.Dialog.ConfidenceThreshold != 0.6 {
		t.Errorf("confidence threshold = %v, want 0.6", cfg.Dialog.ConfidenceThreshold)
	}
	if cfg.Dialog.MaxRetries != 2 {
		t.Errorf("max retries = %d, want 2", cfg.Dialog.MaxRetries)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis addr = %q, want empty (memory store)", cfg.Redis.Addr)
	}
	if cfg.Redis.SessionTTL.Std() != 24*time.Hour {
		t.Errorf("session ttl = %v, want 24h", cfg.Redis.SessionTTL)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dialog.MaxRetries != 2 {
		t.Errorf("max retries = %d, want default 2", cfg.Dialog.MaxRetries)
	}
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("sample rate = %d, want default 16000", cfg.Audio.SampleRate)
	}
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
audio:
  silence_threshold: 0.02
dialog:
  max_retries: 5
  driver_id: driver_999
redis:
  addr: localhost:6379
  session_ttl: 1h
voice:
  nudge_prompts:
    en:
      - "Hello?"
      - "Still there?"
keywords:
  agent_words:
    fr:
      - "agent humain"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Audio.SilenceThreshold != 0.02 {
		t.Errorf("silence threshold = %v, want 0.02", cfg.Audio.SilenceThreshold)
	}
	// Fields the file does not mention keep their defaults.
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("sample rate = %d, want default 16000", cfg.Audio.SampleRate)
	}
	if cfg.Dialog.MaxRetries != 5 {
		t.Errorf("max retries = %d, want 5", cfg.Dialog.MaxRetries)
	}
	if cfg.Dialog.DriverID != "driver_999" {
		t.Errorf("driver id = %q, want driver_999", cfg.Dialog.DriverID)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("redis addr = %q, want localhost:6379", cfg.Redis.Addr)
	}
	if cfg.Redis.SessionTTL.Std() != time.Hour {
		t.Errorf("session ttl = %v, want 1h", cfg.Redis.SessionTTL)
	}
	if got := cfg.Voice.NudgePrompts["en"]; len(got) != 2 || got[0] != "Hello?" {
		t.Errorf("nudge prompts = %v", got)
	}
	if got := cfg.Keywords.AgentWords["fr"]; len(got) != 1 || got[0] != "agent humain" {
		t.Errorf("agent words = %v", got)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("audio: [not a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error for malformed YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-123")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("REDIS_PASSWORD", "hunter2")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-test-123" {
		t.Errorf("api key = %q, want env value", cfg.OpenAI.APIKey)
	}
	if cfg.Redis.Addr != "redis.internal:6379" {
		t.Errorf("redis addr = %q, want env value", cfg.Redis.Addr)
	}
	if cfg.Redis.Password != "hunter2" {
		t.Errorf("redis password = %q, want env value", cfg.Redis.Password)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("openai:\n  api_key: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPENAI_API_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAI.APIKey != "from-env" {
		t.Errorf("api key = %q, want from-env", cfg.OpenAI.APIKey)
	}
}
