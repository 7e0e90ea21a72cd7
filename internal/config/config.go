// Package config loads swapvoice configuration from an optional YAML file
// with environment-variable overrides for secrets. Every field has a
// sensible default; a missing file means defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Audio    AudioConfig    `yaml:"audio"`
	Dialog   DialogConfig   `yaml:"dialog"`
	Voice    VoiceConfig    `yaml:"voice"`
	Redis    RedisConfig    `yaml:"redis"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Keywords KeywordsConfig `yaml:"keywords"`
}

// AudioConfig holds capture and VAD parameters.
type AudioConfig struct {
	SampleRate       int     `yaml:"sample_rate"`
	SilenceThreshold float64 `yaml:"silence_threshold"`
}

// DialogConfig holds conversation state machine tunables.
type DialogConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	MaxRetries          int     `yaml:"max_retries"`
	DriverID            string  `yaml:"driver_id"`
}

// VoiceConfig holds voice pipeline prompt overrides.
type VoiceConfig struct {
	NudgePrompts  map[string][]string `yaml:"nudge_prompts,omitempty"`
	FinalWarnings map[string]string   `yaml:"final_warnings,omitempty"`
}

// Duration accepts "24h" style values in YAML.
type Duration time.Duration

// UnmarshalYAML parses a time.ParseDuration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration in "24h0m0s" form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// RedisConfig enables the Redis session store when Addr is set; empty
// means the in-memory store.
type RedisConfig struct {
	Addr       string   `yaml:"addr"`
	Password   string   `yaml:"password,omitempty"`
	DB         int      `yaml:"db"`
	SessionTTL Duration `yaml:"session_ttl"`
}

// OpenAIConfig holds credentials for the hosted providers. An empty key
// selects the keyword NLU and phrasebook-only responses.
type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model,omitempty"`
	Voice  string `yaml:"voice,omitempty"`
}

// KeywordsConfig overrides the built-in classifier keyword tables.
// Entries are keyed by language bucket so new languages are additive.
type KeywordsConfig struct {
	Greetings     map[string][]string `yaml:"greetings,omitempty"`
	NeedWords     map[string][]string `yaml:"need_words,omitempty"`
	QuestionWords map[string][]string `yaml:"question_words,omitempty"`
	HelpWords     map[string][]string `yaml:"help_words,omitempty"`
	AgentWords    map[string][]string `yaml:"agent_words,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate:       16000,
			SilenceThreshold: 0.01,
		},
		Dialog: DialogConfig{
			ConfidenceThreshold: 0.6,
			MaxRetries:          2,
			DriverID:            "driver_123",
		},
		Redis: RedisConfig{
			SessionTTL: Duration(24 * time.Hour),
		},
	}
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. An empty path or missing file yields defaults
// plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %q: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}
