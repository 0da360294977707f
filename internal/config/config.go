// Package config loads configuration from two layers, the same split the
// rest of the service expects: environment variables (server, redis, log)
// and config.yaml (assistant behavior tuning).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"console"`
	Output string `envconfig:"LOG_OUTPUT" default:"stdout"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `envconfig:"SERVER_ADDR" default:":8080"`
}

// RedisConfig enables the Redis-backed chat log when URL is set; otherwise
// the in-memory log is used.
type RedisConfig struct {
	URL        string `envconfig:"REDIS_URL" default:""`
	TTLSeconds int    `envconfig:"REDIS_TTL" default:"3600"`
}

// Config is the environment-derived configuration.
type Config struct {
	Log    LogConfig
	Server ServerConfig
	Redis  RedisConfig

	// Persona the server boots into; the API can switch it at runtime.
	StartPersona string `envconfig:"START_PERSONA" default:"new"`
}

// Load processes environment variables into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}
	return &cfg, nil
}

// TTL returns the chat log expiry as a duration.
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// AssistantConfig tunes the scripted assistant: render delays, coupon odds
// and the funding wallet shown in optional top-up prompts.
type AssistantConfig struct {
	TypingDelayMS        int     `yaml:"typing_delay_ms"`
	SearchDelayMS        int     `yaml:"search_delay_ms"`
	ConfirmDelayMS       int     `yaml:"confirm_delay_ms"`
	ImageAnalysisDelayMS int     `yaml:"image_analysis_delay_ms"`
	CouponProbability    float64 `yaml:"coupon_probability"`
	WalletAddress        string  `yaml:"wallet_address"`
}

type yamlConfig struct {
	Assistant AssistantConfig `yaml:"assistant"`
}

// DefaultAssistant mirrors the original prototype's hardcoded timings.
func DefaultAssistant() AssistantConfig {
	return AssistantConfig{
		TypingDelayMS:        1500,
		SearchDelayMS:        2000,
		ConfirmDelayMS:       2000,
		ImageAnalysisDelayMS: 3000,
		CouponProbability:    0.3,
		WalletAddress:        "0x742d35Cc6644C45532F6c8C1B96d4d67C2bCcE4F",
	}
}

// LoadAssistant reads assistant tuning from a YAML file. A missing file is
// not an error; defaults are returned instead.
func LoadAssistant(path string) (AssistantConfig, error) {
	out := DefaultAssistant()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return out, fmt.Errorf("error reading config file: %w", err)
	}

	var parsed yamlConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return out, fmt.Errorf("error parsing YAML: %w", err)
	}

	a := parsed.Assistant
	if a.TypingDelayMS > 0 {
		out.TypingDelayMS = a.TypingDelayMS
	}
	if a.SearchDelayMS > 0 {
		out.SearchDelayMS = a.SearchDelayMS
	}
	if a.ConfirmDelayMS > 0 {
		out.ConfirmDelayMS = a.ConfirmDelayMS
	}
	if a.ImageAnalysisDelayMS > 0 {
		out.ImageAnalysisDelayMS = a.ImageAnalysisDelayMS
	}
	if a.CouponProbability > 0 {
		out.CouponProbability = a.CouponProbability
	}
	if a.WalletAddress != "" {
		out.WalletAddress = a.WalletAddress
	}
	return out, nil
}
