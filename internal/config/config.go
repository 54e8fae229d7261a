package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/Nydaym/mineru-extractor/internal/errors"
)

// Config holds all configuration for the extraction service
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	OCR    OCRConfig    `mapstructure:"ocr"`
	LLM    LLMConfig    `mapstructure:"llm"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Address      string `mapstructure:"address"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// OCRConfig holds settings for the upstream OCR service
type OCRConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

// LLMConfig holds language model settings. An empty APIKey selects the
// heuristic fallback path instead of failing validation.
type LLMConfig struct {
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Timeout     int     `mapstructure:"timeout"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// Load loads configuration from file, env, and defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	// Environment variables (EXTRACTOR_SERVER_PORT, EXTRACTOR_LLM_API_KEY, etc.)
	v.SetEnvPrefix("EXTRACTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	loadEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8001)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)

	// OCR defaults (MinerU running locally)
	v.SetDefault("ocr.base_url", "http://127.0.0.1:8000")
	v.SetDefault("ocr.timeout", 30)

	// LLM defaults (local Ollama-compatible endpoint). The api_key default
	// must be declared even though it is empty: AutomaticEnv only resolves
	// keys viper already knows, and without it EXTRACTOR_LLM_API_KEY would
	// be dropped.
	v.SetDefault("llm.model", "qwen3:4b-instruct-2507-fp16")
	v.SetDefault("llm.base_url", "http://0.0.0.0:11434/v1")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout", 60)
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.temperature", 0.0)
}

// loadEnvOverrides applies the short env names the service has always
// honored (LLM_MODEL, LLM_BASE_URL, LLM_API_KEY, OCR_BASE_URL)
func loadEnvOverrides(cfg *Config) {
	cfg.LLM.Model = GetEnvDefault("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.BaseURL = GetEnvDefault("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = GetEnvDefault("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.OCR.BaseURL = GetEnvDefault("OCR_BASE_URL", cfg.OCR.BaseURL)

	if port := os.Getenv("EXTRACTOR_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "CONFIG_001",
			fmt.Sprintf("server.port out of range: %d", cfg.Server.Port))
	}
	if cfg.OCR.BaseURL == "" {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "CONFIG_001", "ocr.base_url is required")
	}
	if cfg.LLM.BaseURL == "" {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "CONFIG_001", "llm.base_url is required")
	}
	// An empty llm.api_key is valid: the service degrades to heuristic
	// extraction when no model is reachable.
	return nil
}

// HeuristicOnly reports whether the service should skip the LLM entirely
func (c *Config) HeuristicOnly() bool {
	return c.LLM.APIKey == ""
}
