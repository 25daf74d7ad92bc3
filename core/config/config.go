package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Bedrock   BedrockConfig
	Inference InferenceConfig
	Session   SessionConfig
	OTel      OTelConfig
	Env       string
	Port      string
}

type BedrockConfig struct {
	Region      string
	ModelID     string
	UseConverse bool // dedicated system field vs prefixing the first user turn
	Fake        bool // bypass the provider, serve canned responses
}

type InferenceConfig struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

type SessionConfig struct {
	Backend  string // "memory" or "redis"
	RedisURL string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Load loads configuration from environment variables.
// In development it also reads a repo-root .env file.
func Load() (Config, error) {
	if getEnv("PLANNER_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env:  getEnv("PLANNER_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		Bedrock: BedrockConfig{
			// BEDROCK_REGION wins over the ambient AWS_REGION when both are set.
			Region:      getEnv("BEDROCK_REGION", getEnv("AWS_REGION", "eu-north-1")),
			ModelID:     getEnv("BEDROCK_MODEL_ID", "eu.amazon.nova-pro-v1:0"),
			UseConverse: getEnvBool("PLANNER_USE_CONVERSE", true),
			Fake:        getEnvBool("PLANNER_FAKE", false),
		},
		Inference: InferenceConfig{
			Temperature: getEnvFloat("PLANNER_TEMPERATURE", 0.2),
			TopP:        getEnvFloat("PLANNER_TOP_P", 0.9),
			MaxTokens:   getEnvInt("PLANNER_MAX_TOKENS", 4096),
		},
		Session: SessionConfig{
			Backend:  getEnv("SESSION_STORE", SessionBackendMemory),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "planner"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
	}

	if cfg.Bedrock.ModelID == "" {
		return Config{}, fmt.Errorf("BEDROCK_MODEL_ID must not be empty")
	}

	switch cfg.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return Config{}, fmt.Errorf("SESSION_STORE must be %q or %q, got %q",
			SessionBackendMemory, SessionBackendRedis, cfg.Session.Backend)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
