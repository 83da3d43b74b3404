package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	OTel   OTelConfig
	LLM    LLMConfig
	Relay  RelayConfig
	Client ClientConfig
	Env    string
	Port   string
	NodeID int64
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type LLMConfig struct {
	Provider string // "openai" or "anthropic"
	APIKey   string
	BaseURL  string // Optional: for custom endpoints
	Model    string
}

// RelayConfig holds the sampling parameters sent with every provider call.
type RelayConfig struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

type ClientConfig struct {
	RelayURL string
}

type ServiceType string

const (
	ServiceTypeServer ServiceType = "server"
	ServiceTypeChat   ServiceType = "chat"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Load loads configuration from environment variables.
// In development, it loads from service-specific .env files:
//   - .env.server for the relay server
//   - .env.chat for the terminal client
//
// Falls back to .env if service-specific file doesn't exist.
// A missing provider credential is not an error: the relay serves the fallback reply.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("RELAY_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	provider := getEnv("LLM_PROVIDER", ProviderOpenAI)

	cfg := Config{
		Env:    getEnv("RELAY_ENV", "development"),
		Port:   getEnv("PORT", "8080"),
		NodeID: getEnvInt64("NODE_ID", 1),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "deepti-relay"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		LLM: loadLLMConfig(provider),
		Relay: RelayConfig{
			MaxTokens:   getEnvInt("RELAY_MAX_TOKENS", 700),
			Temperature: getEnvFloat("RELAY_TEMPERATURE", 0.75),
			TopP:        getEnvFloat("RELAY_TOP_P", 0.95),
		},
		Client: ClientConfig{
			RelayURL: getEnv("RELAY_URL", "http://localhost:8080"),
		},
	}

	if cfg.LLM.Provider != ProviderOpenAI && cfg.LLM.Provider != ProviderAnthropic {
		return Config{}, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLM.Provider)
	}
	if cfg.Relay.MaxTokens <= 0 {
		return Config{}, fmt.Errorf("RELAY_MAX_TOKENS must be positive, got %d", cfg.Relay.MaxTokens)
	}

	return cfg, nil
}

func loadLLMConfig(provider string) LLMConfig {
	if provider == ProviderAnthropic {
		return LLMConfig{
			Provider: provider,
			APIKey:   getEnv("ANTHROPIC_API_KEY", ""),
			BaseURL:  getEnv("ANTHROPIC_BASE_URL", ""),
			Model:    getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
		}
	}
	return LLMConfig{
		Provider: provider,
		APIKey:   getEnv("OPENAI_API_KEY", ""),
		BaseURL:  getEnv("OPENAI_BASE_URL", ""),
		Model:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}
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

func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
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

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
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
