package config

import (
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port        int
	DataDir     string
	ProjectName string

	// Documentation generation.
	AnthropicModel string
	DocMaxTokens   int64

	CORSOrigins []string
}

// Load reads configuration from the environment (.env is auto-loaded) and
// applies defaults for everything optional.
func Load() Config {
	cfg := Config{
		Port:           envInt("PORT", 8080),
		DataDir:        envString("DATA_DIR", "data"),
		ProjectName:    envString("PROJECT_NAME", "DataLens"),
		AnthropicModel: envString("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
		DocMaxTokens:   int64(envInt("DOC_MAX_TOKENS", 8192)),
		CORSOrigins:    []string{envString("CORS_ORIGIN", "*")},
	}
	return cfg
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
