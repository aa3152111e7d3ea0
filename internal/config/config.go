package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// OpenAI
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	OpenAITimeoutSecs int

	// Local data store
	DataPath string

	// Workers
	WorkerCount int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Env:  getEnvOrDefault("ENV", "development"),

		// Missing key is a request-time configuration error, never a
		// startup crash: the journal and progress pages must keep
		// working without AI features.
		OpenAIAPIKey:      getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnvOrDefault("OPENAI_MODEL", "gpt-4.1-mini"),
		OpenAIBaseURL:     getEnvOrDefault("OPENAI_BASE_URL", ""),
		OpenAITimeoutSecs: getEnvAsIntOrDefault("OPENAI_TIMEOUT_SECONDS", 30),

		DataPath:    getEnvOrDefault("DATA_PATH", "./data"),
		WorkerCount: getEnvAsIntOrDefault("WORKER_COUNT", 2),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
