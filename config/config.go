package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL        string
	SocketURL      string
	RequestTimeout time.Duration
	CredentialFile string
	Log            LogConfig
}

type LogConfig struct {
	Level  string
	Format string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		BaseURL:        getEnv("FANT_API_URL", "http://localhost:8080/api"),
		SocketURL:      getEnv("FANT_WS_URL", "ws://localhost:8080/ws"),
		RequestTimeout: time.Duration(getEnvInt("FANT_TIMEOUT_SECONDS", 30)) * time.Second,
		CredentialFile: getEnv("FANT_CREDENTIALS", defaultCredentialFile()),
		Log: LogConfig{
			Level:  getEnv("FANT_LOG_LEVEL", "info"),
			Format: getEnv("FANT_LOG_FORMAT", "console"),
		},
	}
}

func defaultCredentialFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".fant-credentials.json"
	}
	return filepath.Join(dir, "fant", "credentials.json")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
