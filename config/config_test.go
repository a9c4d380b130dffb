package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.BaseURL != "http://localhost:8080/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.SocketURL != "ws://localhost:8080/ws" {
		t.Errorf("SocketURL = %q", cfg.SocketURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.CredentialFile == "" {
		t.Error("CredentialFile empty")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("FANT_API_URL", "https://fant.example.com/api")
	t.Setenv("FANT_WS_URL", "wss://fant.example.com/ws")
	t.Setenv("FANT_TIMEOUT_SECONDS", "5")
	t.Setenv("FANT_LOG_LEVEL", "debug")

	cfg := LoadConfig()
	if cfg.BaseURL != "https://fant.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.SocketURL != "wss://fant.example.com/ws" {
		t.Errorf("SocketURL = %q", cfg.SocketURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}
