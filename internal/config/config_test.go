package config

import (
	"os"
	"testing"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	os.Setenv("HTTP_ADDRESS", "")
	os.Setenv("GEMINI_MODEL_ID", "")
	os.Setenv("QUESTIONS_FILE", "")
	os.Setenv("PISTON_API_URL", "")
	cfg := Load()
	if cfg.HTTPAddress == "" {
		t.Fatalf("expected default http address")
	}
	if cfg.GeminiModelID == "" {
		t.Fatalf("expected default gemini model id")
	}
	if cfg.QuestionsFile != "questions.json" {
		t.Fatalf("expected default questions file, got %q", cfg.QuestionsFile)
	}
	if cfg.PistonURL == "" {
		t.Fatalf("expected default piston url")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("HTTP_ADDRESS", ":9999")
	os.Setenv("QUESTIONS_FILE", "bank.json")
	defer func() {
		os.Unsetenv("HTTP_ADDRESS")
		os.Unsetenv("QUESTIONS_FILE")
	}()
	cfg := Load()
	if cfg.HTTPAddress != ":9999" {
		t.Fatalf("expected :9999, got %q", cfg.HTTPAddress)
	}
	if cfg.QuestionsFile != "bank.json" {
		t.Fatalf("expected bank.json, got %q", cfg.QuestionsFile)
	}
}
