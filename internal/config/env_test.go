package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	content := `# Test env file
LLM_MODEL=qwen3:4b
LLM_BASE_URL="http://localhost:11434/v1"
LLM_API_KEY='secret'
# Comment
OCR_BASE_URL=http://localhost:8000
`
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"LLM_MODEL", "LLM_BASE_URL", "LLM_API_KEY", "OCR_BASE_URL"} {
		os.Unsetenv(key)
		defer os.Unsetenv(key)
	}

	if err := loadEnvFile(envFile); err != nil {
		t.Fatalf("loadEnvFile failed: %v", err)
	}

	if os.Getenv("LLM_MODEL") != "qwen3:4b" {
		t.Errorf("LLM_MODEL not set correctly: %s", os.Getenv("LLM_MODEL"))
	}
	if os.Getenv("LLM_BASE_URL") != "http://localhost:11434/v1" {
		t.Errorf("LLM_BASE_URL not unquoted correctly: %s", os.Getenv("LLM_BASE_URL"))
	}
	if os.Getenv("LLM_API_KEY") != "secret" {
		t.Errorf("LLM_API_KEY not unquoted correctly: %s", os.Getenv("LLM_API_KEY"))
	}
	if os.Getenv("OCR_BASE_URL") != "http://localhost:8000" {
		t.Errorf("OCR_BASE_URL not set correctly: %s", os.Getenv("OCR_BASE_URL"))
	}
}

func TestLoadEnvFile_DoesNotOverride(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	content := `EXISTING_KEY=new_value`
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	os.Setenv("EXISTING_KEY", "original_value")
	defer os.Unsetenv("EXISTING_KEY")

	if err := loadEnvFile(envFile); err != nil {
		t.Fatalf("loadEnvFile failed: %v", err)
	}

	if os.Getenv("EXISTING_KEY") != "original_value" {
		t.Errorf("expected existing value to be preserved, got %s", os.Getenv("EXISTING_KEY"))
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"LLM_MODEL", "LLM_BASE_URL", "LLM_API_KEY", "OCR_BASE_URL", "EXTRACTOR_SERVER_PORT"} {
		os.Unsetenv(key)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8001 {
		t.Errorf("expected default port 8001, got %d", cfg.Server.Port)
	}
	if cfg.OCR.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("unexpected OCR base URL: %s", cfg.OCR.BaseURL)
	}
	if !cfg.HeuristicOnly() {
		t.Error("expected HeuristicOnly with no API key")
	}
}

func TestLoadPrefixedEnvOverrides(t *testing.T) {
	for _, key := range []string{"LLM_MODEL", "LLM_BASE_URL", "LLM_API_KEY", "OCR_BASE_URL"} {
		os.Unsetenv(key)
	}
	os.Setenv("EXTRACTOR_LLM_API_KEY", "prefixed-key")
	os.Setenv("EXTRACTOR_LLM_MODEL", "prefixed-model")
	os.Setenv("EXTRACTOR_OCR_TIMEOUT", "45")
	defer func() {
		os.Unsetenv("EXTRACTOR_LLM_API_KEY")
		os.Unsetenv("EXTRACTOR_LLM_MODEL")
		os.Unsetenv("EXTRACTOR_OCR_TIMEOUT")
	}()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LLM.APIKey != "prefixed-key" {
		t.Errorf("expected EXTRACTOR_LLM_API_KEY to be honored, got %q", cfg.LLM.APIKey)
	}
	if cfg.HeuristicOnly() {
		t.Error("a key set via the prefixed form must disable heuristic-only mode")
	}
	if cfg.LLM.Model != "prefixed-model" {
		t.Errorf("expected EXTRACTOR_LLM_MODEL to be honored, got %q", cfg.LLM.Model)
	}
	if cfg.OCR.Timeout != 45 {
		t.Errorf("expected EXTRACTOR_OCR_TIMEOUT to be honored, got %d", cfg.OCR.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	os.Setenv("LLM_API_KEY", "test-key")
	os.Setenv("OCR_BASE_URL", "http://ocr.internal:9000")
	os.Setenv("EXTRACTOR_SERVER_PORT", "9001")
	defer func() {
		os.Unsetenv("LLM_API_KEY")
		os.Unsetenv("OCR_BASE_URL")
		os.Unsetenv("EXTRACTOR_SERVER_PORT")
	}()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LLM.APIKey != "test-key" {
		t.Errorf("expected API key override, got %q", cfg.LLM.APIKey)
	}
	if cfg.OCR.BaseURL != "http://ocr.internal:9000" {
		t.Errorf("expected OCR base URL override, got %q", cfg.OCR.BaseURL)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("expected port override 9001, got %d", cfg.Server.Port)
	}
	if cfg.HeuristicOnly() {
		t.Error("expected HeuristicOnly to be false with API key set")
	}
}
