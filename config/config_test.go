package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindConfig_Explicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	os.WriteFile(path, []byte("model:\n  provider: gemini\n"), 0600)

	got, err := FindConfig(path)
	if err != nil {
		t.Fatalf("FindConfig(%q) error: %v", path, err)
	}
	if got != path {
		t.Errorf("FindConfig(%q) = %q, want %q", path, got, path)
	}
}

func TestFindConfig_ExplicitMissing(t *testing.T) {
	_, err := FindConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("FindConfig with missing explicit path should error")
	}
}

func TestFindConfig_CWD(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("model:\n  provider: gemini\n"), 0600)

	orig, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(orig)

	got, err := FindConfig("")
	if err != nil {
		t.Fatalf("FindConfig(\"\") error: %v", err)
	}
	if got != "config.yaml" {
		t.Errorf("FindConfig(\"\") = %q, want %q", got, "config.yaml")
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("model:\n  api_key: ${STEPLOOP_TEST_KEY}\n"), 0600)
	os.Setenv("STEPLOOP_TEST_KEY", "secret123")
	defer os.Unsetenv("STEPLOOP_TEST_KEY")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model.APIKey != "secret123" {
		t.Errorf("api_key = %q, want %q", cfg.Model.APIKey, "secret123")
	}
}

func TestLoad_DefaultsPreserved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("model:\n  provider: openai\n  name: gpt-4o-mini\n"), 0600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model.Provider != "openai" {
		t.Errorf("provider = %q, want openai", cfg.Model.Provider)
	}
	if cfg.Weather.Endpoint != "https://wttr.in" {
		t.Errorf("weather endpoint default lost: %q", cfg.Weather.Endpoint)
	}
	if cfg.MaxRounds != 20 {
		t.Errorf("max_rounds default lost: %d", cfg.MaxRounds)
	}
}

func TestLoad_ShellExec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte(`
shell_exec:
  restricted: true
  denied_patterns:
    - "rm -rf"
  allowed_prefixes:
    - "go "
  default_timeout_sec: 5
workspace:
  path: /tmp/agent
`), 0600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.ShellExec.Restricted {
		t.Error("expected restricted shell exec")
	}
	if len(cfg.ShellExec.DeniedPatterns) != 1 || cfg.ShellExec.DeniedPatterns[0] != "rm -rf" {
		t.Errorf("unexpected denied patterns: %v", cfg.ShellExec.DeniedPatterns)
	}
	if cfg.ShellExec.DefaultTimeoutSec != 5 {
		t.Errorf("unexpected timeout: %d", cfg.ShellExec.DefaultTimeoutSec)
	}
	if cfg.Workspace.Path != "/tmp/agent" {
		t.Errorf("unexpected workspace path: %q", cfg.Workspace.Path)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"info", false},
		{"DEBUG", false},
		{" warn ", false},
		{"warning", false},
		{"error", false},
		{"verbose", true},
	}
	for _, tc := range cases {
		_, err := ParseLogLevel(tc.in)
		if tc.wantErr && err == nil {
			t.Errorf("ParseLogLevel(%q): expected error", tc.in)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("ParseLogLevel(%q): %v", tc.in, err)
		}
	}
}
