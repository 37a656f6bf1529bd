// Package config handles steploop configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./config.yaml, ~/.config/steploop/config.yaml, /etc/steploop/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"config.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "steploop", "config.yaml"))
	}

	paths = append(paths, "/etc/steploop/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns the path found, or an error if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds all steploop configuration.
type Config struct {
	Model     ModelConfig     `yaml:"model"`
	Weather   WeatherConfig   `yaml:"weather"`
	ShellExec ShellExecConfig `yaml:"shell_exec"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	MaxRounds int             `yaml:"max_rounds"`
	DataDir   string          `yaml:"data_dir"`
	LogLevel  string          `yaml:"log_level"`
}

// ModelConfig defines which provider and model answer queries.
type ModelConfig struct {
	Provider string `yaml:"provider"` // gemini, openai, anthropic
	Name     string `yaml:"name"`
	APIKey   string `yaml:"api_key"`
}

// WeatherConfig defines the weather lookup endpoint.
type WeatherConfig struct {
	// Endpoint is a wttr.in-compatible base URL.
	Endpoint string `yaml:"endpoint"`
}

// ShellExecConfig defines shell execution capabilities.
type ShellExecConfig struct {
	// Restricted enables command filtering. Off by default to match the
	// permissive interactive use case.
	Restricted bool `yaml:"restricted"`
	// WorkingDir sets the default working directory for commands.
	WorkingDir string `yaml:"working_dir"`
	// DeniedPatterns are command patterns to block (e.g., "rm -rf /").
	DeniedPatterns []string `yaml:"denied_patterns"`
	// AllowedPrefixes limits commands to those starting with these prefixes.
	// Empty means all commands are allowed (subject to denied patterns).
	AllowedPrefixes []string `yaml:"allowed_prefixes"`
	// DefaultTimeoutSec is the command timeout in seconds (default 30).
	DefaultTimeoutSec int `yaml:"default_timeout_sec"`
}

// WorkspaceConfig defines the root directory for file operations.
type WorkspaceConfig struct {
	// Path is the root directory for file tool paths. When ShellExec is
	// restricted, file operations are confined under it.
	Path string `yaml:"path"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Provider: "gemini",
		},
		Weather: WeatherConfig{
			Endpoint: "https://wttr.in",
		},
		ShellExec: ShellExecConfig{
			DefaultTimeoutSec: 30,
		},
		MaxRounds: 20,
	}
}
