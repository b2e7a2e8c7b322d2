package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the application configuration
type Config struct {
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	Renderer   RendererConfig   `yaml:"renderer"`
	Processing ProcessingConfig `yaml:"processing"`
	Server     ServerConfig     `yaml:"server"`
}

// AnthropicConfig represents Anthropic API configuration
type AnthropicConfig struct {
	APIKey         string  `yaml:"api_key"`
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
}

// RendererConfig represents the PlantUML server configuration
type RendererConfig struct {
	Enabled        bool   `yaml:"enabled"`
	ServerURL      string `yaml:"server_url"`
	Format         string `yaml:"format"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ProcessingConfig represents processing configuration
type ProcessingConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// APIKeyEnv is consulted when the config file leaves the API key empty
const APIKeyEnv = "ANTHROPIC_API_KEY"

// SupportedFormats lists the image formats the PlantUML server can produce
var SupportedFormats = []string{"png", "svg", "txt"}

// Default returns a configuration with every field but the API key filled in
func Default() *Config {
	return &Config{
		Anthropic: AnthropicConfig{
			BaseURL:        "https://api.anthropic.com",
			Model:          "claude-3-7-sonnet-20250219",
			TimeoutSeconds: 120,
			MaxTokens:      4096,
			Temperature:    0,
		},
		Renderer: RendererConfig{
			Enabled:        true,
			ServerURL:      "http://www.plantuml.com/plantuml",
			Format:         "png",
			TimeoutSeconds: 60,
		},
		Processing: ProcessingConfig{
			OutputDir: "output",
		},
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
	}
}

// LoadConfig loads configuration from a YAML file.
// Fields missing from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Anthropic.APIKey == "" {
		config.Anthropic.APIKey = os.Getenv(APIKeyEnv)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// SaveConfig writes the configuration as YAML
func SaveConfig(config *Config, configPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the settings every command relies on. The API key is
// checked separately by ValidateAnthropic since rendering and the agile
// diagram never call the model.
func (c *Config) Validate() error {
	if c.Anthropic.Model == "" {
		return fmt.Errorf("anthropic model is required")
	}

	if c.Anthropic.TimeoutSeconds <= 0 {
		return fmt.Errorf("anthropic timeout must be positive")
	}

	if c.Anthropic.MaxTokens <= 0 {
		return fmt.Errorf("anthropic max_tokens must be positive")
	}

	if c.Renderer.Enabled {
		if c.Renderer.ServerURL == "" {
			return fmt.Errorf("renderer server URL is required when rendering is enabled")
		}
		if !supportedFormat(c.Renderer.Format) {
			return fmt.Errorf("unsupported renderer format %q", c.Renderer.Format)
		}
		if c.Renderer.TimeoutSeconds <= 0 {
			return fmt.Errorf("renderer timeout must be positive")
		}
	}

	if c.Processing.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}

	return nil
}

// ValidateAnthropic checks that the model can be called
func (c *Config) ValidateAnthropic() error {
	if c.Anthropic.APIKey == "" {
		return fmt.Errorf("anthropic API key is required (set api_key or %s)", APIKeyEnv)
	}
	return nil
}

func supportedFormat(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}
