package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackzampolin/primer/internal/prompt"
	"github.com/jackzampolin/primer/internal/providers"
)

// Config holds primer configuration.
// Stored at: ~/.primer/config.yaml (or ./config.yaml)
type Config struct {
	Server   ServerCfg     `mapstructure:"server" yaml:"server"`
	OpenAI   OpenAICfg     `mapstructure:"openai" yaml:"openai"`
	Engine   prompt.Config `mapstructure:"engine" yaml:"engine"`
	UI       UIConfig      `mapstructure:"ui" yaml:"ui"`
	Frontend FrontendCfg   `mapstructure:"frontend" yaml:"frontend"`
	LLMCalls LLMCallsCfg   `mapstructure:"llmcalls" yaml:"llmcalls"`

	// Examples are added to the store, in order, each time the server starts.
	Examples []ExampleCfg `mapstructure:"examples" yaml:"examples,omitempty"`
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// OpenAICfg configures the completion client.
type OpenAICfg struct {
	APIKey         string `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries" yaml:"max_retries"`
}

// UIConfig holds the labels the front end renders. No behavior hangs off it.
type UIConfig struct {
	Description     string `mapstructure:"description" yaml:"description" json:"description"`
	ButtonText      string `mapstructure:"button_text" yaml:"button_text" json:"button_text"`
	Placeholder     string `mapstructure:"placeholder" yaml:"placeholder" json:"placeholder"`
	ShowExampleForm bool   `mapstructure:"show_example_form" yaml:"show_example_form" json:"show_example_form"`
}

// FrontendCfg configures the optional front-end dev server process.
type FrontendCfg struct {
	Enabled             bool     `mapstructure:"enabled" yaml:"enabled"`
	Command             []string `mapstructure:"command" yaml:"command"`
	Dir                 string   `mapstructure:"dir" yaml:"dir"`
	URL                 string   `mapstructure:"url" yaml:"url"`
	ReadyTimeoutSeconds int      `mapstructure:"ready_timeout_seconds" yaml:"ready_timeout_seconds"`
}

// LLMCallsCfg configures the in-memory completion call history.
type LLMCallsCfg struct {
	Capacity int `mapstructure:"capacity" yaml:"capacity"`
}

// ExampleCfg is a seed example.
type ExampleCfg struct {
	Input  string `mapstructure:"input" yaml:"input"`
	Output string `mapstructure:"output" yaml:"output"`
}

// DefaultUIConfig returns the default UI labels.
func DefaultUIConfig() UIConfig {
	return UIConfig{
		Description:     "Description",
		ButtonText:      "Submit",
		Placeholder:     "Default placeholder",
		ShowExampleForm: false,
	}
}

// DefaultConfig returns configuration with sensible defaults.
// Each call builds a new value; nothing is shared between callers.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "5000",
		},
		OpenAI: OpenAICfg{
			APIKey:         "${OPENAI_API_KEY}",
			TimeoutSeconds: 60,
			MaxRetries:     2,
		},
		Engine: prompt.DefaultConfig(),
		UI:     DefaultUIConfig(),
		Frontend: FrontendCfg{
			Enabled:             false,
			Command:             []string{"yarn", "start"},
			Dir:                 ".",
			URL:                 "http://localhost:3000",
			ReadyTimeoutSeconds: 60,
		},
		LLMCalls: LLMCallsCfg{
			Capacity: 200,
		},
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Engine.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("engine: %w", err))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server: port is required"))
	}
	if c.Frontend.Enabled && len(c.Frontend.Command) == 0 {
		errs = append(errs, errors.New("frontend: command is required when enabled"))
	}
	return errors.Join(errs...)
}

// APIKey returns the OpenAI API key with ${ENV_VAR} references resolved.
func (c *Config) APIKey() string {
	return ResolveEnvVars(c.OpenAI.APIKey)
}

// ToOpenAIConfig converts the config to a providers.OpenAIConfig.
func (c *Config) ToOpenAIConfig() providers.OpenAIConfig {
	return providers.OpenAIConfig{
		APIKey:     c.APIKey(),
		BaseURL:    c.OpenAI.BaseURL,
		MaxRetries: c.OpenAI.MaxRetries,
		Timeout:    time.Duration(c.OpenAI.TimeoutSeconds) * time.Second,
	}
}
