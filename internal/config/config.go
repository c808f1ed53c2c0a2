package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for environment overrides, e.g. PRIMER_SERVER_PORT.
const EnvPrefix = "PRIMER"

// DefaultEnvFile is loaded into the process environment before config is read.
const DefaultEnvFile = ".env"

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v         *viper.Viper
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager loads envFile (default .env, optional) into the environment,
// then reads cfgFile (or config.yaml from . and homeDir) over the defaults.
func NewManager(cfgFile, envFile, homeDir string) (*Manager, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	cm := &Manager{
		v:         viper.New(),
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile, homeDir); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// loadEnvFile sets variables from a dotenv file without overriding ones
// already present. A missing default file is not an error.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

// initViper sets up viper with defaults, env overrides and config file.
func (cm *Manager) initViper(cfgFile, homeDir string) error {
	v := cm.v
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if homeDir != "" {
			v.AddConfigPath(homeDir)
		}
	}

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// setDefaults registers every leaf key so partial files and env vars merge
// with the defaults instead of replacing whole sections.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)

	v.SetDefault("openai.api_key", d.OpenAI.APIKey)
	v.SetDefault("openai.base_url", d.OpenAI.BaseURL)
	v.SetDefault("openai.timeout_seconds", d.OpenAI.TimeoutSeconds)
	v.SetDefault("openai.max_retries", d.OpenAI.MaxRetries)

	v.SetDefault("engine.engine", d.Engine.Engine)
	v.SetDefault("engine.temperature", d.Engine.Temperature)
	v.SetDefault("engine.max_tokens", d.Engine.MaxTokens)
	v.SetDefault("engine.input_prefix", d.Engine.InputPrefix)
	v.SetDefault("engine.input_suffix", d.Engine.InputSuffix)
	v.SetDefault("engine.output_prefix", d.Engine.OutputPrefix)
	v.SetDefault("engine.output_suffix", d.Engine.OutputSuffix)
	v.SetDefault("engine.append_output_prefix_to_query", d.Engine.AppendOutputPrefixToQuery)

	v.SetDefault("ui.description", d.UI.Description)
	v.SetDefault("ui.button_text", d.UI.ButtonText)
	v.SetDefault("ui.placeholder", d.UI.Placeholder)
	v.SetDefault("ui.show_example_form", d.UI.ShowExampleForm)

	v.SetDefault("frontend.enabled", d.Frontend.Enabled)
	v.SetDefault("frontend.command", d.Frontend.Command)
	v.SetDefault("frontend.dir", d.Frontend.Dir)
	v.SetDefault("frontend.url", d.Frontend.URL)
	v.SetDefault("frontend.ready_timeout_seconds", d.Frontend.ReadyTimeoutSeconds)

	v.SetDefault("llmcalls.capacity", d.LLMCalls.Capacity)
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// ConfigFile returns the path of the file in use, or "" if none was found.
func (cm *Manager) ConfigFile() string {
	return cm.v.ConfigFileUsed()
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
// Reloads that fail to parse or validate keep the previous config.
func (cm *Manager) WatchConfig() {
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	cm.v.WatchConfig()
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	return envVarPattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# primer configuration
# API keys use ${ENV_VAR} syntax to reference environment variables.
# Set OPENAI_API_KEY in your shell or in a .env file next to the binary.
# Every key can be overridden with PRIMER_<SECTION>_<KEY>, e.g. PRIMER_ENGINE_TEMPERATURE.
#
# Seed examples are added on every start:
# examples:
#   - input: "Senior Software Engineer"
#     output: "Description: ..."

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
