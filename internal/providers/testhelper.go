package providers

import (
	"os"
)

// TestConfig holds provider settings for live tests, read from the same
// environment variables production uses.
type TestConfig struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Engine        string
}

// LoadTestConfig reads OPENAI_API_KEY, OPENAI_BASE_URL and
// PRIMER_TEST_ENGINE (default: gpt-3.5-turbo-instruct).
func LoadTestConfig() TestConfig {
	engine := os.Getenv("PRIMER_TEST_ENGINE")
	if engine == "" {
		engine = "gpt-3.5-turbo-instruct"
	}
	return TestConfig{
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		Engine:        engine,
	}
}

// HasOpenAI returns true if an OpenAI API key is configured.
func (c TestConfig) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
