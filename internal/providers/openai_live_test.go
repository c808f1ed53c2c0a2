package providers

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestOpenAIClient_Live(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live test in short mode")
	}
	cfg := LoadTestConfig()
	if !cfg.HasOpenAI() {
		t.Skip("OPENAI_API_KEY not set")
	}

	client := NewOpenAIClient(OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: 30 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := client.Complete(ctx, &CompletionRequest{
		Engine:      cfg.Engine,
		Prompt:      "input: Dog\noutput: Chien\n\ninput: Cat\noutput: ",
		MaxTokens:   5,
		Temperature: 0,
		TopP:        1,
		N:           1,
		Stop:        "input:",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if strings.TrimSpace(result.Text) == "" {
		t.Error("expected non-empty completion")
	}
	if result.TotalTokens == 0 {
		t.Error("expected token usage to be reported")
	}
}
