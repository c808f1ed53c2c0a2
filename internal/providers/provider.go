package providers

import (
	"context"
	"time"
)

// CompletionClient is the hosted text-completion API.
// Implementations send a single request and return the first choice.
type CompletionClient interface {
	// Name returns the client identifier (e.g., "openai").
	Name() string

	// Complete sends a completion request.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)
}

// CompletionRequest is the full parameter set for one completion call.
type CompletionRequest struct {
	Engine      string  `json:"engine"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	N           int     `json:"n"`
	Stream      bool    `json:"stream"`
	Stop        string  `json:"stop"`

	// Request tracking
	RequestID string `json:"-"`
}

// CompletionResult is the generated text plus call metadata.
type CompletionResult struct {
	// Text of the first choice, verbatim.
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason,omitempty"`

	// Token counts
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	ExecutionTime time.Duration `json:"execution_time"`

	// Provider info
	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`
	RequestID string `json:"request_id"`
}
