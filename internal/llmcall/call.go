// Package llmcall records completion calls for traceability.
// Records are kept in memory only and are lost on restart.
package llmcall

import (
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/primer/internal/providers"
)

// Call represents a recorded completion call.
type Call struct {
	// Unique identifier
	ID string `json:"id" yaml:"id"`

	// Timing
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	LatencyMs int       `json:"latency_ms" yaml:"latency_ms"`

	// Request
	Engine      string  `json:"engine" yaml:"engine"`
	Input       string  `json:"input" yaml:"input"`
	Prompt      string  `json:"prompt" yaml:"prompt"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	Stop        string  `json:"stop" yaml:"stop"`

	// Model info
	Provider string `json:"provider" yaml:"provider"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`

	// Token usage
	InputTokens  int `json:"input_tokens" yaml:"input_tokens"`
	OutputTokens int `json:"output_tokens" yaml:"output_tokens"`

	// Response
	Response string `json:"response" yaml:"response"` // Raw first-choice text
	Reply    string `json:"reply" yaml:"reply"`       // Text returned to the caller

	// Status
	Success bool   `json:"success" yaml:"success"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RecordOptions provides the request side of a call.
type RecordOptions struct {
	Input    string
	Request  *providers.CompletionRequest
	Provider string
	Latency  time.Duration
}

// New creates a Call from a request and its outcome.
// result may be nil when err is set.
func New(opts RecordOptions, result *providers.CompletionResult, reply string, err error) *Call {
	call := &Call{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		LatencyMs: int(opts.Latency.Milliseconds()),
		Input:     opts.Input,
		Provider:  opts.Provider,
		Success:   err == nil,
	}

	if req := opts.Request; req != nil {
		call.Engine = req.Engine
		call.Prompt = req.Prompt
		call.Temperature = req.Temperature
		call.MaxTokens = req.MaxTokens
		call.Stop = req.Stop
	}

	if result != nil {
		call.Model = result.ModelUsed
		call.InputTokens = result.PromptTokens
		call.OutputTokens = result.CompletionTokens
		call.Response = result.Text
		call.Reply = reply
		if result.Provider != "" {
			call.Provider = result.Provider
		}
		if call.LatencyMs == 0 {
			call.LatencyMs = int(result.ExecutionTime.Milliseconds())
		}
	}

	if err != nil {
		call.Error = err.Error()
	}

	return call
}
