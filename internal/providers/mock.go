package providers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is a CompletionClient for testing.
type MockClient struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	Err          error // Returned when ShouldFail is set (default: generic error)
	ResponseText string

	// State
	requestCount atomic.Int64
	mu           sync.Mutex
	lastRequest  *CompletionRequest
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		ResponseText: "mock response",
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Complete records the request and returns ResponseText.
func (c *MockClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	start := time.Now()
	count := c.requestCount.Add(1)

	c.mu.Lock()
	cp := *req
	c.lastRequest = &cp
	c.mu.Unlock()

	if c.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Latency):
		}
	}

	if c.ShouldFail {
		if c.Err != nil {
			return nil, c.Err
		}
		return nil, errors.New("mock failure")
	}

	return &CompletionResult{
		Text:          c.ResponseText,
		FinishReason:  "stop",
		ExecutionTime: time.Since(start),
		Provider:      MockClientName,
		ModelUsed:     req.Engine,
		RequestID:     fmt.Sprintf("mock-%d", count),
	}, nil
}

// RequestCount returns how many requests were made.
func (c *MockClient) RequestCount() int64 {
	return c.requestCount.Load()
}

// LastRequest returns a copy of the most recent request, or nil.
func (c *MockClient) LastRequest() *CompletionRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastRequest == nil {
		return nil
	}
	cp := *c.lastRequest
	return &cp
}

var _ CompletionClient = (*MockClient)(nil)
