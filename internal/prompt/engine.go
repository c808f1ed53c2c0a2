// Package prompt assembles few-shot priming prompts from stored examples and
// derives the completion request sent to the provider.
//
// Prefixes, suffixes and example text are concatenated verbatim. Nothing is
// escaped, so example content that contains a prefix or suffix string will
// read as a delimiter to the model.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackzampolin/primer/internal/examples"
	"github.com/jackzampolin/primer/internal/providers"
)

// Fixed sampling parameters sent with every request.
const (
	TopP = 1.0
	N    = 1
)

// Config controls prompt framing and request parameters.
type Config struct {
	Engine      string  `mapstructure:"engine" yaml:"engine" json:"engine"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature" json:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens" json:"max_tokens"`

	InputPrefix  string `mapstructure:"input_prefix" yaml:"input_prefix" json:"input_prefix"`
	InputSuffix  string `mapstructure:"input_suffix" yaml:"input_suffix" json:"input_suffix"`
	OutputPrefix string `mapstructure:"output_prefix" yaml:"output_prefix" json:"output_prefix"`
	OutputSuffix string `mapstructure:"output_suffix" yaml:"output_suffix" json:"output_suffix"`

	// AppendOutputPrefixToQuery ends the query with OutputPrefix, so the
	// model starts generating the output text directly.
	AppendOutputPrefixToQuery bool `mapstructure:"append_output_prefix_to_query" yaml:"append_output_prefix_to_query" json:"append_output_prefix_to_query"`
}

// DefaultConfig returns a new Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		Engine:       "davinci",
		Temperature:  0.5,
		MaxTokens:    100,
		InputPrefix:  "input: ",
		InputSuffix:  "\n",
		OutputPrefix: "output: ",
		OutputSuffix: "\n\n",
	}
}

// Validate checks the fields the completion API cannot do without.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Engine) == "" {
		errs = append(errs, errors.New("engine is required"))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens))
	}
	return errors.Join(errs...)
}

// Engine turns raw input into priming prompts and completion requests.
// Its configuration is fixed at construction; only the example store changes.
type Engine struct {
	cfg   Config
	stop  string
	store *examples.Store
}

// New creates an engine that owns store. A nil store is replaced by an empty one.
func New(cfg Config, store *examples.Store) *Engine {
	if store == nil {
		store = examples.NewStore()
	}
	return &Engine{
		cfg:   cfg,
		stop:  strings.TrimSpace(cfg.OutputSuffix + cfg.InputPrefix),
		store: store,
	}
}

// Store returns the engine's example store.
func (e *Engine) Store() *examples.Store {
	return e.store
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Stop returns the stop sequence: OutputSuffix+InputPrefix with surrounding
// whitespace trimmed.
func (e *Engine) Stop() string {
	return e.stop
}

// FormatExample frames one example.
func (e *Engine) FormatExample(ex *examples.Example) string {
	return e.cfg.InputPrefix + ex.Input + e.cfg.InputSuffix +
		e.cfg.OutputPrefix + ex.Output + e.cfg.OutputSuffix
}

// PrimeText formats every stored example in store order.
func (e *Engine) PrimeText() string {
	var b strings.Builder
	for _, ex := range e.store.All() {
		b.WriteString(e.FormatExample(ex))
	}
	return b.String()
}

// CraftQuery returns the exact prompt sent to the completion API.
func (e *Engine) CraftQuery(input string) string {
	q := e.PrimeText() + e.cfg.InputPrefix + input + e.cfg.InputSuffix
	if e.cfg.AppendOutputPrefixToQuery {
		q += e.cfg.OutputPrefix
	}
	return q
}

// RequestParams builds the full completion request for input.
func (e *Engine) RequestParams(input string) *providers.CompletionRequest {
	return &providers.CompletionRequest{
		Engine:      e.cfg.Engine,
		Prompt:      e.CraftQuery(input),
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
		TopP:        TopP,
		N:           N,
		Stream:      false,
		Stop:        e.stop,
	}
}

// ReplyOffset is the number of leading characters stripped from a raw
// completion. When the query did not end with OutputPrefix the model is
// expected to echo it first.
func (e *Engine) ReplyOffset() int {
	if e.cfg.AppendOutputPrefixToQuery {
		return 0
	}
	return len([]rune(e.cfg.OutputPrefix))
}

// ExtractReply strips ReplyOffset characters from the front of raw.
// The prefix is not checked; an offset past the end yields "".
func (e *Engine) ExtractReply(raw string) string {
	offset := e.ReplyOffset()
	if offset == 0 {
		return raw
	}
	runes := []rune(raw)
	if offset >= len(runes) {
		return ""
	}
	return string(runes[offset:])
}

// Complete sends input through client and returns the user-visible reply
// along with the raw result. Client errors are returned unretried.
func (e *Engine) Complete(ctx context.Context, client providers.CompletionClient, input string) (string, *providers.CompletionResult, error) {
	result, err := client.Complete(ctx, e.RequestParams(input))
	if err != nil {
		return "", nil, fmt.Errorf("completion via %s: %w", client.Name(), err)
	}
	return e.ExtractReply(result.Text), result, nil
}
