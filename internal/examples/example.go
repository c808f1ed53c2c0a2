// Package examples holds the few-shot input/output pairs used to prime
// completion prompts, keyed by id in insertion order.
package examples

import (
	"strings"

	"github.com/google/uuid"
)

// Example is a labeled input/output pair.
// The id is fixed at construction; Input and Output may be reassigned freely.
type Example struct {
	id     string
	Input  string
	Output string
}

// Record is the serializable view of an Example.
type Record struct {
	ID     string `json:"id" yaml:"id"`
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// New creates an example with a freshly generated id.
func New(input, output string) *Example {
	return &Example{
		id:     newID(),
		Input:  input,
		Output: output,
	}
}

// ID returns the example's unique identifier.
func (e *Example) ID() string {
	return e.id
}

// Record returns the {id, input, output} view of the example.
func (e *Example) Record() Record {
	return Record{ID: e.id, Input: e.Input, Output: e.Output}
}

func (e *Example) clone() *Example {
	c := *e
	return &c
}

// newID returns 32 lowercase hex characters from a random UUID.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
