package llmcall

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackzampolin/primer/internal/providers"
)

func TestNew_Success(t *testing.T) {
	req := &providers.CompletionRequest{
		Engine:      "davinci",
		Prompt:      "input: Cat\n",
		MaxTokens:   100,
		Temperature: 0.5,
		Stop:        "input:",
	}
	result := &providers.CompletionResult{
		Text:             "output: Chat",
		PromptTokens:     5,
		CompletionTokens: 2,
		ModelUsed:        "davinci-002",
		Provider:         "openai",
	}

	call := New(RecordOptions{Input: "Cat", Request: req, Latency: 42 * time.Millisecond}, result, "Chat", nil)

	if call.ID == "" {
		t.Fatal("expected id")
	}
	if !call.Success || call.Error != "" {
		t.Errorf("expected success, got %+v", call)
	}
	if call.Engine != "davinci" || call.Prompt != req.Prompt || call.Stop != "input:" {
		t.Errorf("request fields not copied: %+v", call)
	}
	if call.Response != "output: Chat" || call.Reply != "Chat" {
		t.Errorf("response fields = %q / %q", call.Response, call.Reply)
	}
	if call.Provider != "openai" || call.Model != "davinci-002" {
		t.Errorf("provider/model = %q/%q", call.Provider, call.Model)
	}
	if call.LatencyMs != 42 {
		t.Errorf("LatencyMs = %d", call.LatencyMs)
	}
}

func TestNew_Failure(t *testing.T) {
	call := New(RecordOptions{Input: "Cat", Provider: "mock"}, nil, "", errors.New("boom"))
	if call.Success {
		t.Fatal("expected failure")
	}
	if call.Error != "boom" {
		t.Errorf("Error = %q", call.Error)
	}
	if call.Provider != "mock" {
		t.Errorf("Provider = %q", call.Provider)
	}
}

func TestStore_EvictsOldest(t *testing.T) {
	s := NewStore(3)
	for i := 0; i < 5; i++ {
		s.Record(&Call{ID: fmt.Sprintf("c%d", i), Timestamp: time.Now()})
	}

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if s.Get("c0") != nil || s.Get("c1") != nil {
		t.Error("expected oldest calls evicted")
	}

	calls := s.List(QueryFilter{})
	if len(calls) != 3 || calls[0].ID != "c4" || calls[2].ID != "c2" {
		t.Errorf("List() order = %v", ids(calls))
	}
}

func TestStore_ListFilter(t *testing.T) {
	s := NewStore(0)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		s.Record(&Call{
			ID:        fmt.Sprintf("c%d", i),
			Engine:    []string{"davinci", "curie"}[i%2],
			Success:   i != 4,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}

	failed := false
	tests := []struct {
		name   string
		filter QueryFilter
		want   []string
	}{
		{"all newest first", QueryFilter{}, []string{"c5", "c4", "c3", "c2", "c1", "c0"}},
		{"engine", QueryFilter{Engine: "curie"}, []string{"c5", "c3", "c1"}},
		{"failures", QueryFilter{Success: &failed}, []string{"c4"}},
		{"limit offset", QueryFilter{Limit: 2, Offset: 1}, []string{"c4", "c3"}},
		{"after", QueryFilter{After: ptr(base.Add(3 * time.Minute))}, []string{"c5", "c4"}},
		{"before", QueryFilter{Before: ptr(base.Add(time.Minute))}, []string{"c0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(s.List(tt.filter))
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("List() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore(1)
	s.Record(&Call{ID: "a", Response: "orig"})

	got := s.Get("a")
	got.Response = "changed"
	if s.Get("a").Response != "orig" {
		t.Fatal("Get should return a copy")
	}
}

func TestStore_NilSafe(t *testing.T) {
	var s *Store
	s.Record(&Call{ID: "x"}) // must not panic

	NewStore(1).Record(nil)
}

func ids(calls []Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.ID
	}
	return out
}

func ptr[T any](v T) *T { return &v }
