package endpoints

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jackzampolin/primer/internal/api"
	"github.com/jackzampolin/primer/internal/config"
	"github.com/jackzampolin/primer/internal/examples"
	"github.com/jackzampolin/primer/internal/llmcall"
	"github.com/jackzampolin/primer/internal/prompt"
	"github.com/jackzampolin/primer/internal/providers"
	"github.com/jackzampolin/primer/internal/svcctx"
)

type testEnv struct {
	handler http.Handler
	store   *examples.Store
	mock    *providers.MockClient
	calls   *llmcall.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := examples.NewStore()
	mock := providers.NewMockClient()
	calls := llmcall.NewStore(10)
	services := &svcctx.Services{
		Engine:    prompt.New(prompt.DefaultConfig(), store),
		Completer: mock,
		LLMCalls:  calls,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	reg := api.NewRegistry()
	reg.Register(All(Config{StaticFS: fstest.MapFS{
		"index.html":    {Data: []byte("<html>index</html>")},
		"static/app.js": {Data: []byte("console.log(1)")},
	}})...)

	mux := http.NewServeMux()
	reg.RegisterRoutes(mux, func(next http.HandlerFunc) http.HandlerFunc { return next })

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r.WithContext(svcctx.WithServices(r.Context(), services)))
	})

	return &testEnv{handler: handler, store: store, mock: mock, calls: calls}
}

func (env *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(method, path, r))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body = %s", got)
	}
}

func TestReady_WithMock(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[HealthResponse](t, rec)
	if resp.Completer != "ok" {
		t.Errorf("completer = %q", resp.Completer)
	}
}

func TestParams_Defaults(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/params", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[config.UIConfig](t, rec)
	if got != config.DefaultUIConfig() {
		t.Errorf("params = %+v, want defaults", got)
	}

	var raw map[string]any
	json.Unmarshal(rec.Body.Bytes(), &raw)
	for _, key := range []string{"description", "button_text", "placeholder", "show_example_form"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, rec.Body.String())
		}
	}
}

func TestExamples_CRUD(t *testing.T) {
	env := newTestEnv(t)

	// Empty list is an empty object.
	rec := env.do(t, "GET", "/examples", "")
	if got := strings.TrimSpace(rec.Body.String()); got != "{}" {
		t.Fatalf("empty list = %s", got)
	}

	// Create returns all examples including the new empty one.
	rec = env.do(t, "POST", "/examples", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d", rec.Code)
	}
	idx := decode[examples.Index](t, rec)
	if len(idx) != 1 || idx[0].Input != "" || idx[0].Output != "" {
		t.Fatalf("after create = %+v", idx)
	}
	id := idx[0].ID

	// Update input only.
	rec = env.do(t, "PUT", "/examples/"+id, `{"input":"Cat"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[examples.Record](t, rec)
	if got != (examples.Record{ID: id, Input: "Cat", Output: ""}) {
		t.Errorf("after input update = %+v", got)
	}

	// Update output only; input is kept. Unknown fields are ignored.
	rec = env.do(t, "PUT", "/examples/"+id, `{"output":"Chat","extra":1}`)
	got = decode[examples.Record](t, rec)
	if got != (examples.Record{ID: id, Input: "Cat", Output: "Chat"}) {
		t.Errorf("after output update = %+v", got)
	}

	// Store reflects the update.
	ex, ok := env.store.Get(id)
	if !ok || ex.Input != "Cat" || ex.Output != "Chat" {
		t.Errorf("store state = %+v, %v", ex, ok)
	}

	// Get.
	rec = env.do(t, "GET", "/examples/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if decode[examples.Record](t, rec) != got {
		t.Error("get returned a different record")
	}

	// Delete returns remaining examples, and is idempotent.
	for i := 0; i < 2; i++ {
		rec = env.do(t, "DELETE", "/examples/"+id, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("delete status = %d", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "{}" {
			t.Errorf("after delete = %s", got)
		}
	}
}

func TestExamples_ListOrder(t *testing.T) {
	env := newTestEnv(t)
	var ids []string
	for _, in := range []string{"a", "b", "c"} {
		ex := examples.New(in, strings.ToUpper(in))
		env.store.Add(ex)
		ids = append(ids, ex.ID())
	}

	rec := env.do(t, "GET", "/examples", "")
	idx := decode[examples.Index](t, rec)
	if strings.Join(idx.IDs(), ",") != strings.Join(ids, ",") {
		t.Errorf("order = %v, want %v", idx.IDs(), ids)
	}
}

func TestExamples_NotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, body string }{
		{"GET", ""},
		{"PUT", `{"input":"x"}`},
	} {
		rec := env.do(t, tc.method, "/examples/nope", tc.body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", tc.method, rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"id not found"}` {
			t.Errorf("%s body = %s", tc.method, got)
		}
	}
}

func TestExamples_UpdateInvalidBody(t *testing.T) {
	env := newTestEnv(t)
	ex := examples.New("Cat", "Chat")
	env.store.Add(ex)

	tests := []struct {
		name, body, wantSubstr string
	}{
		{"empty", "", "required"},
		{"malformed", "{", "invalid JSON"},
		{"wrong type", `{"input":3}`, "/input"},
		{"not an object", `["input"]`, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, "PUT", "/examples/"+ex.ID(), tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			msg := decode[ErrorResponse](t, rec).Error
			if !strings.Contains(msg, tt.wantSubstr) {
				t.Errorf("error %q does not mention %q", msg, tt.wantSubstr)
			}
		})
	}

	got, _ := env.store.Get(ex.ID())
	if got.Input != "Cat" || got.Output != "Chat" {
		t.Errorf("invalid bodies modified the example: %+v", got)
	}
}

func TestTranslate(t *testing.T) {
	env := newTestEnv(t)
	env.store.Add(examples.New("Dog", "Chien"))
	env.mock.ResponseText = "output: Chat"

	rec := env.do(t, "POST", "/translate", `{"prompt":"Cat"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[TranslateResponse](t, rec).Text; got != "Chat" {
		t.Errorf("text = %q, want Chat", got)
	}

	req := env.mock.LastRequest()
	if req.Prompt != "input: Dog\noutput: Chien\n\ninput: Cat\n" {
		t.Errorf("prompt = %q", req.Prompt)
	}
	if req.Stop != "output:" || req.TopP != 1 || req.N != 1 || req.Stream {
		t.Errorf("unexpected request params: %+v", req)
	}

	calls := env.calls.List(llmcall.QueryFilter{})
	if len(calls) != 1 {
		t.Fatalf("recorded %d calls, want 1", len(calls))
	}
	if !calls[0].Success || calls[0].Reply != "Chat" || calls[0].Input != "Cat" {
		t.Errorf("recorded call = %+v", calls[0])
	}
}

func TestTranslate_InvalidBody(t *testing.T) {
	env := newTestEnv(t)
	for _, body := range []string{"", `{}`, `{"prompt":1}`, "nope"} {
		rec := env.do(t, "POST", "/translate", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
	if env.mock.RequestCount() != 0 {
		t.Errorf("client called %d times for invalid bodies", env.mock.RequestCount())
	}
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantRetry  string
	}{
		{"rate limited", &providers.RateLimitError{Message: "slow down", RetryAfter: 3 * time.Second, StatusCode: 429}, http.StatusTooManyRequests, "3"},
		{"upstream failure", errors.New("boom"), http.StatusBadGateway, ""},
		{"empty response", providers.ErrEmptyResponse, http.StatusBadGateway, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.mock.ShouldFail = true
			env.mock.Err = tt.err

			rec := env.do(t, "POST", "/translate", `{"prompt":"Cat"}`)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Retry-After"); got != tt.wantRetry {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetry)
			}
			if msg := decode[ErrorResponse](t, rec).Error; !strings.Contains(msg, tt.err.Error()) {
				t.Errorf("error %q does not contain %q", msg, tt.err.Error())
			}

			calls := env.calls.List(llmcall.QueryFilter{})
			if len(calls) != 1 || calls[0].Success {
				t.Errorf("expected one failed call recorded, got %+v", calls)
			}
		})
	}
}

func TestLLMCalls(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "POST", "/translate", `{"prompt":"one"}`)
	env.mock.ShouldFail = true
	env.do(t, "POST", "/translate", `{"prompt":"two"}`)

	rec := env.do(t, "GET", "/api/llmcalls", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	list := decode[LLMCallsResponse](t, rec)
	if list.Total != 2 || list.Calls[0].Input != "two" {
		t.Fatalf("list = %+v", list)
	}

	rec = env.do(t, "GET", "/api/llmcalls?success=true", "")
	if list := decode[LLMCallsResponse](t, rec); list.Total != 1 || list.Calls[0].Input != "one" {
		t.Errorf("success filter = %+v", list)
	}

	for _, q := range []string{"success=maybe", "limit=x", "offset=y", "after=yesterday"} {
		rec = env.do(t, "GET", "/api/llmcalls?"+q, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}

	id := list.Calls[1].ID
	rec = env.do(t, "GET", "/api/llmcalls/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if got := decode[LLMCallResponse](t, rec); got.Call == nil || got.Call.ID != id {
		t.Errorf("get = %+v", got)
	}

	rec = env.do(t, "GET", "/api/llmcalls/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing call status = %d", rec.Code)
	}
}

func TestSwagger(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/swagger.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("swagger.json is not valid JSON: %v", err)
	}
	if doc.Info.Title != "primer API" {
		t.Errorf("title = %q", doc.Info.Title)
	}
	for _, p := range []string{"/examples", "/examples/{id}", "/translate", "/params"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("swagger.json missing path %s", p)
		}
	}
}

func TestStatic(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		path, want string
	}{
		{"/", "<html>index</html>"},
		{"/static/app.js", "console.log(1)"},
		{"/library/editor", "<html>index</html>"},
		{"/static", "<html>index</html>"},
	}
	for _, tt := range tests {
		rec := env.do(t, "GET", tt.path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", tt.path, rec.Code)
			continue
		}
		if rec.Body.String() != tt.want {
			t.Errorf("%s: body = %q, want %q", tt.path, rec.Body.String(), tt.want)
		}
	}
}

func TestAll_CommandsBuild(t *testing.T) {
	reg := api.NewRegistry()
	reg.Register(All(Config{})...)
	root := reg.BuildCommands(func() string { return "http://127.0.0.1:5000" })

	for _, path := range [][]string{
		{"health"}, {"ready"}, {"params"}, {"translate"}, {"swagger"},
		{"examples", "list"}, {"examples", "create"}, {"examples", "get"},
		{"examples", "update"}, {"examples", "delete"},
		{"llmcalls", "list"}, {"llmcalls", "get"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("command %v not found: %v", path, err)
		}
	}
}
