package server

import (
	"context"
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

	"github.com/jackzampolin/primer/internal/examples"
	"github.com/jackzampolin/primer/internal/prompt"
	"github.com/jackzampolin/primer/internal/providers"
	"github.com/jackzampolin/primer/internal/server/endpoints"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, completer providers.CompletionClient) *Server {
	t.Helper()
	srv, err := New(Config{
		Port:      "0",
		Completer: completer,
		StaticFS:  fstest.MapFS{"index.html": {Data: []byte("<html>primer</html>")}},
		Logger:    testLogger(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func waitForServer(ctx context.Context, srv *Server) (string, error) {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
			if !srv.IsRunning() || strings.HasSuffix(srv.Addr(), ":0") {
				continue
			}
			base := "http://" + srv.Addr()
			resp, err := http.Get(base + "/health")
			if err != nil {
				continue
			}
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return base, nil
			}
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	srv, err := New(Config{Logger: testLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if srv.Addr() != "127.0.0.1:5000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:5000", srv.Addr())
	}
	if srv.Engine() == nil || srv.LLMCalls() == nil {
		t.Fatal("expected default engine and call store")
	}
	if srv.Engine().Config() != prompt.DefaultConfig() {
		t.Errorf("engine config = %+v, want defaults", srv.Engine().Config())
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true before Start")
	}
}

func TestNew_InvalidEngine(t *testing.T) {
	cfg := prompt.DefaultConfig()
	cfg.MaxTokens = 0
	_, err := New(Config{Engine: prompt.New(cfg, nil), Logger: testLogger()})
	if err == nil {
		t.Fatal("expected error for invalid engine config")
	}
}

func TestServer_Lifecycle(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "output: Chat"
	srv := newTestServer(t, mock)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	serverErr := make(chan error, 1)
	serverCtx, serverCancel := context.WithCancel(ctx)
	go func() {
		serverErr <- srv.Start(serverCtx)
	}()

	base, err := waitForServer(ctx, srv)
	if err != nil {
		serverCancel()
		t.Fatalf("server did not start: %v", err)
	}

	t.Run("double_start", func(t *testing.T) {
		if err := srv.Start(ctx); err == nil {
			t.Error("expected error starting a running server")
		}
	})

	t.Run("translate", func(t *testing.T) {
		resp, err := http.Post(base+"/translate", "application/json", strings.NewReader(`{"prompt":"Cat"}`))
		if err != nil {
			t.Fatalf("translate failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var body endpoints.TranslateResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body.Text != "Chat" {
			t.Errorf("text = %q, want %q", body.Text, "Chat")
		}
		if srv.LLMCalls().Len() != 1 {
			t.Errorf("recorded calls = %d, want 1", srv.LLMCalls().Len())
		}
	})

	t.Run("spa_fallback", func(t *testing.T) {
		resp, err := http.Get(base + "/some/client/route")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		if string(data) != "<html>primer</html>" {
			t.Errorf("body = %q", data)
		}
	})

	serverCancel()
	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Start() returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}

	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown")
	}
}

func TestServer_RequireInit(t *testing.T) {
	srv := newTestServer(t, nil)
	h := srv.Handler()

	tests := []struct {
		method, path, body string
		want               int
	}{
		{"POST", "/translate", `{"prompt":"Cat"}`, http.StatusServiceUnavailable},
		{"GET", "/health", "", http.StatusOK},
		{"GET", "/params", "", http.StatusOK},
		{"GET", "/examples", "", http.StatusOK},
		{"GET", "/ready", "", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestServer_SharesEngineStore(t *testing.T) {
	store := examples.NewStore()
	seed := examples.New("Dog", "Chien")
	if err := store.Add(seed); err != nil {
		t.Fatal(err)
	}

	mock := providers.NewMockClient()
	srv, err := New(Config{
		Engine:    prompt.New(prompt.DefaultConfig(), store),
		Completer: mock,
		Logger:    testLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/translate", strings.NewReader(`{"prompt":"Cat"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	want := "input: Dog\noutput: Chien\n\ninput: Cat\n"
	if got := mock.LastRequest().Prompt; got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}
