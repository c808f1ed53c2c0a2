package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jackzampolin/primer/internal/api"
	"github.com/jackzampolin/primer/internal/config"
	"github.com/jackzampolin/primer/internal/frontend"
	"github.com/jackzampolin/primer/internal/llmcall"
	"github.com/jackzampolin/primer/internal/prompt"
	"github.com/jackzampolin/primer/internal/providers"
	"github.com/jackzampolin/primer/internal/server/endpoints"
	"github.com/jackzampolin/primer/internal/svcctx"
)

// Server is the primer HTTP server. When a front-end dev server is
// configured it is started before the listener and stopped on shutdown.
type Server struct {
	httpServer *http.Server
	devServer  *frontend.DevServer
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu       sync.RWMutex
	running  bool
	listener net.Listener
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 5000). "0" picks a free port.
	Port string
	// Engine builds prompts from the example store (default: empty store
	// with default settings).
	Engine *prompt.Engine
	// Completer sends prompts to the completion API. When nil, routes that
	// need it answer 503.
	Completer providers.CompletionClient
	// ConfigManager provides UI labels with hot-reload support
	ConfigManager *config.Manager
	// LLMCalls records completion calls (default: in-memory, 200 entries)
	LLMCalls *llmcall.Store
	// DevServer is the optional front-end dev server
	DevServer *frontend.DevServer
	// StaticFS overrides the embedded front-end assets
	StaticFS fs.FS
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Engine == nil {
		cfg.Engine = prompt.New(prompt.DefaultConfig(), nil)
	}
	if err := cfg.Engine.Config().Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if cfg.LLMCalls == nil {
		cfg.LLMCalls = llmcall.NewStore(llmcall.DefaultCapacity)
	}

	s := &Server{
		devServer: cfg.DevServer,
		logger:    cfg.Logger,
		services: &svcctx.Services{
			Engine:        cfg.Engine,
			Completer:     cfg.Completer,
			ConfigManager: cfg.ConfigManager,
			LLMCalls:      cfg.LLMCalls,
			Logger:        cfg.Logger,
		},
	}

	if cfg.ConfigManager != nil {
		running := cfg.Engine.Config()
		cfg.ConfigManager.OnChange(func(c *config.Config) {
			s.logger.Info("config reloaded", "ui.description", c.UI.Description)
			if c.Engine != running {
				s.logger.Warn("engine settings changed; restart to apply",
					"running_engine", running.Engine, "configured_engine", c.Engine.Engine)
			}
		})
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	s.endpointRegistry.Register(endpoints.All(endpoints.Config{StaticFS: cfg.StaticFS})...)

	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start starts the dev server (if any) and the HTTP listener.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if s.devServer != nil {
		s.logger.Info("starting front-end dev server")
		if err := s.devServer.Start(ctx); err != nil {
			s.setNotRunning()
			return fmt.Errorf("failed to start front-end dev server: %w", err)
		}
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		_ = s.shutdown()
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown stops the HTTP server, then the dev server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	if s.devServer != nil {
		s.logger.Info("stopping front-end dev server")
		if err := s.devServer.Stop(shutdownCtx); err != nil {
			s.logger.Error("dev server stop error", "error", err)
		}
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.listener = nil
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the bound address while running, else the configured one.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Engine returns the prompt engine.
func (s *Server) Engine() *prompt.Engine {
	return s.services.Engine
}

// LLMCalls returns the completion call history.
func (s *Server) LLMCalls() *llmcall.Store {
	return s.services.LLMCalls
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := svcctx.WithServices(r.Context(), s.services)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit returns 503 when no completion client is configured.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.services.Completer == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"completion client not configured"}`))
			return
		}
		next(w, r)
	}
}
