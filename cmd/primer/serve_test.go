package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jackzampolin/primer/internal/config"
)

func TestBuildServerConfig_SeedsExamplesInOrder(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := config.DefaultConfig()
	cfg.Examples = []config.ExampleCfg{
		{Input: "Dog", Output: "Chien"},
		{Input: "Cat", Output: "Chat"},
	}

	srvCfg, err := buildServerConfig(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("buildServerConfig failed: %v", err)
	}

	want := "input: Dog\noutput: Chien\n\ninput: Cat\noutput: Chat\n\n"
	if got := srvCfg.Engine.PrimeText(); got != want {
		t.Errorf("PrimeText() = %q, want %q", got, want)
	}
	if srvCfg.Completer != nil {
		t.Error("expected no completion client without an API key")
	}
	if srvCfg.DevServer != nil {
		t.Error("expected no dev server by default")
	}
	if srvCfg.Port != "5000" {
		t.Errorf("Port = %q", srvCfg.Port)
	}
}

func TestBuildServerConfig_WithAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	srvCfg, err := buildServerConfig(config.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if srvCfg.Completer == nil || srvCfg.Completer.Name() != "openai" {
		t.Errorf("Completer = %v, want openai client", srvCfg.Completer)
	}
}

func TestNewLogger(t *testing.T) {
	for _, lvl := range []string{"debug", "INFO", "warn", "error"} {
		if _, err := newLogger(lvl); err != nil {
			t.Errorf("newLogger(%q) failed: %v", lvl, err)
		}
	}
	if _, err := newLogger("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
