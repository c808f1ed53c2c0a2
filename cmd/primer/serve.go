package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/primer/internal/config"
	"github.com/jackzampolin/primer/internal/examples"
	"github.com/jackzampolin/primer/internal/frontend"
	"github.com/jackzampolin/primer/internal/llmcall"
	"github.com/jackzampolin/primer/internal/prompt"
	"github.com/jackzampolin/primer/internal/providers"
	"github.com/jackzampolin/primer/internal/server"
)

var (
	serveHost     string
	servePort     string
	serveLogLevel string
	serveFrontend bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the primer server",
	Long: `Start the primer HTTP server.

Seed examples from the config file are added to the example store on start.
Examples added over HTTP live in memory and are lost on restart.

With --frontend (or frontend.enabled in config) the front-end dev server
(default: yarn start) is launched first and stopped on shutdown.

Examples:
  primer serve                    # Start on default port 5000
  primer serve --port 8000        # Start on custom port
  primer serve --frontend         # Also run the UI dev server`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger, err := newLogger(serveLogLevel)
		if err != nil {
			return err
		}

		_, cm, err := loadConfig()
		if err != nil {
			return err
		}
		if f := cm.ConfigFile(); f != "" {
			logger.Info("loaded config", "file", f)
			cm.WatchConfig()
		}

		cfg := *cm.Get()
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if serveFrontend {
			cfg.Frontend.Enabled = true
		}

		srvCfg, err := buildServerConfig(&cfg, logger)
		if err != nil {
			return err
		}
		srvCfg.ConfigManager = cm

		srv, err := server.New(srvCfg)
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "5000", "Port to listen on (overrides server.port)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	serveCmd.Flags().BoolVar(&serveFrontend, "frontend", false, "Run the front-end dev server alongside the API")

	rootCmd.AddCommand(serveCmd)
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})), nil
}

// buildServerConfig wires the example store, prompt engine, completion
// client and optional dev server from cfg.
func buildServerConfig(cfg *config.Config, logger *slog.Logger) (server.Config, error) {
	store := examples.NewStore()
	for _, seed := range cfg.Examples {
		if err := store.Add(examples.New(seed.Input, seed.Output)); err != nil {
			return server.Config{}, err
		}
	}
	if store.Len() > 0 {
		logger.Info("seeded examples", "count", store.Len())
	}

	srvCfg := server.Config{
		Host:     cfg.Server.Host,
		Port:     cfg.Server.Port,
		Engine:   prompt.New(cfg.Engine, store),
		LLMCalls: llmcall.NewStore(cfg.LLMCalls.Capacity),
		Logger:   logger,
	}

	if cfg.APIKey() != "" {
		client := providers.NewOpenAIClient(cfg.ToOpenAIConfig())
		srvCfg.Completer = client
		logger.Info("completion client configured", "provider", client.Name(), "engine", cfg.Engine.Engine)
	} else {
		logger.Warn("no OpenAI API key configured; /translate will return 503",
			"hint", "set OPENAI_API_KEY or openai.api_key")
	}

	if cfg.Frontend.Enabled {
		dev, err := frontend.NewDevServer(frontend.Config{
			Command:      cfg.Frontend.Command,
			Dir:          cfg.Frontend.Dir,
			URL:          cfg.Frontend.URL,
			ReadyTimeout: time.Duration(cfg.Frontend.ReadyTimeoutSeconds) * time.Second,
			Logger:       logger.With("component", "frontend"),
		})
		if err != nil {
			return server.Config{}, err
		}
		srvCfg.DevServer = dev
	}

	return srvCfg, nil
}
