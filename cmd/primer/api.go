package main

import (
	"github.com/jackzampolin/primer/internal/api"
	"github.com/jackzampolin/primer/internal/server/endpoints"
)

var serverURL string

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	reg := api.NewRegistry()
	reg.Register(endpoints.All(endpoints.Config{})...)

	apiCmd := reg.BuildCommands(getServerURL)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:5000", "Server URL",
	)

	rootCmd.AddCommand(apiCmd)
}
