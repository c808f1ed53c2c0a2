package endpoints

import (
	"io/fs"

	"github.com/jackzampolin/primer/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// StaticFS overrides the embedded front end.
	StaticFS fs.FS
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health
		&HealthEndpoint{},
		&ReadyEndpoint{},

		// UI labels
		&ParamsEndpoint{},

		// Example management
		&ListExamplesEndpoint{},
		&CreateExampleEndpoint{},
		&GetExampleEndpoint{},
		&UpdateExampleEndpoint{},
		&DeleteExampleEndpoint{},

		// Completion
		&TranslateEndpoint{},

		// Completion call history
		&ListLLMCallsEndpoint{},
		&GetLLMCallEndpoint{},

		// Swagger/OpenAPI
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},

		// Static files (catch-all, must be last)
		&StaticEndpoint{FS: cfg.StaticFS},
	}
}
