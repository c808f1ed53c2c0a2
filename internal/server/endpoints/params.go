package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/primer/internal/api"
	"github.com/jackzampolin/primer/internal/config"
	"github.com/jackzampolin/primer/internal/svcctx"
)

// ParamsEndpoint handles GET /params.
type ParamsEndpoint struct{}

func (e *ParamsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/params", e.handler
}

func (e *ParamsEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Get UI labels
//	@Description	Static labels for the front end. Reloaded when the config file changes.
//	@Tags			ui
//	@Produce		json
//	@Success		200	{object}	config.UIConfig
//	@Router			/params [get]
func (e *ParamsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ui := config.DefaultUIConfig()
	if cm := svcctx.ConfigManagerFrom(r.Context()); cm != nil {
		ui = cm.Get().UI
	}
	writeJSON(w, http.StatusOK, ui)
}

func (e *ParamsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Show the UI labels served to the front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp config.UIConfig
			if err := client.Get(cmd.Context(), "/params", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
