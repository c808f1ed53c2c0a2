package endpoints

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/primer/internal/api"
	"github.com/jackzampolin/primer/internal/examples"
	"github.com/jackzampolin/primer/internal/svcctx"
)

// msgIDNotFound is returned with 404 for an unknown example id.
const msgIDNotFound = "id not found"

// UpdateExampleRequest is the body of PUT /examples/{id}. Absent fields are
// left unchanged.
type UpdateExampleRequest struct {
	Input  *string `json:"input,omitempty"`
	Output *string `json:"output,omitempty"`
}

// exampleGroup nests example commands under "primer api examples".
type exampleGroup struct{}

func (exampleGroup) Group() string { return "examples" }

func exampleStore(w http.ResponseWriter, r *http.Request) *examples.Store {
	engine := svcctx.EngineFrom(r.Context())
	if engine == nil {
		writeError(w, http.StatusInternalServerError, "prompt engine not available")
		return nil
	}
	return engine.Store()
}

// ListExamplesEndpoint handles GET /examples.
type ListExamplesEndpoint struct{ exampleGroup }

func (e *ListExamplesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/examples", e.handler
}

func (e *ListExamplesEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		List examples
//	@Description	All priming examples as an object keyed by id, in insertion order
//	@Tags			examples
//	@Produce		json
//	@Success		200	{object}	map[string]examples.Record
//	@Failure		500	{object}	ErrorResponse
//	@Router			/examples [get]
func (e *ListExamplesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := exampleStore(w, r)
	if store == nil {
		return
	}
	writeJSON(w, http.StatusOK, store.Records())
}

func (e *ListExamplesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List priming examples",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp examples.Index
			if err := client.Get(cmd.Context(), "/examples", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// CreateExampleEndpoint handles POST /examples.
type CreateExampleEndpoint struct{ exampleGroup }

func (e *CreateExampleEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/examples", e.handler
}

func (e *CreateExampleEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Create an example
//	@Description	Appends an empty example and returns all examples. Fill it in with PUT /examples/{id}.
//	@Tags			examples
//	@Produce		json
//	@Success		200	{object}	map[string]examples.Record
//	@Failure		500	{object}	ErrorResponse
//	@Router			/examples [post]
func (e *CreateExampleEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := exampleStore(w, r)
	if store == nil {
		return
	}

	ex := examples.New("", "")
	if err := store.Add(ex); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	svcctx.LoggerFrom(r.Context()).Debug("example created", "id", ex.ID())

	writeJSON(w, http.StatusOK, store.Records())
}

func (e *CreateExampleEndpoint) Command(getServerURL func() string) *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an example",
		Long: `Create an example. With --input or --output the new example is
filled in with a follow-up update.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			var before examples.Index
			if err := client.Get(ctx, "/examples", &before); err != nil {
				return err
			}
			var after examples.Index
			if err := client.Post(ctx, "/examples", nil, &after); err != nil {
				return err
			}

			created := newestRecord(before, after)
			if created == nil {
				return api.Output(after)
			}
			if !cmd.Flags().Changed("input") && !cmd.Flags().Changed("output") {
				return api.Output(created)
			}

			body := UpdateExampleRequest{}
			if cmd.Flags().Changed("input") {
				body.Input = &input
			}
			if cmd.Flags().Changed("output") {
				body.Output = &output
			}
			var rec examples.Record
			if err := client.Put(ctx, "/examples/"+url.PathEscape(created.ID), body, &rec); err != nil {
				return err
			}
			return api.Output(rec)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Example input")
	cmd.Flags().StringVar(&output, "output", "", "Example output")
	return cmd
}

// newestRecord returns the record in after whose id is not in before.
func newestRecord(before, after examples.Index) *examples.Record {
	seen := make(map[string]bool, len(before))
	for _, id := range before.IDs() {
		seen[id] = true
	}
	for i := len(after) - 1; i >= 0; i-- {
		if !seen[after[i].ID] {
			return &after[i]
		}
	}
	return nil
}

// GetExampleEndpoint handles GET /examples/{id}.
type GetExampleEndpoint struct{ exampleGroup }

func (e *GetExampleEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/examples/{id}", e.handler
}

func (e *GetExampleEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Get an example
//	@Tags			examples
//	@Produce		json
//	@Param			id	path		string	true	"Example ID"
//	@Success		200	{object}	examples.Record
//	@Failure		404	{object}	ErrorResponse
//	@Router			/examples/{id} [get]
func (e *GetExampleEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := exampleStore(w, r)
	if store == nil {
		return
	}

	ex, ok := store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, msgIDNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ex.Record())
}

func (e *GetExampleEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get an example by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var rec examples.Record
			if err := client.Get(cmd.Context(), "/examples/"+url.PathEscape(args[0]), &rec); err != nil {
				return err
			}
			return api.Output(rec)
		},
	}
}

// UpdateExampleEndpoint handles PUT /examples/{id}.
type UpdateExampleEndpoint struct{ exampleGroup }

func (e *UpdateExampleEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/examples/{id}", e.handler
}

func (e *UpdateExampleEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Update an example
//	@Description	Sets input and/or output. Fields absent from the body are left unchanged.
//	@Tags			examples
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Example ID"
//	@Param			body	body		UpdateExampleRequest	true	"Fields to change"
//	@Success		200		{object}	examples.Record
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/examples/{id} [put]
func (e *UpdateExampleEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := exampleStore(w, r)
	if store == nil {
		return
	}

	ex, ok := store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, msgIDNotFound)
		return
	}

	var req UpdateExampleRequest
	if err := decodeBody(r, updateExampleValidator, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Input != nil {
		ex.Input = *req.Input
	}
	if req.Output != nil {
		ex.Output = *req.Output
	}
	if err := store.Add(ex); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ex.Record())
}

func (e *UpdateExampleEndpoint) Command(getServerURL func() string) *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an example's input and/or output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := UpdateExampleRequest{}
			if cmd.Flags().Changed("input") {
				body.Input = &input
			}
			if cmd.Flags().Changed("output") {
				body.Output = &output
			}

			client := api.NewClient(getServerURL())
			var rec examples.Record
			if err := client.Put(cmd.Context(), "/examples/"+url.PathEscape(args[0]), body, &rec); err != nil {
				return err
			}
			return api.Output(rec)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "New input")
	cmd.Flags().StringVar(&output, "output", "", "New output")
	return cmd
}

// DeleteExampleEndpoint handles DELETE /examples/{id}.
type DeleteExampleEndpoint struct{ exampleGroup }

func (e *DeleteExampleEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/examples/{id}", e.handler
}

func (e *DeleteExampleEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Delete an example
//	@Description	Removes the example if present and returns all remaining examples
//	@Tags			examples
//	@Produce		json
//	@Param			id	path		string	true	"Example ID"
//	@Success		200	{object}	map[string]examples.Record
//	@Router			/examples/{id} [delete]
func (e *DeleteExampleEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := exampleStore(w, r)
	if store == nil {
		return
	}

	store.Remove(r.PathValue("id"))
	writeJSON(w, http.StatusOK, store.Records())
}

func (e *DeleteExampleEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an example",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp examples.Index
			if err := client.Delete(cmd.Context(), "/examples/"+url.PathEscape(args[0]), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
