package endpoints

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/primer/internal/api"
	"github.com/jackzampolin/primer/internal/llmcall"
	"github.com/jackzampolin/primer/internal/providers"
	"github.com/jackzampolin/primer/internal/svcctx"
)

// TranslateRequest is the body of POST /translate.
type TranslateRequest struct {
	Prompt string `json:"prompt"`
}

// TranslateResponse carries the generated reply.
type TranslateResponse struct {
	Text string `json:"text"`
}

// TranslateEndpoint handles POST /translate.
type TranslateEndpoint struct{}

func (e *TranslateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/translate", e.handler
}

func (e *TranslateEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Complete a prompt
//	@Description	Wraps the prompt in the priming examples, sends it to the completion API and returns the reply
//	@Tags			completion
//	@Accept			json
//	@Produce		json
//	@Param			body	body		TranslateRequest	true	"Prompt"
//	@Success		200		{object}	TranslateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/translate [post]
func (e *TranslateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	engine := svcctx.EngineFrom(ctx)
	completer := svcctx.CompleterFrom(ctx)
	if engine == nil || completer == nil {
		writeError(w, http.StatusServiceUnavailable, "completion client not configured")
		return
	}
	logger := svcctx.LoggerFrom(ctx)

	var req TranslateRequest
	if err := decodeBody(r, translateValidator, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := engine.RequestParams(req.Prompt)
	start := time.Now()
	reply, result, err := engine.Complete(ctx, completer, req.Prompt)
	latency := time.Since(start)

	svcctx.LLMCallStoreFrom(ctx).Record(llmcall.New(llmcall.RecordOptions{
		Input:    req.Prompt,
		Request:  params,
		Provider: completer.Name(),
		Latency:  latency,
	}, result, reply, err))

	if err != nil {
		var rl *providers.RateLimitError
		if errors.As(err, &rl) {
			if rl.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(rl.RetryAfter.Seconds()))))
			}
			logger.Warn("completion rate limited", "retry_after", rl.RetryAfter)
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		logger.Error("completion failed", "error", err, "latency", latency)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	logger.Debug("completion succeeded",
		"engine", params.Engine,
		"latency", latency,
		"prompt_tokens", result.PromptTokens,
		"completion_tokens", result.CompletionTokens)

	writeJSON(w, http.StatusOK, TranslateResponse{Text: reply})
}

func (e *TranslateEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "translate <prompt>",
		Short: "Complete a prompt using the primed examples",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp TranslateResponse
			body := TranslateRequest{Prompt: strings.Join(args, " ")}
			if err := client.Post(cmd.Context(), "/translate", body, &resp); err != nil {
				return err
			}
			if api.GetOutputFormat() == api.OutputFormatJSON {
				return api.Output(resp)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
			return err
		},
	}
}
