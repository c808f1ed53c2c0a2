package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// maxBodyBytes caps request bodies read by decodeBody.
const maxBodyBytes = 1 << 20

const updateExampleSchema = `{
  "type": "object",
  "properties": {
    "input":  {"type": "string"},
    "output": {"type": "string"}
  }
}`

const translateSchema = `{
  "type": "object",
  "properties": {
    "prompt": {"type": "string"}
  },
  "required": ["prompt"]
}`

var (
	updateExampleValidator = mustCompileSchema("update_example.json", updateExampleSchema)
	translateValidator     = mustCompileSchema("translate.json", translateSchema)
)

func mustCompileSchema(name, raw string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("failed to load schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema %s: %v", name, err))
	}
	return schema
}

// decodeBody reads a JSON body, validates it against schema and decodes it
// into dst. The returned error is safe to show to the client.
func decodeBody(r *http.Request, schema *jsonschema.Schema, dst any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return errors.New("request body is required")
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return errors.New(describeValidation(ve))
		}
		return err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// describeValidation reports the first leaf failure, e.g.
// "/input: expected string, but got number".
func describeValidation(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return loc + ": " + ve.Message
}
