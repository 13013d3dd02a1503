// Package tools implements the retrieval and user-context tools exposed to
// the reasoning loop.
package tools

import (
	"context"
	"encoding/json"
	"strings"
)

// Tool is a named operation the chat model may invoke with a text argument.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema for the tool's arguments.
	Parameters() string
	// Run executes the tool. The input is the model's raw argument string.
	Run(ctx context.Context, input string) (string, error)
}

// stringArg extracts a named string field from the model's JSON arguments.
// Models occasionally emit a bare string instead of an object; that raw
// value is used as-is so a syntax slip degrades into an observation rather
// than an abort.
func stringArg(input, key string) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(input), &args); err == nil {
		if v, ok := args[key].(string); ok {
			return strings.TrimSpace(v)
		}
	}
	return strings.Trim(strings.TrimSpace(input), `"`)
}
