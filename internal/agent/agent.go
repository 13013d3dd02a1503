// Package agent runs the bounded tool-calling reasoning loop around the
// chat model.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"concierge/internal/domain"
	"concierge/internal/tools"
)

// Config holds configuration for creating a new Agent.
type Config struct {
	// SystemPrompt is the persona and behavioral instruction for the model.
	SystemPrompt string
	// MaxIterations bounds the number of tool-calling rounds.
	MaxIterations int
}

// Agent drives the chat model through zero or more tool invocations until it
// emits a final natural-language answer.
type Agent struct {
	model   domain.ChatModel
	config  Config
	tools   []tools.Tool
	toolMap map[string]tools.Tool
}

func New(model domain.ChatModel, config Config, toolset []tools.Tool) *Agent {
	if config.MaxIterations <= 0 {
		config.MaxIterations = 10
	}
	toolMap := make(map[string]tools.Tool, len(toolset))
	for _, t := range toolset {
		toolMap[t.Name()] = t
	}
	return &Agent{
		model:   model,
		config:  config,
		tools:   toolset,
		toolMap: toolMap,
	}
}

// Run executes the reasoning loop for one query. The returned string is the
// model's final answer, verbatim. Tool failures and malformed tool
// selections are fed back as observations; only model-call failures and an
// exhausted iteration budget surface as errors.
func (a *Agent) Run(ctx context.Context, input string) (string, error) {
	messages := []domain.Message{
		{Role: "system", Content: a.config.SystemPrompt},
		{Role: "user", Content: input},
	}

	for iteration := 0; iteration < a.config.MaxIterations; iteration++ {
		resp, err := a.model.ChatWithTools(ctx, messages, a.toolDescriptors())
		if err != nil {
			return "", fmt.Errorf("chat model call failed (iteration %d): %w", iteration+1, err)
		}

		// No tool calls means the model produced its final answer.
		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		messages = append(messages, domain.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, tc := range resp.ToolCalls {
			observation := a.executeTool(ctx, tc)
			messages = append(messages, domain.Message{
				Role:       "tool",
				Content:    observation,
				ToolCallID: tc.ID,
			})
		}
	}

	return "", fmt.Errorf("max iterations (%d) exceeded", a.config.MaxIterations)
}

// executeTool resolves and runs one tool call. Every failure mode becomes a
// corrective observation string so the loop can recover instead of aborting.
func (a *Agent) executeTool(ctx context.Context, tc domain.ToolCall) string {
	tool, ok := a.toolMap[tc.Function.Name]
	if !ok {
		slog.Warn("model selected unknown tool", "tool", tc.Function.Name)
		return fmt.Sprintf("Error: unknown tool %q. Available tools: %s", tc.Function.Name, a.toolNames())
	}

	slog.Debug("executing tool", "tool", tc.Function.Name, "arguments", tc.Function.Arguments)
	result, err := tool.Run(ctx, tc.Function.Arguments)
	if err != nil {
		slog.Error("tool execution failed", "tool", tc.Function.Name, "error", err)
		return fmt.Sprintf("Error: %v", err)
	}
	return result
}

func (a *Agent) toolDescriptors() []domain.ToolDescriptor {
	descriptors := make([]domain.ToolDescriptor, len(a.tools))
	for i, t := range a.tools {
		descriptors[i] = domain.ToolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		}
	}
	return descriptors
}

func (a *Agent) toolNames() string {
	names := ""
	for i, t := range a.tools {
		if i > 0 {
			names += ", "
		}
		names += t.Name()
	}
	return names
}
