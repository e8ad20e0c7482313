// Package tools implements the research tool variants exposed to the MCP
// dispatcher and the registry that routes tool calls to them.
package tools

import (
	"context"

	"github.com/user/perplexity-mcp/internal/errors"
	"github.com/user/perplexity-mcp/internal/logging"
	"github.com/user/perplexity-mcp/internal/perplexity"
	"github.com/user/perplexity-mcp/internal/prompts"
	"github.com/user/perplexity-mcp/internal/usage"
)

// Caller abstracts the API gateway so tools can be tested against a mock
type Caller interface {
	Call(ctx context.Context, req perplexity.ChatRequest) (*perplexity.ChatResponse, error)
}

// Tool is the interface all tool variants implement. Variants are
// stateless apart from injected collaborators; Execute is safe to invoke
// concurrently.
type Tool interface {
	// Name returns the tool name
	Name() string

	// Description returns a description of what the tool does
	Description() string

	// InputSchema returns the JSON schema for the tool's arguments
	InputSchema() map[string]interface{}

	// Execute runs the tool and returns the formatted response text
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}

// Deps are the collaborators shared by all tool variants
type Deps struct {
	Caller            Caller
	Reporter          usage.Reporter
	Prompts           *prompts.Manager
	Logger            *logging.Logger
	Model             string
	DeepResearchModel string
}

// BaseTool holds the injected collaborators
type BaseTool struct {
	caller   Caller
	reporter usage.Reporter
	prompts  *prompts.Manager
	logger   *logging.Logger
	model    string
}

func newBaseTool(deps Deps, model string) BaseTool {
	reporter := deps.Reporter
	if reporter == nil {
		reporter = usage.NewNopReporter()
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return BaseTool{
		caller:   deps.Caller,
		reporter: reporter,
		prompts:  deps.Prompts,
		logger:   logger,
		model:    model,
	}
}

// requireString extracts a required string argument, yielding an
// InvalidArgument error naming the field when missing or mistyped.
func requireString(args map[string]interface{}, field string) (string, error) {
	v, ok := args[field]
	if !ok {
		return "", errors.NewInvalidArgumentError(field)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errors.NewInvalidArgumentError(field)
	}
	return s, nil
}

// optionalString extracts an optional string argument, falling back to the
// supplied default. Unrecognized values are accepted as opaque text.
func optionalString(args map[string]interface{}, field, fallback string) string {
	if v, ok := args[field]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// reportUsage forwards the response's usage block to the reporter when it
// is complete. Reporting is best-effort: failures are logged and dropped.
func (b *BaseTool) reportUsage(resp *perplexity.ChatResponse) {
	if resp.Model == "" || !resp.Usage.Complete() {
		return
	}

	report := usage.Report{
		Model: resp.Model,
		Usage: usage.Metrics{
			CompletionTokens: *resp.Usage.CompletionTokens,
			PromptTokens:     *resp.Usage.PromptTokens,
			TotalTokens:      *resp.Usage.TotalTokens,
		},
	}
	if err := b.reporter.Report(report); err != nil {
		b.logger.Warn("usage reporting failed", logging.Error(errors.NewReportingError(err)))
	}
}
