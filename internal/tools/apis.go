package tools

import (
	"context"

	"github.com/user/perplexity-mcp/internal/logging"
	"github.com/user/perplexity-mcp/internal/perplexity"
	"github.com/user/perplexity-mcp/internal/prompts"
)

// FindAPIsTool evaluates candidate APIs for a stated requirement
type FindAPIsTool struct {
	BaseTool
}

// NewFindAPIsTool creates the API discovery variant
func NewFindAPIsTool(deps Deps) *FindAPIsTool {
	return &FindAPIsTool{BaseTool: newBaseTool(deps, deps.Model)}
}

// Name implements Tool
func (t *FindAPIsTool) Name() string {
	return "find_apis"
}

// Description implements Tool
func (t *FindAPIsTool) Description() string {
	return "Find and evaluate APIs that could be integrated into a project"
}

// InputSchema implements Tool
func (t *FindAPIsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"requirement": map[string]interface{}{
				"type":        "string",
				"description": "The functionality or requirement you're looking to fulfill",
			},
			"context": map[string]interface{}{
				"type":        "string",
				"description": "Additional context about the project or specific needs",
			},
		},
		"required": []string{"requirement"},
	}
}

// Execute implements Tool
func (t *FindAPIsTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	requirement, err := requireString(args, "requirement")
	if err != nil {
		return "", err
	}
	reqContext := optionalString(args, "context", "")

	prompt, err := t.prompts.Render(prompts.FindAPIs, struct {
		Requirement string
		Context     string
	}{Requirement: requirement, Context: reqContext})
	if err != nil {
		return "", err
	}

	t.logger.Info("prepared API search prompt", logging.String("requirement", requirement))

	resp, err := t.caller.Call(ctx, perplexity.ChatRequest{
		Model:    t.model,
		Messages: perplexity.UserMessage(prompt),
	})
	if err != nil {
		return "", err
	}

	t.reportUsage(resp)

	return FormatWithReferences(resp)
}
