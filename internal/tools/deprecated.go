package tools

import (
	"context"

	"github.com/user/perplexity-mcp/internal/logging"
	"github.com/user/perplexity-mcp/internal/perplexity"
	"github.com/user/perplexity-mcp/internal/prompts"
)

// CheckDeprecatedCodeTool analyzes code for deprecated features and
// suggests migration paths
type CheckDeprecatedCodeTool struct {
	BaseTool
}

// NewCheckDeprecatedCodeTool creates the deprecation analysis variant
func NewCheckDeprecatedCodeTool(deps Deps) *CheckDeprecatedCodeTool {
	return &CheckDeprecatedCodeTool{BaseTool: newBaseTool(deps, deps.Model)}
}

// Name implements Tool
func (t *CheckDeprecatedCodeTool) Name() string {
	return "check_deprecated_code"
}

// Description implements Tool
func (t *CheckDeprecatedCodeTool) Description() string {
	return "Check if code or dependencies might be using deprecated features"
}

// InputSchema implements Tool
func (t *CheckDeprecatedCodeTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"code": map[string]interface{}{
				"type":        "string",
				"description": "The code snippet or dependency to check",
			},
			"technology": map[string]interface{}{
				"type":        "string",
				"description": "The technology or framework context (e.g., 'React', 'Node.js')",
			},
		},
		"required": []string{"code"},
	}
}

// Execute implements Tool
func (t *CheckDeprecatedCodeTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	code, err := requireString(args, "code")
	if err != nil {
		return "", err
	}
	technology := optionalString(args, "technology", "")

	prompt, err := t.prompts.Render(prompts.CheckDeprecated, struct {
		Code       string
		Technology string
	}{Code: code, Technology: technology})
	if err != nil {
		return "", err
	}

	t.logger.Info("prepared deprecation check prompt", logging.String("technology", technology))

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
