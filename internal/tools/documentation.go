package tools

import (
	"context"

	"github.com/user/perplexity-mcp/internal/logging"
	"github.com/user/perplexity-mcp/internal/perplexity"
	"github.com/user/perplexity-mcp/internal/prompts"
)

// GetDocumentationTool produces structured documentation for a technology,
// library, or API
type GetDocumentationTool struct {
	BaseTool
}

// NewGetDocumentationTool creates the documentation variant
func NewGetDocumentationTool(deps Deps) *GetDocumentationTool {
	return &GetDocumentationTool{BaseTool: newBaseTool(deps, deps.Model)}
}

// Name implements Tool
func (t *GetDocumentationTool) Name() string {
	return "get_documentation"
}

// Description implements Tool
func (t *GetDocumentationTool) Description() string {
	return "Get documentation and usage examples for a specific technology, library, or API"
}

// InputSchema implements Tool
func (t *GetDocumentationTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "The technology, library, or API to get documentation for",
			},
			"context": map[string]interface{}{
				"type":        "string",
				"description": "Additional context or specific aspects to focus on",
			},
		},
		"required": []string{"query"},
	}
}

// Execute implements Tool
func (t *GetDocumentationTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, err := requireString(args, "query")
	if err != nil {
		return "", err
	}
	docContext := optionalString(args, "context", "")

	prompt, err := t.prompts.Render(prompts.Documentation, struct {
		Query   string
		Context string
	}{Query: query, Context: docContext})
	if err != nil {
		return "", err
	}

	t.logger.Info("prepared documentation prompt", logging.String("query", query))

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
