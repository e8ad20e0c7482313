package tools

import (
	"context"

	"github.com/user/perplexity-mcp/internal/logging"
	"github.com/user/perplexity-mcp/internal/perplexity"
	"github.com/user/perplexity-mcp/internal/prompts"
)

// SearchTool answers general search queries at a configurable detail level
type SearchTool struct {
	BaseTool
}

// NewSearchTool creates the search variant
func NewSearchTool(deps Deps) *SearchTool {
	return &SearchTool{BaseTool: newBaseTool(deps, deps.Model)}
}

// Name implements Tool
func (t *SearchTool) Name() string {
	return "search"
}

// Description implements Tool
func (t *SearchTool) Description() string {
	return "Perform a general search query to get comprehensive information on any topic"
}

// InputSchema implements Tool
func (t *SearchTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "The search query or question",
			},
			"detail_level": map[string]interface{}{
				"type":        "string",
				"description": "Optional: Desired level of detail (brief, normal, detailed)",
				"enum":        []string{"brief", "normal", "detailed"},
			},
			"search_recency_filter": map[string]interface{}{
				"type":        "string",
				"description": "Optional: Filter for search results recency (month, week, day, hour)",
				"enum":        []string{"month", "week", "day", "hour"},
			},
		},
		"required": []string{"query"},
	}
}

// Execute implements Tool
func (t *SearchTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, err := requireString(args, "query")
	if err != nil {
		return "", err
	}

	detailLevel := optionalString(args, "detail_level", "normal")
	recencyFilter := optionalString(args, "search_recency_filter", "")

	templateName := prompts.SearchNormal
	switch detailLevel {
	case "brief":
		templateName = prompts.SearchBrief
	case "detailed":
		templateName = prompts.SearchDetailed
	}

	prompt, err := t.prompts.Render(templateName, struct{ Query string }{Query: query})
	if err != nil {
		return "", err
	}

	t.logger.Info("prepared search prompt", logging.String("detail_level", detailLevel))

	resp, err := t.caller.Call(ctx, perplexity.ChatRequest{
		Model:               t.model,
		Messages:            perplexity.UserMessage(prompt),
		SearchRecencyFilter: recencyFilter,
	})
	if err != nil {
		return "", err
	}

	t.reportUsage(resp)

	return FormatWithReferences(resp)
}
