package tools

import (
	"context"

	"github.com/user/perplexity-mcp/internal/logging"
	"github.com/user/perplexity-mcp/internal/perplexity"
	"github.com/user/perplexity-mcp/internal/prompts"
)

// Deep-research sampling parameters: low temperature for factual output,
// bounded response length, multiple search rounds.
const (
	deepResearchTemperature      = 0.2
	deepResearchMaxTokens        = 4000
	deepResearchSearchIterations = 10
)

// DeepResearchTool produces a multi-source research report with citations
// in the requested bibliographic style
type DeepResearchTool struct {
	BaseTool
}

// NewDeepResearchTool creates the deep research variant
func NewDeepResearchTool(deps Deps) *DeepResearchTool {
	return &DeepResearchTool{BaseTool: newBaseTool(deps, deps.DeepResearchModel)}
}

// Name implements Tool
func (t *DeepResearchTool) Name() string {
	return "deep_research"
}

// Description implements Tool
func (t *DeepResearchTool) Description() string {
	return "Conduct in-depth research on complex topics by analyzing hundreds of sources"
}

// InputSchema implements Tool
func (t *DeepResearchTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"topic": map[string]interface{}{
				"type":        "string",
				"description": "The research topic or question to investigate in depth",
			},
			"depth": map[string]interface{}{
				"type":        "string",
				"description": "Desired research depth (brief, comprehensive, exhaustive)",
				"enum":        []string{"brief", "comprehensive", "exhaustive"},
			},
			"focus": map[string]interface{}{
				"type":        "string",
				"description": "Optional focus area (academic, business, technical, historical, etc.)",
			},
			"time_constraint": map[string]interface{}{
				"type":        "string",
				"description": "Optional time period to focus on (recent, last year, historical, etc.)",
			},
			"citation_style": map[string]interface{}{
				"type":        "string",
				"description": "Citation style for references (apa, mla, chicago, ieee)",
				"enum":        []string{"apa", "mla", "chicago", "ieee"},
			},
		},
		"required": []string{"topic"},
	}
}

// Execute implements Tool
func (t *DeepResearchTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	topic, err := requireString(args, "topic")
	if err != nil {
		return "", err
	}

	depth := optionalString(args, "depth", "comprehensive")
	focus := optionalString(args, "focus", "")
	timeConstraint := optionalString(args, "time_constraint", "")
	citationStyle := optionalString(args, "citation_style", "apa")

	systemPrompt, err := t.prompts.Render(prompts.DeepResearchSystem, nil)
	if err != nil {
		return "", err
	}
	userPrompt, err := t.prompts.Render(prompts.DeepResearchUser, struct {
		Topic          string
		Depth          string
		Focus          string
		TimeConstraint string
		CitationStyle  string
	}{
		Topic:          topic,
		Depth:          depth,
		Focus:          focus,
		TimeConstraint: timeConstraint,
		CitationStyle:  citationStyle,
	})
	if err != nil {
		return "", err
	}

	t.logger.Info("prepared deep research prompt",
		logging.String("depth", depth),
		logging.String("citation_style", citationStyle),
	)

	temperature := deepResearchTemperature
	resp, err := t.caller.Call(ctx, perplexity.ChatRequest{
		Model: t.model,
		Messages: []perplexity.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:         &temperature,
		MaxTokens:           deepResearchMaxTokens,
		SearchIterations:    deepResearchSearchIterations,
		SearchRecencyFilter: perplexity.RecencyFromTimeConstraint(timeConstraint),
	})
	if err != nil {
		return "", err
	}

	t.reportUsage(resp)

	return FormatDeepResearch(resp, citationStyle)
}
