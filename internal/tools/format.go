package tools

import (
	"fmt"
	"strings"

	"github.com/user/perplexity-mcp/internal/perplexity"
)

// FormatWithReferences renders the standard tool output: the answer text
// followed by a numbered References section when citations are present.
// Formatting is a pure projection of the response; content with no
// citations is returned unchanged.
func FormatWithReferences(resp *perplexity.ChatResponse) (string, error) {
	content, err := resp.Content()
	if err != nil {
		return "", err
	}

	if len(resp.Citations) == 0 {
		return content, nil
	}

	references := make([]string, len(resp.Citations))
	for i, citation := range resp.Citations {
		references[i] = fmt.Sprintf("[%d]: %s", i+1, citation.Display())
	}

	return fmt.Sprintf("%s\n\nReferences:\n%s", content, strings.Join(references, "\n")), nil
}

// FormatDeepResearch renders deep-research output with style-aware
// citations. APA gets a bibliography section; other styles fall back to a
// flat numbered URL list. Both endings carry a source-quality summary.
func FormatDeepResearch(resp *perplexity.ChatResponse, citationStyle string) (string, error) {
	content, err := resp.Content()
	if err != nil {
		return "", err
	}

	if len(resp.Citations) == 0 {
		return content, nil
	}

	var refs strings.Builder

	switch citationStyle {
	case "apa":
		refs.WriteString("\n\n## References\n\n")
		for i, citation := range resp.Citations {
			refs.WriteString(formatAPAEntry(i+1, citation))
		}
	default:
		refs.WriteString("\n\n## Sources\n\n")
		for i, citation := range resp.Citations {
			fmt.Fprintf(&refs, "[%d]: %s\n", i+1, citation.Display())
		}
	}

	refs.WriteString("\n## Source Assessment\n\n")
	refs.WriteString("| Category | Metrics |\n")
	refs.WriteString("|----------|--------|\n")
	fmt.Fprintf(&refs, "| Total Sources | %d |\n", len(resp.Citations))
	if resp.SearchInfo != nil && resp.SearchInfo.Iterations != nil {
		fmt.Fprintf(&refs, "| Search Iterations | %d |\n", *resp.SearchInfo.Iterations)
	}

	return fmt.Sprintf("%s\n%s", content, refs.String()), nil
}

// formatAPAEntry renders one APA-shaped paragraph. Missing optional fields
// are omitted without leaving stray punctuation; an entry without the
// required title and URL falls back to a plain numbered line.
func formatAPAEntry(index int, c perplexity.Citation) string {
	if c.IsString() || c.Title == "" || c.URL == "" {
		fallback := c.Raw
		if fallback == "" {
			fallback = c.URL
		}
		if fallback == "" {
			fallback = "Unknown source"
		}
		return fmt.Sprintf("[%d] %s\n\n", index, fallback)
	}

	parts := make([]string, 0, 5)
	if len(c.Authors) > 0 {
		parts = append(parts, strings.Join(c.Authors, ", ")+".")
	}
	if c.Date != "" {
		parts = append(parts, "("+c.Date+").")
	}
	if c.Publisher != "" {
		parts = append(parts, c.Publisher+".")
	}
	parts = append(parts, "*"+c.Title+"*.", c.URL)

	return fmt.Sprintf("[%d] %s\n\n", index, strings.Join(parts, " "))
}
