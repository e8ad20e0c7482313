package perplexity

import (
	"encoding/json"

	"github.com/user/perplexity-mcp/internal/errors"
)

// Message is one chat message in the outbound request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a single-message conversation
func UserMessage(content string) []Message {
	return []Message{{Role: "user", Content: content}}
}

// ChatRequest describes one outbound completion call
type ChatRequest struct {
	Model               string    `json:"model"`
	Messages            []Message `json:"messages"`
	SearchRecencyFilter string    `json:"search_recency_filter,omitempty"`
	Temperature         *float64  `json:"temperature,omitempty"`
	MaxTokens           int       `json:"max_tokens,omitempty"`
	SearchIterations    int       `json:"search_iterations,omitempty"`
}

// Usage is the token-usage block of a response. Fields are pointers so a
// partial block is distinguishable from zero counts.
type Usage struct {
	CompletionTokens *uint64 `json:"completion_tokens"`
	PromptTokens     *uint64 `json:"prompt_tokens"`
	TotalTokens      *uint64 `json:"total_tokens"`
}

// Complete reports whether all three counters are present
func (u *Usage) Complete() bool {
	return u != nil && u.CompletionTokens != nil && u.PromptTokens != nil && u.TotalTokens != nil
}

// SearchInfo carries search metadata for deep-research responses
type SearchInfo struct {
	Iterations *int64 `json:"iterations"`
}

// Citation is one entry of a response's citation list. The API returns a
// heterogeneous list: entries are either bare URL strings or structured
// records, within the same response.
type Citation struct {
	// Raw holds the bare string form; empty for structured entries
	Raw string

	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Authors   []string `json:"authors"`
	Date      string   `json:"date"`
	Publisher string   `json:"publisher"`
}

// UnmarshalJSON accepts both the bare-string and the structured shape
func (c *Citation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Citation{Raw: s}
		return nil
	}

	type structured Citation
	var sc structured
	if err := json.Unmarshal(data, &sc); err != nil {
		return err
	}
	*c = Citation(sc)
	return nil
}

// IsString reports whether the citation was a bare URL string
func (c Citation) IsString() bool {
	return c.Raw != ""
}

// Display returns the citation's best textual form for a numbered list:
// the bare string, a structured entry's URL, or "Unknown URL".
func (c Citation) Display() string {
	if c.Raw != "" {
		return c.Raw
	}
	if c.URL != "" {
		return c.URL
	}
	return "Unknown URL"
}

// ChoiceMessage keeps content raw so a payload with a missing or non-string
// content field still round-trips through the gateway; extraction is
// validated at formatting time.
type ChoiceMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// Choice is one completion choice
type Choice struct {
	Message ChoiceMessage `json:"message"`
}

// ChatResponse is the parsed completion payload. Raw preserves the exact
// body bytes for cache storage.
type ChatResponse struct {
	Model      string      `json:"model"`
	Choices    []Choice    `json:"choices"`
	Citations  []Citation  `json:"citations"`
	Usage      *Usage      `json:"usage"`
	SearchInfo *SearchInfo `json:"search_info"`

	Raw json.RawMessage `json:"-"`
}

// Content extracts choices[0].message.content as a string. A missing or
// non-string field yields a MalformedResponse error naming it.
func (r *ChatResponse) Content() (string, error) {
	if len(r.Choices) == 0 {
		return "", errors.NewMalformedResponseError("choices[0].message.content")
	}
	var content string
	if err := json.Unmarshal(r.Choices[0].Message.Content, &content); err != nil {
		return "", errors.NewMalformedResponseError("choices[0].message.content")
	}
	return content, nil
}

// ParseResponse decodes a completion payload, keeping the raw bytes
func ParseResponse(data []byte) (*ChatResponse, error) {
	var resp ChatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	resp.Raw = append(json.RawMessage(nil), data...)
	return &resp, nil
}
