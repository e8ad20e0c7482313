// Package usage defines the best-effort token-usage telemetry sink invoked
// after each completed API call.
package usage

import (
	"github.com/user/perplexity-mcp/internal/logging"
)

// Metrics holds per-call token counts
type Metrics struct {
	CompletionTokens uint64 `json:"completion_tokens"`
	PromptTokens     uint64 `json:"prompt_tokens"`
	TotalTokens      uint64 `json:"total_tokens"`
}

// Report is one usage record for a completed call
type Report struct {
	Model string  `json:"model"`
	Usage Metrics `json:"usage"`
}

// Reporter receives usage records. Implementations must be safe for
// concurrent use. Reporting failures are swallowed by callers: telemetry
// never fails a user-visible tool call.
type Reporter interface {
	Report(report Report) error
}

// NopReporter discards all reports. It is the default sink.
type NopReporter struct{}

// NewNopReporter creates a no-op reporter
func NewNopReporter() *NopReporter {
	return &NopReporter{}
}

// Report discards the record
func (r *NopReporter) Report(report Report) error {
	return nil
}

// LogReporter writes usage records to the structured log
type LogReporter struct {
	logger *logging.Logger
}

// NewLogReporter creates a reporter backed by the given logger
func NewLogReporter(logger *logging.Logger) *LogReporter {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &LogReporter{logger: logger.Named("usage")}
}

// Report logs the record
func (r *LogReporter) Report(report Report) error {
	r.logger.Info("token usage",
		logging.String("model", report.Model),
		logging.Int64("prompt_tokens", int64(report.Usage.PromptTokens)),
		logging.Int64("completion_tokens", int64(report.Usage.CompletionTokens)),
		logging.Int64("total_tokens", int64(report.Usage.TotalTokens)),
	)
	return nil
}
