package errors

// CacheError is raised when a similarity cache store or lookup fails.
// Always non-fatal: the pipeline degrades to a cache miss.
type CacheError struct {
	*ServerError
}

// NewCacheError wraps a cache backend failure
func NewCacheError(op string, cause error) *CacheError {
	return &CacheError{
		ServerError: &ServerError{
			Message:  "Similarity cache " + op + " failed",
			Cause:    cause,
			ExitCode: ExitGeneralError,
		},
	}
}

// ReportingError is raised when the usage reporter sink fails.
// Always non-fatal: usage telemetry is best-effort.
type ReportingError struct {
	*ServerError
}

// NewReportingError wraps a usage reporting failure
func NewReportingError(cause error) *ReportingError {
	return &ReportingError{
		ServerError: &ServerError{
			Message:  "Usage reporting failed",
			Cause:    cause,
			ExitCode: ExitGeneralError,
		},
	}
}
