package errors

import (
	"fmt"
)

// MissingCredentialError is raised when no API key is configured.
// Fatal at startup, recoverable per call when checked lazily.
type MissingCredentialError struct {
	*ServerError
}

// NewMissingCredentialError creates a new missing credential error
func NewMissingCredentialError(varName string) *MissingCredentialError {
	return &MissingCredentialError{
		ServerError: &ServerError{
			Message: fmt.Sprintf("%s not set in environment", varName),
			Context: &ErrorContext{
				Operation: "API Authentication",
				Component: "Gateway",
				Details: map[string]interface{}{
					"variable": varName,
				},
				Suggestions: []string{
					fmt.Sprintf("Export the variable: export %s='your-key'", varName),
					"Add the key to a .env file in the working directory",
				},
				Recoverable: false,
			},
			ExitCode: ExitCredentialError,
		},
	}
}

// UpstreamUnavailableError is raised when the transport-level call to the
// remote API fails. No automatic retry is performed.
type UpstreamUnavailableError struct {
	*ServerError
}

// NewUpstreamUnavailableError creates a new upstream unavailable error
func NewUpstreamUnavailableError(cause error) *UpstreamUnavailableError {
	return &UpstreamUnavailableError{
		ServerError: &ServerError{
			Message: "Perplexity API request failed",
			Cause:   cause,
			Context: &ErrorContext{
				Operation: "API Call",
				Component: "Gateway",
				Suggestions: []string{
					"Check your internet connection",
					"Verify the API endpoint is accessible",
					"Try again later (service may be unavailable)",
				},
				Recoverable: true,
			},
			ExitCode: ExitAPIError,
		},
	}
}

// MalformedResponseError is raised when a remote payload is missing a
// required field. Raised at formatting time, naming the offending field.
type MalformedResponseError struct {
	*ServerError
	Field string
}

// NewMalformedResponseError creates a new malformed response error
func NewMalformedResponseError(field string) *MalformedResponseError {
	return &MalformedResponseError{
		ServerError: &ServerError{
			Message: fmt.Sprintf("Failed to extract %s from response", field),
			Context: &ErrorContext{
				Operation: "Response Formatting",
				Component: "Formatter",
				Details: map[string]interface{}{
					"field": field,
				},
				Recoverable: false,
			},
			ExitCode: ExitAPIError,
		},
		Field: field,
	}
}
