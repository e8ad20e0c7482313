package errors

import (
	"fmt"
)

// InvalidArgumentError is raised when a tool invocation is missing a
// required argument or supplies one with the wrong type. It is
// user-correctable and returned to the caller, never logged as a fault.
type InvalidArgumentError struct {
	*ServerError
	Field string
}

// NewInvalidArgumentError creates a new invalid argument error naming the field
func NewInvalidArgumentError(field string) *InvalidArgumentError {
	return &InvalidArgumentError{
		ServerError: &ServerError{
			Message: fmt.Sprintf("Missing or invalid argument: %s", field),
			Context: &ErrorContext{
				Operation: "Argument Validation",
				Component: "Tool",
				Details: map[string]interface{}{
					"field": field,
				},
				Suggestions: []string{
					fmt.Sprintf("Provide a string value for '%s'", field),
					"Check the tool's input schema for required fields",
				},
				Recoverable: true,
			},
			ExitCode: ExitToolError,
		},
		Field: field,
	}
}

// ToolNotFoundError is raised when dispatch cannot match a tool name
type ToolNotFoundError struct {
	*ServerError
	Name string
}

// NewToolNotFoundError creates a new tool not found error
func NewToolNotFoundError(name string) *ToolNotFoundError {
	return &ToolNotFoundError{
		ServerError: &ServerError{
			Message: fmt.Sprintf("Tool not found: %s", name),
			Context: &ErrorContext{
				Operation: "Tool Dispatch",
				Component: "Registry",
				Details: map[string]interface{}{
					"tool": name,
				},
				Suggestions: []string{
					"List available tools with 'tools/list'",
				},
				Recoverable: true,
			},
			ExitCode: ExitToolError,
		},
		Name: name,
	}
}
