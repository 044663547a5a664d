package reporting

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTool     = errors.New("unknown tool")
	ErrInvalidArgument = errors.New("invalid argument")
)

// ToolError reports a call to a tool this server does not expose.
type ToolError struct {
	Name string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

func (e *ToolError) Unwrap() error {
	return ErrUnknownTool
}

// ValidationError carries every argument problem found for one call.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}
