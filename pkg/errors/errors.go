package errors

import "fmt"

// ErrUnknownTool is returned when a tool name is not registered
func ErrUnknownTool(name string) error {
	return fmt.Errorf("unknown tool: %s", name)
}

// ErrMissingArgument is returned when a required tool argument is absent
func ErrMissingArgument(name string) error {
	return fmt.Errorf("%s is required", name)
}

// ErrInvalidArguments is returned when tool arguments cannot be decoded
func ErrInvalidArguments(err error) error {
	return fmt.Errorf("invalid tool arguments: %w", err)
}
