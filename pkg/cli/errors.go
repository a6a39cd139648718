package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by the conftool binary.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
)

// ConfigError represents an error in configuration or flags.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// FailedError reports that a command completed and found problems it has
// already printed. It only sets the exit code.
type FailedError struct {
	Command string
	Reason  string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// NewFailedError creates a new FailedError.
func NewFailedError(command, reason string) *FailedError {
	return &FailedError{
		Command: command,
		Reason:  reason,
	}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitUsage
	}
	return ExitFailed
}

// IsSilent reports whether err has already been reported to the user.
func IsSilent(err error) bool {
	var failed *FailedError
	return errors.As(err, &failed)
}
