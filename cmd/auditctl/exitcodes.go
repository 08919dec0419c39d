package main

import "fmt"

// Exit codes for auditctl.
const (
	ExitOK          = 0
	ExitInvalidArgs = 1 // Bad flags, unreadable file, unknown category.
	ExitInputError  = 2 // The export itself is unusable.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}
