package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	// Generic codes
	CodeUnknown Code = "unknown"

	// Tracker client errors
	CodeCLINotFound Code = "cli_not_found"
	CodeCLIFailed   Code = "cli_failed"
	CodeParseFailed Code = "parse_failed"
	CodeNotFound    Code = "not_found"
	CodeHTTPFailed  Code = "http_failed"

	// Graph/layout errors
	CodeCyclicDependency  Code = "cyclic_dependency"
	CodeDuplicateID       Code = "duplicate_id"
	CodeInvalidIssueData  Code = "invalid_issue_data"
	CodeGraphConstruction Code = "graph_construction_failed"

	// Reconciliation errors
	CodeMissingRemoteRef Code = "missing_remote_ref"
	CodeRemoteFailed     Code = "remote_failed"

	// Storage/config errors
	CodeStorage            Code = "storage_failed"
	CodeConfigurationError Code = "configuration_error"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// HasCode reports whether any structured error in the chain carries code.
// CodeOf only reports the outermost one, which hides causes wrapped by a
// more general code such as CodeGraphConstruction.
func HasCode(err error, code Code) bool {
	for err != nil {
		var structured Error
		if !errors.As(err, &structured) {
			return false
		}
		if structured.Code == code {
			return true
		}
		err = structured.Err
	}
	return false
}
