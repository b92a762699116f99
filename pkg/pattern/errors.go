package pattern

import "fmt"

// ErrorCode classifies pattern construction failures. Construction
// errors are fatal: a pattern that fails validation is never matched.
type ErrorCode string

const (
	ErrInvalidNode      ErrorCode = "invalid_node"
	ErrEmptyName        ErrorCode = "empty_name"
	ErrMisplacedRest    ErrorCode = "misplaced_rest"
	ErrDuplicateRest    ErrorCode = "duplicate_rest"
	ErrDuplicateName    ErrorCode = "duplicate_name"
	ErrForwardReference ErrorCode = "forward_reference"
)

// InvalidPatternError reports a malformed pattern, with the path of the
// offending node relative to the pattern root.
type InvalidPatternError struct {
	Code   ErrorCode
	Path   string
	Detail string
}

func (e *InvalidPatternError) Error() string {
	path := e.Path
	if path == "" {
		path = "pattern"
	}
	if e.Detail == "" {
		return fmt.Sprintf("invalid pattern at %s: %s", path, e.Code)
	}
	return fmt.Sprintf("invalid pattern at %s: %s (%s)", path, e.Code, e.Detail)
}

func invalid(code ErrorCode, path, format string, args ...any) *InvalidPatternError {
	return &InvalidPatternError{Code: code, Path: path, Detail: fmt.Sprintf(format, args...)}
}
