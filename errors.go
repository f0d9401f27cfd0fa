package corpora

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of error for metrics and logging.
type ErrorCode string

// Error codes for categorization.
const (
	ErrCodeConfig     ErrorCode = "CONFIG"     // Configuration errors
	ErrCodeValidation ErrorCode = "VALIDATION" // Input validation errors
	ErrCodeNetwork    ErrorCode = "NETWORK"    // Network/download errors
	ErrCodeNotFound   ErrorCode = "NOTFOUND"   // Missing datasets, splits or files
	ErrCodeData       ErrorCode = "DATA"       // Malformed dataset content
	ErrCodeInternal   ErrorCode = "INTERNAL"   // Internal library errors
)

// CorporaError is the common interface for all library errors.
// Use this interface to handle errors generically while still accessing
// error-specific information.
//
// Example:
//
//	var cerr corpora.CorporaError
//	if errors.As(err, &cerr) {
//	    if cerr.IsRetryable() {
//	        // Retry the operation
//	    }
//	    log.Printf("Error code: %s", cerr.Code())
//	}
type CorporaError interface {
	error

	// Code returns a machine-readable error code for categorization.
	Code() ErrorCode

	// IsRetryable returns true if the operation can be retried.
	IsRetryable() bool
}

// IsRetryable returns true if the error represents a retryable condition.
// This works with any error type in the library.
//
// Retryable conditions include rate limiting (429) and server errors (5xx)
// during downloads. Dataset content errors are never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var cerr CorporaError
	if errors.As(err, &cerr) {
		return cerr.IsRetryable()
	}

	return false
}

// Sentinel errors for registry lookups and dataset access.
var (
	ErrUnknownDataset = errors.New("corpora: unknown dataset")
	ErrUnknownConfig  = errors.New("corpora: unknown dataset config")
	ErrSplitNotFound  = errors.New("corpora: split not found")
	ErrNilBuilder     = errors.New("corpora: builder cannot be nil")
)

// Sentinel errors for configuration validation.
var (
	ErrInvalidConfig        = errors.New("corpora: invalid configuration")
	ErrAutoZipWithoutBounds = errors.New("corpora: auto-zip requires n-first or n-last to be set")
	ErrBoundsWithoutAutoZip = errors.New("corpora: n-first and n-last require auto-zip to be set")
)

// Sentinel errors for downloads and exports.
var (
	ErrOffline            = errors.New("corpora: offline mode is enabled and the file is not cached")
	ErrUnsupportedArchive = errors.New("corpora: unsupported archive format")
	ErrUnsupportedExport  = errors.New("corpora: record type is not supported by this export format")
)

// HTTPError represents a failed download request.
// It supports error wrapping via Unwrap() and comparison via Is().
type HTTPError struct {
	StatusCode int
	URL        string
	Err        error // Underlying error for wrapping
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("corpora: download failed (status %d): %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("corpora: download failed (status %d)", e.StatusCode)
}

// Unwrap returns the underlying error for error chain support.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for errors.Is().
// It matches on status code, allowing comparisons against sentinel values.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// IsRateLimited returns true if the error is a 429 Too Many Requests error.
func (e *HTTPError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsServerError returns true if the error is a 5xx server error.
func (e *HTTPError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRetryable returns true if the request should be retried.
func (e *HTTPError) IsRetryable() bool {
	return e.IsRateLimited() || e.IsServerError()
}

// Code returns the error code for the download error.
// Implements the CorporaError interface.
func (e *HTTPError) Code() ErrorCode {
	return ErrCodeNetwork
}

// Ensure HTTPError implements CorporaError.
var _ CorporaError = (*HTTPError)(nil)

// SegmentError reports a malformed segment line in a tagged corpus file.
// Generation stops at the first malformed line; there is no recovery.
type SegmentError struct {
	File string // file the line was read from
	Line int    // 1-based line number
	Text string // the offending line, stripped
}

// Error implements the error interface.
func (e *SegmentError) Error() string {
	return fmt.Sprintf("corpora: malformed segment line %d in %s: %q", e.Line, e.File, e.Text)
}

// Code returns the error code for the segment error.
// Implements the CorporaError interface.
func (e *SegmentError) Code() ErrorCode {
	return ErrCodeData
}

// IsRetryable returns false for segment errors (the data must be fixed, not retried).
// Implements the CorporaError interface.
func (e *SegmentError) IsRetryable() bool {
	return false
}

// Ensure SegmentError implements CorporaError.
var _ CorporaError = (*SegmentError)(nil)

// MissingDummyFileError reports an expected dummy file whose base filename
// matches none of the files touched during a real generation pass.
type MissingDummyFileError struct {
	Path string // expected file, relative to the dummy data folder
}

// Error implements the error interface.
func (e *MissingDummyFileError) Error() string {
	return fmt.Sprintf("corpora: could not find the file %s in the real downloaded files", e.Path)
}

// Code returns the error code for the missing file error.
// Implements the CorporaError interface.
func (e *MissingDummyFileError) Code() ErrorCode {
	return ErrCodeNotFound
}

// IsRetryable returns false for missing file errors.
// Implements the CorporaError interface.
func (e *MissingDummyFileError) IsRetryable() bool {
	return false
}

// Ensure MissingDummyFileError implements CorporaError.
var _ CorporaError = (*MissingDummyFileError)(nil)

// ValidationError represents a validation error for an input value.
type ValidationError struct {
	Field   string
	Message string
	Err     error // Underlying error for wrapping
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("corpora: validation error for field %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Code returns the error code for the validation error.
// Implements the CorporaError interface.
func (e *ValidationError) Code() ErrorCode {
	return ErrCodeValidation
}

// IsRetryable returns false for validation errors (they should be fixed, not retried).
// Implements the CorporaError interface.
func (e *ValidationError) IsRetryable() bool {
	return false
}

// Ensure ValidationError implements CorporaError.
var _ CorporaError = (*ValidationError)(nil)

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// AsHTTPError extracts an HTTPError from the error chain.
// Returns the HTTPError and true if found, nil and false otherwise.
// This follows Go's errors.As() convention.
//
// Example:
//
//	if httpErr, ok := corpora.AsHTTPError(err); ok {
//	    log.Printf("download failed with status %d", httpErr.StatusCode)
//	}
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// AsSegmentError extracts a SegmentError from the error chain.
// Returns the SegmentError and true if found, nil and false otherwise.
// This follows Go's errors.As() convention.
func AsSegmentError(err error) (*SegmentError, bool) {
	var segErr *SegmentError
	if errors.As(err, &segErr) {
		return segErr, true
	}
	return nil, false
}

// AsMissingDummyFileError extracts a MissingDummyFileError from the error chain.
// Returns the MissingDummyFileError and true if found, nil and false otherwise.
// This follows Go's errors.As() convention.
func AsMissingDummyFileError(err error) (*MissingDummyFileError, bool) {
	var missErr *MissingDummyFileError
	if errors.As(err, &missErr) {
		return missErr, true
	}
	return nil, false
}

// AsValidationError extracts a ValidationError from the error chain.
// Returns the ValidationError and true if found, nil and false otherwise.
// This follows Go's errors.As() convention.
func AsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr, true
	}
	return nil, false
}

// CodedError is an interface for errors that have an error code.
// Implement this interface to allow ErrorCodeOf to extract the code.
type CodedError interface {
	error
	Code() ErrorCode
}

// ErrorCodeOf returns the error code for an error.
// It checks if the error implements CodedError, then falls back to
// inferring the code from the error value.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var coded CodedError
	if errors.As(err, &coded) {
		return coded.Code()
	}

	switch {
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrAutoZipWithoutBounds),
		errors.Is(err, ErrBoundsWithoutAutoZip):
		return ErrCodeConfig

	case errors.Is(err, ErrUnknownDataset),
		errors.Is(err, ErrUnknownConfig),
		errors.Is(err, ErrSplitNotFound):
		return ErrCodeNotFound

	case errors.Is(err, ErrOffline):
		return ErrCodeNetwork

	case errors.Is(err, ErrUnsupportedArchive),
		errors.Is(err, ErrUnsupportedExport):
		return ErrCodeData
	}

	return ErrCodeInternal
}

// WrapError wraps an error with additional context.
// It returns nil if err is nil.
//
// Example:
//
//	if err := doSomething(); err != nil {
//	    return corpora.WrapError(err, "failed to prepare split")
//	}
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("corpora: %s: %w", message, err)
}

// WrapErrorf wraps an error with a formatted message.
// It returns nil if err is nil.
//
// Example:
//
//	if err := doSomething(name); err != nil {
//	    return corpora.WrapErrorf(err, "failed to prepare split %s", name)
//	}
func WrapErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("corpora: %s: %w", message, err)
}
