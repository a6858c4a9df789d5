package errors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMediaNeedsDisk is returned when media transcoding is configured on top
// of a staging adapter whose paths an external process cannot open.
var ErrMediaNeedsDisk = errors.New("media transcoding requires disk staging")

// ErrorCategory classifies different types of errors that can occur
// while a compression job runs. This helps in proper error
// handling, monitoring, and debugging of the system.
type ErrorCategory int

const (
	// ErrorStorage indicates errors related to staging storage operations
	// such as temporary file I/O, disk space or permissions.
	ErrorStorage ErrorCategory = iota + 1

	// ErrorCompression indicates errors inside a byte-stream codec,
	// such as an encoder that could not be created or flushed.
	ErrorCompression

	// ErrorDecode indicates the input could not be parsed in the format the
	// strategy expected, e.g. a corrupt image or a malformed PDF.
	ErrorDecode

	// ErrorTranscode indicates the external transcoder failed or crashed.
	ErrorTranscode

	// ErrorTimeout indicates the strategy ran past its deadline or the job
	// was cancelled by the caller.
	ErrorTimeout
)

// String returns the string representation of the error category.
// This is useful for logging, metrics, and error reporting.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorStorage:
		return "storage"
	case ErrorCompression:
		return "compression"
	case ErrorDecode:
		return "decode"
	case ErrorTranscode:
		return "transcode"
	case ErrorTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// StrategyError reports that the strategy chosen for a job could not
// complete. The engine never retries; the caller decides what to do.
type StrategyError struct {
	Err       error
	Strategy  string
	FileType  string
	Format    string
	Timestamp time.Time
	Category  ErrorCategory
}

// NewStrategyError wraps err as a failure of the named strategy.
func NewStrategyError(category ErrorCategory, strategy, fileType, format string, err error) *StrategyError {
	return &StrategyError{
		Err:       err,
		Strategy:  strategy,
		FileType:  fileType,
		Format:    format,
		Category:  category,
		Timestamp: time.Now(),
	}
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("[%v] %s strategy (%s/%s): %v", e.Category, e.Strategy, e.FileType, e.Format, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// IsRetryable returns whether errors of this category can be retried.
// This helps callers decide whether to resubmit a failed job.
func (e *StrategyError) IsRetryable() bool {
	switch e.Category {
	case ErrorStorage:
		// Storage errors might be temporary (e.g., disk full).
		return true
	case ErrorTimeout:
		// A busy host may finish the job on a later attempt.
		return true
	case ErrorCompression, ErrorDecode:
		// The same bytes will fail the same way.
		return false
	case ErrorTranscode:
		return false
	default:
		return false
	}
}

// IsStrategyError checks if a given error is, or wraps, a StrategyError.
func IsStrategyError(err error) bool {
	var se *StrategyError
	return errors.As(err, &se)
}

// AsStrategyError attempts to extract a StrategyError from a given error.
func AsStrategyError(err error) *StrategyError {
	var se *StrategyError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// CategoryOf picks the category for err, promoting context errors to
// ErrorTimeout regardless of the fallback.
func CategoryOf(err error, fallback ErrorCategory) ErrorCategory {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorTimeout
	}
	if se := AsStrategyError(err); se != nil {
		return se.Category
	}
	return fallback
}
