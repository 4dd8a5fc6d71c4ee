package shared

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoMatch means the catalog returned nothing acceptable for a file. The
// file is recorded as skipped, not failed.
var ErrNoMatch = errors.New("no acceptable match found")

// ErrUnsupportedFormat is returned by the tag layer for extensions it does
// not handle. Counted separately from skips and failures.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// ConfigError marks invalid or missing configuration. Fatal before the run
// loop starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// AuthError wraps a failure to obtain or refresh the catalog token. Fatal at
// startup; mid-run it is a per-file failure after one re-authentication
// attempt.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("authentication failed: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// SearchError wraps a transport or timeout failure while querying the
// catalog. Per-file failure.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search %q failed: %v", e.Query, e.Err)
}
func (e *SearchError) Unwrap() error { return e.Err }

// CopyError, TagWriteError and DisposeError mark the stage at which the safe
// replace protocol aborted. Each guarantees the original file was left
// accessible.
type CopyError struct {
	Path string
	Err  error
}

func (e *CopyError) Error() string { return fmt.Sprintf("copy %s: %v", e.Path, e.Err) }
func (e *CopyError) Unwrap() error { return e.Err }

type TagWriteError struct {
	Path string
	Err  error
}

func (e *TagWriteError) Error() string { return fmt.Sprintf("write tags %s: %v", e.Path, e.Err) }
func (e *TagWriteError) Unwrap() error { return e.Err }

type DisposeError struct {
	Path string
	Err  error
}

func (e *DisposeError) Error() string { return fmt.Sprintf("dispose %s: %v", e.Path, e.Err) }
func (e *DisposeError) Unwrap() error { return e.Err }

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s - %s", e.StatusCode, e.Status, e.Message)
}

// IsAuthHTTPError reports whether err (possibly wrapped) is an HTTP 401,
// which signals an expired or rejected token.
func IsAuthHTTPError(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusUnauthorized
	}
	return false
}
