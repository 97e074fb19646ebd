// Package apperr holds the sentinel errors matched at the HTTP and MCP
// boundaries.
package apperr

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrUnknownTrigger = errors.New("unknown trigger")
	ErrClosed         = errors.New("session closed")
	ErrInvalidPath    = errors.New("invalid path")
)
