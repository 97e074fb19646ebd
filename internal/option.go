package internal

import (
	"io"
	"log/slog"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	// open is the workspace path loaded after startup instead of a blank
	// notebook.
	open      string
	logOutput io.Writer
	logger    *slog.Logger
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithOpen loads the document at path once the session is up.
func WithOpen(path string) Option {
	return func(a *application) {
		a.open = path
	}
}

// WithLogOutput redirects the JSON log stream. The MCP server uses it to
// keep stdout free for the protocol.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOutput = w
	}
}
