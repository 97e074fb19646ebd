// Package storage defines the workspace file-system abstraction documents
// are read from and saved to.
package storage

import "time"

// NotebookExt is the extension of notebook documents.
const NotebookExt = ".ipynb"

// Entry describes one workspace path.
type Entry struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	IsDir     bool      `json:"isDir"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Provider is the interface for workspace file operations. Paths are
// relative to the workspace root; absolute paths are accepted when they
// lie inside it.
type Provider interface {
	// Stat describes the file or directory at path.
	Stat(path string) (Entry, error)
	// List returns the subdirectories and notebook documents directly
	// under dir, sorted by name.
	List(dir string) ([]Entry, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
}
