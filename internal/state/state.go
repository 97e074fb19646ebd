// Package state defines the reference-indexed session state: four entity
// tables keyed by opaque references, the current pointers into them, and
// the flat user configuration.
//
// State values are immutable. Every change produces a new *State that
// shares unchanged tables with its predecessor, so consumers can detect
// change by pointer identity.
package state

import (
	"time"

	"github.com/starford/notebookd/internal/refs"
)

// Content types.
const (
	ContentNotebook  = "notebook"
	ContentDummy     = "dummy"
	ContentDirectory = "directory"
	ContentFile      = "file"
)

// Host types.
const (
	HostLocal   = "local"
	HostJupyter = "jupyter"
)

// Kernel types.
const (
	KernelZeroMQ    = "zeromq"
	KernelWebsocket = "websocket"
)

// Kernel statuses set by the reducer. Status is free-form; these are the
// values this module writes.
const (
	KernelStatusNotConnected = "not connected"
	KernelStatusLaunching    = "launching"
	KernelStatusRestarting   = "restarting"
	KernelStatusInterrupting = "interrupting"
)

// Content is a document record.
type Content struct {
	Ref       refs.ContentRef
	Type      string
	Filepath  string
	LastSaved *time.Time
	// Model is a *notebook.Model for notebooks, a *DirectoryModel for
	// directories and []byte for plain files. Nil means not loaded.
	Model     any
	KernelRef refs.KernelRef
}

// DirectoryModel lists the entries of a directory content.
type DirectoryModel struct {
	Entries []string
}

// Kernel is a kernel record.
type Kernel struct {
	Ref            refs.KernelRef
	Type           string
	Status         string
	HostRef        refs.HostRef
	KernelSpecName string
	Cwd            string
}

// KernelSpec describes a launchable kernel type.
type KernelSpec struct {
	Name        string   `json:"name" yaml:"name"`
	DisplayName string   `json:"display_name,omitempty" yaml:"display_name"`
	Language    string   `json:"language,omitempty" yaml:"language"`
	Argv        []string `json:"argv,omitempty" yaml:"argv"`
}

// Kernelspecs is a kernel catalog entry.
type Kernelspecs struct {
	Ref               refs.KernelspecsRef
	HostRef           refs.HostRef
	DefaultKernelName string
	ByName            map[string]KernelSpec
}

// Host is a host record.
type Host struct {
	Ref         refs.HostRef
	Type        string
	Origin      string
	BasePath    string
	CrossDomain bool
	Token       string
}

// App holds application-level fields outside the entity tables.
type App struct {
	Version     string
	GithubToken string
	ModalType   string
}

// State is one immutable snapshot of the session.
type State struct {
	Contents    *ContentTable
	Kernels     *KernelTable
	Kernelspecs *KernelspecsTable
	Hosts       *HostTable

	CurrentContentRef     refs.ContentRef
	CurrentKernelRef      refs.KernelRef
	CurrentKernelspecsRef refs.KernelspecsRef
	CurrentHostRef        refs.HostRef

	Config *Config
	App    *App
}

// New returns an empty state.
func New() *State {
	return &State{
		Contents:    &ContentTable{},
		Kernels:     &KernelTable{},
		Kernelspecs: &KernelspecsTable{},
		Hosts:       &HostTable{},
		Config:      &Config{},
		App:         &App{},
	}
}

// Clone returns a shallow copy for the reducer to modify.
func (s *State) Clone() *State {
	out := *s
	return &out
}
