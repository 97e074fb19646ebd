// Package testutil provides shared test helpers: a recording store over
// synthetic session state, temporary workspaces and journals.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/journal"
	"github.com/starford/notebookd/internal/notebook"
	"github.com/starford/notebookd/internal/refs"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/storage"
)

// DummyFilepath is the filepath of the DummyStore document unless
// NoFilename is given.
const DummyFilepath = "dummy-store-nb.ipynb"

// DummyKernelspec is the only entry in the DummyStore kernel catalog.
var DummyKernelspec = state.KernelSpec{
	Name:        "python3",
	DisplayName: "Python 3",
	Language:    "python",
	Argv:        []string{"python3", "-m", "ipykernel_launcher", "-f", "{connection_file}"},
}

type dummyOptions struct {
	noFilename bool
	hideAll    bool
	noContent  bool
	hostType   string
	config     map[string]any
}

// DummyOption customizes the synthetic state.
type DummyOption func(*dummyOptions)

// NoFilename leaves the document unsaved.
func NoFilename() DummyOption { return func(o *dummyOptions) { o.noFilename = true } }

// HideAll hides every cell input and output.
func HideAll() DummyOption { return func(o *dummyOptions) { o.hideAll = true } }

// NoContent leaves the state without any document, kernel or host.
func NoContent() DummyOption { return func(o *dummyOptions) { o.noContent = true } }

// WithHostType sets the host type (state.HostLocal by default).
func WithHostType(t string) DummyOption { return func(o *dummyOptions) { o.hostType = t } }

// WithConfig seeds the user configuration.
func WithConfig(m map[string]any) DummyOption { return func(o *dummyOptions) { o.config = m } }

// DummyStore is a store.Handle over synthetic state that records every
// dispatched command instead of applying it.
type DummyStore struct {
	ContentRef     refs.ContentRef
	KernelRef      refs.KernelRef
	KernelspecsRef refs.KernelspecsRef
	HostRef        refs.HostRef

	state *state.State

	mu         sync.Mutex
	dispatched []actions.Command
}

// NewDummyStore returns a store holding a saved two-cell notebook attached
// to an idle kernel on a local host.
func NewDummyStore(opts ...DummyOption) *DummyStore {
	o := dummyOptions{hostType: state.HostLocal}
	for _, opt := range opts {
		opt(&o)
	}
	d := &DummyStore{}
	d.state = d.build(o)
	return d
}

// DummyState returns the synthetic state on its own.
func DummyState(opts ...DummyOption) *state.State {
	return NewDummyStore(opts...).State()
}

func (d *DummyStore) build(o dummyOptions) *state.State {
	st := state.New()
	st.Config = state.NewConfig(o.config)
	st.App = &state.App{Version: "test"}
	if o.noContent {
		return st
	}

	d.ContentRef = refs.CreateContentRef()
	d.KernelRef = refs.CreateKernelRef()
	d.KernelspecsRef = refs.CreateKernelspecsRef()
	d.HostRef = refs.CreateHostRef()

	kernelType := state.KernelZeroMQ
	if o.hostType == state.HostJupyter {
		kernelType = state.KernelWebsocket
	}

	m := notebook.New(notebook.KernelInfo{Name: DummyKernelspec.Name, DisplayName: DummyKernelspec.DisplayName})
	m = m.InsertAfterFocused(notebook.NewCell(notebook.CellMarkdown, "# Title"))
	if o.hideAll {
		m = m.SetHidden(true, true)
	}

	c := &state.Content{Ref: d.ContentRef, Type: state.ContentNotebook, Model: m, KernelRef: d.KernelRef}
	if !o.noFilename {
		saved := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		c.Filepath = DummyFilepath
		c.LastSaved = &saved
	}

	st.Contents = st.Contents.With(d.ContentRef, c)
	st.Kernels = st.Kernels.With(d.KernelRef, &state.Kernel{
		Ref:            d.KernelRef,
		Type:           kernelType,
		Status:         "idle",
		HostRef:        d.HostRef,
		KernelSpecName: DummyKernelspec.Name,
	})
	st.Kernelspecs = st.Kernelspecs.With(d.KernelspecsRef, &state.Kernelspecs{
		Ref:               d.KernelspecsRef,
		HostRef:           d.HostRef,
		DefaultKernelName: DummyKernelspec.Name,
		ByName:            map[string]state.KernelSpec{DummyKernelspec.Name: DummyKernelspec},
	})
	st.Hosts = st.Hosts.With(d.HostRef, &state.Host{
		Ref:      d.HostRef,
		Type:     o.hostType,
		Origin:   "http://127.0.0.1:8888",
		BasePath: "/",
	})
	st.CurrentContentRef = d.ContentRef
	st.CurrentKernelRef = d.KernelRef
	st.CurrentKernelspecsRef = d.KernelspecsRef
	st.CurrentHostRef = d.HostRef
	return st
}

// State implements store.Handle.
func (d *DummyStore) State() *state.State { return d.state }

// Dispatch implements store.Handle by recording cmd.
func (d *DummyStore) Dispatch(cmd actions.Command) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatched = append(d.dispatched, cmd)
}

// Dispatched returns the recorded commands in order.
func (d *DummyStore) Dispatched() []actions.Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]actions.Command, len(d.dispatched))
	copy(out, d.dispatched)
	return out
}

// TestJournal creates a temporary journal database that is automatically
// cleaned up.
func TestJournal(t *testing.T) *journal.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "notebookd-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := journal.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestWorkspace creates a temporary workspace directory with a
// storage.Provider.
func TestWorkspace(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return fs.Root(), fs
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
