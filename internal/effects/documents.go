package effects

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/notebook"
	"github.com/starford/notebookd/internal/notify"
	"github.com/starford/notebookd/internal/refs"
	"github.com/starford/notebookd/internal/selectors"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/storage"
	"github.com/starford/notebookd/internal/store"
)

var (
	errNoFilepath  = errors.New("no filepath")
	errNoContent   = errors.New("no such document")
	errNotNotebook = errors.New("document is not a notebook")
)

// Documents loads and saves workspace documents.
type Documents struct {
	Storage  storage.Provider
	Notifier notify.Notifier
	// Root is the absolute workspace root; kernels launched for a loaded
	// notebook start in its directory.
	Root   string
	Now    func() time.Time
	Logger *slog.Logger
}

// Attach subscribes d to s.
func (d *Documents) Attach(s *store.Store) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	s.Subscribe(func(cmd actions.Command, st *state.State) {
		switch p := cmd.Payload.(type) {
		case actions.FetchContentPayload:
			d.fetch(s, st, p)
		case actions.SaveAsPayload:
			d.save(s, st, p.ContentRef)
		case actions.ContentPayload:
			if cmd.Type == actions.SaveKind {
				d.save(s, st, p.ContentRef)
			}
		}
	})
}

func (d *Documents) fetch(s store.Handle, st *state.State, p actions.FetchContentPayload) {
	if p.ContentRef == "" {
		return
	}
	fail := func(err error) {
		d.Logger.Warn("documents: fetch failed", slog.String("path", p.Filepath), slog.String("error", err.Error()))
		s.Dispatch(actions.FetchContentFailed(p.ContentRef, p.Filepath, err))
		d.Notifier.Notify(errorNotification(fmt.Sprintf("Could not open %s", p.Filepath), err))
	}

	entry, err := d.Storage.Stat(p.Filepath)
	if err != nil {
		fail(err)
		return
	}
	out := actions.FetchContentFulfilledPayload{
		Filepath:   p.Filepath,
		LastSaved:  entry.UpdatedAt,
		KernelRef:  p.KernelRef,
		ContentRef: p.ContentRef,
	}

	switch {
	case entry.IsDir:
		entries, err := d.Storage.List(p.Filepath)
		if err != nil {
			fail(err)
			return
		}
		dm := &state.DirectoryModel{Entries: make([]string, 0, len(entries))}
		for _, e := range entries {
			dm.Entries = append(dm.Entries, e.Path)
		}
		out.Type, out.Model = state.ContentDirectory, dm
	case filepath.Ext(p.Filepath) == storage.NotebookExt:
		data, err := d.Storage.Read(p.Filepath)
		if err != nil {
			fail(err)
			return
		}
		m, err := notebook.Decode(data)
		if err != nil {
			fail(err)
			return
		}
		out.Type, out.Model = state.ContentNotebook, m
	default:
		data, err := d.Storage.Read(p.Filepath)
		if err != nil {
			fail(err)
			return
		}
		out.Type, out.Model = state.ContentFile, data
	}

	s.Dispatch(actions.FetchContentFulfilled(out))
	if out.Type != state.ContentNotebook || p.KernelRef == "" {
		return
	}
	m := out.Model.(*notebook.Model)
	s.Dispatch(actions.LaunchKernel(
		kernelSpecFor(st, m.Kernel),
		filepath.Dir(filepath.Join(d.Root, entry.Path)),
		true,
		p.KernelRef,
		p.ContentRef,
	))
}

// kernelSpecFor resolves the kernel recorded in a notebook against the
// catalog, falling back to the catalog default.
func kernelSpecFor(st *state.State, info notebook.KernelInfo) state.KernelSpec {
	name := info.Name
	if name == "" {
		if ks := selectors.CurrentKernelspecs(st); ks != nil {
			name = ks.DefaultKernelName
		}
	}
	if spec, ok := selectors.KernelspecByName(st, name); ok {
		return spec
	}
	return state.KernelSpec{Name: name, DisplayName: info.DisplayName, Language: info.Language}
}

func (d *Documents) save(s store.Handle, st *state.State, ref refs.ContentRef) {
	c := selectors.Content(st, ref)
	var err error
	path := ""
	switch {
	case c == nil:
		err = errNoContent
	case c.Filepath == "":
		err = errNoFilepath
	default:
		path = c.Filepath
		err = d.write(c)
	}
	if err != nil {
		d.Logger.Warn("documents: save failed", slog.String("path", path), slog.String("error", err.Error()))
		s.Dispatch(actions.SaveFailed(ref, path, err))
		d.Notifier.Notify(errorNotification("Save failed", err))
		return
	}
	d.Logger.Info("documents: saved", slog.String("path", path))
	s.Dispatch(actions.SaveFulfilled(ref, d.Now()))
}

func (d *Documents) write(c *state.Content) error {
	m, ok := c.Model.(*notebook.Model)
	if !ok || m == nil {
		return errNotNotebook
	}
	data, err := notebook.Encode(m)
	if err != nil {
		return err
	}
	return d.Storage.Write(c.Filepath, data)
}
