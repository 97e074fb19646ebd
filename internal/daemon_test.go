package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/menu"
	"github.com/starford/notebookd/internal/notebook"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/testutil"
)

func testDaemon(t *testing.T) (*daemon, *Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.App.Version = "1.2.3"
	cfg.Workspace.Path = filepath.Join(dir, "workspace")
	cfg.Journal.Path = filepath.Join(dir, "journal.db")
	cfg.Preferences.Path = filepath.Join(dir, "preferences.yaml")
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	d, err := newDaemon(cfg, testutil.Logger())
	if err != nil {
		t.Fatalf("newDaemon: %v", err)
	}
	t.Cleanup(d.Close)
	return d, cfg
}

func TestDaemonStart_BlankNotebook(t *testing.T) {
	d, cfg := testDaemon(t)
	if err := os.WriteFile(cfg.Preferences.Path, []byte("theme: dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := d.start(ctx, ""); err != nil {
		t.Fatalf("start: %v", err)
	}
	v, err := d.session.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.ContentType != state.ContentNotebook || v.Filepath != "" || v.CellCount != 1 {
		t.Errorf("document = %s %q with %d cells, want blank notebook", v.ContentType, v.Filepath, v.CellCount)
	}
	if v.KernelStatus != state.KernelStatusLaunching || v.KernelType != state.KernelZeroMQ {
		t.Errorf("kernel = %s/%s", v.KernelStatus, v.KernelType)
	}
	if v.HostType != state.HostLocal || v.Version != "1.2.3" {
		t.Errorf("host/version = %q/%q", v.HostType, v.Version)
	}
	if v.Theme != "dark" {
		t.Errorf("theme = %q, want preferences applied", v.Theme)
	}

	snap, err := d.session.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	k, ok := snap.Kernels.Get(snap.CurrentKernelRef)
	if !ok || k.Cwd != d.fs.Root() || k.KernelSpecName != "python3" {
		t.Errorf("kernel = %+v, want python3 in the workspace root", k)
	}

	n, err := d.journal.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n < 4 {
		t.Errorf("journal holds %d commands, want startup commands recorded", n)
	}
}

func TestDaemonStart_OpenDocument(t *testing.T) {
	d, _ := testDaemon(t)
	ctx := context.Background()

	m := notebook.New(notebook.KernelInfo{Name: "python3"})
	data, err := notebook.Encode(m)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.fs.Write("analysis.ipynb", data); err != nil {
		t.Fatal(err)
	}

	if err := d.start(ctx, "analysis.ipynb"); err != nil {
		t.Fatalf("start: %v", err)
	}
	v, err := d.session.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.Filepath != "analysis.ipynb" || v.ContentType != state.ContentNotebook {
		t.Errorf("document = %s %q", v.ContentType, v.Filepath)
	}
	if v.KernelStatus != state.KernelStatusLaunching {
		t.Errorf("kernel status = %q", v.KernelStatus)
	}
}

func TestDaemon_SaveWritesWorkspace(t *testing.T) {
	d, _ := testDaemon(t)
	ctx := context.Background()
	if err := d.start(ctx, ""); err != nil {
		t.Fatal(err)
	}

	if err := d.session.Fire(ctx, menu.NewEvent(menu.TriggerSaveAs, "out.ipynb")); err != nil {
		t.Fatal(err)
	}
	if _, err := d.fs.Read("out.ipynb"); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}

	entries, err := d.journal.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Type != actions.SaveFulfilledKind {
		t.Errorf("last command = %+v, want SAVE_FULFILLED", entries)
	}
}
