package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/notebookd/internal/apperr"
)

func tempWorkspace(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempWorkspace(t)
	content := []byte(`{"cells":[]}`)
	if err := s.Write("nb.ipynb", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("nb.ipynb")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempWorkspace(t)
	if err := s.Write("a/b/c.ipynb", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("a/b/c.ipynb")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestAbsolutePathInsideRoot(t *testing.T) {
	s := tempWorkspace(t)
	abs := filepath.Join(s.Root(), "abs.ipynb")
	if err := s.Write(abs, []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	e, err := s.Stat(abs)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if e.Path != "abs.ipynb" || e.IsDir {
		t.Errorf("entry = %+v", e)
	}
}

func TestStatMissing(t *testing.T) {
	s := tempWorkspace(t)
	_, err := s.Stat("nope.ipynb")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := s.Read("nope.ipynb"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Read err = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	s := tempWorkspace(t)
	_ = s.Write("b.ipynb", []byte("b"))
	_ = s.Write("a.ipynb", []byte("a"))
	_ = s.Write("sub/c.ipynb", []byte("c"))
	_ = s.Write("readme.txt", []byte("not a notebook"))
	_ = s.Write(".hidden.ipynb", []byte("h"))

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	want := []string{"a.ipynb", "b.ipynb", "sub"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if !items[2].IsDir {
		t.Error("sub should be a directory")
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempWorkspace(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.ipynb",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); !errors.Is(err, apperr.ErrInvalidPath) {
			t.Errorf("Read(%q) err = %v, want ErrInvalidPath", p, err)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteNoCorruption(t *testing.T) {
	s := tempWorkspace(t)
	_ = s.Write("atomic.ipynb", []byte("original content"))

	updated := []byte("updated content")
	if err := s.Write("atomic.ipynb", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.ipynb")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, ".notebookd-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "notebookd-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
