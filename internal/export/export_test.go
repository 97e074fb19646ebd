package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/starford/notebookd/internal/notify"
	"github.com/starford/notebookd/internal/selectors"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/store"
	"github.com/starford/notebookd/internal/testutil"
)

type stubExporter struct {
	paths []string
	err   error
}

func (s *stubExporter) Export(_ context.Context, path string) (string, error) {
	s.paths = append(s.paths, path)
	return path + ".pdf", s.err
}

type prompter string

func (p prompter) SaveAsPath(*state.State) string { return string(p) }

func TestExportDocumentSuccess(t *testing.T) {
	var rec notify.Recorder
	exp := &stubExporter{}
	if err := ExportDocument(context.Background(), exp, "nb.ipynb", &rec); err != nil {
		t.Fatalf("ExportDocument: %v", err)
	}
	n, _ := rec.Last()
	if n.Title != "PDF exported" || n.Level != notify.LevelSuccess || !n.Dismissible || n.Position != "tr" {
		t.Errorf("notification = %+v", n)
	}
	if got := n.Message.String(); got != "Notebook nb.ipynb has been exported as a pdf." {
		t.Errorf("message = %q", got)
	}
}

func TestExportDocumentFailure(t *testing.T) {
	var rec notify.Recorder
	exp := &stubExporter{err: errors.New("converter missing")}
	if err := ExportDocument(context.Background(), exp, "nb.ipynb", &rec); err == nil {
		t.Fatal("expected error")
	}
	n, _ := rec.Last()
	if n.Level != notify.LevelError || n.Message.String() != "converter missing" {
		t.Errorf("notification = %+v", n)
	}
}

func TestRequestExportUnsavedWarning(t *testing.T) {
	var rec notify.Recorder
	s := testutil.NewDummyStore(testutil.NoFilename())
	RequestExport(context.Background(), s, Pipeline{Exporter: &stubExporter{}, Notifier: &rec, Prompter: prompter("")})

	n, ok := rec.Last()
	if !ok || n.Title != "File has not been saved!" {
		t.Fatalf("notification = %+v", n)
	}
	if !n.Message.IsList() || len(n.Message.Parts()) != 2 {
		t.Errorf("message parts = %q", n.Message.Parts())
	}
	// An empty prompt cancels the save.
	n.Action.Callback()
	if len(s.Dispatched()) != 0 {
		t.Errorf("dispatched %v", s.Dispatched())
	}
}

func TestRequestExportSaveAsRetries(t *testing.T) {
	var rec notify.Recorder
	exp := &stubExporter{}
	st := store.New(testutil.DummyState(testutil.NoFilename()))
	RequestExport(context.Background(), st, Pipeline{Exporter: exp, Notifier: &rec, Prompter: prompter("fresh.ipynb")})

	warn, _ := rec.Last()
	warn.Action.Callback()

	if got := selectors.CurrentFilepath(st.State()); got != "fresh.ipynb" {
		t.Fatalf("filepath = %q", got)
	}
	if len(exp.paths) != 1 || exp.paths[0] != "fresh.ipynb" {
		t.Errorf("exported %v", exp.paths)
	}
	if n, _ := rec.Last(); n.Title != "PDF exported" {
		t.Errorf("last notification = %q", n.Title)
	}
}

func TestUntitledPrompter(t *testing.T) {
	d := testutil.NewDummyStore()
	got := UntitledPrompter{}.SaveAsPath(d.State())
	if !strings.HasPrefix(got, "Untitled-") || !strings.HasSuffix(got, ".ipynb") {
		t.Errorf("path = %q", got)
	}
	if (UntitledPrompter{}).SaveAsPath(state.New()) != "" {
		t.Error("prompted without a document")
	}
}

func TestCommandExporter(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	dir := t.TempDir()
	input := filepath.Join(dir, "nb.ipynb")
	_ = os.WriteFile(input, []byte("{}"), 0o644)

	exp := &CommandExporter{Argv: []string{"/bin/sh", "-c", "cp {input} {output}"}}
	out, err := exp.Export(context.Background(), input)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if out != filepath.Join(dir, "nb.pdf") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output missing: %v", err)
	}

	bad := &CommandExporter{Argv: []string{"/bin/sh", "-c", "echo boom >&2; exit 3"}}
	if _, err := bad.Export(context.Background(), input); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %v", err)
	}
}
