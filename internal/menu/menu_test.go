package menu

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/export"
	"github.com/starford/notebookd/internal/notify"
	"github.com/starford/notebookd/internal/refs"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/testutil"
	"github.com/starford/notebookd/internal/view"
)

const testCwd = "/tmp/work"

type fakeExporter struct {
	paths []string
	err   error
}

func (f *fakeExporter) Export(_ context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	return path + ".pdf", f.err
}

type fixedPrompter string

func (p fixedPrompter) SaveAsPath(*state.State) string { return string(p) }

type fixture struct {
	menu     *Menu
	router   *Router
	scale    *view.Scale
	exporter *fakeExporter
	notes    *notify.Recorder
}

func newFixture(t *testing.T, platform string) *fixture {
	t.Helper()
	f := &fixture{
		scale:    view.NewScale(nil),
		exporter: &fakeExporter{},
		notes:    &notify.Recorder{},
	}
	f.menu = &Menu{
		Zoom: f.scale,
		Export: export.Pipeline{
			Exporter: f.exporter,
			Notifier: f.notes,
			Prompter: fixedPrompter("saved.ipynb"),
		},
		Getwd:    func() (string, error) { return testCwd, nil },
		Platform: platform,
	}
	f.router = NewRouter(nil)
	if err := Init(f.router, f.menu); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return f
}

// ignoreFreshRefs drops kernel refs minted by handlers.
var ignoreFreshRefs = cmp.Options{
	cmpopts.IgnoreFields(actions.LaunchKernelPayload{}, "KernelRef"),
	cmpopts.IgnoreFields(actions.RestartKernelPayload{}, "KernelRef"),
	cmpopts.IgnoreFields(actions.FetchContentPayload{}, "KernelRef"),
	cmpopts.IgnoreFields(actions.NewNotebookPayload{}, "KernelRef"),
}

func TestInitRegistersEveryTrigger(t *testing.T) {
	f := newFixture(t, "linux")
	if len(TriggerNames) != 24 {
		t.Fatalf("TriggerNames has %d entries, want 24", len(TriggerNames))
	}
	want := slices.Sorted(slices.Values(TriggerNames))
	if diff := cmp.Diff(want, f.router.Names()); diff != "" {
		t.Errorf("registered names (-want +got):\n%s", diff)
	}
}

func TestInitTwiceFails(t *testing.T) {
	f := newFixture(t, "linux")
	err := Init(f.router, f.menu)
	if !errors.Is(err, ErrDuplicateTrigger) {
		t.Fatalf("err = %v, want ErrDuplicateTrigger", err)
	}
}

func TestUnknownTriggerIgnored(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore()
	if f.router.Fire(s, NewEvent("menu:does-not-exist")) {
		t.Error("Fire reported an unknown trigger as handled")
	}
	if n := len(s.Dispatched()); n != 0 {
		t.Errorf("dispatched %d commands", n)
	}
}

func TestContentTriggers(t *testing.T) {
	cases := []struct {
		trigger string
		want    func(refs.ContentRef) actions.Command
	}{
		{TriggerRunAll, actions.ExecuteAllCells},
		{TriggerClearAll, actions.ClearAllOutputs},
		{TriggerSave, actions.Save},
		{TriggerCopyCell, actions.CopyCell},
		{TriggerCutCell, actions.CutCell},
		{TriggerPasteCell, actions.PasteCell},
		{TriggerUnhideAll, func(ref refs.ContentRef) actions.Command { return actions.UnhideAll(false, false, ref) }},
		{TriggerNewCodeCell, func(ref refs.ContentRef) actions.Command {
			return actions.CreateCellAfter(actions.CellCode, "", ref)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.trigger, func(t *testing.T) {
			f := newFixture(t, "linux")
			s := testutil.NewDummyStore(testutil.HideAll())
			if !f.router.Fire(s, NewEvent(tc.trigger)) {
				t.Fatal("trigger not handled")
			}
			want := []actions.Command{tc.want(s.ContentRef)}
			if diff := cmp.Diff(want, s.Dispatched()); diff != "" {
				t.Errorf("dispatched (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveAs(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore()
	f.router.Fire(s, NewEvent(TriggerSaveAs, "out/nb.ipynb"))
	want := []actions.Command{actions.SaveAs("out/nb.ipynb", s.ContentRef)}
	if diff := cmp.Diff(want, s.Dispatched()); diff != "" {
		t.Errorf("dispatched (-want +got):\n%s", diff)
	}
}

func TestNewKernel(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore()
	f.router.Fire(s, NewEvent(TriggerNewKernel, "python3"))

	got := s.Dispatched()
	want := []actions.Command{actions.LaunchKernel(testutil.DummyKernelspec, testCwd, true, "", s.ContentRef)}
	if diff := cmp.Diff(want, got, ignoreFreshRefs); diff != "" {
		t.Fatalf("dispatched (-want +got):\n%s", diff)
	}
	ref := got[0].Payload.(actions.LaunchKernelPayload).KernelRef
	if ref == "" || ref == s.KernelRef {
		t.Errorf("kernel ref = %q, want a fresh reference", ref)
	}
}

func TestNewKernelWithSpecObject(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore()
	spec := state.KernelSpec{Name: "julia-1.10", DisplayName: "Julia 1.10", Language: "julia"}
	f.router.Fire(s, NewEvent(TriggerNewKernel, spec))

	want := []actions.Command{actions.LaunchKernel(spec, testCwd, true, "", s.ContentRef)}
	if diff := cmp.Diff(want, s.Dispatched(), ignoreFreshRefs); diff != "" {
		t.Errorf("dispatched (-want +got):\n%s", diff)
	}
}

func TestNewKernelWithNamelessSpecUsesCatalogDefault(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore()
	f.router.Fire(s, NewEvent(TriggerNewKernel, map[string]string{"spec": "hokey"}))
	f.router.Fire(s, NewEvent(TriggerNew, map[string]string{"spec": "hokey"}))

	want := []actions.Command{
		actions.LaunchKernel(testutil.DummyKernelspec, testCwd, true, "", s.ContentRef),
		actions.NewNotebook(testutil.DummyKernelspec, testCwd, "", s.ContentRef),
	}
	if diff := cmp.Diff(want, s.Dispatched(), ignoreFreshRefs); diff != "" {
		t.Errorf("dispatched (-want +got):\n%s", diff)
	}
}

func TestInterruptKernelPlatform(t *testing.T) {
	t.Run("windows", func(t *testing.T) {
		f := newFixture(t, "windows")
		s := testutil.NewDummyStore()
		f.router.Fire(s, NewEvent(TriggerInterruptKernel))
		if n := len(s.Dispatched()); n != 0 {
			t.Errorf("dispatched %d commands on windows", n)
		}
	})
	t.Run("linux", func(t *testing.T) {
		f := newFixture(t, "linux")
		s := testutil.NewDummyStore()
		f.router.Fire(s, NewEvent(TriggerInterruptKernel))
		want := []actions.Command{actions.InterruptKernel(s.KernelRef)}
		if diff := cmp.Diff(want, s.Dispatched()); diff != "" {
			t.Errorf("dispatched (-want +got):\n%s", diff)
		}
	})
}

func TestKillAndRestartKernel(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore()
	f.router.Fire(s, NewEvent(TriggerKillKernel))
	f.router.Fire(s, NewEvent(TriggerRestartKernel))
	f.router.Fire(s, NewEvent(TriggerRestartAndClear))

	want := []actions.Command{
		actions.KillKernel(false, s.KernelRef),
		actions.RestartKernel(false, "", s.ContentRef),
		actions.RestartKernel(true, "", s.ContentRef),
	}
	if diff := cmp.Diff(want, s.Dispatched(), ignoreFreshRefs); diff != "" {
		t.Errorf("dispatched (-want +got):\n%s", diff)
	}
}

func TestPublishGist(t *testing.T) {
	cases := []struct {
		name  string
		event Event
		want  []actions.Command
	}{
		{"anonymous", NewEvent(TriggerPublishGist), []actions.Command{actions.PublishAnonymousGist()}},
		{"with token", NewEvent(TriggerGithubAuth, "TOKEN"), []actions.Command{
			actions.SetGithubToken("TOKEN"),
			actions.PublishUserGist(),
		}},
		{"without token", NewEvent(TriggerGithubAuth), []actions.Command{actions.PublishUserGist()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "linux")
			s := testutil.NewDummyStore()
			f.router.Fire(s, tc.event)
			if diff := cmp.Diff(tc.want, s.Dispatched()); diff != "" {
				t.Errorf("dispatched (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPreferenceTriggers(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore()
	f.router.Fire(s, NewEvent(TriggerTheme, "dark"))
	f.router.Fire(s, NewEvent(TriggerSetBlinkRate, 42))
	f.router.Fire(s, NewEvent(TriggerLoadConfig))

	want := []actions.Command{
		actions.SetConfigAtKey("theme", "dark"),
		actions.SetConfigAtKey("cursorBlinkRate", float64(42)),
		actions.LoadConfig(),
	}
	if diff := cmp.Diff(want, s.Dispatched()); diff != "" {
		t.Errorf("dispatched (-want +got):\n%s", diff)
	}
}

func TestZoom(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore()
	f.router.Fire(s, NewEvent(TriggerZoomIn))
	f.router.Fire(s, NewEvent(TriggerZoomIn))
	f.router.Fire(s, NewEvent(TriggerZoomOut))
	if got := f.scale.ZoomLevel(); got != 1 {
		t.Errorf("zoom level = %v, want 1", got)
	}
	f.menu.ZoomReset(s, Event{})
	if got := f.scale.ZoomLevel(); got != 0 {
		t.Errorf("zoom level after reset = %v, want 0", got)
	}
	if n := len(s.Dispatched()); n != 0 {
		t.Errorf("zoom dispatched %d commands", n)
	}
}

func TestZoomWithoutScale(t *testing.T) {
	m := &Menu{}
	s := testutil.NewDummyStore()
	m.ZoomIn(s, Event{})
	m.ZoomOut(s, Event{})
	m.ZoomReset(s, Event{})
	if n := len(s.Dispatched()); n != 0 {
		t.Errorf("zoom dispatched %d commands", n)
	}
}

func TestLoadAndNew(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore()
	f.router.Fire(s, NewEvent(TriggerLoad, "nb/other.ipynb"))
	f.router.Fire(s, NewEvent(TriggerNew, testutil.DummyKernelspec))

	want := []actions.Command{
		actions.FetchContent("nb/other.ipynb", map[string]any{}, "", s.ContentRef),
		actions.NewNotebook(testutil.DummyKernelspec, testCwd, "", s.ContentRef),
	}
	if diff := cmp.Diff(want, s.Dispatched(), ignoreFreshRefs); diff != "" {
		t.Errorf("dispatched (-want +got):\n%s", diff)
	}
}

func TestUnregisteredHandlers(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore()
	f.menu.CreateTextCellAfter(s, Event{})
	f.menu.RunAllBelow(s, Event{})
	f.menu.TriggerWindowRefresh(s, "")
	f.menu.TriggerWindowRefresh(s, "refreshed.ipynb")

	want := []actions.Command{
		actions.CreateCellAfter(actions.CellMarkdown, "", s.ContentRef),
		actions.ExecuteAllCellsBelow(s.ContentRef),
		actions.SaveAs("refreshed.ipynb", s.ContentRef),
	}
	if diff := cmp.Diff(want, s.Dispatched()); diff != "" {
		t.Errorf("dispatched (-want +got):\n%s", diff)
	}
}

func TestHandlersWithoutDocument(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore(testutil.NoContent())
	f.router.Fire(s, NewEvent(TriggerRunAll))
	f.router.Fire(s, NewEvent(TriggerKillKernel))

	want := []actions.Command{
		actions.ExecuteAllCells(""),
		actions.KillKernel(false, ""),
	}
	if diff := cmp.Diff(want, s.Dispatched()); diff != "" {
		t.Errorf("dispatched (-want +got):\n%s", diff)
	}
}

func TestExportPDFSaved(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore()
	f.router.Fire(s, NewEvent(TriggerExportPDF))

	if diff := cmp.Diff([]string{testutil.DummyFilepath}, f.exporter.paths); diff != "" {
		t.Errorf("exported (-want +got):\n%s", diff)
	}
	n, ok := f.notes.Last()
	if !ok {
		t.Fatal("no notification")
	}
	if n.Title != "PDF exported" || n.Level != notify.LevelSuccess {
		t.Errorf("notification = %+v", n)
	}
	if got := n.Message.String(); got != "Notebook dummy-store-nb.ipynb has been exported as a pdf." {
		t.Errorf("message = %q", got)
	}
}

func TestExportPDFUnsaved(t *testing.T) {
	f := newFixture(t, "linux")
	s := testutil.NewDummyStore(testutil.NoFilename())
	f.router.Fire(s, NewEvent(TriggerExportPDF))

	if len(f.exporter.paths) != 0 {
		t.Fatalf("exported unsaved document: %v", f.exporter.paths)
	}
	n, ok := f.notes.Last()
	if !ok {
		t.Fatal("no notification")
	}
	if n.Title != "File has not been saved!" || n.Level != notify.LevelWarning || n.Action == nil {
		t.Fatalf("notification = %+v", n)
	}
	if n.Action.Label != "Save As" {
		t.Errorf("action label = %q", n.Action.Label)
	}

	n.Action.Callback()
	want := []actions.Command{actions.SaveAs("saved.ipynb", s.ContentRef)}
	if diff := cmp.Diff(want, s.Dispatched()); diff != "" {
		t.Errorf("dispatched (-want +got):\n%s", diff)
	}
}
