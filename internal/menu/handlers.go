package menu

import (
	"os"
	"runtime"

	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/export"
	"github.com/starford/notebookd/internal/refs"
	"github.com/starford/notebookd/internal/selectors"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/store"
)

// Configuration keys written by the menu.
const (
	ConfigTheme           = "theme"
	ConfigCursorBlinkRate = "cursorBlinkRate"
)

// interruptUnsupportedOS is the platform where kernels cannot be
// interrupted by signal.
const interruptUnsupportedOS = "windows"

// Zoomer is the view-scale collaborator.
type Zoomer interface {
	ZoomLevel() float64
	SetZoomLevel(level float64)
}

// Menu holds the collaborators the trigger handlers need.
type Menu struct {
	Zoom   Zoomer
	Export export.Pipeline
	// Getwd reports the working directory handed to new kernels. It is
	// called when the trigger fires.
	Getwd func() (string, error)
	// Platform is the operating system name; runtime.GOOS when empty.
	Platform string
}

func (m *Menu) cwd() string {
	getwd := m.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	dir, err := getwd()
	if err != nil {
		return ""
	}
	return dir
}

func (m *Menu) platform() string {
	if m.Platform == "" {
		return runtime.GOOS
	}
	return m.Platform
}

// kernelSpec reads a kernel spec argument. Both a spec object and a bare
// name are accepted; names and name-only objects are completed from the
// current kernel catalog. Without an argument, or with an object that has
// no name, the catalog default is used.
func kernelSpec(st *state.State, ev Event, i int) state.KernelSpec {
	var spec state.KernelSpec
	if name := ev.String(i); name != "" {
		spec.Name = name
	} else {
		ev.Decode(i, &spec)
	}
	if spec.Name == "" {
		spec = state.KernelSpec{}
		if ks := selectors.CurrentKernelspecs(st); ks != nil {
			spec.Name = ks.DefaultKernelName
		}
	}
	if spec.Name != "" && spec.DisplayName == "" && len(spec.Argv) == 0 {
		if found, ok := selectors.KernelspecByName(st, spec.Name); ok {
			return found
		}
	}
	return spec
}

// LoadConfig reloads persisted preferences.
func (m *Menu) LoadConfig(s store.Handle, _ Event) {
	s.Dispatch(actions.LoadConfig())
}

// ExportPDF exports the current document, asking for a save first when it
// has none.
func (m *Menu) ExportPDF(s store.Handle, ev Event) {
	export.RequestExport(ev.Context(), s, m.Export)
}

// NewKernel launches a kernel for the kernel spec in the first argument and
// selects it.
func (m *Menu) NewKernel(s store.Handle, ev Event) {
	st := s.State()
	s.Dispatch(actions.LaunchKernel(
		kernelSpec(st, ev, 0),
		m.cwd(),
		true,
		refs.CreateKernelRef(),
		selectors.CurrentContentRef(st),
	))
}

// RunAll queues every code cell.
func (m *Menu) RunAll(s store.Handle, _ Event) {
	s.Dispatch(actions.ExecuteAllCells(selectors.CurrentContentRef(s.State())))
}

// RunAllBelow queues the focused code cell and every one after it.
func (m *Menu) RunAllBelow(s store.Handle, _ Event) {
	s.Dispatch(actions.ExecuteAllCellsBelow(selectors.CurrentContentRef(s.State())))
}

// ClearAll clears every output.
func (m *Menu) ClearAll(s store.Handle, _ Event) {
	s.Dispatch(actions.ClearAllOutputs(selectors.CurrentContentRef(s.State())))
}

// UnhideAll reveals every hidden input and output.
func (m *Menu) UnhideAll(s store.Handle, _ Event) {
	s.Dispatch(actions.UnhideAll(false, false, selectors.CurrentContentRef(s.State())))
}

// Save persists the current document.
func (m *Menu) Save(s store.Handle, _ Event) {
	s.Dispatch(actions.Save(selectors.CurrentContentRef(s.State())))
}

// SaveAs persists the current document at the path in the first argument.
func (m *Menu) SaveAs(s store.Handle, ev Event) {
	s.Dispatch(actions.SaveAs(ev.String(0), selectors.CurrentContentRef(s.State())))
}

// TriggerWindowRefresh saves the current document under filepath. An
// empty filepath does nothing.
func (m *Menu) TriggerWindowRefresh(s store.Handle, filepath string) {
	if filepath == "" {
		return
	}
	s.Dispatch(actions.SaveAs(filepath, selectors.CurrentContentRef(s.State())))
}

// CreateCellAfter inserts an empty code cell after the focused one.
func (m *Menu) CreateCellAfter(s store.Handle, _ Event) {
	s.Dispatch(actions.CreateCellAfter(actions.CellCode, "", selectors.CurrentContentRef(s.State())))
}

// CreateTextCellAfter inserts an empty markdown cell after the focused
// one.
func (m *Menu) CreateTextCellAfter(s store.Handle, _ Event) {
	s.Dispatch(actions.CreateCellAfter(actions.CellMarkdown, "", selectors.CurrentContentRef(s.State())))
}

func (m *Menu) CopyCell(s store.Handle, _ Event) {
	s.Dispatch(actions.CopyCell(selectors.CurrentContentRef(s.State())))
}

func (m *Menu) CutCell(s store.Handle, _ Event) {
	s.Dispatch(actions.CutCell(selectors.CurrentContentRef(s.State())))
}

func (m *Menu) PasteCell(s store.Handle, _ Event) {
	s.Dispatch(actions.PasteCell(selectors.CurrentContentRef(s.State())))
}

// KillKernel terminates the current kernel.
func (m *Menu) KillKernel(s store.Handle, _ Event) {
	s.Dispatch(actions.KillKernel(false, selectors.CurrentKernelRef(s.State())))
}

// InterruptKernel signals the current kernel. It does nothing on platforms
// without signal-based interrupts.
func (m *Menu) InterruptKernel(s store.Handle, _ Event) {
	if m.platform() == interruptUnsupportedOS {
		return
	}
	s.Dispatch(actions.InterruptKernel(selectors.CurrentKernelRef(s.State())))
}

// RestartKernel relaunches the current kernel under a new reference.
func (m *Menu) RestartKernel(s store.Handle, _ Event) {
	s.Dispatch(actions.RestartKernel(false, refs.CreateKernelRef(), selectors.CurrentContentRef(s.State())))
}

// RestartClearAll relaunches the current kernel and clears every output.
func (m *Menu) RestartClearAll(s store.Handle, _ Event) {
	s.Dispatch(actions.RestartKernel(true, refs.CreateKernelRef(), selectors.CurrentContentRef(s.State())))
}

// PublishAnonGist publishes the current document without identity.
func (m *Menu) PublishAnonGist(s store.Handle, _ Event) {
	s.Dispatch(actions.PublishAnonymousGist())
}

// PublishUserGist stores the token in the first argument, if any, then
// publishes under the user's identity.
func (m *Menu) PublishUserGist(s store.Handle, ev Event) {
	if token := ev.String(0); token != "" {
		s.Dispatch(actions.SetGithubToken(token))
	}
	s.Dispatch(actions.PublishUserGist())
}

func (m *Menu) ZoomIn(_ store.Handle, _ Event) {
	if m.Zoom == nil {
		return
	}
	m.Zoom.SetZoomLevel(m.Zoom.ZoomLevel() + 1)
}

func (m *Menu) ZoomOut(_ store.Handle, _ Event) {
	if m.Zoom == nil {
		return
	}
	m.Zoom.SetZoomLevel(m.Zoom.ZoomLevel() - 1)
}

func (m *Menu) ZoomReset(_ store.Handle, _ Event) {
	if m.Zoom == nil {
		return
	}
	m.Zoom.SetZoomLevel(0)
}

// SetTheme stores the theme in the first argument.
func (m *Menu) SetTheme(s store.Handle, ev Event) {
	s.Dispatch(actions.SetConfigAtKey(ConfigTheme, ev.String(0)))
}

// SetCursorBlink stores the blink rate in the first argument.
func (m *Menu) SetCursorBlink(s store.Handle, ev Event) {
	var rate any
	ev.Decode(0, &rate)
	s.Dispatch(actions.SetConfigAtKey(ConfigCursorBlinkRate, rate))
}

// Load opens the document at the path in the first argument in place of
// the current one.
func (m *Menu) Load(s store.Handle, ev Event) {
	s.Dispatch(actions.FetchContent(ev.String(0), map[string]any{}, refs.CreateKernelRef(), selectors.CurrentContentRef(s.State())))
}

// NewNotebook replaces the current document with a blank notebook bound to
// the kernel spec in the first argument.
func (m *Menu) NewNotebook(s store.Handle, ev Event) {
	st := s.State()
	s.Dispatch(actions.NewNotebook(kernelSpec(st, ev, 0), m.cwd(), refs.CreateKernelRef(), selectors.CurrentContentRef(st)))
}
