package session

import (
	"time"

	"github.com/starford/notebookd/internal/refs"
	"github.com/starford/notebookd/internal/selectors"
	"github.com/starford/notebookd/internal/state"
)

// View is the derived, front-end facing summary of a state.
type View struct {
	ContentRef     refs.ContentRef     `json:"contentRef"`
	KernelRef      refs.KernelRef      `json:"kernelRef"`
	KernelspecsRef refs.KernelspecsRef `json:"kernelspecsRef"`
	HostRef        refs.HostRef        `json:"hostRef"`

	ContentType string     `json:"contentType"`
	Filepath    string     `json:"filepath"`
	LastSaved   *time.Time `json:"lastSaved,omitempty"`
	CellCount   int        `json:"cellCount"`

	KernelStatus string `json:"kernelStatus"`
	KernelType   string `json:"kernelType"`
	HostType     string `json:"hostType"`
	Endpoint     string `json:"endpoint"`

	IsJupyterHost            bool `json:"isJupyterHost"`
	IsZeroMQKernel           bool `json:"isZeroMQKernel"`
	IsJupyterWebsocketKernel bool `json:"isJupyterWebsocketKernel"`

	Theme     string `json:"theme"`
	Version   string `json:"version"`
	ModalType string `json:"modalType,omitempty"`
}

// Describe derives the view of st. The host token is never included.
func Describe(st *state.State) View {
	v := View{
		ContentRef:               selectors.CurrentContentRef(st),
		KernelRef:                selectors.CurrentKernelRef(st),
		KernelspecsRef:           selectors.CurrentKernelspecsRef(st),
		HostRef:                  selectors.CurrentHostRef(st),
		ContentType:              selectors.CurrentContentType(st),
		Filepath:                 selectors.CurrentFilepath(st),
		LastSaved:                selectors.CurrentLastSaved(st),
		KernelStatus:             selectors.CurrentKernelStatus(st),
		KernelType:               selectors.CurrentKernelType(st),
		HostType:                 selectors.CurrentHostType(st),
		Endpoint:                 selectors.CurrentServerConfig(st).Endpoint,
		IsJupyterHost:            selectors.IsCurrentHostJupyter(st),
		IsZeroMQKernel:           selectors.IsCurrentKernelZeroMQ(st),
		IsJupyterWebsocketKernel: selectors.IsCurrentKernelJupyterWebsocket(st),
		Theme:                    selectors.CurrentTheme(st),
		Version:                  selectors.AppVersion(st),
		ModalType:                selectors.ModalType(st),
	}
	if nb := selectors.CurrentNotebook(st); nb != nil {
		v.CellCount = len(nb.Cells)
	}
	return v
}
