package actions

import (
	"time"

	"github.com/starford/notebookd/internal/refs"
	"github.com/starford/notebookd/internal/state"
)

// Cell kinds accepted by CREATE_CELL_AFTER.
const (
	CellCode     = "code"
	CellMarkdown = "markdown"
)

type CreateCellAfterPayload struct {
	CellType   string          `json:"cellType"`
	Source     string          `json:"source"`
	ContentRef refs.ContentRef `json:"contentRef"`
}

// ContentPayload carries only the target content.
type ContentPayload struct {
	ContentRef refs.ContentRef `json:"contentRef"`
}

type SetConfigAtKeyPayload struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func (SetConfigAtKeyPayload) flat() {}

type MergeConfigPayload struct {
	Config map[string]any `json:"config"`
}

type RestartKernelPayload struct {
	ClearOutputs bool            `json:"clearOutputs"`
	KernelRef    refs.KernelRef  `json:"kernelRef"`
	ContentRef   refs.ContentRef `json:"contentRef"`
}

type InterruptKernelPayload struct {
	KernelRef refs.KernelRef `json:"kernelRef"`
}

type KillKernelPayload struct {
	Restarting bool           `json:"restarting"`
	KernelRef  refs.KernelRef `json:"kernelRef"`
}

type LaunchKernelPayload struct {
	KernelSpec       state.KernelSpec `json:"kernelSpec"`
	Cwd              string           `json:"cwd"`
	SelectNextKernel bool             `json:"selectNextKernel"`
	KernelRef        refs.KernelRef   `json:"kernelRef"`
	ContentRef       refs.ContentRef  `json:"contentRef"`
}

type UnhideAllPayload struct {
	OutputHidden bool            `json:"outputHidden"`
	InputHidden  bool            `json:"inputHidden"`
	ContentRef   refs.ContentRef `json:"contentRef"`
}

type SaveAsPayload struct {
	Filepath   string          `json:"filepath"`
	ContentRef refs.ContentRef `json:"contentRef"`
}

type SaveFulfilledPayload struct {
	ContentRef refs.ContentRef `json:"contentRef"`
	SavedAt    time.Time       `json:"savedAt"`
}

// FailedPayload reports a collaborator failure for a content.
type FailedPayload struct {
	ContentRef refs.ContentRef `json:"contentRef"`
	Filepath   string          `json:"filepath,omitempty"`
	Error      string          `json:"error"`
}

type FetchContentPayload struct {
	Filepath   string          `json:"filepath"`
	Params     map[string]any  `json:"params"`
	KernelRef  refs.KernelRef  `json:"kernelRef"`
	ContentRef refs.ContentRef `json:"contentRef"`
}

type FetchContentFulfilledPayload struct {
	Filepath   string          `json:"filepath"`
	Type       string          `json:"type"`
	Model      any             `json:"-"`
	LastSaved  time.Time       `json:"lastSaved"`
	KernelRef  refs.KernelRef  `json:"kernelRef"`
	ContentRef refs.ContentRef `json:"contentRef"`
}

type NewNotebookPayload struct {
	KernelSpec state.KernelSpec `json:"kernelSpec"`
	Cwd        string           `json:"cwd"`
	KernelRef  refs.KernelRef   `json:"kernelRef"`
	ContentRef refs.ContentRef  `json:"contentRef"`
}

type SetGithubTokenPayload struct {
	GithubToken string `json:"githubToken"`
}

func (SetGithubTokenPayload) flat() {}

type SetKernelspecsPayload struct {
	KernelspecsRef refs.KernelspecsRef `json:"kernelspecsRef"`
	HostRef        refs.HostRef        `json:"hostRef"`
	Default        string              `json:"defaultKernelName"`
	Specs          []state.KernelSpec  `json:"kernelspecs"`
}

type SetHostPayload struct {
	Host state.Host `json:"host"`
}

type SetModalPayload struct {
	ModalType string `json:"modalType"`
}
