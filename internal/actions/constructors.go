package actions

import (
	"time"

	"github.com/starford/notebookd/internal/refs"
	"github.com/starford/notebookd/internal/state"
)

func CreateCellAfter(cellType, source string, contentRef refs.ContentRef) Command {
	return Command{Type: CreateCellAfterKind, Payload: CreateCellAfterPayload{CellType: cellType, Source: source, ContentRef: contentRef}}
}

func CopyCell(contentRef refs.ContentRef) Command {
	return Command{Type: CopyCellKind, Payload: ContentPayload{ContentRef: contentRef}}
}

func CutCell(contentRef refs.ContentRef) Command {
	return Command{Type: CutCellKind, Payload: ContentPayload{ContentRef: contentRef}}
}

func PasteCell(contentRef refs.ContentRef) Command {
	return Command{Type: PasteCellKind, Payload: ContentPayload{ContentRef: contentRef}}
}

func SetConfigAtKey(key string, value any) Command {
	return Command{Type: SetConfigAtKeyKind, Payload: SetConfigAtKeyPayload{Key: key, Value: value}}
}

func MergeConfig(config map[string]any) Command {
	return Command{Type: MergeConfigKind, Payload: MergeConfigPayload{Config: config}}
}

func LoadConfig() Command { return Command{Type: LoadConfigKind} }

func RestartKernel(clearOutputs bool, kernelRef refs.KernelRef, contentRef refs.ContentRef) Command {
	return Command{Type: RestartKernelKind, Payload: RestartKernelPayload{ClearOutputs: clearOutputs, KernelRef: kernelRef, ContentRef: contentRef}}
}

func InterruptKernel(kernelRef refs.KernelRef) Command {
	return Command{Type: InterruptKernelKind, Payload: InterruptKernelPayload{KernelRef: kernelRef}}
}

func KillKernel(restarting bool, kernelRef refs.KernelRef) Command {
	return Command{Type: KillKernelKind, Payload: KillKernelPayload{Restarting: restarting, KernelRef: kernelRef}}
}

func LaunchKernel(spec state.KernelSpec, cwd string, selectNext bool, kernelRef refs.KernelRef, contentRef refs.ContentRef) Command {
	return Command{Type: LaunchKernelKind, Payload: LaunchKernelPayload{
		KernelSpec:       spec,
		Cwd:              cwd,
		SelectNextKernel: selectNext,
		KernelRef:        kernelRef,
		ContentRef:       contentRef,
	}}
}

func ClearAllOutputs(contentRef refs.ContentRef) Command {
	return Command{Type: ClearAllOutputsKind, Payload: ContentPayload{ContentRef: contentRef}}
}

func ExecuteAllCells(contentRef refs.ContentRef) Command {
	return Command{Type: ExecuteAllCellsKind, Payload: ContentPayload{ContentRef: contentRef}}
}

func ExecuteAllCellsBelow(contentRef refs.ContentRef) Command {
	return Command{Type: ExecuteAllCellsBelowKind, Payload: ContentPayload{ContentRef: contentRef}}
}

func UnhideAll(outputHidden, inputHidden bool, contentRef refs.ContentRef) Command {
	return Command{Type: UnhideAllKind, Payload: UnhideAllPayload{OutputHidden: outputHidden, InputHidden: inputHidden, ContentRef: contentRef}}
}

func Save(contentRef refs.ContentRef) Command {
	return Command{Type: SaveKind, Payload: ContentPayload{ContentRef: contentRef}}
}

func SaveAs(filepath string, contentRef refs.ContentRef) Command {
	return Command{Type: SaveAsKind, Payload: SaveAsPayload{Filepath: filepath, ContentRef: contentRef}}
}

func SaveFulfilled(contentRef refs.ContentRef, at time.Time) Command {
	return Command{Type: SaveFulfilledKind, Payload: SaveFulfilledPayload{ContentRef: contentRef, SavedAt: at}}
}

func SaveFailed(contentRef refs.ContentRef, filepath string, err error) Command {
	return Command{Type: SaveFailedKind, Payload: FailedPayload{ContentRef: contentRef, Filepath: filepath, Error: err.Error()}}
}

func FetchContent(filepath string, params map[string]any, kernelRef refs.KernelRef, contentRef refs.ContentRef) Command {
	if params == nil {
		params = map[string]any{}
	}
	return Command{Type: FetchContentKind, Payload: FetchContentPayload{Filepath: filepath, Params: params, KernelRef: kernelRef, ContentRef: contentRef}}
}

func FetchContentFulfilled(p FetchContentFulfilledPayload) Command {
	return Command{Type: FetchContentFulfilledKind, Payload: p}
}

func FetchContentFailed(contentRef refs.ContentRef, filepath string, err error) Command {
	return Command{Type: FetchContentFailedKind, Payload: FailedPayload{ContentRef: contentRef, Filepath: filepath, Error: err.Error()}}
}

func NewNotebook(spec state.KernelSpec, cwd string, kernelRef refs.KernelRef, contentRef refs.ContentRef) Command {
	return Command{Type: NewNotebookKind, Payload: NewNotebookPayload{KernelSpec: spec, Cwd: cwd, KernelRef: kernelRef, ContentRef: contentRef}}
}

func SetGithubToken(token string) Command {
	return Command{Type: SetGithubTokenKind, Payload: SetGithubTokenPayload{GithubToken: token}}
}

func PublishAnonymousGist() Command { return Command{Type: PublishAnonymousGistKind} }

func PublishUserGist() Command { return Command{Type: PublishUserGistKind} }

func SetKernelspecs(ref refs.KernelspecsRef, hostRef refs.HostRef, defaultName string, specs []state.KernelSpec) Command {
	return Command{Type: SetKernelspecsKind, Payload: SetKernelspecsPayload{KernelspecsRef: ref, HostRef: hostRef, Default: defaultName, Specs: specs}}
}

func SetHost(host state.Host) Command {
	return Command{Type: SetHostKind, Payload: SetHostPayload{Host: host}}
}

func SetModal(modalType string) Command {
	return Command{Type: SetModalKind, Payload: SetModalPayload{ModalType: modalType}}
}
