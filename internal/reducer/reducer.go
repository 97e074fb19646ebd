// Package reducer applies commands to session state. It is the single
// mutation authority behind the store's dispatch entry point.
//
// Reduce is pure: it never modifies its input and returns the input
// unchanged (same pointer) for commands that do not affect state.
package reducer

import (
	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/notebook"
	"github.com/starford/notebookd/internal/refs"
	"github.com/starford/notebookd/internal/state"
)

// Reduce returns the state that results from applying cmd to st.
func Reduce(st *state.State, cmd actions.Command) *state.State {
	switch p := cmd.Payload.(type) {
	case actions.SetConfigAtKeyPayload:
		return withConfig(st, st.Config.With(p.Key, p.Value))
	case actions.MergeConfigPayload:
		return withConfig(st, st.Config.Merge(p.Config))
	case actions.CreateCellAfterPayload:
		cellType := notebook.CellCode
		if p.CellType == actions.CellMarkdown {
			cellType = notebook.CellMarkdown
		}
		return updateNotebook(st, p.ContentRef, func(m *notebook.Model) *notebook.Model {
			return m.InsertAfterFocused(notebook.NewCell(cellType, p.Source))
		})
	case actions.ContentPayload:
		return reduceContent(st, cmd.Type, p.ContentRef)
	case actions.UnhideAllPayload:
		return updateNotebook(st, p.ContentRef, func(m *notebook.Model) *notebook.Model {
			return m.SetHidden(p.InputHidden, p.OutputHidden)
		})
	case actions.LaunchKernelPayload:
		return launchKernel(st, p.KernelRef, p.ContentRef, p.KernelSpec.Name, p.Cwd, p.SelectNextKernel)
	case actions.RestartKernelPayload:
		return restartKernel(st, p)
	case actions.InterruptKernelPayload:
		return setKernelStatus(st, p.KernelRef, state.KernelStatusInterrupting)
	case actions.KillKernelPayload:
		return killKernel(st, p.KernelRef)
	case actions.SaveAsPayload:
		return updateContent(st, p.ContentRef, func(c *state.Content) {
			c.Filepath = p.Filepath
		})
	case actions.SaveFulfilledPayload:
		return updateContent(st, p.ContentRef, func(c *state.Content) {
			at := p.SavedAt
			c.LastSaved = &at
		})
	case actions.FetchContentPayload:
		return fetchContent(st, p)
	case actions.FetchContentFulfilledPayload:
		return updateContent(st, p.ContentRef, func(c *state.Content) {
			at := p.LastSaved
			c.Type = p.Type
			c.Filepath = p.Filepath
			c.Model = p.Model
			c.LastSaved = &at
		})
	case actions.NewNotebookPayload:
		return newNotebook(st, p)
	case actions.SetGithubTokenPayload:
		return updateApp(st, func(a *state.App) { a.GithubToken = p.GithubToken })
	case actions.SetModalPayload:
		return updateApp(st, func(a *state.App) { a.ModalType = p.ModalType })
	case actions.SetKernelspecsPayload:
		return setKernelspecs(st, p)
	case actions.SetHostPayload:
		if p.Host.Ref == "" {
			return st
		}
		h := p.Host
		out := st.Clone()
		out.Hosts = st.Hosts.With(h.Ref, &h)
		out.CurrentHostRef = h.Ref
		return out
	}
	return st
}

func reduceContent(st *state.State, kind string, ref refs.ContentRef) *state.State {
	switch kind {
	case actions.CopyCellKind:
		return updateNotebook(st, ref, (*notebook.Model).CopyFocused)
	case actions.CutCellKind:
		return updateNotebook(st, ref, (*notebook.Model).CutFocused)
	case actions.PasteCellKind:
		return updateNotebook(st, ref, (*notebook.Model).Paste)
	case actions.ClearAllOutputsKind:
		return updateNotebook(st, ref, (*notebook.Model).ClearOutputs)
	case actions.ExecuteAllCellsKind:
		return updateNotebook(st, ref, func(m *notebook.Model) *notebook.Model {
			return m.QueueFrom(0)
		})
	case actions.ExecuteAllCellsBelowKind:
		return updateNotebook(st, ref, func(m *notebook.Model) *notebook.Model {
			return m.QueueFrom(m.FocusedIndex())
		})
	}
	return st
}

func withConfig(st *state.State, cfg *state.Config) *state.State {
	if cfg == st.Config {
		return st
	}
	out := st.Clone()
	out.Config = cfg
	return out
}

func updateApp(st *state.State, fn func(*state.App)) *state.State {
	var a state.App
	if st.App != nil {
		a = *st.App
	}
	fn(&a)
	out := st.Clone()
	out.App = &a
	return out
}

// updateContent applies fn to a copy of the content at ref.
func updateContent(st *state.State, ref refs.ContentRef, fn func(*state.Content)) *state.State {
	c, ok := st.Contents.Get(ref)
	if !ok {
		return st
	}
	next := *c
	fn(&next)
	out := st.Clone()
	out.Contents = st.Contents.With(ref, &next)
	return out
}

// updateNotebook replaces the notebook model of the content at ref with
// fn's result. Non-notebook or absent contents are left alone.
func updateNotebook(st *state.State, ref refs.ContentRef, fn func(*notebook.Model) *notebook.Model) *state.State {
	c, ok := st.Contents.Get(ref)
	if !ok {
		return st
	}
	m, ok := c.Model.(*notebook.Model)
	if !ok || m == nil {
		return st
	}
	next := fn(m)
	if next == m {
		return st
	}
	return updateContent(st, ref, func(c *state.Content) { c.Model = next })
}

func kernelTypeFor(st *state.State) string {
	if h, ok := st.Hosts.Get(st.CurrentHostRef); ok && h.Type == state.HostJupyter {
		return state.KernelWebsocket
	}
	return state.KernelZeroMQ
}

func launchKernel(st *state.State, kernelRef refs.KernelRef, contentRef refs.ContentRef, specName, cwd string, selectNext bool) *state.State {
	if kernelRef == "" {
		return st
	}
	k := &state.Kernel{
		Ref:            kernelRef,
		Type:           kernelTypeFor(st),
		Status:         state.KernelStatusLaunching,
		HostRef:        st.CurrentHostRef,
		KernelSpecName: specName,
		Cwd:            cwd,
	}
	out := st.Clone()
	out.Kernels = st.Kernels.With(kernelRef, k)
	if selectNext {
		out.CurrentKernelRef = kernelRef
	}
	return updateContent(out, contentRef, func(c *state.Content) { c.KernelRef = kernelRef })
}

func restartKernel(st *state.State, p actions.RestartKernelPayload) *state.State {
	out := st
	if p.ClearOutputs {
		out = updateNotebook(out, p.ContentRef, (*notebook.Model).ClearOutputs)
	}
	oldRef := st.CurrentKernelRef
	if c, ok := st.Contents.Get(p.ContentRef); ok && c.KernelRef != "" {
		oldRef = c.KernelRef
	}
	old, ok := st.Kernels.Get(oldRef)
	if !ok || p.KernelRef == "" {
		return out
	}
	next := *old
	next.Ref = p.KernelRef
	next.Status = state.KernelStatusRestarting

	out = out.Clone()
	out.Kernels = out.Kernels.Without(oldRef).With(p.KernelRef, &next)
	if out.CurrentKernelRef == oldRef || out.CurrentKernelRef == "" {
		out.CurrentKernelRef = p.KernelRef
	}
	return repointContents(out, oldRef, p.KernelRef)
}

func setKernelStatus(st *state.State, ref refs.KernelRef, status string) *state.State {
	k, ok := st.Kernels.Get(ref)
	if !ok {
		return st
	}
	next := *k
	next.Status = status
	out := st.Clone()
	out.Kernels = st.Kernels.With(ref, &next)
	return out
}

func killKernel(st *state.State, ref refs.KernelRef) *state.State {
	if _, ok := st.Kernels.Get(ref); !ok {
		return st
	}
	out := st.Clone()
	out.Kernels = st.Kernels.Without(ref)
	if out.CurrentKernelRef == ref {
		out.CurrentKernelRef = ""
	}
	return repointContents(out, ref, "")
}

// repointContents moves every content attached to from onto to.
func repointContents(st *state.State, from, to refs.KernelRef) *state.State {
	out := st
	for _, ref := range st.Contents.Refs() {
		c, _ := st.Contents.Get(ref)
		if c.KernelRef != from {
			continue
		}
		out = updateContent(out, ref, func(c *state.Content) { c.KernelRef = to })
	}
	return out
}

func fetchContent(st *state.State, p actions.FetchContentPayload) *state.State {
	if p.ContentRef == "" {
		return st
	}
	c := &state.Content{Ref: p.ContentRef, Type: state.ContentDummy, Filepath: p.Filepath}
	if old, ok := st.Contents.Get(p.ContentRef); ok {
		c.KernelRef = old.KernelRef
	}
	out := st.Clone()
	out.Contents = st.Contents.With(p.ContentRef, c)
	out.CurrentContentRef = p.ContentRef
	return out
}

func newNotebook(st *state.State, p actions.NewNotebookPayload) *state.State {
	if p.ContentRef == "" {
		return st
	}
	c := &state.Content{
		Ref:   p.ContentRef,
		Type:  state.ContentNotebook,
		Model: notebook.New(notebook.KernelInfo{Name: p.KernelSpec.Name, DisplayName: p.KernelSpec.DisplayName, Language: p.KernelSpec.Language}),
	}
	out := st.Clone()
	out.Contents = st.Contents.With(p.ContentRef, c)
	out.CurrentContentRef = p.ContentRef
	return launchKernel(out, p.KernelRef, p.ContentRef, p.KernelSpec.Name, p.Cwd, true)
}

func setKernelspecs(st *state.State, p actions.SetKernelspecsPayload) *state.State {
	if p.KernelspecsRef == "" {
		return st
	}
	ks := &state.Kernelspecs{
		Ref:               p.KernelspecsRef,
		HostRef:           p.HostRef,
		DefaultKernelName: p.Default,
		ByName:            make(map[string]state.KernelSpec, len(p.Specs)),
	}
	for _, spec := range p.Specs {
		ks.ByName[spec.Name] = spec
	}
	out := st.Clone()
	out.Kernelspecs = st.Kernelspecs.With(p.KernelspecsRef, ks)
	out.CurrentKernelspecsRef = p.KernelspecsRef
	return out
}
