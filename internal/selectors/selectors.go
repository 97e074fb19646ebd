// Package selectors implements the derivation layer: pure, memoized reads
// over the session state.
//
// Primitive selectors read one raw field. Composite selectors combine them
// and recompute only when an upstream value changed identity. Lookup
// selectors take a reference argument and are not memoized. None of them
// fail on missing references; they fall back to documented sentinels.
package selectors

import (
	"time"

	"github.com/starford/notebookd/internal/notebook"
	"github.com/starford/notebookd/internal/refs"
	"github.com/starford/notebookd/internal/state"
)

// DefaultTheme is the theme reported when none is configured.
const DefaultTheme = "light"

// ServerConfig holds the connection parameters derived from a host.
type ServerConfig struct {
	Endpoint    string `json:"endpoint"`
	CrossDomain bool   `json:"crossDomain"`
	Token       string `json:"token"`
}

// ServerConfigFor derives connection parameters from host.
func ServerConfigFor(host *state.Host) ServerConfig {
	if host == nil {
		return ServerConfig{}
	}
	return ServerConfig{
		Endpoint:    host.Origin + host.BasePath,
		CrossDomain: host.CrossDomain,
		Token:       host.Token,
	}
}

// Primitive selectors.

func CurrentContentRef(st *state.State) refs.ContentRef {
	if st == nil {
		return ""
	}
	return st.CurrentContentRef
}

func CurrentKernelRef(st *state.State) refs.KernelRef {
	if st == nil {
		return ""
	}
	return st.CurrentKernelRef
}

func CurrentKernelspecsRef(st *state.State) refs.KernelspecsRef {
	if st == nil {
		return ""
	}
	return st.CurrentKernelspecsRef
}

func CurrentHostRef(st *state.State) refs.HostRef {
	if st == nil {
		return ""
	}
	return st.CurrentHostRef
}

func ContentByRef(st *state.State) *state.ContentTable {
	if st == nil {
		return nil
	}
	return st.Contents
}

func KernelsByRef(st *state.State) *state.KernelTable {
	if st == nil {
		return nil
	}
	return st.Kernels
}

func KernelspecsByRef(st *state.State) *state.KernelspecsTable {
	if st == nil {
		return nil
	}
	return st.Kernelspecs
}

func HostsByRef(st *state.State) *state.HostTable {
	if st == nil {
		return nil
	}
	return st.Hosts
}

func config(st *state.State) *state.Config {
	if st == nil {
		return nil
	}
	return st.Config
}

func app(st *state.State) *state.App {
	if st == nil {
		return nil
	}
	return st.App
}

// Lookup selectors.

// Content returns the content at ref, or nil.
func Content(st *state.State, ref refs.ContentRef) *state.Content {
	c, _ := ContentByRef(st).Get(ref)
	return c
}

// Model returns the model of the content at ref, or nil.
func Model(st *state.State, ref refs.ContentRef) any {
	c := Content(st, ref)
	if c == nil {
		return nil
	}
	return c.Model
}

// Kernel returns the kernel at ref, or nil.
func Kernel(st *state.State, ref refs.KernelRef) *state.Kernel {
	k, _ := KernelsByRef(st).Get(ref)
	return k
}

// Composite selectors.

var (
	currentContent = Create2(CurrentContentRef, ContentByRef,
		func(ref refs.ContentRef, byRef *state.ContentTable) *state.Content {
			c, _ := byRef.Get(ref)
			return c
		})

	currentKernel = Create2(CurrentKernelRef, KernelsByRef,
		func(ref refs.KernelRef, byRef *state.KernelTable) *state.Kernel {
			k, _ := byRef.Get(ref)
			return k
		})

	currentKernelspecs = Create2(CurrentKernelspecsRef, KernelspecsByRef,
		func(ref refs.KernelspecsRef, byRef *state.KernelspecsTable) *state.Kernelspecs {
			k, _ := byRef.Get(ref)
			return k
		})

	currentHost = Create2(CurrentHostRef, HostsByRef,
		func(ref refs.HostRef, byRef *state.HostTable) *state.Host {
			h, _ := byRef.Get(ref)
			return h
		})

	currentModel = Create1(currentContent.Select, func(c *state.Content) any {
		if c == nil || c.Model == nil {
			return notebook.Empty()
		}
		return c.Model
	})

	currentNotebook = Create1(currentContent.Select, func(c *state.Content) *notebook.Model {
		if c == nil {
			return notebook.Empty()
		}
		if m, ok := c.Model.(*notebook.Model); ok && m != nil {
			return m
		}
		return notebook.Empty()
	})

	currentContentType = Create1(currentContent.Select, func(c *state.Content) string {
		if c == nil {
			return ""
		}
		return c.Type
	})

	currentLastSaved = Create1(currentContent.Select, func(c *state.Content) *time.Time {
		if c == nil {
			return nil
		}
		return c.LastSaved
	})

	currentFilepath = Create1(currentContent.Select, func(c *state.Content) string {
		if c == nil {
			return ""
		}
		return c.Filepath
	})

	currentKernelType = Create1(currentKernel.Select, func(k *state.Kernel) string {
		if k == nil {
			return ""
		}
		return k.Type
	})

	currentKernelStatus = Create1(currentKernel.Select, func(k *state.Kernel) string {
		if k == nil || k.Status == "" {
			return state.KernelStatusNotConnected
		}
		return k.Status
	})

	currentHostType = Create1(currentHost.Select, func(h *state.Host) string {
		if h == nil {
			return ""
		}
		return h.Type
	})

	isCurrentKernelZeroMQ = Create2(currentHostType.Select, currentKernelType.Select,
		func(hostType, kernelType string) bool {
			return hostType == state.HostLocal && kernelType == state.KernelZeroMQ
		})

	isCurrentHostJupyter = Create1(currentHostType.Select, func(hostType string) bool {
		return hostType == state.HostJupyter
	})

	isCurrentKernelJupyterWebsocket = Create2(currentHostType.Select, currentKernelType.Select,
		func(hostType, kernelType string) bool {
			return hostType == state.HostJupyter && kernelType == state.KernelWebsocket
		})

	currentServerConfig = Create1(currentHost.Select, ServerConfigFor)

	userPreferences = Create1(config, func(c *state.Config) map[string]any {
		return c.Map()
	})

	currentTheme = Create1(config, func(c *state.Config) string {
		return c.String("theme", DefaultTheme)
	})

	appVersion = Create1(app, func(a *state.App) string {
		if a == nil {
			return ""
		}
		return a.Version
	})

	modalType = Create1(app, func(a *state.App) string {
		if a == nil {
			return ""
		}
		return a.ModalType
	})
)

// CurrentContent returns the current content record, or nil.
func CurrentContent(st *state.State) *state.Content { return currentContent.Select(st) }

// CurrentKernel returns the current kernel record, or nil.
func CurrentKernel(st *state.State) *state.Kernel { return currentKernel.Select(st) }

// CurrentKernelspecs returns the current kernel catalog entry, or nil.
func CurrentKernelspecs(st *state.State) *state.Kernelspecs { return currentKernelspecs.Select(st) }

// CurrentHost returns the current host record, or nil.
func CurrentHost(st *state.State) *state.Host { return currentHost.Select(st) }

// CurrentModel returns the model of the current content, or the empty
// notebook model.
func CurrentModel(st *state.State) any { return currentModel.Select(st) }

// CurrentNotebook returns the current content's notebook model, or the
// empty model when the current content is absent or not a notebook.
func CurrentNotebook(st *state.State) *notebook.Model { return currentNotebook.Select(st) }

// CurrentContentType returns the type tag of the current content, or "".
func CurrentContentType(st *state.State) string { return currentContentType.Select(st) }

// CurrentLastSaved returns when the current content was last saved, or nil.
func CurrentLastSaved(st *state.State) *time.Time { return currentLastSaved.Select(st) }

// CurrentFilepath returns the path of the current content, or "" when it
// was never saved.
func CurrentFilepath(st *state.State) string { return currentFilepath.Select(st) }

// CurrentKernelType returns the current kernel's type, or "".
func CurrentKernelType(st *state.State) string { return currentKernelType.Select(st) }

// CurrentKernelStatus returns the current kernel's status, or
// "not connected".
func CurrentKernelStatus(st *state.State) string { return currentKernelStatus.Select(st) }

// CurrentHostType returns the current host's type, or "".
func CurrentHostType(st *state.State) string { return currentHostType.Select(st) }

// IsCurrentKernelZeroMQ reports whether the current kernel is a locally
// spawned ZeroMQ kernel.
func IsCurrentKernelZeroMQ(st *state.State) bool { return isCurrentKernelZeroMQ.Select(st) }

// IsCurrentHostJupyter reports whether the current host is a Jupyter
// server.
func IsCurrentHostJupyter(st *state.State) bool { return isCurrentHostJupyter.Select(st) }

// IsCurrentKernelJupyterWebsocket reports whether the current kernel is
// reached through a Jupyter server websocket.
func IsCurrentKernelJupyterWebsocket(st *state.State) bool {
	return isCurrentKernelJupyterWebsocket.Select(st)
}

// CurrentServerConfig returns the connection parameters of the current
// host.
func CurrentServerConfig(st *state.State) ServerConfig { return currentServerConfig.Select(st) }

// UserPreferences returns the configuration as a map. The map is shared
// between calls with the same configuration and must not be modified.
func UserPreferences(st *state.State) map[string]any { return userPreferences.Select(st) }

// CurrentTheme returns the configured theme, "light" by default.
func CurrentTheme(st *state.State) string { return currentTheme.Select(st) }

// AppVersion returns the application version.
func AppVersion(st *state.State) string { return appVersion.Select(st) }

// ModalType returns the open modal, or "".
func ModalType(st *state.State) string { return modalType.Select(st) }

// KernelspecByName looks name up in the current kernel catalog.
func KernelspecByName(st *state.State, name string) (state.KernelSpec, bool) {
	ks := CurrentKernelspecs(st)
	if ks == nil {
		return state.KernelSpec{}, false
	}
	spec, ok := ks.ByName[name]
	return spec, ok
}
