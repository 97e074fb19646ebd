package menu

import "fmt"

// Trigger names.
const (
	TriggerLoadConfig      = "main:load-config"
	TriggerExportPDF       = "menu:exportPDF"
	TriggerNewKernel       = "menu:new-kernel"
	TriggerRunAll          = "menu:run-all"
	TriggerClearAll        = "menu:clear-all"
	TriggerUnhideAll       = "menu:unhide-all"
	TriggerSave            = "menu:save"
	TriggerSaveAs          = "menu:save-as"
	TriggerNewCodeCell     = "menu:new-code-cell"
	TriggerCopyCell        = "menu:copy-cell"
	TriggerCutCell         = "menu:cut-cell"
	TriggerPasteCell       = "menu:paste-cell"
	TriggerKillKernel      = "menu:kill-kernel"
	TriggerInterruptKernel = "menu:interrupt-kernel"
	TriggerRestartKernel   = "menu:restart-kernel"
	TriggerRestartAndClear = "menu:restart-and-clear-all"
	TriggerPublishGist     = "menu:publish:gist"
	TriggerGithubAuth      = "menu:github:auth"
	TriggerZoomIn          = "menu:zoom-in"
	TriggerZoomOut         = "menu:zoom-out"
	TriggerTheme           = "menu:theme"
	TriggerSetBlinkRate    = "menu:set-blink-rate"
	TriggerLoad            = "main:load"
	TriggerNew             = "main:new"
)

// TriggerNames is the closed set of triggers bound at initialization.
var TriggerNames = []string{
	TriggerLoadConfig,
	TriggerExportPDF,
	TriggerNewKernel,
	TriggerRunAll,
	TriggerClearAll,
	TriggerUnhideAll,
	TriggerSave,
	TriggerSaveAs,
	TriggerNewCodeCell,
	TriggerCopyCell,
	TriggerCutCell,
	TriggerPasteCell,
	TriggerKillKernel,
	TriggerInterruptKernel,
	TriggerRestartKernel,
	TriggerRestartAndClear,
	TriggerPublishGist,
	TriggerGithubAuth,
	TriggerZoomIn,
	TriggerZoomOut,
	TriggerTheme,
	TriggerSetBlinkRate,
	TriggerLoad,
	TriggerNew,
}

func (m *Menu) table() map[string]Handler {
	return map[string]Handler{
		TriggerLoadConfig:      m.LoadConfig,
		TriggerExportPDF:       m.ExportPDF,
		TriggerNewKernel:       m.NewKernel,
		TriggerRunAll:          m.RunAll,
		TriggerClearAll:        m.ClearAll,
		TriggerUnhideAll:       m.UnhideAll,
		TriggerSave:            m.Save,
		TriggerSaveAs:          m.SaveAs,
		TriggerNewCodeCell:     m.CreateCellAfter,
		TriggerCopyCell:        m.CopyCell,
		TriggerCutCell:         m.CutCell,
		TriggerPasteCell:       m.PasteCell,
		TriggerKillKernel:      m.KillKernel,
		TriggerInterruptKernel: m.InterruptKernel,
		TriggerRestartKernel:   m.RestartKernel,
		TriggerRestartAndClear: m.RestartClearAll,
		TriggerPublishGist:     m.PublishAnonGist,
		TriggerGithubAuth:      m.PublishUserGist,
		TriggerZoomIn:          m.ZoomIn,
		TriggerZoomOut:         m.ZoomOut,
		TriggerTheme:           m.SetTheme,
		TriggerSetBlinkRate:    m.SetCursorBlink,
		TriggerLoad:            m.Load,
		TriggerNew:             m.NewNotebook,
	}
}

// Init binds every trigger in TriggerNames to its handler on r. It fails
// when the handler table and the name list disagree or a name is already
// bound.
func Init(r *Router, m *Menu) error {
	table := m.table()
	if len(table) != len(TriggerNames) {
		return fmt.Errorf("menu: %d handlers for %d triggers", len(table), len(TriggerNames))
	}
	for _, name := range TriggerNames {
		h, ok := table[name]
		if !ok {
			return fmt.Errorf("menu: no handler for %s", name)
		}
		if err := r.Register(name, h); err != nil {
			return err
		}
	}
	return nil
}
