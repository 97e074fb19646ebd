// Package export implements the export/notify pipeline behind the
// "export as PDF" trigger.
package export

import (
	"context"
	"fmt"

	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/notify"
	"github.com/starford/notebookd/internal/refs"
	"github.com/starford/notebookd/internal/selectors"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/store"
)

// Exporter converts the saved document at path and returns the output
// path.
type Exporter interface {
	Export(ctx context.Context, path string) (string, error)
}

// SavePathPrompter picks the path an unsaved document is saved to before
// export. An empty result cancels.
type SavePathPrompter interface {
	SaveAsPath(st *state.State) string
}

// Pipeline bundles the export collaborators.
type Pipeline struct {
	Exporter Exporter
	Notifier notify.Notifier
	Prompter SavePathPrompter
}

// ExportDocument exports the document at path and reports the outcome
// through n.
func ExportDocument(ctx context.Context, exp Exporter, path string, n notify.Notifier) error {
	if exp == nil {
		err := fmt.Errorf("export: no exporter configured")
		n.Notify(failed(err))
		return err
	}
	if _, err := exp.Export(ctx, path); err != nil {
		n.Notify(failed(err))
		return err
	}
	n.Notify(notify.Notification{
		Title:       "PDF exported",
		Message:     notify.Text(fmt.Sprintf("Notebook %s has been exported as a pdf.", path)),
		Dismissible: true,
		Position:    notify.PositionTopRight,
		Level:       notify.LevelSuccess,
	})
	return nil
}

func failed(err error) notify.Notification {
	return notify.Notification{
		Title:       "PDF export failed",
		Message:     notify.Text(err.Error()),
		Dismissible: true,
		Position:    notify.PositionTopRight,
		Level:       notify.LevelError,
	}
}

// RequestExport exports the current document. When it has never been
// saved, nothing is exported; a warning is raised instead whose "Save As"
// action saves the document and retries the export.
func RequestExport(ctx context.Context, s store.Handle, p Pipeline) {
	path := selectors.CurrentFilepath(s.State())
	if path != "" {
		_ = ExportDocument(ctx, p.Exporter, path, p.Notifier)
		return
	}

	p.Notifier.Notify(notify.Notification{
		Title: "File has not been saved!",
		Message: notify.Lines(
			"Click the button below to save the notebook such that it can be ",
			"exported as a PDF.",
		),
		Dismissible: true,
		Position:    notify.PositionTopRight,
		Level:       notify.LevelWarning,
		Action: &notify.Action{
			Label: "Save As",
			Callback: func() {
				st := s.State()
				var target string
				if p.Prompter != nil {
					target = p.Prompter.SaveAsPath(st)
				}
				if target == "" {
					return
				}
				s.Dispatch(actions.SaveAs(target, selectors.CurrentContentRef(st)))
				if selectors.CurrentFilepath(s.State()) != "" {
					RequestExport(context.WithoutCancel(ctx), s, p)
				}
			},
		},
	})
}

// UntitledPrompter names unsaved documents "Untitled-<ref>.ipynb".
type UntitledPrompter struct{}

// SaveAsPath implements SavePathPrompter.
func (UntitledPrompter) SaveAsPath(st *state.State) string {
	ref := selectors.CurrentContentRef(st)
	if ref == "" {
		return ""
	}
	return "Untitled-" + shortRef(ref) + ".ipynb"
}

func shortRef(ref refs.ContentRef) string {
	s := string(ref)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
