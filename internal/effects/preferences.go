package effects

import (
	"log/slog"

	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/prefs"
	"github.com/starford/notebookd/internal/selectors"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/store"
)

// Preferences keeps the user configuration in sync with the preferences
// file.
type Preferences struct {
	File   *prefs.File
	Logger *slog.Logger
}

// Attach subscribes p to s.
func (p *Preferences) Attach(s *store.Store) {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	s.Subscribe(func(cmd actions.Command, st *state.State) {
		switch cmd.Type {
		case actions.LoadConfigKind:
			values, err := p.File.Load()
			if err != nil {
				p.Logger.Warn("preferences: load failed", slog.String("error", err.Error()))
				return
			}
			s.Dispatch(actions.MergeConfig(values))
		case actions.SetConfigAtKeyKind:
			if err := p.File.Save(selectors.UserPreferences(st)); err != nil {
				p.Logger.Error("preferences: save failed", slog.String("error", err.Error()))
			}
		}
	})
}
