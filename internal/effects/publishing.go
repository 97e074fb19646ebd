package effects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/gist"
	"github.com/starford/notebookd/internal/notebook"
	"github.com/starford/notebookd/internal/notify"
	"github.com/starford/notebookd/internal/selectors"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/store"
)

const untitledGist = "Untitled.ipynb"

var errNoToken = errors.New("no GitHub token set")

// Publishing uploads the current notebook as a gist.
type Publishing struct {
	Publisher gist.Publisher
	Notifier  notify.Notifier
	Timeout   time.Duration
	Logger    *slog.Logger
}

// Attach subscribes p to s.
func (p *Publishing) Attach(s *store.Store) {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	s.Subscribe(func(cmd actions.Command, st *state.State) {
		switch cmd.Type {
		case actions.PublishAnonymousGistKind:
			p.publish(st, "")
		case actions.PublishUserGistKind:
			token := ""
			if st.App != nil {
				token = st.App.GithubToken
			}
			if token == "" {
				p.Notifier.Notify(errorNotification("Publishing gist failed", errNoToken))
				return
			}
			p.publish(st, token)
		}
	})
}

func (p *Publishing) publish(st *state.State, token string) {
	c := selectors.CurrentContent(st)
	var m *notebook.Model
	if c != nil {
		m, _ = c.Model.(*notebook.Model)
	}
	if m == nil {
		p.Notifier.Notify(errorNotification("Publishing gist failed", errNotNotebook))
		return
	}
	data, err := notebook.Encode(m)
	if err != nil {
		p.Notifier.Notify(errorNotification("Publishing gist failed", err))
		return
	}
	name := untitledGist
	if c.Filepath != "" {
		name = filepath.Base(c.Filepath)
	}

	ctx := context.Background()
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	url, err := p.Publisher.Publish(ctx, gist.File{Name: name, Content: data}, token)
	if err != nil {
		p.Logger.Warn("publishing: gist failed", slog.String("error", err.Error()))
		p.Notifier.Notify(errorNotification("Publishing gist failed", err))
		return
	}
	p.Logger.Info("publishing: gist uploaded", slog.String("url", url))
	p.Notifier.Notify(successNotification("Gist uploaded", fmt.Sprintf("%s is ready at %s", name, url)))
}
