package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/effects"
	"github.com/starford/notebookd/internal/export"
	"github.com/starford/notebookd/internal/gist"
	"github.com/starford/notebookd/internal/journal"
	"github.com/starford/notebookd/internal/menu"
	"github.com/starford/notebookd/internal/notify"
	"github.com/starford/notebookd/internal/prefs"
	"github.com/starford/notebookd/internal/refs"
	"github.com/starford/notebookd/internal/session"
	"github.com/starford/notebookd/internal/sse"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/storage"
	"github.com/starford/notebookd/internal/store"
	"github.com/starford/notebookd/internal/view"
)

// daemon holds the long-lived components shared by the HTTP and MCP
// front-ends.
type daemon struct {
	cfg     *Config
	logger  *slog.Logger
	fs      *storage.FS
	journal *journal.DB
	broker  *sse.Broker
	prefs   *prefs.File
	session *session.Session
}

func newDaemon(cfg *Config, logger *slog.Logger) (*daemon, error) {
	if err := os.MkdirAll(cfg.Workspace.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace dir: %w", err)
	}
	fs, err := storage.NewFS(cfg.Workspace.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("init journal: %w", err)
	}

	prefsPath, err := filepath.Abs(cfg.Preferences.Path)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preferences path: %w", err)
	}
	prefsFile := prefs.NewFile(prefsPath)

	broker := sse.NewBroker(0)
	hub := notify.NewHub(broker, logger)

	initial := state.New()
	initial.App = &state.App{Version: cfg.App.Version}
	st := store.New(initial)
	st.Subscribe(journal.Listener(db, logger))
	st.Subscribe(func(cmd actions.Command, _ *state.State) { broker.PublishCommand(cmd) })

	(&effects.Documents{Storage: fs, Notifier: hub, Root: fs.Root(), Logger: logger}).Attach(st)
	(&effects.Preferences{File: prefsFile, Logger: logger}).Attach(st)
	gh, err := gist.NewClient(cfg.Gist.APIURL)
	if err != nil {
		db.Close()
		broker.Close()
		return nil, fmt.Errorf("init gist client: %w", err)
	}
	(&effects.Publishing{
		Publisher: gh,
		Notifier:  hub,
		Timeout:   cfg.Gist.Timeout,
		Logger:    logger,
	}).Attach(st)

	router := menu.NewRouter(logger)
	m := &menu.Menu{
		Zoom: view.NewScale(broker.PublishZoom),
		Export: export.Pipeline{
			Exporter: &export.CommandExporter{
				Argv:    cfg.Export.Command,
				Dir:     fs.Root(),
				Timeout: cfg.Export.Timeout,
			},
			Notifier: hub,
			Prompter: export.UntitledPrompter{},
		},
		Getwd: func() (string, error) { return fs.Root(), nil },
	}
	if err := menu.Init(router, m); err != nil {
		db.Close()
		broker.Close()
		return nil, fmt.Errorf("init menu: %w", err)
	}

	return &daemon{
		cfg:     cfg,
		logger:  logger,
		fs:      fs,
		journal: db,
		broker:  broker,
		prefs:   prefsFile,
		session: session.New(st, router, hub, logger),
	}, nil
}

// start registers the configured host and kernel catalog, loads the user
// preferences and opens either the document at open or a blank notebook.
func (d *daemon) start(ctx context.Context, open string) error {
	host := d.cfg.Host.Record()
	host.Ref = refs.CreateHostRef()
	specs := d.cfg.Kernelspecs

	if err := d.session.Do(ctx, func(s *store.Store) {
		s.Dispatch(actions.SetHost(host))
		s.Dispatch(actions.SetKernelspecs(refs.CreateKernelspecsRef(), host.Ref, specs.Default, specs.Specs))
	}); err != nil {
		return err
	}
	if err := d.session.Fire(ctx, menu.NewEvent(menu.TriggerLoadConfig)); err != nil {
		return err
	}
	if open != "" {
		// main:load targets the current content; there is none yet.
		return d.session.Dispatch(ctx, actions.FetchContent(open, map[string]any{}, refs.CreateKernelRef(), refs.CreateContentRef()))
	}
	return d.session.Fire(ctx, menu.NewEvent(menu.TriggerNew))
}

// watchPreferences fires main:load-config whenever the preferences file is
// edited outside the daemon. It returns when ctx is done.
func (d *daemon) watchPreferences(ctx context.Context) error {
	if !d.cfg.Preferences.Watch {
		return nil
	}
	return d.prefs.Watch(ctx, d.logger, func() {
		if err := d.session.Fire(ctx, menu.NewEvent(menu.TriggerLoadConfig)); err != nil {
			d.logger.Warn("prefs: reload failed", slog.String("error", err.Error()))
		}
	})
}

func (d *daemon) Close() {
	d.session.Close()
	d.broker.Close()
	if err := d.journal.Close(); err != nil {
		d.logger.Warn("journal close failed", slog.String("error", err.Error()))
	}
}
