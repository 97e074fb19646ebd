// Package session runs the document session: one goroutine owns the store,
// and every trigger, dispatch and state read is serialized through it.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/apperr"
	"github.com/starford/notebookd/internal/menu"
	"github.com/starford/notebookd/internal/notify"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/store"
)

type request struct {
	fn   func(*store.Store)
	done chan struct{}
}

// Session serializes access to a store.
//
// Concurrency model: a single internal loop goroutine owns the store.
// Public methods submit closures to the loop and wait for them to finish,
// so handlers and listeners never run concurrently.
type Session struct {
	store  *store.Store
	router *menu.Router
	hub    *notify.Hub
	logger *slog.Logger

	reqCh   chan request
	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// New starts a session loop over st. hub may be nil when no notification
// actions are expected.
func New(st *store.Store, router *menu.Router, hub *notify.Hub, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		store:   st,
		router:  router,
		hub:     hub,
		logger:  logger,
		reqCh:   make(chan request),
		stopCh:  make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Session) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.stopCh:
			return
		case req := <-s.reqCh:
			s.exec(req)
		}
	}
}

func (s *Session) exec(req request) {
	defer close(req.done)
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("session: handler panic", slog.Any("panic", r))
		}
	}()
	req.fn(s.store)
}

// Do runs fn on the loop and waits for it to return. The wait is bounded by
// ctx; fn itself still runs to completion once started.
func (s *Session) Do(ctx context.Context, fn func(*store.Store)) error {
	if s.closed.Load() {
		return apperr.ErrClosed
	}
	req := request{fn: fn, done: make(chan struct{})}
	select {
	case s.reqCh <- req:
	case <-s.stopped:
		return apperr.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fire routes ev through the trigger router. It reports
// apperr.ErrUnknownTrigger for names the router does not know.
func (s *Session) Fire(ctx context.Context, ev menu.Event) error {
	if ev.Ctx == nil {
		ev.Ctx = ctx
	}
	var known bool
	if err := s.Do(ctx, func(st *store.Store) { known = s.router.Fire(st, ev) }); err != nil {
		return err
	}
	if !known {
		return fmt.Errorf("%w: %s", apperr.ErrUnknownTrigger, ev.Name)
	}
	return nil
}

// Dispatch applies cmd on the loop.
func (s *Session) Dispatch(ctx context.Context, cmd actions.Command) error {
	return s.Do(ctx, func(st *store.Store) { st.Dispatch(cmd) })
}

// Snapshot returns the current state. States are immutable, so the result
// can be read freely.
func (s *Session) Snapshot(ctx context.Context) (*state.State, error) {
	var st *state.State
	if err := s.Do(ctx, func(ss *store.Store) { st = ss.State() }); err != nil {
		return nil, err
	}
	return st, nil
}

// View returns the derived view of the current state.
func (s *Session) View(ctx context.Context) (View, error) {
	st, err := s.Snapshot(ctx)
	if err != nil {
		return View{}, err
	}
	return Describe(st), nil
}

// InvokeAction runs the notification action registered under id. It
// reports apperr.ErrNotFound when none is pending.
func (s *Session) InvokeAction(ctx context.Context, id string) error {
	if s.hub == nil {
		return fmt.Errorf("action %s: %w", id, apperr.ErrNotFound)
	}
	var found bool
	if err := s.Do(ctx, func(*store.Store) { found = s.hub.Invoke(id) }); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("action %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// Triggers returns the trigger names the session routes.
func (s *Session) Triggers() []string {
	return s.router.Names()
}

// Close stops the loop. Pending callers receive apperr.ErrClosed.
func (s *Session) Close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.stopCh)
	}
	<-s.stopped
}
