// Package store holds the session state behind a single dispatch entry
// point.
package store

import (
	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/reducer"
	"github.com/starford/notebookd/internal/state"
)

// Listener observes every applied command together with the state it
// produced. Listeners may dispatch further commands; those are applied
// after the current command has been delivered to every listener.
type Listener func(cmd actions.Command, st *state.State)

// ReduceFunc computes the next state.
type ReduceFunc func(*state.State, actions.Command) *state.State

// Store owns the current state and applies commands to it.
//
// A Store is not safe for concurrent use; the session loop serializes all
// access to it.
type Store struct {
	state     *state.State
	reduce    ReduceFunc
	listeners []Listener

	queue       []actions.Command
	dispatching bool
}

// Option configures a Store.
type Option func(*Store)

// WithReducer replaces the default reducer.
func WithReducer(fn ReduceFunc) Option {
	return func(s *Store) { s.reduce = fn }
}

// New returns a store holding initial (an empty state when nil).
func New(initial *state.State, opts ...Option) *Store {
	if initial == nil {
		initial = state.New()
	}
	s := &Store{state: initial, reduce: reducer.Reduce}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Store) State() *state.State { return s.state }

// Subscribe registers a listener.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Dispatch applies cmd. Commands dispatched while another is being
// delivered are queued and applied in order once it completes.
func (s *Store) Dispatch(cmd actions.Command) {
	s.queue = append(s.queue, cmd)
	if s.dispatching {
		return
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.state = s.reduce(s.state, next)
		for _, l := range s.listeners {
			l(next, s.state)
		}
	}
}

// Handle is the read and dispatch surface components see. *Store
// implements it; tests substitute recording fakes.
type Handle interface {
	State() *state.State
	Dispatch(cmd actions.Command)
}
