// Package menu routes named trigger events (menu selections, shortcuts,
// inter-process signals) to handlers that turn them into commands against
// whatever document and kernel are current when the event fires.
package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/starford/notebookd/internal/store"
)

// ErrDuplicateTrigger is returned when a trigger name is registered twice.
var ErrDuplicateTrigger = errors.New("menu: trigger already registered")

// Event is one firing of a trigger.
type Event struct {
	Name string
	// Source names the surface the event came from (window context).
	Source string
	Args   []json.RawMessage
	Ctx    context.Context
}

// NewEvent builds an event, encoding args as JSON. Arguments that cannot be
// encoded become null.
func NewEvent(name string, args ...any) Event {
	ev := Event{Name: name, Args: make([]json.RawMessage, len(args))}
	for i, a := range args {
		raw, err := json.Marshal(a)
		if err != nil {
			raw = json.RawMessage("null")
		}
		ev.Args[i] = raw
	}
	return ev
}

// Context returns the event's context, or context.Background.
func (e Event) Context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}

// Decode unmarshals argument i into v. It reports false when the argument
// is missing, null or of the wrong shape.
func (e Event) Decode(i int, v any) bool {
	if i >= len(e.Args) || len(e.Args[i]) == 0 || string(e.Args[i]) == "null" {
		return false
	}
	return json.Unmarshal(e.Args[i], v) == nil
}

// String returns argument i as a string, or "".
func (e Event) String(i int) string {
	var s string
	e.Decode(i, &s)
	return s
}

// Handler reacts to one trigger.
type Handler func(s store.Handle, ev Event)

// Router maps trigger names to handlers.
type Router struct {
	handlers map[string]Handler
	logger   *slog.Logger
}

// NewRouter creates an empty router.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{handlers: make(map[string]Handler), logger: logger}
}

// Register binds h to name. A name can be bound only once.
func (r *Router) Register(name string, h Handler) error {
	if _, ok := r.handlers[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTrigger, name)
	}
	r.handlers[name] = h
	return nil
}

// Has reports whether name is registered.
func (r *Router) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns the registered trigger names, sorted.
func (r *Router) Names() []string {
	return slices.Sorted(maps.Keys(r.handlers))
}

// Fire runs the handler bound to ev.Name against s. Unknown names are
// ignored and reported as false.
func (r *Router) Fire(s store.Handle, ev Event) bool {
	h, ok := r.handlers[ev.Name]
	if !ok {
		r.logger.Debug("menu: unknown trigger", slog.String("name", ev.Name), slog.String("source", ev.Source))
		return false
	}
	r.logger.Debug("menu: trigger fired", slog.String("name", ev.Name), slog.String("source", ev.Source))
	h(s, ev)
	return true
}
