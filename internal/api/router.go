package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/notebookd/internal/journal"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(sess Session, j journal.Journal, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(sess, j)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Triggers.
	r.Get("/triggers", h.ListTriggers)
	r.Post("/triggers/{name}", h.FireTrigger)

	// Session state and history.
	r.Get("/session", h.GetSession)
	r.Get("/commands", h.RecentCommands)

	// Notification actions.
	r.Post("/notifications/{id}/action", h.InvokeAction)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
