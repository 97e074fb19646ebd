package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/notebookd/internal/apperr"
	"github.com/starford/notebookd/internal/journal"
	"github.com/starford/notebookd/internal/menu"
	"github.com/starford/notebookd/internal/session"
)

// Session is the session surface the API drives.
type Session interface {
	Fire(ctx context.Context, ev menu.Event) error
	View(ctx context.Context) (session.View, error)
	InvokeAction(ctx context.Context, id string) error
	Triggers() []string
}

// Handler holds API route handlers.
type Handler struct {
	sess    Session
	journal journal.Journal
}

// NewHandler creates a new Handler.
func NewHandler(sess Session, j journal.Journal) *Handler {
	return &Handler{sess: sess, journal: j}
}

// writeSessionError maps session failures that are not the caller's fault.
func writeSessionError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, apperr.ErrClosed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusServiceUnavailable, "session unavailable")
		return
	}
	slog.Error(op+" failed", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// ListTriggers handles GET /api/triggers.
//
//	@Summary	List the trigger names the session routes
//	@Tags		triggers
//	@Produce	json
//	@Success	200	{object}	TriggerListResponse
//	@Security	BearerAuth
//	@Router		/triggers [get]
func (h *Handler) ListTriggers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, TriggerListResponse{Triggers: h.sess.Triggers()})
}

// FireTrigger handles POST /api/triggers/{name}.
//
//	@Summary	Fire a trigger against the current document and kernel
//	@Tags		triggers
//	@Accept		json
//	@Produce	json
//	@Param		name	path		string				true	"Trigger name"
//	@Param		body	body		FireTriggerRequest	false	"Trigger arguments"
//	@Success	200		{object}	FireTriggerResponse
//	@Failure	400		{object}	errResponse
//	@Failure	404		{object}	UnknownTriggerResponse
//	@Security	BearerAuth
//	@Router		/triggers/{name} [post]
func (h *Handler) FireTrigger(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	name := chi.URLParam(r, "name")

	var req FireTriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ev := menu.Event{Name: name, Source: req.Source, Args: req.Args}
	if err := h.sess.Fire(r.Context(), ev); err != nil {
		if errors.Is(err, apperr.ErrUnknownTrigger) {
			writeJSON(w, http.StatusNotFound, UnknownTriggerResponse{
				Error:      "unknown trigger",
				DidYouMean: suggest(name, h.sess.Triggers()),
			})
			return
		}
		writeSessionError(w, "fire trigger", err)
		return
	}

	view, err := h.sess.View(r.Context())
	if err != nil {
		writeSessionError(w, "session view", err)
		return
	}
	writeJSON(w, http.StatusOK, FireTriggerResponse{Trigger: name, Session: view})
}

// GetSession handles GET /api/session.
//
//	@Summary	Get the derived view of the current session
//	@Tags		session
//	@Produce	json
//	@Success	200	{object}	session.View
//	@Security	BearerAuth
//	@Router		/session [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.sess.View(r.Context())
	if err != nil {
		writeSessionError(w, "session view", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// RecentCommands handles GET /api/commands.
//
//	@Summary	List recently applied commands, newest first
//	@Tags		session
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum entries"
//	@Success	200		{object}	CommandListResponse
//	@Failure	400		{object}	errResponse
//	@Security	BearerAuth
//	@Router		/commands [get]
func (h *Handler) RecentCommands(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	if err := validation.Validate(limit, validation.Min(0), validation.Max(maxCommandLimit)); err != nil {
		writeError(w, http.StatusBadRequest, "limit: "+err.Error())
		return
	}

	entries, err := h.journal.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("recent commands failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	total, err := h.journal.Count(r.Context())
	if err != nil {
		slog.Error("count commands failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	writeJSON(w, http.StatusOK, CommandListResponse{Commands: entries, Total: total})
}

// InvokeAction handles POST /api/notifications/{id}/action.
//
//	@Summary	Run the action attached to a notification
//	@Tags		notifications
//	@Produce	json
//	@Param		id	path		string	true	"Notification id"
//	@Success	200	{object}	map[string]string
//	@Failure	404	{object}	errResponse
//	@Security	BearerAuth
//	@Router		/notifications/{id}/action [post]
func (h *Handler) InvokeAction(w http.ResponseWriter, r *http.Request) {
	// Action ids are "<notification id>/action", so the route spells the
	// action id.
	id := chi.URLParam(r, "id") + "/action"
	if err := h.sess.InvokeAction(r.Context(), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no pending action")
			return
		}
		writeSessionError(w, "invoke action", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
