package api

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/notebookd/internal/journal"
	"github.com/starford/notebookd/internal/session"
)

const (
	maxTriggerArgs  = 8
	maxSourceLength = 128
	maxCommandLimit = 500
)

// FireTriggerRequest is the optional request body for firing a trigger.
type FireTriggerRequest struct {
	Args   []json.RawMessage `json:"args" swaggertype:"array,object"`
	Source string            `json:"source" example:"window-1"`
}

// Validate implements validation.Validatable.
func (r FireTriggerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Args, validation.Length(0, maxTriggerArgs)),
		validation.Field(&r.Source, validation.Length(0, maxSourceLength)),
	)
}

// FireTriggerResponse reports the session after a trigger has been handled.
type FireTriggerResponse struct {
	Trigger string       `json:"trigger" example:"menu:save" validate:"required"`
	Session session.View `json:"session" validate:"required"`
}

// TriggerListResponse lists the routed trigger names.
type TriggerListResponse struct {
	Triggers []string `json:"triggers" validate:"required"`
}

// UnknownTriggerResponse is returned for trigger names the router does not
// know.
type UnknownTriggerResponse struct {
	Error      string `json:"error" example:"unknown trigger" validate:"required"`
	DidYouMean string `json:"did_you_mean,omitempty" example:"menu:save"`
}

// CommandListResponse wraps recent journal entries, newest first.
type CommandListResponse struct {
	Commands []journal.Entry `json:"commands" validate:"required"`
	Total    int             `json:"total" example:"42" validate:"required"`
}
