// Package actions defines the commands forwarded to the store's dispatch
// entry point: their kind tags, payloads and wire encoding.
//
// Kind tags and payload field names are consumed by collaborators outside
// this module and must not change.
package actions

import (
	"encoding/json"
	"fmt"
)

// Command kinds.
const (
	CreateCellAfterKind       = "CREATE_CELL_AFTER"
	CopyCellKind              = "COPY_CELL"
	CutCellKind               = "CUT_CELL"
	PasteCellKind             = "PASTE_CELL"
	SetConfigAtKeyKind        = "SET_CONFIG_AT_KEY"
	MergeConfigKind           = "MERGE_CONFIG"
	LoadConfigKind            = "LOAD_CONFIG"
	RestartKernelKind         = "RESTART_KERNEL"
	InterruptKernelKind       = "INTERRUPT_KERNEL"
	KillKernelKind            = "KILL_KERNEL"
	LaunchKernelKind          = "LAUNCH_KERNEL"
	ClearAllOutputsKind       = "CLEAR_ALL_OUTPUTS"
	ExecuteAllCellsKind       = "EXECUTE_ALL_CELLS"
	ExecuteAllCellsBelowKind  = "EXECUTE_ALL_CELLS_BELOW"
	UnhideAllKind             = "UNHIDE_ALL"
	SaveKind                  = "SAVE"
	SaveAsKind                = "SAVE_AS"
	SaveFulfilledKind         = "SAVE_FULFILLED"
	SaveFailedKind            = "SAVE_FAILED"
	FetchContentKind          = "CORE/FETCH_CONTENT"
	FetchContentFulfilledKind = "CORE/FETCH_CONTENT_FULFILLED"
	FetchContentFailedKind    = "CORE/FETCH_CONTENT_FAILED"
	NewNotebookKind           = "NEW_NOTEBOOK"
	SetGithubTokenKind        = "SET_GITHUB_TOKEN"
	PublishAnonymousGistKind  = "PUBLISH_ANONYMOUS_GIST"
	PublishUserGistKind       = "PUBLISH_USER_GIST"
	SetKernelspecsKind        = "SET_KERNELSPECS"
	SetHostKind               = "SET_HOST"
	SetModalKind              = "SET_MODAL"
)

// Command describes an intended state transition.
type Command struct {
	Type    string
	Payload any
}

// flat marks payloads whose fields are encoded beside "type" instead of
// under "payload".
type flat interface{ flat() }

// MarshalJSON encodes c as {"type": ..., "payload": {...}}, or with the
// payload fields inlined for flat payloads.
func (c Command) MarshalJSON() ([]byte, error) {
	if c.Payload == nil {
		return json.Marshal(struct {
			Type string `json:"type"`
		}{c.Type})
	}
	if _, ok := c.Payload.(flat); !ok {
		return json.Marshal(struct {
			Type    string `json:"type"`
			Payload any    `json:"payload"`
		}{c.Type, c.Payload})
	}
	raw, err := json.Marshal(c.Payload)
	if err != nil {
		return nil, fmt.Errorf("actions: marshal %s: %w", c.Type, err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("actions: marshal %s: %w", c.Type, err)
	}
	fields["type"], _ = json.Marshal(c.Type)
	return json.Marshal(fields)
}

// String returns the kind tag.
func (c Command) String() string { return c.Type }
