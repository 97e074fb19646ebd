// Package notebook holds the in-memory notebook model carried by content
// records and its nbformat v4 JSON codec.
//
// A Model is treated as an immutable value: every operation returns a new
// Model and leaves the receiver untouched, so content records can be
// compared by pointer identity.
package notebook

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"
)

// CellType is the kind of a notebook cell.
type CellType string

// Cell types.
const (
	CellCode     CellType = "code"
	CellMarkdown CellType = "markdown"
	CellRaw      CellType = "raw"
)

// Cell execution states tracked by the session (not persisted).
const (
	StatusIdle   = ""
	StatusQueued = "queued"
)

// Cell is one unit of a notebook.
type Cell struct {
	ID             string
	Type           CellType
	Source         string
	Outputs        []json.RawMessage
	ExecutionCount *int
	Status         string
	InputHidden    bool
	OutputHidden   bool
}

// KernelInfo is the kernelspec stored in notebook metadata.
type KernelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language,omitempty"`
}

// Model is a notebook document.
type Model struct {
	Cells     []Cell
	Focused   string
	Clipboard *Cell
	Kernel    KernelInfo
}

var empty = &Model{}

// Empty returns the shared empty model. Callers must not modify it.
func Empty() *Model { return empty }

// New returns a notebook with a single empty code cell focused.
func New(kernel KernelInfo) *Model {
	c := NewCell(CellCode, "")
	return &Model{Cells: []Cell{c}, Focused: c.ID, Kernel: kernel}
}

// NewCell returns a cell with a fresh id.
func NewCell(t CellType, source string) Cell {
	return Cell{ID: uuid.New().String(), Type: t, Source: source}
}

func (m *Model) clone() *Model {
	out := *m
	out.Cells = slices.Clone(m.Cells)
	return &out
}

// Index returns the position of the cell with the given id, or -1.
func (m *Model) Index(id string) int {
	return slices.IndexFunc(m.Cells, func(c Cell) bool { return c.ID == id })
}

// FocusedIndex returns the position of the focused cell, or -1.
func (m *Model) FocusedIndex() int {
	if m.Focused == "" {
		return -1
	}
	return m.Index(m.Focused)
}

// InsertAfterFocused inserts c after the focused cell (at the end when no
// cell is focused) and focuses it.
func (m *Model) InsertAfterFocused(c Cell) *Model {
	out := m.clone()
	pos := len(out.Cells)
	if i := m.FocusedIndex(); i >= 0 {
		pos = i + 1
	}
	out.Cells = slices.Insert(out.Cells, pos, c)
	out.Focused = c.ID
	return out
}

// CopyFocused puts the focused cell on the clipboard.
func (m *Model) CopyFocused() *Model {
	i := m.FocusedIndex()
	if i < 0 {
		return m
	}
	out := m.clone()
	c := m.Cells[i]
	out.Clipboard = &c
	return out
}

// CutFocused moves the focused cell to the clipboard and focuses its
// neighbour.
func (m *Model) CutFocused() *Model {
	i := m.FocusedIndex()
	if i < 0 {
		return m
	}
	out := m.clone()
	c := m.Cells[i]
	out.Clipboard = &c
	out.Cells = slices.Delete(out.Cells, i, i+1)
	switch {
	case len(out.Cells) == 0:
		out.Focused = ""
	case i < len(out.Cells):
		out.Focused = out.Cells[i].ID
	default:
		out.Focused = out.Cells[len(out.Cells)-1].ID
	}
	return out
}

// Paste inserts a copy of the clipboard cell after the focused cell.
func (m *Model) Paste() *Model {
	if m.Clipboard == nil {
		return m
	}
	c := *m.Clipboard
	c.ID = uuid.New().String()
	c.Outputs = slices.Clone(c.Outputs)
	return m.InsertAfterFocused(c)
}

// ClearOutputs drops the outputs and execution counts of every code cell.
func (m *Model) ClearOutputs() *Model {
	out := m.clone()
	for i := range out.Cells {
		if out.Cells[i].Type != CellCode {
			continue
		}
		out.Cells[i].Outputs = nil
		out.Cells[i].ExecutionCount = nil
	}
	return out
}

// QueueFrom marks every code cell at or after index from as queued.
func (m *Model) QueueFrom(from int) *Model {
	if from < 0 {
		return m
	}
	out := m.clone()
	for i := from; i < len(out.Cells); i++ {
		if out.Cells[i].Type == CellCode {
			out.Cells[i].Status = StatusQueued
		}
	}
	return out
}

// SetHidden sets the input and output visibility of every cell.
func (m *Model) SetHidden(inputHidden, outputHidden bool) *Model {
	out := m.clone()
	for i := range out.Cells {
		out.Cells[i].InputHidden = inputHidden
		out.Cells[i].OutputHidden = outputHidden
	}
	return out
}
