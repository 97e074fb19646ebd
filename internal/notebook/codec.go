package notebook

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	formatMajor = 4
	formatMinor = 5
)

type nbFile struct {
	Cells    []any      `json:"cells"`
	Metadata nbMetadata `json:"metadata"`
	Major    int        `json:"nbformat"`
	Minor    int        `json:"nbformat_minor"`
}

type nbMetadata struct {
	Kernelspec *KernelInfo `json:"kernelspec,omitempty"`
}

type nbCellMetadata struct {
	Jupyter *nbJupyterMeta `json:"jupyter,omitempty"`
}

type nbJupyterMeta struct {
	SourceHidden  bool `json:"source_hidden,omitempty"`
	OutputsHidden bool `json:"outputs_hidden,omitempty"`
}

type nbCell struct {
	ID       string         `json:"id,omitempty"`
	CellType CellType       `json:"cell_type"`
	Source   multiline      `json:"source"`
	Metadata nbCellMetadata `json:"metadata"`
}

// nbCodeCell always carries outputs and execution_count (null when unset).
type nbCodeCell struct {
	nbCell
	Outputs        []json.RawMessage `json:"outputs"`
	ExecutionCount *int              `json:"execution_count"`
}

type nbInput struct {
	Cells    []nbCodeCell `json:"cells"`
	Metadata nbMetadata   `json:"metadata"`
	Major    int          `json:"nbformat"`
}

// multiline accepts both the string and list-of-strings encodings of
// nbformat source fields.
type multiline string

func (s *multiline) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = multiline(one)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("notebook: source: %w", err)
	}
	*s = multiline(strings.Join(parts, ""))
	return nil
}

// Encode renders m as nbformat v4 JSON.
func Encode(m *Model) ([]byte, error) {
	f := nbFile{Cells: make([]any, 0, len(m.Cells)), Major: formatMajor, Minor: formatMinor}
	if m.Kernel.Name != "" {
		k := m.Kernel
		f.Metadata.Kernelspec = &k
	}
	for _, c := range m.Cells {
		nc := nbCell{ID: c.ID, CellType: c.Type, Source: multiline(c.Source)}
		if c.InputHidden || c.OutputHidden {
			nc.Metadata.Jupyter = &nbJupyterMeta{SourceHidden: c.InputHidden, OutputsHidden: c.OutputHidden}
		}
		if c.Type != CellCode {
			f.Cells = append(f.Cells, nc)
			continue
		}
		cc := nbCodeCell{nbCell: nc, Outputs: c.Outputs, ExecutionCount: c.ExecutionCount}
		if cc.Outputs == nil {
			cc.Outputs = []json.RawMessage{}
		}
		f.Cells = append(f.Cells, cc)
	}
	data, err := json.MarshalIndent(f, "", " ")
	if err != nil {
		return nil, fmt.Errorf("notebook: encode: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses nbformat v4 JSON. Cells without an id are assigned one.
func Decode(data []byte) (*Model, error) {
	var f nbInput
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("notebook: decode: %w", err)
	}
	if f.Major != 0 && f.Major != formatMajor {
		return nil, fmt.Errorf("notebook: unsupported nbformat %d", f.Major)
	}
	m := &Model{Cells: make([]Cell, 0, len(f.Cells))}
	if f.Metadata.Kernelspec != nil {
		m.Kernel = *f.Metadata.Kernelspec
	}
	for _, nc := range f.Cells {
		c := NewCell(nc.CellType, string(nc.Source))
		if nc.ID != "" {
			c.ID = nc.ID
		}
		c.Outputs = nc.Outputs
		c.ExecutionCount = nc.ExecutionCount
		if nc.Metadata.Jupyter != nil {
			c.InputHidden = nc.Metadata.Jupyter.SourceHidden
			c.OutputHidden = nc.Metadata.Jupyter.OutputsHidden
		}
		m.Cells = append(m.Cells, c)
	}
	if len(m.Cells) > 0 {
		m.Focused = m.Cells[0].ID
	}
	return m, nil
}
