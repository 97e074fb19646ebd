package export

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Placeholders substituted in CommandExporter.Argv.
const (
	InputPlaceholder  = "{input}"
	OutputPlaceholder = "{output}"
)

// CommandExporter exports by running an external converter, e.g.
// ["jupyter", "nbconvert", "--to", "pdf", "{input}"]. When Argv has no
// {input} placeholder the input path is appended.
type CommandExporter struct {
	Argv    []string
	Dir     string
	Timeout time.Duration
}

// Export implements Exporter.
func (e *CommandExporter) Export(ctx context.Context, path string) (string, error) {
	if len(e.Argv) == 0 {
		return "", fmt.Errorf("export: no command configured")
	}
	output := strings.TrimSuffix(path, filepath.Ext(path)) + ".pdf"

	args := make([]string, 0, len(e.Argv)+1)
	sawInput := false
	for _, a := range e.Argv {
		if strings.Contains(a, InputPlaceholder) {
			sawInput = true
		}
		a = strings.ReplaceAll(a, InputPlaceholder, path)
		a = strings.ReplaceAll(a, OutputPlaceholder, output)
		args = append(args, a)
	}
	if !sawInput {
		args = append(args, path)
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = e.Dir
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return "", fmt.Errorf("export: %s: %w", args[0], err)
		}
		return "", fmt.Errorf("export: %s: %w: %s", args[0], err, msg)
	}
	return output, nil
}
