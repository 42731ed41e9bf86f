package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandViewer writes the chart to a temporary file and opens it with an
// external program, blocking until the program exits.
type CommandViewer struct {
	name string
	args []string
}

// NewCommandViewer splits command on whitespace; the image path is appended
// as the final argument, e.g. "feh --scale-down" runs "feh --scale-down /tmp/x.png".
func NewCommandViewer(command string) (*CommandViewer, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("NewCommandViewer() expected a command; got empty string")
	}
	return &CommandViewer{name: fields[0], args: fields[1:]}, nil
}

func (v *CommandViewer) View(ctx context.Context, image []byte, format, name string) error {
	f, err := os.CreateTemp("", "traversalplot-*."+format)
	if err != nil {
		return fmt.Errorf("CommandViewer.View() got err creating temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(image); err != nil {
		f.Close()
		return fmt.Errorf("CommandViewer.View() got err writing %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("CommandViewer.View() got err writing %s: %w", f.Name(), err)
	}

	args := append(append([]string{}, v.args...), f.Name())
	cmd := exec.CommandContext(ctx, v.name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("CommandViewer.View() got err running %s for %s: %w", v.name, name, err)
	}
	return nil
}
