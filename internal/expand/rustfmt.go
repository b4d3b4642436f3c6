package expand

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Formatter pipes source through rustfmt.
type Formatter struct {
	// Command is the rustfmt executable, looked up in PATH.
	Command string
	Edition string
}

// Format returns src as formatted by the command. The error carries the
// formatter's stderr.
func (f *Formatter) Format(ctx context.Context, src string) (string, error) {
	cmd := exec.CommandContext(ctx, f.Command, "--edition", f.Edition, "--emit", "stdout")
	cmd.Stdin = strings.NewReader(src)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("running %s: %w", f.Command, err)
		}

		return "", fmt.Errorf("running %s: %w: %s", f.Command, err, msg)
	}

	return stdout.String(), nil
}
