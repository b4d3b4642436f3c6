package expand

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Watch(t *testing.T) {
	cfg := setupProject(t, map[string]string{"src/keep.txt": ""})
	r := NewRunner(cfg)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	reports := make(chan *Result, 4)
	done := make(chan error, 1)

	go func() {
		done <- r.Watch(ctx, func(res *Result) {
			select {
			case reports <- res:
			default:
			}
		})
	}()

	input := filepath.Join(cfg.Dir, "src", "lib.rs.in")

	// the watcher may not be registered yet, so keep writing until it reports
	require.Eventually(t, func() bool {
		if err := os.WriteFile(input, []byte("clone!(a);\n"), 0o644); err != nil {
			return false
		}

		select {
		case res := <-reports:
			return res.Input == "src/lib.rs.in"
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	data, err := os.ReadFile(filepath.Join(cfg.Dir, "src", "lib.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "let a = a.clone();")

	cancel()
	require.NoError(t, <-done)
}
