package expand

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spreadgen/internal/config"
	"spreadgen/internal/logger"
)

func setupProject(t *testing.T, files map[string]string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	cfg := config.Default()
	cfg.Dir = dir

	return cfg
}

func TestRunner_RunAndWrite(t *testing.T) {
	cfg := setupProject(t, map[string]string{
		"src/lib.rs.in":    "fn f() {\n    clone!(a);\n}\n",
		"src/broken.rs.in": "fn g() {\n    slet!();\n}\n",
	})
	ctx := logger.ContextWithLogger(t.Context(), logger.NewLogger(logger.TestConfig()))

	inputs, err := cfg.ResolveInputs()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/broken.rs.in", "src/lib.rs.in"}, inputs)

	r := NewRunner(cfg)
	assert.Nil(t, r.Formatter())

	results, err := r.Run(ctx, inputs)
	require.NoError(t, err)
	require.Len(t, results, 2)

	broken, lib := results[0], results[1]

	require.True(t, broken.Diagnostics.HasErrors())
	assert.Equal(t, "empty-list", broken.Diagnostics.Errors[0].Code)
	assert.Empty(t, broken.Content)

	require.False(t, lib.Diagnostics.HasErrors())
	assert.Equal(t, filepath.Join(cfg.Dir, "src", "lib.rs"), lib.Output)
	assert.Equal(t,
		"// Code generated by spreadgen from src/lib.rs.in. DO NOT EDIT.\n\nfn f() {\n    let a = a.clone();\n}\n",
		lib.Content)

	require.NoError(t, r.Write(results))

	written, err := os.ReadFile(lib.Output)
	require.NoError(t, err)
	assert.Equal(t, lib.Content, string(written))

	_, err = os.Stat(filepath.Join(cfg.Dir, "src", "broken.rs"))
	assert.True(t, os.IsNotExist(err))

	stale, err := Check(results)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestRunner_MissingInput(t *testing.T) {
	cfg := setupProject(t, nil)

	_, err := NewRunner(cfg).Run(t.Context(), []string{"src/missing.rs.in"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input src/missing.rs.in")

	_, err = NewRunner(cfg).File(t.Context(), "src/lib.rs")
	require.Error(t, err)
}

func TestCheck_ReportsDiff(t *testing.T) {
	cfg := setupProject(t, map[string]string{
		"a.rs.in": "clone!(x);\n",
		"b.rs.in": "clone!(y);\n",
	})

	r := NewRunner(cfg)

	results, err := r.Run(t.Context(), []string{"a.rs.in", "b.rs.in"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(results[0].Output, []byte(results[0].Content), 0o644))

	stale, err := Check(results)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "b.rs.in", stale[0].Result.Input)
	assert.Contains(t, stale[0].Diff, "--- /dev/null\n")
	assert.Contains(t, stale[0].Diff, "+let y = y.clone();\n")

	require.NoError(t, os.WriteFile(results[0].Output, []byte("let x = x;\n"), 0o644))

	diff, err := Diff(results[0])
	require.NoError(t, err)
	assert.Contains(t, diff, "--- "+results[0].Output+"\n")
	assert.Contains(t, diff, "-let x = x;\n")
	assert.Contains(t, diff, "+let x = x.clone();\n")
}

func TestRunner_FormatterFailureKeepsSidecar(t *testing.T) {
	cfg := setupProject(t, map[string]string{"lib.rs.in": "clone!(a);\n"})
	cfg.Format.Rustfmt = true
	cfg.Format.Command = "spreadgen-test-missing-rustfmt"

	r := NewRunner(cfg)
	require.NotNil(t, r.Formatter())

	results, err := r.Run(t.Context(), []string{"lib.rs.in"})
	require.NoError(t, err)

	res := results[0]
	require.Len(t, res.Diagnostics.Warnings, 1)
	assert.Equal(t, "rustfmt", res.Diagnostics.Warnings[0].Code)
	assert.Equal(t, res.Content, res.Unformatted)

	require.NoError(t, r.Write(results))

	sidecar := filepath.Join(cfg.Dir, "lib.unformatted.rs")
	data, err := os.ReadFile(sidecar)
	require.NoError(t, err)
	assert.Equal(t, res.Unformatted, string(data))

	cfg.Format.Rustfmt = false
	r = NewRunner(cfg)

	results, err = r.Run(t.Context(), []string{"lib.rs.in"})
	require.NoError(t, err)
	require.NoError(t, r.Write(results))

	_, err = os.Stat(sidecar)
	assert.True(t, os.IsNotExist(err))
}

func TestRunner_CancelledContext(t *testing.T) {
	cfg := setupProject(t, map[string]string{"lib.rs.in": "clone!(a);\n"})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewRunner(cfg).Run(ctx, []string{"lib.rs.in"})
	require.Error(t, err)
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.rs")

	require.NoError(t, WriteFiles([]GeneratedFile{{Path: path, Content: []byte("x")}}, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
	assert.Equal(t, filepath.Join(dir, "nested", "deeper", "out.unformatted.rs"), unformattedPath(path))
}
