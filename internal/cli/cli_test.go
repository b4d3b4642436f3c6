package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spreadgen/internal/config"
)

type project struct {
	dir    string
	config string
}

func newProject(t *testing.T, files map[string]string) project {
	t.Helper()

	dir := t.TempDir()
	p := project{dir: dir, config: filepath.Join(dir, config.DefaultFilename)}

	require.NoError(t, config.WriteFile(config.Default(), p.config, false))

	for name, content := range files {
		p.write(t, name, content)
	}

	return p
}

func (p project) path(name string) string {
	return filepath.Join(p.dir, filepath.FromSlash(name))
}

func (p project) write(t *testing.T, name, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(p.path(name)), 0o755))
	require.NoError(t, os.WriteFile(p.path(name), []byte(content), 0o644))
}

func (p project) read(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(p.path(name))
	require.NoError(t, err)

	return string(data)
}

// run executes the root command and returns stdout, stderr and the error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := NewRootCommand()
	root.SetArgs(append([]string{"--log-level", "disabled"}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(t.Context())

	return stdout.String(), stderr.String(), err
}

func TestExpandCommand(t *testing.T) {
	p := newProject(t, map[string]string{
		"src/lib.rs.in": "fn f() {\n    slet!(+a);\n}\n",
	})

	_, stderr, err := run(t, "", "--config", p.config, "expand")
	require.NoError(t, err, stderr)

	assert.Equal(t,
		"// Code generated by spreadgen from src/lib.rs.in. DO NOT EDIT.\n\nfn f() {\n    let a = a.clone();\n}\n",
		p.read(t, "src/lib.rs"))
}

func TestExpandCommand_StdoutAndOutDir(t *testing.T) {
	p := newProject(t, map[string]string{"a.rs.in": "clone!(x);\n"})

	stdout, _, err := run(t, "", "--config", p.config, "expand", "--stdout", p.path("a.rs.in"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "let x = x.clone();")
	assert.NoFileExists(t, p.path("a.rs"))

	_, _, err = run(t, "", "--config", p.config, "expand", "--out-dir", "gen")
	require.NoError(t, err)
	assert.FileExists(t, p.path("gen/a.rs"))
}

func TestExpandCommand_ReportsDiagnostics(t *testing.T) {
	p := newProject(t, map[string]string{
		"bad.rs.in":  "fn f() {\n    slet!();\n}\n",
		"good.rs.in": "clone!(x);\n",
	})

	_, stderr, err := run(t, "", "--config", p.config, "expand")
	require.ErrorIs(t, err, ErrFailed)

	assert.Contains(t, stderr, "error[empty-list]: `slet!` must have at least one field")
	assert.Contains(t, stderr, "--> bad.rs.in:2:")
	assert.NoFileExists(t, p.path("bad.rs"))
	assert.FileExists(t, p.path("good.rs"))
}

func TestExpandCommand_InputOutsideConfigDir(t *testing.T) {
	p := newProject(t, nil)

	_, _, err := run(t, "", "--config", p.config, "expand", filepath.Join(t.TempDir(), "x.rs.in"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is outside the config directory")
}

func TestExpandCommand_InvalidConfig(t *testing.T) {
	p := newProject(t, nil)
	require.NoError(t, os.WriteFile(p.config, []byte("version: \"9\"\n"), 0o644))

	_, stderr, err := run(t, "", "--config", p.config, "expand")
	require.ErrorIs(t, err, ErrFailed)
	assert.Contains(t, stderr, `error[config]: unsupported config version "9"`)
}

func TestCheckCommand(t *testing.T) {
	p := newProject(t, map[string]string{"lib.rs.in": "clone!(a);\n"})

	_, _, err := run(t, "", "--config", p.config, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 outputs are out of date")

	_, _, err = run(t, "", "--config", p.config, "expand")
	require.NoError(t, err)

	_, _, err = run(t, "", "--config", p.config, "check")
	require.NoError(t, err)

	p.write(t, "lib.rs.in", "clone!(b);\n")

	stdout, _, err := run(t, "", "--config", p.config, "check")
	require.Error(t, err)
	assert.Contains(t, stdout, "-let a = a.clone();\n")
	assert.Contains(t, stdout, "+let b = b.clone();\n")
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		name   string
		stdin  string
		args   []string
		stdout string
	}{
		{
			name:   "spread",
			args:   []string{"eval", "spread", "Foo { a, b: 1 }"},
			stdout: "Foo {\n    a: a,\n    b: 1,\n}\n",
		},
		{
			name:   "body from stdin",
			stdin:  "x, mut y",
			args:   []string{"eval", "clone", "-"},
			stdout: "let x = x.clone();\nlet mut y = y.clone();\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := run(t, tt.stdin, tt.args...)
			require.NoError(t, err, stderr)
			assert.Equal(t, tt.stdout, stdout)
		})
	}
}

func TestEvalCommand_Tree(t *testing.T) {
	stdout, _, err := run(t, "", "eval", "spread", "Foo { a }", "--tree")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(*syntax.StructLit)")
	assert.Contains(t, stdout, `Text: (string) (len=3) "Foo"`)
}

func TestEvalCommand_Errors(t *testing.T) {
	_, _, err := run(t, "", "eval", "sprad", "Foo { a }")
	require.Error(t, err)
	assert.Equal(t, `unknown macro "sprad", did you mean "spread"?`, err.Error())

	_, stderr, err := run(t, "", "eval", "spread", "Foo { a, ..rest, }")
	require.ErrorIs(t, err, ErrFailed)
	assert.Contains(t, stderr, "error[final-spread]")
	assert.Contains(t, stderr, "1 | Foo { a, ..rest, }")

	_, stderr, err = run(t, "", "eval", "fn_struct", "A for fn f(a: u8 = 1, b: u8)", "--tree")
	require.ErrorIs(t, err, ErrFailed)
	assert.Contains(t, stderr, "error[mixed-defaults]")
}

func TestEvalCommand_SeveralSuggestions(t *testing.T) {
	_, _, err := run(t, "", "eval", "anet", "a")
	require.Error(t, err)
	assert.Equal(t, `unknown macro "anet", did you mean "anon" or "slet"?`, err.Error())
}

func TestEvalCommand_NestedErrorPointsIntoExpansion(t *testing.T) {
	_, stderr, err := run(t, "", "eval", "spread", "Foo { a: spread!(Bar { b, b }) }")
	require.ErrorIs(t, err, ErrFailed)

	assert.Contains(t, stderr, "error[duplicate-field]")
	assert.Contains(t, stderr, "--> expansion of <eval>:2:")
	assert.Contains(t, stderr, "2 |     a: spread!(Bar { b, b }),")
	assert.NotContains(t, stderr, "| Foo { a: spread!")
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")

	_, _, err := run(t, "", "--config", path, "init")
	require.NoError(t, err)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Inputs, cfg.Inputs)

	_, _, err = run(t, "", "--config", path, "init")
	require.Error(t, err)

	_, _, err = run(t, "", "--config", path, "init", "--force")
	require.NoError(t, err)
}
