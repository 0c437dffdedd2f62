package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/butterfly"
	"github.com/gogpu/butterfly/meshio"
)

const tetra = `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 3 2
f 1 2 4
f 1 4 3
f 2 3 4
`

func writeTetra(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "tetra.obj")
	require.NoError(t, os.WriteFile(path, []byte(tetra), 0o600))
	return path
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(func() { butterfly.SetLogger(nil) })

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSubdivideCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeTetra(t, dir)
	out := filepath.Join(dir, "fine.ply")
	png := filepath.Join(dir, "fine.png")

	stdout, stderr, err := run(t, "subdivide", in, "-o", out, "--wireframe", png,
		"--width", "64", "--height", "64", "--log-level", "debug")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "-> 10 vertices, 24 edges, 16 faces")
	assert.Contains(t, stderr, "subdivision pass")
	assert.FileExists(t, png)

	m, err := meshio.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 16, m.NumFaces())
}

func TestSubdivideCommandConfig(t *testing.T) {
	dir := t.TempDir()
	in := writeTetra(t, dir)
	out := filepath.Join(dir, "fine.obj")
	cfg := filepath.Join(dir, "butterfly.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("scheme: linear\niterations: 2\ninput: "+in+"\noutput: "+out+"\n"), 0o600))

	stdout, _, err := run(t, "--config", cfg, "subdivide")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "linear:"), stdout)
	assert.Contains(t, stdout, "-> 34 vertices, 96 edges, 64 faces")

	// Flags win over the file.
	stdout, _, err = run(t, "--config", cfg, "subdivide", "--iterations", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "-> 10 vertices, 24 edges, 16 faces")
}

func TestSubdivideCommandErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeTetra(t, dir)
	out := filepath.Join(dir, "fine.obj")

	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"subdivide", "-o", out}},
		{"no output", []string{"subdivide", in}},
		{"bad scheme", []string{"subdivide", in, "-o", out, "--scheme", "loop"}},
		{"bad iterations", []string{"subdivide", in, "-o", out, "-n", "0"}},
		{"bad format", []string{"subdivide", in, "-o", filepath.Join(dir, "fine.off")}},
		{"missing file", []string{"subdivide", filepath.Join(dir, "nope.obj"), "-o", out}},
		{"bad config", []string{"--config", filepath.Join(dir, "nope.yaml"), "subdivide", in, "-o", out}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestInfoCommand(t *testing.T) {
	in := writeTetra(t, t.TempDir())
	stdout, _, err := run(t, "info", in, "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "vertices      4\n")
	assert.Contains(t, stdout, "edges         6\n")
	assert.Contains(t, stdout, "faces         4\n")
	assert.Contains(t, stdout, "boundary      0\n")
	assert.Contains(t, stdout, "euler         2\n")
}
