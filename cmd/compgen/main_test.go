package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "compgen version 0.1.0\n", out)
}

func TestRun_Usage(t *testing.T) {
	code, _, errOut := runCLI(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Usage: compgen <command>")

	code, _, errOut = runCLI(t, "frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Unknown command: frobnicate")

	code, _, errOut = runCLI(t, "discover", "-nope")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "flag provided but not defined")
}

func TestDefaultRuntime(t *testing.T) {
	t.Setenv("COMPGEN_RUNTIME", "")
	assert.Equal(t, "github.com/njreid/compgen/render", defaultRuntime())

	t.Setenv("COMPGEN_RUNTIME", " example.com/app/render ")
	assert.Equal(t, "example.com/app/render", defaultRuntime())
}

func TestRun_Discover(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping package loading in short mode")
	}

	code, out, errOut := runCLI(t, "discover",
		"-dir", "../../pkg/catalog/gotypes/testdata/app",
		"-runtime", "example.com/app/render",
		"-compact", "./...")
	require.Equal(t, 0, code, errOut)

	var ds []struct {
		Kind             string `json:"kind"`
		Name             string `json:"name"`
		TagMatchingRules []struct {
			TagName string `json:"tagName"`
		} `json:"tagMatchingRules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ds))
	require.NotEmpty(t, ds)
	assert.Equal(t, "Counter", ds[0].TagMatchingRules[0].TagName)
	assert.Equal(t, "Ref", ds[len(ds)-1].Kind)
	assert.NotContains(t, errOut, "feature unavailable")
}

func TestRun_DiscoverWrongRuntime(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping package loading in short mode")
	}

	code, out, errOut := runCLI(t, "discover",
		"-dir", "../../pkg/catalog/gotypes/testdata/app",
		"-runtime", "example.com/missing/render",
		"-compact")
	require.Equal(t, 0, code, errOut)
	var ds []struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ds))
	for _, d := range ds {
		assert.Equal(t, "EventHandler", d.Kind)
	}
	assert.Contains(t, errOut, "feature=components")
}

func TestCLI_Binary(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	tmpDir := t.TempDir()
	binPath := filepath.Join(tmpDir, "compgen")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Stderr = os.Stderr
	require.NoError(t, cmd.Run())

	cmd = exec.Command(binPath, "version")
	var out bytes.Buffer
	cmd.Stdout = &out
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "compgen version 0.1.0")
}
