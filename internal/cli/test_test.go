package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := runCommand(t, "test", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := runCommand(t, "test", "text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandPasses(t *testing.T) {
	out, err := runCommand(t, "test", "text", "testdata/scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ add_and_refs")
	assert.Contains(t, out, "✓ chained_globals")
	assert.Contains(t, out, "Test Summary: 2 passed, 0 failed, 2 total")
}

func TestTestCommandFilter(t *testing.T) {
	out, err := runCommand(t, "test", "json", "testdata/scenarios", "--filter", "chained*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "chained_globals", resp.Data.Scenarios[0].Name)
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, err := runCommand(t, "test", "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

// copyScenario writes a scenario next to an absolute program path so the
// test can change golden files freely.
func copyScenario(t *testing.T, dir string, assertions string) string {
	t.Helper()
	prog, err := filepath.Abs(addAndRefsProgram)
	require.NoError(t, err)
	content := "name: add_and_refs\ndescription: copied\nprogram: " + prog + "\nassertions:\n" + assertions
	path := filepath.Join(dir, "add_and_refs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTestCommandFailingAssertion(t *testing.T) {
	dir := t.TempDir()
	copyScenario(t, dir, "  - type: command_count\n    count: 99\n")

	out, err := runCommand(t, "test", "json", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Failed)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
}

func TestTestCommandGoldenUpdateAndMismatch(t *testing.T) {
	dir := t.TempDir()
	copyScenario(t, dir, "  - type: cardinality\n")
	golden := filepath.Join(dir, "golden", "add_and_refs.golden")

	out, err := runCommand(t, "test", "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "golden updated")

	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Equal(t, addAndRefsLowered, string(data))

	_, err = runCommand(t, "test", "text", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(golden, []byte("(push 1)\n"), 0o644))
	out, err = runCommand(t, "test", "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "output does not match golden file")
}

func TestFindScenarioFilesSkipsGolden(t *testing.T) {
	files, err := findScenarioFiles("testdata/scenarios", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join("testdata", "scenarios", "add_and_refs.yaml"),
		filepath.Join("testdata", "scenarios", "chained_globals.yaml"),
	}, files)

	_, err = findScenarioFiles("testdata/scenarios", "[")
	require.Error(t, err)
}
