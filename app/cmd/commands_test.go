package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/featurekit/config"
	"github.com/lexcodex/featurekit/registry"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeWorkspaceFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDemoCommand(t *testing.T) {
	ws := t.TempDir()
	writeWorkspaceFile(t, ws, "sample.txt", "a b c\n")

	out, _, err := runCLI(t, "--workspace", ws, "demo", "--target", "sample.txt", "--count", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "featurekit demo for Web Code Editor")
	assert.Contains(t, out, "Editor: Web Code Editor v1.0.0")
	assert.Contains(t, out, "  6. Dark theme interface\n")
	assert.Contains(t, out, "Fibonacci sequence (first 5 numbers):\n[0, 1, 1, 2, 3]\n")
	assert.Contains(t, out, "File Analysis for sample.txt:")
	assert.Contains(t, out, "  Lines: 1\n")
	assert.Contains(t, out, "  Words: 3\n")
	assert.Contains(t, out, "  Characters: 6\n")
	snapshot := filepath.Join(ws, "config.json")
	assert.Contains(t, out, "Configuration saved to "+snapshot)

	snap, err := registry.LoadSnapshot(snapshot)
	require.NoError(t, err)
	assert.Equal(t, registry.DefaultFeatures, snap.Features)
}

func TestDemoMissingTargetIsNotAnError(t *testing.T) {
	ws := t.TempDir()
	out, _, err := runCLI(t, "--workspace", ws, "demo", "--target", "absent.py")
	require.NoError(t, err)
	assert.Contains(t, out, "No analysis available for absent.py")
	assert.Contains(t, out, "[0, 1, 1, 2, 3, 5, 8, 13, 21, 34]")
}

func TestDemoReportsSaveFailure(t *testing.T) {
	ws := t.TempDir()
	out, _, err := runCLI(t, "--workspace", ws, "demo", "--output", filepath.Join(ws, "no", "such", "dir.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Error saving configuration to")
}

func TestFeaturesAddPersistsAndDeduplicates(t *testing.T) {
	ws := t.TempDir()

	out, _, err := runCLI(t, "--workspace", ws, "features", "add", "X", "X")
	require.NoError(t, err)
	assert.Contains(t, out, "Added feature: X\n")
	assert.Contains(t, out, "Feature already exists: X\n")

	out, _, err = runCLI(t, "--workspace", ws, "features", "add", "X")
	require.NoError(t, err)
	assert.Contains(t, out, "Feature already exists: X\n")

	out, _, err = runCLI(t, "--workspace", ws, "features", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "1. Code editing with syntax highlighting", lines[0])
	assert.Equal(t, "7. X", lines[6])
}

func TestFeaturesAddWithoutSave(t *testing.T) {
	ws := t.TempDir()
	_, _, err := runCLI(t, "--workspace", ws, "features", "add", "--save=false", "Ephemeral")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(ws, "config.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestInfoUsesConfig(t *testing.T) {
	ws := t.TempDir()
	writeWorkspaceFile(t, ws, "featurekit_cfg/config.yaml", `
registry:
  name: Docs Portal
  version: 2.1.0
  extra_features:
    - Search
`)
	out, _, err := runCLI(t, "--workspace", ws, "info", "--json")
	require.NoError(t, err)

	var info registry.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "Docs Portal", info.Name)
	assert.Equal(t, "2.1.0", info.Version)
	assert.Len(t, info.Features, 7)
	assert.Equal(t, "Search", info.Features[6])
	assert.NotEmpty(t, info.Platform)
	assert.NotEmpty(t, info.CreatedAt)
}

func TestFibCommand(t *testing.T) {
	out, _, err := runCLI(t, "--workspace", t.TempDir(), "fib", "5")
	require.NoError(t, err)
	assert.Equal(t, "[0, 1, 1, 2, 3]\n", out)

	out, _, err = runCLI(t, "--workspace", t.TempDir(), "fib", "0")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)

	_, _, err = runCLI(t, "--workspace", t.TempDir(), "fib", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--big")

	out, _, err = runCLI(t, "--workspace", t.TempDir(), "fib", "100", "--big")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "218922995834555169026]"))

	_, _, err = runCLI(t, "--workspace", t.TempDir(), "fib", "ten")
	require.Error(t, err)
}

func TestAnalyzeJSON(t *testing.T) {
	ws := t.TempDir()
	writeWorkspaceFile(t, ws, "a.txt", "a b c\n")
	writeWorkspaceFile(t, ws, "empty.txt", "")

	out, _, err := runCLI(t, "--workspace", ws, "analyze", "-f", "json", "a.txt", "empty.txt", "gone.txt")
	require.NoError(t, err)

	var decoded analyzeReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Files, 2)
	assert.Equal(t, 3, decoded.Files[0].WordCount)
	assert.Zero(t, decoded.Files[1].SizeBytes)
	assert.Equal(t, []string{"gone.txt"}, decoded.Missing)
	assert.Equal(t, 2, decoded.Totals.Files)
	assert.Equal(t, 1, decoded.Totals.Lines)
}

func TestAnalyzeRecursiveText(t *testing.T) {
	ws := t.TempDir()
	writeWorkspaceFile(t, ws, "docs/one.md", "# One\n")
	writeWorkspaceFile(t, ws, "docs/deep/two.md", "# Two\n\nbody\n")
	writeWorkspaceFile(t, ws, "docs/skip.go", "package skip\n")

	out, _, err := runCLI(t, "--workspace", ws, "analyze", "-r", "--pattern", "*.md", "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "File Analysis for one.md:")
	assert.Contains(t, out, "File Analysis for two.md:")
	assert.NotContains(t, out, "skip.go")
	assert.Contains(t, out, "Totals (2 files):")
}

func TestRelativeWorkspace(t *testing.T) {
	testChdir(t, t.TempDir())
	writeWorkspaceFile(t, "ws", "sub/a.txt", "alpha beta\n")

	out, _, err := runCLI(t, "--workspace", "ws", "analyze", "-r", "sub", "--format", "json")
	require.NoError(t, err)
	var decoded analyzeReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Files, 1)
	assert.Equal(t, "a.txt", decoded.Files[0].Filename)
	assert.Equal(t, 2, decoded.Files[0].WordCount)

	_, _, err = runCLI(t, "--workspace", "ws", "config", "init")
	require.NoError(t, err)
	out, _, err = runCLI(t, "--workspace", "ws", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "File Analysis for config.yaml:")
	assert.NotContains(t, out, "No analysis available")
}

func TestDemoHonoursZeroLength(t *testing.T) {
	ws := t.TempDir()
	writeWorkspaceFile(t, ws, "featurekit_cfg/config.yaml", "sequence:\n  length: 0\n")

	out, _, err := runCLI(t, "--workspace", ws, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "Fibonacci sequence (first 0 numbers):\n[]\n")
}

func TestAnalyzeYAMLAndBadFormat(t *testing.T) {
	ws := t.TempDir()
	writeWorkspaceFile(t, ws, "a.txt", "hello\n")

	out, _, err := runCLI(t, "--workspace", ws, "analyze", "--format", "yaml", "a.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "filename: a.txt")
	assert.Contains(t, out, "words: 1")

	_, _, err = runCLI(t, "--workspace", ws, "analyze", "--format", "xml", "a.txt")
	require.Error(t, err)
}

func TestSnapshotSaveAndShow(t *testing.T) {
	ws := t.TempDir()
	_, _, err := runCLI(t, "--workspace", ws, "features", "add", "Éditeur ✓")
	require.NoError(t, err)

	out, _, err := runCLI(t, "--workspace", ws, "snapshot", "save", "-o", "copy.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration saved to "+filepath.Join(ws, "copy.json"))

	out, _, err = runCLI(t, "--workspace", ws, "snapshot", "show", "copy.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Web Code Editor v1.0.0")
	assert.Contains(t, out, "7. Éditeur ✓")

	_, _, err = runCLI(t, "--workspace", ws, "snapshot", "save", "-o", filepath.Join(ws, "missing", "x.json"))
	require.Error(t, err)

	_, _, err = runCLI(t, "--workspace", ws, "snapshot", "show", "nothing.json")
	require.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	ws := t.TempDir()
	out, _, err := runCLI(t, "--workspace", ws, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, config.DefaultPath(ws))

	_, _, err = runCLI(t, "--workspace", ws, "config", "init")
	require.Error(t, err)

	_, _, err = runCLI(t, "--workspace", ws, "config", "set", "registry.name", "Renamed")
	require.NoError(t, err)

	out, _, err = runCLI(t, "--workspace", ws, "config", "get", "registry.name")
	require.NoError(t, err)
	assert.Equal(t, "Renamed\n", out)

	_, _, err = runCLI(t, "--workspace", ws, "config", "get", "registry.missing")
	require.Error(t, err)

	out, _, err = runCLI(t, "--workspace", ws, "demo", "--count", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Editor: Renamed v1.0.0")
	assert.Contains(t, out, "File Analysis for config.yaml:")
}

func TestEventsFileAndLogging(t *testing.T) {
	ws := t.TempDir()
	writeWorkspaceFile(t, ws, "featurekit_cfg/config.yaml", `
logging:
  events_file: events.ndjson
`)
	_, errOut, err := runCLI(t, "--workspace", ws, "--log-level", "info", "features", "add", "Y")
	require.NoError(t, err)
	assert.Contains(t, errOut, "added feature")

	data, err := os.ReadFile(filepath.Join(ws, "events.ndjson"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"feature_added"`)
	assert.Contains(t, string(data), `"type":"snapshot_saved"`)

	writeWorkspaceFile(t, ws, "bad.txt", string([]byte{0xff, 0xfe}))
	_, errOut, err = runCLI(t, "--workspace", ws, "analyze", "bad.txt")
	require.NoError(t, err)
	assert.Contains(t, errOut, "error analyzing file")
}
