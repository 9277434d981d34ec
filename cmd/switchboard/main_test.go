package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlugin(t *testing.T, root, name, code string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plugin.yaml"),
		[]byte("name: "+name+"\nversion: 0.3.0\ndisplayName: "+name+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.lua"), []byte(code), 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCommand()
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "sprint", `
ks.button.register{ id = "sprint.toggle", name = "Sprint", mode = "toggle", key = "s",
	keybind = "Shift", on_toggle = function() end }
ks.button.register{ id = "sprint.secret", name = "Secret", on_press = function() end,
	visible = function() return false end }
`)

	out, err := execute(t, "list", "--plugins", dir, "--log-level", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "Plugins (1)")
	assert.Contains(t, out, "sprint")
	assert.Contains(t, out, "sprint.toggle")
	assert.Contains(t, out, "Shift")
	assert.Contains(t, out, "host.menu.close")
	assert.NotContains(t, out, "sprint.secret")

	out, err = execute(t, "list", "--all", "--plugins", dir, "--log-level", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "sprint.secret")
}

func TestConflictsCommand(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "alpha", `ks.button.register{ id = "alpha.jump", name = "Jump", keybind = "Space", on_press = function() end }`)
	writePlugin(t, dir, "beta", `ks.button.register{ id = "beta.jump", name = "Leap", keybind = "space", on_press = function() end }`)

	out, err := execute(t, "conflicts", "--plugins", dir, "--log-level", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "Duplicate keybinds (1)")
	assert.Contains(t, out, "alpha.jump (alpha)")
	assert.Contains(t, out, "beta.jump (beta)")
	assert.Contains(t, out, "cross-owner")

	_, err = execute(t, "conflicts", "--strict", "--plugins", dir, "--log-level", "off")
	assert.ErrorIs(t, err, errConflicts)
}

func TestConflictsCommandClean(t *testing.T) {
	out, err := execute(t, "conflicts", "--strict", "--plugins", t.TempDir(), "--log-level", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "No conflicts.")
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "--plugins", "/opt/switchboard/plugins")
	require.NoError(t, err)
	assert.Contains(t, out, "[dispatch]")
	assert.Contains(t, out, "/opt/switchboard/plugins")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "config", "--log-level", "loud")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "switchboard dev")
}

func TestRunExitCodes(t *testing.T) {
	assert.Equal(t, 0, run([]string{"version"}))
	assert.Equal(t, 1, run([]string{"no-such-command"}))
}
