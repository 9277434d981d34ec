package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want hclog.Level
		ok   bool
	}{
		{"", hclog.Info, true},
		{"trace", hclog.Trace, true},
		{"DEBUG", hclog.Debug, true},
		{" warn ", hclog.Warn, true},
		{"error", hclog.Error, true},
		{"off", hclog.Off, true},
		{"loud", hclog.NoLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Name: "switchboard", Level: "warn", Output: &buf})

	logger.Info("hidden")
	logger.Named("registry").Warn("shown", "id", "mod.a")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "switchboard.registry: shown")
	assert.Contains(t, out, "id=mod.a")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "bogus", JSON: true, Output: &buf})
	logger.Debug("dropped")
	logger.Info("kept", "owner", "ownerA")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "kept", rec["@message"])
	assert.Equal(t, "ownerA", rec["owner"])
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("nothing", "k", "v") })
}
