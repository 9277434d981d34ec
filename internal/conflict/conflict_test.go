package conflict

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/switchboard/internal/button"
	"github.com/dshills/switchboard/internal/event"
	"github.com/dshills/switchboard/internal/registry"
)

type staticSource []button.View

func (s staticSource) GetAll() []button.View { return s }

func view(id, owner, name, keybind string) button.View {
	return button.View{ID: id, Owner: owner, Name: name, OriginalKeybind: keybind}
}

func TestDetectDuplicateKeybindDocs(t *testing.T) {
	src := staticSource{
		view("b", "mod2", "Map", " ctrl+M "),
		view("a", "mod1", "Menu", "Ctrl+M"),
		view("c", "mod1", "Chat", ""),
		view("d", "mod3", "Dance", "F5"),
		view("e", "mod3", "Emote", ""),
	}

	groups := New(src).DetectDuplicateKeybindDocs()
	require.Len(t, groups, 1)
	assert.Equal(t, "ctrl+m", groups[0].Key)
	assert.Equal(t, []string{"a", "b"}, groups[0].IDs())
	assert.Equal(t, []string{"mod1", "mod2"}, groups[0].Owners())
	assert.True(t, groups[0].CrossOwner())
}

func TestDetectDuplicateNames(t *testing.T) {
	src := staticSource{
		view("z", "mod1", "Open Menu", ""),
		view("y", "mod1", "open menu", ""),
		view("x", "mod2", "Build", ""),
		view("w", "mod3", "BUILD", ""),
		view("v", "mod3", "Unique", ""),
	}

	groups := New(src).DetectDuplicateNames()
	require.Len(t, groups, 2)
	assert.Equal(t, "build", groups[0].Key)
	assert.Equal(t, []string{"w", "x"}, groups[0].IDs())
	assert.True(t, groups[0].CrossOwner())

	assert.Equal(t, "open menu", groups[1].Key)
	assert.Equal(t, []string{"y", "z"}, groups[1].IDs())
	assert.False(t, groups[1].CrossOwner())
}

func TestReportEmpty(t *testing.T) {
	r := New(staticSource{view("a", "o", "A", "F1"), view("b", "o", "B", "F2")}).Report()
	assert.True(t, r.Empty())
	assert.Equal(t, 0, r.CrossOwner())
}

func TestReportLog(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Debug})

	r := New(staticSource{
		view("a", "mod1", "Menu", "Ctrl+M"),
		view("b", "mod2", "Map", "ctrl+m"),
		view("c", "mod1", "Jump", ""),
		view("d", "mod1", "jump", ""),
	}).Report()
	require.False(t, r.Empty())
	assert.Equal(t, 1, r.CrossOwner())

	r.Log(logger)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[WARN]")
	assert.Contains(t, lines[0], "kind=keybind")
	assert.Contains(t, lines[1], "[DEBUG]")
	assert.Contains(t, lines[1], "kind=name")
}

func TestResolverDoesNotMutateRegistry(t *testing.T) {
	reg := registry.New()
	var events int
	_, err := reg.Bus().SubscribeFunc("**", func(event.Event) { events++ })
	require.NoError(t, err)
	noop := func() error { return nil }
	require.True(t, reg.Register(button.NewBuilder("a", "mod1").Name("Menu").OriginalKeybind("Ctrl+M").OnPress(noop).Build()))
	require.True(t, reg.Register(button.NewBuilder("b", "mod2").Name("Menu").OriginalKeybind("Ctrl+M").OnPress(noop).Build()))
	before := events

	r := New(reg).Report()
	assert.Len(t, r.Keybinds, 1)
	assert.Len(t, r.Names, 1)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, before, events)
}
