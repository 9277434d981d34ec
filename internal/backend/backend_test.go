package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/switchboard/internal/button"
)

func TestNullBackendDrawText(t *testing.T) {
	b := NewNullBackend(10, 2)
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	n := DrawText(b, 1, 0, "Open Menu", DefaultStyle(), 6)
	if n != 6 {
		t.Errorf("DrawText used %d cells, want 6", n)
	}
	if got := b.Row(0); got != " Open M" {
		t.Errorf("Row(0) = %q, want %q", got, " Open M")
	}

	b.Clear()
	if got := b.Row(0); got != "" {
		t.Errorf("Row(0) after Clear = %q", got)
	}
}

func TestNullBackendWideRunes(t *testing.T) {
	b := NewNullBackend(10, 1)
	n := DrawText(b, 0, 0, "日本", DefaultStyle(), 0)
	if n != 4 {
		t.Errorf("DrawText used %d cells, want 4", n)
	}
	if got := b.Row(0); got != "日本" {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.PostEvent(Event{Type: EventKey, Key: KeyEscape})
	b.Resize(100, 30)

	if ev := b.PollEvent(); ev.Type != EventKey || ev.Key != KeyEscape {
		t.Errorf("first event = %+v, want escape key", ev)
	}
	if ev := b.PollEvent(); ev.Type != EventResize || ev.Width != 100 || ev.Height != 30 {
		t.Errorf("second event = %+v, want resize 100x30", ev)
	}

	b.Shutdown()
	b.Shutdown()
	b.PostEvent(Event{Type: EventKey})
	if ev := b.PollEvent(); ev.Type != EventClosed {
		t.Errorf("event after Shutdown = %+v, want closed", ev)
	}
}

func TestFill(t *testing.T) {
	b := NewNullBackend(5, 3)
	Fill(b, 1, 1, 3, 1, Cell{Rune: '#'})
	if got := b.Row(1); got != " ###" {
		t.Errorf("Row(1) = %q", got)
	}
	if got := b.Row(0); got != "" {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestConvertEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone))
	if ev.Type != EventMouse || ev.MouseX != 3 || ev.MouseY != 4 || ev.MouseButton != MouseLeft {
		t.Errorf("mouse = %+v", ev)
	}

	ev = convertEvent(tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone))
	if ev.MouseButton != MouseNone {
		t.Errorf("release button = %v, want none", ev.MouseButton)
	}

	ev = convertEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if ev.Type != EventKey || ev.Key != KeyEscape {
		t.Errorf("key = %+v", ev)
	}

	ev = convertEvent(tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModAlt))
	if ev.Key != KeyRune || ev.Rune != 'm' || !ev.Mod.Has(ModAlt) {
		t.Errorf("rune key = %+v", ev)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	for _, k := range []Key{KeyEscape, KeyEnter, KeyF5, KeyCtrlQ, KeyBackspace} {
		if got := convertKey(convertToTcellKey(k)); got != k {
			t.Errorf("round trip %v = %v", k, got)
		}
	}
}

func TestTerminalOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Shutdown()

	screen.SetSize(20, 5)
	if w, h := term.Size(); w != 20 || h != 5 {
		t.Fatalf("Size = %dx%d, want 20x5", w, h)
	}

	style := DefaultStyle().WithForeground(button.RGB(255, 0, 0))
	style.Bold = true
	DrawText(term, 0, 0, "hi", style, 0)
	term.Show()

	r, _, got, _ := screen.GetContent(1, 0)
	if r != 'i' {
		t.Errorf("cell (1,0) = %q, want 'i'", r)
	}
	fg, _, attrs := got.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("foreground = %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("bold not applied")
	}
}
