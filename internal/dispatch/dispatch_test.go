package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/switchboard/internal/button"
	"github.com/dshills/switchboard/internal/registry"
)

func TestQueueCountdown(t *testing.T) {
	q := NewQueue(3, nil)
	require.True(t, q.Enqueue("mod.a"))

	id, rem, ok := q.Pending()
	assert.True(t, ok)
	assert.Equal(t, "mod.a", id)
	assert.Equal(t, 3, rem)

	for i := 0; i < 2; i++ {
		_, ok := q.Update()
		assert.False(t, ok, "tick %d", i+1)
	}
	id, ok = q.Update()
	assert.True(t, ok)
	assert.Equal(t, "mod.a", id)

	_, ok = q.Update()
	assert.False(t, ok, "queue empties after yielding")
	_, _, ok = q.Pending()
	assert.False(t, ok)
}

func TestQueueClampsTicks(t *testing.T) {
	q := NewQueue(0, nil)
	assert.Equal(t, 1, q.Ticks())
	require.True(t, q.Enqueue("x"))
	id, ok := q.Update()
	assert.True(t, ok)
	assert.Equal(t, "x", id)
}

func TestQueueLastWriterWins(t *testing.T) {
	q := NewQueue(2, nil)
	assert.False(t, q.Enqueue(""))
	require.True(t, q.Enqueue("first"))
	_, ok := q.Update()
	require.False(t, ok)

	require.True(t, q.Enqueue("second"))
	_, rem, _ := q.Pending()
	assert.Equal(t, 2, rem, "enqueue restarts the countdown")

	_, ok = q.Update()
	assert.False(t, ok)
	id, ok := q.Update()
	assert.True(t, ok)
	assert.Equal(t, "second", id)
}

func TestQueueCancelAndReset(t *testing.T) {
	q := NewQueue(2, nil)
	assert.False(t, q.Cancel())

	q.Enqueue("a")
	assert.True(t, q.Cancel())
	for i := 0; i < 3; i++ {
		_, ok := q.Update()
		assert.False(t, ok)
	}

	q.Enqueue("b")
	q.Reset()
	_, ok := q.Update()
	assert.False(t, ok)
	_, ok = q.Update()
	assert.False(t, ok)
}

func TestQueueDeterminism(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ticks := rapid.IntRange(1, 10).Draw(t, "ticks")
		q := NewQueue(ticks, nil)
		q.Enqueue("id")

		cancelAt := rapid.IntRange(-1, ticks-1).Draw(t, "cancelAt")
		for i := 0; i < ticks-1; i++ {
			if i == cancelAt {
				q.Cancel()
			}
			if _, ok := q.Update(); ok {
				t.Fatalf("yielded early at call %d", i+1)
			}
		}
		if cancelAt == ticks-1 {
			q.Cancel()
		}

		id, ok := q.Update()
		if cancelAt >= 0 {
			if ok {
				t.Fatalf("yielded %q after cancel", id)
			}
			return
		}
		if !ok || id != "id" {
			t.Fatalf("call %d = (%q, %v), want id", ticks, id, ok)
		}
	})
}

type fakeTarget struct {
	calls  []string
	result bool
}

func (f *fakeTarget) Trigger(id string, programmatic bool) bool {
	f.calls = append(f.calls, id)
	return f.result
}

func TestRunnerGuard(t *testing.T) {
	target := &fakeTarget{result: true}
	open := true
	r := NewRunner(NewQueue(2, nil), target, func(string) bool { return open })

	r.Queue().Enqueue("a")
	_, ran := r.Tick()
	assert.False(t, ran)
	id, ran := r.Tick()
	assert.True(t, ran)
	assert.Equal(t, "a", id)

	r.Queue().Enqueue("b")
	r.Tick()
	open = false
	id, ran = r.Tick()
	assert.Equal(t, "b", id)
	assert.False(t, ran)

	assert.Equal(t, []string{"a"}, target.calls)
	assert.Equal(t, Stats{Dispatched: 1, Succeeded: 1, Discarded: 1}, r.Stats())
}

func TestRunnerTriggersRegistry(t *testing.T) {
	reg := registry.New()
	fired := 0
	require.True(t, reg.Register(button.NewBuilder("mod.a", "ownerA").
		OnPress(func() error { fired++; return nil }).
		Build()))

	r := NewRunner(NewQueue(DefaultTicks, nil), reg, nil)
	r.Queue().Enqueue("mod.a")
	r.Queue().Enqueue("missing")
	r.Queue().Enqueue("mod.a")

	r.Tick()
	assert.Equal(t, 0, fired)
	id, ran := r.Tick()
	assert.Equal(t, "mod.a", id)
	assert.True(t, ran)
	assert.Equal(t, 1, fired)
}
