package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/switchboard/internal/backend"
)

// Run initializes the backend, loads extensions and drives frames until
// ctx is done, the backend closes or the user quits.
func (c *Context) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer c.running.Store(false)

	if c.backend == nil {
		return errors.New("host has no backend")
	}
	if err := c.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	c.Layout.SetScreen(c.backend.Size())

	if err := c.Plugins.LoadAll(); err != nil {
		c.logger.Warn("some plugins failed to load", "error", err)
	}

	events := make(chan backend.Event, 64)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.pollEvents(events, done)
	}()
	defer func() {
		close(done)
		c.backend.Shutdown()
		wg.Wait()
	}()

	fps := c.cfg.Host.FPS
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	c.lastFrame = c.clock.Now()
	c.Frame(0)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if err := c.HandleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}

		case <-ticker.C:
			now := c.clock.Now()
			dt := now.Sub(c.lastFrame)
			c.lastFrame = now
			c.Frame(dt)
		}
	}
}

// pollEvents forwards backend events until the backend closes or done is
// closed.
func (c *Context) pollEvents(events chan<- backend.Event, done <-chan struct{}) {
	for {
		ev := c.backend.PollEvent()
		select {
		case events <- ev:
		case <-done:
			return
		}
		if ev.Type == backend.EventClosed {
			return
		}
	}
}
