package host

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/dshills/switchboard/internal/backend"
	"github.com/dshills/switchboard/internal/config"
	"github.com/dshills/switchboard/internal/conflict"
	"github.com/dshills/switchboard/internal/dispatch"
	"github.com/dshills/switchboard/internal/event"
	"github.com/dshills/switchboard/internal/gesture"
	"github.com/dshills/switchboard/internal/interaction"
	"github.com/dshills/switchboard/internal/overlay"
	"github.com/dshills/switchboard/internal/plugin"
	"github.com/dshills/switchboard/internal/registry"
)

// Context is one running switchboard host.
type Context struct {
	Registry  *registry.Registry
	Queue     *dispatch.Queue
	Runner    *dispatch.Runner
	Gesture   *gesture.Controller
	Layout    *overlay.Layout
	Conflicts *conflict.Resolver
	Plugins   *plugin.Manager

	cfg     config.Config
	logger  hclog.Logger
	backend backend.Backend
	clock   interaction.Clock
	theme   overlay.Theme
	watcher *plugin.Watcher

	menuOpen    atomic.Bool
	panelLocked atomic.Bool
	running     atomic.Bool

	reloadRequested atomic.Bool

	// Input state, touched only by the frame goroutine.
	pointerDown bool
	pointerPos  gesture.Position
	holding     string
	lastFrame   time.Time
}

// Option configures a Context.
type Option func(*Context)

// WithClock sets the clock shared by the registry and the gesture
// controller.
func WithClock(c interaction.Clock) Option {
	return func(ctx *Context) {
		if c != nil {
			ctx.clock = c
		}
	}
}

// WithTheme sets the panel theme.
func WithTheme(t overlay.Theme) Option {
	return func(ctx *Context) {
		ctx.theme = t
	}
}

// New builds a host from cfg. The backend is initialized by Run, not here.
func New(cfg config.Config, logger hclog.Logger, b backend.Backend, opts ...Option) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	c := &Context{
		cfg:     cfg,
		logger:  logger,
		backend: b,
		clock:   interaction.SystemClock{},
		theme:   overlay.DefaultTheme(),
	}
	for _, opt := range opts {
		opt(c)
	}

	bus := event.NewBus(event.WithPanicHandler(func(ev event.Event, sub event.Subscription, recovered any) {
		logger.Error("event handler panicked", "topic", ev.Topic().String(), "subscription", sub.ID, "panic", recovered)
	}))

	c.Registry = registry.New(
		registry.WithClock(c.clock),
		registry.WithLogger(logger.Named("registry")),
		registry.WithBus(bus),
	)
	c.Queue = dispatch.NewQueue(cfg.Dispatch.DelayTicks, logger.Named("dispatch"))
	c.Runner = dispatch.NewRunner(c.Queue, c.Registry, c.allowDeferred)

	c.Layout = overlay.NewLayout(gesture.Position{X: cfg.Overlay.X, Y: cfg.Overlay.Y}, cfg.Overlay.Width)
	if b != nil {
		c.Layout.SetScreen(b.Size())
	}
	c.Gesture = gesture.NewController(gesture.Config{
		DragThresholdTime:     time.Duration(cfg.Gesture.DragThresholdMS) * time.Millisecond,
		DragThresholdDistance: cfg.Gesture.DragThresholdDistance,
	}, gesture.HitTestFunc(c.hitTest))

	c.Conflicts = conflict.New(c.Registry)
	c.Plugins = plugin.NewManager(cfg.Plugins.Dir, c.Registry,
		plugin.WithLogger(logger.Named("plugin")),
		plugin.WithBus(bus),
	)

	if _, err := bus.SubscribeFunc(plugin.TopicLoaded, func(event.Event) {
		c.Conflicts.Report().Log(logger.Named("conflict"))
	}); err != nil {
		return nil, err
	}

	if cfg.Plugins.Watch {
		w, err := plugin.NewWatcher(cfg.Plugins.Dir, 0, logger.Named("watcher"))
		if err != nil {
			logger.Warn("plugin watching disabled", "dir", cfg.Plugins.Dir, "error", err)
		} else {
			c.watcher = w
		}
	}

	c.menuOpen.Store(cfg.Host.MenuOpenOnStart)
	if err := c.registerBuiltins(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Logger returns the host logger.
func (c *Context) Logger() hclog.Logger {
	return c.logger
}

// MenuOpen reports whether the panel is shown.
func (c *Context) MenuOpen() bool {
	return c.menuOpen.Load()
}

// SetMenuOpen shows or hides the panel. Closing it abandons any press in
// progress and any deferred press.
func (c *Context) SetMenuOpen(open bool) {
	if c.menuOpen.Swap(open) == open {
		return
	}
	if !open {
		c.abandonInput()
	}
	c.logger.Debug("menu toggled", "open", open)
}

// abandonInput cancels the gesture, the pending deferred press and any
// pointer-held control.
func (c *Context) abandonInput() {
	c.Gesture.Invalidate()
	c.Queue.Cancel()
	c.releaseHolding()
}

// allowDeferred is the runner guard: a deferred press runs only while the
// panel that produced it is still open.
func (c *Context) allowDeferred(string) bool {
	return c.menuOpen.Load()
}

// hitTest limits the gesture controller to the visible panel.
func (c *Context) hitTest(pos gesture.Position) (string, bool) {
	if !c.menuOpen.Load() {
		return "", false
	}
	return c.Layout.HitTest(pos)
}

// Close releases held controls, unloads extensions and stops the watcher.
func (c *Context) Close() error {
	c.Registry.ReleaseAllHeld()

	var errs []error
	if c.watcher != nil {
		errs = append(errs, c.watcher.Close())
		c.watcher = nil
	}
	errs = append(errs, c.Plugins.Close())
	return errors.Join(errs...)
}
