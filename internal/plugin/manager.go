package plugin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/dshills/switchboard/internal/event"
	"github.com/dshills/switchboard/internal/event/topic"
	"github.com/dshills/switchboard/internal/plugin/api"
	plua "github.com/dshills/switchboard/internal/plugin/lua"
)

// Registry is the registry surface the manager needs.
// *registry.Registry satisfies it.
type Registry interface {
	api.Provider
	UnregisterAllFromOwner(owner string) int
}

// Topics published by the manager.
const (
	TopicLoaded   topic.Topic = "plugin.loaded"
	TopicUnloaded topic.Topic = "plugin.unloaded"
)

// Loaded is published after an extension's entry file ran successfully.
type Loaded struct {
	Name    string
	Version string
}

// Unloaded is published after an extension was unloaded.
type Unloaded struct {
	Name string

	// Removed is the number of controls removed with it.
	Removed int
}

func (Loaded) Topic() topic.Topic   { return TopicLoaded }
func (Unloaded) Topic() topic.Topic { return TopicUnloaded }

// Info describes a discovered extension.
type Info struct {
	Name        string
	Version     string
	DisplayName string
	Loaded      bool

	// Buttons is the number of controls the extension currently owns.
	Buttons int
}

// loaded is one running extension.
type loaded struct {
	manifest *Manifest
	state    *plua.State
}

// Manager discovers, loads and unloads extensions from one directory.
type Manager struct {
	mu      sync.Mutex
	dir     string
	reg     Registry
	plugins map[string]*loaded
	closed  bool

	logger  hclog.Logger
	bus     event.Bus
	timeout time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Each extension logs through a sub-logger
// named after it.
func WithLogger(l hclog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithBus publishes Loaded and Unloaded events on b.
func WithBus(b event.Bus) Option {
	return func(m *Manager) {
		m.bus = b
	}
}

// WithExecutionTimeout limits each Lua call.
func WithExecutionTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.timeout = d
	}
}

// NewManager creates a manager for the extensions under dir.
func NewManager(dir string, reg Registry, opts ...Option) *Manager {
	m := &Manager{
		dir:     dir,
		reg:     reg,
		plugins: make(map[string]*loaded),
		logger:  hclog.NewNullLogger(),
		timeout: plua.DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the plugin root directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Discover returns the valid manifests under the plugin root, sorted by
// name. A missing root yields no manifests. Invalid extensions are skipped
// and reported in the joined error.
func (m *Manager) Discover() ([]*Manifest, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read plugin dir: %w", err)
	}

	var (
		manifests []*Manifest
		errs      []error
	)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(m.dir, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err != nil {
			continue
		}
		manifest, err := m.manifest(entry.Name())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		manifests = append(manifests, manifest)
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].Name < manifests[j].Name
	})
	return manifests, errors.Join(errs...)
}

// manifest loads the manifest of the extension in directory name.
func (m *Manager) manifest(name string) (*Manifest, error) {
	dir := filepath.Join(m.dir, name)
	manifest, err := LoadManifest(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Plugin: name, Err: ErrNotFound}
		}
		return nil, &LoadError{Plugin: name, Err: err}
	}
	if manifest.Name != name {
		return nil, &LoadError{
			Plugin: name,
			Err:    fmt.Errorf("manifest name %q does not match directory", manifest.Name),
		}
	}
	return manifest, nil
}

// Load runs an extension's entry file in a fresh Lua state. If the entry
// file fails, any controls it registered before failing are removed.
func (m *Manager) Load(name string) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}
	if _, ok := m.plugins[name]; ok {
		m.mu.Unlock()
		return &LoadError{Plugin: name, Err: ErrAlreadyLoaded}
	}
	m.mu.Unlock()

	manifest, err := m.manifest(name)
	if err != nil {
		return err
	}

	logger := m.logger.Named(name)
	state := plua.NewState(
		plua.WithExecutionTimeout(m.timeout),
		plua.WithLogger(logger),
	)
	api.Install(state.L,
		api.NewButtonModule(m.reg, state, name, logger),
		api.NewLogModule(logger),
	)

	// The entry file runs unlocked: it calls into the registry, whose
	// observers may call back into the manager.
	if err := state.DoFile(manifest.MainPath()); err != nil {
		m.reg.UnregisterAllFromOwner(name)
		state.Close()
		return &LoadError{Plugin: name, Err: err}
	}

	m.mu.Lock()
	if _, ok := m.plugins[name]; ok || m.closed {
		m.mu.Unlock()
		state.Close()
		if ok {
			return &LoadError{Plugin: name, Err: ErrAlreadyLoaded}
		}
		return ErrManagerClosed
	}
	m.plugins[name] = &loaded{manifest: manifest, state: state}
	m.mu.Unlock()

	m.logger.Info("plugin loaded", "plugin", name, "version", manifest.Version)
	m.publish(Loaded{Name: name, Version: manifest.Version})
	return nil
}

// Unload removes an extension's controls and closes its Lua state.
func (m *Manager) Unload(name string) error {
	m.mu.Lock()
	p, ok := m.plugins[name]
	if ok {
		delete(m.plugins, name)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("plugin %q: %w", name, ErrNotLoaded)
	}

	removed := m.reg.UnregisterAllFromOwner(name)
	p.state.Close()

	m.logger.Info("plugin unloaded", "plugin", name, "buttons_removed", removed)
	m.publish(Unloaded{Name: name, Removed: removed})
	return nil
}

// Reload unloads an extension if it is loaded and loads it again.
// An extension whose directory was removed stays unloaded.
func (m *Manager) Reload(name string) error {
	if err := m.Unload(name); err != nil && !errors.Is(err, ErrNotLoaded) {
		return err
	}
	return m.Load(name)
}

// LoadAll loads every discovered extension that is not loaded yet.
func (m *Manager) LoadAll() error {
	manifests, err := m.Discover()
	errs := []error{err}
	for _, manifest := range manifests {
		if m.IsLoaded(manifest.Name) {
			continue
		}
		errs = append(errs, m.Load(manifest.Name))
	}
	return errors.Join(errs...)
}

// IsLoaded reports whether name is loaded.
func (m *Manager) IsLoaded(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.plugins[name]
	return ok
}

// Loaded returns the names of loaded extensions, sorted.
func (m *Manager) Loaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List describes every discovered or loaded extension, sorted by name.
func (m *Manager) List() []Info {
	manifests, err := m.Discover()
	if err != nil {
		m.logger.Warn("plugin discovery reported errors", "error", err)
	}

	byName := make(map[string]*Manifest, len(manifests))
	for _, manifest := range manifests {
		byName[manifest.Name] = manifest
	}

	m.mu.Lock()
	loadedNames := make(map[string]bool, len(m.plugins))
	for name, p := range m.plugins {
		loadedNames[name] = true
		byName[name] = p.manifest
	}
	m.mu.Unlock()

	infos := make([]Info, 0, len(byName))
	for name, manifest := range byName {
		infos = append(infos, Info{
			Name:        name,
			Version:     manifest.Version,
			DisplayName: manifest.DisplayName,
			Loaded:      loadedNames[name],
			Buttons:     len(m.reg.GetByOwner(name)),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Close unloads every extension. The manager cannot be used afterwards.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	var errs []error
	for _, name := range m.Loaded() {
		errs = append(errs, m.Unload(name))
	}
	return errors.Join(errs...)
}

func (m *Manager) publish(ev event.Event) {
	if m.bus == nil {
		return
	}
	if err := m.bus.Publish(ev); err != nil {
		m.logger.Error("event publish failed", "topic", ev.Topic().String(), "error", err)
	}
}
