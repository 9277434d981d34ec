package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/dshills/switchboard/internal/config"
	"github.com/dshills/switchboard/internal/host"
	"github.com/dshills/switchboard/internal/logging"
)

// settings are the persistent flags shared by every subcommand.
type settings struct {
	configPath string
	logLevel   string
	pluginsDir string
}

func newRootCommand() *cobra.Command {
	s := &settings{}

	root := &cobra.Command{
		Use:   "switchboard",
		Short: "Virtual control panel for terminal extensions",
		Long: `switchboard loads Lua extensions that register virtual controls
(momentary, toggle and hold buttons) and hosts them in a draggable
terminal panel.

Extensions live in the plugins directory, one directory each with a
plugin.yaml manifest and an init.lua entry file.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&s.configPath, "config", "c", "switchboard.toml", "path to the configuration file")
	flags.StringVar(&s.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
	flags.StringVar(&s.pluginsDir, "plugins", "", "plugins directory")

	root.AddCommand(
		newRunCommand(s),
		newListCommand(s),
		newConflictsCommand(s),
		newConfigCommand(s),
		newVersionCommand(),
	)
	return root
}

// load reads the configuration and applies flag overrides.
func (s *settings) load() (config.Config, error) {
	cfg, err := config.Load(s.configPath, config.EnvPrefix)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if s.logLevel != "" {
		cfg.Log.Level = s.logLevel
	}
	if s.pluginsDir != "" {
		cfg.Plugins.Dir = s.pluginsDir
	}
	return cfg, cfg.Validate()
}

// newLogger builds the root logger. Without a log file, output goes to w.
func newLogger(cfg config.Config, w io.Writer) (hclog.Logger, func() error, error) {
	closer := func() error { return nil }
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f.Close
	}
	logger := logging.New(logging.Options{
		Name:   "switchboard",
		Level:  cfg.Log.Level,
		JSON:   cfg.Log.Format == "json",
		Output: w,
	})
	return logger, closer, nil
}

// headless builds a host without a terminal and loads every extension.
func headless(cfg config.Config, logger hclog.Logger) (*host.Context, error) {
	cfg.Plugins.Watch = false
	c, err := host.New(cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	if err := c.Plugins.LoadAll(); err != nil {
		logger.Warn("some plugins failed to load", "error", err)
	}
	return c, nil
}
