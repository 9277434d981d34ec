package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/switchboard/internal/backend"
	"github.com/dshills/switchboard/internal/host"
)

// errConflicts makes conflicts --strict exit non-zero without an error message.
var errConflicts = errors.New("cross-owner conflicts found")

func newRunCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the terminal host",
		Long: `Run opens the terminal panel, loads every extension and keeps
reloading extensions whose files change.

Keys:
  esc      open or close the panel
  ctrl+r   reload extensions
  ctrl+q   quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.load()
			if err != nil {
				return err
			}

			// The terminal owns stdout; logs go to the log file or nowhere.
			logger, closeLog, err := newLogger(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			term, err := backend.NewTerminal()
			if err != nil {
				return fmt.Errorf("create terminal: %w", err)
			}

			c, err := host.New(cfg, logger, term)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.Run(ctx)
		},
	}
}

func newListCommand(s *settings) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load extensions and print their controls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.load()
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			c, err := headless(cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			views := c.Registry.GetVisible()
			if all {
				views = c.Registry.GetAll()
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPlugins(c.Plugins.List()))
			fmt.Fprintln(cmd.OutOrStdout(), renderControls(views))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include hidden controls")
	return cmd
}

func newConflictsCommand(s *settings) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Report controls that share a keybind or a name",
		Long: `Conflicts loads every extension and reports groups of controls that
document the same original keybind or share a display name.

With --strict the command exits with status 1 when a group spans more
than one owner.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.load()
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			c, err := headless(cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			report := c.Conflicts.Report()
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
			if strict && report.CrossOwner() > 0 {
				return errConflicts
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit 1 on cross-owner conflicts")
	return cmd
}

func newConfigCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.load()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "switchboard %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
