package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"provision/internal/domain/provisionspec"
	"provision/internal/driver"
	configinfra "provision/internal/infrastructure/config"
	eventsinfra "provision/internal/infrastructure/events"
	logginginfra "provision/internal/infrastructure/logging"
	"provision/internal/ports"
	"provision/internal/tui"
)

type rootFlags struct {
	logLevel  string
	logFormat string
	noTUI     bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "provision <workspace-config-path> <instance-config-dir>",
		Short:         "Provision a fleet of single-board computers over iSCSI/NFS network boot",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(cmd, args[0], args[1], *flags)
		},
	}

	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "Minimum log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "", "Log output format: console or json (default: auto-detected from the terminal)")
	cmd.Flags().BoolVar(&flags.noTUI, "no-tui", false, "Force plain logging even when stdout is a terminal")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runProvision(cmd *cobra.Command, workspacePath, instanceDir string, flags rootFlags) error {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	useTUI := isTerminal && !flags.noTUI

	console := flags.logFormat == "console" || (flags.logFormat == "" && isTerminal && !useTUI)
	if flags.logFormat == "json" {
		console = false
	}

	// The TUI owns the terminal while it runs; plain log lines would corrupt
	// its rendering, so they're discarded rather than interleaved.
	var logWriter io.Writer = os.Stdout
	if useTUI {
		logWriter = io.Discard
	}

	appLogger, err := logginginfra.New(logginginfra.Options{
		Level:     flags.logLevel,
		Console:   console,
		Component: "cli",
		Writer:    logWriter,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	correlationID := logginginfra.GenerateCorrelationID()
	ctx := logginginfra.WithCorrelationID(cmd.Context(), correlationID)

	configLoader := configinfra.NewJSONLoader(appLogger.With("component", "config_loader"))
	eventPublisher := eventsinfra.NewLoggingPublisher(appLogger.With("component", "event_publisher"))

	workspace, err := configLoader.LoadWorkspace(ctx, workspacePath)
	if err != nil {
		return fmt.Errorf("load workspace config: %w", err)
	}

	instances, err := configLoader.LoadInstances(ctx, instanceDir)
	if err != nil {
		return fmt.Errorf("load instance configs: %w", err)
	}

	d := driver.New(appLogger.With("component", "driver"), eventPublisher)

	var results []driver.Result
	if useTUI {
		results, err = runWithTUI(ctx, d, *workspace, instances, eventPublisher)
		if err != nil {
			return err
		}
	} else {
		results = d.Run(ctx, *workspace, instances)
	}

	failed := false
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.InstanceID, r.Err)
			failed = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", r.InstanceID)
		}
	}

	if failed {
		return errors.New("some instances failed to provision")
	}
	return nil
}

// runWithTUI runs the driver on a background goroutine while the terminal is
// owned by the Bubbletea program; the program quits once the driver signals
// completion via DoneMsg.
func runWithTUI(
	ctx context.Context,
	d *driver.Driver,
	workspace provisionspec.WorkspaceSpec,
	instances []*provisionspec.InstanceSpec,
	publisher ports.EventPublisher,
) ([]driver.Result, error) {
	model := tui.NewModel()
	program := tea.NewProgram(model)

	unsubscribe := tui.Subscribe(publisher, program)
	defer unsubscribe()

	var results []driver.Result
	go func() {
		results = d.Run(ctx, workspace, instances)
		program.Send(tui.DoneMsg{})
	}()

	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("run tui: %w", err)
	}

	return results, nil
}
