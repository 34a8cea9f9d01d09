package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/fleetdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fleetdesk/internal/adapters/driving/tui"
	"github.com/custodia-labs/fleetdesk/internal/logger"
)

// errNotTerminal is returned when the console is started without a terminal.
var errNotTerminal = errors.New("the console needs an interactive terminal; use the list commands for scripting")

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive console",
	Long: `Launch the interactive console for browsing users, vehicles and
subscriptions.

Controls:
  ↑/k, ↓/j  Navigate rows
  /         Filter all columns
  f         Filter one column
  s, S      Sort column, sort direction
  space     Show details of the highlighted row
  a         Row actions
  Esc       Back / Cancel
  ?         Help
  ctrl+c    Quit

Logs are written to ~/.fleetdesk/tui.log.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationWatch: "true"},
	RunE:        runTUI,
}

// isTerminal reports whether w is attached to a terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in console: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("console crashed: %v", r)
		}
	}()

	ports := tui.NewPorts(userService, vehicleService, subscriptionService)
	ports.Settings = settingsService
	ports.Changes = changes

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create console: %w", err)
	}

	if !isTerminal(cmd.OutOrStdout()) {
		return errNotTerminal
	}

	// The alt screen owns the terminal, so logs go to a file.
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	previous := logger.SetOutput(logFile)
	defer logger.SetOutput(previous)

	logger.Info("console: starting (live reload: %t)", changes != nil)
	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("console error: %w", err)
	}
	return nil
}

func openLogFile() (*os.File, error) {
	dir := configDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := tea.LogToFile(filepath.Join(dir, "tui.log"), "fleetdesk")
	if err != nil {
		return nil, fmt.Errorf("opening console log: %w", err)
	}
	return f, nil
}
