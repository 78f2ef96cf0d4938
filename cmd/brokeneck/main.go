package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/brokeneck/brokeneck/cli/internal/api"
	"github.com/brokeneck/brokeneck/cli/internal/cmd"
	"github.com/brokeneck/brokeneck/cli/internal/config"
	"github.com/brokeneck/brokeneck/cli/internal/logging"
	"github.com/brokeneck/brokeneck/cli/internal/session"
	"github.com/brokeneck/brokeneck/cli/internal/ui"
)

func main() {
	if err := newRoot().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "brokeneck",
		Short: "Brokeneck - users and groups administration",
		Long:  "Brokeneck CLI: browse users and groups, manage memberships, edit and delete records.",
		RunE: func(c *cobra.Command, _ []string) error {
			return runTUI(c.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.UsersCmd())
	root.AddCommand(cmd.GroupsCmd())
	return root
}

func init() {
	// Force truecolor so hex colors render correctly.
	// Must be set before any lipgloss style initialization.
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("not logged in. run 'brokeneck login' first.")
		}
		return err
	}
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return errors.New("the TUI needs a terminal; use 'brokeneck users' or 'brokeneck groups'")
	}

	log, closer, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt)
	defer cancel()

	client := api.NewClient(cfg.ServerURL, cfg.APIKey)
	client.SetLogger(log)
	s, err := session.New(ctx, client, cfg.Types, log)
	if err != nil {
		return err
	}

	log.WithField("server", cfg.ServerURL).Info("tui started")
	p := tea.NewProgram(ui.NewApp(ctx, s, cfg.VimKeys), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	log.Info("tui stopped")
	return nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// openLog returns the TUI logger. The terminal belongs to the TUI, so logs go
// to a file or nowhere.
func openLog(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	path := cfg.ResolvedLogFile()
	if path == "" {
		return logging.Discard(), noopCloser{}, nil
	}
	log, closer, err := logging.OpenFile(path, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return log, closer, nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
