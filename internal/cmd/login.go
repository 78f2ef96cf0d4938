package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/brokeneck/brokeneck/cli/internal/api"
	"github.com/brokeneck/brokeneck/cli/internal/config"
)

// RunInteractiveLogin prompts for the server URL and API key, checks them
// against the server and persists the config.
func RunInteractiveLogin(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "server url [%s]: ", api.DefaultBaseURL)
	serverURL, _ := reader.ReadString('\n')
	serverURL = strings.TrimSpace(serverURL)
	if serverURL == "" {
		serverURL = api.DefaultBaseURL
	}
	if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
		return fmt.Errorf("server url must start with http:// or https://")
	}

	fmt.Fprint(out, "api key (empty for none): ")
	apiKey, _ := reader.ReadString('\n')
	apiKey = strings.TrimSpace(apiKey)

	client := api.NewClient(serverURL, apiKey, 10*time.Second)
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg := &config.Config{
		ServerURL: serverURL,
		APIKey:    apiKey,
		VimKeys:   true,
	}
	if existing, err := config.Load(); err == nil {
		cfg.LogLevel = existing.LogLevel
		cfg.LogFile = existing.LogFile
		cfg.Types = existing.Types
		cfg.VimKeys = existing.VimKeys
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "connected to %s\n", serverURL)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// LoginCmd returns the `brokeneck login` command.
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Connect to a brokeneck server",
		RunE: func(c *cobra.Command, _ []string) error {
			return RunInteractiveLogin(c.Context(), c.InOrStdin(), c.OutOrStdout())
		},
	}
}
