package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linear-view/linview/internal/api"
	"github.com/linear-view/linview/internal/config"
	"github.com/linear-view/linview/internal/session"
	pkgversion "github.com/linear-view/linview/internal/version"
)

// version is set by ldflags during release builds.
// When empty (default), falls back to the source constant in internal/version.
var version = ""

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.Version
}

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linview",
		Short: "Browse a Linear project and file customer requests",
		Long: `linview is a read-mostly Linear client for customer-facing teams.

It lists a workspace's projects and issues, filters them by text, label,
state, and milestone, and files customer requests as labeled issues.
Access is gated by a token: the master token unlocks every project, a
project id unlocks only that project.

Use 'linview <command> --help' for more information about a command.`,
		Version: getVersion(),
	}

	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newLoginCommand())
	cmd.AddCommand(newLogoutCommand())
	cmd.AddCommand(newProjectsCommand())
	cmd.AddCommand(newIssuesCommand())
	cmd.AddCommand(newRequestCommand())
	cmd.AddCommand(newHistoryCommand())
	cmd.AddCommand(newOrgCommand())

	return cmd
}

func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig finds and loads the configuration, applies env overrides,
// and validates it.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := config.LoadFromDirectory(cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w\nRun 'linview init' to create a configuration file", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newAPIClient(cfg *config.Config) *api.Client {
	return api.NewClient(api.ClientOptions{
		Endpoint: cfg.Endpoint,
		APIKey:   cfg.APIKey,
	})
}

func newSessionStore() (*session.Store, error) {
	path, err := session.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session path: %w", err)
	}
	return session.NewStore(path), nil
}

// sessionToken returns the stored access token, or "" when logged out.
func sessionToken() (string, error) {
	store, err := newSessionStore()
	if err != nil {
		return "", err
	}
	return store.Token()
}
