package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linear-view/linview/internal/config"
	"github.com/linear-view/linview/internal/output"
	"github.com/linear-view/linview/internal/session"
)

// loginClient defines the API methods used by login.
type loginClient interface {
	ProjectExists(ctx context.Context, projectID string) (bool, error)
}

func newLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <token>",
		Short: "Start a session with an access token",
		Long: `Start a session with an access token.

The master token unlocks every project in the workspace. Any other token
is treated as a project id and unlocks only that project. The token is
validated before the session is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, args[0])
		},
	}
	return cmd
}

func runLogin(cmd *cobra.Command, token string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := newSessionStore()
	if err != nil {
		return err
	}

	return runLoginWithDeps(cmd, cfg, newAPIClient(cfg), store, token)
}

// runLoginWithDeps is the testable implementation of runLogin
func runLoginWithDeps(cmd *cobra.Command, cfg *config.Config, client loginClient, store *session.Store, token string) error {
	if token == "" {
		return fmt.Errorf("token must not be empty")
	}

	ui := &output.UI{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}

	// The master sentinel is accepted without an API round trip.
	if cfg.MasterToken != "" && token == cfg.MasterToken {
		if err := store.SetToken(token); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		ui.Success("Logged in with full access")
		return nil
	}

	exists, err := client.ProjectExists(cmd.Context(), token)
	if err != nil {
		return fmt.Errorf("failed to validate token: %w", err)
	}
	if !exists {
		return fmt.Errorf("invalid token: no project with id %q", token)
	}

	if err := store.SetToken(token); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	ui.Success("Logged in with access to project %s", token)
	return nil
}
