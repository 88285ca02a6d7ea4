package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linear-view/linview/internal/output"
	"github.com/linear-view/linview/internal/session"
)

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newSessionStore()
			if err != nil {
				return err
			}
			return runLogoutWithDeps(cmd, store)
		},
	}
}

func runLogoutWithDeps(cmd *cobra.Command, store *session.Store) error {
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	ui := &output.UI{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}
	ui.Success("Logged out")
	return nil
}
