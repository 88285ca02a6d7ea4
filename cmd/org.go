package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linear-view/linview/internal/api"
)

// orgClient defines the API methods used by the org command.
type orgClient interface {
	GetOrganization(ctx context.Context) (*api.Organization, error)
}

func newOrgCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "org",
		Short: "Show the workspace the configured API key belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runOrgWithDeps(cmd, newAPIClient(cfg))
		},
	}
}

func runOrgWithDeps(cmd *cobra.Command, client orgClient) error {
	org, err := client.GetOrganization(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load organization: %w", err)
	}

	cmd.Printf("%s (%s)\n", org.Name, org.ID)
	if org.LogoURL != "" {
		cmd.Printf("Logo: %s\n", org.LogoURL)
	}
	return nil
}
