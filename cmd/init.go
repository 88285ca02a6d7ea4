package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/linear-view/linview/internal/api"
	"github.com/linear-view/linview/internal/config"
	"github.com/linear-view/linview/internal/output"
)

// initOptions holds the command-line options for init
type initOptions struct {
	apiKey      string
	masterToken string
	endpoint    string
	force       bool
}

func newInitCommand() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a linview configuration file",
		Long: `Create a .linview.yml configuration file in the current directory.

The API key authenticates against the tracker; the master token is the
sentinel that unlocks every project at login. Both can also be supplied
through the LINVIEW_API_KEY and LINVIEW_MASTER_TOKEN environment
variables, which take precedence over the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "Tracker API key")
	cmd.Flags().StringVar(&opts.masterToken, "master-token", "", "Token that unlocks all projects")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", api.DefaultEndpoint, "GraphQL endpoint")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing configuration file")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	return runInitWithDeps(cmd, opts, cwd)
}

// runInitWithDeps is the testable implementation of runInit
func runInitWithDeps(cmd *cobra.Command, opts *initOptions, dir string) error {
	path := filepath.Join(dir, config.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.ConfigFileName)
	}

	cfg := &config.Config{
		Version:     "1",
		Endpoint:    opts.endpoint,
		APIKey:      opts.apiKey,
		MasterToken: opts.masterToken,
	}
	cfg.Defaults.Priority = "medium"

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	ui := &output.UI{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}
	ui.Success("Created %s", path)
	if opts.apiKey == "" {
		ui.Info("Set api_key in the file or export %s before running other commands", config.EnvAPIKey)
	}
	return nil
}
