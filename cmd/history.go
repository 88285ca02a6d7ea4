package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linear-view/linview/internal/history"
	"github.com/linear-view/linview/internal/output"
)

type historyOptions struct {
	project string
	limit   int
}

func newHistoryCommand() *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show locally recorded request submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := history.DefaultPath()
			if err != nil {
				return err
			}
			store, err := history.Open(cmd.Context(), dbPath)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer store.Close()

			return runHistoryWithDeps(cmd, opts, store)
		},
	}

	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "Only show submissions for this project id")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "Limit number of results (0 for no limit)")

	return cmd
}

func runHistoryWithDeps(cmd *cobra.Command, opts *historyOptions, store *history.Store) error {
	records, err := store.List(cmd.Context(), opts.project, opts.limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		cmd.Println("No submissions recorded")
		return nil
	}

	ui := &output.UI{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}
	table := ui.Table([]string{"When", "Project", "Title", "Customer", "Priority"})
	for _, r := range records {
		table.Append([]string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.ProjectID,
			r.IssueTitle,
			r.Customer,
			r.Priority,
		})
	}
	return table.Render()
}
