package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/linear-view/linview/internal/access"
	"github.com/linear-view/linview/internal/api"
	"github.com/linear-view/linview/internal/config"
	"github.com/linear-view/linview/internal/filter"
	"github.com/linear-view/linview/internal/output"
)

// issuesClient defines the API methods used by the issues command.
type issuesClient interface {
	GetProjectIssues(ctx context.Context, projectID string) (*api.ProjectDetails, error)
}

type issuesOptions struct {
	search     string
	labels     []string
	states     []string
	milestone  string
	showLabels bool
	showStates bool
	json       bool
	retries    int
}

func newIssuesCommand() *cobra.Command {
	opts := &issuesOptions{}

	cmd := &cobra.Command{
		Use:   "issues <project-id>",
		Short: "List and filter a project's issues",
		Long: `List and filter a project's issues.

The search query matches issue titles case-insensitively. Multiple
--label flags select issues carrying any of the labels; multiple
--state flags select issues in any of the states. All filter
dimensions combine, so an issue must satisfy every one you pass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIssues(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "q", "", "Filter by title substring (case-insensitive)")
	cmd.Flags().StringArrayVarP(&opts.labels, "label", "l", nil, "Filter by label name (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.states, "state", "s", nil, "Filter by state name (repeatable)")
	cmd.Flags().StringVarP(&opts.milestone, "milestone", "m", "", "Filter by milestone id")
	cmd.Flags().BoolVar(&opts.showLabels, "labels", false, "List the label names present in the project")
	cmd.Flags().BoolVar(&opts.showStates, "states", false, "List the state names present in the project")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output in JSON format")
	cmd.Flags().IntVar(&opts.retries, "retries", 3, "Retries on rate limiting")

	return cmd
}

func runIssues(cmd *cobra.Command, opts *issuesOptions, projectID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := sessionToken()
	if err != nil {
		return err
	}

	return runIssuesWithDeps(cmd, opts, cfg, newAPIClient(cfg), token, projectID)
}

// runIssuesWithDeps is the testable implementation of runIssues
func runIssuesWithDeps(cmd *cobra.Command, opts *issuesOptions, cfg *config.Config, client issuesClient, token, projectID string) error {
	decision := access.Authorize(token, access.ProjectDetail(projectID), cfg.MasterToken)
	if !decision.Allow {
		if decision.RedirectTo.Kind == access.PathLogin {
			return fmt.Errorf("access denied: run 'linview login <token>' first")
		}
		return fmt.Errorf("access denied")
	}

	var details *api.ProjectDetails
	err := api.WithRetry(func() error {
		var loadErr error
		details, loadErr = client.GetProjectIssues(cmd.Context(), projectID)
		return loadErr
	}, opts.retries)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	ui := &output.UI{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}

	if opts.showLabels {
		for _, name := range filter.DistinctLabelNames(details.Issues) {
			cmd.Println(name)
		}
		return nil
	}
	if opts.showStates {
		for _, name := range filter.DistinctStateNames(details.Issues) {
			cmd.Println(name)
		}
		return nil
	}

	issues := filter.Apply(details.Issues, filter.Criteria{
		Query:     opts.search,
		Labels:    opts.labels,
		States:    opts.states,
		Milestone: opts.milestone,
	})

	if opts.json {
		return outputIssuesJSON(cmd, issues)
	}
	return outputIssuesTable(cmd, ui, details, issues)
}

type issueJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	Priority  string    `json:"priority"`
	Labels    []string  `json:"labels"`
	Milestone string    `json:"milestone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func outputIssuesJSON(cmd *cobra.Command, issues []api.Issue) error {
	out := make([]issueJSON, 0, len(issues))
	for _, issue := range issues {
		item := issueJSON{
			ID:        issue.ID,
			Title:     issue.Title,
			State:     issue.State.Name,
			Priority:  api.PriorityName(issue.Priority),
			Labels:    make([]string, 0, len(issue.Labels)),
			CreatedAt: issue.CreatedAt,
			UpdatedAt: issue.UpdatedAt,
		}
		for _, l := range issue.Labels {
			item.Labels = append(item.Labels, l.Name)
		}
		if issue.Milestone != nil {
			item.Milestone = issue.Milestone.Name
		}
		out = append(out, item)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// truncateTitle bounds a title to 60 runes for table display. Counting
// runes keeps multibyte characters intact.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= 60 {
		return title
	}
	return string(runes[:57]) + "..."
}

func outputIssuesTable(cmd *cobra.Command, ui *output.UI, details *api.ProjectDetails, issues []api.Issue) error {
	if len(issues) == 0 {
		cmd.Println("No issues found")
		return nil
	}

	ui.Info("%s: %d of %d issues", details.Name, len(issues), len(details.Issues))

	table := ui.Table([]string{"Title", "State", "Priority", "Labels", "Milestone"})
	for _, issue := range issues {
		labels := ""
		for i, l := range issue.Labels {
			if i > 0 {
				labels += ", "
			}
			labels += l.Name
		}
		milestone := "-"
		if issue.Milestone != nil {
			milestone = issue.Milestone.Name
		}

		table.Append([]string{
			truncateTitle(issue.Title),
			output.StateColor(issue.State.Name, issue.State.Type),
			output.PriorityColor(api.PriorityName(issue.Priority), issue.Priority),
			labels,
			milestone,
		})
	}
	return table.Render()
}
