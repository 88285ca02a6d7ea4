package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linear-view/linview/internal/access"
	"github.com/linear-view/linview/internal/api"
	"github.com/linear-view/linview/internal/config"
	"github.com/linear-view/linview/internal/output"
)

// projectsClient defines the API methods used by the projects command.
type projectsClient interface {
	GetProjects(ctx context.Context) ([]api.Project, error)
	GetProjectIssueCount(ctx context.Context, projectID string) (int, error)
	GetProjectIssues(ctx context.Context, projectID string) (*api.ProjectDetails, error)
}

type projectsOptions struct {
	json bool
}

func newProjectsCommand() *cobra.Command {
	opts := &projectsOptions{}

	cmd := &cobra.Command{
		Use:     "projects",
		Short:   "List projects visible to the current session",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjects(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Output in JSON format")

	return cmd
}

func runProjects(cmd *cobra.Command, opts *projectsOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := sessionToken()
	if err != nil {
		return err
	}

	return runProjectsWithDeps(cmd, opts, cfg, newAPIClient(cfg), token)
}

// runProjectsWithDeps is the testable implementation of runProjects
func runProjectsWithDeps(cmd *cobra.Command, opts *projectsOptions, cfg *config.Config, client projectsClient, token string) error {
	decision := access.Authorize(token, access.ProjectList(), cfg.MasterToken)
	if !decision.Allow {
		switch decision.RedirectTo.Kind {
		case access.PathProjectDetail:
			// A scoped session sees only its own project.
			return renderScopedProject(cmd, opts, client, decision.RedirectTo.ProjectID)
		default:
			return fmt.Errorf("not logged in: run 'linview login <token>' first")
		}
	}

	projects, err := client.GetProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	return renderProjects(cmd, opts, client, projects)
}

// renderScopedProject lands a scoped token on its project's issues, the
// same place the token unlocks. There is no list to show such a session.
func renderScopedProject(cmd *cobra.Command, opts *projectsOptions, client projectsClient, projectID string) error {
	details, err := client.GetProjectIssues(cmd.Context(), projectID)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("project %s not found", projectID)
		}
		return fmt.Errorf("failed to load project: %w", err)
	}

	if opts.json {
		return outputIssuesJSON(cmd, details.Issues)
	}

	ui := &output.UI{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}
	return outputIssuesTable(cmd, ui, details, details.Issues)
}

type projectJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	State       string `json:"state"`
	IssueCount  int    `json:"issueCount"`
}

func renderProjects(cmd *cobra.Command, opts *projectsOptions, client projectsClient, projects []api.Project) error {
	ui := &output.UI{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}

	if len(projects) == 0 && !opts.json {
		cmd.Println("No projects found")
		return nil
	}

	// Issue counts are best effort; a count failure must not hide the list.
	counts := make(map[string]int, len(projects))
	for _, p := range projects {
		n, err := client.GetProjectIssueCount(cmd.Context(), p.ID)
		if err != nil {
			ui.Warning("could not count issues for %s: %v", p.Name, err)
			continue
		}
		counts[p.ID] = n
	}

	if opts.json {
		out := make([]projectJSON, 0, len(projects))
		for _, p := range projects {
			out = append(out, projectJSON{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				State:       p.State,
				IssueCount:  counts[p.ID],
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	table := ui.Table([]string{"ID", "Name", "State", "Issues"})
	for _, p := range projects {
		table.Append([]string{p.ID, p.Name, p.State, fmt.Sprintf("%d", counts[p.ID])})
	}
	return table.Render()
}
