package api

import (
	"context"
	"fmt"
	"time"

	graphql "github.com/cli/shurcooL-graphql"
)

// issueNode is the wire shape of one issue inside a project query
type issueNode struct {
	ID          string
	Title       string
	Description string
	Priority    int
	State       struct {
		Name  string
		Type  string
		Color string
	}
	Labels struct {
		Nodes []struct {
			Name  string
			Color string
		}
	}
	ProjectMilestone *struct {
		ID          string
		Name        string
		Description string
		TargetDate  *string
	} `graphql:"projectMilestone"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n *issueNode) toIssue() Issue {
	issue := Issue{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Priority:    n.Priority,
		State: WorkflowState{
			Name:  n.State.Name,
			Type:  n.State.Type,
			Color: n.State.Color,
		},
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	for _, l := range n.Labels.Nodes {
		issue.Labels = append(issue.Labels, Label{Name: l.Name, Color: l.Color})
	}
	if n.ProjectMilestone != nil {
		issue.Milestone = &Milestone{
			ID:          n.ProjectMilestone.ID,
			Name:        n.ProjectMilestone.Name,
			Description: n.ProjectMilestone.Description,
			TargetDate:  n.ProjectMilestone.TargetDate,
		}
	}
	return issue
}

// GetProjects enumerates every project visible to the workspace,
// flattened across teams
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	if c.gql == nil {
		return nil, fmt.Errorf("GraphQL client not initialized - is an API key configured?")
	}

	var query struct {
		Teams struct {
			Nodes []struct {
				Projects struct {
					Nodes []struct {
						ID          string
						Name        string
						Description string
						StartDate   *string
						TargetDate  *string
						State       string
					}
				}
			}
		}
	}

	if err := c.gql.Query(ctx, &query, nil); err != nil {
		return nil, WrapError("list", "projects", err)
	}

	var projects []Project
	for _, team := range query.Teams.Nodes {
		for _, p := range team.Projects.Nodes {
			state := p.State
			if state == "" {
				state = "backlog"
			}
			projects = append(projects, Project{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				StartDate:   p.StartDate,
				TargetDate:  p.TargetDate,
				State:       state,
			})
		}
	}

	return projects, nil
}

// GetProjectIssues loads one project with its full issue set and milestones
func (c *Client) GetProjectIssues(ctx context.Context, projectID string) (*ProjectDetails, error) {
	if c.gql == nil {
		return nil, fmt.Errorf("GraphQL client not initialized - is an API key configured?")
	}

	var query struct {
		Project struct {
			ID          string
			Name        string
			Description string
			StartDate   *string
			TargetDate  *string
			State       string
			Issues      struct {
				Nodes []issueNode
			}
			ProjectMilestones struct {
				Nodes []struct {
					ID          string
					Name        string
					Description string
					TargetDate  *string
				}
			} `graphql:"projectMilestones"`
		} `graphql:"project(id: $projectId)"`
	}

	variables := map[string]interface{}{
		"projectId": graphql.String(projectID),
	}

	if err := c.gql.Query(ctx, &query, variables); err != nil {
		return nil, WrapError("get", "project "+projectID, err)
	}

	details := &ProjectDetails{
		Project: Project{
			ID:          query.Project.ID,
			Name:        query.Project.Name,
			Description: query.Project.Description,
			StartDate:   query.Project.StartDate,
			TargetDate:  query.Project.TargetDate,
			State:       query.Project.State,
		},
	}
	for i := range query.Project.Issues.Nodes {
		details.Issues = append(details.Issues, query.Project.Issues.Nodes[i].toIssue())
	}
	for _, m := range query.Project.ProjectMilestones.Nodes {
		details.Milestones = append(details.Milestones, Milestone{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			TargetDate:  m.TargetDate,
		})
	}

	return details, nil
}

// GetProjectIssueCount returns the number of issues in a project
func (c *Client) GetProjectIssueCount(ctx context.Context, projectID string) (int, error) {
	if c.gql == nil {
		return 0, fmt.Errorf("GraphQL client not initialized - is an API key configured?")
	}

	var query struct {
		Project struct {
			ID     string
			Issues struct {
				Nodes []struct {
					ID string
				}
			}
		} `graphql:"project(id: $projectId)"`
	}

	variables := map[string]interface{}{
		"projectId": graphql.String(projectID),
	}

	if err := c.gql.Query(ctx, &query, variables); err != nil {
		return 0, WrapError("count", "project "+projectID, err)
	}

	return len(query.Project.Issues.Nodes), nil
}

// ProjectExists probes whether a project id resolves. A missing project
// is reported as (false, nil); transport failures propagate.
func (c *Client) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	if c.gql == nil {
		return false, fmt.Errorf("GraphQL client not initialized - is an API key configured?")
	}

	var query struct {
		Project struct {
			ID string
		} `graphql:"project(id: $projectId)"`
	}

	variables := map[string]interface{}{
		"projectId": graphql.String(projectID),
	}

	err := c.gql.Query(ctx, &query, variables)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, WrapError("check", "project "+projectID, err)
	}

	return query.Project.ID != "", nil
}

// GetProjectTeam resolves the owning team of a project along with the
// team's label vocabulary. A project may belong to several teams; the
// first team returned by the API is taken as authoritative.
func (c *Client) GetProjectTeam(ctx context.Context, projectID string) (*Team, error) {
	if c.gql == nil {
		return nil, fmt.Errorf("GraphQL client not initialized - is an API key configured?")
	}

	var query struct {
		Project struct {
			Teams struct {
				Nodes []struct {
					ID     string
					Labels struct {
						Nodes []struct {
							ID   string
							Name string
						}
					}
				}
			}
		} `graphql:"project(id: $projectId)"`
	}

	variables := map[string]interface{}{
		"projectId": graphql.String(projectID),
	}

	if err := c.gql.Query(ctx, &query, variables); err != nil {
		return nil, WrapError("get", "team for project "+projectID, err)
	}

	if len(query.Project.Teams.Nodes) == 0 {
		return nil, WrapError("get", "team for project "+projectID, ErrNotFound)
	}

	node := query.Project.Teams.Nodes[0]
	team := &Team{ID: node.ID}
	for _, l := range node.Labels.Nodes {
		team.Labels = append(team.Labels, TeamLabel{ID: l.ID, Name: l.Name})
	}

	return team, nil
}

// GetOrganization returns workspace identity info
func (c *Client) GetOrganization(ctx context.Context) (*Organization, error) {
	if c.gql == nil {
		return nil, fmt.Errorf("GraphQL client not initialized - is an API key configured?")
	}

	var query struct {
		Organization struct {
			ID      string
			Name    string
			LogoURL string `graphql:"logoUrl"`
		}
	}

	if err := c.gql.Query(ctx, &query, nil); err != nil {
		return nil, WrapError("get", "organization", err)
	}

	return &Organization{
		ID:      query.Organization.ID,
		Name:    query.Organization.Name,
		LogoURL: query.Organization.LogoURL,
	}, nil
}
