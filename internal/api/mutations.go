package api

import (
	"context"
	"fmt"

	graphql "github.com/cli/shurcooL-graphql"
)

// LabelCreateInput represents the input for creating a team label
type LabelCreateInput struct {
	Name   graphql.String `json:"name"`
	TeamID graphql.ID     `json:"teamId"`
	Color  graphql.String `json:"color"`
}

// IssueCreateInput represents the wire input for creating an issue
type IssueCreateInput struct {
	TeamID      graphql.ID     `json:"teamId"`
	ProjectID   graphql.ID     `json:"projectId"`
	Title       graphql.String `json:"title"`
	Description graphql.String `json:"description,omitempty"`
	Priority    graphql.Int    `json:"priority"`
	LabelIDs    *[]graphql.ID  `json:"labelIds,omitempty"`
}

// CreateIssueParams is the caller-facing form of IssueCreateInput
type CreateIssueParams struct {
	TeamID      string
	ProjectID   string
	Title       string
	Description string
	Priority    int
	LabelIDs    []string
}

// CreateLabel creates a label in a team's vocabulary and returns its id
func (c *Client) CreateLabel(ctx context.Context, name, teamID, color string) (string, error) {
	if c.gql == nil {
		return "", fmt.Errorf("GraphQL client not initialized - is an API key configured?")
	}

	var mutation struct {
		LabelCreate struct {
			Success bool
			Label   struct {
				ID string
			}
		} `graphql:"labelCreate(input: $input)"`
	}

	input := LabelCreateInput{
		Name:   graphql.String(name),
		TeamID: graphql.ID(teamID),
		Color:  graphql.String(color),
	}

	variables := map[string]interface{}{
		"input": input,
	}

	if err := c.gql.Mutate(ctx, &mutation, variables); err != nil {
		return "", WrapError("create", "label "+name, err)
	}

	if !mutation.LabelCreate.Success {
		return "", fmt.Errorf("create label %s: mutation reported failure", name)
	}

	return mutation.LabelCreate.Label.ID, nil
}

// CreateIssue creates a new issue and returns a reference to it
func (c *Client) CreateIssue(ctx context.Context, params CreateIssueParams) (*CreatedIssue, error) {
	if c.gql == nil {
		return nil, fmt.Errorf("GraphQL client not initialized - is an API key configured?")
	}

	var mutation struct {
		IssueCreate struct {
			Success bool
			Issue   struct {
				ID    string
				Title string
			}
		} `graphql:"issueCreate(input: $input)"`
	}

	input := IssueCreateInput{
		TeamID:    graphql.ID(params.TeamID),
		ProjectID: graphql.ID(params.ProjectID),
		Title:     graphql.String(params.Title),
		Priority:  graphql.Int(params.Priority),
	}
	if params.Description != "" {
		input.Description = graphql.String(params.Description)
	}
	if len(params.LabelIDs) > 0 {
		labelIDs := make([]graphql.ID, 0, len(params.LabelIDs))
		for _, id := range params.LabelIDs {
			labelIDs = append(labelIDs, graphql.ID(id))
		}
		input.LabelIDs = &labelIDs
	}

	variables := map[string]interface{}{
		"input": input,
	}

	if err := c.gql.Mutate(ctx, &mutation, variables); err != nil {
		return nil, WrapError("create", "issue", err)
	}

	if !mutation.IssueCreate.Success {
		return nil, fmt.Errorf("create issue: mutation reported failure")
	}

	return &CreatedIssue{
		ID:    mutation.IssueCreate.Issue.ID,
		Title: mutation.IssueCreate.Issue.Title,
	}, nil
}
