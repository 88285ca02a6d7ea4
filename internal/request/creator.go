// Package request implements the customer-request submission flow:
// resolving the project's team, ensuring the request label exists, and
// creating the issue.
package request

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/linear-view/linview/internal/api"
)

const (
	// RequestLabelName is matched against team labels case-sensitively.
	RequestLabelName = "Customer Request"

	// RequestLabelColor is used when the label has to be created.
	RequestLabelColor = "#0052CC"

	// TitlePrefix marks issues that originated as customer requests.
	TitlePrefix = "[CS] "
)

// apiClient is the subset of api.Client used by the creator.
type apiClient interface {
	GetProjectTeam(ctx context.Context, projectID string) (*api.Team, error)
	CreateLabel(ctx context.Context, name, teamID, color string) (string, error)
	CreateIssue(ctx context.Context, params api.CreateIssueParams) (*api.CreatedIssue, error)
}

// CreationRequest carries the user-supplied fields of a submission.
type CreationRequest struct {
	ProjectID   string
	Title       string
	Description string
	Customer    string
	Priority    api.Priority
}

// Creator runs the two-step submission flow. Submissions are serialized
// so the find-or-create label step cannot race against itself within a
// single process. Concurrent processes can still create duplicate labels;
// the tracker tolerates that and the first match wins on later runs.
type Creator struct {
	client apiClient

	mu sync.Mutex
}

func NewCreator(client apiClient) *Creator {
	return &Creator{client: client}
}

func (r CreationRequest) validate() error {
	if r.ProjectID == "" {
		return fmt.Errorf("project id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(r.Customer) == "" {
		return fmt.Errorf("customer name is required")
	}
	return nil
}

// Submit resolves the project's team, finds or creates the request label,
// and creates the issue. Any step failing aborts the flow; no partial
// issue is created.
func (c *Creator) Submit(ctx context.Context, req CreationRequest) (*api.CreatedIssue, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	wirePriority, err := req.Priority.WireValue()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	team, err := c.client.GetProjectTeam(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve team for project: %w", err)
	}

	labelID, err := c.ensureRequestLabel(ctx, team)
	if err != nil {
		return nil, err
	}

	created, err := c.client.CreateIssue(ctx, api.CreateIssueParams{
		TeamID:      team.ID,
		ProjectID:   req.ProjectID,
		Title:       TitlePrefix + req.Title,
		Description: formatDescription(req.Customer, req.Description),
		Priority:    wirePriority,
		LabelIDs:    []string{labelID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	return created, nil
}

// ensureRequestLabel returns the id of the team's request label, creating
// it when absent. The name match is exact, including case.
func (c *Creator) ensureRequestLabel(ctx context.Context, team *api.Team) (string, error) {
	for _, label := range team.Labels {
		if label.Name == RequestLabelName {
			return label.ID, nil
		}
	}

	id, err := c.client.CreateLabel(ctx, RequestLabelName, team.ID, RequestLabelColor)
	if err != nil {
		return "", fmt.Errorf("failed to create %q label: %w", RequestLabelName, err)
	}
	return id, nil
}

func formatDescription(customer, body string) string {
	if body == "" {
		return fmt.Sprintf("**Customer Name:** %s", customer)
	}
	return fmt.Sprintf("**Customer Name:** %s\n\n%s", customer, body)
}
