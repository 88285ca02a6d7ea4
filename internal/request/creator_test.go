package request

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linear-view/linview/internal/api"
)

type fakeClient struct {
	team    *api.Team
	teamErr error

	createdLabelID  string
	createLabelErr  error
	createLabelCall *struct{ name, teamID, color string }

	createdIssue    *api.CreatedIssue
	createIssueErr  error
	createIssueCall *api.CreateIssueParams
}

func (f *fakeClient) GetProjectTeam(_ context.Context, projectID string) (*api.Team, error) {
	if f.teamErr != nil {
		return nil, f.teamErr
	}
	return f.team, nil
}

func (f *fakeClient) CreateLabel(_ context.Context, name, teamID, color string) (string, error) {
	f.createLabelCall = &struct{ name, teamID, color string }{name, teamID, color}
	if f.createLabelErr != nil {
		return "", f.createLabelErr
	}
	return f.createdLabelID, nil
}

func (f *fakeClient) CreateIssue(_ context.Context, params api.CreateIssueParams) (*api.CreatedIssue, error) {
	f.createIssueCall = &params
	if f.createIssueErr != nil {
		return nil, f.createIssueErr
	}
	return f.createdIssue, nil
}

func validRequest() CreationRequest {
	return CreationRequest{
		ProjectID:   "proj-1",
		Title:       "Export to CSV",
		Description: "Weekly report needs a CSV download.",
		Customer:    "Acme Corp",
		Priority:    api.PriorityHigh,
	}
}

func TestSubmit_ExistingLabel(t *testing.T) {
	client := &fakeClient{
		team: &api.Team{
			ID: "team-1",
			Labels: []api.TeamLabel{
				{ID: "lbl-bug", Name: "Bug"},
				{ID: "lbl-cr", Name: "Customer Request"},
			},
		},
		createdIssue: &api.CreatedIssue{ID: "iss-1", Title: "[CS] Export to CSV"},
	}

	created, err := NewCreator(client).Submit(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "iss-1", created.ID)

	assert.Nil(t, client.createLabelCall, "must not create a label that already exists")

	require.NotNil(t, client.createIssueCall)
	assert.Equal(t, "team-1", client.createIssueCall.TeamID)
	assert.Equal(t, "proj-1", client.createIssueCall.ProjectID)
	assert.Equal(t, "[CS] Export to CSV", client.createIssueCall.Title)
	assert.Equal(t, "**Customer Name:** Acme Corp\n\nWeekly report needs a CSV download.", client.createIssueCall.Description)
	assert.Equal(t, 1, client.createIssueCall.Priority)
	assert.Equal(t, []string{"lbl-cr"}, client.createIssueCall.LabelIDs)
}

func TestSubmit_CreatesLabelWhenAbsent(t *testing.T) {
	client := &fakeClient{
		team:           &api.Team{ID: "team-1", Labels: []api.TeamLabel{{ID: "lbl-bug", Name: "Bug"}}},
		createdLabelID: "lbl-new",
		createdIssue:   &api.CreatedIssue{ID: "iss-1"},
	}

	_, err := NewCreator(client).Submit(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, client.createLabelCall)
	assert.Equal(t, "Customer Request", client.createLabelCall.name)
	assert.Equal(t, "team-1", client.createLabelCall.teamID)
	assert.Equal(t, "#0052CC", client.createLabelCall.color)

	require.NotNil(t, client.createIssueCall)
	assert.Equal(t, []string{"lbl-new"}, client.createIssueCall.LabelIDs)
}

func TestSubmit_LabelMatchIsCaseSensitive(t *testing.T) {
	client := &fakeClient{
		team:           &api.Team{ID: "team-1", Labels: []api.TeamLabel{{ID: "lbl-lower", Name: "customer request"}}},
		createdLabelID: "lbl-new",
		createdIssue:   &api.CreatedIssue{ID: "iss-1"},
	}

	_, err := NewCreator(client).Submit(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, client.createLabelCall, "lowercase variant must not match")
	assert.Equal(t, []string{"lbl-new"}, client.createIssueCall.LabelIDs)
}

func TestSubmit_TeamLookupFailureAborts(t *testing.T) {
	client := &fakeClient{teamErr: errors.New("boom")}

	_, err := NewCreator(client).Submit(context.Background(), validRequest())
	require.Error(t, err)
	assert.Nil(t, client.createIssueCall, "issue must not be created after a failed team lookup")
}

func TestSubmit_LabelCreationFailureAborts(t *testing.T) {
	client := &fakeClient{
		team:           &api.Team{ID: "team-1"},
		createLabelErr: errors.New("boom"),
	}

	_, err := NewCreator(client).Submit(context.Background(), validRequest())
	require.Error(t, err)
	assert.Nil(t, client.createIssueCall)
}

func TestSubmit_IssueCreationFailure(t *testing.T) {
	client := &fakeClient{
		team:           &api.Team{ID: "team-1", Labels: []api.TeamLabel{{ID: "lbl-cr", Name: "Customer Request"}}},
		createIssueErr: errors.New("boom"),
	}

	_, err := NewCreator(client).Submit(context.Background(), validRequest())
	require.Error(t, err)
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreationRequest)
	}{
		{"missing project", func(r *CreationRequest) { r.ProjectID = "" }},
		{"missing title", func(r *CreationRequest) { r.Title = "  " }},
		{"missing customer", func(r *CreationRequest) { r.Customer = "" }},
		{"invalid priority", func(r *CreationRequest) { r.Priority = api.Priority("URGENT") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{team: &api.Team{ID: "team-1"}}
			req := validRequest()
			tt.mutate(&req)

			_, err := NewCreator(client).Submit(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, client.createIssueCall)
		})
	}
}

func TestSubmit_EmptyDescription(t *testing.T) {
	client := &fakeClient{
		team:         &api.Team{ID: "team-1", Labels: []api.TeamLabel{{ID: "lbl-cr", Name: "Customer Request"}}},
		createdIssue: &api.CreatedIssue{ID: "iss-1"},
	}

	req := validRequest()
	req.Description = ""
	_, err := NewCreator(client).Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "**Customer Name:** Acme Corp", client.createIssueCall.Description)
}
