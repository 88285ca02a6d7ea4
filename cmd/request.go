package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linear-view/linview/internal/access"
	"github.com/linear-view/linview/internal/api"
	"github.com/linear-view/linview/internal/config"
	"github.com/linear-view/linview/internal/history"
	"github.com/linear-view/linview/internal/output"
	"github.com/linear-view/linview/internal/request"
)

// requestSubmitter defines the flow entry point used by the request command.
type requestSubmitter interface {
	Submit(ctx context.Context, req request.CreationRequest) (*api.CreatedIssue, error)
}

// historyRecorder logs successful submissions.
type historyRecorder interface {
	Add(ctx context.Context, r *history.Record) error
}

type requestOptions struct {
	project     string
	title       string
	description string
	customer    string
	priority    string
}

func newRequestCommand() *cobra.Command {
	opts := &requestOptions{}

	cmd := &cobra.Command{
		Use:   "request",
		Short: "File a customer request as a labeled issue",
		Long: `File a customer request as a labeled issue.

The issue is created in the project's team, titled with a "[CS] " prefix,
tagged with the "Customer Request" label (created on first use), and its
description opens with the customer's name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "Project id (required)")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Request title (required)")
	cmd.Flags().StringVarP(&opts.customer, "customer", "c", "", "Customer name (required)")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Request details")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "Priority: high, medium, low, or none")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}

func runRequest(cmd *cobra.Command, opts *requestOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := sessionToken()
	if err != nil {
		return err
	}

	creator := request.NewCreator(newAPIClient(cfg))

	// History is local and best effort; opening it must not block the flow.
	var recorder historyRecorder
	if dbPath, err := history.DefaultPath(); err == nil {
		if store, err := history.Open(cmd.Context(), dbPath); err == nil {
			defer store.Close()
			recorder = store
		}
	}

	return runRequestWithDeps(cmd, opts, cfg, creator, recorder, token)
}

// runRequestWithDeps is the testable implementation of runRequest
func runRequestWithDeps(cmd *cobra.Command, opts *requestOptions, cfg *config.Config, creator requestSubmitter, recorder historyRecorder, token string) error {
	decision := access.Authorize(token, access.ProjectDetail(opts.project), cfg.MasterToken)
	if !decision.Allow {
		if decision.RedirectTo.Kind == access.PathLogin {
			return fmt.Errorf("access denied: run 'linview login <token>' first")
		}
		return fmt.Errorf("access denied")
	}

	priorityName := opts.priority
	if priorityName == "" {
		priorityName = cfg.DefaultPriority()
	}
	priority, err := api.ParsePriority(priorityName)
	if err != nil {
		return err
	}

	created, err := creator.Submit(cmd.Context(), request.CreationRequest{
		ProjectID:   opts.project,
		Title:       opts.title,
		Description: opts.description,
		Customer:    opts.customer,
		Priority:    priority,
	})
	if err != nil {
		return err
	}

	ui := &output.UI{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}
	ui.Success("Created request %s", created.Title)

	if recorder != nil {
		record := &history.Record{
			ProjectID:  opts.project,
			IssueID:    created.ID,
			IssueTitle: created.Title,
			Customer:   opts.customer,
			Priority:   string(priority),
		}
		if err := recorder.Add(cmd.Context(), record); err != nil {
			ui.Warning("could not record submission locally: %v", err)
		}
	}

	return nil
}
