// Package filter reduces a loaded issue set to the subset matching the
// active criteria. Filtering is conjunctive across dimensions and
// disjunctive within a multi-select dimension, stable, and free of side
// effects; the caller decides when criteria changed and re-applies.
package filter

import (
	"sort"
	"strings"

	"github.com/linear-view/linview/internal/api"
)

// Criteria holds the independently adjustable filter dimensions.
// The zero value matches every issue.
type Criteria struct {
	// Query is matched case-insensitively as a substring of the title
	Query string

	// Labels selects issues carrying at least one of these label names
	Labels []string

	// States selects issues whose state name is one of these
	States []string

	// Milestone selects issues assigned to this milestone id;
	// empty means all milestones
	Milestone string
}

// Apply returns the issues matching c, preserving input order. The
// input slice is never mutated; the result is a fresh slice each call.
func Apply(issues []api.Issue, c Criteria) []api.Issue {
	out := make([]api.Issue, 0, len(issues))
	query := strings.ToLower(c.Query)
	for i := range issues {
		if matches(&issues[i], query, c) {
			out = append(out, issues[i])
		}
	}
	return out
}

func matches(issue *api.Issue, query string, c Criteria) bool {
	if query != "" && !strings.Contains(strings.ToLower(issue.Title), query) {
		return false
	}

	if len(c.Labels) > 0 && !hasAnyLabel(issue, c.Labels) {
		return false
	}

	if len(c.States) > 0 && !containsString(c.States, issue.State.Name) {
		return false
	}

	if c.Milestone != "" {
		if issue.Milestone == nil || issue.Milestone.ID != c.Milestone {
			return false
		}
	}

	return true
}

// hasAnyLabel reports whether the issue carries at least one of the
// selected label names. An issue with no labels never matches.
func hasAnyLabel(issue *api.Issue, selected []string) bool {
	for _, label := range issue.Labels {
		if containsString(selected, label.Name) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// DistinctLabelNames derives the selectable label vocabulary from the
// loaded issue set, sorted for display.
func DistinctLabelNames(issues []api.Issue) []string {
	seen := make(map[string]bool)
	var names []string
	for i := range issues {
		for _, label := range issues[i].Labels {
			if !seen[label.Name] {
				seen[label.Name] = true
				names = append(names, label.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// DistinctStateNames derives the selectable state vocabulary from the
// loaded issue set, sorted for display.
func DistinctStateNames(issues []api.Issue) []string {
	seen := make(map[string]bool)
	var names []string
	for i := range issues {
		name := issues[i].State.Name
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
