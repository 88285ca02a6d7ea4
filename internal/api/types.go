package api

import (
	"fmt"
	"strings"
	"time"
)

// Project represents a project visible to the workspace
type Project struct {
	ID          string
	Name        string
	Description string
	State       string
	StartDate   *string
	TargetDate  *string
}

// WorkflowState is the state an issue sits in. Type is one of the
// closed set triage/backlog/unstarted/started/completed/canceled.
type WorkflowState struct {
	Name  string
	Type  string
	Color string
}

// Label is a tag attached to an issue
type Label struct {
	Name  string
	Color string
}

// TeamLabel is a label as defined in a team's vocabulary, carrying the
// id needed to attach it to new issues
type TeamLabel struct {
	ID   string
	Name string
}

// Milestone is a named checkpoint within a project
type Milestone struct {
	ID          string
	Name        string
	Description string
	TargetDate  *string
}

// Issue represents one unit of tracked work
type Issue struct {
	ID          string
	Title       string
	Description string
	Priority    int
	State       WorkflowState
	Labels      []Label
	Milestone   *Milestone
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectDetails is a project together with its full issue set and
// milestone list, as returned by one project load
type ProjectDetails struct {
	Project
	Issues     []Issue
	Milestones []Milestone
}

// Team represents the owning team of a project with its label vocabulary
type Team struct {
	ID     string
	Labels []TeamLabel
}

// Organization holds workspace identity info
type Organization struct {
	ID      string
	Name    string
	LogoURL string
}

// CreatedIssue is the reference returned after a successful issue creation
type CreatedIssue struct {
	ID    string
	Title string
}

// Priority is the urgency of a customer request
type Priority string

const (
	PriorityNone   Priority = "NO_PRIORITY"
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// priorityToWire maps priorities to the ordinals the API expects.
// These values are part of the wire contract and must not change.
var priorityToWire = map[Priority]int{
	PriorityNone:   0,
	PriorityHigh:   1,
	PriorityMedium: 2,
	PriorityLow:    3,
}

var priorityFromWire = map[int]Priority{
	0: PriorityNone,
	1: PriorityHigh,
	2: PriorityMedium,
	3: PriorityLow,
}

// WireValue returns the ordinal the external API expects for p
func (p Priority) WireValue() (int, error) {
	v, ok := priorityToWire[p]
	if !ok {
		return 0, fmt.Errorf("unknown priority %q", string(p))
	}
	return v, nil
}

// PriorityFromWire converts an API ordinal back to a Priority
func PriorityFromWire(v int) (Priority, error) {
	p, ok := priorityFromWire[v]
	if !ok {
		return "", fmt.Errorf("unknown priority ordinal %d", v)
	}
	return p, nil
}

// ParsePriority parses a user-supplied priority name. Accepts the enum
// names and the short forms used on the command line, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	case "none", "no_priority", "no-priority":
		return PriorityNone, nil
	}
	return "", fmt.Errorf("invalid priority %q: expected high, medium, low, or none", s)
}

// PriorityName returns the display name for an API priority ordinal
func PriorityName(wire int) string {
	switch wire {
	case 1:
		return "High"
	case 2:
		return "Medium"
	case 3:
		return "Low"
	default:
		return "No priority"
	}
}
