package filter

import (
	"reflect"
	"testing"

	"github.com/linear-view/linview/internal/api"
)

func issue(id, title, state string, labels ...string) api.Issue {
	is := api.Issue{
		ID:    id,
		Title: title,
		State: api.WorkflowState{Name: state},
	}
	for _, l := range labels {
		is.Labels = append(is.Labels, api.Label{Name: l})
	}
	return is
}

func withMilestone(is api.Issue, milestoneID string) api.Issue {
	is.Milestone = &api.Milestone{ID: milestoneID}
	return is
}

func ids(issues []api.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.ID)
	}
	return out
}

// The two-issue fixture from the concrete scenarios
func fixture() []api.Issue {
	return []api.Issue{
		issue("1", "Fix login bug", "Open", "bug"),
		issue("2", "Add dark mode", "Done", "feature"),
	}
}

func TestApply_EmptyCriteriaIsIdentity(t *testing.T) {
	issues := fixture()

	got := Apply(issues, Criteria{})

	if !reflect.DeepEqual(got, issues) {
		t.Errorf("Apply with empty criteria = %v, want input unchanged", ids(got))
	}
}

func TestApply_QuerySubstringCaseInsensitive(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"lowercase match", "bug", []string{"1"}},
		{"uppercase match", "BUG", []string{"1"}},
		{"mid-title match", "dark", []string{"2"}},
		{"no match", "crash", []string{}},
		{"empty matches all", "", []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixture(), Criteria{Query: tt.query})
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Apply(query=%q) = %v, want %v", tt.query, ids(got), tt.want)
			}
		})
	}
}

func TestApply_LabelsUnionWithinDimension(t *testing.T) {
	// Both selected labels match: union semantics returns both issues
	got := Apply(fixture(), Criteria{Labels: []string{"bug", "feature"}})
	if !reflect.DeepEqual(ids(got), []string{"1", "2"}) {
		t.Errorf("Apply(labels=[bug feature]) = %v, want both issues", ids(got))
	}
}

func TestApply_AndAcrossDimensions(t *testing.T) {
	// Issue 1 has the label but wrong state; issue 2 the state but wrong label
	got := Apply(fixture(), Criteria{Labels: []string{"bug"}, States: []string{"Done"}})
	if len(got) != 0 {
		t.Errorf("Apply(labels=[bug], states=[Done]) = %v, want empty", ids(got))
	}
}

func TestApply_StateSelection(t *testing.T) {
	got := Apply(fixture(), Criteria{States: []string{"Done"}})
	if !reflect.DeepEqual(ids(got), []string{"2"}) {
		t.Errorf("Apply(states=[Done]) = %v, want [2]", ids(got))
	}
}

func TestApply_Milestone(t *testing.T) {
	issues := []api.Issue{
		withMilestone(issue("1", "Fix login bug", "Open"), "ms-1"),
		withMilestone(issue("2", "Add dark mode", "Done"), "ms-2"),
		issue("3", "Polish docs", "Open"),
	}

	t.Run("all sentinel matches everything", func(t *testing.T) {
		got := Apply(issues, Criteria{})
		if len(got) != 3 {
			t.Errorf("Expected all 3 issues, got %v", ids(got))
		}
	})

	t.Run("specific milestone", func(t *testing.T) {
		got := Apply(issues, Criteria{Milestone: "ms-1"})
		if !reflect.DeepEqual(ids(got), []string{"1"}) {
			t.Errorf("Apply(milestone=ms-1) = %v, want [1]", ids(got))
		}
	})

	t.Run("issue without milestone never matches a specific selection", func(t *testing.T) {
		got := Apply(issues, Criteria{Milestone: "ms-9"})
		if len(got) != 0 {
			t.Errorf("Expected no matches, got %v", ids(got))
		}
	})
}

func TestApply_UnlabeledIssueNeverMatchesLabelSelection(t *testing.T) {
	issues := []api.Issue{issue("1", "Bare issue", "Open")}

	got := Apply(issues, Criteria{Labels: []string{"bug"}})
	if len(got) != 0 {
		t.Errorf("Unlabeled issue matched a non-empty label selection: %v", ids(got))
	}
}

func TestApply_DuplicateLabelsCollapse(t *testing.T) {
	issues := []api.Issue{issue("1", "Twice tagged", "Open", "bug", "bug")}

	got := Apply(issues, Criteria{Labels: []string{"bug"}})
	if !reflect.DeepEqual(ids(got), []string{"1"}) {
		t.Errorf("Expected single match, got %v", ids(got))
	}
}

func TestApply_Idempotent(t *testing.T) {
	criteria := Criteria{Query: "o", Labels: []string{"bug", "feature"}}
	issues := fixture()

	once := Apply(issues, criteria)
	twice := Apply(once, criteria)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Apply is not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestApply_PreservesOrderAndInput(t *testing.T) {
	issues := []api.Issue{
		issue("3", "c fix", "Open", "bug"),
		issue("1", "a fix", "Open", "bug"),
		issue("2", "b fix", "Open", "bug"),
	}
	original := make([]api.Issue, len(issues))
	copy(original, issues)

	got := Apply(issues, Criteria{Labels: []string{"bug"}})

	if !reflect.DeepEqual(ids(got), []string{"3", "1", "2"}) {
		t.Errorf("Order not preserved: %v", ids(got))
	}
	if !reflect.DeepEqual(issues, original) {
		t.Error("Input slice was mutated")
	}
}

// Widening the label selection can only add or keep matches, never drop
// previously matching issues.
func TestApply_MonotonicNarrowing(t *testing.T) {
	issues := []api.Issue{
		issue("1", "one", "Open", "bug"),
		issue("2", "two", "Open", "feature"),
		issue("3", "three", "Open", "chore"),
	}

	narrow := Apply(issues, Criteria{Labels: []string{"bug"}})
	wide := Apply(issues, Criteria{Labels: []string{"bug", "feature"}})

	if len(wide) < len(narrow) {
		t.Fatalf("Widening shrank the result: %d -> %d", len(narrow), len(wide))
	}
	wideIDs := make(map[string]bool)
	for _, is := range wide {
		wideIDs[is.ID] = true
	}
	for _, is := range narrow {
		if !wideIDs[is.ID] {
			t.Errorf("Issue %s matched the narrow selection but not the wide one", is.ID)
		}
	}
}

func TestDistinctLabelNames(t *testing.T) {
	issues := []api.Issue{
		issue("1", "one", "Open", "feature", "bug"),
		issue("2", "two", "Done", "bug"),
		issue("3", "three", "Open"),
	}

	got := DistinctLabelNames(issues)
	want := []string{"bug", "feature"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DistinctLabelNames = %v, want %v", got, want)
	}
}

func TestDistinctLabelNames_Empty(t *testing.T) {
	if got := DistinctLabelNames(nil); len(got) != 0 {
		t.Errorf("Expected no names for empty input, got %v", got)
	}
}

func TestDistinctStateNames(t *testing.T) {
	issues := []api.Issue{
		issue("1", "one", "Open"),
		issue("2", "two", "Done"),
		issue("3", "three", "Open"),
	}

	got := DistinctStateNames(issues)
	want := []string{"Done", "Open"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DistinctStateNames = %v, want %v", got, want)
	}
}
