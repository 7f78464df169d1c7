package engine

import (
	"reflect"
	"testing"

	"github.com/victordelrosal/epictaskquest/internal/storage"
)

func TestExtractTags(t *testing.T) {
	got := ExtractTags("pack bags #trip then book hotel #trip #0log")
	want := []string{"#trip", "#0log"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractTags=%v, want %v", got, want)
	}

	// Deterministic: same input, same output.
	again := ExtractTags("pack bags #trip then book hotel #trip #0log")
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("ExtractTags not deterministic: %v vs %v", got, again)
	}
}

func TestExtractTagsNoMatch(t *testing.T) {
	got := ExtractTags("nothing to see here")
	if got == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("ExtractTags=%v, want empty", got)
	}
}

func TestExtractTagsHebrew(t *testing.T) {
	got := ExtractTags("לקנות חלב #קניות")
	if len(got) != 1 || got[0] != "#קניות" {
		t.Fatalf("ExtractTags=%v, want [#קניות]", got)
	}
}

func TestExtractTagsPunctuationTerminates(t *testing.T) {
	got := ExtractTags("call mom #family, then rest")
	if len(got) != 1 || got[0] != "#family" {
		t.Fatalf("ExtractTags=%v, want [#family]", got)
	}
}

func TestClassification(t *testing.T) {
	if IsExcluded(ParentTag) {
		t.Fatalf("parent tag must never be excluded")
	}
	if !IsExcluded("#0log") || !IsExcluded("#_private") {
		t.Fatalf("reserved prefixes must be excluded")
	}
	if IsExcluded("#trip") {
		t.Fatalf("#trip must not be excluded")
	}

	excluded, nested := SplitTags([]string{"#trip", "#0log", ParentTag, "#_x"})
	if !reflect.DeepEqual(excluded, []string{"#0log", "#_x"}) {
		t.Fatalf("excluded=%v", excluded)
	}
	if !reflect.DeepEqual(nested, []string{"#trip"}) {
		t.Fatalf("nested=%v", nested)
	}
}

func TestGroupTasksMultiMembership(t *testing.T) {
	tasks := []storage.Task{
		{ID: 1, Text: "plan #trip #budget", Difficulty: 2},
		{ID: 2, Text: "pack #trip", Difficulty: 5},
		{ID: 3, Text: "floss", Difficulty: 1},
	}
	groups := GroupTasks(tasks)

	total := 0
	for _, g := range groups {
		total += len(g)
	}
	if total < len(tasks)-1 {
		t.Fatalf("multi-membership lost: %d group slots for %d tasks", total, len(tasks))
	}
	if len(groups["#trip"]) != 2 {
		t.Fatalf("#trip group=%d, want 2", len(groups["#trip"]))
	}
	// Descending points: the epic pack (25p) before the easy plan (10p).
	if groups["#trip"][0].ID != 2 {
		t.Fatalf("#trip not sorted by points desc: %v", groups["#trip"])
	}
}

func TestBuildHierarchyScenario(t *testing.T) {
	tasks := []storage.Task{
		{ID: 1, Text: "book flights #trip", Difficulty: 1},
		{ID: 2, Text: "pack bags #trip", Difficulty: 1},
		{ID: 3, Text: "write entry #0log", Difficulty: 1},
		{ID: 4, Text: "no tags here", Difficulty: 1},
	}
	h := BuildHierarchy(tasks)

	if len(h.Excluded) != 1 || h.Excluded[0].Tag != "#0log" {
		t.Fatalf("excluded=%v, want one #0log section", h.Excluded)
	}
	if len(h.Nested) != 1 || h.Nested[0].Tag != "#trip" {
		t.Fatalf("nested=%v, want one #trip section", h.Nested)
	}
	if len(h.Nested[0].Tasks) != 2 {
		t.Fatalf("#trip tasks=%d, want 2", len(h.Nested[0].Tasks))
	}
	if len(h.Untagged) != 1 || h.Untagged[0].ID != 4 {
		t.Fatalf("untagged=%v, want task 4 only", h.Untagged)
	}

	// The parent tag itself never becomes a section.
	for _, g := range append(h.Excluded, h.Nested...) {
		if g.Tag == ParentTag {
			t.Fatalf("parent tag leaked into sections")
		}
	}
}

func TestBuildHierarchyParentTagInText(t *testing.T) {
	tasks := []storage.Task{
		{ID: 1, Text: "weird task " + ParentTag, Difficulty: 1},
	}
	h := BuildHierarchy(tasks)
	if len(h.Excluded) != 0 || len(h.Nested) != 0 {
		t.Fatalf("parent tag must not create a section: %+v", h)
	}
	// It has a tag, so it is not untagged either.
	if len(h.Untagged) != 0 {
		t.Fatalf("task with parent tag counted as untagged")
	}
}
