package render

import (
	"testing"

	"github.com/victordelrosal/epictaskquest/internal/engine"
	"github.com/victordelrosal/epictaskquest/internal/storage"
)

func testHierarchy() engine.Hierarchy {
	return engine.BuildHierarchy([]storage.Task{
		{ID: 1, Text: "book flights #trip", Difficulty: 1},
		{ID: 2, Text: "pack bags #trip", Difficulty: 1},
		{ID: 3, Text: "write entry #0log", Difficulty: 1},
		{ID: 4, Text: "no tags here", Difficulty: 1},
	})
}

func TestBuildSectionOrder(t *testing.T) {
	v := Build(testHierarchy(), nil, nil, storage.DefaultStyleConfig(), Filter{})

	// Excluded first, then the parent, then untagged — always.
	if len(v.Sections) != 3 {
		t.Fatalf("sections=%d, want 3", len(v.Sections))
	}
	if v.Sections[0].Key != ExcludedKey("#0log") {
		t.Fatalf("first section=%v, want excluded #0log", v.Sections[0].Key)
	}
	if v.Sections[1].Key != ParentKey {
		t.Fatalf("second section=%v, want parent", v.Sections[1].Key)
	}
	if v.Sections[2].Key != UntaggedKey {
		t.Fatalf("third section=%v, want untagged", v.Sections[2].Key)
	}

	parent := v.Sections[1]
	if len(parent.Children) != 1 || parent.Children[0].Label != "#trip" {
		t.Fatalf("parent children=%v, want [#trip]", parent.Children)
	}
	if len(parent.Children[0].Rows) != 2 {
		t.Fatalf("#trip rows=%d, want 2", len(parent.Children[0].Rows))
	}
	// Nil toggle store renders everything expanded.
	if !parent.Expanded || !parent.Children[0].Visible {
		t.Fatalf("nil toggles must expand everything")
	}
}

func TestChildVisibilityGatedByParent(t *testing.T) {
	toggles := NewToggleStore()
	toggles.MarkExpanded(NestedKey("#trip"))
	// Parent stays collapsed.

	v := Build(testHierarchy(), nil, toggles, storage.DefaultStyleConfig(), Filter{})
	parent := v.Sections[1]
	child := parent.Children[0]
	if !child.Expanded {
		t.Fatalf("child's own state must be preserved")
	}
	if child.Visible {
		t.Fatalf("child of a collapsed parent must not be visible")
	}

	// Re-expanding the parent re-evaluates the child's stored state.
	toggles.MarkExpanded(ParentKey)
	v = Build(testHierarchy(), nil, toggles, storage.DefaultStyleConfig(), Filter{})
	if !v.Sections[1].Children[0].Visible {
		t.Fatalf("child must become visible once parent reopens")
	}
}

func TestTogglePersistenceAcrossRebuild(t *testing.T) {
	toggles := NewToggleStore()
	key := NestedKey("#trip")
	toggles.MarkExpanded(key)
	toggles.SetScroll(key, 12)

	toggles.SnapshotBeforeRebuild()
	// A rebuild wipes nothing; restore must bring the state back even if
	// something flipped it mid-rebuild.
	toggles.MarkCollapsed(key)
	toggles.SetScroll(key, 0)
	toggles.RestoreAfterRebuild()

	if !toggles.IsExpanded(key) {
		t.Fatalf("expansion lost across rebuild")
	}
	if got := toggles.Scroll(key); got != 12 {
		t.Fatalf("scroll=%d, want 12", got)
	}
}

func TestStructuralKeysDisambiguateLabels(t *testing.T) {
	// Two sections can share display text but never a structural key.
	if ExcludedKey("#x") == NestedKey("#x") {
		t.Fatalf("excluded and nested keys must differ for the same tag")
	}
}

func TestQuickAddPrefill(t *testing.T) {
	v := Build(testHierarchy(), nil, nil, storage.DefaultStyleConfig(), Filter{})
	child := v.Sections[1].Children[0]
	if child.QuickAdd != " #trip" {
		t.Fatalf("quick-add=%q, want %q", child.QuickAdd, " #trip")
	}
}

func TestFilter(t *testing.T) {
	tasks := []storage.Task{
		{ID: 1, Text: "buy milk #0buy", Difficulty: 1, Wishlist: true},
		{ID: 2, Text: "call mom", Difficulty: 1},
	}
	h := engine.BuildHierarchy(tasks)

	v := Build(h, nil, nil, storage.DefaultStyleConfig(), Filter{WishlistOnly: true})
	for _, sec := range v.Sections {
		if sec.Key == UntaggedKey && sec.Count != 0 {
			t.Fatalf("wishlist filter leaked untagged rows: %d", sec.Count)
		}
	}

	v = Build(h, nil, nil, storage.DefaultStyleConfig(), Filter{Query: "MILK"})
	found := false
	for _, sec := range v.Sections {
		for _, r := range sec.Rows {
			if r.ID == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("case-insensitive query must match task 1")
	}
}

func TestEasterEggHoverLabel(t *testing.T) {
	cfg := storage.DefaultStyleConfig()
	cfg.Tags = map[string]storage.TagStyle{"#trip": {EasterEgg: "🔥"}}

	v := Build(testHierarchy(), nil, nil, cfg, Filter{})
	child := v.Sections[1].Children[0]
	if got := child.HoverLabel(); got != "🔥" {
		t.Fatalf("hover label=%q, want easter egg", got)
	}
	if v.Sections[2].HoverLabel() != "Other Tasks" {
		t.Fatalf("plain sections keep their label on hover")
	}
}
