package render

import (
	"strings"

	"github.com/victordelrosal/epictaskquest/internal/engine"
	"github.com/victordelrosal/epictaskquest/internal/storage"
)

// Row is one task line inside a section.
type Row struct {
	ID         int64
	Text       string
	Points     int
	Difficulty int
	Wishlist   bool
	Completed  bool
}

// Section is one collapsible group in the view tree. Visible reflects
// both the section's own toggle and its parent's: a child of a
// collapsed parent is hidden regardless of its stored state, and
// re-expanding the parent re-evaluates each child independently.
type Section struct {
	Key          SectionKey
	Label        string
	Count        int
	Nested       bool
	Expanded     bool
	Visible      bool
	ScrollOffset int
	Style        storage.TagStyle
	// QuickAdd is the input prefill for adding a task straight into
	// this section's tag.
	QuickAdd string
	Rows     []Row
	Children []Section
}

// HoverLabel is the header text shown on hover: the style config's
// easter egg glyph when one is set, the plain label otherwise.
func (s Section) HoverLabel() string {
	if s.Style.EasterEgg != "" {
		return s.Style.EasterEgg
	}
	return s.Label
}

// View is the fully resolved section tree plus the completed list.
type View struct {
	Sections  []Section
	Completed []Row
}

// Filter narrows the rendered tasks. Query matches case-insensitively
// against task text; WishlistOnly keeps only cart items.
type Filter struct {
	Query        string
	WishlistOnly bool
}

func (f Filter) matches(t storage.Task) bool {
	if f.WishlistOnly && !t.Wishlist {
		return false
	}
	if f.Query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Text), strings.ToLower(f.Query))
}

const untaggedLabel = "Other Tasks"

// Build resolves the hierarchy into the display tree: excluded tags
// first, then the parent section holding the nested tags, then the
// untagged catch-all. The order is fixed regardless of toggle state. A
// nil toggle store renders everything expanded.
func Build(h engine.Hierarchy, completed []storage.Task, toggles *ToggleStore, cfg storage.StyleConfig, filter Filter) View {
	var v View

	for _, g := range h.Excluded {
		sec := buildTagSection(g, ExcludedKey(g.Tag), false, toggles, cfg, filter)
		sec.Visible = sec.Expanded
		v.Sections = append(v.Sections, sec)
	}

	parent := Section{
		Key:      ParentKey,
		Label:    engine.ParentTag,
		Expanded: expanded(toggles, ParentKey),
		Style:    cfg.For(engine.ParentTag),
	}
	if toggles != nil {
		parent.ScrollOffset = toggles.Scroll(ParentKey)
	}
	for _, g := range h.Nested {
		child := buildTagSection(g, NestedKey(g.Tag), true, toggles, cfg, filter)
		// Child visibility is gated by the parent but its own stored
		// state is preserved for when the parent reopens.
		child.Visible = parent.Expanded && child.Expanded
		parent.Children = append(parent.Children, child)
	}
	parent.Count = len(parent.Children)
	parent.Visible = parent.Expanded
	v.Sections = append(v.Sections, parent)

	untagged := Section{
		Key:      UntaggedKey,
		Label:    untaggedLabel,
		Expanded: expanded(toggles, UntaggedKey),
		Style:    cfg.Default,
	}
	if toggles != nil {
		untagged.ScrollOffset = toggles.Scroll(UntaggedKey)
	}
	for _, t := range h.Untagged {
		if !filter.matches(t) {
			continue
		}
		untagged.Rows = append(untagged.Rows, taskRow(t))
	}
	untagged.Count = len(untagged.Rows)
	untagged.Visible = untagged.Expanded
	v.Sections = append(v.Sections, untagged)

	for _, t := range completed {
		if !filter.matches(t) {
			continue
		}
		v.Completed = append(v.Completed, taskRow(t))
	}
	return v
}

func buildTagSection(g engine.TagGroup, key SectionKey, nested bool, toggles *ToggleStore, cfg storage.StyleConfig, filter Filter) Section {
	sec := Section{
		Key:      key,
		Label:    g.Tag,
		Nested:   nested,
		Expanded: expanded(toggles, key),
		Style:    cfg.For(g.Tag),
		QuickAdd: " " + g.Tag,
	}
	if toggles != nil {
		sec.ScrollOffset = toggles.Scroll(key)
	}
	for _, t := range g.Tasks {
		if !filter.matches(t) {
			continue
		}
		sec.Rows = append(sec.Rows, taskRow(t))
	}
	sec.Count = len(sec.Rows)
	return sec
}

func taskRow(t storage.Task) Row {
	return Row{
		ID:         t.ID,
		Text:       t.Text,
		Points:     engine.Points(engine.Difficulty(t.Difficulty), t.CustomPoints),
		Difficulty: t.Difficulty,
		Wishlist:   t.Wishlist,
		Completed:  t.Completed,
	}
}

func expanded(toggles *ToggleStore, key SectionKey) bool {
	if toggles == nil {
		return true
	}
	return toggles.IsExpanded(key)
}
