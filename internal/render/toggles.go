package render

import "sync"

// SectionKey identifies a section structurally rather than by its
// display label, so two sections that happen to render the same text
// keep independent toggle state.
type SectionKey string

// ParentKey is the synthetic parent section; UntaggedKey the catch-all
// section for tasks with no tags.
const (
	ParentKey   SectionKey = "parent"
	UntaggedKey SectionKey = "untagged"
)

// ExcludedKey keys a top-level excluded-tag section.
func ExcludedKey(tag string) SectionKey { return SectionKey("excluded:" + tag) }

// NestedKey keys a tag section nested under the parent.
func NestedKey(tag string) SectionKey { return SectionKey("nested:" + tag) }

// ToggleStore remembers which sections are expanded and their scroll
// offsets across view rebuilds. A rebuild with an unchanged section set
// must be invisible to the user: expansion and scroll survive.
type ToggleStore struct {
	mu       sync.RWMutex
	expanded map[SectionKey]bool
	scroll   map[SectionKey]int

	snapExpanded map[SectionKey]bool
	snapScroll   map[SectionKey]int
}

func NewToggleStore() *ToggleStore {
	return &ToggleStore{
		expanded: make(map[SectionKey]bool),
		scroll:   make(map[SectionKey]int),
	}
}

// MarkExpanded records a section as open.
func (ts *ToggleStore) MarkExpanded(key SectionKey) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.expanded[key] = true
}

// MarkCollapsed records a section as closed.
func (ts *ToggleStore) MarkCollapsed(key SectionKey) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.expanded[key] = false
}

// Toggle flips a section and reports the new state.
func (ts *ToggleStore) Toggle(key SectionKey) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.expanded[key] = !ts.expanded[key]
	return ts.expanded[key]
}

// IsExpanded reports whether a section is open. Unknown sections start
// collapsed.
func (ts *ToggleStore) IsExpanded(key SectionKey) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.expanded[key]
}

// SetScroll stores a section's scroll offset.
func (ts *ToggleStore) SetScroll(key SectionKey, offset int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.scroll[key] = offset
}

// Scroll returns a section's stored scroll offset, zero if none.
func (ts *ToggleStore) Scroll(key SectionKey) int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.scroll[key]
}

// SnapshotBeforeRebuild captures the current expand and scroll state so
// a full rebuild can restore it.
func (ts *ToggleStore) SnapshotBeforeRebuild() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.snapExpanded = make(map[SectionKey]bool, len(ts.expanded))
	for k, v := range ts.expanded {
		ts.snapExpanded[k] = v
	}
	ts.snapScroll = make(map[SectionKey]int, len(ts.scroll))
	for k, v := range ts.scroll {
		ts.snapScroll[k] = v
	}
}

// RestoreAfterRebuild re-applies the captured state. Sections created
// since the snapshot keep whatever state they accumulated in between.
func (ts *ToggleStore) RestoreAfterRebuild() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.snapExpanded == nil {
		return
	}
	for k, v := range ts.snapExpanded {
		ts.expanded[k] = v
	}
	for k, v := range ts.snapScroll {
		ts.scroll[k] = v
	}
	ts.snapExpanded = nil
	ts.snapScroll = nil
}
