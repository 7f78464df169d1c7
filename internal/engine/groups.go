package engine

import (
	"sort"

	"github.com/victordelrosal/epictaskquest/internal/storage"
)

// TagGroup is one tag's bucket of active tasks, ordered for display.
type TagGroup struct {
	Tag   string
	Tasks []storage.Task
}

// Hierarchy is the full grouped view of the active tasks: excluded
// tags as independent top-level sections, every other tag nested under
// the synthetic parent, and the tasks with no tags at all.
type Hierarchy struct {
	// Excluded groups render as their own top-level sections, before
	// the parent.
	Excluded []TagGroup
	// Nested groups render as child sections inside the ParentTag
	// section.
	Nested []TagGroup
	// Untagged holds active tasks with no tags, shown in a catch-all
	// section after the parent.
	Untagged []storage.Task
}

// GroupTasks buckets active tasks by every tag they carry. A task with
// three tags appears in all three groups. Within a group tasks are
// ordered by descending point value; ties keep insertion order, so two
// equal tasks stay in creation order.
func GroupTasks(tasks []storage.Task) map[string][]storage.Task {
	groups := make(map[string][]storage.Task)
	for _, t := range tasks {
		for _, tag := range ExtractTags(t.Text) {
			if tag == ParentTag {
				continue
			}
			groups[tag] = append(groups[tag], t)
		}
	}
	for tag := range groups {
		sortByPointsDesc(groups[tag])
	}
	return groups
}

// BuildHierarchy classifies grouped tasks into the two-level display
// structure. Excluded and nested groups are each ordered
// lexicographically by tag so rebuilds are deterministic; untagged
// tasks sort by descending points like any group.
func BuildHierarchy(tasks []storage.Task) Hierarchy {
	groups := GroupTasks(tasks)

	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var h Hierarchy
	for _, tag := range tags {
		g := TagGroup{Tag: tag, Tasks: groups[tag]}
		if IsExcluded(tag) {
			h.Excluded = append(h.Excluded, g)
		} else {
			h.Nested = append(h.Nested, g)
		}
	}

	for _, t := range tasks {
		if len(ExtractTags(t.Text)) == 0 {
			h.Untagged = append(h.Untagged, t)
		}
	}
	sortByPointsDesc(h.Untagged)
	return h
}

func sortByPointsDesc(tasks []storage.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return taskPoints(tasks[i]) > taskPoints(tasks[j])
	})
}

func taskPoints(t storage.Task) int {
	return Points(Difficulty(t.Difficulty), t.CustomPoints)
}
