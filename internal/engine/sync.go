package engine

import (
	"regexp"
	"strings"

	"github.com/victordelrosal/epictaskquest/internal/storage"
)

var (
	legacyWishlistPattern = regexp.MustCompile(LegacyWishlistTag + `\b`)
	duplicateWishlistRun  = regexp.MustCompile(`(` + WishlistTag + `\s*)+`)
)

// MigrateWishlistText rewrites the legacy wishlist tag spelling to the
// current one and collapses any run of duplicate wishlist tags into a
// single occurrence. Running it on already-migrated text is a no-op.
func MigrateWishlistText(text string) string {
	out := legacyWishlistPattern.ReplaceAllString(text, WishlistTag)
	out = duplicateWishlistRun.ReplaceAllString(out, WishlistTag+" ")
	return strings.TrimSpace(out)
}

// migrationUpdates produces the batch rewriting legacy wishlist tags.
// Every rewritten task is also force-flagged as wishlist.
func migrationUpdates(tasks []storage.Task) []storage.TaskUpdate {
	var updates []storage.TaskUpdate
	for _, t := range tasks {
		if !strings.Contains(t.Text, LegacyWishlistTag) && !strings.Contains(t.Text, WishlistTag) {
			continue
		}
		newText := MigrateWishlistText(t.Text)
		if newText == t.Text {
			continue
		}
		text := newText
		flag := true
		updates = append(updates, storage.TaskUpdate{
			ID:    t.ID,
			Patch: storage.TaskPatch{Text: &text, Wishlist: &flag},
		})
	}
	return updates
}

// syncUpdates repairs tasks whose wishlist flag and tag disagree. A
// flagged task without the tag gets the tag appended; a tagged task
// without the flag gets flagged (text is authoritative in that
// direction). Normal write paths keep both in step, so this only
// corrects state reached by out-of-band edits.
func syncUpdates(tasks []storage.Task) []storage.TaskUpdate {
	var updates []storage.TaskUpdate
	for _, t := range tasks {
		tagged := HasWishlistTag(t.Text)
		switch {
		case t.Wishlist && !tagged:
			text := AppendWishlistTag(t.Text)
			updates = append(updates, storage.TaskUpdate{
				ID:    t.ID,
				Patch: storage.TaskPatch{Text: &text},
			})
		case !t.Wishlist && tagged:
			flag := true
			updates = append(updates, storage.TaskUpdate{
				ID:    t.ID,
				Patch: storage.TaskPatch{Wishlist: &flag},
			})
		}
	}
	return updates
}
