package engine

import (
	"regexp"
	"strings"
)

// tagPattern matches a # followed by word characters or Hebrew letters.
// Punctuation terminates a tag, so "#work," yields "#work".
var tagPattern = regexp.MustCompile(`#[\w\x{0590}-\x{05FF}]+`)

// ExtractTags returns the distinct tags in text, in first-occurrence
// order. A task mentioning the same tag twice contributes it once. The
// result is never nil.
func ExtractTags(text string) []string {
	matches := tagPattern.FindAllString(text, -1)
	tags := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		tags = append(tags, m)
	}
	return tags
}

// IsExcluded reports whether a tag gets its own top-level section
// instead of nesting under ParentTag. ParentTag itself is neither
// excluded nor nested.
func IsExcluded(tag string) bool {
	if tag == ParentTag {
		return false
	}
	return strings.HasPrefix(tag, excludePrefixZero) || strings.HasPrefix(tag, excludePrefixUnderscore)
}

// SplitTags partitions tags into the excluded (top-level) and nested
// sets. ParentTag is dropped from both: it is synthetic and only ever
// rendered as the container for the nested set.
func SplitTags(tags []string) (excluded, nested []string) {
	excluded = make([]string, 0, len(tags))
	nested = make([]string, 0, len(tags))
	for _, t := range tags {
		if t == ParentTag {
			continue
		}
		if IsExcluded(t) {
			excluded = append(excluded, t)
		} else {
			nested = append(nested, t)
		}
	}
	return excluded, nested
}

// wishlistTagPattern removes the wishlist tag as a whole word, so a
// hypothetical "#0buyer" tag survives removal.
var wishlistTagPattern = regexp.MustCompile(WishlistTag + `\b`)

// HasWishlistTag reports whether text carries the wishlist tag.
func HasWishlistTag(text string) bool {
	return wishlistTagPattern.MatchString(text)
}

// AppendWishlistTag adds the wishlist tag to text if it is not already
// present.
func AppendWishlistTag(text string) string {
	if HasWishlistTag(text) {
		return text
	}
	return strings.TrimRight(text, " ") + " " + WishlistTag
}

// StripWishlistTag removes every occurrence of the wishlist tag and
// tidies the leftover spacing.
func StripWishlistTag(text string) string {
	out := wishlistTagPattern.ReplaceAllString(text, "")
	out = collapseSpaces(out)
	return strings.TrimSpace(out)
}

// HasRepeatTag reports whether text carries the repeat tag as a whole
// word.
var repeatTagPattern = regexp.MustCompile(RepeatTag + `\b`)

func HasRepeatTag(text string) bool {
	return repeatTagPattern.MatchString(text)
}

var multiSpace = regexp.MustCompile(`[ \t]{2,}`)

func collapseSpaces(s string) string {
	return multiSpace.ReplaceAllString(s, " ")
}
