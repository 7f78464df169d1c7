package engine

// Difficulty is the 1..6 scale a task is rated on. Level 6 means the
// task carries its own custom point value.
type Difficulty int

const (
	DifficultyTrivial Difficulty = 1
	DifficultyEasy    Difficulty = 2
	DifficultyMedium  Difficulty = 3
	DifficultyHard    Difficulty = 4
	DifficultyEpic    Difficulty = 5
	DifficultyCustom  Difficulty = 6
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyTrivial && d <= DifficultyCustom
}

// DefaultDifficulty is used when user input is missing/invalid.
const DefaultDifficulty Difficulty = DifficultyTrivial

const (
	// ParentTag is the synthetic group that collects every excluded tag.
	// It can appear literally in task text; it is never treated as
	// excluded or nested itself.
	ParentTag = "#non0"

	// WishlistTag marks a task as a shopping-list item. Tag and flag are
	// kept in lockstep by the sync pass.
	WishlistTag = "#0buy"

	// LegacyWishlistTag is the retired spelling migrated to WishlistTag
	// on load.
	LegacyWishlistTag = "#shop"

	// RepeatTag marks a task that stays active after completion; its
	// points are banked in the credit ledger instead.
	RepeatTag = "#repeat"
)

// Exclusion prefixes. A tag starting with one of these is filed under
// ParentTag instead of getting a top-level section.
const (
	excludePrefixZero       = "#0"
	excludePrefixUnderscore = "#_"
)

const (
	// PointsPerLevel is the flat per-level cost of the progress curve.
	PointsPerLevel = 100

	// DefaultCustomPoints is awarded for a custom-difficulty task whose
	// stored value is missing or non-positive.
	DefaultCustomPoints = 50
)
