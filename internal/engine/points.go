package engine

// pointsByDifficulty maps the fixed difficulty levels to their point
// values. Custom (6) is resolved separately.
var pointsByDifficulty = map[Difficulty]int{
	DifficultyTrivial: 5,
	DifficultyEasy:    10,
	DifficultyMedium:  15,
	DifficultyHard:    20,
	DifficultyEpic:    25,
}

// Points resolves the point value for a difficulty. For DifficultyCustom
// the stored custom value wins when positive, otherwise
// DefaultCustomPoints. Unknown difficulties fall back to the trivial
// value so corrupt rows never zero a task out.
func Points(d Difficulty, custom *int) int {
	if d == DifficultyCustom {
		if custom != nil && *custom > 0 {
			return *custom
		}
		return DefaultCustomPoints
	}
	if p, ok := pointsByDifficulty[d]; ok {
		return p
	}
	return pointsByDifficulty[DifficultyTrivial]
}

// LevelForPoints returns the level reached at the given lifetime total.
// The curve is flat: every PointsPerLevel points is one level, starting
// at level 1 with zero points.
func LevelForPoints(total int) int {
	if total < 0 {
		total = 0
	}
	return total/PointsPerLevel + 1
}

// ProgressWithinLevel returns how many points of the current level have
// been earned, in [0, PointsPerLevel).
func ProgressWithinLevel(total int) int {
	if total < 0 {
		total = 0
	}
	return total % PointsPerLevel
}
