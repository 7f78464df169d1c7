package engine

import "github.com/victordelrosal/epictaskquest/internal/storage"

// Stats is the derived scoreboard: completed count, lifetime points,
// and the level curve position.
type Stats struct {
	Completed   int
	TotalPoints int
	Level       int
	Progress    int
}

// ComputeStats derives the scoreboard from the full task list plus the
// points banked by repeating tasks. Only completed tasks contribute
// their point value; active tasks count for nothing until done.
func ComputeStats(tasks []storage.Task, repeatCredits int) Stats {
	var s Stats
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		s.Completed++
		s.TotalPoints += taskPoints(t)
	}
	s.TotalPoints += repeatCredits
	s.Level = LevelForPoints(s.TotalPoints)
	s.Progress = ProgressWithinLevel(s.TotalPoints)
	return s
}

// Hooks receives fire-and-forget notifications when the scoreboard
// moves. Implementations must not block; the service does not wait on
// them.
type Hooks interface {
	StatIncrease(kind string)
	LevelUp(newLevel int)
	TaskAdded(id int64)
	TaskDeleted(id int64)
	TaskCompleted()
}

// NopHooks discards every notification.
type NopHooks struct{}

func (NopHooks) StatIncrease(string) {}
func (NopHooks) LevelUp(int)         {}
func (NopHooks) TaskAdded(int64)     {}
func (NopHooks) TaskDeleted(int64)   {}
func (NopHooks) TaskCompleted()      {}
