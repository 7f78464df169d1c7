// Package alarm parses reminder markers out of task text and fires
// notifications when they come due.
package alarm

import (
	"regexp"
	"strconv"
	"sync"
	"time"
)

var (
	// fullPattern is !DDMMHHMM: day, month, hour, minute.
	fullPattern = regexp.MustCompile(`!(\d{2})(\d{2})(\d{2})(\d{2})`)
	// simplePattern is !HH:MM or !HHMM, today or tomorrow.
	simplePattern = regexp.MustCompile(`!(\d{2}):?(\d{2})`)
)

// Parse extracts the alarm time from task text, relative to now. The
// full form picks the next occurrence of that calendar date (rolling to
// next year if it already passed); the simple form picks today or, if
// the time already passed, tomorrow. Returns the zero time when text
// has no valid marker.
func Parse(text string, now time.Time) time.Time {
	if m := fullPattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		hour, _ := strconv.Atoi(m[3])
		min, _ := strconv.Atoi(m[4])
		if !validClock(hour, min) || month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}
		}
		at := time.Date(now.Year(), time.Month(month), day, hour, min, 0, 0, now.Location())
		if at.Before(now) {
			at = at.AddDate(1, 0, 0)
		}
		return at
	}
	if m := simplePattern.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if !validClock(hour, min) {
			return time.Time{}
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if at.Before(now) {
			at = at.AddDate(0, 0, 1)
		}
		return at
	}
	return time.Time{}
}

func validClock(hour, min int) bool {
	return hour >= 0 && hour < 24 && min >= 0 && min < 60
}

// Scheduler holds one pending timer per task. Notify is called with the
// task text when an alarm fires; it must be safe to call from a timer
// goroutine.
type Scheduler struct {
	mu     sync.Mutex
	timers map[int64]*time.Timer
	notify func(taskID int64, text string)
}

func NewScheduler(notify func(taskID int64, text string)) *Scheduler {
	if notify == nil {
		notify = func(int64, string) {}
	}
	return &Scheduler{
		timers: make(map[int64]*time.Timer),
		notify: notify,
	}
}

// Schedule parses text and arms a timer for the task. Text without a
// marker cancels any existing alarm and arms nothing.
func (s *Scheduler) Schedule(taskID int64, text string) {
	s.Cancel(taskID)
	at := Parse(text, time.Now())
	if at.IsZero() {
		return
	}
	delay := time.Until(at)
	if delay <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[taskID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, taskID)
		s.mu.Unlock()
		s.notify(taskID, text)
	})
}

// Cancel disarms the task's pending alarm, if any.
func (s *Scheduler) Cancel(taskID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[taskID]; ok {
		t.Stop()
		delete(s.timers, taskID)
	}
}

// Stop disarms every pending alarm.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
