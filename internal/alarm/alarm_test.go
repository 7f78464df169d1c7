package alarm

import (
	"testing"
	"time"
)

func TestParseFullPattern(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	at := Parse("dentist !15061030", now)
	want := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Fatalf("Parse=%v, want %v", at, want)
	}

	// A date already past rolls to next year.
	at = Parse("party !01011030", now)
	if at.Year() != 2026 {
		t.Fatalf("past date year=%d, want 2026", at.Year())
	}
}

func TestParseSimplePattern(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	at := Parse("standup !15:30", now)
	want := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Fatalf("Parse=%v, want %v", at, want)
	}

	// Colon is optional.
	if got := Parse("standup !1530", now); !got.Equal(want) {
		t.Fatalf("Parse compact=%v, want %v", got, want)
	}

	// A time already past today lands tomorrow.
	at = Parse("walk !08:00", now)
	if at.Day() != 2 {
		t.Fatalf("past time day=%d, want 2", at.Day())
	}
}

func TestParseInvalid(t *testing.T) {
	now := time.Now()
	if got := Parse("no marker here", now); !got.IsZero() {
		t.Fatalf("Parse=%v, want zero time", got)
	}
	if got := Parse("bad clock !99:99", now); !got.IsZero() {
		t.Fatalf("invalid clock=%v, want zero time", got)
	}
}

func TestSchedulerCancel(t *testing.T) {
	fired := make(chan int64, 1)
	s := NewScheduler(func(id int64, text string) { fired <- id })
	defer s.Stop()

	// Minute resolution means the parsed time lands either later today
	// or tomorrow; either way a timer is armed and Cancel must disarm it.
	future := time.Now().Add(2 * time.Minute)
	s.Schedule(7, "ping !"+future.Format("15:04"))
	s.Cancel(7)
	select {
	case id := <-fired:
		t.Fatalf("cancelled alarm fired: %d", id)
	case <-time.After(100 * time.Millisecond):
	}
}
