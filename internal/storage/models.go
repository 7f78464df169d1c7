package storage

import "time"

// Task is the persisted task record. Tags are never stored separately;
// they are re-derived from Text on every read.
type Task struct {
	ID           int64
	Text         string
	Difficulty   int
	CustomPoints *int
	Completed    bool
	Wishlist     bool
	Position     *int
	CreatedAt    time.Time
}

// TaskInsert carries the fields the caller controls on creation.
// ID and CreatedAt are assigned by the store.
type TaskInsert struct {
	Text         string
	Difficulty   int
	CustomPoints *int
	Completed    bool
	Wishlist     bool
	Position     *int
}

// TaskPatch is a partial update. Nil fields are left untouched.
// ClearCustomPoints removes the stored custom point value (used when a task
// leaves the custom difficulty).
type TaskPatch struct {
	Text              *string
	Difficulty        *int
	CustomPoints      *int
	ClearCustomPoints bool
	Completed         *bool
	Wishlist          *bool
	Position          *int
}

// TaskUpdate pairs a task id with its patch for batch application.
type TaskUpdate struct {
	ID    int64
	Patch TaskPatch
}

// TagStyle holds the presentation attributes for one section header.
// Zero values fall back to the defaults at render time.
type TagStyle struct {
	FontSize   string `json:"fontSize,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
	HoverColor string `json:"hoverBgColor,omitempty"`
	EasterEgg  string `json:"easterEgg,omitempty"`
	Height     string `json:"height,omitempty"`
}

// StyleConfig is the per-user section styling document.
type StyleConfig struct {
	Default TagStyle            `json:"default"`
	Tags    map[string]TagStyle `json:"customConfig,omitempty"`
}

// DefaultStyleConfig mirrors the presentation the app ships with before the
// user customizes anything.
func DefaultStyleConfig() StyleConfig {
	return StyleConfig{
		Default: TagStyle{
			FontSize:   "20px",
			FontFamily: "Arial",
			HoverColor: "rgba(255, 255, 255, 0.1)",
			Height:     "45px",
		},
		Tags: map[string]TagStyle{},
	}
}

// For resolves the style for a tag, filling gaps from the default entry.
func (c StyleConfig) For(tag string) TagStyle {
	st, ok := c.Tags[tag]
	if !ok {
		return c.Default
	}
	if st.FontSize == "" {
		st.FontSize = c.Default.FontSize
	}
	if st.FontFamily == "" {
		st.FontFamily = c.Default.FontFamily
	}
	if st.HoverColor == "" {
		st.HoverColor = c.Default.HoverColor
	}
	if st.EasterEgg == "" {
		st.EasterEgg = c.Default.EasterEgg
	}
	if st.Height == "" {
		st.Height = c.Default.Height
	}
	return st
}

// RepeatCredit is one ledger entry for points credited by completing a
// repeating task (the task itself returns to the active list).
type RepeatCredit struct {
	ID         int64
	TaskID     int64
	Points     int
	CreditedAt time.Time
}
