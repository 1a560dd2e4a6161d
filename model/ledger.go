package model

import (
	"encoding/json"
	"time"
)

// Ledger is the per-user engagement record: jelly balance, daily reward
// bookkeeping, login streak and the companion collection. One row per user.
type Ledger struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null"`

	JellyCount int `json:"jelly_count" gorm:"not null;default:0"`

	// Date keys (YYYY-MM-DD in the reference timezone). LastJellyDate gates
	// the daily reward; LastActivityDate drives the login streak. They are
	// deliberately independent signals.
	LastJellyDate    *string `json:"last_jelly_date" gorm:"size:10"`
	LastActivityDate *string `json:"last_activity_date" gorm:"size:10"`

	LoginStreak int `json:"login_streak" gorm:"not null;default:0"`

	// Append-only JSON array of cat names. Always contains the free default.
	UnlockedCats json.RawMessage `json:"unlocked_cats" gorm:"not null"`
	SelectedCat  string          `json:"selected_cat" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MoodEntry is an immutable mood check-in, at most one per user per day.
type MoodEntry struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_mood_user_date"`
	Date      string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_mood_user_date"`
	Mood      string    `json:"mood" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
