package model

import "time"

// DailyAdvice caches one generated daily-summary message per
// (date, cat, user) triple. The unique index is what makes generation
// at-most-once: a losing concurrent insert hits the constraint and
// re-reads the winner's row.
type DailyAdvice struct {
	ID      string `json:"id" gorm:"primaryKey"`
	Date    string `json:"date" gorm:"size:10;not null;uniqueIndex:idx_advice_date_cat_user"`
	CatName string `json:"cat_name" gorm:"not null;uniqueIndex:idx_advice_date_cat_user"`
	UserID  string `json:"user_id" gorm:"not null;uniqueIndex:idx_advice_date_cat_user"`
	Message string `json:"message" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
}
