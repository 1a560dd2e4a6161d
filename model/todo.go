package model

import "time"

// Todo carries its own advice fields, denormalized per task. This is a
// separate cache from DailyAdvice: task advice always regenerates, the
// daily summary is cached per (date, cat, user).
type Todo struct {
	ID          string `json:"id" gorm:"primaryKey"`
	UserID      string `json:"user_id" gorm:"index;not null"`
	Text        string `json:"text" gorm:"not null"`
	Date        string `json:"date" gorm:"size:10;index;not null"`
	Completed   bool   `json:"completed" gorm:"not null;default:false"`
	Advice      string `json:"advice"`
	AdviceCat   string `json:"advice_cat"`
	Celebration string `json:"celebration"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
