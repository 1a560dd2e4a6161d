package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/purrday-app/purrday_api/model"
)

// AdviceRepository persists the daily-summary cache keyed by
// (date, cat, user).
type AdviceRepository struct {
	BaseRepository
}

func NewAdviceRepository(db *gorm.DB) *AdviceRepository {
	return &AdviceRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *AdviceRepository) GetDailyAdvice(userID, date, catName string) (*model.DailyAdvice, error) {
	var advice model.DailyAdvice
	err := ds.db.Where("user_id = ? AND date = ? AND cat_name = ?", userID, date, catName).
		First(&advice).Error
	if err != nil {
		return nil, err
	}
	return &advice, nil
}

// CreateDailyAdvice inserts a cache entry. A unique-constraint violation is
// the benign lost-the-race case: the winner's row is returned instead of an
// error.
func (ds *AdviceRepository) CreateDailyAdvice(userID, date, catName, message string) (*model.DailyAdvice, error) {
	id, _ := uuid.NewV7()
	advice := &model.DailyAdvice{
		ID:        id.String(),
		Date:      date,
		CatName:   catName,
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := ds.db.Create(advice).Error; err != nil {
		if isDuplicateKey(err) {
			return ds.GetDailyAdvice(userID, date, catName)
		}
		return nil, err
	}
	return advice, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
