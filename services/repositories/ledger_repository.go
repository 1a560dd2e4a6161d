package repositories

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/purrday-app/purrday_api/model"
)

// LedgerRepository owns the per-user engagement row. All daily-idempotency
// decisions are expressed as guarded updates here, never as application-tier
// read-then-write, so concurrent duplicate requests cannot double-grant.
type LedgerRepository struct {
	BaseRepository
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *LedgerRepository) GetLedger(userID string) (*model.Ledger, error) {
	var ledger model.Ledger
	if err := ds.db.Where("user_id = ?", userID).First(&ledger).Error; err != nil {
		return nil, err
	}
	return &ledger, nil
}

func (ds *LedgerRepository) CreateLedger(userID, defaultCat string) (*model.Ledger, error) {
	id, _ := uuid.NewV7()
	cats, _ := json.Marshal([]string{defaultCat})
	ledger := &model.Ledger{
		ID:           id.String(),
		UserID:       userID,
		JellyCount:   0,
		LoginStreak:  0,
		UnlockedCats: cats,
		SelectedCat:  defaultCat,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := ds.db.Create(ledger).Error; err != nil {
		return nil, err
	}
	return ledger, nil
}

// ClaimJelly grants today's reward at most once. The WHERE clause carries the
// "not yet claimed today" check so the increment and the date stamp land in a
// single conditional update; RowsAffected == 0 means another request already
// claimed.
func (ds *LedgerRepository) ClaimJelly(userID, today string, newStreak int) (bool, error) {
	res := ds.db.Model(&model.Ledger{}).
		Where("user_id = ? AND (last_jelly_date IS NULL OR last_jelly_date <> ?)", userID, today).
		Updates(map[string]interface{}{
			"jelly_count":        gorm.Expr("jelly_count + 1"),
			"last_jelly_date":    today,
			"last_activity_date": today,
			"login_streak":       newStreak,
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// TrackActivity updates streak bookkeeping without touching jelly. Concurrent
// duplicates compute the same target values, so no guard is needed beyond the
// row match.
func (ds *LedgerRepository) TrackActivity(userID, today string, newStreak int) error {
	return ds.db.Model(&model.Ledger{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"last_activity_date": today,
			"login_streak":       newStreak,
			"updated_at":         time.Now(),
		}).Error
}

// AdoptCat debits the price and appends to the unlocked set in one
// compare-and-set: the update only applies if the balance still covers the
// price and the set is unchanged since it was read. RowsAffected == 0 tells
// the caller to re-read and re-evaluate.
func (ds *LedgerRepository) AdoptCat(userID string, price int, oldCats, newCats json.RawMessage) (bool, error) {
	res := ds.db.Model(&model.Ledger{}).
		Where("user_id = ? AND jelly_count >= ? AND unlocked_cats = ?", userID, price, string(oldCats)).
		Updates(map[string]interface{}{
			"jelly_count":   gorm.Expr("jelly_count - ?", price),
			"unlocked_cats": string(newCats),
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (ds *LedgerRepository) SetSelectedCat(userID, catName string) error {
	return ds.db.Model(&model.Ledger{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"selected_cat": catName,
			"updated_at":   time.Now(),
		}).Error
}

func (ds *LedgerRepository) CreateMoodEntry(userID, date, mood string) error {
	id, _ := uuid.NewV7()
	entry := &model.MoodEntry{
		ID:        id.String(),
		UserID:    userID,
		Date:      date,
		Mood:      mood,
		CreatedAt: time.Now(),
	}
	return ds.db.Create(entry).Error
}

func (ds *LedgerRepository) ListMoodEntries(userID string, limit int) ([]model.MoodEntry, error) {
	var entries []model.MoodEntry
	q := ds.db.Where("user_id = ?", userID).Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
