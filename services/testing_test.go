package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/purrday-app/purrday_api/shared"
)

// newTestSql opens a per-test in-memory database. The shared cache keeps one
// database per name across gorm's connection pool.
func newTestSql(t *testing.T) *SqlService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open test database")

	svc := &SqlService{db: db, driver: "sqlite", dsn: dsn}
	require.NoError(t, svc.migrate())
	svc.initRepos()

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return svc
}

// seedUser registers an account with a fresh ledger and returns its user ID.
func seedUser(t *testing.T, sql *SqlService, name string) string {
	t.Helper()

	user, err := sql.Users().CreateUser(name+"@test.local", name, "not-a-real-hash")
	require.NoError(t, err)

	_, err = sql.Ledgers().CreateLedger(user.ID, DefaultCat)
	require.NoError(t, err)

	return user.ID
}

func setJelly(t *testing.T, sql *SqlService, userID string, count int) {
	t.Helper()
	require.NoError(t, sql.Db().Table("ledgers").
		Where("user_id = ?", userID).
		Update("jelly_count", count).Error)
}

func daysAgo(n int) string {
	return shared.DateKey(time.Now().In(shared.RefLocation()).AddDate(0, 0, -n))
}

func setActivity(t *testing.T, sql *SqlService, userID, lastActivity string, streak int) {
	t.Helper()
	require.NoError(t, sql.Db().Table("ledgers").
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"last_activity_date": lastActivity,
			"login_streak":       streak,
		}).Error)
}
