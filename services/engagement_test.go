package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purrday-app/purrday_api/model"
	"github.com/purrday-app/purrday_api/shared"
)

func newEngagement(sql *SqlService) *EngagementService {
	return &EngagementService{sqlSvc: sql}
}

func TestClaimRewardGrantsOncePerDay(t *testing.T) {
	sql := newTestSql(t)
	svc := newEngagement(sql)
	userID := seedUser(t, sql, "claimer")

	granted, ledger, err := svc.ClaimReward(userID, shared.MoodGood)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 1, ledger.JellyCount)
	assert.Equal(t, 1, ledger.LoginStreak)
	require.NotNil(t, ledger.LastJellyDate)
	assert.Equal(t, shared.Today(), *ledger.LastJellyDate)

	granted, ledger, err = svc.ClaimReward(userID, shared.MoodGood)
	require.NoError(t, err)
	assert.False(t, granted, "second claim on the same day must not grant")
	assert.Equal(t, 1, ledger.JellyCount, "balance must not change on a duplicate claim")
}

func TestClaimRewardStorageGuardWinsRace(t *testing.T) {
	sql := newTestSql(t)
	userID := seedUser(t, sql, "racer")

	// Two callers both passed the application-tier check; only the first
	// conditional update may apply.
	today := shared.Today()
	first, err := sql.Ledgers().ClaimJelly(userID, today, 1)
	require.NoError(t, err)
	second, err := sql.Ledgers().ClaimJelly(userID, today, 1)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)

	ledger, err := sql.Ledgers().GetLedger(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.JellyCount)
}

func TestClaimRewardContinuesStreak(t *testing.T) {
	sql := newTestSql(t)
	svc := newEngagement(sql)
	userID := seedUser(t, sql, "streaker")
	setActivity(t, sql, userID, daysAgo(1), 3)

	granted, ledger, err := svc.ClaimReward(userID, "")
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 4, ledger.LoginStreak, "a one-day gap continues the streak")
}

func TestClaimRewardResetsStreakAfterGap(t *testing.T) {
	sql := newTestSql(t)
	svc := newEngagement(sql)
	userID := seedUser(t, sql, "lapsed")
	setActivity(t, sql, userID, daysAgo(5), 7)

	granted, ledger, err := svc.ClaimReward(userID, "")
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 1, ledger.LoginStreak, "a multi-day gap resets the streak")
}

func TestCheckEligibilityFlipsAfterClaim(t *testing.T) {
	sql := newTestSql(t)
	svc := newEngagement(sql)
	userID := seedUser(t, sql, "checker")

	status, err := svc.CheckEligibility(userID)
	require.NoError(t, err)
	assert.True(t, status.CanReceive)

	_, _, err = svc.ClaimReward(userID, "")
	require.NoError(t, err)

	status, err = svc.CheckEligibility(userID)
	require.NoError(t, err)
	assert.False(t, status.CanReceive)
}

func TestCheckEligibilityUnknownUser(t *testing.T) {
	sql := newTestSql(t)
	svc := newEngagement(sql)

	_, err := svc.CheckEligibility("no-such-user")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestTrackLoginDoesNotGrantJelly(t *testing.T) {
	sql := newTestSql(t)
	svc := newEngagement(sql)
	userID := seedUser(t, sql, "tracker")
	setActivity(t, sql, userID, daysAgo(1), 2)

	resp, err := svc.TrackLogin(userID)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.LoginStreak)

	ledger, err := sql.Ledgers().GetLedger(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.JellyCount)
	assert.Nil(t, ledger.LastJellyDate, "login tracking must not stamp the reward date")

	// Jelly stays claimable after tracking.
	status, err := svc.CheckEligibility(userID)
	require.NoError(t, err)
	assert.True(t, status.CanReceive)
}

func TestTrackLoginSameDayKeepsStreak(t *testing.T) {
	sql := newTestSql(t)
	svc := newEngagement(sql)
	userID := seedUser(t, sql, "sameday")
	setActivity(t, sql, userID, shared.Today(), 4)

	resp, err := svc.TrackLogin(userID)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.LoginStreak)
}

func TestClaimRewardRecordsMoodOnce(t *testing.T) {
	sql := newTestSql(t)
	svc := newEngagement(sql)
	userID := seedUser(t, sql, "moody")

	_, _, err := svc.ClaimReward(userID, shared.MoodBad)
	require.NoError(t, err)

	// The duplicate claim carries a different mood; the first entry wins.
	_, _, err = svc.ClaimReward(userID, shared.MoodGood)
	require.NoError(t, err)

	var entries []model.MoodEntry
	require.NoError(t, sql.Db().Where("user_id = ?", userID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, shared.MoodBad, entries[0].Mood)
	assert.Equal(t, shared.Today(), entries[0].Date)
}

func TestMoodHistoryNewestFirst(t *testing.T) {
	sql := newTestSql(t)
	svc := newEngagement(sql)
	userID := seedUser(t, sql, "historian")

	for _, n := range []int{3, 1, 2} {
		require.NoError(t, sql.Ledgers().CreateMoodEntry(userID, daysAgo(n), shared.MoodNeutral))
	}

	resp, err := svc.MoodHistory(userID, 2)
	require.NoError(t, err)
	require.Len(t, resp.Moods, 2)
	assert.Equal(t, daysAgo(1), resp.Moods[0].Date)
	assert.Equal(t, daysAgo(2), resp.Moods[1].Date)
}

func TestGetJelly(t *testing.T) {
	sql := newTestSql(t)
	svc := newEngagement(sql)
	userID := seedUser(t, sql, "balance")
	setJelly(t, sql, userID, 12)

	resp, err := svc.GetJelly(userID)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.JellyCount)
	assert.Nil(t, resp.LastJellyDate)
}
