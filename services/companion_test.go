package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purrday-app/purrday_api/shared"
)

func newCompanion(sql *SqlService) *CompanionService {
	return &CompanionService{sqlSvc: sql}
}

func TestAdoptDebitsAndUnlocks(t *testing.T) {
	sql := newTestSql(t)
	svc := newCompanion(sql)
	userID := seedUser(t, sql, "adopter")
	setJelly(t, sql, userID, AdoptPrice)

	resp, err := svc.Adopt(userID, "coco")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.JellyCount)
	assert.Equal(t, []string{DefaultCat, "coco"}, resp.UnlockedCats)
}

func TestAdoptAlreadyUnlockedDoesNotCharge(t *testing.T) {
	sql := newTestSql(t)
	svc := newCompanion(sql)
	userID := seedUser(t, sql, "rebuyer")
	setJelly(t, sql, userID, AdoptPrice*2)

	resp, err := svc.Adopt(userID, "coco")
	require.NoError(t, err)
	require.True(t, resp.Success)

	resp, err = svc.Adopt(userID, "coco")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, ReasonAlreadyUnlocked, resp.Reason)
	assert.Equal(t, AdoptPrice, resp.JellyCount, "a repeat adopt must not debit again")
}

func TestAdoptDefaultCatIsFree(t *testing.T) {
	sql := newTestSql(t)
	svc := newCompanion(sql)
	userID := seedUser(t, sql, "freebie")

	// The default cat is already unlocked at ledger creation.
	resp, err := svc.Adopt(userID, DefaultCat)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, ReasonAlreadyUnlocked, resp.Reason)
	assert.Equal(t, 0, resp.JellyCount)
}

func TestAdoptInsufficientFunds(t *testing.T) {
	sql := newTestSql(t)
	svc := newCompanion(sql)
	userID := seedUser(t, sql, "broke")
	setJelly(t, sql, userID, AdoptPrice-1)

	resp, err := svc.Adopt(userID, "kkamnyang")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, ReasonInsufficientFunds, resp.Reason)
	assert.Equal(t, AdoptPrice, resp.Required)
	assert.Equal(t, AdoptPrice-1, resp.JellyCount)

	// The failed attempt changed nothing.
	ledger, err := sql.Ledgers().GetLedger(userID)
	require.NoError(t, err)
	assert.Equal(t, AdoptPrice-1, ledger.JellyCount)
	assert.Equal(t, `["dudu"]`, string(ledger.UnlockedCats))
}

func TestAdoptUnknownCat(t *testing.T) {
	sql := newTestSql(t)
	svc := newCompanion(sql)
	userID := seedUser(t, sql, "confused")

	_, err := svc.Adopt(userID, "tiger")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestAdoptCompareAndSetRefusesStaleWrite(t *testing.T) {
	sql := newTestSql(t)
	userID := seedUser(t, sql, "staler")
	setJelly(t, sql, userID, AdoptPrice*2)

	ledger, err := sql.Ledgers().GetLedger(userID)
	require.NoError(t, err)

	// A concurrent adopt lands between the read and the write.
	applied, err := sql.Ledgers().AdoptCat(userID, AdoptPrice, ledger.UnlockedCats, []byte(`["dudu","coco"]`))
	require.NoError(t, err)
	require.True(t, applied)

	// The stale writer still holds the old set and must be refused.
	applied, err = sql.Ledgers().AdoptCat(userID, AdoptPrice, ledger.UnlockedCats, []byte(`["dudu","kkamnyang"]`))
	require.NoError(t, err)
	assert.False(t, applied)

	updated, err := sql.Ledgers().GetLedger(userID)
	require.NoError(t, err)
	assert.Equal(t, AdoptPrice, updated.JellyCount, "only one debit may land")
}

func TestSelectCatRequiresOwnership(t *testing.T) {
	sql := newTestSql(t)
	svc := newCompanion(sql)
	userID := seedUser(t, sql, "selector")

	_, err := svc.SelectCat(userID, "coco")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)

	setJelly(t, sql, userID, AdoptPrice)
	_, err = svc.Adopt(userID, "coco")
	require.NoError(t, err)

	resp, err := svc.SelectCat(userID, "coco")
	require.NoError(t, err)
	assert.Equal(t, "coco", resp.SelectedCat)

	selected, err := svc.SelectedCat(userID)
	require.NoError(t, err)
	assert.Equal(t, "coco", selected.SelectedCat)
}

func TestSelectedCatDefaults(t *testing.T) {
	sql := newTestSql(t)
	svc := newCompanion(sql)
	userID := seedUser(t, sql, "defaulter")

	resp, err := svc.SelectedCat(userID)
	require.NoError(t, err)
	assert.Equal(t, DefaultCat, resp.SelectedCat)
}

func TestCatalogListsEveryCat(t *testing.T) {
	sql := newTestSql(t)
	svc := newCompanion(sql)

	resp, err := svc.Catalog()
	require.NoError(t, err)
	require.Len(t, resp.Cats, 3)
	assert.Equal(t, DefaultCat, resp.Cats[0].Name)
	assert.True(t, resp.Cats[0].Free)
	assert.Equal(t, AdoptPrice, resp.Cats[1].Price)
	assert.Empty(t, resp.Cats[0].ImageURL, "no object storage configured in tests")
}
