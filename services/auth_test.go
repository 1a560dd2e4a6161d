package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/purrday-app/purrday_api/dto"
	"github.com/purrday-app/purrday_api/model"
	"github.com/purrday-app/purrday_api/shared"
)

func newAuth(sql *SqlService) *AuthService {
	jwtSvc := &JWTService{
		AccessTokenDuration: time.Hour,
		jwtSecretKey:        "test-secret",
	}
	return &AuthService{sqlSvc: sql, jwtSvc: jwtSvc}
}

func TestRegisterCreatesLedgerWithDefaultCat(t *testing.T) {
	sql := newTestSql(t)
	svc := newAuth(sql)

	resp, err := svc.Register(dto.RegisterRequest{
		Email:    "butler@test.local",
		Username: "butler",
		Password: "SecurePass123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.UserID)

	ledger, err := sql.Ledgers().GetLedger(resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.JellyCount)
	assert.Equal(t, DefaultCat, ledger.SelectedCat)
	assert.Equal(t, `["dudu"]`, string(ledger.UnlockedCats))
}

func TestRegisterRollsBackUserWhenLedgerFails(t *testing.T) {
	sql := newTestSql(t)
	svc := newAuth(sql)

	// Break the ledger insert. The user row must roll back with it, otherwise
	// the account exists but every engagement endpoint 404s on its ledger.
	require.NoError(t, sql.Db().Migrator().DropTable(&model.Ledger{}))

	_, err := svc.Register(dto.RegisterRequest{
		Email:    "orphan@test.local",
		Username: "orphan",
		Password: "SecurePass123!",
	})
	require.Error(t, err)

	_, err = sql.Users().GetUserByEmailOrUsername("orphan@test.local")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	sql := newTestSql(t)
	svc := newAuth(sql)

	req := dto.RegisterRequest{
		Email:    "dup@test.local",
		Username: "dupone",
		Password: "SecurePass123!",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	req.Username = "duptwo"
	_, err = svc.Register(req)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestLoginRoundTrip(t *testing.T) {
	sql := newTestSql(t)
	svc := newAuth(sql)

	reg, err := svc.Register(dto.RegisterRequest{
		Email:    "login@test.local",
		Username: "loginuser",
		Password: "SecurePass123!",
	})
	require.NoError(t, err)

	// Either identifier works.
	for _, ident := range []string{"login@test.local", "loginuser"} {
		resp, err := svc.Login(dto.LoginRequest{EmailOrUsername: ident, Password: "SecurePass123!"})
		require.NoError(t, err)
		assert.Equal(t, reg.UserID, resp.UserID)
		assert.NotEmpty(t, resp.AccessToken)

		userID, err := svc.jwtSvc.VerifyJWTToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, reg.UserID, userID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	sql := newTestSql(t)
	svc := newAuth(sql)

	_, err := svc.Register(dto.RegisterRequest{
		Email:    "victim@test.local",
		Username: "victim",
		Password: "SecurePass123!",
	})
	require.NoError(t, err)

	for _, req := range []dto.LoginRequest{
		{EmailOrUsername: "victim", Password: "WrongPass123!"},
		{EmailOrUsername: "nobody", Password: "SecurePass123!"},
	} {
		_, err := svc.Login(req)
		require.Error(t, err)
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.StatusCode, "wrong password and unknown user look identical")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := &JWTService{}

	token, err := svc.ExtractTokenFromHeader("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = svc.ExtractTokenFromHeader("")
	require.Error(t, err)

	_, err = svc.ExtractTokenFromHeader("Basic abc123")
	require.Error(t, err)
}
