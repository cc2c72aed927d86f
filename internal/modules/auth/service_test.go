package auth

import (
	"context"
	"testing"
	"time"

	"github.com/coreinspect/core/internal/models"
	jwtpkg "github.com/coreinspect/core/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}, &models.RefreshTokenModel{}))
	return NewService(db)
}

func seedUser(t *testing.T, svc *Service, email, password string, active bool) *models.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)
	username := "someone"
	user := models.UserModel{
		Email:          email,
		Username:       &username,
		HashedPassword: &hashed,
		IsActive:       active,
	}
	require.NoError(t, svc.db.Create(&user).Error)
	return &user
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc, "a@b.c", "hunter22", true)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &LoginDTO{Identifier: "a@b.c", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.EqualValues(t, 3600, pair.ExpiresIn)

	claims, err := jwtpkg.Parse(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	var stored models.UserModel
	require.NoError(t, svc.db.First(&stored, "id = ?", user.ID).Error)
	assert.NotNil(t, stored.LastLogin)
}

func TestLoginByUsername(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "a@b.c", "hunter22", true)

	_, err := svc.Login(context.Background(), &LoginDTO{Identifier: "someone", Password: "hunter22"})
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "a@b.c", "hunter22", true)

	_, err := svc.Login(context.Background(), &LoginDTO{Identifier: "a@b.c", Password: "wrong"})
	assert.ErrorIs(t, err, errInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Login(context.Background(), &LoginDTO{Identifier: "nobody@b.c", Password: "x"})
	assert.ErrorIs(t, err, errInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "a@b.c", "hunter22", false)

	_, err := svc.Login(context.Background(), &LoginDTO{Identifier: "a@b.c", Password: "hunter22"})
	assert.ErrorIs(t, err, errInactiveAccount)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "a@b.c", "hunter22", true)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &LoginDTO{Identifier: "a@b.c", Password: "hunter22"})
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The presented token is spent.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, errInvalidRefresh)

	// The rotated one still works.
	_, err = svc.Refresh(ctx, next.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshExpiredToken(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc, "a@b.c", "hunter22", true)
	ctx := context.Background()

	stale := models.RefreshTokenModel{
		UserID:    user.ID,
		Token:     hashToken("deadbeef"),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, svc.db.Create(&stale).Error)

	_, err := svc.Refresh(ctx, "deadbeef")
	assert.ErrorIs(t, err, errInvalidRefresh)
}

func TestRefreshTokensStoredHashed(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "a@b.c", "hunter22", true)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &LoginDTO{Identifier: "a@b.c", Password: "hunter22"})
	require.NoError(t, err)

	var rows []models.RefreshTokenModel
	require.NoError(t, svc.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.NotEqual(t, pair.RefreshToken, rows[0].Token)
	assert.Equal(t, hashToken(pair.RefreshToken), rows[0].Token)
}

func TestLogoutRevokes(t *testing.T) {
	svc := newTestService(t)
	seedUser(t, svc, "a@b.c", "hunter22", true)
	ctx := context.Background()

	pair, err := svc.Login(ctx, &LoginDTO{Identifier: "a@b.c", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, errInvalidRefresh)

	// Unknown tokens are a no-op.
	assert.NoError(t, svc.Logout(ctx, "never-issued"))
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc, "a@b.c", "hunter22", true)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID, &PasswordResetDTO{OldPassword: "wrong", NewPassword: "longenough"})
	assert.ErrorIs(t, err, errInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, user.ID,
		&PasswordResetDTO{OldPassword: "hunter22", NewPassword: "longenough"}))

	_, err = svc.Login(ctx, &LoginDTO{Identifier: "a@b.c", Password: "longenough"})
	assert.NoError(t, err)
}
