package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/coreinspect/core/internal/models"
	jwtpkg "github.com/coreinspect/core/internal/pkg/jwt"
	"github.com/coreinspect/core/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

var (
	errInvalidCredentials = errors.New("invalid credentials")
	errInactiveAccount    = errors.New("account is inactive")
	errInvalidRefresh     = errors.New("refresh token invalid or expired")
)

type LoginDTO struct {
	Identifier string `json:"identifier" binding:"required"` // email or username
	Password   string `json:"password"   binding:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type PasswordResetDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// TokenPair is the issued access/refresh token set.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login authenticates by email or username and issues a token pair.
func (s *Service) Login(ctx context.Context, dto *LoginDTO) (*TokenPair, error) {
	user, err := s.findByIdentifier(ctx, dto.Identifier)
	if err != nil {
		return nil, err
	}
	if user == nil || user.HashedPassword == nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(dto.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	if !user.IsActive {
		return nil, errInactiveAccount
	}

	now := time.Now()
	if err := repository.Update(ctx, s.db, user, map[string]interface{}{"last_login": now}); err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a fresh
// pair is issued.
func (s *Service) Refresh(ctx context.Context, token string) (*TokenPair, error) {
	row, err := repository.Get[models.RefreshTokenModel](ctx, s.db,
		repository.Criteria{"token": hashToken(token)}, false)
	if err != nil {
		return nil, err
	}
	if row == nil || row.IsRevoked || row.ExpiresAt.Before(time.Now()) {
		return nil, errInvalidRefresh
	}

	user, err := repository.Get[models.UserModel](ctx, s.db, repository.Criteria{"id": row.UserID}, true)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errInactiveAccount
	}

	if err := repository.Update(ctx, s.db, row, map[string]interface{}{"is_revoked": true}); err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

// Logout revokes the presented refresh token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	row, err := repository.Get[models.RefreshTokenModel](ctx, s.db,
		repository.Criteria{"token": hashToken(token)}, false)
	if err != nil || row == nil {
		return err
	}
	return repository.Update(ctx, s.db, row, map[string]interface{}{"is_revoked": true})
}

// ChangePassword verifies the old password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID string, dto *PasswordResetDTO) error {
	user, err := repository.Get[models.UserModel](ctx, s.db, repository.Criteria{"id": userID}, true)
	if err != nil {
		return err
	}
	if user.HashedPassword == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(dto.OldPassword)) != nil {
		return errInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return repository.Update(ctx, s.db, user, map[string]interface{}{"hashed_password": string(hash)})
}

func (s *Service) issue(ctx context.Context, user *models.UserModel) (*TokenPair, error) {
	access, err := jwtpkg.Sign(user.ID, user.IsSuperuser, accessTokenTTL)
	if err != nil {
		return nil, err
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	// Only the digest is persisted; a leaked table cannot be replayed.
	raw := hex.EncodeToString(b)
	refresh := models.RefreshTokenModel{
		UserID:    user.ID,
		Token:     hashToken(raw),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := repository.Create(ctx, s.db, &refresh); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: raw,
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *Service) findByIdentifier(ctx context.Context, identifier string) (*models.UserModel, error) {
	user, err := repository.Get[models.UserModel](ctx, s.db, repository.Criteria{"email": identifier}, false)
	if err != nil || user != nil {
		return user, err
	}
	return repository.Get[models.UserModel](ctx, s.db, repository.Criteria{"username": identifier}, false)
}
