package user

import (
	"context"

	"github.com/coreinspect/core/internal/models"
	"github.com/coreinspect/core/internal/pkg/pagination"
	"github.com/coreinspect/core/internal/repository"
	"github.com/coreinspect/core/internal/repository/filter"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserDTO struct {
	Email       string  `json:"email"    binding:"required,email"`
	Username    *string `json:"username"`
	Password    *string `json:"password" binding:"omitempty,min=8"`
	IsSuperuser bool    `json:"is_superuser"`
}

type UpdateUserDTO struct {
	Email       *string `json:"email"    binding:"omitempty,email"`
	Username    *string `json:"username"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(ctx context.Context, filters map[string]string, q pagination.Query) ([]models.UserModel, pagination.Meta, error) {
	query := s.db.WithContext(ctx).Model(&models.UserModel{})
	query = filter.Apply(query, &models.UserModel{}, filters)

	var users []models.UserModel
	meta, err := pagination.Paginate(query.Order("created_at ASC"), q, &users)
	return users, meta, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.UserModel, error) {
	return repository.Get[models.UserModel](ctx, s.db, repository.Criteria{"id": id}, true)
}

func (s *Service) Create(ctx context.Context, dto *CreateUserDTO) (*models.UserModel, error) {
	u := models.UserModel{
		Email:       dto.Email,
		Username:    dto.Username,
		IsActive:    true,
		IsSuperuser: dto.IsSuperuser,
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		u.HashedPassword = &hashed
	}
	return &u, repository.Create(ctx, s.db, &u)
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateUserDTO) (*models.UserModel, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Email != nil {
		updates["email"] = *dto.Email
	}
	if dto.Username != nil {
		updates["username"] = *dto.Username
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.IsSuperuser != nil {
		updates["is_superuser"] = *dto.IsSuperuser
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := repository.Update(ctx, s.db, u, updates); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return repository.Delete(ctx, s.db, u)
}

func (s *Service) Activate(ctx context.Context, id string) (*models.UserModel, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := repository.Update(ctx, s.db, u, map[string]interface{}{"is_active": true}); err != nil {
		return nil, err
	}
	u.IsActive = true
	return u, nil
}
