package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
)

var ErrLastActiveAdmin = repository.ErrLastActiveAdmin

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	List(ctx context.Context, filter repository.UserFilter, offset, limit int) ([]domain.User, int64, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter, offset, limit int) ([]domain.User, int64, error) {
	users, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return users, total, nil
}

// CreateUser is the admin path: unlike self-registration it accepts
// any role.
func (s *UserService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)
	user.IsActive = true
	if user.MembershipType == "" {
		user.MembershipType = "none"
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id uint, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

// ArchiveUser soft-deletes. The repository rejects the mutation when
// it would deactivate the last active admin.
func (s *UserService) ArchiveUser(ctx context.Context, id uint) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return nil
}

func (s *UserService) RestoreUser(ctx context.Context, id uint) error {
	if err := s.repo.SetActive(ctx, id, true); err != nil {
		return fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
