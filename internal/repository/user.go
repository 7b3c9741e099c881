package repository

import (
	"context"
	"fmt"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrLastActiveAdmin = dao.ErrLastActiveAdmin
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	List(ctx context.Context, filter dao.UserFilter, offset, limit int) ([]dao.User, int64, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type UserFilter struct {
	Role     string
	IsActive *bool
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, userDomainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userDAOToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userDAOToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return userDAOToDomain(found), nil
}

func (r *UserRepository) List(ctx context.Context, filter UserFilter, offset, limit int) ([]domain.User, int64, error) {
	found, total, err := r.dao.List(ctx, dao.UserFilter(filter), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	users := make([]domain.User, len(found))
	for i, u := range found {
		users[i] = userDAOToDomain(u)
	}

	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, userDomainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return userDAOToDomain(updated), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	if err := r.dao.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if err := r.dao.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("r.dao.SetActive -> %w", err)
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func userDomainToDAO(u domain.User) dao.User {
	return dao.User{
		ID:               u.ID,
		Email:            u.Email,
		Password:         u.Password,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Phone:            u.Phone,
		Role:             string(u.Role),
		MembershipType:   u.MembershipType,
		EmergencyContact: u.EmergencyContact,
		IsActive:         u.IsActive,
	}
}

func userDAOToDomain(u dao.User) domain.User {
	return domain.User{
		ID:               u.ID,
		Email:            u.Email,
		Password:         u.Password,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Phone:            u.Phone,
		Role:             domain.Role(u.Role),
		MembershipType:   u.MembershipType,
		EmergencyContact: u.EmergencyContact,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func userDAOToDomainPtr(u *dao.User) *domain.User {
	if u == nil {
		return nil
	}
	mapped := userDAOToDomain(*u)

	return &mapped
}
