package repository

import (
	"context"
	"fmt"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository/dao"
)

var ErrHorseNotFound = dao.ErrHorseNotFound

type HorseDAO interface {
	Insert(ctx context.Context, horse dao.Horse) (dao.Horse, error)
	FindByID(ctx context.Context, id uint) (dao.Horse, error)
	List(ctx context.Context, filter dao.HorseFilter, offset, limit int) ([]dao.Horse, int64, error)
	Update(ctx context.Context, horse dao.Horse) (dao.Horse, error)
	SetActive(ctx context.Context, id uint, active bool) error
	CountActive(ctx context.Context) (int64, error)
}

type HorseFilter struct {
	BoardingType string
	OwnerID      *uint
	IsActive     *bool
}

type HorseRepository struct {
	dao HorseDAO
}

func NewHorseRepository(dao HorseDAO) *HorseRepository {
	return &HorseRepository{
		dao: dao,
	}
}

func (r *HorseRepository) Create(ctx context.Context, horse domain.Horse) (domain.Horse, error) {
	created, err := r.dao.Insert(ctx, horseDomainToDAO(horse))
	if err != nil {
		return domain.Horse{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return horseDAOToDomain(created), nil
}

func (r *HorseRepository) FindByID(ctx context.Context, id uint) (domain.Horse, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Horse{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return horseDAOToDomain(found), nil
}

func (r *HorseRepository) List(ctx context.Context, filter HorseFilter, offset, limit int) ([]domain.Horse, int64, error) {
	found, total, err := r.dao.List(ctx, dao.HorseFilter(filter), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	horses := make([]domain.Horse, len(found))
	for i, h := range found {
		horses[i] = horseDAOToDomain(h)
	}

	return horses, total, nil
}

func (r *HorseRepository) Update(ctx context.Context, horse domain.Horse) (domain.Horse, error) {
	updated, err := r.dao.Update(ctx, horseDomainToDAO(horse))
	if err != nil {
		return domain.Horse{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return horseDAOToDomain(updated), nil
}

func (r *HorseRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if err := r.dao.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("r.dao.SetActive -> %w", err)
	}

	return nil
}

func (r *HorseRepository) CountActive(ctx context.Context) (int64, error) {
	count, err := r.dao.CountActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActive -> %w", err)
	}

	return count, nil
}

func horseDomainToDAO(h domain.Horse) dao.Horse {
	return dao.Horse{
		ID:           h.ID,
		Name:         h.Name,
		Breed:        h.Breed,
		DateOfBirth:  h.DateOfBirth,
		Gender:       h.Gender,
		Color:        h.Color,
		HeightHands:  h.HeightHands,
		WeightKg:     h.WeightKg,
		BoardingType: h.BoardingType,
		MedicalNotes: h.MedicalNotes,
		SpecialNeeds: h.SpecialNeeds,
		OwnerID:      h.OwnerID,
		IsActive:     h.IsActive,
	}
}

func horseDAOToDomain(h dao.Horse) domain.Horse {
	return domain.Horse{
		ID:           h.ID,
		Name:         h.Name,
		Breed:        h.Breed,
		DateOfBirth:  h.DateOfBirth,
		Gender:       h.Gender,
		Color:        h.Color,
		HeightHands:  h.HeightHands,
		WeightKg:     h.WeightKg,
		BoardingType: h.BoardingType,
		MedicalNotes: h.MedicalNotes,
		SpecialNeeds: h.SpecialNeeds,
		OwnerID:      h.OwnerID,
		Owner:        userDAOToDomainPtr(h.Owner),
		IsActive:     h.IsActive,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

func horseDAOToDomainPtr(h *dao.Horse) *domain.Horse {
	if h == nil {
		return nil
	}
	mapped := horseDAOToDomain(*h)

	return &mapped
}
