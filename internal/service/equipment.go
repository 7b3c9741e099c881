package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
)

var ErrEquipmentNotFound = repository.ErrEquipmentNotFound

type EquipmentRepository interface {
	Create(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error)
	FindByID(ctx context.Context, id uint) (domain.Equipment, error)
	List(ctx context.Context, filter repository.EquipmentFilter, offset, limit int) ([]domain.Equipment, int64, error)
	Update(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type EquipmentService struct {
	repo      EquipmentRepository
	horseRepo LessonHorseRepository
}

func NewEquipmentService(repo EquipmentRepository, horseRepo LessonHorseRepository) *EquipmentService {
	return &EquipmentService{
		repo:      repo,
		horseRepo: horseRepo,
	}
}

func (s *EquipmentService) GetEquipment(ctx context.Context, id uint) (domain.Equipment, error) {
	equipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return equipment, nil
}

func (s *EquipmentService) ListEquipment(ctx context.Context, filter repository.EquipmentFilter, offset, limit int) ([]domain.Equipment, int64, error) {
	items, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return items, total, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error) {
	if err := s.checkHorse(ctx, equipment.HorseID); err != nil {
		return domain.Equipment{}, err
	}
	equipment.IsActive = true
	if equipment.Quantity == 0 {
		equipment.Quantity = 1
	}

	created, err := s.repo.Create(ctx, equipment)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error) {
	if err := s.checkHorse(ctx, equipment.HorseID); err != nil {
		return domain.Equipment{}, err
	}

	updated, err := s.repo.Update(ctx, equipment)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EquipmentService) ArchiveEquipment(ctx context.Context, id uint) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EquipmentService) checkHorse(ctx context.Context, horseID *uint) error {
	if horseID == nil {
		return nil
	}

	if _, err := s.horseRepo.FindByID(ctx, *horseID); err != nil {
		if errors.Is(err, repository.ErrHorseNotFound) {
			return ErrHorseNotFound
		}
		return fmt.Errorf("s.horseRepo.FindByID -> %w", err)
	}

	return nil
}
