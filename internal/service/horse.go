package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
)

var ErrHorseNotFound = repository.ErrHorseNotFound

type HorseRepository interface {
	Create(ctx context.Context, horse domain.Horse) (domain.Horse, error)
	FindByID(ctx context.Context, id uint) (domain.Horse, error)
	List(ctx context.Context, filter repository.HorseFilter, offset, limit int) ([]domain.Horse, int64, error)
	Update(ctx context.Context, horse domain.Horse) (domain.Horse, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type HorseService struct {
	repo     HorseRepository
	userRepo UserRepository
}

func NewHorseService(repo HorseRepository, userRepo UserRepository) *HorseService {
	return &HorseService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *HorseService) GetHorse(ctx context.Context, id uint) (domain.Horse, error) {
	horse, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Horse{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return horse, nil
}

func (s *HorseService) ListHorses(ctx context.Context, filter repository.HorseFilter, offset, limit int) ([]domain.Horse, int64, error) {
	horses, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return horses, total, nil
}

func (s *HorseService) CreateHorse(ctx context.Context, horse domain.Horse) (domain.Horse, error) {
	if err := s.checkOwner(ctx, horse.OwnerID); err != nil {
		return domain.Horse{}, err
	}
	horse.IsActive = true

	created, err := s.repo.Create(ctx, horse)
	if err != nil {
		return domain.Horse{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *HorseService) UpdateHorse(ctx context.Context, horse domain.Horse) (domain.Horse, error) {
	if err := s.checkOwner(ctx, horse.OwnerID); err != nil {
		return domain.Horse{}, err
	}

	updated, err := s.repo.Update(ctx, horse)
	if err != nil {
		return domain.Horse{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *HorseService) ArchiveHorse(ctx context.Context, id uint) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("s.repo.SetActive -> %w", err)
	}

	return nil
}

func (s *HorseService) checkOwner(ctx context.Context, ownerID *uint) error {
	if ownerID == nil {
		return nil
	}

	if _, err := s.userRepo.FindByID(ctx, *ownerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	return nil
}
