package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
)

var (
	ErrLessonNotFound       = repository.ErrLessonNotFound
	ErrScheduleConflict     = repository.ErrScheduleConflict
	ErrNotAnInstructor      = errors.New("assigned instructor is not a trainer or admin")
	ErrLessonNotCancellable = errors.New("only scheduled lessons can be cancelled")
)

type LessonRepository interface {
	Create(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error)
	FindByID(ctx context.Context, id uint) (domain.Lesson, error)
	List(ctx context.Context, filter repository.LessonFilter, offset, limit int) ([]domain.Lesson, int64, error)
	Update(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error)
	UpdateStatus(ctx context.Context, id uint, status domain.LessonStatus) error
	Delete(ctx context.Context, id uint) error
}

type LessonHorseRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Horse, error)
}

type LessonService struct {
	repo      LessonRepository
	userRepo  UserRepository
	horseRepo LessonHorseRepository
}

func NewLessonService(repo LessonRepository, userRepo UserRepository, horseRepo LessonHorseRepository) *LessonService {
	return &LessonService{
		repo:      repo,
		userRepo:  userRepo,
		horseRepo: horseRepo,
	}
}

func (s *LessonService) GetLesson(ctx context.Context, id uint) (domain.Lesson, error) {
	lesson, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return lesson, nil
}

func (s *LessonService) ListLessons(ctx context.Context, filter repository.LessonFilter, offset, limit int) ([]domain.Lesson, int64, error) {
	lessons, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return lessons, total, nil
}

// ScheduleLesson validates the participants and books the slot. The
// instructor-overlap invariant is enforced by the repository inside
// the insert transaction; a conflict surfaces as ErrScheduleConflict.
func (s *LessonService) ScheduleLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	if err := s.checkParticipants(ctx, &lesson); err != nil {
		return domain.Lesson{}, err
	}

	lesson.Status = domain.LessonScheduled
	if lesson.PaymentStatus == "" {
		lesson.PaymentStatus = "pending"
	}

	created, err := s.repo.Create(ctx, lesson)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *LessonService) UpdateLesson(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	if err := s.checkParticipants(ctx, &lesson); err != nil {
		return domain.Lesson{}, err
	}

	updated, err := s.repo.Update(ctx, lesson)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *LessonService) CancelLesson(ctx context.Context, id uint) error {
	lesson, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if lesson.Status != domain.LessonScheduled {
		return ErrLessonNotCancellable
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.LessonCancelled); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

// SetStatus moves a lesson into any lifecycle status. Completed and
// no-show markings come through here; cancellation has its own path
// with stricter rules.
func (s *LessonService) SetStatus(ctx context.Context, id uint, status domain.LessonStatus) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

func (s *LessonService) DeleteLesson(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *LessonService) checkParticipants(ctx context.Context, lesson *domain.Lesson) error {
	instructor, err := s.userRepo.FindByID(ctx, lesson.InstructorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if !instructor.Role.IsStaff() {
		return ErrNotAnInstructor
	}

	if _, err := s.userRepo.FindByID(ctx, lesson.StudentID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	if lesson.HorseID != nil {
		if _, err := s.horseRepo.FindByID(ctx, *lesson.HorseID); err != nil {
			if errors.Is(err, repository.ErrHorseNotFound) {
				return ErrHorseNotFound
			}
			return fmt.Errorf("s.horseRepo.FindByID -> %w", err)
		}
	}

	return nil
}
