package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository/dao"
)

var (
	ErrLessonNotFound   = dao.ErrLessonNotFound
	ErrScheduleConflict = dao.ErrScheduleConflict
)

type LessonDAO interface {
	Insert(ctx context.Context, lesson dao.Lesson) (dao.Lesson, error)
	FindByID(ctx context.Context, id uint) (dao.Lesson, error)
	List(ctx context.Context, filter dao.LessonFilter, offset, limit int) ([]dao.Lesson, int64, error)
	Update(ctx context.Context, lesson dao.Lesson) (dao.Lesson, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountScheduledBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type LessonFilter struct {
	InstructorID *uint
	StudentID    *uint
	Status       string
	From         *time.Time
	To           *time.Time
}

type LessonRepository struct {
	dao LessonDAO
}

func NewLessonRepository(dao LessonDAO) *LessonRepository {
	return &LessonRepository{
		dao: dao,
	}
}

func (r *LessonRepository) Create(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	created, err := r.dao.Insert(ctx, lessonDomainToDAO(lesson))
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return lessonDAOToDomain(created), nil
}

func (r *LessonRepository) FindByID(ctx context.Context, id uint) (domain.Lesson, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return lessonDAOToDomain(found), nil
}

func (r *LessonRepository) List(ctx context.Context, filter LessonFilter, offset, limit int) ([]domain.Lesson, int64, error) {
	found, total, err := r.dao.List(ctx, dao.LessonFilter(filter), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	lessons := make([]domain.Lesson, len(found))
	for i, l := range found {
		lessons[i] = lessonDAOToDomain(l)
	}

	return lessons, total, nil
}

func (r *LessonRepository) Update(ctx context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	updated, err := r.dao.Update(ctx, lessonDomainToDAO(lesson))
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return lessonDAOToDomain(updated), nil
}

func (r *LessonRepository) UpdateStatus(ctx context.Context, id uint, status domain.LessonStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *LessonRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *LessonRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := r.dao.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return counts, nil
}

func (r *LessonRepository) CountScheduledBetween(ctx context.Context, from, to time.Time) (int64, error) {
	count, err := r.dao.CountScheduledBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountScheduledBetween -> %w", err)
	}

	return count, nil
}

func lessonDomainToDAO(l domain.Lesson) dao.Lesson {
	return dao.Lesson{
		ID:              l.ID,
		InstructorID:    l.InstructorID,
		StudentID:       l.StudentID,
		HorseID:         l.HorseID,
		ScheduledAt:     l.ScheduledAt,
		DurationMinutes: l.DurationMinutes,
		LessonType:      l.LessonType,
		Discipline:      l.Discipline,
		Status:          string(l.Status),
		PaymentStatus:   l.PaymentStatus,
		Price:           l.Price,
		Notes:           l.Notes,
	}
}

func lessonDAOToDomain(l dao.Lesson) domain.Lesson {
	return domain.Lesson{
		ID:              l.ID,
		InstructorID:    l.InstructorID,
		Instructor:      userDAOToDomainPtr(l.Instructor),
		StudentID:       l.StudentID,
		Student:         userDAOToDomainPtr(l.Student),
		HorseID:         l.HorseID,
		Horse:           horseDAOToDomainPtr(l.Horse),
		ScheduledAt:     l.ScheduledAt,
		DurationMinutes: l.DurationMinutes,
		LessonType:      l.LessonType,
		Discipline:      l.Discipline,
		Status:          domain.LessonStatus(l.Status),
		PaymentStatus:   l.PaymentStatus,
		Price:           l.Price,
		Notes:           l.Notes,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}
