package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
)

type fakeLessonRepo struct {
	LessonRepository

	lessons map[uint]domain.Lesson
	nextID  uint
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{
		lessons: make(map[uint]domain.Lesson),
		nextID:  1,
	}
}

func (f *fakeLessonRepo) Create(_ context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	created := &lesson
	for _, existing := range f.lessons {
		existing := existing
		if existing.InstructorID == lesson.InstructorID &&
			existing.Status == domain.LessonScheduled &&
			created.Overlaps(&existing) {
			return domain.Lesson{}, repository.ErrScheduleConflict
		}
	}

	lesson.ID = f.nextID
	f.nextID++
	f.lessons[lesson.ID] = lesson

	return lesson, nil
}

func (f *fakeLessonRepo) FindByID(_ context.Context, id uint) (domain.Lesson, error) {
	lesson, ok := f.lessons[id]
	if !ok {
		return domain.Lesson{}, repository.ErrLessonNotFound
	}

	return lesson, nil
}

func (f *fakeLessonRepo) UpdateStatus(_ context.Context, id uint, status domain.LessonStatus) error {
	lesson, ok := f.lessons[id]
	if !ok {
		return repository.ErrLessonNotFound
	}

	lesson.Status = status
	f.lessons[id] = lesson

	return nil
}

type fakeHorseFinder struct {
	LessonHorseRepository

	horses map[uint]domain.Horse
}

func (f *fakeHorseFinder) FindByID(_ context.Context, id uint) (domain.Horse, error) {
	horse, ok := f.horses[id]
	if !ok {
		return domain.Horse{}, repository.ErrHorseNotFound
	}

	return horse, nil
}

func newLessonService(repo *fakeLessonRepo) *LessonService {
	users := &fakeUserFinder{users: map[uint]domain.User{
		1: {ID: 1, Role: domain.RoleTrainer, IsActive: true},
		2: {ID: 2, Role: domain.RoleMember, IsActive: true},
		3: {ID: 3, Role: domain.RoleAdmin, IsActive: true},
	}}
	horses := &fakeHorseFinder{horses: map[uint]domain.Horse{
		10: {ID: 10, Name: "Csillag", IsActive: true},
	}}

	return NewLessonService(repo, users, horses)
}

func validLesson() domain.Lesson {
	return domain.Lesson{
		InstructorID:    1,
		StudentID:       2,
		ScheduledAt:     time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		LessonType:      "private",
		Price:           40,
	}
}

func TestLessonService_ScheduleLesson(t *testing.T) {
	repo := newFakeLessonRepo()
	svc := newLessonService(repo)

	created, err := svc.ScheduleLesson(context.Background(), validLesson())
	require.NoError(t, err)

	assert.Equal(t, domain.LessonScheduled, created.Status)
	assert.Equal(t, "pending", created.PaymentStatus)
}

func TestLessonService_ScheduleLesson_Conflict(t *testing.T) {
	repo := newFakeLessonRepo()
	svc := newLessonService(repo)

	_, err := svc.ScheduleLesson(context.Background(), validLesson())
	require.NoError(t, err)

	overlapping := validLesson()
	overlapping.ScheduledAt = overlapping.ScheduledAt.Add(30 * time.Minute)
	_, err = svc.ScheduleLesson(context.Background(), overlapping)
	assert.ErrorIs(t, err, ErrScheduleConflict)
}

func TestLessonService_ScheduleLesson_BackToBackAllowed(t *testing.T) {
	repo := newFakeLessonRepo()
	svc := newLessonService(repo)

	first := validLesson()
	_, err := svc.ScheduleLesson(context.Background(), first)
	require.NoError(t, err)

	adjacent := validLesson()
	adjacent.ScheduledAt = first.ScheduledAt.Add(60 * time.Minute)
	_, err = svc.ScheduleLesson(context.Background(), adjacent)
	assert.NoError(t, err)
}

func TestLessonService_ScheduleLesson_MemberCannotTeach(t *testing.T) {
	repo := newFakeLessonRepo()
	svc := newLessonService(repo)

	lesson := validLesson()
	lesson.InstructorID = 2
	_, err := svc.ScheduleLesson(context.Background(), lesson)
	assert.ErrorIs(t, err, ErrNotAnInstructor)
}

func TestLessonService_ScheduleLesson_UnknownHorse(t *testing.T) {
	repo := newFakeLessonRepo()
	svc := newLessonService(repo)

	horseID := uint(99)
	lesson := validLesson()
	lesson.HorseID = &horseID
	_, err := svc.ScheduleLesson(context.Background(), lesson)
	assert.ErrorIs(t, err, ErrHorseNotFound)
}

func TestLessonService_SetStatus(t *testing.T) {
	repo := newFakeLessonRepo()
	svc := newLessonService(repo)

	created, err := svc.ScheduleLesson(context.Background(), validLesson())
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(context.Background(), created.ID, domain.LessonCompleted))
	assert.Equal(t, domain.LessonCompleted, repo.lessons[created.ID].Status)

	err = svc.SetStatus(context.Background(), 999, domain.LessonCompleted)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestLessonService_CancelLesson(t *testing.T) {
	repo := newFakeLessonRepo()
	svc := newLessonService(repo)

	created, err := svc.ScheduleLesson(context.Background(), validLesson())
	require.NoError(t, err)

	require.NoError(t, svc.CancelLesson(context.Background(), created.ID))
	assert.Equal(t, domain.LessonCancelled, repo.lessons[created.ID].Status)

	// A second cancel is rejected, the lesson is no longer scheduled.
	err = svc.CancelLesson(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrLessonNotCancellable)
}
