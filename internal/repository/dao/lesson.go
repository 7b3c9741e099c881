package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrScheduleConflict  = errors.New("instructor already has a lesson in that time window")
	ErrLessonNotEditable = errors.New("lesson is not editable in its current status")
)

type Lesson struct {
	ID uint `gorm:"primaryKey"`

	InstructorID uint  `gorm:"not null;index"`
	Instructor   *User `gorm:"foreignKey:InstructorID"`
	StudentID    uint  `gorm:"not null;index"`
	Student      *User `gorm:"foreignKey:StudentID"`
	HorseID      *uint `gorm:"index"`
	Horse        *Horse

	ScheduledAt     time.Time `gorm:"not null;index"`
	DurationMinutes int       `gorm:"not null"`
	LessonType      string    `gorm:"not null"` // "private", "group", or "training"
	Discipline      string

	Status        string `gorm:"not null;default:scheduled;index"`
	PaymentStatus string `gorm:"not null;default:pending"`
	Price         float64
	Notes         string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type LessonDAO struct {
	db *gorm.DB
}

func NewLessonDAO(db *gorm.DB) *LessonDAO {
	return &LessonDAO{
		db: db,
	}
}

// Insert persists a new lesson, but only after checking the
// instructor's calendar inside the same transaction. Two lessons
// conflict when their half-open [start, start+duration) windows
// intersect; exact adjacency is allowed.
func (d *LessonDAO) Insert(ctx context.Context, lesson Lesson) (Lesson, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflict, err := hasInstructorConflict(tx, lesson, 0)
		if err != nil {
			return err
		}
		if conflict {
			return ErrScheduleConflict
		}

		return tx.Create(&lesson).Error
	})
	if err != nil {
		return Lesson{}, err
	}

	return lesson, nil
}

func (d *LessonDAO) FindByID(ctx context.Context, id uint) (Lesson, error) {
	var lesson Lesson

	result := d.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Student").
		Preload("Horse").
		First(&lesson, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Lesson{}, ErrLessonNotFound
		}

		return Lesson{}, result.Error
	}

	return lesson, nil
}

type LessonFilter struct {
	InstructorID *uint
	StudentID    *uint
	Status       string
	From         *time.Time
	To           *time.Time
}

func (d *LessonDAO) List(ctx context.Context, filter LessonFilter, offset, limit int) ([]Lesson, int64, error) {
	query := d.db.WithContext(ctx).Model(&Lesson{})
	if filter.InstructorID != nil {
		query = query.Where("instructor_id = ?", *filter.InstructorID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("scheduled_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("scheduled_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lessons []Lesson
	err := query.
		Preload("Instructor").
		Preload("Student").
		Preload("Horse").
		Order("scheduled_at").Offset(offset).Limit(limit).Find(&lessons).Error
	if err != nil {
		return nil, 0, err
	}

	return lessons, total, nil
}

// Update rewrites the mutable lesson fields, re-running the conflict
// check against the updated window in the same transaction.
func (d *LessonDAO) Update(ctx context.Context, lesson Lesson) (Lesson, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Lesson
		if err := tx.First(&current, lesson.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLessonNotFound
			}
			return err
		}

		// An update never changes the status; HandleCancelLesson and
		// the status endpoint own that column. Payment status is kept
		// when the caller leaves it empty.
		lesson.Status = current.Status
		if lesson.PaymentStatus == "" {
			lesson.PaymentStatus = current.PaymentStatus
		}

		if lesson.Status == "scheduled" {
			conflict, err := hasInstructorConflict(tx, lesson, lesson.ID)
			if err != nil {
				return err
			}
			if conflict {
				return ErrScheduleConflict
			}
		}

		return tx.Model(&Lesson{ID: lesson.ID}).Updates(map[string]interface{}{
			"instructor_id":    lesson.InstructorID,
			"student_id":       lesson.StudentID,
			"horse_id":         lesson.HorseID,
			"scheduled_at":     lesson.ScheduledAt,
			"duration_minutes": lesson.DurationMinutes,
			"lesson_type":      lesson.LessonType,
			"discipline":       lesson.Discipline,
			"status":           lesson.Status,
			"payment_status":   lesson.PaymentStatus,
			"price":            lesson.Price,
			"notes":            lesson.Notes,
		}).Error
	})
	if err != nil {
		return Lesson{}, err
	}

	return d.FindByID(ctx, lesson.ID)
}

func (d *LessonDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&Lesson{ID: id}).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLessonNotFound
	}

	return nil
}

func (d *LessonDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Lesson{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLessonNotFound
	}

	return nil
}

func (d *LessonDAO) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countGrouped(d.db.WithContext(ctx), &Lesson{}, "status")
}

func (d *LessonDAO) CountScheduledBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Lesson{}).
		Where("status = ? AND scheduled_at >= ? AND scheduled_at < ?", "scheduled", from, to).
		Count(&count).Error

	return count, err
}

// hasInstructorConflict scans the instructor's other active lessons
// for an overlapping window. The instructor's user row is locked
// first so two concurrent bookings for the same calendar serialize;
// the row set is small (one instructor, status = scheduled), so the
// interval math runs in SQL directly.
func hasInstructorConflict(tx *gorm.DB, lesson Lesson, excludeID uint) (bool, error) {
	if err := tx.Exec("SELECT id FROM users WHERE id = ? FOR UPDATE", lesson.InstructorID).Error; err != nil {
		return false, err
	}

	end := lesson.ScheduledAt.Add(time.Duration(lesson.DurationMinutes) * time.Minute)

	var count int64
	err := tx.Model(&Lesson{}).
		Where("instructor_id = ? AND status = ? AND id <> ?", lesson.InstructorID, "scheduled", excludeID).
		Where("scheduled_at < ? AND scheduled_at + (duration_minutes * interval '1 minute') > ?", end, lesson.ScheduledAt).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func countGrouped(db *gorm.DB, model interface{}, column string) (map[string]int64, error) {
	type row struct {
		Key   string
		Count int64
	}

	var rows []row
	err := db.Model(model).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Key] = r.Count
	}

	return counts, nil
}
