package domain

import "time"

type LessonStatus string

const (
	LessonScheduled LessonStatus = "scheduled"
	LessonCompleted LessonStatus = "completed"
	LessonCancelled LessonStatus = "cancelled"
	LessonNoShow    LessonStatus = "no_show"
)

type Lesson struct {
	ID              uint         `json:"id"`
	InstructorID    uint         `json:"instructor_id"`
	Instructor      *User        `json:"instructor,omitempty"`
	StudentID       uint         `json:"student_id"`
	Student         *User        `json:"student,omitempty"`
	HorseID         *uint        `json:"horse_id,omitempty"`
	Horse           *Horse       `json:"horse,omitempty"`
	ScheduledAt     time.Time    `json:"scheduled_at"`
	DurationMinutes int          `json:"duration_minutes"`
	LessonType      string       `json:"lesson_type"` // "private", "group", or "training"
	Discipline      string       `json:"discipline,omitempty"`
	Status          LessonStatus `json:"status"`
	PaymentStatus   string       `json:"payment_status"` // "pending", "paid", or "waived"
	Price           float64      `json:"price"`
	Notes           string       `json:"notes,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (l *Lesson) EndsAt() time.Time {
	return l.ScheduledAt.Add(time.Duration(l.DurationMinutes) * time.Minute)
}

// Overlaps reports whether the two lessons' half-open windows
// [start, start+duration) intersect. A lesson ending exactly when
// the other starts does not overlap.
func (l *Lesson) Overlaps(other *Lesson) bool {
	return l.ScheduledAt.Before(other.EndsAt()) && other.ScheduledAt.Before(l.EndsAt())
}
