package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type LessonRequest struct {
	InstructorID    uint      `json:"instructor_id"`
	StudentID       uint      `json:"student_id"`
	HorseID         *uint     `json:"horse_id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	LessonType      string    `json:"lesson_type"`
	Discipline      string    `json:"discipline"`
	PaymentStatus   string    `json:"payment_status"`
	Price           float64   `json:"price"`
	Notes           string    `json:"notes"`
}

func (req *LessonRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.InstructorID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.StudentID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.ScheduledAt, validation.Required),
		validation.Field(&req.DurationMinutes, validation.Required, validation.Min(15), validation.Max(240)),
		validation.Field(&req.LessonType, validation.Required, validation.In("private", "group", "training")),
		validation.Field(&req.PaymentStatus, validation.In("pending", "paid", "waived")),
		validation.Field(&req.Price, validation.Min(0.0)),
	)
}

type UpdateLessonStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateLessonStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("scheduled", "completed", "cancelled", "no_show")),
	)
}
