package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type EventRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EventType       string    `json:"event_type"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	Location        string    `json:"location"`
	MaxParticipants int       `json:"max_participants"`
	EntryFee        float64   `json:"entry_fee"`
	Status          string    `json:"status"`
}

func (req *EventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.EventType, validation.Required, validation.In("competition", "clinic", "show", "social")),
		validation.Field(&req.StartsAt, validation.Required),
		validation.Field(&req.EndsAt, validation.Required),
		validation.Field(&req.MaxParticipants, validation.Min(0)),
		validation.Field(&req.EntryFee, validation.Min(0.0)),
		validation.Field(&req.Status, validation.In("upcoming", "ongoing", "completed", "cancelled")),
	)
}

type ParticipantPaymentRequest struct {
	PaymentStatus string `json:"payment_status"`
}

func (req *ParticipantPaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PaymentStatus, validation.Required, validation.In("pending", "paid")),
	)
}
