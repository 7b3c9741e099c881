package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type PaymentRequest struct {
	UserID        uint      `json:"user_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentType   string    `json:"payment_type"`
	LessonID      *uint     `json:"lesson_id"`
	EventID       *uint     `json:"event_id"`
	Method        string    `json:"method"`
	DueDate       time.Time `json:"due_date"`
	InvoiceNumber string    `json:"invoice_number"`
	Description   string    `json:"description"`
}

func (req *PaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Amount, validation.Required, validation.Min(0.01)),
		validation.Field(&req.Currency, validation.Length(3, 3)),
		validation.Field(&req.PaymentType, validation.Required, validation.In("lesson", "event", "boarding", "membership", "equipment", "other")),
		validation.Field(&req.Method, validation.In("cash", "card", "transfer", "other")),
		validation.Field(&req.DueDate, validation.Required),
	)
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdatePaymentStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("pending", "paid", "cancelled", "refunded")),
	)
}
