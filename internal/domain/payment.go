package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID            uint          `json:"id"`
	UserID        uint          `json:"user_id"`
	User          *User         `json:"user,omitempty"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	PaymentType   string        `json:"payment_type"` // "lesson", "event", "boarding", "membership", "equipment", or "other"
	LessonID      *uint         `json:"lesson_id,omitempty"`
	EventID       *uint         `json:"event_id,omitempty"`
	Method        string        `json:"method,omitempty"` // "cash", "card", "transfer", or "other"
	Status        PaymentStatus `json:"status"`
	DueDate       time.Time     `json:"due_date"`
	PaidDate      *time.Time    `json:"paid_date,omitempty"`
	InvoiceNumber string        `json:"invoice_number"`
	Description   string        `json:"description,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// IsOverdueAt reports whether a still-pending payment has passed its
// due date. The status column is corrected lazily on read, never by a
// background job.
func (p *Payment) IsOverdueAt(now time.Time) bool {
	return p.Status == PaymentPending && p.DueDate.Before(now)
}

type PaymentSummary struct {
	MonthRevenue      float64 `json:"month_revenue"`
	OutstandingAmount float64 `json:"outstanding_amount"`
	PaidCount         int64   `json:"paid_count"`
	PendingCount      int64   `json:"pending_count"`
	OverdueCount      int64   `json:"overdue_count"`
}
