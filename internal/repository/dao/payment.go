package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrInvoiceNumberExists = errors.New("invoice number already exists")
)

type Payment struct {
	ID uint `gorm:"primaryKey"`

	UserID uint  `gorm:"not null;index"`
	User   *User `gorm:"foreignKey:UserID"`

	Amount      float64 `gorm:"not null"`
	Currency    string  `gorm:"not null;default:EUR"`
	PaymentType string  `gorm:"not null"` // "lesson", "event", "boarding", "membership", "equipment", or "other"

	LessonID *uint `gorm:"index"`
	EventID  *uint `gorm:"index"`

	Method string
	Status string `gorm:"not null;default:pending;index"`

	DueDate  time.Time `gorm:"not null;index"`
	PaidDate *time.Time

	InvoiceNumber string `gorm:"unique;not null"`
	Description   string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{
		db: db,
	}
}

func (d *PaymentDAO) Insert(ctx context.Context, payment Payment) (Payment, error) {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "invoice_number") {
			return Payment{}, ErrInvoiceNumberExists
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindByID(ctx context.Context, id uint) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).Preload("User").First(&payment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

type PaymentFilter struct {
	UserID      *uint
	Status      string
	PaymentType string
	From        *time.Time
	To          *time.Time
}

func (d *PaymentDAO) List(ctx context.Context, filter PaymentFilter, offset, limit int) ([]Payment, int64, error) {
	query := d.db.WithContext(ctx).Model(&Payment{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentType != "" {
		query = query.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.From != nil {
		query = query.Where("due_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("due_date < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []Payment
	err := query.Preload("User").Order("due_date DESC").Offset(offset).Limit(limit).Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// Update rewrites the mutable invoice fields. Status and paid date are
// owned by UpdateStatus and the overdue derivation; an update never
// touches them.
func (d *PaymentDAO) Update(ctx context.Context, payment Payment) (Payment, error) {
	result := d.db.WithContext(ctx).Model(&Payment{ID: payment.ID}).Updates(map[string]interface{}{
		"user_id":      payment.UserID,
		"amount":       payment.Amount,
		"currency":     payment.Currency,
		"payment_type": payment.PaymentType,
		"lesson_id":    payment.LessonID,
		"event_id":     payment.EventID,
		"method":       payment.Method,
		"due_date":     payment.DueDate,
		"description":  payment.Description,
	})
	if result.Error != nil {
		return Payment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Payment{}, ErrPaymentNotFound
	}

	return d.FindByID(ctx, payment.ID)
}

func (d *PaymentDAO) UpdateStatus(ctx context.Context, id uint, status string, paidDate *time.Time) error {
	result := d.db.WithContext(ctx).Model(&Payment{ID: id}).Updates(map[string]interface{}{
		"status":    status,
		"paid_date": paidDate,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (d *PaymentDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Payment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// MarkOverdue corrects pending payments whose due date has passed.
// Called lazily from read paths; there is no background job.
func (d *PaymentDAO) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := d.db.WithContext(ctx).Model(&Payment{}).
		Where("status = ? AND due_date < ?", "pending", now).
		Update("status", "overdue")

	return result.RowsAffected, result.Error
}

// SumPaidBetween aggregates settled payments within [from, to) over
// the paid date, so revenue lands in the month the money arrived
// rather than the month the invoice was due.
func (d *PaymentDAO) SumPaidBetween(ctx context.Context, from, to time.Time) (float64, int64, error) {
	type row struct {
		Total float64
		Count int64
	}

	var r row
	err := d.db.WithContext(ctx).Model(&Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("status = ? AND paid_date >= ? AND paid_date < ?", "paid", from, to).
		Scan(&r).Error
	if err != nil {
		return 0, 0, err
	}

	return r.Total, r.Count, nil
}

// SumOutstanding totals everything still owed, regardless of window.
func (d *PaymentDAO) SumOutstanding(ctx context.Context) (float64, error) {
	var total float64
	err := d.db.WithContext(ctx).Model(&Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status IN ?", []string{"pending", "overdue"}).
		Scan(&total).Error

	return total, err
}

func (d *PaymentDAO) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countGrouped(d.db.WithContext(ctx), &Payment{}, "status")
}
