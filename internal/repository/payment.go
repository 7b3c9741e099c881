package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository/dao"
)

var (
	ErrPaymentNotFound     = dao.ErrPaymentNotFound
	ErrInvoiceNumberExists = dao.ErrInvoiceNumberExists
)

type PaymentDAO interface {
	Insert(ctx context.Context, payment dao.Payment) (dao.Payment, error)
	FindByID(ctx context.Context, id uint) (dao.Payment, error)
	List(ctx context.Context, filter dao.PaymentFilter, offset, limit int) ([]dao.Payment, int64, error)
	Update(ctx context.Context, payment dao.Payment) (dao.Payment, error)
	UpdateStatus(ctx context.Context, id uint, status string, paidDate *time.Time) error
	Delete(ctx context.Context, id uint) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	SumPaidBetween(ctx context.Context, from, to time.Time) (float64, int64, error)
	SumOutstanding(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type PaymentFilter struct {
	UserID      *uint
	Status      string
	PaymentType string
	From        *time.Time
	To          *time.Time
}

type PaymentRepository struct {
	dao PaymentDAO
}

func NewPaymentRepository(dao PaymentDAO) *PaymentRepository {
	return &PaymentRepository{
		dao: dao,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	created, err := r.dao.Insert(ctx, paymentDomainToDAO(payment))
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return paymentDAOToDomain(created), nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint) (domain.Payment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return paymentDAOToDomain(found), nil
}

func (r *PaymentRepository) List(ctx context.Context, filter PaymentFilter, offset, limit int) ([]domain.Payment, int64, error) {
	found, total, err := r.dao.List(ctx, dao.PaymentFilter(filter), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	payments := make([]domain.Payment, len(found))
	for i, p := range found {
		payments[i] = paymentDAOToDomain(p)
	}

	return payments, total, nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	updated, err := r.dao.Update(ctx, paymentDomainToDAO(payment))
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return paymentDAOToDomain(updated), nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uint, status domain.PaymentStatus, paidDate *time.Time) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status), paidDate); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *PaymentRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	updated, err := r.dao.MarkOverdue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MarkOverdue -> %w", err)
	}

	return updated, nil
}

func (r *PaymentRepository) SumPaidBetween(ctx context.Context, from, to time.Time) (float64, int64, error) {
	total, count, err := r.dao.SumPaidBetween(ctx, from, to)
	if err != nil {
		return 0, 0, fmt.Errorf("r.dao.SumPaidBetween -> %w", err)
	}

	return total, count, nil
}

func (r *PaymentRepository) SumOutstanding(ctx context.Context) (float64, error) {
	total, err := r.dao.SumOutstanding(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumOutstanding -> %w", err)
	}

	return total, nil
}

func (r *PaymentRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := r.dao.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return counts, nil
}

func paymentDomainToDAO(p domain.Payment) dao.Payment {
	return dao.Payment{
		ID:            p.ID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaymentType:   p.PaymentType,
		LessonID:      p.LessonID,
		EventID:       p.EventID,
		Method:        p.Method,
		Status:        string(p.Status),
		DueDate:       p.DueDate,
		PaidDate:      p.PaidDate,
		InvoiceNumber: p.InvoiceNumber,
		Description:   p.Description,
	}
}

func paymentDAOToDomain(p dao.Payment) domain.Payment {
	return domain.Payment{
		ID:            p.ID,
		UserID:        p.UserID,
		User:          userDAOToDomainPtr(p.User),
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaymentType:   p.PaymentType,
		LessonID:      p.LessonID,
		EventID:       p.EventID,
		Method:        p.Method,
		Status:        domain.PaymentStatus(p.Status),
		DueDate:       p.DueDate,
		PaidDate:      p.PaidDate,
		InvoiceNumber: p.InvoiceNumber,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
