package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
)

var (
	ErrPaymentNotFound     = repository.ErrPaymentNotFound
	ErrInvoiceNumberExists = repository.ErrInvoiceNumberExists
	ErrInvalidStatusChange = errors.New("invalid payment status transition")
)

type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	FindByID(ctx context.Context, id uint) (domain.Payment, error)
	List(ctx context.Context, filter repository.PaymentFilter, offset, limit int) ([]domain.Payment, int64, error)
	Update(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	UpdateStatus(ctx context.Context, id uint, status domain.PaymentStatus, paidDate *time.Time) error
	Delete(ctx context.Context, id uint) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	SumPaidBetween(ctx context.Context, from, to time.Time) (float64, int64, error)
	SumOutstanding(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type PaymentService struct {
	repo     PaymentRepository
	userRepo UserRepository
	now      func() time.Time
}

func NewPaymentService(repo PaymentRepository, userRepo UserRepository) *PaymentService {
	return &PaymentService{
		repo:     repo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *PaymentService) GetPayment(ctx context.Context, id uint) (domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	// Lazy overdue correction: persist and reflect in the same read.
	if payment.IsOverdueAt(s.now()) {
		if err := s.repo.UpdateStatus(ctx, payment.ID, domain.PaymentOverdue, nil); err != nil {
			return domain.Payment{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
		}
		payment.Status = domain.PaymentOverdue
	}

	return payment, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, filter repository.PaymentFilter, offset, limit int) ([]domain.Payment, int64, error) {
	if _, err := s.repo.MarkOverdue(ctx, s.now()); err != nil {
		return nil, 0, fmt.Errorf("s.repo.MarkOverdue -> %w", err)
	}

	payments, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return payments, total, nil
}

func (s *PaymentService) CreatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	if _, err := s.userRepo.FindByID(ctx, payment.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Payment{}, ErrUserNotFound
		}
		return domain.Payment{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	if payment.Status == "" {
		payment.Status = domain.PaymentPending
	}
	if payment.Currency == "" {
		payment.Currency = "EUR"
	}
	if payment.InvoiceNumber == "" {
		payment.InvoiceNumber = "INV-" + uuid.NewString()
	}

	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PaymentService) UpdatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	updated, err := s.repo.Update(ctx, payment)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// SetStatus applies a staff status change. Marking a payment paid
// stamps the paid date; reopening one clears it.
func (s *PaymentService) SetStatus(ctx context.Context, id uint, status domain.PaymentStatus) (domain.Payment, error) {
	switch status {
	case domain.PaymentPending, domain.PaymentPaid, domain.PaymentCancelled, domain.PaymentRefunded:
	default:
		return domain.Payment{}, ErrInvalidStatusChange
	}

	var paidDate *time.Time
	if status == domain.PaymentPaid {
		now := s.now()
		paidDate = &now
	}

	if err := s.repo.UpdateStatus(ctx, id, status, paidDate); err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return s.GetPayment(ctx, id)
}

func (s *PaymentService) DeletePayment(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Summary aggregates the current calendar month's revenue plus the
// overall outstanding position.
func (s *PaymentService) Summary(ctx context.Context) (domain.PaymentSummary, error) {
	if _, err := s.repo.MarkOverdue(ctx, s.now()); err != nil {
		return domain.PaymentSummary{}, fmt.Errorf("s.repo.MarkOverdue -> %w", err)
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	revenue, paidCount, err := s.repo.SumPaidBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return domain.PaymentSummary{}, fmt.Errorf("s.repo.SumPaidBetween -> %w", err)
	}

	outstanding, err := s.repo.SumOutstanding(ctx)
	if err != nil {
		return domain.PaymentSummary{}, fmt.Errorf("s.repo.SumOutstanding -> %w", err)
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return domain.PaymentSummary{}, fmt.Errorf("s.repo.CountByStatus -> %w", err)
	}

	return domain.PaymentSummary{
		MonthRevenue:      revenue,
		OutstandingAmount: outstanding,
		PaidCount:         paidCount,
		PendingCount:      counts["pending"],
		OverdueCount:      counts["overdue"],
	}, nil
}
