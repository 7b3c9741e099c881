package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
)

type fakePaymentRepo struct {
	PaymentRepository

	payments map[uint]domain.Payment
	nextID   uint

	markOverdueCalls int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: make(map[uint]domain.Payment),
		nextID:   1,
	}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment domain.Payment) (domain.Payment, error) {
	payment.ID = f.nextID
	f.nextID++
	f.payments[payment.ID] = payment

	return payment, nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uint) (domain.Payment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return domain.Payment{}, repository.ErrPaymentNotFound
	}

	return payment, nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, id uint, status domain.PaymentStatus, paidDate *time.Time) error {
	payment, ok := f.payments[id]
	if !ok {
		return repository.ErrPaymentNotFound
	}

	payment.Status = status
	payment.PaidDate = paidDate
	f.payments[id] = payment

	return nil
}

func (f *fakePaymentRepo) MarkOverdue(_ context.Context, now time.Time) (int64, error) {
	f.markOverdueCalls++

	var n int64
	for id, p := range f.payments {
		if p.IsOverdueAt(now) {
			p.Status = domain.PaymentOverdue
			f.payments[id] = p
			n++
		}
	}

	return n, nil
}

func (f *fakePaymentRepo) List(_ context.Context, _ repository.PaymentFilter, _, _ int) ([]domain.Payment, int64, error) {
	out := make([]domain.Payment, 0, len(f.payments))
	for _, p := range f.payments {
		out = append(out, p)
	}

	return out, int64(len(out)), nil
}

type fakeUserFinder struct {
	UserRepository

	users map[uint]domain.User
}

func (f *fakeUserFinder) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func newPaymentServiceAt(repo *fakePaymentRepo, now time.Time) *PaymentService {
	svc := NewPaymentService(repo, &fakeUserFinder{users: map[uint]domain.User{
		1: {ID: 1, Role: domain.RoleMember, IsActive: true},
	}})
	svc.now = func() time.Time { return now }

	return svc
}

func TestPaymentService_GetPayment_LazyOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePaymentRepo()
	repo.payments[7] = domain.Payment{
		ID:      7,
		UserID:  1,
		Status:  domain.PaymentPending,
		DueDate: now.Add(-24 * time.Hour),
	}

	svc := newPaymentServiceAt(repo, now)

	got, err := svc.GetPayment(context.Background(), 7)
	require.NoError(t, err)

	// Both the response and the stored row flip to overdue.
	assert.Equal(t, domain.PaymentOverdue, got.Status)
	assert.Equal(t, domain.PaymentOverdue, repo.payments[7].Status)
}

func TestPaymentService_GetPayment_NotYetDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePaymentRepo()
	repo.payments[7] = domain.Payment{
		ID:      7,
		UserID:  1,
		Status:  domain.PaymentPending,
		DueDate: now.Add(24 * time.Hour),
	}

	svc := newPaymentServiceAt(repo, now)

	got, err := svc.GetPayment(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, got.Status)
}

func TestPaymentService_ListPayments_MarksOverdueFirst(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePaymentRepo()
	svc := newPaymentServiceAt(repo, now)

	_, _, err := svc.ListPayments(context.Background(), repository.PaymentFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.markOverdueCalls)
}

func TestPaymentService_CreatePayment_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePaymentRepo()
	svc := newPaymentServiceAt(repo, now)

	created, err := svc.CreatePayment(context.Background(), domain.Payment{
		UserID:  1,
		Amount:  45,
		DueDate: now.Add(14 * 24 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentPending, created.Status)
	assert.Equal(t, "EUR", created.Currency)
	assert.True(t, strings.HasPrefix(created.InvoiceNumber, "INV-"))
}

func TestPaymentService_CreatePayment_UnknownUser(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePaymentRepo()
	svc := newPaymentServiceAt(repo, now)

	_, err := svc.CreatePayment(context.Background(), domain.Payment{UserID: 99, Amount: 45})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPaymentService_SetStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePaymentRepo()
	repo.payments[3] = domain.Payment{ID: 3, UserID: 1, Status: domain.PaymentPending, DueDate: now.Add(time.Hour)}

	svc := newPaymentServiceAt(repo, now)

	got, err := svc.SetStatus(context.Background(), 3, domain.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.Status)
	require.NotNil(t, got.PaidDate)
	assert.Equal(t, now, *got.PaidDate)
}

func TestPaymentService_SetStatus_RejectsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakePaymentRepo()
	svc := newPaymentServiceAt(repo, now)

	// Overdue is derived from the due date, never set by hand.
	_, err := svc.SetStatus(context.Background(), 3, domain.PaymentOverdue)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}
