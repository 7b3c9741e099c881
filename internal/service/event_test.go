package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
)

type fakeEventRepo struct {
	EventRepository

	events map[uint]domain.Event

	lastSeedStatus string
	waitlistNext   bool
	promoteNext    uint
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = uint(len(f.events) + 1)
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeEventRepo) Register(_ context.Context, _, _ uint, paymentStatus string) (bool, error) {
	f.lastSeedStatus = paymentStatus

	return f.waitlistNext, nil
}

func (f *fakeEventRepo) Unregister(_ context.Context, _, _ uint, promotedPaymentStatus string) (uint, error) {
	f.lastSeedStatus = promotedPaymentStatus

	return f.promoteNext, nil
}

func eventsFixture() *fakeEventRepo {
	return &fakeEventRepo{events: map[uint]domain.Event{
		1: {ID: 1, Title: "Spring Show", EntryFee: 0, Status: domain.EventUpcoming},
		2: {ID: 2, Title: "Dressage Clinic", EntryFee: 35, Status: domain.EventUpcoming},
	}}
}

func TestEventService_CreateEvent(t *testing.T) {
	repo := eventsFixture()
	svc := NewEventService(repo)

	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	created, err := svc.CreateEvent(context.Background(), domain.Event{
		Title:     "Jumping Camp",
		EventType: "clinic",
		StartsAt:  start,
		EndsAt:    start.Add(8 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EventUpcoming, created.Status)

	_, err = svc.CreateEvent(context.Background(), domain.Event{
		Title:     "Backwards",
		EventType: "clinic",
		StartsAt:  start,
		EndsAt:    start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrEventEndsBeforeStart)
}

func TestEventService_Register_SeedsPaymentStatus(t *testing.T) {
	repo := eventsFixture()
	svc := NewEventService(repo)

	// Free event: the participant starts out paid.
	_, err := svc.Register(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, "paid", repo.lastSeedStatus)

	// Priced event: payment starts pending.
	_, err = svc.Register(context.Background(), 2, 42)
	require.NoError(t, err)
	assert.Equal(t, "pending", repo.lastSeedStatus)
}

func TestEventService_Register_Waitlisted(t *testing.T) {
	repo := eventsFixture()
	repo.waitlistNext = true
	svc := NewEventService(repo)

	waitlisted, err := svc.Register(context.Background(), 2, 42)
	require.NoError(t, err)
	assert.True(t, waitlisted)
}

func TestEventService_Register_UnknownEvent(t *testing.T) {
	repo := eventsFixture()
	svc := NewEventService(repo)

	_, err := svc.Register(context.Background(), 99, 42)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_Unregister_ReportsPromotion(t *testing.T) {
	repo := eventsFixture()
	repo.promoteNext = 7
	svc := NewEventService(repo)

	promoted, err := svc.Unregister(context.Background(), 2, 42)
	require.NoError(t, err)
	assert.Equal(t, uint(7), promoted)

	// The promoted rider inherits the fee-based seed status.
	assert.Equal(t, "pending", repo.lastSeedStatus)
}
