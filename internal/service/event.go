package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
)

var (
	ErrEventNotFound        = repository.ErrEventNotFound
	ErrAlreadyRegistered    = repository.ErrAlreadyRegistered
	ErrNotRegistered        = repository.ErrNotRegistered
	ErrEventNotOpen         = repository.ErrEventNotOpen
	ErrParticipantNotFound  = repository.ErrParticipantNotFound
	ErrEventEndsBeforeStart = errors.New("event ends before it starts")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	List(ctx context.Context, filter repository.EventFilter, offset, limit int) ([]domain.Event, int64, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	Register(ctx context.Context, eventID, userID uint, paymentStatus string) (bool, error)
	Unregister(ctx context.Context, eventID, userID uint, promotedPaymentStatus string) (uint, error)
	UpdateParticipantPayment(ctx context.Context, eventID, userID uint, status string) error
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, filter repository.EventFilter, offset, limit int) ([]domain.Event, int64, error) {
	events, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, total, nil
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if !event.EndsAt.After(event.StartsAt) {
		return domain.Event{}, ErrEventEndsBeforeStart
	}
	if event.Status == "" {
		event.Status = domain.EventUpcoming
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if !event.EndsAt.After(event.StartsAt) {
		return domain.Event{}, ErrEventEndsBeforeStart
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Register places the user on the participant list, or on the
// waitlist when the event is full. Returns whether the user ended up
// waitlisted. Re-registering either way is rejected, never merged.
func (s *EventService) Register(ctx context.Context, eventID, userID uint) (bool, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	waitlisted, err := s.repo.Register(ctx, eventID, userID, event.SeedPaymentStatus())
	if err != nil {
		return false, fmt.Errorf("s.repo.Register -> %w", err)
	}

	return waitlisted, nil
}

// Unregister removes the user; when a seat frees up the earliest
// waitlist entry is promoted. Returns the promoted user id, 0 if
// nobody was promoted.
func (s *EventService) Unregister(ctx context.Context, eventID, userID uint) (uint, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	promoted, err := s.repo.Unregister(ctx, eventID, userID, event.SeedPaymentStatus())
	if err != nil {
		return 0, fmt.Errorf("s.repo.Unregister -> %w", err)
	}

	return promoted, nil
}

func (s *EventService) SetParticipantPayment(ctx context.Context, eventID, userID uint, status string) error {
	if err := s.repo.UpdateParticipantPayment(ctx, eventID, userID, status); err != nil {
		return fmt.Errorf("s.repo.UpdateParticipantPayment -> %w", err)
	}

	return nil
}
