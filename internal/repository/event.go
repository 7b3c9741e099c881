package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository/dao"
)

var (
	ErrEventNotFound       = dao.ErrEventNotFound
	ErrAlreadyRegistered   = dao.ErrAlreadyRegistered
	ErrNotRegistered       = dao.ErrNotRegistered
	ErrEventNotOpen        = dao.ErrEventNotOpen
	ErrParticipantNotFound = dao.ErrParticipantNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	List(ctx context.Context, filter dao.EventFilter, offset, limit int) ([]dao.Event, int64, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	Register(ctx context.Context, eventID, userID uint, paymentStatus string) (bool, error)
	Unregister(ctx context.Context, eventID, userID uint, promotedPaymentStatus string) (uint, error)
	UpdateParticipantPayment(ctx context.Context, eventID, userID uint, status string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountUpcoming(ctx context.Context, after time.Time) (int64, error)
}

type EventFilter struct {
	Status    string
	EventType string
	From      *time.Time
	To        *time.Time
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, eventDomainToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDAOToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventDAOToDomain(found), nil
}

func (r *EventRepository) List(ctx context.Context, filter EventFilter, offset, limit int) ([]domain.Event, int64, error) {
	found, total, err := r.dao.List(ctx, dao.EventFilter(filter), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = eventDAOToDomain(e)
	}

	return events, total, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, eventDomainToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventDAOToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) Register(ctx context.Context, eventID, userID uint, paymentStatus string) (bool, error) {
	waitlisted, err := r.dao.Register(ctx, eventID, userID, paymentStatus)
	if err != nil {
		return false, fmt.Errorf("r.dao.Register -> %w", err)
	}

	return waitlisted, nil
}

func (r *EventRepository) Unregister(ctx context.Context, eventID, userID uint, promotedPaymentStatus string) (uint, error) {
	promoted, err := r.dao.Unregister(ctx, eventID, userID, promotedPaymentStatus)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Unregister -> %w", err)
	}

	return promoted, nil
}

func (r *EventRepository) UpdateParticipantPayment(ctx context.Context, eventID, userID uint, status string) error {
	if err := r.dao.UpdateParticipantPayment(ctx, eventID, userID, status); err != nil {
		return fmt.Errorf("r.dao.UpdateParticipantPayment -> %w", err)
	}

	return nil
}

func (r *EventRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := r.dao.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return counts, nil
}

func (r *EventRepository) CountUpcoming(ctx context.Context, after time.Time) (int64, error) {
	count, err := r.dao.CountUpcoming(ctx, after)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountUpcoming -> %w", err)
	}

	return count, nil
}

func eventDomainToDAO(e domain.Event) dao.Event {
	return dao.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		EventType:       e.EventType,
		StartsAt:        e.StartsAt,
		EndsAt:          e.EndsAt,
		Location:        e.Location,
		MaxParticipants: e.MaxParticipants,
		EntryFee:        e.EntryFee,
		Status:          string(e.Status),
	}
}

func eventDAOToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		EventType:       e.EventType,
		StartsAt:        e.StartsAt,
		EndsAt:          e.EndsAt,
		Location:        e.Location,
		MaxParticipants: e.MaxParticipants,
		EntryFee:        e.EntryFee,
		Status:          domain.EventStatus(e.Status),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}

	for _, p := range e.Participants {
		event.Participants = append(event.Participants, domain.EventParticipant{
			UserID:        p.UserID,
			User:          userDAOToDomainPtr(p.User),
			PaymentStatus: p.PaymentStatus,
			RegisteredAt:  p.RegisteredAt,
		})
	}

	for _, w := range e.Waitlist {
		event.Waitlist = append(event.Waitlist, domain.WaitlistEntry{
			UserID:   w.UserID,
			User:     userDAOToDomainPtr(w.User),
			JoinedAt: w.JoinedAt,
		})
	}

	return event
}
