package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrAlreadyRegistered   = errors.New("user is already registered or waitlisted")
	ErrNotRegistered       = errors.New("user is not registered for this event")
	ErrEventNotOpen        = errors.New("event is not open for registration")
	ErrParticipantNotFound = errors.New("participant not found")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	EventType   string `gorm:"not null"` // "competition", "clinic", "show", or "social"

	StartsAt time.Time `gorm:"not null;index"`
	EndsAt   time.Time `gorm:"not null"`
	Location string

	MaxParticipants int     `gorm:"not null;default:0"` // 0 means uncapped
	EntryFee        float64 `gorm:"not null;default:0"`
	Status          string  `gorm:"not null;default:upcoming;index"`

	Participants []EventParticipant `gorm:"foreignKey:EventID"`
	Waitlist     []EventWaitlist    `gorm:"foreignKey:EventID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventParticipant struct {
	ID      uint `gorm:"primaryKey"`
	EventID uint `gorm:"not null;index:idx_event_participant,unique"`
	UserID  uint `gorm:"not null;index:idx_event_participant,unique"`
	User    *User

	PaymentStatus string    `gorm:"not null;default:pending"` // "pending" or "paid"
	RegisteredAt  time.Time `gorm:"not null"`
}

// EventWaitlist rows are FIFO-ordered by the auto-increment id, which
// survives deletions in the middle of the queue.
type EventWaitlist struct {
	ID      uint `gorm:"primaryKey"`
	EventID uint `gorm:"not null;index:idx_event_waitlist,unique"`
	UserID  uint `gorm:"not null;index:idx_event_waitlist,unique"`
	User    *User

	JoinedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB { return db.Order("registered_at") }).
		Preload("Participants.User").
		Preload("Waitlist", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Waitlist.User").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

type EventFilter struct {
	Status    string
	EventType string
	From      *time.Time
	To        *time.Time
}

func (d *EventDAO) List(ctx context.Context, filter EventFilter, offset, limit int) ([]Event, int64, error) {
	query := d.db.WithContext(ctx).Model(&Event{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.From != nil {
		query = query.Where("starts_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("starts_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []Event
	err := query.
		Preload("Participants").
		Order("starts_at").Offset(offset).Limit(limit).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	updates := map[string]interface{}{
		"title":            event.Title,
		"description":      event.Description,
		"event_type":       event.EventType,
		"starts_at":        event.StartsAt,
		"ends_at":          event.EndsAt,
		"location":         event.Location,
		"max_participants": event.MaxParticipants,
		"entry_fee":        event.EntryFee,
	}
	// An empty status keeps the current one.
	if event.Status != "" {
		updates["status"] = event.Status
	}

	result := d.db.WithContext(ctx).Model(&Event{ID: event.ID}).Updates(updates)
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&EventParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&EventWaitlist{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return nil
	})
}

// Register adds the user to the participant list, or to the tail of
// the waitlist when the event is full. The capacity check and the
// insert share one transaction with the event row locked, so two
// concurrent registrations cannot both take the last seat.
func (d *EventDAO) Register(ctx context.Context, eventID, userID uint, paymentStatus string) (waitlisted bool, err error) {
	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := lockEvent(tx, eventID)
		if err != nil {
			return err
		}
		if event.Status != "upcoming" {
			return ErrEventNotOpen
		}

		registered, queued, err := membership(tx, eventID, userID)
		if err != nil {
			return err
		}
		if registered || queued {
			return ErrAlreadyRegistered
		}

		var count int64
		if err := tx.Model(&EventParticipant{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
			return err
		}

		now := time.Now()
		if event.MaxParticipants > 0 && count >= int64(event.MaxParticipants) {
			waitlisted = true
			return tx.Create(&EventWaitlist{EventID: eventID, UserID: userID, JoinedAt: now}).Error
		}

		return tx.Create(&EventParticipant{
			EventID:       eventID,
			UserID:        userID,
			PaymentStatus: paymentStatus,
			RegisteredAt:  now,
		}).Error
	})

	return waitlisted, err
}

// Unregister removes the user from either list. When a participant
// seat frees up and the waitlist is non-empty, its head is promoted
// in the same transaction, preserving FIFO order.
func (d *EventDAO) Unregister(ctx context.Context, eventID, userID uint, promotedPaymentStatus string) (promotedUserID uint, err error) {
	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockEvent(tx, eventID); err != nil {
			return err
		}

		registered, queued, err := membership(tx, eventID, userID)
		if err != nil {
			return err
		}

		switch {
		case registered:
			if err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
				Delete(&EventParticipant{}).Error; err != nil {
				return err
			}

			var head EventWaitlist
			err := tx.Where("event_id = ?", eventID).Order("id").First(&head).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return err
			}

			if err := tx.Delete(&EventWaitlist{}, head.ID).Error; err != nil {
				return err
			}
			promotedUserID = head.UserID

			return tx.Create(&EventParticipant{
				EventID:       eventID,
				UserID:        head.UserID,
				PaymentStatus: promotedPaymentStatus,
				RegisteredAt:  time.Now(),
			}).Error

		case queued:
			return tx.Where("event_id = ? AND user_id = ?", eventID, userID).
				Delete(&EventWaitlist{}).Error

		default:
			return ErrNotRegistered
		}
	})

	return promotedUserID, err
}

func (d *EventDAO) UpdateParticipantPayment(ctx context.Context, eventID, userID uint, status string) error {
	result := d.db.WithContext(ctx).Model(&EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Update("payment_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

func (d *EventDAO) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countGrouped(d.db.WithContext(ctx), &Event{}, "status")
}

func (d *EventDAO) CountUpcoming(ctx context.Context, after time.Time) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Event{}).
		Where("status = ? AND starts_at >= ?", "upcoming", after).
		Count(&count).Error

	return count, err
}

func lockEvent(tx *gorm.DB, id uint) (Event, error) {
	var event Event
	err := tx.Raw("SELECT * FROM events WHERE id = ? FOR UPDATE", id).Scan(&event).Error
	if err != nil {
		return Event{}, err
	}
	if event.ID == 0 {
		return Event{}, ErrEventNotFound
	}

	return event, nil
}

func membership(tx *gorm.DB, eventID, userID uint) (registered, queued bool, err error) {
	var count int64
	if err = tx.Model(&EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).Count(&count).Error; err != nil {
		return false, false, err
	}
	registered = count > 0

	if err = tx.Model(&EventWaitlist{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).Count(&count).Error; err != nil {
		return false, false, err
	}
	queued = count > 0

	return registered, queued, nil
}
