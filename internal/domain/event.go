package domain

import "time"

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

type Event struct {
	ID              uint               `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description,omitempty"`
	EventType       string             `json:"event_type"` // "competition", "clinic", "show", or "social"
	StartsAt        time.Time          `json:"starts_at"`
	EndsAt          time.Time          `json:"ends_at"`
	Location        string             `json:"location,omitempty"`
	MaxParticipants int                `json:"max_participants"` // 0 means uncapped
	EntryFee        float64            `json:"entry_fee"`
	Status          EventStatus        `json:"status"`
	Participants    []EventParticipant `json:"participants,omitempty"`
	Waitlist        []WaitlistEntry    `json:"waitlist,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type EventParticipant struct {
	UserID        uint      `json:"user_id"`
	User          *User     `json:"user,omitempty"`
	PaymentStatus string    `json:"payment_status"` // "pending" or "paid"
	RegisteredAt  time.Time `json:"registered_at"`
}

type WaitlistEntry struct {
	UserID   uint      `json:"user_id"`
	User     *User     `json:"user,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// IsFull reports whether the participant list has reached the cap.
// An event with MaxParticipants == 0 never fills up.
func (e *Event) IsFull() bool {
	return e.MaxParticipants > 0 && len(e.Participants) >= e.MaxParticipants
}

func (e *Event) HasParticipant(userID uint) bool {
	for _, p := range e.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

func (e *Event) HasWaitlisted(userID uint) bool {
	for _, w := range e.Waitlist {
		if w.UserID == userID {
			return true
		}
	}
	return false
}

// SeedPaymentStatus is the participant payment status a fresh
// registration starts with: free events are immediately "paid".
func (e *Event) SeedPaymentStatus() string {
	if e.EntryFee == 0 {
		return "paid"
	}
	return "pending"
}
