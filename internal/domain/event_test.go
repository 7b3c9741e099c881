package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_IsFull(t *testing.T) {
	twoRiders := []EventParticipant{{UserID: 1}, {UserID: 2}}

	assert.False(t, (&Event{MaxParticipants: 3, Participants: twoRiders}).IsFull())
	assert.True(t, (&Event{MaxParticipants: 2, Participants: twoRiders}).IsFull())

	// Zero cap means unlimited.
	assert.False(t, (&Event{MaxParticipants: 0, Participants: twoRiders}).IsFull())
}

func TestEvent_SeedPaymentStatus(t *testing.T) {
	assert.Equal(t, "paid", (&Event{EntryFee: 0}).SeedPaymentStatus())
	assert.Equal(t, "pending", (&Event{EntryFee: 25.50}).SeedPaymentStatus())
}

func TestEvent_Membership(t *testing.T) {
	e := &Event{
		Participants: []EventParticipant{{UserID: 1}},
		Waitlist:     []WaitlistEntry{{UserID: 2}},
	}

	assert.True(t, e.HasParticipant(1))
	assert.False(t, e.HasParticipant(2))
	assert.True(t, e.HasWaitlisted(2))
	assert.False(t, e.HasWaitlisted(1))
}
