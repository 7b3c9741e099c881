package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equicrm/equicrm/internal/repository/dao"
	"github.com/equicrm/equicrm/internal/testhelper"
)

func upcomingEvent(maxParticipants int) dao.Event {
	start := time.Now().Add(7 * 24 * time.Hour)

	return dao.Event{
		Title:           "Club Show",
		EventType:       "show",
		StartsAt:        start,
		EndsAt:          start.Add(6 * time.Hour),
		MaxParticipants: maxParticipants,
		EntryFee:        20,
		Status:          "upcoming",
	}
}

func TestEventDAO_RegisterFillsThenWaitlists(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewEventDAO(db)
	ctx := context.Background()

	event, err := d.Insert(ctx, upcomingEvent(2))
	require.NoError(t, err)

	for _, userID := range []uint{10, 11} {
		waitlisted, err := d.Register(ctx, event.ID, userID, "pending")
		require.NoError(t, err)
		assert.False(t, waitlisted)
	}

	// Third and fourth riders queue up in arrival order.
	for _, userID := range []uint{12, 13} {
		waitlisted, err := d.Register(ctx, event.ID, userID, "pending")
		require.NoError(t, err)
		assert.True(t, waitlisted)
	}

	_, err = d.Register(ctx, event.ID, 12, "pending")
	assert.ErrorIs(t, err, dao.ErrAlreadyRegistered)

	loaded, err := d.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Participants, 2)
	require.Len(t, loaded.Waitlist, 2)
	assert.Equal(t, uint(12), loaded.Waitlist[0].UserID)
	assert.Equal(t, uint(13), loaded.Waitlist[1].UserID)
}

func TestEventDAO_UnregisterPromotesFIFO(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewEventDAO(db)
	ctx := context.Background()

	event, err := d.Insert(ctx, upcomingEvent(1))
	require.NoError(t, err)

	_, err = d.Register(ctx, event.ID, 10, "pending")
	require.NoError(t, err)
	for _, userID := range []uint{11, 12} {
		waitlisted, err := d.Register(ctx, event.ID, userID, "pending")
		require.NoError(t, err)
		require.True(t, waitlisted)
	}

	// A rider leaving the middle of the queue must not break order.
	_, err = d.Unregister(ctx, event.ID, 11, "pending")
	require.NoError(t, err)

	promoted, err := d.Unregister(ctx, event.ID, 10, "pending")
	require.NoError(t, err)
	assert.Equal(t, uint(12), promoted)

	loaded, err := d.FindByID(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Participants, 1)
	assert.Equal(t, uint(12), loaded.Participants[0].UserID)
	assert.Empty(t, loaded.Waitlist)
}

func TestEventDAO_RegisterClosedEvent(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewEventDAO(db)
	ctx := context.Background()

	event := upcomingEvent(0)
	event.Status = "completed"
	created, err := d.Insert(ctx, event)
	require.NoError(t, err)

	_, err = d.Register(ctx, created.ID, 10, "pending")
	assert.ErrorIs(t, err, dao.ErrEventNotOpen)
}

func TestEventDAO_UpdateKeepsStatusWhenEmpty(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewEventDAO(db)
	ctx := context.Background()

	created, err := d.Insert(ctx, upcomingEvent(0))
	require.NoError(t, err)

	// An edit that omits the status must not close registration.
	created.Title = "Spring Club Show"
	created.Status = ""
	updated, err := d.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "upcoming", updated.Status)

	_, err = d.Register(ctx, created.ID, 10, "pending")
	assert.NoError(t, err)

	// An explicit status still goes through.
	updated.Status = "cancelled"
	updated, err = d.Update(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", updated.Status)
}
