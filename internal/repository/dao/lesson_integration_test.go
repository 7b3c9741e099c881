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

func lessonAt(instructorID uint, start time.Time, minutes int) dao.Lesson {
	return dao.Lesson{
		InstructorID:    instructorID,
		StudentID:       100,
		ScheduledAt:     start,
		DurationMinutes: minutes,
		LessonType:      "private",
		Status:          "scheduled",
		PaymentStatus:   "pending",
		Price:           40,
	}
}

func TestLessonDAO_InsertConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewLessonDAO(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	_, err := d.Insert(ctx, lessonAt(1, base, 60))
	require.NoError(t, err)

	// Overlapping window of the same instructor is rejected.
	_, err = d.Insert(ctx, lessonAt(1, base.Add(30*time.Minute), 60))
	assert.ErrorIs(t, err, dao.ErrScheduleConflict)

	// Back-to-back is allowed, the window is half-open.
	_, err = d.Insert(ctx, lessonAt(1, base.Add(60*time.Minute), 60))
	assert.NoError(t, err)

	// Another instructor can teach at the same time.
	_, err = d.Insert(ctx, lessonAt(2, base, 60))
	assert.NoError(t, err)
}

func TestLessonDAO_CancelledLessonFreesTheSlot(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewLessonDAO(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	first, err := d.Insert(ctx, lessonAt(1, base, 60))
	require.NoError(t, err)
	require.NoError(t, d.UpdateStatus(ctx, first.ID, "cancelled"))

	_, err = d.Insert(ctx, lessonAt(1, base, 60))
	assert.NoError(t, err)
}

func TestLessonDAO_UpdateReconsidersConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewLessonDAO(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	_, err := d.Insert(ctx, lessonAt(1, base, 60))
	require.NoError(t, err)

	second, err := d.Insert(ctx, lessonAt(1, base.Add(2*time.Hour), 60))
	require.NoError(t, err)

	// Moving the second lesson onto the first must fail, and a lesson
	// never conflicts with itself.
	second.ScheduledAt = base.Add(15 * time.Minute)
	_, err = d.Update(ctx, second)
	assert.ErrorIs(t, err, dao.ErrScheduleConflict)

	second.ScheduledAt = base.Add(2 * time.Hour)
	_, err = d.Update(ctx, second)
	assert.NoError(t, err)
}

func TestLessonDAO_UpdateKeepsPaymentStatusWhenEmpty(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewLessonDAO(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	lesson := lessonAt(1, base, 60)
	lesson.PaymentStatus = "paid"
	created, err := d.Insert(ctx, lesson)
	require.NoError(t, err)

	// A rescheduling request that omits the payment status must not
	// blank the column.
	created.ScheduledAt = base.Add(3 * time.Hour)
	created.PaymentStatus = ""
	updated, err := d.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.PaymentStatus)

	// An explicit value still goes through.
	updated.PaymentStatus = "waived"
	updated, err = d.Update(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, "waived", updated.PaymentStatus)
}
