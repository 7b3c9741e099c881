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

func pendingPayment(invoice string, due time.Time) dao.Payment {
	return dao.Payment{
		UserID:        1,
		Amount:        45,
		Currency:      "EUR",
		PaymentType:   "lesson",
		Status:        "pending",
		DueDate:       due,
		InvoiceNumber: invoice,
	}
}

func TestPaymentDAO_UpdateKeepsStatusAndPaidDate(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewPaymentDAO(db)
	ctx := context.Background()

	due := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	created, err := d.Insert(ctx, pendingPayment("INV-1001", due))
	require.NoError(t, err)

	paidAt := due.Add(-48 * time.Hour)
	require.NoError(t, d.UpdateStatus(ctx, created.ID, "paid", &paidAt))

	// A field-only edit must not touch the settled state.
	edited := created
	edited.Amount = 60
	edited.Description = "corrected amount"

	updated, err := d.Update(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, float64(60), updated.Amount)
	assert.Equal(t, "paid", updated.Status)
	require.NotNil(t, updated.PaidDate)
	assert.True(t, paidAt.Equal(*updated.PaidDate))
}

func TestPaymentDAO_SumPaidBetween(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := testhelper.StartPostgres(t)
	d := dao.NewPaymentDAO(db)
	ctx := context.Background()

	// Due in June, settled in July: the money belongs to July.
	due := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	created, err := d.Insert(ctx, pendingPayment("INV-2001", due))
	require.NoError(t, err)

	paidAt := time.Date(2026, 7, 3, 10, 0, 0, 0, time.UTC)
	require.NoError(t, d.UpdateStatus(ctx, created.ID, "paid", &paidAt))

	_, err = d.Insert(ctx, pendingPayment("INV-2002", due))
	require.NoError(t, err)

	june := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	july := june.AddDate(0, 1, 0)
	august := july.AddDate(0, 1, 0)

	total, count, err := d.SumPaidBetween(ctx, july, august)
	require.NoError(t, err)
	assert.Equal(t, float64(45), total)
	assert.Equal(t, int64(1), count)

	total, count, err = d.SumPaidBetween(ctx, june, july)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, count)
}
