package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPayment_IsOverdueAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		payment Payment
		want    bool
	}{
		{
			name:    "pending past due date",
			payment: Payment{Status: PaymentPending, DueDate: now.Add(-time.Hour)},
			want:    true,
		},
		{
			name:    "pending before due date",
			payment: Payment{Status: PaymentPending, DueDate: now.Add(time.Hour)},
			want:    false,
		},
		{
			name:    "paid payments never go overdue",
			payment: Payment{Status: PaymentPaid, DueDate: now.Add(-time.Hour)},
			want:    false,
		},
		{
			name:    "cancelled payments never go overdue",
			payment: Payment{Status: PaymentCancelled, DueDate: now.Add(-time.Hour)},
			want:    false,
		},
		{
			name:    "due exactly now is not yet overdue",
			payment: Payment{Status: PaymentPending, DueDate: now},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.payment.IsOverdueAt(now))
		})
	}
}
