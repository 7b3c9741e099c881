package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	budapest, _ := time.LoadLocation("Europe/Budapest")

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midweek",
			in:   time.Date(2026, 3, 12, 15, 30, 0, 0, time.UTC), // Thursday
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday maps to itself",
			in:   time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the running week",
			in:   time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "keeps the location",
			in:   time.Date(2026, 3, 12, 15, 30, 0, 0, budapest),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, budapest),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(startOfWeek(tt.in)))
		})
	}
}
