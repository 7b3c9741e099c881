package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLesson_Overlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	lessonAt := func(start time.Time, minutes int) *Lesson {
		return &Lesson{ScheduledAt: start, DurationMinutes: minutes}
	}

	tests := []struct {
		name string
		a    *Lesson
		b    *Lesson
		want bool
	}{
		{
			name: "identical windows overlap",
			a:    lessonAt(base, 60),
			b:    lessonAt(base, 60),
			want: true,
		},
		{
			name: "partial overlap",
			a:    lessonAt(base, 60),
			b:    lessonAt(base.Add(30*time.Minute), 60),
			want: true,
		},
		{
			name: "contained window overlaps",
			a:    lessonAt(base, 120),
			b:    lessonAt(base.Add(30*time.Minute), 30),
			want: true,
		},
		{
			name: "back to back is not a conflict",
			a:    lessonAt(base, 60),
			b:    lessonAt(base.Add(60*time.Minute), 60),
			want: false,
		},
		{
			name: "disjoint windows",
			a:    lessonAt(base, 60),
			b:    lessonAt(base.Add(3*time.Hour), 60),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestLesson_EndsAt(t *testing.T) {
	l := &Lesson{
		ScheduledAt:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
	}

	assert.Equal(t, time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC), l.EndsAt())
}
