package service

import (
	"context"
	"fmt"
	"time"

	"github.com/equicrm/equicrm/internal/domain"
	"github.com/equicrm/equicrm/internal/repository"
)

type StatsUserRepository interface {
	List(ctx context.Context, filter repository.UserFilter, offset, limit int) ([]domain.User, int64, error)
}

type StatsHorseRepository interface {
	CountActive(ctx context.Context) (int64, error)
}

type StatsLessonRepository interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountScheduledBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type StatsEventRepository interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountUpcoming(ctx context.Context, after time.Time) (int64, error)
}

type StatsEquipmentRepository interface {
	CountByCondition(ctx context.Context) (map[string]int64, error)
}

type StatsPaymentRepository interface {
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	SumPaidBetween(ctx context.Context, from, to time.Time) (float64, int64, error)
	SumOutstanding(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type Dashboard struct {
	ActiveHorses      int64            `json:"active_horses"`
	ActiveUsersByRole map[string]int64 `json:"active_users_by_role"`
	LessonsThisWeek   int64            `json:"lessons_this_week"`
	UpcomingEvents    int64            `json:"upcoming_events"`
	MonthRevenue      float64          `json:"month_revenue"`
	OutstandingAmount float64          `json:"outstanding_amount"`
}

type Overview struct {
	LessonsByStatus      map[string]int64 `json:"lessons_by_status"`
	EventsByStatus       map[string]int64 `json:"events_by_status"`
	EquipmentByCondition map[string]int64 `json:"equipment_by_condition"`
	PaymentsByStatus     map[string]int64 `json:"payments_by_status"`
}

type StatsService struct {
	users     StatsUserRepository
	horses    StatsHorseRepository
	lessons   StatsLessonRepository
	events    StatsEventRepository
	equipment StatsEquipmentRepository
	payments  StatsPaymentRepository
	now       func() time.Time
}

func NewStatsService(
	users StatsUserRepository,
	horses StatsHorseRepository,
	lessons StatsLessonRepository,
	events StatsEventRepository,
	equipment StatsEquipmentRepository,
	payments StatsPaymentRepository,
) *StatsService {
	return &StatsService{
		users:     users,
		horses:    horses,
		lessons:   lessons,
		events:    events,
		equipment: equipment,
		payments:  payments,
		now:       time.Now,
	}
}

func (s *StatsService) Dashboard(ctx context.Context) (Dashboard, error) {
	now := s.now()

	horses, err := s.horses.CountActive(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.horses.CountActive -> %w", err)
	}

	usersByRole, err := s.countActiveUsersByRole(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	weekStart := startOfWeek(now)
	lessons, err := s.lessons.CountScheduledBetween(ctx, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.lessons.CountScheduledBetween -> %w", err)
	}

	events, err := s.events.CountUpcoming(ctx, now)
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.events.CountUpcoming -> %w", err)
	}

	if _, err := s.payments.MarkOverdue(ctx, now); err != nil {
		return Dashboard{}, fmt.Errorf("s.payments.MarkOverdue -> %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	revenue, _, err := s.payments.SumPaidBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.payments.SumPaidBetween -> %w", err)
	}

	outstanding, err := s.payments.SumOutstanding(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("s.payments.SumOutstanding -> %w", err)
	}

	return Dashboard{
		ActiveHorses:      horses,
		ActiveUsersByRole: usersByRole,
		LessonsThisWeek:   lessons,
		UpcomingEvents:    events,
		MonthRevenue:      revenue,
		OutstandingAmount: outstanding,
	}, nil
}

func (s *StatsService) Overview(ctx context.Context) (Overview, error) {
	lessons, err := s.lessons.CountByStatus(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("s.lessons.CountByStatus -> %w", err)
	}

	events, err := s.events.CountByStatus(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("s.events.CountByStatus -> %w", err)
	}

	equipment, err := s.equipment.CountByCondition(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("s.equipment.CountByCondition -> %w", err)
	}

	if _, err := s.payments.MarkOverdue(ctx, s.now()); err != nil {
		return Overview{}, fmt.Errorf("s.payments.MarkOverdue -> %w", err)
	}
	payments, err := s.payments.CountByStatus(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("s.payments.CountByStatus -> %w", err)
	}

	return Overview{
		LessonsByStatus:      lessons,
		EventsByStatus:       events,
		EquipmentByCondition: equipment,
		PaymentsByStatus:     payments,
	}, nil
}

func (s *StatsService) countActiveUsersByRole(ctx context.Context) (map[string]int64, error) {
	active := true
	counts := make(map[string]int64, 4)

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleTrainer, domain.RoleMember, domain.RoleGuest} {
		_, total, err := s.users.List(ctx, repository.UserFilter{Role: string(role), IsActive: &active}, 0, 1)
		if err != nil {
			return nil, fmt.Errorf("s.users.List -> %w", err)
		}
		counts[string(role)] = total
	}

	return counts, nil
}

// startOfWeek truncates to the preceding Monday midnight.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	return day.AddDate(0, 0, 1-weekday)
}
