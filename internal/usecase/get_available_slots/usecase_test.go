package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	"github.com/m04kA/LL-SlotBookingService/internal/integrations/profileservice"
)

// Среда 10:00
var testNow = time.Date(2026, time.September, 2, 10, 0, 0, 0, time.UTC)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type stubSlotRepo struct {
	slots []*domain.Slot
}

func (s *stubSlotRepo) GetOpenByDate(_ context.Context, date time.Time) ([]*domain.Slot, error) {
	result := make([]*domain.Slot, 0)
	for _, slot := range s.slots {
		if slot.Date.Equal(date) && slot.State == domain.StateOpen {
			result = append(result, slot)
		}
	}
	return result, nil
}

type stubProfileClient struct {
	advisors map[int64]*profileservice.Advisor
}

func (s *stubProfileClient) GetAdvisorsByIDs(_ context.Context, ids []int64) (map[int64]*profileservice.Advisor, error) {
	result := make(map[int64]*profileservice.Advisor)
	for _, id := range ids {
		if a, ok := s.advisors[id]; ok {
			result[id] = a
		}
	}
	return result, nil
}

func dateAt(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func setupUseCase(slots []*domain.Slot, advisors map[int64]*profileservice.Advisor) *UseCase {
	uc := NewUseCase(&stubSlotRepo{slots: slots}, &stubProfileClient{advisors: advisors}, domain.DefaultLeadMinutes, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestGetAvailableSlots_GroupsByStartTime(t *testing.T) {
	date := dateAt(2026, time.September, 3)
	slots := []*domain.Slot{
		{AdvisorID: 1, Date: date, StartTime: "10:00", EndTime: "10:30", State: domain.StateOpen},
		{AdvisorID: 2, Date: date, StartTime: "10:00", EndTime: "10:30", State: domain.StateOpen},
		{AdvisorID: 1, Date: date, StartTime: "11:00", EndTime: "11:30", State: domain.StateOpen},
	}
	advisors := map[int64]*profileservice.Advisor{
		1: {ID: 1, Email: "a@example.com", IsBookable: true},
		2: {ID: 2, Email: "b@example.com", IsBookable: true},
	}
	uc := setupUseCase(slots, advisors)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"10:00": {"a@example.com", "b@example.com"},
		"11:00": {"a@example.com"},
	}, resp.Slots)
}

func TestGetAvailableSlots_NonBookableAdvisorsExcluded(t *testing.T) {
	date := dateAt(2026, time.September, 3)
	slots := []*domain.Slot{
		{AdvisorID: 1, Date: date, StartTime: "10:00", EndTime: "10:30", State: domain.StateOpen},
		{AdvisorID: 2, Date: date, StartTime: "10:00", EndTime: "10:30", State: domain.StateOpen},
		{AdvisorID: 3, Date: date, StartTime: "10:00", EndTime: "10:30", State: domain.StateOpen},
	}
	advisors := map[int64]*profileservice.Advisor{
		1: {ID: 1, Email: "a@example.com", IsBookable: true},
		2: {ID: 2, Email: "b@example.com", IsBookable: false},
		3: {ID: 3, Email: "c@example.com", IsBookable: true, IsSuspended: true},
	}
	uc := setupUseCase(slots, advisors)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"10:00": {"a@example.com"}}, resp.Slots)
}

func TestGetAvailableSlots_TodayLeadWindowFiltered(t *testing.T) {
	date := dateAt(2026, time.September, 2)
	slots := []*domain.Slot{
		{AdvisorID: 1, Date: date, StartTime: "10:00", EndTime: "10:30", State: domain.StateOpen},
		{AdvisorID: 1, Date: date, StartTime: "10:30", EndTime: "11:00", State: domain.StateOpen},
	}
	advisors := map[int64]*profileservice.Advisor{
		1: {ID: 1, Email: "a@example.com", IsBookable: true},
	}
	uc := setupUseCase(slots, advisors)

	// Сейчас 10:00, lead 30 минут: слот 10:00 скрыт, 10:30 показан
	resp, err := uc.Execute(context.Background(), &Request{Date: date})

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"10:30": {"a@example.com"}}, resp.Slots)
}

func TestGetAvailableSlots_LateEveningHidesEarlierSlots(t *testing.T) {
	date := dateAt(2026, time.September, 2)
	slots := []*domain.Slot{
		{AdvisorID: 1, Date: date, StartTime: "10:00", EndTime: "10:30", State: domain.StateOpen},
		{AdvisorID: 1, Date: date, StartTime: "17:30", EndTime: "18:00", State: domain.StateOpen},
	}
	advisors := map[int64]*profileservice.Advisor{
		1: {ID: 1, Email: "a@example.com", IsBookable: true},
	}
	uc := setupUseCase(slots, advisors)

	// 23:45: now + lead переходит через полночь, все сегодняшние слоты уже в прошлом
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, time.September, 2, 23, 45, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{Date: date})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestGetAvailableSlots_PastDateEmpty(t *testing.T) {
	uc := setupUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: dateAt(2026, time.September, 1)})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestGetAvailableSlots_MissingDateRejected(t *testing.T) {
	uc := setupUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
