package get_available_slots

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
)

// UseCase use case списка открытых слотов на дату
type UseCase struct {
	slotRepo      SlotRepository
	profileClient ProfileServiceClient
	leadMinutes   int
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, profileClient ProfileServiceClient, leadMinutes int, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		profileClient: profileClient,
		leadMinutes:   leadMinutes,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute возвращает открытые слоты на дату, сгруппированные по времени начала.
// Советники, не принимающие бронирования, из выдачи исключаются.
// Для сегодняшней даты слоты внутри lead окна не показываются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		// Прошедшая дата: открытых слотов заведомо нет
		return &Response{Date: req.Date, Slots: map[string][]string{}}, nil
	}

	slots, err := uc.slotRepo.GetOpenByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load open slots: %v", err)
		return nil, fmt.Errorf("%w: failed to load open slots: %v", ErrInternal, err)
	}

	slots = uc.filterLeadWindow(slots, req.Date, now)

	if len(slots) == 0 {
		return &Response{Date: req.Date, Slots: map[string][]string{}}, nil
	}

	advisorIDs := collectAdvisorIDs(slots)
	advisors, err := uc.profileClient.GetAdvisorsByIDs(ctx, advisorIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load advisor profiles: %v", err)
		return nil, fmt.Errorf("%w: failed to load advisor profiles: %v", ErrInternal, err)
	}

	result := make(map[string][]string)
	for _, s := range slots {
		advisor, ok := advisors[s.AdvisorID]
		if !ok || !advisor.AcceptsBookings() {
			continue
		}
		start := s.StartTime.String()
		result[start] = append(result[start], advisor.Email)
	}

	for start := range result {
		sort.Strings(result[start])
	}

	return &Response{Date: req.Date, Slots: result}, nil
}

// filterLeadWindow убирает сегодняшние слоты, начинающиеся внутри lead окна.
// Сравнение идет по полным timestamp: сравнение одних "HH:MM" ломается,
// когда now + leadMinutes переваливает за полночь
func (uc *UseCase) filterLeadWindow(slots []*domain.Slot, date, now time.Time) []*domain.Slot {
	if !isSameDay(date, now) {
		return slots
	}

	minAllowed := now.Add(time.Duration(uc.leadMinutes) * time.Minute)

	filtered := make([]*domain.Slot, 0, len(slots))
	for _, s := range slots {
		start, err := s.StartTime.ToTime()
		if err != nil {
			continue
		}
		slotStart := time.Date(date.Year(), date.Month(), date.Day(),
			start.Hour(), start.Minute(), 0, 0, now.Location())
		if !slotStart.Before(minAllowed) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func collectAdvisorIDs(slots []*domain.Slot) []int64 {
	seen := make(map[int64]struct{}, len(slots))
	ids := make([]int64, 0, len(slots))
	for _, s := range slots {
		if _, ok := seen[s.AdvisorID]; ok {
			continue
		}
		seen[s.AdvisorID] = struct{}{}
		ids = append(ids, s.AdvisorID)
	}
	return ids
}

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
