package get_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	"github.com/m04kA/LL-SlotBookingService/pkg/types"
)

// maxRangeDays предельная ширина периода снимка
const maxRangeDays = 62

// UseCase use case снимка расписания советника.
// Чистое чтение: сетка будних дней заполняется целиком, нематериализованные
// ячейки отдаются как withdrawn
type UseCase struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute собирает снимок расписания советника за период
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSchedule: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetSchedule: advisor=%d, from=%s, to=%s, viewer=%d/%s",
		req.AdvisorID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.ViewerID, req.ViewerRole)

	slots, err := uc.slotRepo.GetByAdvisorAndDateRange(ctx, req.AdvisorID, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to load slots: %v", err)
		return nil, fmt.Errorf("%w: failed to load slots: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByAdvisorAndDateRange(ctx, req.AdvisorID, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to load bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}

	bookingsBySlot := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		bookingsBySlot[b.SlotID] = b
	}

	// 1. Полная сетка: каждый будний день, слоты по 30 минут, по умолчанию withdrawn
	snapshot := buildEmptyGrid(req.StartDate, req.EndDate)

	// 2. Накладываем материализованные слоты поверх сетки
	for _, s := range slots {
		view := SlotView{State: string(s.State)}
		if s.IsBooked() {
			if b, ok := bookingsBySlot[s.ID]; ok {
				view.Booking = uc.bookingView(req, b)
			}
		}
		snapshot[s.Key().String()] = view
	}

	return &Response{
		AdvisorID: req.AdvisorID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Snapshot:  snapshot,
	}, nil
}

// bookingView возвращает детали бронирования с учетом видимости:
// советник-владелец и админ видят все, студент только свои брони
func (uc *UseCase) bookingView(req *Request, b *domain.Booking) *BookingView {
	switch req.ViewerRole {
	case domain.RoleAdmin:
		// Полные детали
	case domain.RoleTeacher:
		if req.ViewerID != req.AdvisorID {
			return nil
		}
	case domain.RoleStudent:
		if req.ViewerID != b.StudentID {
			return nil
		}
	default:
		return nil
	}

	return &BookingView{
		Reference: b.Reference,
		StudentID: b.StudentID,
		Message:   b.Message,
	}
}

// buildEmptyGrid строит пустую сетку будних дней 09:00-18:00 с шагом 30 минут
func buildEmptyGrid(from, to time.Time) map[string]SlotView {
	snapshot := make(map[string]SlotView)

	for day := dateOnly(from); !day.After(dateOnly(to)); day = day.AddDate(0, 0, 1) {
		weekday := day.Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			continue
		}

		start := types.TimeString(domain.WorkdayStart)
		for start.IsBefore(types.TimeString(domain.WorkdayEnd)) {
			key := fmt.Sprintf("%s,%s", day.Format(domain.DateFormat), start)
			snapshot[key] = SlotView{State: string(domain.StateWithdrawn)}

			next, err := start.AddMinutes(domain.SlotDurationMinutes)
			if err != nil {
				break
			}
			start = next
		}
	}

	return snapshot
}

func validateRequest(req *Request) error {
	if req.AdvisorID <= 0 {
		return fmt.Errorf("%w: advisorID must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	if req.EndDate.Sub(req.StartDate) > maxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: at most %d days per request", ErrRangeTooWide, maxRangeDays)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
