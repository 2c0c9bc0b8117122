package toggle_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/LL-SlotBookingService/internal/domain"
	"github.com/m04kA/LL-SlotBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AdvisorID <= 0 {
		return fmt.Errorf("%w: advisorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := validateSlotOnGrid(req.Date, req.StartTime); err != nil {
		return err
	}

	return validateEndTime(req.StartTime, req.EndTime)
}

// validateEndTime проверяет, что явно переданный конец слота согласован
// с его началом. Пустое значение допустимо, конец выводится из начала
func validateEndTime(startTime, endTime types.TimeString) error {
	if endTime.IsZero() {
		return nil
	}

	expected, err := startTime.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to compute slot end: %v", ErrInternal, err)
	}
	if endTime != expected {
		return fmt.Errorf("%w: endTime must be %d minutes after startTime", ErrInvalidInput, domain.SlotDurationMinutes)
	}

	return nil
}

// validateSlotOnGrid проверяет, что слот лежит на сетке расписания:
// будний день, начало в пределах рабочего дня, кратно длительности слота
func validateSlotOnGrid(date time.Time, startTime types.TimeString) error {
	weekday := date.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return fmt.Errorf("%w: slots exist on weekdays only", ErrInvalidInput)
	}

	start, err := startTime.ToTime()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if start.Minute()%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: startTime must be aligned to %d-minute grid", ErrInvalidInput, domain.SlotDurationMinutes)
	}

	if startTime.IsBefore(types.TimeString(domain.WorkdayStart)) {
		return fmt.Errorf("%w: startTime is before workday start", ErrInvalidInput)
	}

	lastStart, err := types.TimeString(domain.WorkdayEnd).AddMinutes(-domain.SlotDurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to compute last slot start: %v", ErrInternal, err)
	}
	if startTime.IsAfter(lastStart) {
		return fmt.Errorf("%w: startTime is after last slot of the workday", ErrInvalidInput)
	}

	return nil
}

// validateLeadWindow проверяет, что до начала слота остался хотя бы
// минимальный интервал. Применяется только при открытии слота на сегодня.
// Сравнение идет по полным timestamp: сравнение одних "HH:MM" ломается,
// когда now + leadMinutes переваливает за полночь
func validateLeadWindow(date time.Time, startTime types.TimeString, now time.Time, leadMinutes int) error {
	if !isSameDay(date, now) {
		return nil
	}

	start, err := startTime.ToTime()
	if err != nil {
		return fmt.Errorf("%w: failed to parse slot start: %v", ErrInternal, err)
	}

	slotStart := time.Date(date.Year(), date.Month(), date.Day(),
		start.Hour(), start.Minute(), 0, 0, now.Location())
	if slotStart.Before(now.Add(time.Duration(leadMinutes) * time.Minute)) {
		return fmt.Errorf("%w: slot must start at least %d minutes from now", ErrTooSoon, leadMinutes)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
