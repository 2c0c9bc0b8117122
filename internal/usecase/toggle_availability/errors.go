package toggle_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("toggle_availability: invalid input data")

	// ErrPastDate возвращается при попытке переключить слот на прошедшую дату
	ErrPastDate = errors.New("toggle_availability: date is in the past")

	// ErrTooSoon возвращается при попытке открыть слот, до начала которого
	// осталось меньше минимального интервала
	ErrTooSoon = errors.New("toggle_availability: slot starts too soon to be opened")

	// ErrSlotLocked возвращается при попытке переключить забронированный слот
	ErrSlotLocked = errors.New("toggle_availability: slot is booked and cannot be toggled")

	// ErrBusy возвращается, когда слот не удалось переключить из-за конкурентных
	// изменений даже после повторного чтения
	ErrBusy = errors.New("toggle_availability: slot is being modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("toggle_availability: internal error")
)
