package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrPastDate возвращается при попытке забронировать слот на прошедшую дату
	ErrPastDate = errors.New("create_booking: date is in the past")

	// ErrTooSoon возвращается при попытке забронировать слот, до начала которого
	// осталось меньше минимального интервала
	ErrTooSoon = errors.New("create_booking: slot starts too soon to be booked")

	// ErrSlotNotFound возвращается, когда слот не материализован
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotUnavailable возвращается, когда слот отозван или уже забронирован,
	// в том числе при проигрыше гонки за открытый слот
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrDailyLimit возвращается, когда у студента уже есть бронирование на эту дату
	ErrDailyLimit = errors.New("create_booking: student already has a booking on this date")

	// ErrAdvisorNotFound возвращается, когда советник не найден
	ErrAdvisorNotFound = errors.New("create_booking: advisor not found")

	// ErrAdvisorUnavailable возвращается, когда советник не принимает бронирования
	ErrAdvisorUnavailable = errors.New("create_booking: advisor does not accept bookings")

	// ErrStudentNotFound возвращается, когда студент не найден
	ErrStudentNotFound = errors.New("create_booking: student not found")

	// ErrQuestionnaireRequired возвращается, когда студент не заполнил анкету
	ErrQuestionnaireRequired = errors.New("create_booking: student questionnaire is not completed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
