package booking

import "errors"

var (
	// ErrSlotAlreadyBooked возвращается при нарушении уникальности (slot_id):
	// на слот уже существует бронирование
	ErrSlotAlreadyBooked = errors.New("booking.repository: slot already booked")

	// ErrStudentDailyLimit возвращается при нарушении уникальности (student_id, slot_date):
	// у студента уже есть бронирование на этот день
	ErrStudentDailyLimit = errors.New("booking.repository: student already has a booking on this date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
