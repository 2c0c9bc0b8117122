package get_available_slots

import "time"

// Request модель запроса открытых слотов на дату
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response открытые слоты на дату: время начала "HH:MM" -> email'ы советников,
// принимающих бронирования
type Response struct {
	Date  time.Time
	Slots map[string][]string
}
