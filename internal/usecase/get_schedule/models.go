package get_schedule

import (
	"time"
)

// Request модель запроса снимка расписания советника
type Request struct {
	AdvisorID int64     // ID советника, чье расписание запрашивается
	StartDate time.Time // Начало периода (включительно)
	EndDate   time.Time // Конец периода (включительно)

	// Данные запрашивающего для определения видимости деталей бронирований
	ViewerID   int64
	ViewerRole string
}

// BookingView детали бронирования в снимке расписания
// Заполняются только для тех, кому они видны
type BookingView struct {
	Reference string
	StudentID int64
	Message   *string
}

// SlotView состояние одной ячейки сетки расписания
type SlotView struct {
	State   string
	Booking *BookingView
}

// Response снимок расписания: каждая ячейка сетки будних дней
// представлена ключом "YYYY-MM-DD,HH:MM"
type Response struct {
	AdvisorID int64
	StartDate time.Time
	EndDate   time.Time
	Snapshot  map[string]SlotView
}
