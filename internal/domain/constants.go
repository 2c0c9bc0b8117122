package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot grid constants: weekday slots 09:00-17:30, 30 minutes each
const (
	SlotDurationMinutes = 30
	WorkdayStart        = "09:00"
	WorkdayEnd          = "18:00" // последний слот 17:30-18:00
)

// Business validation constants
const (
	MaxMessageLength = 300

	// DefaultLeadMinutes минимальный интервал до начала слота,
	// в пределах которого слот нельзя открыть или забронировать
	DefaultLeadMinutes = 30
)

// Roles как их передает шлюз аутентификации
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleAdmin   = "admin"
)
