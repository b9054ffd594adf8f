package domain

// Бизнес-правила бронирования
const (
	// MinLeadTimeMinutes минимальное время до начала бронирования на сегодня
	MinLeadTimeMinutes = 30

	// MinReservationMinutes минимальная длительность бронирования
	MinReservationMinutes = 30

	// MaxReservationMinutes максимальная длительность бронирования
	MaxReservationMinutes = 120

	// MaxUserMinutesPerDay лимит суммарного времени бронирований
	// одного пользователя на одном корте за день
	MaxUserMinutesPerDay = 120
)

// Ограничения параметров корта
const (
	MinCourtCapacity          = 1
	MaxCourtCapacity          = 50
	MinOperatingWindowMinutes = 60
	MaxCourtNameLength        = 100
	MaxCourtLocationLength    = 200
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultSlotDurationMinutes длительность слота по умолчанию при просмотре
// доступных слотов, если клиент не указал свою
const DefaultSlotDurationMinutes = 60
