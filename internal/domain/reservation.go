package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// ReservationStatus статус бронирования корта
type ReservationStatus string

const (
	// StatusActive бронирование актуально, его время ещё не прошло
	StatusActive ReservationStatus = "active"
	// StatusFinished время бронирования прошло (терминальный статус)
	StatusFinished ReservationStatus = "finished"
	// StatusCancelled бронирование отменено явно (терминальный статус,
	// никогда не выставляется автоматическим пересчётом)
	StatusCancelled ReservationStatus = "cancelled"
)

// ValidReservationStatus проверяет, что строка является допустимым статусом
func ValidReservationStatus(s string) bool {
	switch ReservationStatus(s) {
	case StatusActive, StatusFinished, StatusCancelled:
		return true
	default:
		return false
	}
}

// Reservation бронирование корта пользователем на конкретную дату и интервал времени
type Reservation struct {
	ID        int64
	UserID    int64
	CourtID   int64
	Date      time.Time // дата бронирования без времени
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    ReservationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled возвращает true, если бронирование отменено
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// IsTerminal возвращает true, если статус терминальный и автоматический
// пересчёт его больше не трогает
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusFinished || r.Status == StatusCancelled
}

// DurationMinutes возвращает длительность бронирования в минутах
func (r *Reservation) DurationMinutes() (int, error) {
	return r.StartTime.MinutesUntil(r.EndTime)
}

// DetermineReservationStatus вычисляет статус бронирования по текущему времени.
// Бронирование завершено, если его дата уже прошла, либо дата сегодняшняя
// и время окончания раньше текущего. Иначе бронирование активно.
// Отменённые бронирования через эту функцию не проходят.
func DetermineReservationStatus(date time.Time, endTime types.TimeString, now time.Time) ReservationStatus {
	today := dateOnly(now)
	resDate := dateOnly(date)

	if resDate.Before(today) {
		return StatusFinished
	}
	if resDate.Equal(today) && endTime.IsBefore(types.NewTimeString(now)) {
		return StatusFinished
	}
	return StatusActive
}

// ReservationFilter фильтр для выборки бронирований
type ReservationFilter struct {
	CourtID         *int64
	UserID          *int64
	Date            *time.Time
	ExcludeID       *int64 // исключить бронирование (режим редактирования)
	IncludeInactive bool   // включать ли отменённые бронирования
}
