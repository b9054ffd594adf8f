package update_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

var (
	// ErrReservationNotFound возвращается, когда редактируемое бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("update_reservation: user not found")

	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("update_reservation: court not found")

	// ErrPastDate возвращается при попытке перенести бронирование на прошедшую дату
	ErrPastDate = errors.New("update_reservation: reservation date is in the past")

	// ErrTooLateToBook возвращается, когда до начала бронирования на сегодня
	// остаётся меньше минимального времени
	ErrTooLateToBook = errors.New("update_reservation: too late to book this slot")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за окно работы корта
	ErrOutsideOperatingHours = errors.New("update_reservation: interval is outside court operating hours")

	// ErrInvalidInterval возвращается, когда время начала не раньше времени окончания
	ErrInvalidInterval = errors.New("update_reservation: start time must be before end time")

	// ErrDurationTooShort возвращается при длительности меньше минимальной
	ErrDurationTooShort = errors.New("update_reservation: reservation is too short")

	// ErrDurationTooLong возвращается при длительности больше максимальной
	ErrDurationTooLong = errors.New("update_reservation: reservation is too long")

	// ErrQuotaExceeded возвращается при превышении дневного лимита времени
	ErrQuotaExceeded = errors.New("update_reservation: daily reservation quota exceeded")

	// ErrCourtNotAvailable возвращается, когда все места корта заняты
	ErrCourtNotAvailable = errors.New("update_reservation: court is not available at this time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)

// LeadTimeError ошибка минимального времени до начала бронирования.
// Пустой MinStart означает, что перенести на сегодня уже нельзя.
type LeadTimeError struct {
	MinStart types.TimeString
}

func (e *LeadTimeError) Error() string {
	if e.MinStart.IsZero() {
		return "update_reservation: too late to book for today"
	}
	return fmt.Sprintf("update_reservation: start time must be at least %d minutes from now (earliest %s)",
		domain.MinLeadTimeMinutes, e.MinStart)
}

// Is позволяет матчить ошибку через errors.Is(err, ErrTooLateToBook)
func (e *LeadTimeError) Is(target error) bool {
	return target == ErrTooLateToBook
}

// OperatingHoursError ошибка выхода за окно работы корта
type OperatingHoursError struct {
	Open  types.TimeString
	Close types.TimeString
}

func (e *OperatingHoursError) Error() string {
	return fmt.Sprintf("update_reservation: interval is outside operating hours %s - %s", e.Open, e.Close)
}

// Is позволяет матчить ошибку через errors.Is(err, ErrOutsideOperatingHours)
func (e *OperatingHoursError) Is(target error) bool {
	return target == ErrOutsideOperatingHours
}

// QuotaExceededError ошибка превышения дневного лимита
type QuotaExceededError struct {
	TotalMinutes int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("update_reservation: daily quota exceeded, total would be %dh %dm",
		e.TotalMinutes/60, e.TotalMinutes%60)
}

// Is позволяет матчить ошибку через errors.Is(err, ErrQuotaExceeded)
func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}
