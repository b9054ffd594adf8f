package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
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

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(date, now time.Time) error {
	if domain.IsDateInPast(date, now) {
		return ErrPastDate
	}
	return nil
}

// validateLeadTime проверяет минимальное время до начала бронирования.
// Для бронирования на сегодня время начала должно отстоять от текущего
// минимум на MinLeadTimeMinutes. Для будущих дат проверка не нужна.
func validateLeadTime(date time.Time, startTime types.TimeString, now time.Time) error {
	if !domain.IsSameDay(date, now) {
		return nil
	}

	minStart, err := types.NewTimeString(now).AddMinutes(domain.MinLeadTimeMinutes)
	if err != nil {
		// Минимальное время вышло за границу суток — начать сегодня уже нельзя,
		// пустой MinStart означает именно это
		return &LeadTimeError{}
	}

	if startTime.IsBefore(minStart) {
		return &LeadTimeError{MinStart: minStart}
	}

	return nil
}

// validateInterval проверяет, что интервал [start, end) целиком лежит в окне
// работы корта и что начало раньше окончания
func validateInterval(court *domain.Court, startTime, endTime types.TimeString) error {
	if startTime.IsBefore(court.OpenTime) || endTime.IsAfter(court.CloseTime) {
		return &OperatingHoursError{Open: court.OpenTime, Close: court.CloseTime}
	}

	if !startTime.IsBefore(endTime) {
		return ErrInvalidInterval
	}

	return nil
}

// validateDuration проверяет границы длительности бронирования
func validateDuration(startTime, endTime types.TimeString) error {
	minutes, err := startTime.MinutesUntil(endTime)
	if err != nil {
		return fmt.Errorf("%w: failed to compute duration: %v", ErrInternal, err)
	}

	if minutes < domain.MinReservationMinutes {
		return fmt.Errorf("%w: minimum is %d minutes", ErrDurationTooShort, domain.MinReservationMinutes)
	}
	if minutes > domain.MaxReservationMinutes {
		return fmt.Errorf("%w: maximum is %d minutes", ErrDurationTooLong, domain.MaxReservationMinutes)
	}

	return nil
}

// validateQuota проверяет дневной лимит времени пользователя на корте.
// Сумма длительностей неотменённых бронирований пользователя на этом корте
// за эту дату плюс новая бронь не должна превышать MaxUserMinutesPerDay.
func validateQuota(existing []*domain.Reservation, startTime, endTime types.TimeString, excludeID *int64) error {
	reserved, err := domain.SumReservedMinutes(existing, excludeID)
	if err != nil {
		return fmt.Errorf("%w: failed to sum reserved minutes: %v", ErrInternal, err)
	}

	candidate, err := startTime.MinutesUntil(endTime)
	if err != nil {
		return fmt.Errorf("%w: failed to compute duration: %v", ErrInternal, err)
	}

	total := reserved + candidate
	if total > domain.MaxUserMinutesPerDay {
		return &QuotaExceededError{TotalMinutes: total}
	}

	return nil
}

// validateAvailability проверяет, что число пересекающихся бронирований
// меньше вместимости корта. Вместимость ограничивает одновременные
// бронирования, а не общее число броней за день.
func validateAvailability(court *domain.Court, overlapping []*domain.Reservation, startTime, endTime types.TimeString, excludeID *int64) error {
	count := domain.CountOverlapping(startTime, endTime, overlapping, excludeID)
	if count >= court.Capacity {
		return ErrCourtNotAvailable
	}
	return nil
}
