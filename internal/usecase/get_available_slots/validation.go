package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: court_id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinReservationMinutes || req.DurationMinutes > domain.MaxReservationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinReservationMinutes, domain.MaxReservationMinutes)
		}
	}

	return nil
}

// normalizeDuration подставляет длительность по умолчанию
func normalizeDuration(duration int) int {
	if duration == 0 {
		return domain.DefaultSlotDurationMinutes
	}
	return duration
}
