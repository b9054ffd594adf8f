package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// generateTimeSlots генерирует начала слотов от открытия корта с шагом duration.
// Слот, не помещающийся целиком до закрытия, отбрасывается. Для сегодняшней
// даты отбрасываются слоты, начинающиеся раньше минимального времени до
// начала бронирования.
func generateTimeSlots(
	court *domain.Court,
	duration int,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	if domain.IsDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	allSlots := make([]types.TimeString, 0)
	current := court.OpenTime

	for current.IsBefore(court.CloseTime) {
		slotEnd, err := current.AddMinutes(duration)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(court.CloseTime) {
			break
		}

		allSlots = append(allSlots, current)

		current = slotEnd
	}

	if !domain.IsSameDay(requestDate, now) {
		return allSlots, nil
	}

	minStart, err := types.NewTimeString(now).AddMinutes(domain.MinLeadTimeMinutes)
	if err != nil {
		// До конца суток меньше минимального времени — сегодня слотов нет
		return []types.TimeString{}, nil
	}

	available := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if !slot.IsBefore(minStart) {
			available = append(available, slot)
		}
	}

	return available, nil
}

// calculateAvailableSpots вычисляет число свободных мест для каждого слота
// по количеству пересекающихся неотменённых бронирований
func calculateAvailableSpots(
	slots []types.TimeString,
	duration int,
	reservations []*domain.Reservation,
	capacity int,
) ([]Slot, error) {
	result := make([]Slot, 0, len(slots))

	for _, start := range slots {
		end, err := start.AddMinutes(duration)
		if err != nil {
			return nil, err
		}

		overlapping := domain.CountOverlapping(start, end, reservations, nil)

		available := capacity - overlapping
		if available < 0 {
			available = 0
		}

		result = append(result, Slot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: duration,
			AvailableSpots:  available,
			TotalSpots:      capacity,
		})
	}

	return result, nil
}
