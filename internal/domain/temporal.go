package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Overlaps проверяет пересечение двух полуоткрытых интервалов [aStart, aEnd) и
// [bStart, bEnd). Интервалы, соприкасающиеся границами, не пересекаются:
// бронирование 10:00-11:00 не мешает бронированию 11:00-12:00.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// CountOverlapping подсчитывает неотменённые бронирования, пересекающиеся
// с интервалом [start, end). Бронирование с ID equal excludeID пропускается —
// при редактировании бронирование не должно конфликтовать само с собой.
func CountOverlapping(start, end types.TimeString, reservations []*Reservation, excludeID *int64) int {
	count := 0

	for _, r := range reservations {
		if r.IsCancelled() {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if Overlaps(r.StartTime, r.EndTime, start, end) {
			count++
		}
	}

	return count
}

// SumReservedMinutes суммирует длительность неотменённых бронирований в минутах,
// пропуская бронирование с ID equal excludeID
func SumReservedMinutes(reservations []*Reservation, excludeID *int64) (int, error) {
	total := 0

	for _, r := range reservations {
		if r.IsCancelled() {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}

		minutes, err := r.DurationMinutes()
		if err != nil {
			return 0, err
		}
		total += minutes
	}

	return total, nil
}

// IsSameDay проверяет, что две даты относятся к одному календарному дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата строго раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}

// dateOnly обнуляет компонент времени, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
