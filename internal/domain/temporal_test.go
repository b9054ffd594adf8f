package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd types.TimeString
		want                       bool
	}{
		{name: "partial overlap", aStart: "10:00", aEnd: "11:00", bStart: "10:30", bEnd: "11:30", want: true},
		{name: "containment", aStart: "10:00", aEnd: "12:00", bStart: "10:30", bEnd: "11:00", want: true},
		{name: "identical", aStart: "10:00", aEnd: "11:00", bStart: "10:00", bEnd: "11:00", want: true},
		{name: "touching end to start", aStart: "10:00", aEnd: "11:00", bStart: "11:00", bEnd: "12:00", want: false},
		{name: "touching start to end", aStart: "11:00", aEnd: "12:00", bStart: "10:00", bEnd: "11:00", want: false},
		{name: "disjoint", aStart: "08:00", aEnd: "09:00", bStart: "10:00", bEnd: "11:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestCountOverlapping(t *testing.T) {
	reservations := []*Reservation{
		{ID: 1, StartTime: "10:00", EndTime: "11:00", Status: StatusActive},
		{ID: 2, StartTime: "10:30", EndTime: "11:30", Status: StatusActive},
		{ID: 3, StartTime: "10:00", EndTime: "11:00", Status: StatusCancelled},
		{ID: 4, StartTime: "12:00", EndTime: "13:00", Status: StatusActive},
	}

	// Отменённые и несоприкасающиеся не считаются
	assert.Equal(t, 2, CountOverlapping("10:00", "11:00", reservations, nil))

	// Соприкасающийся интервал не конфликтует
	assert.Equal(t, 1, CountOverlapping("11:00", "12:00", reservations, nil))

	// Исключение собственного ID при редактировании
	assert.Equal(t, 1, CountOverlapping("10:00", "11:00", reservations, ptr.Ptr(int64(1))))
}

func TestSumReservedMinutes(t *testing.T) {
	reservations := []*Reservation{
		{ID: 1, StartTime: "10:00", EndTime: "11:00", Status: StatusActive},    // 60
		{ID: 2, StartTime: "15:00", EndTime: "15:30", Status: StatusActive},    // 30
		{ID: 3, StartTime: "18:00", EndTime: "20:00", Status: StatusCancelled}, // пропускается
	}

	total, err := SumReservedMinutes(reservations, nil)
	require.NoError(t, err)
	assert.Equal(t, 90, total)

	total, err = SumReservedMinutes(reservations, ptr.Ptr(int64(1)))
	require.NoError(t, err)
	assert.Equal(t, 30, total)

	total, err = SumReservedMinutes(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2025, 10, 15, 23, 30, 0, 0, time.UTC)

	assert.True(t, IsDateInPast(date(2025, 10, 14), now))
	// Сегодня — не прошлое, даже поздно вечером
	assert.False(t, IsDateInPast(date(2025, 10, 15), now))
	assert.False(t, IsDateInPast(date(2025, 10, 16), now))
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2025, 10, 15, 0, 1, 0, 0, time.UTC)
	b := time.Date(2025, 10, 15, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsSameDay(a, b))
	assert.False(t, IsSameDay(b, c))
}
