package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Стабы зависимостей

type stubReservationRepo struct {
	reservations []*domain.Reservation
}

func (s *stubReservationRepo) FindOverlapping(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString, _ *int64) ([]*domain.Reservation, error) {
	return s.reservations, nil
}

type stubCourtRepo struct {
	court *domain.Court
}

func (s *stubCourtRepo) GetByID(_ context.Context, id int64) (*domain.Court, error) {
	if s.court == nil || s.court.ID != id {
		return nil, courtRepo.ErrCourtNotFound
	}
	return s.court, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Фикстуры

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func testCourt() *domain.Court {
	return &domain.Court{
		ID:           1,
		Name:         "Центральный корт",
		Sport:        "tennis",
		OpenTime:     "08:00",
		CloseTime:    "22:00",
		Capacity:     2,
		Status:       domain.CourtStatusActive,
		PricePerHour: 1500,
	}
}

func newTestUseCase(resRepo *stubReservationRepo, court *domain.Court) *UseCase {
	uc := NewUseCase(resRepo, &stubCourtRepo{court: court}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func reservation(id int64, start, end types.TimeString, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		UserID:    7,
		CourtID:   1,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

// Тесты

func TestExecute_FutureDateFullDay(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, testCourt())

	resp, err := uc.Execute(context.Background(), &Request{
		CourtID: 1,
		Date:    time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	// Окно 08:00-22:00 с шагом 60 минут даёт 14 слотов
	require.Len(t, resp.Slots, 14)
	assert.Equal(t, types.TimeString("08:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].EndTime)
	assert.Equal(t, types.TimeString("21:00"), resp.Slots[13].StartTime)
	assert.Equal(t, types.TimeString("22:00"), resp.Slots[13].EndTime)

	for _, slot := range resp.Slots {
		assert.Equal(t, domain.DefaultSlotDurationMinutes, slot.DurationMinutes)
		assert.Equal(t, 2, slot.AvailableSpots)
		assert.Equal(t, 2, slot.TotalSpots)
	}
}

func TestExecute_SlotNotFittingBeforeCloseDropped(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, testCourt())

	resp, err := uc.Execute(context.Background(), &Request{
		CourtID:         1,
		Date:            time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	})

	require.NoError(t, err)
	// 08:00, 09:30, ..., 20:00; слот 21:30-23:00 не помещается до закрытия
	require.Len(t, resp.Slots, 9)
	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, types.TimeString("20:00"), last.StartTime)
	assert.Equal(t, types.TimeString("21:30"), last.EndTime)
}

func TestExecute_TodayRespectsLeadTime(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, testCourt())

	// Сейчас 12:00, минимальное начало 12:30 — первый доступный слот 13:00
	resp, err := uc.Execute(context.Background(), &Request{
		CourtID: 1,
		Date:    testNow,
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("13:00"), resp.Slots[0].StartTime)
	assert.Len(t, resp.Slots, 9)
}

func TestExecute_PastDateNoSlots(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, testCourt())

	resp, err := uc.Execute(context.Background(), &Request{
		CourtID: 1,
		Date:    time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SpotsCounting(t *testing.T) {
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			reservation(1, "10:00", "11:00", domain.StatusActive),
			reservation(2, "10:00", "11:30", domain.StatusActive),
			reservation(3, "10:00", "11:00", domain.StatusCancelled),
		},
	}
	uc := newTestUseCase(resRepo, testCourt())

	resp, err := uc.Execute(context.Background(), &Request{
		CourtID: 1,
		Date:    time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)

	byStart := make(map[types.TimeString]Slot, len(resp.Slots))
	for _, slot := range resp.Slots {
		byStart[slot.StartTime] = slot
	}

	// 10:00-11:00 пересекают два активных бронирования, отменённое не считается
	assert.Equal(t, 0, byStart["10:00"].AvailableSpots)
	// 11:00-12:00 пересекает только бронирование до 11:30
	assert.Equal(t, 1, byStart["11:00"].AvailableSpots)
	assert.Equal(t, 2, byStart["12:00"].AvailableSpots)
	// Бронирование, закончившееся ровно в 10:00, слот 09:00-10:00 не задевает
	assert.Equal(t, 2, byStart["09:00"].AvailableSpots)
}

func TestExecute_CourtNotFound(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		CourtID: 1,
		Date:    time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero court id", req: &Request{Date: testNow}},
		{name: "zero date", req: &Request{CourtID: 1}},
		{name: "duration too short", req: &Request{CourtID: 1, Date: testNow, DurationMinutes: 15}},
		{name: "duration too long", req: &Request{CourtID: 1, Date: testNow, DurationMinutes: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&stubReservationRepo{}, testCourt())

			_, err := uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
