package create_reservation

import (
	"context"
	"errors"
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
	userReservations []*domain.Reservation
	overlapping      []*domain.Reservation
	created          *domain.Reservation
	createErr        error
}

func (s *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *res
	created.ID = 100
	s.created = &created
	return &created, nil
}

func (s *stubReservationRepo) FindOverlapping(_ context.Context, _ int64, _ time.Time, _, _ types.TimeString, _ *int64) ([]*domain.Reservation, error) {
	return s.overlapping, nil
}

func (s *stubReservationRepo) FindByUserCourtDate(_ context.Context, _, _ int64, _ time.Time, _ *int64) ([]*domain.Reservation, error) {
	return s.userReservations, nil
}

type stubCourtRepo struct {
	court *domain.Court
	err   error
}

func (s *stubCourtRepo) GetByID(_ context.Context, _ int64) (*domain.Court, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.court, nil
}

type stubUserRepo struct {
	exists bool
	err    error
}

func (s *stubUserRepo) Exists(_ context.Context, _ int64) (bool, error) {
	return s.exists, s.err
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
		ID:        1,
		Name:      "Центральный корт",
		Sport:     "tennis",
		OpenTime:  "08:00",
		CloseTime: "22:00",
		Capacity:  2,
		Status:    domain.CourtStatusActive,
	}
}

func newTestUseCase(resRepo *stubReservationRepo, crtRepo *stubCourtRepo, usrRepo *stubUserRepo) *UseCase {
	uc := NewUseCase(resRepo, crtRepo, usrRepo, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		UserID:    7,
		CourtID:   1,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	resRepo := &stubReservationRepo{}
	uc := newTestUseCase(resRepo, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "active", resp.Status)
	require.NotNil(t, resRepo.created)
	assert.Equal(t, domain.StatusActive, resRepo.created.Status)
}

func TestExecute_UserNotFound(t *testing.T) {
	// Пользователь проверяется раньше корта
	uc := newTestUseCase(&stubReservationRepo{}, &stubCourtRepo{err: courtRepo.ErrCourtNotFound}, &stubUserRepo{exists: false})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_CourtNotFound(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubCourtRepo{err: courtRepo.ErrCourtNotFound}, &stubUserRepo{exists: true})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	req := validRequest()
	req.Date = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPastDate)
}

func TestExecute_LeadTimeBoundary(t *testing.T) {
	// now = 12:00, минимум 30 минут: старт 12:30 проходит, 12:29 — нет
	tests := []struct {
		name    string
		start   types.TimeString
		end     types.TimeString
		wantErr bool
	}{
		{name: "exactly 30 minutes ahead", start: "12:30", end: "13:30", wantErr: false},
		{name: "29 minutes ahead", start: "12:29", end: "13:29", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&stubReservationRepo{}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

			req := validRequest()
			req.Date = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC) // сегодня
			req.StartTime = tt.start
			req.EndTime = tt.end

			_, err := uc.Execute(context.Background(), req)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooLateToBook)

				var leadErr *LeadTimeError
				require.ErrorAs(t, err, &leadErr)
				assert.Equal(t, types.TimeString("12:30"), leadErr.MinStart)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_LeadTimePastMidnight(t *testing.T) {
	// now = 23:45, now+30m выходит за границу суток: на сегодня бронировать
	// уже нельзя, и ошибка не предлагает несуществующее время начала
	uc := newTestUseCase(&stubReservationRepo{}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 10, 15, 23, 45, 0, 0, time.UTC)}

	req := validRequest()
	req.Date = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC) // сегодня
	req.StartTime = "23:50"
	req.EndTime = "23:59"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooLateToBook)

	var leadErr *LeadTimeError
	require.ErrorAs(t, err, &leadErr)
	assert.True(t, leadErr.MinStart.IsZero())
}

func TestExecute_LeadTimeNotAppliedToFutureDates(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	// Завтра в 08:00 — раньше чем now+30m по часам, но это не сегодня
	req := validRequest()
	req.StartTime = "08:00"
	req.EndTime = "09:00"

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
	}{
		{name: "starts before opening", start: "07:30", end: "08:30"},
		{name: "ends after closing", start: "21:30", end: "22:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&stubReservationRepo{}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

			req := validRequest()
			req.StartTime = tt.start
			req.EndTime = tt.end

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrOutsideOperatingHours)

			var hoursErr *OperatingHoursError
			require.ErrorAs(t, err, &hoursErr)
			assert.Equal(t, types.TimeString("08:00"), hoursErr.Open)
			assert.Equal(t, types.TimeString("22:00"), hoursErr.Close)
		})
	}
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	req := validRequest()
	req.StartTime = "11:00"
	req.EndTime = "11:00"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_DurationBounds(t *testing.T) {
	tests := []struct {
		name    string
		start   types.TimeString
		end     types.TimeString
		wantErr error
	}{
		{name: "25 minutes is too short", start: "10:00", end: "10:25", wantErr: ErrDurationTooShort},
		{name: "30 minutes is allowed", start: "10:00", end: "10:30", wantErr: nil},
		{name: "120 minutes is allowed", start: "10:00", end: "12:00", wantErr: nil},
		{name: "150 minutes is too long", start: "10:00", end: "12:30", wantErr: ErrDurationTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&stubReservationRepo{}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

			req := validRequest()
			req.StartTime = tt.start
			req.EndTime = tt.end

			_, err := uc.Execute(context.Background(), req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_QuotaBoundary(t *testing.T) {
	existing := []*domain.Reservation{
		{ID: 1, UserID: 7, CourtID: 1, StartTime: "08:00", EndTime: "09:00", Status: domain.StatusActive}, // 60 минут
		{ID: 2, UserID: 7, CourtID: 1, StartTime: "18:00", EndTime: "18:30", Status: domain.StatusActive}, // 30 минут
	}

	t.Run("exactly at the limit passes", func(t *testing.T) {
		// 90 занято + 30 новых = 120, ровно лимит
		uc := newTestUseCase(&stubReservationRepo{userReservations: existing}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

		req := validRequest()
		req.StartTime = "12:00"
		req.EndTime = "12:30"

		_, err := uc.Execute(context.Background(), req)

		assert.NoError(t, err)
	})

	t.Run("one minute over the limit fails", func(t *testing.T) {
		// 90 занято + 45 новых = 135 > 120
		uc := newTestUseCase(&stubReservationRepo{userReservations: existing}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

		req := validRequest()
		req.StartTime = "12:00"
		req.EndTime = "12:45"

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrQuotaExceeded)

		var quotaErr *QuotaExceededError
		require.ErrorAs(t, err, &quotaErr)
		assert.Equal(t, 135, quotaErr.TotalMinutes)
	})

	t.Run("cancelled reservations do not count", func(t *testing.T) {
		cancelled := []*domain.Reservation{
			{ID: 3, UserID: 7, CourtID: 1, StartTime: "08:00", EndTime: "10:00", Status: domain.StatusCancelled},
		}
		uc := newTestUseCase(&stubReservationRepo{userReservations: cancelled}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

		req := validRequest()
		req.StartTime = "12:00"
		req.EndTime = "14:00"

		_, err := uc.Execute(context.Background(), req)

		assert.NoError(t, err)
	})
}

func TestExecute_CapacityLimit(t *testing.T) {
	overlapping := []*domain.Reservation{
		{ID: 1, UserID: 2, CourtID: 1, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusActive},
		{ID: 2, UserID: 3, CourtID: 1, StartTime: "10:30", EndTime: "11:30", Status: domain.StatusActive},
	}

	t.Run("full court rejects the booking", func(t *testing.T) {
		// Вместимость 2, оба места заняты
		uc := newTestUseCase(&stubReservationRepo{overlapping: overlapping}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

		_, err := uc.Execute(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrCourtNotAvailable)
	})

	t.Run("one free spot accepts the booking", func(t *testing.T) {
		uc := newTestUseCase(&stubReservationRepo{overlapping: overlapping[:1]}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

		_, err := uc.Execute(context.Background(), validRequest())

		assert.NoError(t, err)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&stubReservationRepo{}, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	req := validRequest()
	req.UserID = 0

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InternalErrorOnCreate(t *testing.T) {
	resRepo := &stubReservationRepo{createErr: errors.New("connection reset")}
	uc := newTestUseCase(resRepo, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
}
