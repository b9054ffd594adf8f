package update_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Стабы зависимостей

type stubReservationRepo struct {
	existing *domain.Reservation
	getErr   error

	userReservations []*domain.Reservation
	overlapping      []*domain.Reservation
	updated          *domain.Reservation

	// excludeID, переданные в выборки
	quotaExcludeID   *int64
	overlapExcludeID *int64
}

func (s *stubReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.existing, nil
}

func (s *stubReservationRepo) FindOverlapping(_ context.Context, _ int64, _ time.Time, start, end types.TimeString, excludeID *int64) ([]*domain.Reservation, error) {
	s.overlapExcludeID = excludeID

	result := make([]*domain.Reservation, 0, len(s.overlapping))
	for _, r := range s.overlapping {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.IsCancelled() {
			continue
		}
		if domain.Overlaps(r.StartTime, r.EndTime, start, end) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *stubReservationRepo) FindByUserCourtDate(_ context.Context, _, _ int64, _ time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	s.quotaExcludeID = excludeID

	result := make([]*domain.Reservation, 0, len(s.userReservations))
	for _, r := range s.userReservations {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (s *stubReservationRepo) Update(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	updated := *res
	s.updated = &updated
	return &updated, nil
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
}

func (s *stubUserRepo) Exists(_ context.Context, _ int64) (bool, error) {
	return s.exists, nil
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
		OpenTime:  "08:00",
		CloseTime: "22:00",
		Capacity:  1,
		Status:    domain.CourtStatusActive,
	}
}

func existingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:        42,
		UserID:    7,
		CourtID:   1,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.StatusActive,
	}
}

func newTestUseCase(resRepo *stubReservationRepo, crtRepo *stubCourtRepo, usrRepo *stubUserRepo) *UseCase {
	uc := NewUseCase(resRepo, crtRepo, usrRepo, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func updateRequest() *Request {
	return &Request{
		UserID:    7,
		CourtID:   1,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: "10:30",
		EndTime:   "11:30",
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	resRepo := &stubReservationRepo{existing: existingReservation()}
	uc := newTestUseCase(resRepo, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	resp, err := uc.Execute(context.Background(), 42, updateRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
	require.NotNil(t, resRepo.updated)
	assert.Equal(t, domain.StatusActive, resRepo.updated.Status)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	resRepo := &stubReservationRepo{getErr: reservationRepo.ErrReservationNotFound}
	uc := newTestUseCase(resRepo, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	_, err := uc.Execute(context.Background(), 42, updateRequest())

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_ExcludesSelfFromChecks(t *testing.T) {
	// Корт вместимостью 1: старое бронирование пересекается с новым интервалом,
	// но не должно конфликтовать само с собой
	old := existingReservation()
	resRepo := &stubReservationRepo{
		existing:         old,
		overlapping:      []*domain.Reservation{old},
		userReservations: []*domain.Reservation{old},
	}
	uc := newTestUseCase(resRepo, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	_, err := uc.Execute(context.Background(), 42, updateRequest())

	require.NoError(t, err)
	require.NotNil(t, resRepo.overlapExcludeID)
	assert.Equal(t, int64(42), *resRepo.overlapExcludeID)
	require.NotNil(t, resRepo.quotaExcludeID)
	assert.Equal(t, int64(42), *resRepo.quotaExcludeID)
}

func TestExecute_QuotaIgnoresOldDuration(t *testing.T) {
	// Старое бронирование 10:00-11:00 (60 минут) исключается из лимита:
	// перенос на 2 часа проходит, хотя 60 + 120 превысили бы лимит
	old := existingReservation()
	resRepo := &stubReservationRepo{
		existing:         old,
		userReservations: []*domain.Reservation{old},
	}
	uc := newTestUseCase(resRepo, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	req := updateRequest()
	req.StartTime = "14:00"
	req.EndTime = "16:00"

	_, err := uc.Execute(context.Background(), 42, req)

	assert.NoError(t, err)
}

func TestExecute_ConflictWithOtherReservation(t *testing.T) {
	other := &domain.Reservation{
		ID:        99,
		UserID:    8,
		CourtID:   1,
		Date:      time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.StatusActive,
	}
	resRepo := &stubReservationRepo{
		existing:    existingReservation(),
		overlapping: []*domain.Reservation{other},
	}
	uc := newTestUseCase(resRepo, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	_, err := uc.Execute(context.Background(), 42, updateRequest())

	assert.ErrorIs(t, err, ErrCourtNotAvailable)
}

func TestExecute_PastDate(t *testing.T) {
	resRepo := &stubReservationRepo{existing: existingReservation()}
	uc := newTestUseCase(resRepo, &stubCourtRepo{court: testCourt()}, &stubUserRepo{exists: true})

	req := updateRequest()
	req.Date = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), 42, req)

	assert.ErrorIs(t, err, ErrPastDate)
}
