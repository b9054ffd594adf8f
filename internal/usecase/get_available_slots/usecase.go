package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
)

// UseCase use case для получения доступных слотов корта на дату
type UseCase struct {
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	courtRepo CourtRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: court=%d, date=%s, duration=%d",
		req.CourtID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	duration := normalizeDuration(req.DurationMinutes)
	now := uc.timeProvider.Now()

	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailableSlots: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	slots, err := generateTimeSlots(court, duration, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// Все неотменённые бронирования корта на дату: берём пересечения
	// с целым окном работы
	reservations, err := uc.reservationRepo.FindOverlapping(ctx, req.CourtID, req.Date, court.OpenTime, court.CloseTime, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	result, err := calculateAvailableSpots(slots, duration, reservations, court.Capacity)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to calculate spots: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate spots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: court=%d, date=%s, %d slots",
		req.CourtID, req.Date.Format(domain.DateFormat), len(result))

	return &Response{
		CourtID: req.CourtID,
		Date:    req.Date,
		Slots:   result,
	}, nil
}
