package update_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
)

// UseCase use case для изменения существующего бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	userRepo        UserRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	courtRepo CourtRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		userRepo:        userRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case изменения бронирования.
//
// Порядок проверок тот же, что и при создании. Проверки лимита и доступности
// выполняются против остальных бронирований: само редактируемое бронирование
// исключается, чтобы оно не конфликтовало с самим собой.
func (uc *UseCase) Execute(ctx context.Context, id int64, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: id=%d, user=%d, court=%d, date=%s, time=%s-%s",
		id, req.UserID, req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем редактируемое бронирование
	existing, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("UpdateReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
	}

	// 4. Проверяем существование пользователя
	userExists, err := uc.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to check user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to check user: %w", ErrInternal, err)
	}
	if !userExists {
		uc.logger.Warn("UpdateReservation: user id=%d not found", req.UserID)
		return nil, ErrUserNotFound
	}

	// 5. Получаем корт
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("UpdateReservation: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %w", ErrInternal, err)
	}

	// 6. Дата не в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("UpdateReservation: date validation failed: %v", err)
		return nil, err
	}

	// 7. Минимальное время до начала для переноса на сегодня
	if err := validateLeadTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("UpdateReservation: lead time validation failed: %v", err)
		return nil, err
	}

	// 8. Интервал внутри окна работы корта
	if err := validateInterval(court, req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("UpdateReservation: interval validation failed: %v", err)
		return nil, err
	}

	// 9. Границы длительности
	if err := validateDuration(req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("UpdateReservation: duration validation failed: %v", err)
		return nil, err
	}

	var result *domain.Reservation

	// 10. Лимит, доступность и запись — в сериализуемой транзакции,
	// с исключением самого бронирования из обеих проверок
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		userReservations, err := uc.reservationRepo.FindByUserCourtDate(txCtx, req.UserID, req.CourtID, req.Date, &id)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get user reservations: %v", err)
			return fmt.Errorf("%w: failed to get user reservations: %w", ErrInternal, err)
		}

		if err := validateQuota(userReservations, req.StartTime, req.EndTime, &id); err != nil {
			uc.logger.Warn("UpdateReservation: quota validation failed: %v", err)
			return err
		}

		overlapping, err := uc.reservationRepo.FindOverlapping(txCtx, req.CourtID, req.Date, req.StartTime, req.EndTime, &id)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to get overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to get overlapping reservations: %w", ErrInternal, err)
		}

		if err := validateAvailability(court, overlapping, req.StartTime, req.EndTime, &id); err != nil {
			uc.logger.Warn("UpdateReservation: slot not available, %d/%d spots taken",
				len(overlapping), court.Capacity)
			return err
		}

		// Статус пересчитывается по текущему времени, как при создании
		updated := &domain.Reservation{
			ID:        existing.ID,
			UserID:    req.UserID,
			CourtID:   req.CourtID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Status:    domain.DetermineReservationStatus(req.Date, req.EndTime, now),
		}

		saved, err := uc.reservationRepo.Update(txCtx, updated)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
		}

		result = saved
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d", result.ID)

	return fromDomain(result), nil
}
