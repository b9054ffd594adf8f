package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
//
// Порядок проверок фиксирован и определяет, какую ошибку увидит пользователь:
// пользователь -> корт -> дата -> время до начала -> окно работы -> длительность ->
// дневной лимит -> доступность. Проверки лимита и доступности вместе со вставкой
// выполняются в сериализуемой транзакции: без неё два параллельных запроса на один
// слот оба увидят count < capacity и оба вставятся, нарушив лимит вместимости.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, court=%d, date=%s, time=%s-%s",
		req.UserID, req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование пользователя
	exists, err := uc.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to check user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to check user: %w", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
		return nil, ErrUserNotFound
	}

	// 4. Получаем корт (каждый раз читаем заново, окно работы могло измениться)
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("CreateReservation: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateReservation: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %w", ErrInternal, err)
	}

	// 5. Дата не в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	// 6. Минимальное время до начала для бронирования на сегодня
	if err := validateLeadTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateReservation: lead time validation failed: %v", err)
		return nil, err
	}

	// 7. Интервал внутри окна работы корта, начало раньше окончания
	if err := validateInterval(court, req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateReservation: interval validation failed: %v", err)
		return nil, err
	}

	// 8. Границы длительности
	if err := validateDuration(req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateReservation: duration validation failed: %v", err)
		return nil, err
	}

	var result *domain.Reservation

	// 9. Лимит, доступность и вставка — в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Дневной лимит времени пользователя на корте
		userReservations, err := uc.reservationRepo.FindByUserCourtDate(txCtx, req.UserID, req.CourtID, req.Date, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get user reservations: %v", err)
			return fmt.Errorf("%w: failed to get user reservations: %w", ErrInternal, err)
		}

		if err := validateQuota(userReservations, req.StartTime, req.EndTime, nil); err != nil {
			uc.logger.Warn("CreateReservation: quota validation failed: %v", err)
			return err
		}

		// 9.2. Доступность слота с учётом вместимости корта
		overlapping, err := uc.reservationRepo.FindOverlapping(txCtx, req.CourtID, req.Date, req.StartTime, req.EndTime, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to get overlapping reservations: %w", ErrInternal, err)
		}

		if err := validateAvailability(court, overlapping, req.StartTime, req.EndTime, nil); err != nil {
			uc.logger.Warn("CreateReservation: slot not available, %d/%d spots taken",
				len(overlapping), court.Capacity)
			return err
		}

		// 9.3. Начальный статус вычисляется по текущему времени, как и при
		// автоматическом пересчёте. Валидация уже гарантирует будущее время,
		// но правило применяется буквально и здесь.
		reservation := &domain.Reservation{
			UserID:    req.UserID,
			CourtID:   req.CourtID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Status:    domain.DetermineReservationStatus(req.Date, req.EndTime, now),
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return fromDomain(result), nil
}
