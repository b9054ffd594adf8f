package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Service сервис для работы с бронированиями: чтение, жизненный цикл
// статусов и проверка доступности кортов
type Service struct {
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	courtRepo CourtRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID.
// Перед чтением статусы приводятся в соответствие с текущим временем.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	if _, err := s.ReconcileStatuses(ctx); err != nil {
		return nil, err
	}

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// ListAll получает все бронирования, отсортированные по возрастанию ID.
// Перед чтением статусы приводятся в соответствие с текущим временем.
func (s *Service) ListAll(ctx context.Context) (*models.ReservationListResponse, error) {
	s.logger.Info("ListAll: fetching all reservations")

	if _, err := s.ReconcileStatuses(ctx); err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// GetUserReservations получает историю бронирований пользователя
func (s *Service) GetUserReservations(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d", userID)

	if _, err := s.ReconcileStatuses(ctx); err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), userID)
	return models.FromDomainReservationList(reservations), nil
}

// GetCourtReservations получает бронирования корта
func (s *Service) GetCourtReservations(ctx context.Context, courtID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCourtReservations: fetching reservations for court=%d", courtID)

	if _, err := s.courtRepo.GetByID(ctx, courtID); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("GetCourtReservations: court id=%d not found", courtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("GetCourtReservations: failed to get court id=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetCourtReservations - failed to get court: %v", ErrInternal, err)
	}

	if _, err := s.ReconcileStatuses(ctx); err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.GetByCourtID(ctx, courtID)
	if err != nil {
		s.logger.Error("GetCourtReservations: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetCourtReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCourtReservations: successfully fetched %d reservations for court=%d", len(reservations), courtID)
	return models.FromDomainReservationList(reservations), nil
}

// CheckAvailability проверяет, свободен ли корт в интервале [startTime, endTime).
// Корт доступен, пока число пересекающихся неотменённых бронирований
// меньше его вместимости. Соприкасающиеся интервалы не конфликтуют.
func (s *Service) CheckAvailability(ctx context.Context, req *models.CheckAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("CheckAvailability: court=%d, date=%s, interval=%s-%s",
		req.CourtID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	startTime := types.TimeString(req.StartTime)
	endTime := types.TimeString(req.EndTime)

	if err := s.validateAvailabilityRequest(req, startTime, endTime); err != nil {
		s.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	court, err := s.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("CheckAvailability: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("CheckAvailability: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: CheckAvailability - failed to get court: %v", ErrInternal, err)
	}

	overlapping, err := s.reservationRepo.FindOverlapping(ctx, req.CourtID, req.Date, startTime, endTime, nil)
	if err != nil {
		s.logger.Error("CheckAvailability: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: CheckAvailability - repository error: %v", ErrInternal, err)
	}

	available := len(overlapping) < court.Capacity
	s.logger.Info("CheckAvailability: court=%d, overlapping=%d, capacity=%d, available=%v",
		req.CourtID, len(overlapping), court.Capacity, available)

	return &models.AvailabilityResponse{
		CourtID:   req.CourtID,
		Date:      req.Date.Format(domain.DateFormat),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Available: available,
	}, nil
}

// UpdateStatus обновляет статус бронирования.
// Единственный путь перевода бронирования в статус "cancelled" —
// автоматика жизненного цикла отменой не занимается.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s", id, req.Status)

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if _, err := s.reservationRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to re-read reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - failed to re-read: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", id, newStatus)
	return models.FromDomainReservation(res), nil
}

// Delete удаляет бронирование
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting reservation id=%d", id)

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", id)
	return nil
}

// ReconcileStatuses приводит статусы неотменённых бронирований в соответствие
// с текущим временем: active переходит в finished, когда дата прошла или
// сегодняшнее бронирование уже закончилось. Единственный автоматический
// переход — active -> finished: finished и cancelled терминальны, бронирование
// никогда не возвращается в active. Возвращает true, если хотя бы один
// статус изменился.
func (s *Service) ReconcileStatuses(ctx context.Context) (bool, error) {
	now := s.timeProvider.Now()

	reservations, err := s.reservationRepo.ListNotCancelled(ctx)
	if err != nil {
		s.logger.Error("ReconcileStatuses: repository error: %v", err)
		return false, fmt.Errorf("%w: ReconcileStatuses - repository error: %v", ErrInternal, err)
	}

	changed := false
	for _, res := range reservations {
		if res.Status != domain.StatusActive {
			continue
		}

		actual := domain.DetermineReservationStatus(res.Date, res.EndTime, now)
		if actual == res.Status {
			continue
		}

		if err := s.reservationRepo.UpdateStatus(ctx, res.ID, actual); err != nil {
			s.logger.Error("ReconcileStatuses: failed to update reservation id=%d: %v", res.ID, err)
			return changed, fmt.Errorf("%w: ReconcileStatuses - failed to update status: %v", ErrInternal, err)
		}

		s.logger.Info("ReconcileStatuses: reservation id=%d moved %s -> %s", res.ID, res.Status, actual)
		changed = true
	}

	return changed, nil
}

// validateAvailabilityRequest проверяет входные данные проверки доступности
func (s *Service) validateAvailabilityRequest(req *models.CheckAvailabilityRequest, startTime, endTime types.TimeString) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: court_id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := startTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start_time format, expected HH:MM", ErrInvalidInput)
	}
	if err := endTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid end_time format, expected HH:MM", ErrInvalidInput)
	}
	if !startTime.IsBefore(endTime) {
		return fmt.Errorf("%w: start_time must be before end_time", ErrInvalidInput)
	}
	return nil
}
