package courts

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/courts/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Service сервис для работы с кортами
type Service struct {
	courtRepo    CourtRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса кортов
func NewService(courtRepo CourtRepository, logger Logger) *Service {
	return &Service{
		courtRepo:    courtRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает новый корт.
// Начальный статус вычисляется по текущему времени относительно окна работы.
func (s *Service) Create(ctx context.Context, req *models.CreateCourtRequest) (*models.CourtResponse, error) {
	s.logger.Info("Create: creating court name=%s, sport=%s", req.Name, req.Sport)

	openTime := types.TimeString(req.OpenTime)
	closeTime := types.TimeString(req.CloseTime)

	if err := validateCourtAttrs(req.Name, req.Sport, req.Location, req.PricePerHour, req.Capacity, openTime, closeTime); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	now := s.timeProvider.Now()
	court := &domain.Court{
		Name:         req.Name,
		Sport:        req.Sport,
		Location:     req.Location,
		PricePerHour: req.PricePerHour,
		Capacity:     req.Capacity,
		OpenTime:     openTime,
		CloseTime:    closeTime,
		Status:       domain.DetermineCourtStatus(openTime, closeTime, now),
	}

	created, err := s.courtRepo.Create(ctx, court)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created court id=%d", created.ID)
	return models.FromDomainCourt(created, now), nil
}

// GetByID получает корт по ID со статусом на момент запроса
func (s *Service) GetByID(ctx context.Context, id int64) (*models.CourtResponse, error) {
	s.logger.Info("GetByID: fetching court id=%d", id)

	court, err := s.courtRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("GetByID: court id=%d not found", id)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("GetByID: repository error for court id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCourt(court, s.timeProvider.Now()), nil
}

// List получает список кортов с фильтрацией по виду спорта и статусу.
// Статус фильтруется и отдаётся по фактическому состоянию на момент запроса,
// открытые корты идут первыми.
func (s *Service) List(ctx context.Context, req *models.ListCourtsRequest) (*models.CourtListResponse, error) {
	s.logger.Info("List: fetching courts, sport=%v, status=%v", req.Sport, req.Status)

	if req.Status != nil {
		status := domain.CourtStatus(*req.Status)
		if status != domain.CourtStatusActive && status != domain.CourtStatusInactive {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
	}

	// Статусный фильтр применяем после наложения фактического статуса,
	// поэтому в репозиторий уходит только фильтр по виду спорта
	courts, err := s.courtRepo.List(ctx, domain.CourtFilter{Sport: req.Sport})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	if req.Status != nil {
		wanted := domain.CourtStatus(*req.Status)
		filtered := make([]*domain.Court, 0, len(courts))
		for _, court := range courts {
			if court.RealTimeStatus(now) == wanted {
				filtered = append(filtered, court)
			}
		}
		courts = filtered
	}

	// Открытые корты первыми, внутри группы сохраняем порядок по ID
	sort.SliceStable(courts, func(i, j int) bool {
		iActive := courts[i].RealTimeStatus(now) == domain.CourtStatusActive
		jActive := courts[j].RealTimeStatus(now) == domain.CourtStatusActive
		return iActive && !jActive
	})

	s.logger.Info("List: successfully fetched %d courts", len(courts))
	return models.FromDomainCourtList(courts, now), nil
}

// Update обновляет корт. Незаполненные поля запроса не изменяются.
// Явно выставленный статус сохраняется: корт, отключённый администратором,
// остаётся inactive независимо от окна работы.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateCourtRequest) (*models.CourtResponse, error) {
	s.logger.Info("Update: updating court id=%d", id)

	court, err := s.courtRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("Update: court id=%d not found", id)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("Update: repository error for court id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	applyCourtUpdate(court, req)

	if req.Status != nil {
		status := domain.CourtStatus(*req.Status)
		if status != domain.CourtStatusActive && status != domain.CourtStatusInactive {
			s.logger.Warn("Update: invalid status=%s for court id=%d", *req.Status, id)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		court.Status = status
	}

	if err := validateCourtAttrs(court.Name, court.Sport, court.Location, court.PricePerHour, court.Capacity, court.OpenTime, court.CloseTime); err != nil {
		s.logger.Warn("Update: validation failed for court id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.courtRepo.Update(ctx, court)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("Update: court id=%d not found during update", id)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("Update: repository error for court id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated court id=%d", id)
	return models.FromDomainCourt(updated, s.timeProvider.Now()), nil
}

// Delete удаляет корт
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting court id=%d", id)

	if err := s.courtRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("Delete: court id=%d not found", id)
			return ErrCourtNotFound
		}
		s.logger.Error("Delete: repository error for court id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted court id=%d", id)
	return nil
}

// Вспомогательные функции

// applyCourtUpdate переносит заполненные поля запроса в domain модель
func applyCourtUpdate(court *domain.Court, req *models.UpdateCourtRequest) {
	if req.Name != nil {
		court.Name = *req.Name
	}
	if req.Sport != nil {
		court.Sport = *req.Sport
	}
	if req.Location != nil {
		court.Location = *req.Location
	}
	if req.PricePerHour != nil {
		court.PricePerHour = *req.PricePerHour
	}
	if req.Capacity != nil {
		court.Capacity = *req.Capacity
	}
	if req.OpenTime != nil {
		court.OpenTime = types.TimeString(*req.OpenTime)
	}
	if req.CloseTime != nil {
		court.CloseTime = types.TimeString(*req.CloseTime)
	}
}

// validateCourtAttrs проверяет атрибуты корта
func validateCourtAttrs(name, sport, location string, price float64, capacity int, openTime, closeTime types.TimeString) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCourtNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxCourtNameLength)
	}
	if sport == "" {
		return fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}
	if location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if len(location) > domain.MaxCourtLocationLength {
		return fmt.Errorf("%w: location must be at most %d characters", ErrInvalidInput, domain.MaxCourtLocationLength)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price_per_hour must be positive", ErrInvalidInput)
	}
	if capacity < domain.MinCourtCapacity || capacity > domain.MaxCourtCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d", ErrInvalidInput, domain.MinCourtCapacity, domain.MaxCourtCapacity)
	}
	if err := openTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid open_time format, expected HH:MM", ErrInvalidInput)
	}
	if err := closeTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid close_time format, expected HH:MM", ErrInvalidInput)
	}
	if !openTime.IsBefore(closeTime) {
		return fmt.Errorf("%w: open_time must be before close_time", ErrInvalidInput)
	}

	window, err := openTime.MinutesUntil(closeTime)
	if err != nil {
		return fmt.Errorf("%w: invalid operating window", ErrInvalidInput)
	}
	if window < domain.MinOperatingWindowMinutes {
		return fmt.Errorf("%w: operating window must be at least %d minutes", ErrInvalidInput, domain.MinOperatingWindowMinutes)
	}

	return nil
}
