package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Request модели

// CreateCourtRequest запрос на создание корта
type CreateCourtRequest struct {
	Name         string  `json:"name"`
	Sport        string  `json:"sport"`
	Location     string  `json:"location"`
	PricePerHour float64 `json:"pricePerHour"`
	Capacity     int     `json:"capacity"`
	OpenTime     string  `json:"openTime"`  // "08:00"
	CloseTime    string  `json:"closeTime"` // "22:00"
}

// UpdateCourtRequest запрос на обновление корта.
// Незаполненные поля не изменяются.
type UpdateCourtRequest struct {
	Name         *string  `json:"name,omitempty"`
	Sport        *string  `json:"sport,omitempty"`
	Location     *string  `json:"location,omitempty"`
	PricePerHour *float64 `json:"pricePerHour,omitempty"`
	Capacity     *int     `json:"capacity,omitempty"`
	OpenTime     *string  `json:"openTime,omitempty"`
	CloseTime    *string  `json:"closeTime,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

// ListCourtsRequest запрос на получение списка кортов с фильтрацией
type ListCourtsRequest struct {
	Sport  *string `json:"sport,omitempty"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// CourtResponse ответ с данными корта.
// Поле status отражает фактическое состояние на момент запроса:
// корт вне окна работы отдаётся как inactive.
type CourtResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Sport        string    `json:"sport"`
	Location     string    `json:"location"`
	PricePerHour float64   `json:"pricePerHour"`
	Capacity     int       `json:"capacity"`
	OpenTime     string    `json:"openTime"`
	CloseTime    string    `json:"closeTime"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CourtListResponse ответ со списком кортов
type CourtListResponse struct {
	Courts []CourtResponse `json:"courts"`
}

// Методы конвертации

// FromDomainCourt конвертирует domain модель в DTO со статусом на момент now
func FromDomainCourt(c *domain.Court, now time.Time) *CourtResponse {
	if c == nil {
		return nil
	}

	return &CourtResponse{
		ID:           c.ID,
		Name:         c.Name,
		Sport:        c.Sport,
		Location:     c.Location,
		PricePerHour: c.PricePerHour,
		Capacity:     c.Capacity,
		OpenTime:     c.OpenTime.String(),
		CloseTime:    c.CloseTime.String(),
		Status:       string(c.RealTimeStatus(now)),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// FromDomainCourtList конвертирует список domain моделей в DTO
func FromDomainCourtList(courts []*domain.Court, now time.Time) *CourtListResponse {
	if courts == nil {
		return &CourtListResponse{
			Courts: []CourtResponse{},
		}
	}

	resp := &CourtListResponse{
		Courts: make([]CourtResponse, len(courts)),
	}

	for i, court := range courts {
		if courtResp := FromDomainCourt(court, now); courtResp != nil {
			resp.Courts[i] = *courtResp
		}
	}

	return resp
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListCourtsRequest) ToDomainFilter() domain.CourtFilter {
	filter := domain.CourtFilter{
		Sport: r.Sport,
	}

	if r.Status != nil {
		status := domain.CourtStatus(*r.Status)
		filter.Status = &status
	}

	return filter
}
