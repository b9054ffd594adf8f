package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CheckAvailabilityRequest запрос на проверку доступности корта
type CheckAvailabilityRequest struct {
	CourtID   int64     `json:"courtId"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	CourtID   int64     `json:"courtId"`
	Date      string    `json:"date"`      // "2025-10-15"
	StartTime string    `json:"startTime"` // "10:00"
	EndTime   string    `json:"endTime"`   // "11:30"
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// AvailabilityResponse ответ на проверку доступности корта
type AvailabilityResponse struct {
	CourtID   int64  `json:"courtId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		CourtID:   r.CourtID,
		Date:      r.Date.Format(domain.DateFormat),
		StartTime: r.StartTime.String(),
		EndTime:   r.EndTime.String(),
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, res := range reservations {
		if resResp := FromDomainReservation(res); resResp != nil {
			resp.Reservations[i] = *resResp
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	if !domain.ValidReservationStatus(status) {
		return "", ErrInvalidStatus
	}
	return domain.ReservationStatus(status), nil
}
