package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// CourtStatus операционный статус корта
type CourtStatus string

const (
	// CourtStatusActive корт открыт (текущее время внутри окна работы)
	CourtStatusActive CourtStatus = "active"
	// CourtStatusInactive корт закрыт либо отключён администратором
	CourtStatusInactive CourtStatus = "inactive"
)

// Court корт — физический ресурс с окном работы и вместимостью.
// Вместимость задаёт максимум одновременных бронирований, а не общее
// число бронирований за день.
type Court struct {
	ID           int64
	Name         string
	Sport        string
	Location     string
	PricePerHour float64
	Capacity     int
	OpenTime     types.TimeString
	CloseTime    types.TimeString
	Status       CourtStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DetermineCourtStatus вычисляет операционный статус корта по текущему времени.
// Корт открыт, если текущее время попадает в окно [open, close] включительно.
func DetermineCourtStatus(openTime, closeTime types.TimeString, now time.Time) CourtStatus {
	current := types.NewTimeString(now)
	if !current.IsBefore(openTime) && !current.IsAfter(closeTime) {
		return CourtStatusActive
	}
	return CourtStatusInactive
}

// RealTimeStatus возвращает операционный статус корта на момент now.
// Административно отключённый корт остаётся inactive независимо от времени.
func (c *Court) RealTimeStatus(now time.Time) CourtStatus {
	if c.Status == CourtStatusInactive {
		return CourtStatusInactive
	}
	return DetermineCourtStatus(c.OpenTime, c.CloseTime, now)
}

// CourtFilter фильтр для выборки кортов
type CourtFilter struct {
	Sport  *string
	Status *CourtStatus
}
