package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	CourtID   int64            // ID корта
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")
	EndTime   types.TimeString // Время окончания (например, "11:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	UserID    int64
	CourtID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// fromDomain конвертирует доменное бронирование в ответ usecase
func fromDomain(res *domain.Reservation) *Response {
	return &Response{
		ID:        res.ID,
		UserID:    res.UserID,
		CourtID:   res.CourtID,
		Date:      res.Date,
		StartTime: res.StartTime,
		EndTime:   res.EndTime,
		Status:    string(res.Status),
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}
