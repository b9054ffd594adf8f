package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	CourtID         int64
	Date            time.Time
	DurationMinutes int // 0 = длительность по умолчанию
}

// Slot временной слот с информацией о занятости
type Slot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	AvailableSpots  int // свободные места
	TotalSpots      int // вместимость корта
}

// Response модель ответа со слотами на дату
type Response struct {
	CourtID int64
	Date    time.Time
	Slots   []Slot
}
