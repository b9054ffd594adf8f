package create_reservation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgUserNotFound       = "пользователь не найден"
	msgCourtNotFound      = "корт не найден"
	msgPastDate           = "нельзя бронировать на прошедшую дату"
	msgInvalidInterval    = "время начала должно быть раньше времени окончания"
	msgDurationTooShort   = "минимальная длительность бронирования — 30 минут"
	msgDurationTooLong    = "максимальная длительность бронирования — 2 часа"
	msgCourtNotAvailable  = "корт занят в выбранное время"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID in context")
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, &req, userID, err)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, court_id=%d",
		result.ID, userID, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// respondUseCaseError маппит ошибки use case на HTTP статусы.
// Для ошибок лимита, окна работы и минимального времени до начала
// в сообщение подставляются вычисленные значения.
func (h *Handler) respondUseCaseError(w http.ResponseWriter, req *CreateReservationRequest, userID int64, err error) {
	var (
		leadTimeErr *createReservation.LeadTimeError
		hoursErr    *createReservation.OperatingHoursError
		quotaErr    *createReservation.QuotaExceededError
	)

	switch {
	case errors.Is(err, createReservation.ErrUserNotFound):
		h.logger.Warn("POST /reservations - User not found: user_id=%d", userID)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, createReservation.ErrCourtNotFound):
		h.logger.Warn("POST /reservations - Court not found: court_id=%d", req.CourtID)
		handlers.RespondNotFound(w, msgCourtNotFound)

	case errors.Is(err, createReservation.ErrPastDate):
		h.logger.Warn("POST /reservations - Past date: user_id=%d, date=%s", userID, req.Date)
		handlers.RespondBadRequest(w, msgPastDate)

	case errors.As(err, &leadTimeErr):
		h.logger.Warn("POST /reservations - Too late to book: user_id=%d, start=%s", userID, req.StartTime)
		if leadTimeErr.MinStart.IsZero() {
			handlers.RespondBadRequest(w, "бронирование на сегодня уже невозможно, выберите другую дату")
		} else {
			handlers.RespondBadRequest(w, fmt.Sprintf(
				"бронирование возможно не раньше чем за 30 минут, ближайшее доступное время начала — %s",
				leadTimeErr.MinStart))
		}

	case errors.As(err, &hoursErr):
		h.logger.Warn("POST /reservations - Outside operating hours: user_id=%d, court_id=%d", userID, req.CourtID)
		handlers.RespondBadRequest(w, fmt.Sprintf(
			"интервал выходит за часы работы корта (%s - %s)", hoursErr.Open, hoursErr.Close))

	case errors.Is(err, createReservation.ErrInvalidInterval):
		h.logger.Warn("POST /reservations - Invalid interval: user_id=%d, interval=%s-%s", userID, req.StartTime, req.EndTime)
		handlers.RespondBadRequest(w, msgInvalidInterval)

	case errors.Is(err, createReservation.ErrDurationTooShort):
		h.logger.Warn("POST /reservations - Duration too short: user_id=%d, interval=%s-%s", userID, req.StartTime, req.EndTime)
		handlers.RespondBadRequest(w, msgDurationTooShort)

	case errors.Is(err, createReservation.ErrDurationTooLong):
		h.logger.Warn("POST /reservations - Duration too long: user_id=%d, interval=%s-%s", userID, req.StartTime, req.EndTime)
		handlers.RespondBadRequest(w, msgDurationTooLong)

	case errors.As(err, &quotaErr):
		h.logger.Warn("POST /reservations - Quota exceeded: user_id=%d, court_id=%d, total=%dm",
			userID, req.CourtID, quotaErr.TotalMinutes)
		handlers.RespondError(w, http.StatusConflict, fmt.Sprintf(
			"превышен дневной лимит бронирования (2 часа): суммарно получилось бы %dч %dм",
			quotaErr.TotalMinutes/60, quotaErr.TotalMinutes%60))

	case errors.Is(err, createReservation.ErrCourtNotAvailable):
		h.logger.Warn("POST /reservations - Court not available: user_id=%d, court_id=%d, interval=%s-%s",
			userID, req.CourtID, req.StartTime, req.EndTime)
		handlers.RespondError(w, http.StatusConflict, msgCourtNotAvailable)

	case errors.Is(err, createReservation.ErrInvalidInput):
		h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, court_id=%d, error=%v",
			userID, req.CourtID, err)
		handlers.RespondInternalError(w)
	}
}
