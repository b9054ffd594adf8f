package update_reservation

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	updateReservation "github.com/m04kA/SMC-CourtBookingService/internal/usecase/update_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservationID = "некорректный идентификатор бронирования"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgReservationNotFound  = "бронирование не найдено"
	msgUserNotFound         = "пользователь не найден"
	msgCourtNotFound        = "корт не найден"
	msgPastDate             = "нельзя бронировать на прошедшую дату"
	msgInvalidInterval      = "время начала должно быть раньше времени окончания"
	msgDurationTooShort     = "минимальная длительность бронирования — 30 минут"
	msgDurationTooLong      = "максимальная длительность бронирования — 2 часа"
	msgCourtNotAvailable    = "корт занят в выбранное время"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /reservations/{id} - Missing user ID in context")
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %s", vars["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), reservationID, useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, &req, reservationID, userID, err)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PUT /reservations/{id} - Reservation updated successfully: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, response)
}

// respondUseCaseError маппит ошибки use case на HTTP статусы
func (h *Handler) respondUseCaseError(w http.ResponseWriter, req *UpdateReservationRequest, reservationID, userID int64, err error) {
	var (
		leadTimeErr *updateReservation.LeadTimeError
		hoursErr    *updateReservation.OperatingHoursError
		quotaErr    *updateReservation.QuotaExceededError
	)

	switch {
	case errors.Is(err, updateReservation.ErrReservationNotFound):
		h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
		handlers.RespondNotFound(w, msgReservationNotFound)

	case errors.Is(err, updateReservation.ErrUserNotFound):
		h.logger.Warn("PUT /reservations/{id} - User not found: user_id=%d", userID)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, updateReservation.ErrCourtNotFound):
		h.logger.Warn("PUT /reservations/{id} - Court not found: court_id=%d", req.CourtID)
		handlers.RespondNotFound(w, msgCourtNotFound)

	case errors.Is(err, updateReservation.ErrPastDate):
		h.logger.Warn("PUT /reservations/{id} - Past date: reservation_id=%d, date=%s", reservationID, req.Date)
		handlers.RespondBadRequest(w, msgPastDate)

	case errors.As(err, &leadTimeErr):
		h.logger.Warn("PUT /reservations/{id} - Too late to book: reservation_id=%d, start=%s", reservationID, req.StartTime)
		if leadTimeErr.MinStart.IsZero() {
			handlers.RespondBadRequest(w, "бронирование на сегодня уже невозможно, выберите другую дату")
		} else {
			handlers.RespondBadRequest(w, fmt.Sprintf(
				"бронирование возможно не раньше чем за 30 минут, ближайшее доступное время начала — %s",
				leadTimeErr.MinStart))
		}

	case errors.As(err, &hoursErr):
		h.logger.Warn("PUT /reservations/{id} - Outside operating hours: reservation_id=%d, court_id=%d", reservationID, req.CourtID)
		handlers.RespondBadRequest(w, fmt.Sprintf(
			"интервал выходит за часы работы корта (%s - %s)", hoursErr.Open, hoursErr.Close))

	case errors.Is(err, updateReservation.ErrInvalidInterval):
		h.logger.Warn("PUT /reservations/{id} - Invalid interval: reservation_id=%d, interval=%s-%s",
			reservationID, req.StartTime, req.EndTime)
		handlers.RespondBadRequest(w, msgInvalidInterval)

	case errors.Is(err, updateReservation.ErrDurationTooShort):
		h.logger.Warn("PUT /reservations/{id} - Duration too short: reservation_id=%d", reservationID)
		handlers.RespondBadRequest(w, msgDurationTooShort)

	case errors.Is(err, updateReservation.ErrDurationTooLong):
		h.logger.Warn("PUT /reservations/{id} - Duration too long: reservation_id=%d", reservationID)
		handlers.RespondBadRequest(w, msgDurationTooLong)

	case errors.As(err, &quotaErr):
		h.logger.Warn("PUT /reservations/{id} - Quota exceeded: reservation_id=%d, user_id=%d, total=%dm",
			reservationID, userID, quotaErr.TotalMinutes)
		handlers.RespondError(w, http.StatusConflict, fmt.Sprintf(
			"превышен дневной лимит бронирования (2 часа): суммарно получилось бы %dч %dм",
			quotaErr.TotalMinutes/60, quotaErr.TotalMinutes%60))

	case errors.Is(err, updateReservation.ErrCourtNotAvailable):
		h.logger.Warn("PUT /reservations/{id} - Court not available: reservation_id=%d, court_id=%d",
			reservationID, req.CourtID)
		handlers.RespondError(w, http.StatusConflict, msgCourtNotAvailable)

	case errors.Is(err, updateReservation.ErrInvalidInput):
		h.logger.Warn("PUT /reservations/{id} - Invalid input: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v",
			reservationID, err)
		handlers.RespondInternalError(w)
	}
}
