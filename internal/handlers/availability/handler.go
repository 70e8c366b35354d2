package availability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"merobooking/infras/otel"
	"merobooking/internal/domains/availability/service"
	bookingModel "merobooking/internal/domains/booking/model"
	"merobooking/shared/constant"
	"merobooking/shared/failure"
	"merobooking/shared/timezone"
	"merobooking/transport/http/response"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/availability", handler.GetAvailability)
}

type UnavailableRoomsResponse struct {
	CheckIn          string   `json:"check_in"`
	CheckOut         string   `json:"check_out"`
	UnavailableRooms []string `json:"unavailable_rooms"`
}

// GetAvailability lists room types that cannot host the requested stay.
// @Summary Get room availability
// @Description List the room type IDs that are fully booked for the given date range.
// @Tags Availability
// @Produce json
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[UnavailableRoomsResponse] "Unavailable room IDs"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	checkInStr := r.URL.Query().Get(bookingModel.FieldCheckIn)
	checkOutStr := r.URL.Query().Get(bookingModel.FieldCheckOut)

	checkIn, err := timezone.ParseDate(checkInStr)
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("invalid check_in date, expected YYYY-MM-DD"))

		return
	}

	checkOut, err := timezone.ParseDate(checkOutStr)
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("invalid check_out date, expected YYYY-MM-DD"))

		return
	}

	if !checkOut.After(checkIn) {
		response.WithError(w, failure.BadRequestFromString("check-out must be after check-in"))

		return
	}

	unavailable, err := handler.service.FindUnavailableRooms(ctx, checkIn, checkOut)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to find unavailable rooms")

		response.WithError(w, err)

		return
	}

	res := UnavailableRoomsResponse{
		CheckIn:          timezone.Format(checkIn, constant.DateOnlyFormat),
		CheckOut:         timezone.Format(checkOut, constant.DateOnlyFormat),
		UnavailableRooms: unavailable,
	}

	response.WithJSON(w, http.StatusOK, res)
}
