package concierge

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"merobooking/infras/otel"
	"merobooking/internal/domains/concierge/model/dto"
	"merobooking/internal/domains/concierge/service"
	"merobooking/shared/constant"
	"merobooking/shared/validator"
	"merobooking/transport/http/response"
)

type Handler struct {
	service service.Concierge
	otel    otel.Otel
}

func New(service service.Concierge, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/concierge/ask", handler.Ask)
}

// Ask answers a guest question about the hotel.
// @Summary Ask the concierge
// @Description Ask the virtual concierge a question about rooms and facilities.
// @Tags Concierge
// @Accept json
// @Produce json
// @Param request body dto.AskRequest true "Ask Request"
// @Success 200 {object} response.Data[dto.AskResponse] "Concierge answer"
// @Failure 400 {object} response.Error
// @Router /v1/concierge/ask [post]
func (handler *Handler) Ask(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Ask")
	defer scope.End()

	req := dto.AskRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res := handler.service.Ask(ctx, req)

	response.WithJSON(writer, http.StatusOK, res)
}
