package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"merobooking/infras/otel"
	"merobooking/internal/domains/review/model"
	"merobooking/internal/domains/review/model/dto"
	"merobooking/internal/domains/review/service"
	"merobooking/shared/constant"
	gDto "merobooking/shared/dto"
	"merobooking/shared/validator"
	"merobooking/transport/http/response"
)

type Handler struct {
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reviews", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SaveReview)
		routerGroup.Get("/", handler.GetReviews)
		routerGroup.Get("/booking/{id}", handler.GetReviewByBooking)
	})
}

// SaveReview creates or updates the review for a completed stay.
// @Summary Save a review
// @Description Create or replace the review for a completed booking. One review per booking.
// @Tags Review
// @Accept json
// @Produce json
// @Param request body dto.SaveReviewRequest true "Save Review Request"
// @Success 201 {object} response.Message "Review saved successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reviews [post]
// @Security BearerAuth
func (handler *Handler) SaveReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveReview")
	defer scope.End()

	req := dto.SaveReviewRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Save(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save review")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Review saved successfully")
}

// GetReviews retrieves all reviews.
// @Summary Get all reviews
// @Description Retrieve all reviews with optional filtering and pagination.
// @Tags Review
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room ID"
// @Success 200 {object} response.Data[dto.GetReviewsResponse] "List of reviews"
// @Failure 500 {object} response.Error
// @Router /v1/reviews [get]
func (handler *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if roomID := r.URL.Query().Get(model.FieldRoomID); roomID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	reviews, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reviews")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reviews)
}

// GetReviewByBooking retrieves the review for a specific booking.
// @Summary Get review by booking
// @Description Retrieve the review attached to a booking, if any.
// @Tags Review
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.ReviewResponse] "Review details"
// @Failure 404 {object} response.Error
// @Router /v1/reviews/booking/{id} [get]
func (handler *Handler) GetReviewByBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviewByBooking")
	defer scope.End()

	bookingID := chi.URLParam(r, constant.RequestParamID)

	review, err := handler.service.GetByBooking(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get review")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, review)
}
