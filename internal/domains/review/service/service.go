package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"merobooking/config"
	"merobooking/infras/otel"
	bookingModel "merobooking/internal/domains/booking/model"
	bookingRepository "merobooking/internal/domains/booking/repository"
	"merobooking/internal/domains/review/model"
	"merobooking/internal/domains/review/model/dto"
	"merobooking/internal/domains/review/repository"
	"merobooking/shared"
	"merobooking/shared/cache"
	"merobooking/shared/constant"
	gDto "merobooking/shared/dto"
	"merobooking/shared/failure"
	"merobooking/shared/timezone"
)

const (
	cacheGetAllReview = "review:gets"
	cacheCountReview  = "review:count"
)

type Review interface {
	Save(ctx context.Context, req dto.SaveReviewRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReviewsResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (dto.ReviewResponse, error)
}

type serviceImpl struct {
	repo        repository.Review
	bookingRepo bookingRepository.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Review, bookingRepo bookingRepository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Save upserts the review for a booking: one review per stay, editable within
// the same window that allowed writing it.
func (s *serviceImpl) Save(ctx context.Context, req dto.SaveReviewRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	userName, _ := ctx.Value(constant.ContextKeyUserName).(string)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("bookingID", req.BookingID).Msg("failed to get booking for review")

		return fmt.Errorf("failed to get booking for review: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.UserID != userID {
		return failure.Forbidden("booking belongs to another guest") // nolint:wrapcheck
	}

	if err = checkEligibility(booking); err != nil {
		return err
	}

	existing, err := s.repo.Get(ctx, byBookingID(req.BookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up existing review")

		return fmt.Errorf("failed to look up existing review: %w", err)
	}

	if existing.ID == constant.Empty {
		err = s.repo.Insert(ctx, req.ToModel(booking.RoomID, userID, userName))
	} else {
		// Keep the original created timestamp; only the verdict changes.
		updated := map[string]any{
			model.FieldRating:        req.Rating,
			model.FieldComment:       req.Comment,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: userID,
		}

		err = s.repo.Update(ctx, updated, byBookingID(req.BookingID))
	}

	if err != nil {
		log.Error().Err(err).Str("bookingID", req.BookingID).Msg("failed to save review")

		return fmt.Errorf("failed to save review: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
		shared.InvalidateCaches(c, s.cache, cacheCountReview)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReview, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reviews")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	review, err := s.repo.Get(ctx, byBookingID(bookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return res, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return res, failure.NotFound("review not found") // nolint:wrapcheck
	}

	res.FromModel(review)

	return res, nil
}

// checkEligibility enforces the review window: only completed stays, and only
// within 7 days of check-out.
func checkEligibility(booking bookingModel.Booking) error {
	if booking.Status != constant.BookingStatusCompleted {
		return failure.Conflict("only completed stays can be reviewed") // nolint:wrapcheck
	}

	daysSinceCheckout := int(math.Ceil(timezone.Now().Sub(booking.CheckOut).Hours() / 24))
	if daysSinceCheckout > constant.ReviewWindowDays {
		return failure.Conflict("the review window for this stay has closed") // nolint:wrapcheck
	}

	return nil
}

func byBookingID(bookingID string) gDto.FilterGroup {
	return shared.FilterByID(bookingID, model.FieldBookingID, model.TableName)
}
