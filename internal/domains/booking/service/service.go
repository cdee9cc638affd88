package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"voyage/config"
	"voyage/infras/mailer"
	"voyage/infras/metrics"
	"voyage/infras/otel"
	"voyage/internal/domains/booking/model"
	"voyage/internal/domains/booking/model/dto"
	"voyage/internal/domains/booking/repository"
	placeModel "voyage/internal/domains/place/model"
	placeRepo "voyage/internal/domains/place/repository"
	"voyage/shared"
	"voyage/shared/cache"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (gDto.Outcome, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	placeRepo placeRepo.Place
	mailer    mailer.Mailer
	metrics   metrics.Metrics
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	placeRepo placeRepo.Place,
	mailer mailer.Mailer,
	metrics metrics.Metrics,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		placeRepo: placeRepo,
		mailer:    mailer,
		metrics:   metrics,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if uuid.Validate(req.PlaceID) != nil {
		return id, s.invalidPlace(ctx, req.PlaceID)
	}

	place, err := s.placeRepo.Get(ctx, shared.FilterByID(req.PlaceID, placeModel.FieldID, placeModel.TableName),
		placeModel.FieldID, placeModel.FieldTitle, placeModel.FieldSubtitle, placeModel.FieldPrice)
	if err != nil {
		log.Error().Err(err).Msg("failed to get place")

		return id, fmt.Errorf("failed to get place: %w", err)
	}

	if place.ID == constant.Empty {
		return id, s.invalidPlace(ctx, req.PlaceID)
	}

	booking, err := req.ToModel(dto.Place{Title: place.Title, Subtitle: place.Subtitle, Price: place.Price}, user, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return id, failure.BadRequestFromString(fmt.Sprintf("invalid arrival date: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return id, fmt.Errorf("failed to create booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return booking.ID, nil
}

// invalidPlace builds the validation error for an unknown place, listing the ids a caller may use.
func (s *serviceImpl) invalidPlace(ctx context.Context, placeID string) error {
	places, err := s.placeRepo.GetAll(ctx, gDto.QueryParams{SortBy: placeModel.FieldTitle, SortDir: gDto.SortDirAsc},
		gDto.FilterGroup{}, placeModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list valid places")

		return fmt.Errorf("failed to list valid places: %w", err)
	}

	ids := make([]string, len(places))
	for i, place := range places {
		ids[i] = place.ID
	}

	msg := fmt.Sprintf("place %q does not exist", placeID)

	return failure.Validation(msg, map[string]any{ //nolint:wrapcheck
		model.FieldPlaceID: msg,
		"valid_place_ids":  ids,
	})
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = shared.RequireUUID(id, "booking"); err != nil {
		return res, err //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update saves the provided fields. A move into approved status triggers the
// approval email once the record is saved; a failed send is reported in the
// outcome and never undoes the update.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Empty() {
		return outcome, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if err = shared.RequireUUID(id, "booking"); err != nil {
		return outcome, err //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return outcome, fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		log.Error().Msg("booking not found")

		return outcome, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	updatedFields, err := req.Fields(user)
	if err != nil {
		return outcome, failure.BadRequestFromString(fmt.Sprintf("invalid arrival date: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return outcome, fmt.Errorf("failed to update booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	if req.Status != nil && *req.Status == model.StatusApproved && current.Status != model.StatusApproved {
		if notifyErr := s.notifyApproved(ctx, filter); notifyErr != nil {
			log.Warn().Err(notifyErr).Str("booking", id).Msg("booking approved but notification failed")

			outcome.NotificationError = notifyErr.Error()
		}
	}

	return outcome, nil
}

func (s *serviceImpl) notifyApproved(ctx context.Context, filter gDto.FilterGroup) (err error) {
	defer func() { s.metrics.RecordNotification(err) }()

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to reload booking: %w", err)
	}

	place, err := s.placeRepo.Get(ctx, shared.FilterByID(booking.PlaceID, placeModel.FieldID, placeModel.TableName),
		placeModel.FieldID, placeModel.FieldTitle)
	if err != nil {
		return fmt.Errorf("failed to get place: %w", err)
	}

	body, err := approvalBody(booking, place.Title)
	if err != nil {
		return err
	}

	return s.mailer.Send(ctx, booking.Email, approvalSubject, body) //nolint:wrapcheck
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = shared.RequireUUID(id, "booking"); err != nil {
		return err //nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}
