package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"voyage/config"
	"voyage/infras/media"
	"voyage/infras/otel"
	"voyage/internal/attachment"
	"voyage/internal/domains/place/model"
	"voyage/internal/domains/place/model/dto"
	"voyage/internal/domains/place/repository"
	"voyage/shared"
	"voyage/shared/cache"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
	"voyage/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPlace     = "place:get"
	cacheGetAllPlace  = "place:gets"
	cacheCountPlace   = "place:count"
	cacheBookingPlace = "place:booking"
)

type Place interface {
	Create(ctx context.Context, req dto.CreatePlaceRequest) (string, gDto.Outcome, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPlacesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PlaceResponse, error)
	Update(ctx context.Context, req dto.UpdatePlaceRequest, id string) (gDto.Outcome, error)
	Delete(ctx context.Context, id string) (gDto.Outcome, error)
	AddImages(ctx context.Context, req dto.AddImagesRequest, id string) (gDto.Outcome, error)
	DeleteImage(ctx context.Context, id, imageID string) (gDto.Outcome, error)
	DeleteItineraryPhoto(ctx context.Context, photoID string) (gDto.Outcome, error)
	ListForBooking(ctx context.Context) ([]dto.BookingPlaceResponse, error)
}

type serviceImpl struct {
	repo      repository.Place
	imageRepo repository.Image
	dayRepo   repository.ItineraryDay
	photoRepo repository.ItineraryPhoto
	manager   attachment.Manager
	store     media.Store
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Place,
	imageRepo repository.Image,
	dayRepo repository.ItineraryDay,
	photoRepo repository.ItineraryPhoto,
	manager attachment.Manager,
	store media.Store,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Place {
	return &serviceImpl{
		repo:      repo,
		imageRepo: imageRepo,
		dayRepo:   dayRepo,
		photoRepo: photoRepo,
		manager:   manager,
		store:     store,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePlaceRequest) (id string, outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = dto.ValidateItinerary(req.Itinerary); err != nil {
		return id, outcome, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var place model.Place

	_, err = s.manager.Create(ctx, model.DirectoryMainImage, req.MainImage, func(ref string) error {
		place = req.ToModel(user, ref)

		return s.repo.Insert(ctx, place) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create place")

		return id, outcome, fmt.Errorf("failed to create place: %w", err)
	}

	if err = s.populate(ctx, place.ID, req, &outcome); err != nil {
		log.Error().Err(err).Str("place", place.ID).Msg("failed to populate place, rolling back")

		report, rollbackErr := s.manager.CascadeDelete(ctx, s.placeNode(place))
		outcome.AddOrphaned(report.Orphaned...)

		return id, outcome, errors.Join(err, rollbackErr)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateLists(c)
	}()

	return place.ID, outcome, nil
}

func (s *serviceImpl) populate(ctx context.Context, placeID string, req dto.CreatePlaceRequest, outcome *gDto.Outcome) error {
	if len(req.SubImages) > 0 {
		report, err := s.manager.Append(ctx, imageCollection{repo: s.imageRepo}, placeID, req.SubImages)
		outcome.AddOrphaned(report.Orphaned...)

		if err != nil {
			return fmt.Errorf("failed to add sub-images: %w", err)
		}
	}

	return s.createItinerary(ctx, placeID, req.Itinerary, outcome)
}

func (s *serviceImpl) createItinerary(ctx context.Context, placeID string, days []dto.ItineraryDayInput, outcome *gDto.Outcome) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	for _, input := range days {
		day := input.ToModel(placeID, user)

		if err := s.dayRepo.Insert(ctx, day); err != nil {
			return fmt.Errorf("failed to create itinerary day %d: %w", input.Day, err)
		}

		if len(input.Photos) == 0 {
			continue
		}

		report, err := s.manager.Append(ctx, photoCollection{repo: s.photoRepo}, day.ID, input.Photos)
		outcome.AddOrphaned(report.Orphaned...)

		if err != nil {
			return fmt.Errorf("failed to add photos to itinerary day %d: %w", input.Day, err)
		}
	}

	return nil
}

// replaceItinerary tears down every current day with its photos, then creates
// the incoming days in payload order.
func (s *serviceImpl) replaceItinerary(ctx context.Context, placeID string, days []dto.ItineraryDayInput, outcome *gDto.Outcome) error {
	current, err := s.dayRepo.GetAll(ctx, byDayNumber, shared.FilterByID(placeID, model.FieldPlaceID, model.DayTableName))
	if err != nil {
		return fmt.Errorf("failed to get itinerary days: %w", err)
	}

	for _, day := range current {
		report, err := s.manager.CascadeDelete(ctx, s.dayNode(day))
		outcome.AddOrphaned(report.Orphaned...)

		if err != nil {
			return fmt.Errorf("failed to delete itinerary day %d: %w", day.DayNumber, err)
		}
	}

	return s.createItinerary(ctx, placeID, days, outcome)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPlacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPlace, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for places")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count places")

		return res, fmt.Errorf("failed to count places: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get places")

		return res, fmt.Errorf("failed to get places: %w", err)
	}

	images := map[string][]model.PlaceImage{}

	if len(models) > 0 {
		ids := make([]string, len(models))
		for i, mod := range models {
			ids[i] = mod.ID
		}

		all, err := s.imageRepo.GetAll(ctx, byPosition, shared.FilterByIDs(ids, model.FieldPlaceID, model.ImageTableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get place images")

			return res, fmt.Errorf("failed to get place images: %w", err)
		}

		for _, img := range all {
			images[img.PlaceID] = append(images[img.PlaceID], img)
		}
	}

	res.FromModels(models, images, total, req.Limit, s.store.URLFor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save places to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPlace, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for place count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count places")

		return res, fmt.Errorf("failed to count places: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save place count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PlaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetPlace, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for place")

		return res, nil
	}

	place, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	images, err := s.imageRepo.GetAll(ctx, byPosition, shared.FilterByID(id, model.FieldPlaceID, model.ImageTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get place images")

		return res, fmt.Errorf("failed to get place images: %w", err)
	}

	days, err := s.dayRepo.GetAll(ctx, byDayNumber, shared.FilterByID(id, model.FieldPlaceID, model.DayTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get itinerary days")

		return res, fmt.Errorf("failed to get itinerary days: %w", err)
	}

	photos := map[string][]model.ItineraryPhoto{}

	if len(days) > 0 {
		dayIDs := make([]string, len(days))
		for i, day := range days {
			dayIDs[i] = day.ID
		}

		all, err := s.photoRepo.GetAll(ctx, byPosition, shared.FilterByIDs(dayIDs, model.FieldDayID, model.PhotoTableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get itinerary photos")

			return res, fmt.Errorf("failed to get itinerary photos: %w", err)
		}

		for _, photo := range all {
			photos[photo.DayID] = append(photos[photo.DayID], photo)
		}
	}

	res.FromModel(place, s.store.URLFor)
	res.WithImages(images, s.store.URLFor)
	res.WithItinerary(days, photos, s.store.URLFor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save place to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePlaceRequest, id string) (outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Partial {
		if err = validator.RequirePresent(req.RequiredFields()); err != nil {
			return outcome, err //nolint:wrapcheck
		}
	}

	if err = dto.ValidateItinerary(req.Itinerary); err != nil {
		return outcome, err
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return outcome, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	defer func() {
		go func() {
			c := context.WithoutCancel(ctx)

			s.invalidatePlace(c, id)
		}()
	}()

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update place")

		return outcome, fmt.Errorf("failed to update place: %w", err)
	}

	slot := attachment.Slot{
		Records:   s.repo,
		Filter:    filter,
		Column:    model.FieldMainImage,
		Directory: model.DirectoryMainImage,
		Current:   current.MainImage,
	}

	switch {
	case !req.MainImage.Empty():
		_, report, err := s.manager.Replace(ctx, slot, req.MainImage)
		outcome.AddOrphaned(report.Orphaned...)

		if err != nil {
			return outcome, fmt.Errorf("failed to replace main image: %w", err)
		}
	case req.ClearMainImage:
		report, err := s.manager.Clear(ctx, slot)
		outcome.AddOrphaned(report.Orphaned...)

		if err != nil {
			return outcome, fmt.Errorf("failed to clear main image: %w", err)
		}
	}

	if req.ReplacesSubImages() {
		report, err := s.manager.ReplaceCollection(ctx, imageCollection{repo: s.imageRepo}, id, req.SubImages)
		outcome.AddOrphaned(report.Orphaned...)

		if err != nil {
			return outcome, fmt.Errorf("failed to replace sub-images: %w", err)
		}
	}

	if req.Itinerary != nil {
		if err = s.replaceItinerary(ctx, id, req.Itinerary, &outcome); err != nil {
			log.Error().Err(err).Msg("failed to replace itinerary")

			return outcome, err
		}
	}

	return outcome, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	place, err := s.find(ctx, id)
	if err != nil {
		return outcome, err
	}

	report, err := s.manager.CascadeDelete(ctx, s.placeNode(place))
	outcome.AddOrphaned(report.Orphaned...)

	if err != nil {
		log.Error().Err(err).Msg("failed to delete place")

		return outcome, fmt.Errorf("failed to delete place: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidatePlace(c, id)
	}()

	return outcome, nil
}

func (s *serviceImpl) AddImages(ctx context.Context, req dto.AddImagesRequest, id string) (outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddImages")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return outcome, err
	}

	report, err := s.manager.Append(ctx, imageCollection{repo: s.imageRepo}, id, req.Images)
	outcome.AddOrphaned(report.Orphaned...)

	if err != nil {
		log.Error().Err(err).Msg("failed to add place images")

		return outcome, fmt.Errorf("failed to add place images: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidatePlace(c, id)
	}()

	return outcome, nil
}

func (s *serviceImpl) DeleteImage(ctx context.Context, id, imageID string) (outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = shared.RequireUUID(id, "place"); err != nil {
		return outcome, err //nolint:wrapcheck
	}

	if err = shared.RequireUUID(imageID, "place image"); err != nil {
		return outcome, err //nolint:wrapcheck
	}

	image, err := s.imageRepo.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: imageID, Operator: gDto.FilterOperatorEq, Table: model.ImageTableName},
			gDto.Filter{Field: model.FieldPlaceID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.ImageTableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get place image")

		return outcome, fmt.Errorf("failed to get place image: %w", err)
	}

	if image.ID == constant.Empty {
		return outcome, failure.NotFound("place image not found") //nolint:wrapcheck
	}

	report, err := s.manager.CascadeDelete(ctx, s.imageNode(image))
	outcome.AddOrphaned(report.Orphaned...)

	if err != nil {
		log.Error().Err(err).Msg("failed to delete place image")

		return outcome, fmt.Errorf("failed to delete place image: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidatePlace(c, id)
	}()

	return outcome, nil
}

func (s *serviceImpl) DeleteItineraryPhoto(ctx context.Context, photoID string) (outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteItineraryPhoto")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = shared.RequireUUID(photoID, "itinerary photo"); err != nil {
		return outcome, err //nolint:wrapcheck
	}

	photo, err := s.photoRepo.Get(ctx, shared.FilterByID(photoID, model.FieldID, model.PhotoTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get itinerary photo")

		return outcome, fmt.Errorf("failed to get itinerary photo: %w", err)
	}

	if photo.ID == constant.Empty {
		return outcome, failure.NotFound("itinerary photo not found") //nolint:wrapcheck
	}

	day, err := s.dayRepo.Get(ctx, shared.FilterByID(photo.DayID, model.FieldID, model.DayTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get itinerary day")

		return outcome, fmt.Errorf("failed to get itinerary day: %w", err)
	}

	report, err := s.manager.CascadeDelete(ctx, s.photoNode(photo))
	outcome.AddOrphaned(report.Orphaned...)

	if err != nil {
		log.Error().Err(err).Msg("failed to delete itinerary photo")

		return outcome, fmt.Errorf("failed to delete itinerary photo: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidatePlace(c, day.PlaceID)
	}()

	return outcome, nil
}

func (s *serviceImpl) ListForBooking(ctx context.Context) (res []dto.BookingPlaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, cacheBookingPlace, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheBookingPlace).Msg("cache hit for booking places")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldTitle, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{},
		model.FieldID, model.FieldTitle, model.FieldSubtitle, model.FieldPrice)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking places")

		return res, fmt.Errorf("failed to get booking places: %w", err)
	}

	res = make([]dto.BookingPlaceResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheBookingPlace, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking places to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (place model.Place, err error) {
	if err = shared.RequireUUID(id, "place"); err != nil {
		return place, err //nolint:wrapcheck
	}

	place, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get place")

		return place, fmt.Errorf("failed to get place: %w", err)
	}

	if place.ID == constant.Empty {
		return place, failure.NotFound("place not found") //nolint:wrapcheck
	}

	return place, nil
}

func (s *serviceImpl) invalidatePlace(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetPlace, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete place cache")
	}

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllPlace)
	shared.InvalidateCaches(ctx, s.cache, cacheCountPlace)
	shared.InvalidateCaches(ctx, s.cache, cacheBookingPlace)
}
