package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"voyage/config"
	"voyage/infras/media"
	"voyage/infras/otel"
	"voyage/internal/attachment"
	"voyage/internal/domains/gallery/model"
	"voyage/internal/domains/gallery/model/dto"
	"voyage/internal/domains/gallery/repository"
	"voyage/shared"
	"voyage/shared/cache"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetGallery    = "gallery:get"
	cacheGetAllGallery = "gallery:gets"
	cacheCountGallery  = "gallery:count"
)

type Gallery interface {
	Create(ctx context.Context, req dto.CreateGalleryPhotoRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGalleryPhotosResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.GalleryPhotoResponse, error)
	Delete(ctx context.Context, id string) (gDto.Outcome, error)
}

type serviceImpl struct {
	repo    repository.Gallery
	manager attachment.Manager
	store   media.Store
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.Gallery, manager attachment.Manager, store media.Store, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Gallery {
	return &serviceImpl{
		repo:    repo,
		manager: manager,
		store:   store,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGalleryPhotoRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Image.Empty() {
		return id, failure.Validation("image is required", map[string]any{"image": "image is required"}) //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	_, err = s.manager.Create(ctx, model.DirectoryImage, req.Image, func(ref string) error {
		photo := req.ToModel(user, ref)
		id = photo.ID

		return s.repo.Insert(ctx, photo) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create gallery photo")

		return constant.Empty, fmt.Errorf("failed to create gallery photo: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllGallery)
		shared.InvalidateCaches(c, s.cache, cacheCountGallery)
	}()

	return id, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGalleryPhotosResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGallery, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gallery photos")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count gallery photos")

		return res, err
	}

	photos, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery photos")

		return res, fmt.Errorf("failed to get gallery photos: %w", err)
	}

	res.FromModels(photos, total, req.Limit, s.store.URLFor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery photos to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountGallery, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gallery count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count gallery photos")

		return total, fmt.Errorf("failed to count gallery photos: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GalleryPhotoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = shared.RequireUUID(id, "gallery photo"); err != nil {
		return res, err //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetGallery, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gallery photo")

		return res, nil
	}

	photo, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery photo")

		return res, fmt.Errorf("failed to get gallery photo: %w", err)
	}

	if photo.ID == constant.Empty {
		return res, failure.NotFound("gallery photo not found") //nolint:wrapcheck
	}

	res.FromModel(photo, s.store.URLFor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery photo to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = shared.RequireUUID(id, "gallery photo"); err != nil {
		return outcome, err //nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	photo, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery photo for deletion")

		return outcome, fmt.Errorf("failed to get gallery photo: %w", err)
	}

	if photo.ID == constant.Empty {
		log.Error().Msg("gallery photo not found")

		return outcome, failure.NotFound("gallery photo not found") //nolint:wrapcheck
	}

	report, err := s.manager.CascadeDelete(ctx, attachment.Leaf(model.EntityName+" "+id, photo.Image, func(ctx context.Context) error {
		return s.repo.Delete(ctx, filter) //nolint:wrapcheck
	}))
	outcome.AddOrphaned(report.Orphaned...)

	if err != nil {
		log.Error().Err(err).Msg("failed to delete gallery photo")

		return outcome, fmt.Errorf("failed to delete gallery photo: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetGallery, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete gallery photo cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllGallery)
		shared.InvalidateCaches(c, s.cache, cacheCountGallery)
	}()

	return outcome, nil
}
