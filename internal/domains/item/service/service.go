package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"voyage/config"
	"voyage/infras/media"
	"voyage/infras/otel"
	"voyage/internal/attachment"
	"voyage/internal/domains/item/model"
	"voyage/internal/domains/item/model/dto"
	"voyage/internal/domains/item/repository"
	"voyage/shared"
	"voyage/shared/cache"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
	"voyage/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetItem    = "item:get"
	cacheGetAllItem = "item:gets"
	cacheCountItem  = "item:count"
)

type Item interface {
	Create(ctx context.Context, req dto.CreateItemRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetItemsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ItemResponse, error)
	Update(ctx context.Context, req dto.UpdateItemRequest, id string) (gDto.Outcome, error)
	Delete(ctx context.Context, id string) (gDto.Outcome, error)
}

type serviceImpl struct {
	repo    repository.Item
	manager attachment.Manager
	store   media.Store
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.Item, manager attachment.Manager, store media.Store, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Item {
	return &serviceImpl{
		repo:    repo,
		manager: manager,
		store:   store,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateItemRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var item model.Item

	_, err = s.manager.Create(ctx, model.DirectoryImage, req.Image, func(ref string) error {
		item = req.ToModel(user, ref)

		return s.repo.Insert(ctx, item) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create item")

		return id, fmt.Errorf("failed to create item: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllItem)
		shared.InvalidateCaches(c, s.cache, cacheCountItem)
	}()

	return item.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllItem, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for items")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count items")

		return res, fmt.Errorf("failed to count items: %w", err)
	}

	items, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get items")

		return res, fmt.Errorf("failed to get items: %w", err)
	}

	res.FromModels(items, total, req.Limit, s.store.URLFor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save items to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountItem, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for item count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count items")

		return total, fmt.Errorf("failed to count items: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save item count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetItem, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for item")

		return res, nil
	}

	item, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(item, s.store.URLFor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save item to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateItemRequest, id string) (outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Partial {
		if err = validator.RequirePresent(req.RequiredFields()); err != nil {
			return outcome, err //nolint:wrapcheck
		}
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

			s.invalidate(c, id)
		}()
	}()

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update item")

		return outcome, fmt.Errorf("failed to update item: %w", err)
	}

	slot := attachment.Slot{
		Records:   s.repo,
		Filter:    filter,
		Column:    model.FieldImage,
		Directory: model.DirectoryImage,
		Current:   current.Image,
	}

	switch {
	case !req.Image.Empty():
		_, report, err := s.manager.Replace(ctx, slot, req.Image)
		outcome.AddOrphaned(report.Orphaned...)

		if err != nil {
			return outcome, fmt.Errorf("failed to replace item image: %w", err)
		}
	case req.ClearImage:
		report, err := s.manager.Clear(ctx, slot)
		outcome.AddOrphaned(report.Orphaned...)

		if err != nil {
			return outcome, fmt.Errorf("failed to clear item image: %w", err)
		}
	}

	return outcome, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item, err := s.find(ctx, id)
	if err != nil {
		return outcome, err
	}

	node := attachment.Leaf(model.EntityName+" "+id, item.Image, func(ctx context.Context) error {
		return s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
	})

	report, err := s.manager.CascadeDelete(ctx, node)
	outcome.AddOrphaned(report.Orphaned...)

	if err != nil {
		log.Error().Err(err).Msg("failed to delete item")

		return outcome, fmt.Errorf("failed to delete item: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
	}()

	return outcome, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (item model.Item, err error) {
	if err = shared.RequireUUID(id, "item"); err != nil {
		return item, err //nolint:wrapcheck
	}

	item, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return item, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == constant.Empty {
		return item, failure.NotFound("item not found") //nolint:wrapcheck
	}

	return item, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetItem, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete item from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllItem)
	shared.InvalidateCaches(ctx, s.cache, cacheCountItem)
}
