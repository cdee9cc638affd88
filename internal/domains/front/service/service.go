package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"voyage/config"
	"voyage/infras/media"
	"voyage/infras/otel"
	"voyage/internal/attachment"
	"voyage/internal/domains/front/model"
	"voyage/internal/domains/front/model/dto"
	"voyage/internal/domains/front/repository"
	"voyage/shared"
	"voyage/shared/cache"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
	"voyage/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetFront    = "front:get"
	cacheGetAllFront = "front:gets"
	cacheCountFront  = "front:count"
)

type Front interface {
	Create(ctx context.Context, req dto.CreateFrontRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFrontsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.FrontResponse, error)
	Update(ctx context.Context, req dto.UpdateFrontRequest, id string) (gDto.Outcome, error)
	Delete(ctx context.Context, id string) (gDto.Outcome, error)
}

type serviceImpl struct {
	repo    repository.Front
	manager attachment.Manager
	store   media.Store
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.Front, manager attachment.Manager, store media.Store, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Front {
	return &serviceImpl{
		repo:    repo,
		manager: manager,
		store:   store,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFrontRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.CompanyLogo.Empty() {
		return id, failure.Validation("company_logo is required", map[string]any{model.FieldCompanyLogo: "company_logo is required"}) //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	_, err = s.manager.Create(ctx, model.DirectoryLogo, req.CompanyLogo, func(ref string) error {
		front := req.ToModel(user, ref)
		id = front.ID

		return s.repo.Insert(ctx, front) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create front")

		return constant.Empty, fmt.Errorf("failed to create front: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFront)
		shared.InvalidateCaches(c, s.cache, cacheCountFront)
	}()

	return id, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFrontsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFront, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for fronts")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	fronts, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get fronts")

		return res, fmt.Errorf("failed to get fronts: %w", err)
	}

	res.FromModels(fronts, total, req.Limit, s.store.URLFor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save fronts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountFront, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count fronts")

		return total, fmt.Errorf("failed to count fronts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save front count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FrontResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetFront, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	front, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(front, s.store.URLFor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save front to cache")
		}
	}()

	return res, nil
}

// Update only ever touches the logo; the record itself has nothing else to change.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFrontRequest, id string) (outcome gDto.Outcome, err error) {
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

	if req.CompanyLogo.Empty() && !req.ClearCompanyLogo {
		return outcome, nil
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
		log.Error().Err(err).Msg("failed to update front")

		return outcome, fmt.Errorf("failed to update front: %w", err)
	}

	slot := attachment.Slot{
		Records:   s.repo,
		Filter:    filter,
		Column:    model.FieldCompanyLogo,
		Directory: model.DirectoryLogo,
		Current:   current.CompanyLogo,
	}

	if !req.CompanyLogo.Empty() {
		_, report, err := s.manager.Replace(ctx, slot, req.CompanyLogo)
		outcome.AddOrphaned(report.Orphaned...)

		if err != nil {
			return outcome, fmt.Errorf("failed to replace company logo: %w", err)
		}

		return outcome, nil
	}

	report, err := s.manager.Clear(ctx, slot)
	outcome.AddOrphaned(report.Orphaned...)

	if err != nil {
		return outcome, fmt.Errorf("failed to clear company logo: %w", err)
	}

	return outcome, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	front, err := s.find(ctx, id)
	if err != nil {
		return outcome, err
	}

	report, err := s.manager.CascadeDelete(ctx, attachment.Leaf(model.EntityName+" "+id, front.CompanyLogo, func(ctx context.Context) error {
		return s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
	}))
	outcome.AddOrphaned(report.Orphaned...)

	if err != nil {
		log.Error().Err(err).Msg("failed to delete front")

		return outcome, fmt.Errorf("failed to delete front: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
	}()

	return outcome, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (front model.Front, err error) {
	if err = shared.RequireUUID(id, "front"); err != nil {
		return front, err //nolint:wrapcheck
	}

	front, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get front")

		return front, fmt.Errorf("failed to get front: %w", err)
	}

	if front.ID == constant.Empty {
		return front, failure.NotFound("front not found") //nolint:wrapcheck
	}

	return front, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetFront, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete front from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllFront)
	shared.InvalidateCaches(ctx, s.cache, cacheCountFront)
}
