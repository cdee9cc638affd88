package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"voyage/config"
	"voyage/infras/media"
	"voyage/infras/otel"
	"voyage/internal/attachment"
	"voyage/internal/domains/post/model"
	"voyage/internal/domains/post/model/dto"
	"voyage/internal/domains/post/repository"
	"voyage/shared"
	"voyage/shared/cache"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	"voyage/shared/failure"
	"voyage/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPost    = "post:get"
	cacheGetAllPost = "post:gets"
	cacheCountPost  = "post:count"
)

type Post interface {
	Create(ctx context.Context, req dto.CreatePostRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPostsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PostResponse, error)
	Update(ctx context.Context, req dto.UpdatePostRequest, id string) (gDto.Outcome, error)
	Delete(ctx context.Context, id string) (gDto.Outcome, error)
}

type serviceImpl struct {
	repo    repository.Post
	manager attachment.Manager
	store   media.Store
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.Post, manager attachment.Manager, store media.Store, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Post {
	return &serviceImpl{
		repo:    repo,
		manager: manager,
		store:   store,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePostRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var post model.Post

	_, err = s.manager.Create(ctx, model.DirectoryImage, req.Image, func(ref string) error {
		post = req.ToModel(user, ref)

		return s.repo.Insert(ctx, post) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create post")

		return id, fmt.Errorf("failed to create post: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPost)
		shared.InvalidateCaches(c, s.cache, cacheCountPost)
	}()

	return post.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPostsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPost, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for posts")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count posts")

		return res, fmt.Errorf("failed to count posts: %w", err)
	}

	posts, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get posts")

		return res, fmt.Errorf("failed to get posts: %w", err)
	}

	res.FromModels(posts, total, req.Limit, s.store.URLFor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save posts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPost, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for post count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count posts")

		return total, fmt.Errorf("failed to count posts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save post count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetPost, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for post")

		return res, nil
	}

	post, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(post, s.store.URLFor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save post to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePostRequest, id string) (outcome gDto.Outcome, err error) {
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
		log.Error().Err(err).Msg("failed to update post")

		return outcome, fmt.Errorf("failed to update post: %w", err)
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
			return outcome, fmt.Errorf("failed to replace post image: %w", err)
		}
	case req.ClearImage:
		report, err := s.manager.Clear(ctx, slot)
		outcome.AddOrphaned(report.Orphaned...)

		if err != nil {
			return outcome, fmt.Errorf("failed to clear post image: %w", err)
		}
	}

	return outcome, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (outcome gDto.Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	post, err := s.find(ctx, id)
	if err != nil {
		return outcome, err
	}

	node := attachment.Leaf(model.EntityName+" "+id, post.Image, func(ctx context.Context) error {
		return s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
	})

	report, err := s.manager.CascadeDelete(ctx, node)
	outcome.AddOrphaned(report.Orphaned...)

	if err != nil {
		log.Error().Err(err).Msg("failed to delete post")

		return outcome, fmt.Errorf("failed to delete post: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
	}()

	return outcome, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (post model.Post, err error) {
	if err = shared.RequireUUID(id, "post"); err != nil {
		return post, err //nolint:wrapcheck
	}

	post, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get post")

		return post, fmt.Errorf("failed to get post: %w", err)
	}

	if post.ID == constant.Empty {
		return post, failure.NotFound("post not found") //nolint:wrapcheck
	}

	return post, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetPost, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete post from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllPost)
	shared.InvalidateCaches(ctx, s.cache, cacheCountPost)
}
