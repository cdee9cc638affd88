package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"voyage/config"
	"voyage/infras/otel"
	"voyage/internal/domains/contact/model"
	"voyage/internal/domains/contact/model/dto"
	"voyage/internal/domains/contact/repository"
	"voyage/shared"
	"voyage/shared/cache"
	"voyage/shared/constant"
	"voyage/shared/failure"
	gRepo "voyage/shared/repository"

	"github.com/rs/zerolog/log"
)

const cacheGetContact = "contact:get"

// Contact manages the single canonical contact row. Every read and write targets that row.
type Contact interface {
	Upsert(ctx context.Context, req dto.UpsertContactRequest) (dto.ContactResponse, error)
	Get(ctx context.Context) (dto.ContactResponse, error)
	SocialLinks(ctx context.Context) (dto.SocialLinksResponse, error)
	Delete(ctx context.Context) error
}

type serviceImpl struct {
	repo  repository.Contact
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Contact, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Contact {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

var canonical = shared.FilterByID(model.CanonicalID, model.FieldID, model.TableName)

func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertContactRequest) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	defer func() {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetContact, model.CanonicalID)); err != nil {
				log.Error().Err(err).Msg("failed to delete contact from cache")
			}
		}()
	}()

	current, err := s.load(ctx)
	if err != nil {
		return res, err
	}

	if current.ID == constant.Empty {
		err = s.repo.Insert(ctx, req.ToModel(user))

		if gRepo.IsUniqueViolation(err) {
			log.Warn().Msg("contact row created concurrently, updating instead")

			err = s.repo.Update(ctx, shared.TransformFields(req, user), canonical)
		}
	} else {
		err = s.repo.Update(ctx, shared.TransformFields(req, user), canonical)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to save contact")

		return res, fmt.Errorf("failed to save contact: %w", err)
	}

	saved, err := s.load(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(saved)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetContact, model.CanonicalID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for contact")

		return res, nil
	}

	contact, err := s.load(ctx)
	if err != nil {
		return res, err
	}

	if contact.ID == constant.Empty {
		return res, failure.NotFound("contact not found") //nolint:wrapcheck
	}

	res.FromModel(contact)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save contact to cache")
		}
	}()

	return res, nil
}

// SocialLinks reads the canonical row too, so it always agrees with Get.
func (s *serviceImpl) SocialLinks(ctx context.Context) (res dto.SocialLinksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SocialLinks")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	contact, err := s.load(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(contact)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	contact, err := s.load(ctx)
	if err != nil {
		return err
	}

	if contact.ID == constant.Empty {
		return failure.NotFound("contact not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, canonical); err != nil {
		log.Error().Err(err).Msg("failed to delete contact")

		return fmt.Errorf("failed to delete contact: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetContact, model.CanonicalID)); err != nil {
			log.Error().Err(err).Msg("failed to delete contact from cache")
		}
	}()

	return nil
}

func (s *serviceImpl) load(ctx context.Context) (model.Contact, error) {
	contact, err := s.repo.Get(ctx, canonical)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact")

		return contact, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}
