package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"voyage/infras/otel"
	"voyage/infras/postgres"
	"voyage/internal/domains/gallery/model"
	gDto "voyage/shared/dto"
	gRepo "voyage/shared/repository"
)

type Gallery interface {
	Insert(ctx context.Context, model model.GalleryPhoto) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.GalleryPhoto, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.GalleryPhoto, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.GalleryPhoto]
}

func New(db *postgres.Connection, otel otel.Otel) Gallery {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.GalleryPhoto](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
