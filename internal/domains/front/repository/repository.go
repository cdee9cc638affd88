package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"voyage/infras/otel"
	"voyage/infras/postgres"
	"voyage/internal/domains/front/model"
	gDto "voyage/shared/dto"
	gRepo "voyage/shared/repository"
)

type Front interface {
	Insert(ctx context.Context, model model.Front) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Front, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Front, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Front]
}

func New(db *postgres.Connection, otel otel.Otel) Front {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Front](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
