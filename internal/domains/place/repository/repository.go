package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"voyage/infras/otel"
	"voyage/infras/postgres"
	"voyage/internal/domains/place/model"
	gDto "voyage/shared/dto"
	gRepo "voyage/shared/repository"
)

type Place interface {
	Insert(ctx context.Context, model model.Place) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Place, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Place, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Image interface {
	Insert(ctx context.Context, model model.PlaceImage) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PlaceImage, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PlaceImage, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type ItineraryDay interface {
	Insert(ctx context.Context, model model.ItineraryDay) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ItineraryDay, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ItineraryDay, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type ItineraryPhoto interface {
	Insert(ctx context.Context, model model.ItineraryPhoto) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ItineraryPhoto, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ItineraryPhoto, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type placeRepository struct {
	gRepo.Repository[model.Place]
}

func New(db *postgres.Connection, otel otel.Otel) Place {
	return &placeRepository{
		Repository: gRepo.NewRepository[model.Place](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type imageRepository struct {
	gRepo.Repository[model.PlaceImage]
}

func NewImage(db *postgres.Connection, otel otel.Otel) Image {
	return &imageRepository{
		Repository: gRepo.NewRepository[model.PlaceImage](model.ImageEntityName, model.ImageTableName, model.FieldID, db, otel),
	}
}

type dayRepository struct {
	gRepo.Repository[model.ItineraryDay]
}

func NewItineraryDay(db *postgres.Connection, otel otel.Otel) ItineraryDay {
	return &dayRepository{
		Repository: gRepo.NewRepository[model.ItineraryDay](model.DayEntityName, model.DayTableName, model.FieldID, db, otel),
	}
}

type photoRepository struct {
	gRepo.Repository[model.ItineraryPhoto]
}

func NewItineraryPhoto(db *postgres.Connection, otel otel.Otel) ItineraryPhoto {
	return &photoRepository{
		Repository: gRepo.NewRepository[model.ItineraryPhoto](model.PhotoEntityName, model.PhotoTableName, model.FieldID, db, otel),
	}
}
