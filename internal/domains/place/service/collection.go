package service

import (
	"context"
	"fmt"

	"voyage/internal/attachment"
	"voyage/internal/domains/place/model"
	"voyage/internal/domains/place/repository"
	"voyage/shared"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
	gModel "voyage/shared/model"
	"voyage/shared/timezone"

	"github.com/google/uuid"
)

var byPosition = gDto.QueryParams{SortBy: model.FieldPosition, SortDir: gDto.SortDirAsc}

// imageCollection is the ordered set of sub-images under a place.
type imageCollection struct {
	repo repository.Image
}

func (c imageCollection) Directory() string {
	return model.DirectoryImages
}

func (c imageCollection) Members(ctx context.Context, placeID string) ([]attachment.Member, error) {
	images, err := c.repo.GetAll(ctx, byPosition, shared.FilterByID(placeID, model.FieldPlaceID, model.ImageTableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get place images: %w", err)
	}

	members := make([]attachment.Member, len(images))
	for i, img := range images {
		members[i] = attachment.Member{ID: img.ID, Ref: img.Image, Position: img.Position}
	}

	return members, nil
}

func (c imageCollection) Add(ctx context.Context, placeID string, position int, ref string) error {
	return c.repo.Insert(ctx, model.PlaceImage{ //nolint:wrapcheck
		ID:       uuid.NewString(),
		PlaceID:  placeID,
		Image:    ref,
		Position: position,
		Metadata: metadata(ctx),
	})
}

func (c imageCollection) Remove(ctx context.Context, imageID string) error {
	return c.repo.Delete(ctx, shared.FilterByID(imageID, model.FieldID, model.ImageTableName)) //nolint:wrapcheck
}

// photoCollection is the ordered set of photos under an itinerary day.
type photoCollection struct {
	repo repository.ItineraryPhoto
}

func (c photoCollection) Directory() string {
	return model.DirectoryItineraryPhotos
}

func (c photoCollection) Members(ctx context.Context, dayID string) ([]attachment.Member, error) {
	photos, err := c.repo.GetAll(ctx, byPosition, shared.FilterByID(dayID, model.FieldDayID, model.PhotoTableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary photos: %w", err)
	}

	members := make([]attachment.Member, len(photos))
	for i, photo := range photos {
		members[i] = attachment.Member{ID: photo.ID, Ref: photo.Image, Position: photo.Position}
	}

	return members, nil
}

func (c photoCollection) Add(ctx context.Context, dayID string, position int, ref string) error {
	return c.repo.Insert(ctx, model.ItineraryPhoto{ //nolint:wrapcheck
		ID:       uuid.NewString(),
		DayID:    dayID,
		Image:    ref,
		Position: position,
		Metadata: metadata(ctx),
	})
}

func (c photoCollection) Remove(ctx context.Context, photoID string) error {
	return c.repo.Delete(ctx, shared.FilterByID(photoID, model.FieldID, model.PhotoTableName)) //nolint:wrapcheck
}

func metadata(ctx context.Context) gModel.Metadata {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  user,
		ModifiedBy: user,
	}
}
