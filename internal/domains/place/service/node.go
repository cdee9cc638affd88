package service

import (
	"context"
	"fmt"

	"voyage/internal/attachment"
	"voyage/internal/domains/place/model"
	"voyage/shared"
	"voyage/shared/constant"
	gDto "voyage/shared/dto"
)

var byDayNumber = gDto.QueryParams{SortBy: model.FieldDayNumber, SortDir: gDto.SortDirAsc}

// placeNode owns the main image, every sub-image and every itinerary day.
func (s *serviceImpl) placeNode(place model.Place) attachment.Node {
	remove := func(ctx context.Context) error {
		return s.repo.Delete(ctx, shared.FilterByID(place.ID, model.FieldID, model.TableName)) //nolint:wrapcheck
	}

	children := func(ctx context.Context) ([]attachment.Node, error) {
		images, err := s.imageRepo.GetAll(ctx, byPosition, shared.FilterByID(place.ID, model.FieldPlaceID, model.ImageTableName))
		if err != nil {
			return nil, fmt.Errorf("failed to get place images: %w", err)
		}

		days, err := s.dayRepo.GetAll(ctx, byDayNumber, shared.FilterByID(place.ID, model.FieldPlaceID, model.DayTableName))
		if err != nil {
			return nil, fmt.Errorf("failed to get itinerary days: %w", err)
		}

		nodes := make([]attachment.Node, 0, len(images)+len(days))
		for _, img := range images {
			nodes = append(nodes, s.imageNode(img))
		}

		for _, day := range days {
			nodes = append(nodes, s.dayNode(day))
		}

		return nodes, nil
	}

	return attachment.NewNode("place "+place.ID, refs(place.MainImage), remove, children)
}

// dayNode owns the photos of one itinerary day.
func (s *serviceImpl) dayNode(day model.ItineraryDay) attachment.Node {
	remove := func(ctx context.Context) error {
		return s.dayRepo.Delete(ctx, shared.FilterByID(day.ID, model.FieldID, model.DayTableName)) //nolint:wrapcheck
	}

	children := func(ctx context.Context) ([]attachment.Node, error) {
		photos, err := s.photoRepo.GetAll(ctx, byPosition, shared.FilterByID(day.ID, model.FieldDayID, model.PhotoTableName))
		if err != nil {
			return nil, fmt.Errorf("failed to get itinerary photos: %w", err)
		}

		nodes := make([]attachment.Node, len(photos))
		for i, photo := range photos {
			nodes[i] = s.photoNode(photo)
		}

		return nodes, nil
	}

	return attachment.NewNode("itinerary_day "+day.ID, nil, remove, children)
}

func (s *serviceImpl) imageNode(img model.PlaceImage) attachment.Node {
	return attachment.Leaf("place_image "+img.ID, img.Image, func(ctx context.Context) error {
		return s.imageRepo.Delete(ctx, shared.FilterByID(img.ID, model.FieldID, model.ImageTableName)) //nolint:wrapcheck
	})
}

func (s *serviceImpl) photoNode(photo model.ItineraryPhoto) attachment.Node {
	return attachment.Leaf("itinerary_photo "+photo.ID, photo.Image, func(ctx context.Context) error {
		return s.photoRepo.Delete(ctx, shared.FilterByID(photo.ID, model.FieldID, model.PhotoTableName)) //nolint:wrapcheck
	})
}

func refs(ref string) []string {
	if ref == constant.Empty {
		return nil
	}

	return []string{ref}
}
