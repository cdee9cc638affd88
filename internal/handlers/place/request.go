package place

import (
	"encoding/json"

	"voyage/internal/attachment"
	"voyage/internal/domains/place/model/dto"
	"voyage/internal/handlers/form"
	"voyage/shared/constant"
	"voyage/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	fieldTitle          = "title"
	fieldSubtitle       = "subtitle"
	fieldPrice          = "price"
	fieldAboutPlace     = "about_place"
	fieldTourHighlights = "tour_highlights"
	fieldTourItinerary  = "tour_itinerary"
	fieldInclude        = "include"
	fieldExclude        = "exclude"
	fieldPlaceType      = "place_type"
	fieldMainImage      = "main_image"
	fieldClearMainImage = "clear_main_image"
	fieldSubImages      = "sub_images"
	fieldClearSubImages = "clear_sub_images"
	fieldItinerary      = "itinerary"
	fieldImages         = "images"
)

func createRequest(f *form.Form) (dto.CreatePlaceRequest, error) {
	req := dto.CreatePlaceRequest{
		Title:          f.Value(fieldTitle),
		Subtitle:       f.Value(fieldSubtitle),
		AboutPlace:     f.Value(fieldAboutPlace),
		TourHighlights: f.Value(fieldTourHighlights),
		TourItinerary:  f.Value(fieldTourItinerary),
		Include:        f.Value(fieldInclude),
		Exclude:        f.Value(fieldExclude),
		PlaceType:      f.Value(fieldPlaceType),
		MainImage:      f.File(fieldMainImage),
		SubImages:      f.Files(fieldSubImages),
	}

	price, err := f.Float(fieldPrice)
	if err != nil {
		return req, err //nolint:wrapcheck
	}

	if price != nil {
		req.Price = *price
	}

	req.Itinerary, err = itinerary(f)

	return req, err
}

func updateRequest(f *form.Form, partial bool) (dto.UpdatePlaceRequest, error) {
	req := dto.UpdatePlaceRequest{
		Title:          f.String(fieldTitle),
		Subtitle:       f.String(fieldSubtitle),
		AboutPlace:     f.String(fieldAboutPlace),
		TourHighlights: f.String(fieldTourHighlights),
		TourItinerary:  f.String(fieldTourItinerary),
		Include:        f.String(fieldInclude),
		Exclude:        f.String(fieldExclude),
		PlaceType:      f.String(fieldPlaceType),
		MainImage:      f.File(fieldMainImage),
		ClearMainImage: f.Bool(fieldClearMainImage),
		ClearSubImages: f.Bool(fieldClearSubImages),
		Partial:        partial,
	}

	if subImages := f.Files(fieldSubImages); len(subImages) > 0 {
		req.SubImages = subImages
	}

	var err error

	req.Price, err = f.Float(fieldPrice)
	if err != nil {
		return req, err //nolint:wrapcheck
	}

	req.Itinerary, err = itinerary(f)

	return req, err
}

// itinerary reads the JSON itinerary field and binds photo parts to days. A day
// may name its parts in "photos"; otherwise parts named day<N>_* go to day N.
// Parts that match no declared day are dropped. A missing field yields nil.
func itinerary(f *form.Form) ([]dto.ItineraryDayInput, error) {
	raw := f.String(fieldItinerary)
	if raw == nil {
		return nil, nil
	}

	days := []dto.ItineraryDayInput{}

	if *raw != constant.Empty {
		if err := json.Unmarshal([]byte(*raw), &days); err != nil {
			msg := "itinerary must be a JSON list of days"

			return nil, failure.Validation(msg, map[string]any{fieldItinerary: msg}) //nolint:wrapcheck
		}
	}

	byDay := make(map[int]int, len(days))
	claimed := map[string]bool{}

	for idx := range days {
		if _, ok := byDay[days[idx].Day]; !ok {
			byDay[days[idx].Day] = idx
		}

		for _, field := range days[idx].PhotoFields {
			days[idx].Photos = append(days[idx].Photos, f.Files(field)...)
			claimed[field] = true
		}
	}

	for _, field := range f.FileFields() {
		if claimed[field] {
			continue
		}

		number, ok := dto.DayOfPhotoField(field)
		if !ok {
			continue
		}

		idx, found := byDay[number]
		if !found || len(days[idx].PhotoFields) > 0 {
			log.Warn().Str("field", field).Int("day", number).Msg("dropping itinerary photo without a matching day")

			continue
		}

		days[idx].Photos = append(days[idx].Photos, f.Files(field)...)
	}

	return days, nil
}

func addImagesRequest(f *form.Form) dto.AddImagesRequest {
	images := f.Files(fieldImages)
	if len(images) == 0 {
		images = f.Files(fieldSubImages)
	}

	if images == nil {
		images = []*attachment.Upload{}
	}

	return dto.AddImagesRequest{Images: images}
}
