package dto

import (
	"voyage/internal/attachment"
	"voyage/internal/domains/place/model"
	"voyage/shared"
	gDto "voyage/shared/dto"
	gModel "voyage/shared/model"
	"voyage/shared/timezone"

	"github.com/google/uuid"
)

type CreatePlaceRequest struct {
	Title          string               `json:"title"           validate:"required,max=50"`
	Subtitle       string               `json:"subtitle"        validate:"required,max=200"`
	Price          float64              `json:"price"           validate:"required,gt=0"`
	AboutPlace     string               `json:"about_place"     validate:"required"`
	TourHighlights string               `json:"tour_highlights" validate:"required,max=200"`
	TourItinerary  string               `json:"tour_itinerary"  validate:"required,max=200"`
	Include        string               `json:"include"         validate:"required,max=200"`
	Exclude        string               `json:"exclude"         validate:"required,max=200"`
	PlaceType      string               `json:"place_type"      validate:"omitempty,oneof=trending adventure honeymoon beach historical"`
	MainImage      *attachment.Upload   `json:"main_image"      swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	SubImages      []*attachment.Upload `json:"sub_images"      swaggerignore:"true" validate:"omitempty,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	Itinerary      []ItineraryDayInput  `json:"itinerary"       validate:"omitempty,dive"`
}

func (c *CreatePlaceRequest) ToModel(user, mainImage string) model.Place {
	placeType := c.PlaceType
	if placeType == "" {
		placeType = model.PlaceTypeTrending
	}

	return model.Place{
		ID:             uuid.NewString(),
		Title:          c.Title,
		Subtitle:       c.Subtitle,
		Price:          c.Price,
		AboutPlace:     c.AboutPlace,
		TourHighlights: c.TourHighlights,
		TourItinerary:  c.TourItinerary,
		IncludeText:    c.Include,
		ExcludeText:    c.Exclude,
		PlaceType:      placeType,
		MainImage:      mainImage,
		Metadata:       metadata(user),
	}
}

// UpdatePlaceRequest carries only the fields that were sent. Partial is false
// for full updates, where every required field must be present.
type UpdatePlaceRequest struct {
	Title          *string            `db:"title"           json:"title"           validate:"omitempty,max=50"`
	Subtitle       *string            `db:"subtitle"        json:"subtitle"        validate:"omitempty,max=200"`
	Price          *float64           `db:"price"           json:"price"           validate:"omitempty,gt=0"`
	AboutPlace     *string            `db:"about_place"     json:"about_place"`
	TourHighlights *string            `db:"tour_highlights" json:"tour_highlights" validate:"omitempty,max=200"`
	TourItinerary  *string            `db:"tour_itinerary"  json:"tour_itinerary"  validate:"omitempty,max=200"`
	Include        *string            `db:"include_text"    json:"include"         validate:"omitempty,max=200"`
	Exclude        *string            `db:"exclude_text"    json:"exclude"         validate:"omitempty,max=200"`
	PlaceType      *string            `db:"place_type"      json:"place_type"      validate:"omitempty,oneof=trending adventure honeymoon beach historical"`
	MainImage      *attachment.Upload `json:"main_image"      swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ClearMainImage bool               `json:"clear_main_image"`
	// SubImages replaces every sub-image when non-nil.
	SubImages      []*attachment.Upload `json:"sub_images"      swaggerignore:"true" validate:"omitempty,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ClearSubImages bool                 `json:"clear_sub_images"`
	// Itinerary replaces every itinerary day when non-nil.
	Itinerary []ItineraryDayInput `json:"itinerary" validate:"omitempty,dive"`
	Partial   bool                `json:"-"`
}

// RequiredFields lists the fields a full update must carry, keyed by request name.
func (u *UpdatePlaceRequest) RequiredFields() map[string]any {
	return map[string]any{
		"title":           u.Title,
		"subtitle":        u.Subtitle,
		"price":           u.Price,
		"about_place":     u.AboutPlace,
		"tour_highlights": u.TourHighlights,
		"tour_itinerary":  u.TourItinerary,
		"include":         u.Include,
		"exclude":         u.Exclude,
	}
}

// ReplacesSubImages reports whether the sub-image collection is to be rewritten.
func (u *UpdatePlaceRequest) ReplacesSubImages() bool {
	return u.SubImages != nil || u.ClearSubImages
}

type AddImagesRequest struct {
	Images []*attachment.Upload `json:"images" swaggerignore:"true" validate:"required,min=1,dive,required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

type ImageResponse struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type ItineraryDayResponse struct {
	ID          string          `json:"id"`
	Day         int             `json:"day"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Photos      []ImageResponse `json:"photos"`
}

type PlaceResponse struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	Subtitle       string                 `json:"subtitle"`
	Price          float64                `json:"price"`
	AboutPlace     string                 `json:"about_place"`
	TourHighlights string                 `json:"tour_highlights"`
	TourItinerary  string                 `json:"tour_itinerary"`
	Include        string                 `json:"include"`
	Exclude        string                 `json:"exclude"`
	PlaceType      string                 `json:"place_type"`
	MainImage      string                 `json:"main_image"`
	MainImageURL   string                 `json:"main_image_url"`
	SubImages      []ImageResponse        `json:"sub_images"`
	Itinerary      []ItineraryDayResponse `json:"itinerary,omitempty"`
	gDto.Metadata
}

func (r *PlaceResponse) FromModel(mod model.Place, urlFor func(string) string) {
	r.ID = mod.ID
	r.Title = mod.Title
	r.Subtitle = mod.Subtitle
	r.Price = mod.Price
	r.AboutPlace = mod.AboutPlace
	r.TourHighlights = mod.TourHighlights
	r.TourItinerary = mod.TourItinerary
	r.Include = mod.IncludeText
	r.Exclude = mod.ExcludeText
	r.PlaceType = mod.PlaceType
	r.MainImage = mod.MainImage
	r.MainImageURL = urlFor(mod.MainImage)
	r.SubImages = []ImageResponse{}
	r.Metadata.FromModel(mod.Metadata)
}

func (r *PlaceResponse) WithImages(images []model.PlaceImage, urlFor func(string) string) {
	r.SubImages = make([]ImageResponse, len(images))
	for i, img := range images {
		r.SubImages[i] = ImageResponse{ID: img.ID, Image: img.Image, URL: urlFor(img.Image), Position: img.Position}
	}
}

// WithItinerary attaches days in the given order, each with its photos.
func (r *PlaceResponse) WithItinerary(days []model.ItineraryDay, photos map[string][]model.ItineraryPhoto, urlFor func(string) string) {
	r.Itinerary = make([]ItineraryDayResponse, len(days))
	for i, day := range days {
		r.Itinerary[i] = ItineraryDayResponse{
			ID:          day.ID,
			Day:         day.DayNumber,
			Title:       day.Title,
			Description: day.Description,
			Photos:      make([]ImageResponse, len(photos[day.ID])),
		}

		for j, photo := range photos[day.ID] {
			r.Itinerary[i].Photos[j] = ImageResponse{ID: photo.ID, Image: photo.Image, URL: urlFor(photo.Image), Position: photo.Position}
		}
	}
}

type GetPlacesResponse struct {
	Places    []PlaceResponse `json:"places"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

// FromModels builds list entries with their sub-images; images are grouped by place id.
func (r *GetPlacesResponse) FromModels(models []model.Place, images map[string][]model.PlaceImage, totalData, limit int, urlFor func(string) string) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Places = make([]PlaceResponse, len(models))
	for i, mod := range models {
		r.Places[i].FromModel(mod, urlFor)
		r.Places[i].WithImages(images[mod.ID], urlFor)
	}
}

// BookingPlaceResponse is the short form offered to the booking form.
type BookingPlaceResponse struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Price    float64 `json:"price"`
}

func (r *BookingPlaceResponse) FromModel(mod model.Place) {
	r.ID = mod.ID
	r.Title = mod.Title
	r.Subtitle = mod.Subtitle
	r.Price = mod.Price
}

func metadata(user string) gModel.Metadata {
	return gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  user,
		ModifiedBy: user,
	}
}
