package model

import "voyage/shared/model"

const (
	TableName  = "places"
	EntityName = "place"

	FieldID             = "id"
	FieldTitle          = "title"
	FieldSubtitle       = "subtitle"
	FieldPrice          = "price"
	FieldAboutPlace     = "about_place"
	FieldTourHighlights = "tour_highlights"
	FieldTourItinerary  = "tour_itinerary"
	FieldIncludeText    = "include_text"
	FieldExcludeText    = "exclude_text"
	FieldPlaceType      = "place_type"
	FieldMainImage      = "main_image"

	DirectoryMainImage = "places"
)

const (
	PlaceTypeTrending   = "trending"
	PlaceTypeAdventure  = "adventure"
	PlaceTypeHoneymoon  = "honeymoon"
	PlaceTypeBeach      = "beach"
	PlaceTypeHistorical = "historical"
)

type Place struct {
	ID             string  `db:"id"`
	Title          string  `db:"title"`
	Subtitle       string  `db:"subtitle"`
	Price          float64 `db:"price"`
	AboutPlace     string  `db:"about_place"`
	TourHighlights string  `db:"tour_highlights"`
	TourItinerary  string  `db:"tour_itinerary"`
	IncludeText    string  `db:"include_text"`
	ExcludeText    string  `db:"exclude_text"`
	PlaceType      string  `db:"place_type"`
	MainImage      string  `db:"main_image"`
	model.Metadata
}
