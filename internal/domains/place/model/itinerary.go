package model

import "voyage/shared/model"

const (
	DayTableName  = "itinerary_days"
	DayEntityName = "itinerary_day"

	FieldDayNumber   = "day_number"
	FieldDayTitle    = "title"
	FieldDescription = "description"

	PhotoTableName  = "itinerary_photos"
	PhotoEntityName = "itinerary_photo"

	FieldDayID = "day_id"

	DirectoryItineraryPhotos = "itinerary_photos"
)

type ItineraryDay struct {
	ID          string `db:"id"`
	PlaceID     string `db:"place_id"`
	DayNumber   int    `db:"day_number"`
	Title       string `db:"title"`
	Description string `db:"description"`
	model.Metadata
}

type ItineraryPhoto struct {
	ID       string `db:"id"`
	DayID    string `db:"day_id"`
	Image    string `db:"image"`
	Position int    `db:"position"`
	model.Metadata
}
