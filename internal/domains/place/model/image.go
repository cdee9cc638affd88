package model

import "voyage/shared/model"

const (
	ImageTableName  = "place_images"
	ImageEntityName = "place_image"

	FieldPlaceID  = "place_id"
	FieldImage    = "image"
	FieldPosition = "position"

	DirectoryImages = "place_images"
)

type PlaceImage struct {
	ID       string `db:"id"`
	PlaceID  string `db:"place_id"`
	Image    string `db:"image"`
	Position int    `db:"position"`
	model.Metadata
}
