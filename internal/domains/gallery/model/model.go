package model

import "voyage/shared/model"

const (
	TableName  = "gallery_photos"
	EntityName = "gallery_photo"

	FieldID      = "id"
	FieldCaption = "caption"
	FieldImage   = "image"

	DirectoryImage = "gallery"
)

type GalleryPhoto struct {
	ID      string `db:"id"`
	Caption string `db:"caption"`
	Image   string `db:"image"`
	model.Metadata
}
