package model

import "voyage/shared/model"

const (
	TableName  = "items"
	EntityName = "item"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImage       = "image"

	DirectoryImage = "items"
)

type Item struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Image       string `db:"image"`
	model.Metadata
}
