package model

import "voyage/shared/model"

const (
	TableName  = "services"
	EntityName = "service"

	FieldID          = "id"
	FieldTitle       = "service_title"
	FieldDescription = "service_description"
	FieldImage       = "image"

	DirectoryImage = "services"
)

type Service struct {
	ID          string `db:"id"`
	Title       string `db:"service_title"`
	Description string `db:"service_description"`
	Image       string `db:"image"`
	model.Metadata
}
