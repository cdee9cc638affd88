package model

import "voyage/shared/model"

const (
	TableName  = "posts"
	EntityName = "post"

	FieldID      = "id"
	FieldTitle   = "post_title"
	FieldContent = "post_content"
	FieldImage   = "post_image"

	DirectoryImage = "posts"
)

type Post struct {
	ID      string `db:"id"`
	Title   string `db:"post_title"`
	Content string `db:"post_content"`
	Image   string `db:"post_image"`
	model.Metadata
}
