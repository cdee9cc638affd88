package model

import "voyage/shared/model"

const (
	TableName  = "contacts"
	EntityName = "contact"

	// CanonicalID is the only id the contacts table accepts.
	CanonicalID = "canonical"

	FieldID            = "id"
	FieldPhone         = "phone"
	FieldInstagramLink = "instagram_link"
	FieldFacebookLink  = "facebook_link"
	FieldWhatsappLink  = "whatsapp_link"
)

type Contact struct {
	ID            string `db:"id"`
	Phone         string `db:"phone"`
	InstagramLink string `db:"instagram_link"`
	FacebookLink  string `db:"facebook_link"`
	WhatsappLink  string `db:"whatsapp_link"`
	model.Metadata
}
