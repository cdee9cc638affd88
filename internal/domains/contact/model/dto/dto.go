package dto

import (
	"voyage/internal/domains/contact/model"
	gDto "voyage/shared/dto"
	gModel "voyage/shared/model"
	"voyage/shared/timezone"
)

// UpsertContactRequest overwrites only the fields it carries.
type UpsertContactRequest struct {
	Phone         *string `db:"phone"          json:"phone"          validate:"omitempty,max=30"`
	InstagramLink *string `db:"instagram_link" json:"instagram_link" validate:"omitempty,url"`
	FacebookLink  *string `db:"facebook_link"  json:"facebook_link"  validate:"omitempty,url"`
	WhatsappLink  *string `db:"whatsapp_link"  json:"whatsapp_link"  validate:"omitempty,url"`
}

func (u *UpsertContactRequest) ToModel(user string) model.Contact {
	return model.Contact{
		ID:            model.CanonicalID,
		Phone:         value(u.Phone),
		InstagramLink: value(u.InstagramLink),
		FacebookLink:  value(u.FacebookLink),
		WhatsappLink:  value(u.WhatsappLink),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func value(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

type ContactResponse struct {
	ID            string `json:"id"`
	Phone         string `json:"phone"`
	InstagramLink string `json:"instagram_link"`
	FacebookLink  string `json:"facebook_link"`
	WhatsappLink  string `json:"whatsapp_link"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(mod model.Contact) {
	r.ID = mod.ID
	r.Phone = mod.Phone
	r.InstagramLink = mod.InstagramLink
	r.FacebookLink = mod.FacebookLink
	r.WhatsappLink = mod.WhatsappLink
	r.Metadata.FromModel(mod.Metadata)
}

// SocialLinksResponse never has missing keys; absent links are empty strings.
type SocialLinksResponse struct {
	InstagramLink string `json:"instagram_link"`
	FacebookLink  string `json:"facebook_link"`
	WhatsappLink  string `json:"whatsapp_link"`
}

func (r *SocialLinksResponse) FromModel(mod model.Contact) {
	r.InstagramLink = mod.InstagramLink
	r.FacebookLink = mod.FacebookLink
	r.WhatsappLink = mod.WhatsappLink
}
