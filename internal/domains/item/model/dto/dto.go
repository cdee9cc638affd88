package dto

import (
	"voyage/internal/attachment"
	"voyage/internal/domains/item/model"
	"voyage/shared"
	gDto "voyage/shared/dto"
	gModel "voyage/shared/model"
	"voyage/shared/timezone"

	"github.com/google/uuid"
)

type CreateItemRequest struct {
	Title       string             `json:"title"       validate:"required,max=100"`
	Description string             `json:"description" validate:"required"`
	Image       *attachment.Upload `json:"image"       swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

func (c *CreateItemRequest) ToModel(user, image string) model.Item {
	return model.Item{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Description: c.Description,
		Image:       image,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateItemRequest struct {
	Title       *string            `db:"title"       json:"title"       validate:"omitempty,max=100"`
	Description *string            `db:"description" json:"description"`
	Image       *attachment.Upload `json:"image"       swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ClearImage  bool               `json:"clear_image"`
	Partial     bool               `json:"-"`
}

func (u *UpdateItemRequest) RequiredFields() map[string]any {
	return map[string]any{
		model.FieldTitle:       u.Title,
		model.FieldDescription: u.Description,
	}
}

type ItemResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageURL    string `json:"image_url"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(mod model.Item, urlFor func(string) string) {
	r.ID = mod.ID
	r.Title = mod.Title
	r.Description = mod.Description
	r.Image = mod.Image
	r.ImageURL = urlFor(mod.Image)
	r.Metadata.FromModel(mod.Metadata)
}

type GetItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetItemsResponse) FromModels(models []model.Item, totalData, limit int, urlFor func(string) string) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]ItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod, urlFor)
	}
}
