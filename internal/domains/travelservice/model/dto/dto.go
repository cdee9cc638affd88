package dto

import (
	"voyage/internal/attachment"
	"voyage/internal/domains/travelservice/model"
	"voyage/shared"
	gDto "voyage/shared/dto"
	gModel "voyage/shared/model"
	"voyage/shared/timezone"

	"github.com/google/uuid"
)

type CreateTravelServiceRequest struct {
	Title       string             `json:"service_title"       validate:"required,max=100"`
	Description string             `json:"service_description" validate:"required"`
	Image       *attachment.Upload `json:"image"               swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

func (c *CreateTravelServiceRequest) ToModel(user, image string) model.Service {
	return model.Service{
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

type UpdateTravelServiceRequest struct {
	Title       *string            `db:"service_title"       json:"service_title"       validate:"omitempty,max=100"`
	Description *string            `db:"service_description" json:"service_description"`
	Image       *attachment.Upload `json:"image"               swaggerignore:"true"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ClearImage  bool               `json:"clear_image"`
	Partial     bool               `json:"-"`
}

func (u *UpdateTravelServiceRequest) RequiredFields() map[string]any {
	return map[string]any{
		model.FieldTitle:       u.Title,
		model.FieldDescription: u.Description,
	}
}

type ServiceResponse struct {
	ID          string `json:"id"`
	Title       string `json:"service_title"`
	Description string `json:"service_description"`
	Image       string `json:"image"`
	ImageURL    string `json:"image_url"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(mod model.Service, urlFor func(string) string) {
	r.ID = mod.ID
	r.Title = mod.Title
	r.Description = mod.Description
	r.Image = mod.Image
	r.ImageURL = urlFor(mod.Image)
	r.Metadata.FromModel(mod.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int, urlFor func(string) string) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod, urlFor)
	}
}
