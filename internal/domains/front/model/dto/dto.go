package dto

import (
	"voyage/internal/attachment"
	"voyage/internal/domains/front/model"
	"voyage/shared"
	gDto "voyage/shared/dto"
	gModel "voyage/shared/model"
	"voyage/shared/timezone"

	"github.com/google/uuid"
)

type CreateFrontRequest struct {
	CompanyLogo *attachment.Upload `json:"company_logo" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp image/svg+xml,maxfilesize=5"`
}

func (c *CreateFrontRequest) ToModel(user, logo string) model.Front {
	return model.Front{
		ID:          uuid.NewString(),
		CompanyLogo: logo,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateFrontRequest struct {
	CompanyLogo      *attachment.Upload `json:"company_logo"       swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp image/svg+xml,maxfilesize=5"`
	ClearCompanyLogo bool               `json:"clear_company_logo"`
	Partial          bool               `json:"-"`
}

// RequiredFields lists what a full replacement must carry. Clearing counts as providing the logo.
func (u *UpdateFrontRequest) RequiredFields() map[string]any {
	if u.ClearCompanyLogo {
		return map[string]any{}
	}

	return map[string]any{
		model.FieldCompanyLogo: u.CompanyLogo,
	}
}

type FrontResponse struct {
	ID             string `json:"id"`
	CompanyLogo    string `json:"company_logo"`
	CompanyLogoURL string `json:"company_logo_url"`
	gDto.Metadata
}

func (r *FrontResponse) FromModel(mod model.Front, urlFor func(string) string) {
	r.ID = mod.ID
	r.CompanyLogo = mod.CompanyLogo
	r.CompanyLogoURL = urlFor(mod.CompanyLogo)
	r.Metadata.FromModel(mod.Metadata)
}

type GetFrontsResponse struct {
	Fronts    []FrontResponse `json:"fronts"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetFrontsResponse) FromModels(models []model.Front, totalData, limit int, urlFor func(string) string) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Fronts = make([]FrontResponse, len(models))
	for i, mod := range models {
		r.Fronts[i].FromModel(mod, urlFor)
	}
}
